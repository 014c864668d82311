package engine

import (
	"context"
	"fmt"

	"github.com/unravelhq/unravel/internal/game/domain/effect"
	"github.com/unravelhq/unravel/internal/game/domain/player"
)

// resolveTargets expands a target type into concrete player IDs in seat
// order. TargetOtherPlayerChoice is resolved through the choice coordinator
// and is not handled here.
func resolveTargets(seats []player.Seat, actorID string, tt effect.TargetType) []string {
	var ids []string
	switch tt {
	case effect.TargetSelf:
		ids = []string{actorID}
	case effect.TargetAllOtherPlayers:
		for _, seat := range seats {
			if seat.ID != actorID {
				ids = append(ids, seat.ID)
			}
		}
	case effect.TargetAllPlayers:
		for _, seat := range seats {
			ids = append(ids, seat.ID)
		}
	}
	return ids
}

// otherPlayerOptions builds the option list for a target-player choice,
// excluding the actor.
func otherPlayerOptions(seats []player.Seat, actorID string) []effect.Option {
	var opts []effect.Option
	for _, seat := range seats {
		if seat.ID == actorID {
			continue
		}
		opts = append(opts, effect.Option{ID: seat.ID, Label: seat.Name})
	}
	return opts
}

// dispatchGroup fans the template out over resolved targets. Interactive
// targeting suspends on a target-player choice; the selected option ID is
// the chosen player.
func (e *Engine) dispatchGroup(ctx context.Context, eff effect.Effect, ec Context) (effectOutcome, error) {
	group := eff.Group
	if group.TargetType == effect.TargetOtherPlayerChoice {
		prompt := fmt.Sprintf("Choose a player for %s", eff.Source)
		pending, err := e.choices.Create(ec.ActorID, "target_player", prompt, otherPlayerOptions(e.seats.Seats(), ec.ActorID))
		if err != nil {
			return effectOutcome{}, fmt.Errorf("create target choice for %s: %w", ec.ActorID, err)
		}
		return effectOutcome{
			choice: pending,
			resume: func(optionID string) (effectOutcome, error) {
				return e.fanOut(ctx, eff, ec, []string{optionID})
			},
		}, nil
	}
	return e.fanOut(ctx, eff, ec, resolveTargets(e.seats.Seats(), ec.ActorID, group.TargetType))
}

// fanOut applies per-target clones of the template sequentially. A target
// failure marks the group failed but remaining targets still run; earlier
// targets are not undone.
func (e *Engine) fanOut(ctx context.Context, eff effect.Effect, ec Context, targets []string) (effectOutcome, error) {
	parent := EffectResult{Effect: eff, Success: true}
	for _, target := range targets {
		clone := eff.Group.Template.WithPlayer(target)
		out, err := e.dispatch(ctx, clone, ec)
		if err != nil {
			return effectOutcome{}, err
		}
		// Targetable templates are primitive and never suspend.
		parent.Sub = append(parent.Sub, out.result)
		if !out.result.Success {
			parent.Success = false
		}
	}
	return completed(parent), nil
}
