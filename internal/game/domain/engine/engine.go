package engine

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/unravelhq/unravel/internal/game/domain/choice"
	"github.com/unravelhq/unravel/internal/game/domain/effect"
	"github.com/unravelhq/unravel/internal/game/domain/player"
)

var (
	// ErrResourcesRequired indicates the engine was built without a resource service.
	ErrResourcesRequired = stderrors.New("engine: resource service required")
	// ErrCardsRequired indicates the engine was built without a card service.
	ErrCardsRequired = stderrors.New("engine: card service required")
	// ErrMovementRequired indicates the engine was built without a movement service.
	ErrMovementRequired = stderrors.New("engine: movement service required")
	// ErrTurnsRequired indicates the engine was built without a turn service.
	ErrTurnsRequired = stderrors.New("engine: turn service required")
	// ErrSeatsRequired indicates the engine was built without a seat provider.
	ErrSeatsRequired = stderrors.New("engine: seat provider required")
	// ErrChoicesRequired indicates the engine was built without a choice coordinator.
	ErrChoicesRequired = stderrors.New("engine: choice coordinator required")
	// ErrHistoryRequired indicates the engine was built without a history appender.
	ErrHistoryRequired = stderrors.New("engine: history appender required")
	// ErrNotSuspended reports Resume called on a completed outcome.
	ErrNotSuspended = stderrors.New("engine: outcome is not suspended")
)

// ResourceService mutates player money and time balances.
type ResourceService interface {
	AddMoney(ctx context.Context, playerID string, amount int, source, reason string) error
	SpendMoney(ctx context.Context, playerID string, amount int, source, reason string) error
	AddTime(ctx context.Context, playerID string, amount int, source, reason string) error
	SpendTime(ctx context.Context, playerID string, amount int, source, reason string) error
}

// CardService manages hands and active card durations.
type CardService interface {
	Draw(ctx context.Context, playerID, cardType string, count int, source, reason string) ([]string, error)
	DiscardByIDs(ctx context.Context, playerID string, cardIDs []string, source, reason string) error
	DiscardByType(ctx context.Context, playerID, cardType string, count int, source, reason string) error
	Activate(ctx context.Context, playerID, cardID string, duration int) error
}

// MovementService relocates players between board spaces.
type MovementService interface {
	Move(ctx context.Context, playerID, destination string) error
}

// TurnService records turn-order modifiers.
type TurnService interface {
	SetModifier(ctx context.Context, playerID string, action effect.TurnAction) error
}

// SeatProvider exposes the fixed seat order of the game.
type SeatProvider interface {
	Seats() []player.Seat
}

// HistoryAppender receives log effects for the game journal.
type HistoryAppender interface {
	AppendLog(ctx context.Context, level effect.LogLevel, message, source string) error
}

// ChoiceCoordinator suspends processing on a pending player decision.
type ChoiceCoordinator interface {
	Create(playerID, choiceType, prompt string, options []effect.Option) (*choice.Choice, error)
}

// Deps collects the services the engine dispatches against.
type Deps struct {
	Resources ResourceService
	Cards     CardService
	Movement  MovementService
	Turns     TurnService
	Seats     SeatProvider
	Choices   ChoiceCoordinator
	History   HistoryAppender
}

// Engine walks effect sequences and applies each effect through the
// matching domain service.
type Engine struct {
	resources ResourceService
	cards     CardService
	movement  MovementService
	turns     TurnService
	seats     SeatProvider
	choices   ChoiceCoordinator
	history   HistoryAppender
}

// New builds an Engine, rejecting missing dependencies.
func New(deps Deps) (*Engine, error) {
	switch {
	case deps.Resources == nil:
		return nil, ErrResourcesRequired
	case deps.Cards == nil:
		return nil, ErrCardsRequired
	case deps.Movement == nil:
		return nil, ErrMovementRequired
	case deps.Turns == nil:
		return nil, ErrTurnsRequired
	case deps.Seats == nil:
		return nil, ErrSeatsRequired
	case deps.Choices == nil:
		return nil, ErrChoicesRequired
	case deps.History == nil:
		return nil, ErrHistoryRequired
	}
	return &Engine{
		resources: deps.Resources,
		cards:     deps.Cards,
		movement:  deps.Movement,
		turns:     deps.Turns,
		seats:     deps.Seats,
		choices:   deps.Choices,
		history:   deps.History,
	}, nil
}

// Context carries the invocation context an effect sequence runs under.
type Context struct {
	// ActorID is the player whose action produced the sequence.
	ActorID string
	// Trigger names the originating action, e.g. "card_played".
	Trigger string
	// DiceRoll is the roll conditional effects branch on; zero when the
	// trigger had no dice.
	DiceRoll int
}

// EffectResult records the outcome of one dispatched effect. Group and
// conditional effects carry their per-target or per-branch outcomes in Sub.
type EffectResult struct {
	Effect   effect.Effect
	Success  bool
	Err      error
	OptionID string
	Sub      []EffectResult
}

// Result aggregates a completed sequence. Counts cover the top-level
// effects of the sequence; errors from nested fan-out targets and branch
// effects are folded into Errors.
type Result struct {
	Success           bool
	TotalEffects      int
	SuccessfulEffects int
	FailedEffects     int
	Errors            []error
	Effects           []EffectResult
}

func (r *Result) add(er EffectResult) {
	r.TotalEffects++
	if er.Success {
		r.SuccessfulEffects++
	} else {
		r.FailedEffects++
	}
	r.Effects = append(r.Effects, er)
	collectErrors(er, &r.Errors)
}

func collectErrors(er EffectResult, into *[]error) {
	if er.Err != nil {
		*into = append(*into, er.Err)
	}
	for _, sub := range er.Sub {
		collectErrors(sub, into)
	}
}

// Outcome is the result of processing a sequence: either completed with a
// Result, or suspended on a pending choice awaiting Resume.
type Outcome struct {
	// Done reports whether the sequence ran to completion.
	Done bool
	// Result holds the aggregate when Done.
	Result *Result
	// Choice is the pending decision when suspended.
	Choice *choice.Choice
	resume func(optionID string) (Outcome, error)
}

// Resume continues a suspended outcome with the selected option. The
// option must already have been validated against the pending choice.
func (o Outcome) Resume(optionID string) (Outcome, error) {
	if o.Done || o.resume == nil {
		return Outcome{}, ErrNotSuspended
	}
	return o.resume(optionID)
}

// effectOutcome is the per-effect analogue of Outcome, used internally so
// nested suspensions compose.
type effectOutcome struct {
	done   bool
	result EffectResult
	choice *choice.Choice
	resume func(optionID string) (effectOutcome, error)
}

func completed(er EffectResult) effectOutcome {
	return effectOutcome{done: true, result: er}
}

func failed(eff effect.Effect, err error) effectOutcome {
	return completed(EffectResult{Effect: eff, Err: err})
}

// Process runs an effect sequence in order. Structural and domain failures
// of individual effects are recorded in the result and do not stop their
// siblings. A choice effect suspends the whole sequence; the returned
// outcome resumes it. Caller misuse aborts with an error instead.
func (e *Engine) Process(ctx context.Context, effects []effect.Effect, ec Context) (Outcome, error) {
	return e.processFrom(ctx, effects, ec, 0, &Result{})
}

// ProcessOne runs a single effect as a one-element sequence.
func (e *Engine) ProcessOne(ctx context.Context, eff effect.Effect, ec Context) (Outcome, error) {
	return e.Process(ctx, []effect.Effect{eff}, ec)
}

// Validate reports whether a single effect is structurally sound.
func (e *Engine) Validate(eff effect.Effect) error {
	return effect.Validate(eff)
}

// ValidateAll validates every effect in a sequence.
func (e *Engine) ValidateAll(effects []effect.Effect) error {
	return effect.ValidateAll(effects)
}

func (e *Engine) processFrom(ctx context.Context, effects []effect.Effect, ec Context, start int, acc *Result) (Outcome, error) {
	for i := start; i < len(effects); i++ {
		out, err := e.dispatch(ctx, effects[i], ec)
		if err != nil {
			return Outcome{}, err
		}
		if !out.done {
			return e.suspendSequence(ctx, effects, ec, i, acc, out), nil
		}
		acc.add(out.result)
	}
	acc.Success = acc.FailedEffects == 0
	return Outcome{Done: true, Result: acc}, nil
}

// suspendSequence wraps a suspended effect so that resuming it finishes the
// effect and then continues the remainder of the sequence. Re-suspension of
// the same effect (a branch with several choices) nests naturally.
func (e *Engine) suspendSequence(ctx context.Context, effects []effect.Effect, ec Context, index int, acc *Result, out effectOutcome) Outcome {
	return Outcome{
		Choice: out.choice,
		resume: func(optionID string) (Outcome, error) {
			next, err := out.resume(optionID)
			if err != nil {
				return Outcome{}, err
			}
			if !next.done {
				return e.suspendSequence(ctx, effects, ec, index, acc, next), nil
			}
			acc.add(next.result)
			return e.processFrom(ctx, effects, ec, index+1, acc)
		},
	}
}

// dispatch applies one effect. Validation failures are recorded results,
// not errors, except for group-template misuse which aborts.
func (e *Engine) dispatch(ctx context.Context, eff effect.Effect, ec Context) (effectOutcome, error) {
	if err := effect.Validate(eff); err != nil {
		if stderrors.Is(err, effect.ErrTemplateNotTargetable) || stderrors.Is(err, effect.ErrTargetTypeInvalid) {
			return effectOutcome{}, err
		}
		return failed(eff, err), nil
	}

	switch eff.Kind {
	case effect.KindResourceChange:
		return completed(e.applyResourceChange(ctx, eff)), nil
	case effect.KindCardDraw:
		return completed(e.applyCardDraw(ctx, eff)), nil
	case effect.KindCardDiscard:
		return completed(e.applyCardDiscard(ctx, eff)), nil
	case effect.KindCardActivation:
		p := eff.CardActivation
		return completed(e.outcome(eff, e.cards.Activate(ctx, p.PlayerID, p.CardID, p.Duration))), nil
	case effect.KindPlayerMovement:
		p := eff.PlayerMovement
		return completed(e.outcome(eff, e.movement.Move(ctx, p.PlayerID, p.DestinationSpace))), nil
	case effect.KindTurnControl:
		p := eff.TurnControl
		return completed(e.outcome(eff, e.turns.SetModifier(ctx, p.PlayerID, p.Action))), nil
	case effect.KindLog:
		p := eff.Log
		return completed(e.outcome(eff, e.history.AppendLog(ctx, p.Level, p.Message, eff.Source))), nil
	case effect.KindChoice:
		return e.dispatchChoice(eff)
	case effect.KindGroupTargeted:
		return e.dispatchGroup(ctx, eff, ec)
	case effect.KindConditional:
		return e.dispatchConditional(ctx, eff, ec)
	}
	return effectOutcome{}, fmt.Errorf("dispatch effect %q: %w", eff.Kind, effect.ErrKindUnknown)
}

func (e *Engine) outcome(eff effect.Effect, err error) EffectResult {
	return EffectResult{Effect: eff, Success: err == nil, Err: err}
}

func (e *Engine) applyResourceChange(ctx context.Context, eff effect.Effect) EffectResult {
	p := eff.ResourceChange
	var err error
	switch {
	case p.Amount == 0:
		// nothing to move
	case p.Resource == effect.ResourceMoney && p.Amount > 0:
		err = e.resources.AddMoney(ctx, p.PlayerID, p.Amount, eff.Source, eff.Reason)
	case p.Resource == effect.ResourceMoney:
		err = e.resources.SpendMoney(ctx, p.PlayerID, -p.Amount, eff.Source, eff.Reason)
	case p.Amount > 0:
		err = e.resources.AddTime(ctx, p.PlayerID, p.Amount, eff.Source, eff.Reason)
	default:
		err = e.resources.SpendTime(ctx, p.PlayerID, -p.Amount, eff.Source, eff.Reason)
	}
	return e.outcome(eff, err)
}

func (e *Engine) applyCardDraw(ctx context.Context, eff effect.Effect) EffectResult {
	p := eff.CardDraw
	_, err := e.cards.Draw(ctx, p.PlayerID, p.CardType, p.Count, eff.Source, eff.Reason)
	return e.outcome(eff, err)
}

func (e *Engine) applyCardDiscard(ctx context.Context, eff effect.Effect) EffectResult {
	p := eff.CardDiscard
	var err error
	if len(p.CardIDs) > 0 {
		err = e.cards.DiscardByIDs(ctx, p.PlayerID, p.CardIDs, eff.Source, eff.Reason)
	} else {
		err = e.cards.DiscardByType(ctx, p.PlayerID, p.CardType, p.Count, eff.Source, eff.Reason)
	}
	return e.outcome(eff, err)
}

// dispatchChoice opens a pending choice and suspends. A player with a
// choice already pending is caller misuse and aborts.
func (e *Engine) dispatchChoice(eff effect.Effect) (effectOutcome, error) {
	p := eff.Choice
	pending, err := e.choices.Create(p.PlayerID, p.Type, p.Prompt, p.Options)
	if err != nil {
		return effectOutcome{}, fmt.Errorf("create choice for %s: %w", p.PlayerID, err)
	}
	return effectOutcome{
		choice: pending,
		resume: func(optionID string) (effectOutcome, error) {
			return completed(EffectResult{Effect: eff, Success: true, OptionID: optionID}), nil
		},
	}, nil
}

// dispatchConditional evaluates branches in order and runs the first whose
// range contains the dice roll. No match is a successful no-op.
func (e *Engine) dispatchConditional(ctx context.Context, eff effect.Effect, ec Context) (effectOutcome, error) {
	for _, branch := range eff.Conditional.Branches {
		if ec.DiceRoll >= branch.Min && ec.DiceRoll <= branch.Max {
			parent := EffectResult{Effect: eff, Success: true}
			return e.processNested(ctx, branch.Effects, ec, 0, parent)
		}
	}
	return completed(EffectResult{Effect: eff, Success: true}), nil
}

// processNested runs a sub-sequence under a parent result, suspending the
// parent when a nested effect suspends.
func (e *Engine) processNested(ctx context.Context, effects []effect.Effect, ec Context, start int, parent EffectResult) (effectOutcome, error) {
	for i := start; i < len(effects); i++ {
		out, err := e.dispatch(ctx, effects[i], ec)
		if err != nil {
			return effectOutcome{}, err
		}
		if !out.done {
			return e.suspendNested(ctx, effects, ec, i, parent, out), nil
		}
		parent.Sub = append(parent.Sub, out.result)
		if !out.result.Success {
			parent.Success = false
		}
	}
	return completed(parent), nil
}

func (e *Engine) suspendNested(ctx context.Context, effects []effect.Effect, ec Context, index int, parent EffectResult, out effectOutcome) effectOutcome {
	return effectOutcome{
		choice: out.choice,
		resume: func(optionID string) (effectOutcome, error) {
			next, err := out.resume(optionID)
			if err != nil {
				return effectOutcome{}, err
			}
			if !next.done {
				return e.suspendNested(ctx, effects, ec, index, parent, next), nil
			}
			parent.Sub = append(parent.Sub, next.result)
			if !next.result.Success {
				parent.Success = false
			}
			return e.processNested(ctx, effects, ec, index+1, parent)
		},
	}
}
