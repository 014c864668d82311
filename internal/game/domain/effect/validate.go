package effect

import (
	"fmt"

	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
)

// Validation errors shared by dispatch sites.
var (
	// ErrKindUnknown indicates an effect kind outside the closed set.
	ErrKindUnknown = apperrors.New(apperrors.CodeEffectKindUnknown, "effect kind is unknown")
	// ErrSourceMissing indicates an effect without an origin identifier.
	ErrSourceMissing = apperrors.New(apperrors.CodeEffectSourceMissing, "effect source is required")
	// ErrPlayerMissing indicates an effect without a player id.
	ErrPlayerMissing = apperrors.New(apperrors.CodeEffectPlayerMissing, "effect player id is required")
	// ErrTemplateNotTargetable indicates a group wrapping a non-targetable kind.
	ErrTemplateNotTargetable = apperrors.New(apperrors.CodeEffectTemplateForbidden, "group template must be a targetable effect")
	// ErrTargetTypeInvalid indicates an unknown group target type.
	ErrTargetTypeInvalid = apperrors.New(apperrors.CodeEffectTargetTypeInvalid, "group target type is invalid")
	// ErrResourceInvalid indicates an unknown resource name.
	ErrResourceInvalid = apperrors.New(apperrors.CodeEffectResourceInvalid, "resource must be MONEY or TIME")
	// ErrCountInvalid indicates a non-positive card count.
	ErrCountInvalid = apperrors.New(apperrors.CodeEffectCountInvalid, "card count must be greater than zero")
	// ErrDestinationMissing indicates a movement without a destination.
	ErrDestinationMissing = apperrors.New(apperrors.CodeEffectDestinationMissing, "movement destination is required")
)

// Validate performs the structural pre-flight check for one effect. It never
// executes anything and is idempotent: the same unmodified effect always
// yields the same result.
func Validate(e Effect) error {
	if e.Source == "" {
		return ErrSourceMissing
	}
	switch e.Kind {
	case KindResourceChange:
		payload := e.ResourceChange
		if payload == nil || payload.PlayerID == "" {
			return ErrPlayerMissing
		}
		if payload.Resource != ResourceMoney && payload.Resource != ResourceTime {
			return ErrResourceInvalid
		}
		return nil
	case KindCardDraw:
		payload := e.CardDraw
		if payload == nil || payload.PlayerID == "" {
			return ErrPlayerMissing
		}
		if payload.Count <= 0 {
			return ErrCountInvalid
		}
		return nil
	case KindCardDiscard:
		payload := e.CardDiscard
		if payload == nil || payload.PlayerID == "" {
			return ErrPlayerMissing
		}
		if len(payload.CardIDs) == 0 && payload.Count <= 0 {
			return ErrCountInvalid
		}
		return nil
	case KindCardActivation:
		payload := e.CardActivation
		if payload == nil || payload.PlayerID == "" {
			return ErrPlayerMissing
		}
		if payload.CardID == "" {
			return apperrors.New(apperrors.CodeCardNotFound, "activation card id is required")
		}
		if payload.Duration == 0 || payload.Duration < DurationIndefinite {
			return fmt.Errorf("activation duration must be positive or indefinite: %d", payload.Duration)
		}
		return nil
	case KindPlayerMovement:
		payload := e.PlayerMovement
		if payload == nil || payload.PlayerID == "" {
			return ErrPlayerMissing
		}
		if payload.DestinationSpace == "" {
			return ErrDestinationMissing
		}
		return nil
	case KindTurnControl:
		payload := e.TurnControl
		if payload == nil || payload.PlayerID == "" {
			return ErrPlayerMissing
		}
		switch payload.Action {
		case TurnActionSkip, TurnActionGrantReroll:
			return nil
		}
		return apperrors.New(apperrors.CodeTurnModifierInvalid, "turn action is invalid")
	case KindChoice:
		payload := e.Choice
		if payload == nil || payload.PlayerID == "" {
			return ErrPlayerMissing
		}
		if len(payload.Options) == 0 {
			return apperrors.New(apperrors.CodeChoiceOptionsEmpty, "choice must carry at least one option")
		}
		return nil
	case KindGroupTargeted:
		payload := e.Group
		if payload == nil || payload.Template == nil {
			return ErrTemplateNotTargetable
		}
		switch payload.TargetType {
		case TargetSelf, TargetOtherPlayerChoice, TargetAllOtherPlayers, TargetAllPlayers:
			// allowed
		default:
			return ErrTargetTypeInvalid
		}
		if !payload.Template.Targetable() {
			return ErrTemplateNotTargetable
		}
		// The template player is assigned per target at fan-out; check the
		// rest of its shape with a placeholder.
		return Validate(payload.Template.WithPlayer("-"))
	case KindConditional:
		payload := e.Conditional
		if payload == nil || payload.PlayerID == "" {
			return ErrPlayerMissing
		}
		for _, branch := range payload.Branches {
			if branch.Max < branch.Min {
				return fmt.Errorf("branch range inverted: [%d, %d]", branch.Min, branch.Max)
			}
			for _, nested := range branch.Effects {
				if err := Validate(nested); err != nil {
					return err
				}
			}
		}
		return nil
	case KindLog:
		if e.Log == nil || e.Log.Message == "" {
			return fmt.Errorf("log message is required")
		}
		return nil
	default:
		return ErrKindUnknown
	}
}

// ValidateAll validates a sequence and reports the first failure with its
// position.
func ValidateAll(effects []Effect) error {
	for i, e := range effects {
		if err := Validate(e); err != nil {
			return fmt.Errorf("effect %d (%s): %w", i, e.Kind, err)
		}
	}
	return nil
}
