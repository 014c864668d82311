// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Effect errors
	CodeEffectKindUnknown        Code = "EFFECT_KIND_UNKNOWN"
	CodeEffectSourceMissing      Code = "EFFECT_SOURCE_MISSING"
	CodeEffectPlayerMissing      Code = "EFFECT_PLAYER_MISSING"
	CodeEffectTemplateForbidden  Code = "EFFECT_TEMPLATE_FORBIDDEN"
	CodeEffectTargetTypeInvalid  Code = "EFFECT_TARGET_TYPE_INVALID"
	CodeEffectResourceInvalid    Code = "EFFECT_RESOURCE_INVALID"
	CodeEffectCountInvalid       Code = "EFFECT_COUNT_INVALID"
	CodeEffectDestinationMissing Code = "EFFECT_DESTINATION_MISSING"

	// Choice errors
	CodeChoicePending       Code = "CHOICE_PENDING"
	CodeChoiceNotFound      Code = "CHOICE_NOT_FOUND"
	CodeChoiceNotOwned      Code = "CHOICE_NOT_OWNED"
	CodeChoiceOptionInvalid Code = "CHOICE_OPTION_INVALID"
	CodeChoiceOptionsEmpty  Code = "CHOICE_OPTIONS_EMPTY"

	// Resource errors
	CodeResourceInsufficientMoney Code = "RESOURCE_INSUFFICIENT_MONEY"
	CodeResourceInsufficientTime  Code = "RESOURCE_INSUFFICIENT_TIME"
	CodeResourceAmountInvalid     Code = "RESOURCE_AMOUNT_INVALID"

	// Card errors
	CodeCardNotFound        Code = "CARD_NOT_FOUND"
	CodeCardTypeUnknown     Code = "CARD_TYPE_UNKNOWN"
	CodeCardNotHeld         Code = "CARD_NOT_HELD"
	CodeCardPhaseRestricted Code = "CARD_PHASE_RESTRICTED"

	// Movement errors
	CodeSpaceUnknown     Code = "SPACE_UNKNOWN"
	CodeMoveNotReachable Code = "MOVE_NOT_REACHABLE"

	// Turn errors
	CodeTurnNotActive       Code = "TURN_NOT_ACTIVE"
	CodeTurnModifierInvalid Code = "TURN_MODIFIER_INVALID"

	// Player errors
	CodePlayerNotFound Code = "PLAYER_NOT_FOUND"

	// Dice errors
	CodeDiceMissing       Code = "DICE_MISSING"
	CodeDiceInvalidSpec   Code = "DICE_INVALID_SPEC"
	CodeDiceAlreadyRolled Code = "DICE_ALREADY_ROLLED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
