package effect

import "strings"

// Kind identifies the effect variant.
type Kind string

const (
	// KindResourceChange credits or debits a player resource.
	KindResourceChange Kind = "resource_change"
	// KindCardDraw draws cards into a player's collection.
	KindCardDraw Kind = "card_draw"
	// KindCardDiscard removes cards from a player's collection.
	KindCardDiscard Kind = "card_discard"
	// KindCardActivation marks a held card active for a number of turns.
	KindCardActivation Kind = "card_activation"
	// KindPlayerMovement relocates a player to a destination space.
	KindPlayerMovement Kind = "player_movement"
	// KindTurnControl mutates turn-sequence bookkeeping for a player.
	KindTurnControl Kind = "turn_control"
	// KindChoice requests a decision from a player; it mutates nothing.
	KindChoice Kind = "choice"
	// KindGroupTargeted fans a template effect out to resolved targets.
	KindGroupTargeted Kind = "group_targeted"
	// KindConditional executes at most one branch based on context.
	KindConditional Kind = "conditional"
	// KindLog appends a message to the game history; it always succeeds.
	KindLog Kind = "log"
)

// Resource identifies a player resource pool.
type Resource string

const (
	// ResourceMoney is the player's money balance.
	ResourceMoney Resource = "MONEY"
	// ResourceTime is the player's time balance.
	ResourceTime Resource = "TIME"
)

// TurnAction identifies a turn-sequence mutation.
type TurnAction string

const (
	// TurnActionSkip marks the player's next turn as skipped.
	TurnActionSkip TurnAction = "SKIP_TURN"
	// TurnActionGrantReroll grants the player a reroll this turn.
	TurnActionGrantReroll TurnAction = "GRANT_REROLL"
)

// TargetType identifies how a targeted group resolves to players.
type TargetType string

const (
	// TargetSelf resolves to the acting player.
	TargetSelf TargetType = "SELF"
	// TargetOtherPlayerChoice asks the actor to pick one other player.
	TargetOtherPlayerChoice TargetType = "OTHER_PLAYER_CHOICE"
	// TargetAllOtherPlayers resolves to every player except the actor.
	TargetAllOtherPlayers TargetType = "ALL_OTHER_PLAYERS"
	// TargetAllPlayers resolves to every player including the actor.
	TargetAllPlayers TargetType = "ALL_PLAYERS"
)

// LogLevel classifies a log effect message.
type LogLevel string

const (
	// LogLevelInfo marks routine gameplay messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarning marks degraded or unsupported data paths.
	LogLevelWarning LogLevel = "warning"
)

// DurationIndefinite marks a card activation with no turn limit.
const DurationIndefinite = -1

// Effect is the envelope shared by every variant. Source identifies the
// effect's origin (card id, space name, dice context) and is never empty on
// a well-formed effect. Exactly one payload field matching Kind is set.
type Effect struct {
	Kind   Kind
	Source string
	Reason string

	ResourceChange *ResourceChange
	CardDraw       *CardDraw
	CardDiscard    *CardDiscard
	CardActivation *CardActivation
	PlayerMovement *PlayerMovement
	TurnControl    *TurnControl
	Choice         *Choice
	Group          *GroupTargeted
	Conditional    *Conditional
	Log            *Log
}

// ResourceChange credits (positive amount) or debits (negative amount) a
// resource. The sign is decided by the factory from the originating verb,
// never by the engine.
type ResourceChange struct {
	PlayerID string
	Resource Resource
	Amount   int
}

// CardDraw draws Count cards of CardType for a player.
type CardDraw struct {
	PlayerID string
	CardType string
	Count    int
}

// CardDiscard removes cards either by explicit ids or by type and count.
type CardDiscard struct {
	PlayerID string
	CardIDs  []string
	CardType string
	Count    int
}

// CardActivation marks a held card active. Duration counts remaining turns
// and decrements once per completed turn; DurationIndefinite never expires.
type CardActivation struct {
	PlayerID string
	CardID   string
	Duration int
}

// PlayerMovement relocates a player to a destination space.
type PlayerMovement struct {
	PlayerID         string
	DestinationSpace string
}

// TurnControl mutates turn bookkeeping for a player.
type TurnControl struct {
	PlayerID string
	Action   TurnAction
}

// Option is one selectable answer to a choice.
type Option struct {
	ID    string
	Label string
}

// Choice requests a decision from a player. It is a request, not a
// mutation; dispatch suspends until the choice is resolved externally.
type Choice struct {
	ID       string
	PlayerID string
	Type     string
	Prompt   string
	Options  []Option
}

// GroupTargeted fans Template out to each player resolved from TargetType
// at dispatch time. Template must be a targetable kind.
type GroupTargeted struct {
	TargetType TargetType
	Template   *Effect
	Prompt     string
}

// Branch pairs an inclusive value range with the effects to run when the
// evaluated context value falls inside it.
type Branch struct {
	Min     int
	Max     int
	Effects []Effect
}

// Conditional executes the first branch whose range matches the context
// dice value. Branches evaluate in declaration order; at most one runs.
type Conditional struct {
	PlayerID string
	Branches []Branch
}

// Log appends a message to the game history.
type Log struct {
	Message string
	Level   LogLevel
}

// Targetable reports whether the effect kind may serve as a group template.
func (e Effect) Targetable() bool {
	switch e.Kind {
	case KindResourceChange, KindCardDraw, KindCardDiscard, KindTurnControl:
		return true
	}
	return false
}

// PlayerID returns the player the effect addresses, when the variant has one.
func (e Effect) PlayerID() string {
	switch e.Kind {
	case KindResourceChange:
		if e.ResourceChange != nil {
			return e.ResourceChange.PlayerID
		}
	case KindCardDraw:
		if e.CardDraw != nil {
			return e.CardDraw.PlayerID
		}
	case KindCardDiscard:
		if e.CardDiscard != nil {
			return e.CardDiscard.PlayerID
		}
	case KindCardActivation:
		if e.CardActivation != nil {
			return e.CardActivation.PlayerID
		}
	case KindPlayerMovement:
		if e.PlayerMovement != nil {
			return e.PlayerMovement.PlayerID
		}
	case KindTurnControl:
		if e.TurnControl != nil {
			return e.TurnControl.PlayerID
		}
	case KindChoice:
		if e.Choice != nil {
			return e.Choice.PlayerID
		}
	case KindConditional:
		if e.Conditional != nil {
			return e.Conditional.PlayerID
		}
	}
	return ""
}

// WithPlayer returns a deep copy of the effect readdressed to playerID.
// Fan-out uses it to clone a group template per resolved target.
func (e Effect) WithPlayer(playerID string) Effect {
	clone := e.CloneDeep()
	playerID = strings.TrimSpace(playerID)
	switch clone.Kind {
	case KindResourceChange:
		if clone.ResourceChange != nil {
			clone.ResourceChange.PlayerID = playerID
		}
	case KindCardDraw:
		if clone.CardDraw != nil {
			clone.CardDraw.PlayerID = playerID
		}
	case KindCardDiscard:
		if clone.CardDiscard != nil {
			clone.CardDiscard.PlayerID = playerID
		}
	case KindCardActivation:
		if clone.CardActivation != nil {
			clone.CardActivation.PlayerID = playerID
		}
	case KindPlayerMovement:
		if clone.PlayerMovement != nil {
			clone.PlayerMovement.PlayerID = playerID
		}
	case KindTurnControl:
		if clone.TurnControl != nil {
			clone.TurnControl.PlayerID = playerID
		}
	case KindChoice:
		if clone.Choice != nil {
			clone.Choice.PlayerID = playerID
		}
	case KindConditional:
		if clone.Conditional != nil {
			clone.Conditional.PlayerID = playerID
		}
	}
	return clone
}

// CloneDeep returns a copy sharing no pointers with the receiver.
func (e Effect) CloneDeep() Effect {
	clone := e
	if e.ResourceChange != nil {
		payload := *e.ResourceChange
		clone.ResourceChange = &payload
	}
	if e.CardDraw != nil {
		payload := *e.CardDraw
		clone.CardDraw = &payload
	}
	if e.CardDiscard != nil {
		payload := *e.CardDiscard
		payload.CardIDs = append([]string(nil), e.CardDiscard.CardIDs...)
		clone.CardDiscard = &payload
	}
	if e.CardActivation != nil {
		payload := *e.CardActivation
		clone.CardActivation = &payload
	}
	if e.PlayerMovement != nil {
		payload := *e.PlayerMovement
		clone.PlayerMovement = &payload
	}
	if e.TurnControl != nil {
		payload := *e.TurnControl
		clone.TurnControl = &payload
	}
	if e.Choice != nil {
		payload := *e.Choice
		payload.Options = append([]Option(nil), e.Choice.Options...)
		clone.Choice = &payload
	}
	if e.Group != nil {
		payload := *e.Group
		if e.Group.Template != nil {
			template := e.Group.Template.CloneDeep()
			payload.Template = &template
		}
		clone.Group = &payload
	}
	if e.Conditional != nil {
		payload := *e.Conditional
		payload.Branches = make([]Branch, len(e.Conditional.Branches))
		for i, branch := range e.Conditional.Branches {
			cloned := branch
			cloned.Effects = make([]Effect, len(branch.Effects))
			for j, nested := range branch.Effects {
				cloned.Effects[j] = nested.CloneDeep()
			}
			payload.Branches[i] = cloned
		}
		clone.Conditional = &payload
	}
	if e.Log != nil {
		payload := *e.Log
		clone.Log = &payload
	}
	return clone
}
