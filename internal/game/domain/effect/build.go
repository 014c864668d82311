package effect

import "strings"

// NewResourceChange builds a resource credit or debit effect. Amount sign is
// the caller's responsibility: gain/add verbs map to positive amounts,
// lose/pay verbs to negative ones.
func NewResourceChange(playerID string, resource Resource, amount int, source, reason string) Effect {
	return Effect{
		Kind:   KindResourceChange,
		Source: strings.TrimSpace(source),
		Reason: strings.TrimSpace(reason),
		ResourceChange: &ResourceChange{
			PlayerID: strings.TrimSpace(playerID),
			Resource: resource,
			Amount:   amount,
		},
	}
}

// NewCardDraw builds a card draw effect.
func NewCardDraw(playerID, cardType string, count int, source, reason string) Effect {
	return Effect{
		Kind:   KindCardDraw,
		Source: strings.TrimSpace(source),
		Reason: strings.TrimSpace(reason),
		CardDraw: &CardDraw{
			PlayerID: strings.TrimSpace(playerID),
			CardType: strings.ToUpper(strings.TrimSpace(cardType)),
			Count:    count,
		},
	}
}

// NewCardDiscardByType builds a discard effect addressed by type and count.
func NewCardDiscardByType(playerID, cardType string, count int, source, reason string) Effect {
	return Effect{
		Kind:   KindCardDiscard,
		Source: strings.TrimSpace(source),
		Reason: strings.TrimSpace(reason),
		CardDiscard: &CardDiscard{
			PlayerID: strings.TrimSpace(playerID),
			CardType: strings.ToUpper(strings.TrimSpace(cardType)),
			Count:    count,
		},
	}
}

// NewCardDiscardByIDs builds a discard effect addressed by explicit card ids.
func NewCardDiscardByIDs(playerID string, cardIDs []string, source, reason string) Effect {
	return Effect{
		Kind:   KindCardDiscard,
		Source: strings.TrimSpace(source),
		Reason: strings.TrimSpace(reason),
		CardDiscard: &CardDiscard{
			PlayerID: strings.TrimSpace(playerID),
			CardIDs:  append([]string(nil), cardIDs...),
		},
	}
}

// NewCardActivation builds a card activation effect. Duration counts turns
// remaining; pass DurationIndefinite for cards that never expire.
func NewCardActivation(playerID, cardID string, duration int, source, reason string) Effect {
	return Effect{
		Kind:   KindCardActivation,
		Source: strings.TrimSpace(source),
		Reason: strings.TrimSpace(reason),
		CardActivation: &CardActivation{
			PlayerID: strings.TrimSpace(playerID),
			CardID:   strings.TrimSpace(cardID),
			Duration: duration,
		},
	}
}

// NewPlayerMovement builds a movement effect to a destination space.
func NewPlayerMovement(playerID, destinationSpace, source, reason string) Effect {
	return Effect{
		Kind:   KindPlayerMovement,
		Source: strings.TrimSpace(source),
		Reason: strings.TrimSpace(reason),
		PlayerMovement: &PlayerMovement{
			PlayerID:         strings.TrimSpace(playerID),
			DestinationSpace: strings.TrimSpace(destinationSpace),
		},
	}
}

// NewTurnControl builds a turn-sequence mutation effect.
func NewTurnControl(playerID string, action TurnAction, source, reason string) Effect {
	return Effect{
		Kind:   KindTurnControl,
		Source: strings.TrimSpace(source),
		Reason: strings.TrimSpace(reason),
		TurnControl: &TurnControl{
			PlayerID: strings.TrimSpace(playerID),
			Action:   action,
		},
	}
}

// NewChoice builds a standalone choice request.
func NewChoice(id, playerID, choiceType, prompt string, options []Option, source string) Effect {
	return Effect{
		Kind:   KindChoice,
		Source: strings.TrimSpace(source),
		Choice: &Choice{
			ID:       strings.TrimSpace(id),
			PlayerID: strings.TrimSpace(playerID),
			Type:     strings.TrimSpace(choiceType),
			Prompt:   strings.TrimSpace(prompt),
			Options:  append([]Option(nil), options...),
		},
	}
}

// NewGroupTargeted wraps a targetable template for fan-out at dispatch time.
func NewGroupTargeted(targetType TargetType, template Effect, prompt, source string) Effect {
	cloned := template.CloneDeep()
	return Effect{
		Kind:   KindGroupTargeted,
		Source: strings.TrimSpace(source),
		Group: &GroupTargeted{
			TargetType: targetType,
			Template:   &cloned,
			Prompt:     strings.TrimSpace(prompt),
		},
	}
}

// NewConditional builds a first-match conditional over dice branches.
func NewConditional(playerID string, branches []Branch, source, reason string) Effect {
	copied := make([]Branch, len(branches))
	for i, branch := range branches {
		cloned := branch
		cloned.Effects = make([]Effect, len(branch.Effects))
		for j, nested := range branch.Effects {
			cloned.Effects[j] = nested.CloneDeep()
		}
		copied[i] = cloned
	}
	return Effect{
		Kind:   KindConditional,
		Source: strings.TrimSpace(source),
		Reason: strings.TrimSpace(reason),
		Conditional: &Conditional{
			PlayerID: strings.TrimSpace(playerID),
			Branches: copied,
		},
	}
}

// NewLog builds a history log effect.
func NewLog(message string, level LogLevel, source string) Effect {
	if level == "" {
		level = LogLevelInfo
	}
	return Effect{
		Kind:   KindLog,
		Source: strings.TrimSpace(source),
		Log: &Log{
			Message: strings.TrimSpace(message),
			Level:   level,
		},
	}
}
