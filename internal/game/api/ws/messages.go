package ws

import "encoding/json"

// Envelope is the standard websocket message wrapper.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope creates an envelope with a JSON-encoded payload.
func NewEnvelope(typ string, payload any) (Envelope, error) {
	if payload == nil {
		return Envelope{Type: typ}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typ, Payload: data}, nil
}

// Message types: server to client.
const (
	MsgState         = "state"
	MsgActionResult  = "action_result"
	MsgChoiceRequest = "choice_request"
	MsgGameLog       = "game_log"
	MsgError         = "error"
)

// Message types: client to server.
const (
	MsgJoin          = "join"
	MsgPlayCard      = "play_card"
	MsgEnterSpace    = "enter_space"
	MsgRollDice      = "roll_dice"
	MsgResolveChoice = "resolve_choice"
	MsgEndTurn       = "end_turn"
	MsgGetLog        = "get_log"
)

// JoinMsg binds a connection to a seat.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
}

// PlayCardMsg plays a held card.
type PlayCardMsg struct {
	CardID string `json:"card_id"`
}

// EnterSpaceMsg moves the player onto a space.
type EnterSpaceMsg struct {
	Space string `json:"space"`
}

// ResolveChoiceMsg answers a pending choice.
type ResolveChoiceMsg struct {
	ChoiceID string `json:"choice_id"`
	OptionID string `json:"option_id"`
}

// GetLogMsg requests the journal tail.
type GetLogMsg struct {
	Limit int `json:"limit"`
}

// ErrorMsg reports a rejected command.
type ErrorMsg struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HeldCardView is one hand card in a state broadcast.
type HeldCardView struct {
	InstanceID string `json:"instance_id"`
	CardID     string `json:"card_id"`
	CardType   string `json:"card_type"`
}

// ActiveCardView is one active card in a state broadcast.
type ActiveCardView struct {
	CardID         string `json:"card_id"`
	TurnsRemaining int    `json:"turns_remaining"`
}

// PlayerView is one player's visible state.
type PlayerView struct {
	PlayerID      string           `json:"player_id"`
	Name          string           `json:"name"`
	Money         int              `json:"money"`
	Time          int              `json:"time"`
	Space         string           `json:"space"`
	Hand          []HeldCardView   `json:"hand"`
	Active        []ActiveCardView `json:"active"`
	SkipTurns     int              `json:"skip_turns"`
	RerollGranted bool             `json:"reroll_granted"`
}

// StateMsg is the full game state broadcast.
type StateMsg struct {
	GameID        string       `json:"game_id"`
	Turn          int          `json:"turn"`
	CurrentPlayer string       `json:"current_player"`
	Players       []PlayerView `json:"players"`
}

// OptionView is one selectable choice option.
type OptionView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ChoiceRequestMsg announces a pending choice suspending the match.
type ChoiceRequestMsg struct {
	ChoiceID string       `json:"choice_id"`
	PlayerID string       `json:"player_id"`
	Type     string       `json:"choice_type"`
	Prompt   string       `json:"prompt"`
	Options  []OptionView `json:"options"`
}

// ActionResultMsg summarizes a completed command.
type ActionResultMsg struct {
	Action            string   `json:"action"`
	PlayerID          string   `json:"player_id"`
	DiceRoll          int      `json:"dice_roll,omitempty"`
	NextPlayer        string   `json:"next_player,omitempty"`
	Success           bool     `json:"success"`
	TotalEffects      int      `json:"total_effects"`
	SuccessfulEffects int      `json:"successful_effects"`
	FailedEffects     int      `json:"failed_effects"`
	Errors            []string `json:"errors,omitempty"`
}

// LogEntryView is one journal entry on the wire.
type LogEntryView struct {
	Turn     int    `json:"turn"`
	PlayerID string `json:"player_id"`
	Level    string `json:"level"`
	Message  string `json:"message"`
	Source   string `json:"source"`
}

// GameLogMsg carries a journal tail.
type GameLogMsg struct {
	Entries []LogEntryView `json:"entries"`
}
