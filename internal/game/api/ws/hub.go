package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/unravelhq/unravel/internal/game/app"
	"github.com/unravelhq/unravel/internal/game/domain/choice"
	apperrors "github.com/unravelhq/unravel/internal/platform/errors"
)

// Hub manages websocket connections and drives one game. All commands run
// on the hub goroutine, which keeps the game single-writer.
type Hub struct {
	game       *app.Game
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
}

// NewHub creates a hub for one game.
func NewHub(game *app.Game) *Hub {
	return &Hub{
		game:       game,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
	}
}

// Register queues a client for registration.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Run processes registrations and commands until Stop.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.sendStateTo(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case msg := <-h.incoming:
			h.handleMessage(ctx, msg)

		case <-ctx.Done():
			return
		case <-h.quit:
			return
		}
	}
}

// Stop terminates the hub loop.
func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) handleMessage(ctx context.Context, msg IncomingMessage) {
	if msg.Envelope.Type == MsgJoin {
		h.handleJoin(msg)
		return
	}
	if msg.Client.playerID == "" {
		h.sendError(msg.Client, apperrors.CodeUnknown, "join before sending commands")
		return
	}

	switch msg.Envelope.Type {
	case MsgPlayCard:
		var play PlayCardMsg
		if err := json.Unmarshal(msg.Envelope.Payload, &play); err != nil {
			h.sendError(msg.Client, apperrors.CodeUnknown, "invalid play_card message")
			return
		}
		out, err := h.game.PlayCard(ctx, msg.Client.playerID, play.CardID)
		h.finishAction(msg.Client, "play_card", out, err)

	case MsgEnterSpace:
		var enter EnterSpaceMsg
		if err := json.Unmarshal(msg.Envelope.Payload, &enter); err != nil {
			h.sendError(msg.Client, apperrors.CodeUnknown, "invalid enter_space message")
			return
		}
		out, err := h.game.EnterSpace(ctx, msg.Client.playerID, enter.Space)
		h.finishAction(msg.Client, "enter_space", out, err)

	case MsgRollDice:
		out, err := h.game.RollDice(ctx, msg.Client.playerID)
		h.finishAction(msg.Client, "roll_dice", out, err)

	case MsgResolveChoice:
		var resolve ResolveChoiceMsg
		if err := json.Unmarshal(msg.Envelope.Payload, &resolve); err != nil {
			h.sendError(msg.Client, apperrors.CodeUnknown, "invalid resolve_choice message")
			return
		}
		out, err := h.game.ResolveChoice(ctx, msg.Client.playerID, resolve.ChoiceID, resolve.OptionID)
		h.finishAction(msg.Client, "resolve_choice", out, err)

	case MsgEndTurn:
		next, err := h.game.EndTurn(ctx, msg.Client.playerID)
		if err != nil {
			h.sendAppError(msg.Client, err)
			return
		}
		h.broadcast(MsgActionResult, ActionResultMsg{
			Action:     "end_turn",
			PlayerID:   msg.Client.playerID,
			NextPlayer: next,
			Success:    true,
		})
		h.broadcastState()

	case MsgGetLog:
		var get GetLogMsg
		if len(msg.Envelope.Payload) > 0 {
			if err := json.Unmarshal(msg.Envelope.Payload, &get); err != nil {
				h.sendError(msg.Client, apperrors.CodeUnknown, "invalid get_log message")
				return
			}
		}
		entries := h.game.Log(get.Limit)
		logMsg := GameLogMsg{Entries: make([]LogEntryView, 0, len(entries))}
		for _, entry := range entries {
			logMsg.Entries = append(logMsg.Entries, LogEntryView{
				Turn:     entry.Turn,
				PlayerID: entry.PlayerID,
				Level:    entry.Level,
				Message:  entry.Message,
				Source:   entry.Source,
			})
		}
		h.sendTo(msg.Client, MsgGameLog, logMsg)

	default:
		h.sendError(msg.Client, apperrors.CodeUnknown, fmt.Sprintf("unknown message type %q", msg.Envelope.Type))
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join JoinMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &join); err != nil || join.PlayerID == "" {
		h.sendError(msg.Client, apperrors.CodeUnknown, "invalid join message")
		return
	}
	seated := false
	for _, state := range h.game.Players() {
		if state.ID == join.PlayerID {
			seated = true
			break
		}
	}
	if !seated {
		h.sendError(msg.Client, apperrors.CodePlayerNotFound, fmt.Sprintf("no seat for player %q", join.PlayerID))
		return
	}
	msg.Client.playerID = join.PlayerID
	h.sendStateTo(msg.Client)
	if pending, ok := h.game.PendingChoice(join.PlayerID); ok {
		h.sendTo(msg.Client, MsgChoiceRequest, choiceRequest(pending))
	}
}

// finishAction reports one processed trigger: errors go back to the caller,
// results and choice requests go to everyone.
func (h *Hub) finishAction(client *Client, action string, out app.TriggerOutcome, err error) {
	if err != nil {
		h.sendAppError(client, err)
		return
	}
	if out.Suspended() {
		h.broadcast(MsgChoiceRequest, choiceRequest(out.Choice))
		h.broadcastState()
		return
	}
	result := ActionResultMsg{
		Action:            action,
		PlayerID:          client.playerID,
		DiceRoll:          out.DiceRoll,
		Success:           out.Result.Success,
		TotalEffects:      out.Result.TotalEffects,
		SuccessfulEffects: out.Result.SuccessfulEffects,
		FailedEffects:     out.Result.FailedEffects,
	}
	for _, processErr := range out.Result.Errors {
		result.Errors = append(result.Errors, processErr.Error())
	}
	h.broadcast(MsgActionResult, result)
	h.broadcastState()
}

func choiceRequest(pending *choice.Choice) ChoiceRequestMsg {
	request := ChoiceRequestMsg{
		ChoiceID: pending.ID,
		PlayerID: pending.PlayerID,
		Type:     pending.Type,
		Prompt:   pending.Prompt,
	}
	for _, option := range pending.Options {
		request.Options = append(request.Options, OptionView{ID: option.ID, Label: option.Label})
	}
	return request
}

func (h *Hub) stateMsg() StateMsg {
	state := StateMsg{
		GameID:        h.game.ID(),
		Turn:          h.game.Turn(),
		CurrentPlayer: h.game.CurrentPlayer(),
	}
	for _, p := range h.game.Players() {
		view := PlayerView{
			PlayerID:      p.ID,
			Name:          p.Name,
			Money:         p.Money,
			Time:          p.Time,
			Space:         p.Space,
			SkipTurns:     p.SkipTurns,
			RerollGranted: p.RerollGranted,
		}
		for _, card := range p.Hand {
			view.Hand = append(view.Hand, HeldCardView{
				InstanceID: card.InstanceID,
				CardID:     card.CardID,
				CardType:   card.CardType,
			})
		}
		for _, card := range p.Active {
			view.Active = append(view.Active, ActiveCardView{
				CardID:         card.CardID,
				TurnsRemaining: card.TurnsRemaining,
			})
		}
		state.Players = append(state.Players, view)
	}
	return state
}

func (h *Hub) sendStateTo(client *Client) {
	h.sendTo(client, MsgState, h.stateMsg())
}

func (h *Hub) broadcastState() {
	h.broadcast(MsgState, h.stateMsg())
}

func (h *Hub) broadcast(typ string, payload any) {
	env, err := NewEnvelope(typ, payload)
	if err != nil {
		return
	}
	for client := range h.clients {
		client.SendEnvelope(env)
	}
}

func (h *Hub) sendTo(client *Client, typ string, payload any) {
	env, err := NewEnvelope(typ, payload)
	if err != nil {
		return
	}
	client.SendEnvelope(env)
}

// sendAppError maps a domain error to a wire error with its code.
func (h *Hub) sendAppError(client *Client, err error) {
	h.sendError(client, apperrors.CodeOf(err), err.Error())
}

func (h *Hub) sendError(client *Client, code apperrors.Code, message string) {
	h.sendTo(client, MsgError, ErrorMsg{Code: string(code), Message: message})
}
