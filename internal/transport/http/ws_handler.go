package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"quizroom/internal/app"
	"quizroom/internal/domain"
)

// WSHandler attaches hosts and players to a running game over a
// websocket. The socket carries game snapshots out and player/host
// commands in; joining itself happens over REST beforehand.
type WSHandler struct {
	games    *app.GameService
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewWSHandler(games *app.GameService) *WSHandler {
	return &WSHandler{
		games: games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: slog.Default(),
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

type setCorrectPayload struct {
	OptionID string `json:"optionId"`
}

type kickPayload struct {
	PlayerID string `json:"playerId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the connection and wires it into the game session.
// The caller identifies as either the game's host or a joined player;
// anyone else is rejected before the upgrade.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	clientID := r.URL.Query().Get("playerId")
	if gameID == "" || clientID == "" {
		http.Error(w, "missing gameId or playerId", http.StatusBadRequest)
		return
	}
	if err := h.games.Authorize(gameID, clientID); err != nil {
		status := http.StatusForbidden
		if err == domain.ErrGameNotFound {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := h.games.Subscribe(gameID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	snap, err := h.games.Snapshot(gameID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	isHost := clientID == snap.HostID

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("ws write error", "gameId", gameID, "err", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				if !isHost && !playerPresent(update, clientID) {
					// Kicked or swept for absence: tell the client, then
					// let the read loop tear the socket down.
					select {
					case send <- outboundMessage[any]{Type: "removed", Payload: errorPayload{Message: "you were removed from the game"}}:
					case <-closeSignals:
					}
					_ = conn.Close()
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	h.games.Heartbeat(gameID, clientID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "heartbeat":
			h.games.Heartbeat(gameID, clientID)
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errMsg("invalid answer payload")
				continue
			}
			result, err := h.games.SubmitAnswer(r.Context(), gameID, clientID, payload.QuestionID, payload.OptionID)
			if err != nil {
				send <- errMsg(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: result}
		case "start":
			if err := h.games.Start(r.Context(), gameID, clientID); err != nil {
				send <- errMsg(err.Error())
			}
		case "next":
			if err := h.games.Next(r.Context(), gameID, clientID); err != nil {
				send <- errMsg(err.Error())
			}
		case "end":
			if err := h.games.End(r.Context(), gameID, clientID); err != nil {
				send <- errMsg(err.Error())
			}
		case "setCorrect":
			var payload setCorrectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errMsg("invalid setCorrect payload")
				continue
			}
			if err := h.games.SetCorrectAnswer(r.Context(), gameID, clientID, payload.OptionID); err != nil {
				send <- errMsg(err.Error())
			}
		case "kick":
			var payload kickPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errMsg("invalid kick payload")
				continue
			}
			if err := h.games.RemovePlayer(r.Context(), gameID, clientID, payload.PlayerID); err != nil {
				send <- errMsg(err.Error())
			}
		default:
			send <- errMsg("unsupported message type")
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

func errMsg(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
}

func playerPresent(view domain.GameView, playerID string) bool {
	for _, p := range view.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}
