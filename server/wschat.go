package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"evroute/metrics/counters"
	"evroute/utility"
)

type chatSocket struct {
	conn      *websocket.Conn
	sessionId string
}

type wsChatTurn struct {
	Message string `json:"message"`
}

type wsChatAnswer struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

// handleChatWs upgrades the connection and runs an assistant chat session
// over it, one question per message.
func (s *Server) handleChatWs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.logger.Debug(fmt.Sprintf("chat connection initiated from remote %s", r.RemoteAddr))

	s.upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed: ", err)
		return
	}

	ws := chatSocket{
		conn:      conn,
		sessionId: utility.NewUUID(),
	}
	s.logger.Debug(fmt.Sprintf("chat session %s ready", ws.sessionId))

	go s.chatReader(&ws)
}

func (s *Server) chatReader(ws *chatSocket) {
	conn := ws.conn
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug(fmt.Sprintf("chat session %s leaving", ws.sessionId))
			} else {
				s.logger.Debug(fmt.Sprintf("chat session %s closing: %s", ws.sessionId, err))
			}
			err = conn.Close()
			if err != nil {
				s.logger.Warn(fmt.Sprintf("error while closing chat session %s %s", ws.sessionId, err))
			}
			return
		}

		var turn wsChatTurn
		if err = json.Unmarshal(message, &turn); err != nil || turn.Message == "" {
			// plain text is accepted as the question itself
			turn.Message = string(message)
		}
		reply, fallback := s.handler.chat.Reply(context.Background(), turn.Message)
		if fallback {
			counters.CountAssistantFallback()
		}
		s.logger.FeatureEvent("Chat", ws.sessionId, fmt.Sprintf("answered %d chars, fallback=%v", len(reply), fallback))

		data, err := json.Marshal(wsChatAnswer{Reply: reply, Fallback: fallback})
		if err != nil {
			s.logger.Error("error encoding chat answer", err)
			continue
		}
		if err = conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Error("error sending chat answer", err)
		}
	}
}
