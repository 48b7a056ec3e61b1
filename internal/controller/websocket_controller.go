package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chessboard-backend/internal/middleware"
	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/service"
	"github.com/benbeisheim/chessboard-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type WebSocketController struct {
	boardService *service.BoardService
	log          zerolog.Logger
}

func NewWebSocketController(boardService *service.BoardService, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		boardService: boardService,
		log:          log,
	}
}

// HandleConnection serves one websocket client until it disconnects.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	boardID := c.Params("boardId")
	clientID, _ := c.Locals(middleware.ClientIDKey).(string)
	log := wsc.log.With().Str("board", boardID).Str("client", clientID).Logger()

	if err := wsc.boardService.RegisterConnection(boardID, clientID, c); err != nil {
		log.Warn().Err(err).Msg("failed to register connection")
		c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		c.Close()
		return
	}
	defer wsc.boardService.UnregisterConnection(boardID, clientID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("read error")
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Msg("parse error")
			wsc.boardService.SendError(boardID, clientID, fmt.Errorf("malformed message: %w", err))
			continue
		}

		if err := wsc.handleMessage(boardID, msg); err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("message rejected")
			wsc.boardService.SendError(boardID, clientID, err)
			if errors.Is(err, service.ErrSessionNotFound) {
				return
			}
		}
	}
}

// handleMessage applies one client message to the board. The resulting
// state reaches every client through the session broadcast.
func (wsc *WebSocketController) handleMessage(boardID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeClick:
		var p ws.ClickPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		_, _, err := wsc.boardService.Click(boardID, model.Square{Row: p.Row, Col: p.Col})
		return err

	case ws.MessageTypeMove:
		var p ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		from, err := model.ParseSquare(p.From)
		if err != nil {
			return err
		}
		to, err := model.ParseSquare(p.To)
		if err != nil {
			return err
		}
		_, err = wsc.boardService.Move(boardID, from, to)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.boardService.Reset(boardID)
		return err

	case ws.MessageTypeLoadFEN:
		var p ws.FENPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return err
		}
		_, err := wsc.boardService.LoadFEN(boardID, p.FEN)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
