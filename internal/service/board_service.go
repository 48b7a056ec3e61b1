package service

import (
	"fmt"

	"github.com/benbeisheim/chessboard-backend/internal/model"
)

// BoardService resolves board ids to sessions for the controllers.
type BoardService struct {
	sessions *SessionManager
}

func NewBoardService(sessions *SessionManager) *BoardService {
	return &BoardService{
		sessions: sessions,
	}
}

func (bs *BoardService) CreateBoard() (string, model.GameState) {
	s := bs.sessions.Create()
	return s.ID, s.State()
}

func (bs *BoardService) session(boardID string) (*Session, error) {
	s, err := bs.sessions.Get(boardID)
	if err != nil {
		return nil, fmt.Errorf("board %q: %w", boardID, err)
	}
	return s, nil
}

func (bs *BoardService) GetState(boardID string) (model.GameState, error) {
	s, err := bs.session(boardID)
	if err != nil {
		return model.GameState{}, err
	}
	return s.State(), nil
}

func (bs *BoardService) LegalMoves(boardID string, sq model.Square) ([]model.Square, error) {
	s, err := bs.session(boardID)
	if err != nil {
		return nil, err
	}
	return s.LegalMoves(sq), nil
}

func (bs *BoardService) Click(boardID string, sq model.Square) (model.ClickResult, model.GameState, error) {
	s, err := bs.session(boardID)
	if err != nil {
		return "", model.GameState{}, err
	}
	result, state := s.Click(sq)
	return result, state, nil
}

func (bs *BoardService) Move(boardID string, from, to model.Square) (model.GameState, error) {
	s, err := bs.session(boardID)
	if err != nil {
		return model.GameState{}, err
	}
	state, err := s.Move(from, to)
	if err != nil {
		return state, fmt.Errorf("failed to move: %w", err)
	}
	return state, nil
}

func (bs *BoardService) Reset(boardID string) (model.GameState, error) {
	s, err := bs.session(boardID)
	if err != nil {
		return model.GameState{}, err
	}
	return s.Reset(), nil
}

func (bs *BoardService) FEN(boardID string) (string, error) {
	s, err := bs.session(boardID)
	if err != nil {
		return "", err
	}
	return s.FEN(), nil
}

func (bs *BoardService) LoadFEN(boardID, fen string) (model.GameState, error) {
	s, err := bs.session(boardID)
	if err != nil {
		return model.GameState{}, err
	}
	state, err := s.LoadFEN(fen)
	if err != nil {
		return state, fmt.Errorf("failed to load position: %w", err)
	}
	return state, nil
}

func (bs *BoardService) DeleteBoard(boardID string) error {
	if err := bs.sessions.Delete(boardID); err != nil {
		return fmt.Errorf("board %q: %w", boardID, err)
	}
	return nil
}

func (bs *BoardService) RegisterConnection(boardID, clientID string, conn Conn) error {
	s, err := bs.session(boardID)
	if err != nil {
		return err
	}
	return s.Register(clientID, conn)
}

func (bs *BoardService) UnregisterConnection(boardID, clientID string, conn Conn) {
	s, err := bs.sessions.Get(boardID)
	if err != nil {
		return
	}
	s.Unregister(clientID, conn)
}

func (bs *BoardService) SendError(boardID, clientID string, err error) {
	s, gerr := bs.sessions.Get(boardID)
	if gerr != nil {
		return
	}
	s.SendError(clientID, err)
}
