package controller

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var errBadRequest = errors.New("bad request")

type BoardController struct {
	boardService *service.BoardService
	log          zerolog.Logger
}

func NewBoardController(boardService *service.BoardService, log zerolog.Logger) *BoardController {
	return &BoardController{boardService: boardService, log: log}
}

// squareRequest accepts either an algebraic name or a row/col pair.
type squareRequest struct {
	Square string `json:"square"`
	Row    *int   `json:"row"`
	Col    *int   `json:"col"`
}

func (r squareRequest) resolve() (model.Square, error) {
	if r.Square != "" {
		return model.ParseSquare(r.Square)
	}
	if r.Row == nil || r.Col == nil {
		return model.Square{}, fmt.Errorf("%w: square or row and col required", errBadRequest)
	}
	sq := model.Square{Row: *r.Row, Col: *r.Col}
	if !sq.InBounds() {
		return model.Square{}, fmt.Errorf("%w: %v", model.ErrOutOfBounds, sq)
	}
	return sq, nil
}

type moveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type fenRequest struct {
	FEN string `json:"fen"`
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrInvalidFEN):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func (bc *BoardController) fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		bc.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (bc *BoardController) CreateBoard(c *fiber.Ctx) error {
	boardID, state := bc.boardService.CreateBoard()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"boardId": boardID,
		"state":   state,
	})
}

func (bc *BoardController) GetState(c *fiber.Ctx) error {
	state, err := bc.boardService.GetState(c.Params("boardId"))
	if err != nil {
		return bc.fail(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) LegalMoves(c *fiber.Ctx) error {
	req := squareRequest{Square: c.Query("square")}
	if req.Square == "" {
		row, rerr := strconv.Atoi(c.Query("row"))
		col, cerr := strconv.Atoi(c.Query("col"))
		if rerr == nil && cerr == nil {
			req.Row, req.Col = &row, &col
		}
	}
	sq, err := req.resolve()
	if err != nil {
		return bc.fail(c, err)
	}

	moves, err := bc.boardService.LegalMoves(c.Params("boardId"), sq)
	if err != nil {
		return bc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"square": sq,
		"moves":  moves,
	})
}

func (bc *BoardController) Click(c *fiber.Ctx) error {
	var req squareRequest
	if err := c.BodyParser(&req); err != nil {
		return bc.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
	}
	sq, err := req.resolve()
	if err != nil {
		return bc.fail(c, err)
	}

	result, state, err := bc.boardService.Click(c.Params("boardId"), sq)
	if err != nil {
		return bc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"result": result,
		"state":  state,
	})
}

func (bc *BoardController) Move(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return bc.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
	}
	from, err := model.ParseSquare(req.From)
	if err != nil {
		return bc.fail(c, err)
	}
	to, err := model.ParseSquare(req.To)
	if err != nil {
		return bc.fail(c, err)
	}

	state, err := bc.boardService.Move(c.Params("boardId"), from, to)
	if err != nil {
		return bc.fail(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) Reset(c *fiber.Ctx) error {
	state, err := bc.boardService.Reset(c.Params("boardId"))
	if err != nil {
		return bc.fail(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) GetFEN(c *fiber.Ctx) error {
	fen, err := bc.boardService.FEN(c.Params("boardId"))
	if err != nil {
		return bc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"fen": fen,
	})
}

func (bc *BoardController) LoadFEN(c *fiber.Ctx) error {
	var req fenRequest
	if err := c.BodyParser(&req); err != nil {
		return bc.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
	}
	state, err := bc.boardService.LoadFEN(c.Params("boardId"), req.FEN)
	if err != nil {
		return bc.fail(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) DeleteBoard(c *fiber.Ctx) error {
	if err := bc.boardService.DeleteBoard(c.Params("boardId")); err != nil {
		return bc.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
