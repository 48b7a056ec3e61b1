package server

import (
	"net/http"
	"strings"

	"github.com/benbeisheim/chessboard-backend/internal/config"
	"github.com/benbeisheim/chessboard-backend/internal/controller"
	"github.com/benbeisheim/chessboard-backend/internal/middleware"
	"github.com/benbeisheim/chessboard-backend/internal/service"
	"github.com/benbeisheim/chessboard-backend/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

// NewApp wires middleware, the REST and websocket routes and the browser
// shell onto a fiber app.
func NewApp(cfg config.Config, log zerolog.Logger, boardService *service.BoardService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chessboard",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Client-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	boardController := controller.NewBoardController(boardService, log)
	wsController := controller.NewWebSocketController(boardService, log)

	app.Use("/ws", middleware.EnsureClientID())
	app.Get("/ws/board/:boardId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         splitOrigins(cfg.AllowOrigins),
	}))

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	boards := api.Group("/board")
	boards.Post("/", boardController.CreateBoard)
	boards.Get("/:boardId", boardController.GetState)
	boards.Delete("/:boardId", boardController.DeleteBoard)
	boards.Get("/:boardId/moves", boardController.LegalMoves)
	boards.Post("/:boardId/click", boardController.Click)
	boards.Post("/:boardId/move", boardController.Move)
	boards.Post("/:boardId/reset", boardController.Reset)
	boards.Get("/:boardId/fen", boardController.GetFEN)
	boards.Put("/:boardId/fen", boardController.LoadFEN)

	app.Use("/", filesystem.New(filesystem.Config{
		Root:  http.FS(web.Static()),
		Index: "index.html",
	}))

	return app
}

func splitOrigins(s string) []string {
	origins := strings.Split(s, ",")
	for i, o := range origins {
		origins[i] = strings.TrimSpace(o)
	}
	return origins
}
