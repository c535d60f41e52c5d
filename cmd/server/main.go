package main

import (
	"log"
	"os"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/controller"
	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string
	root := &cobra.Command{
		Use:          "server",
		Short:        "Serve chess games over HTTP and WebSocket",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to the YAML config (defaults to $"+config.EnvPath+")")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	var archive service.Archive
	if cfg.Storage.Dir != "" || cfg.Storage.InMemory {
		s, err := store.Open(cfg.Storage.Dir, cfg.Storage.InMemory)
		if err != nil {
			return err
		}
		defer s.Close()
		archive = s
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-Side",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: cfg.Server.AllowOrigins != "*",
	}))
	if cfg.Server.RequestLog {
		app.Use(logger.New())
	}

	// Initialize services
	gameManager := service.NewGameManager(archive)
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsureSide())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		Origins:         []string{cfg.Server.AllowOrigins},
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsureSide())
	gameController.Routes(api.Group("/game"))

	log.Printf("server: listening addr=%s archive=%t", cfg.Server.Addr, archive != nil)
	return app.Listen(cfg.Server.Addr)
}
