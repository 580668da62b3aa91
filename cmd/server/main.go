package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EnzoPetry/Dice/internal/api/handlers"
	"github.com/EnzoPetry/Dice/internal/api/middleware"
	"github.com/EnzoPetry/Dice/internal/auth"
	"github.com/EnzoPetry/Dice/internal/config"
	"github.com/EnzoPetry/Dice/internal/database"
	"github.com/EnzoPetry/Dice/internal/logger"
	"github.com/EnzoPetry/Dice/internal/realtime"
	"github.com/EnzoPetry/Dice/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; the web application keeps its secrets there.
	_ = godotenv.Load()

	cfg, err := config.Load(config.Overrides{})
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Infof("Opening database: %s", cfg.DatabasePath)
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Errorf("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	validator := auth.NewValidator(db.DB, cfg.AuthSecret)
	messages := store.New(db.DB)

	logger.Infof("Initializing Socket.IO gateway (room policy: %s)...", cfg.RoomPolicy)
	gateway := realtime.NewGateway(validator, messages, realtime.GatewayConfig{
		Origin:     cfg.AllowedOrigins[0],
		RoomPolicy: cfg.RoomPolicy,
	})
	realtime.SetDefault(gateway)
	defer func() {
		realtime.ClearDefault()
		gateway.Close()
	}()

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	router.Use(middleware.LoggingMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Dice chat server")
	})

	messageHandler := handlers.NewMessageHandler(messages, gateway)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(validator))
	{
		api.GET("/groups/:groupId/messages", messageHandler.ListGroupMessages)
		api.POST("/groups/:groupId/messages", messageHandler.CreateGroupMessage)
	}

	// Socket.IO endpoint; session auth happens during the handshake.
	router.Any("/socket.io", gateway.HandleSocketIO())
	router.Any("/socket.io/*any", gateway.HandleSocketIO())

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("Dice chat server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Infof("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("HTTP shutdown: %v", err)
	}
}
