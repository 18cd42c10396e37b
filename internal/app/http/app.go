package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/14kear/poll-ledger/internal/handlers"
	"github.com/14kear/poll-ledger/internal/middleware"
	"github.com/14kear/poll-ledger/internal/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type App struct {
	log    *slog.Logger
	engine *gin.Engine
	server *http.Server
	port   int
}

// NewApp builds the gin engine and registers the voting routes.
func NewApp(
	log *slog.Logger,
	port int,
	handler *handlers.VotingHandler,
	identityMiddleware gin.HandlerFunc,
) *App {
	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		// Queries are open to anyone.
		publicVotingGroup := api.Group("/voting")
		routes.RegisterPublicRoutes(publicVotingGroup, handler)

		// Writes need a caller identity.
		privateVotingGroup := api.Group("/voting", identityMiddleware)
		routes.RegisterPrivateRoutes(privateVotingGroup, handler)
	}

	// Healthcheck
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	return &App{
		log:    log,
		engine: r,
		server: httpServer,
		port:   port,
	}
}

func (a *App) Run() error {
	a.log.Info("HTTP server is running", slog.String("addr", a.server.Addr))
	return a.server.ListenAndServe()
}

func (a *App) Stop(ctx context.Context) error {
	a.log.Info("HTTP server is stopping...")
	return a.server.Shutdown(ctx)
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}
