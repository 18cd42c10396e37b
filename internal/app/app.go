package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "github.com/14kear/poll-ledger/internal/app/http"
	"github.com/14kear/poll-ledger/internal/config"
	"github.com/14kear/poll-ledger/internal/handlers"
	"github.com/14kear/poll-ledger/internal/middleware"
	"github.com/14kear/poll-ledger/internal/repo/memory"
	"github.com/14kear/poll-ledger/internal/repo/postgres"
	"github.com/14kear/poll-ledger/internal/services"
)

type App struct {
	HTTPServer *httpapp.App
	Voting     *services.Voting
}

func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	storage, err := newStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}

	votingService := services.NewVoting(log, storage, storage, storage)

	if _, err := votingService.Bootstrap(context.Background(), cfg.Admin); err != nil {
		return nil, err
	}

	identityMiddleware := middleware.NewIdentityMiddleware(cfg.TokenSecret)
	votingHandler := handlers.NewVotingHandler(votingService)

	httpApp := httpapp.NewApp(log, cfg.HTTP.Port, votingHandler, identityMiddleware.Middleware())

	return &App{
		HTTPServer: httpApp,
		Voting:     votingService,
	}, nil
}

type storage interface {
	services.ConfigStorage
	services.PollStorage
	services.BallotStorage
}

func newStorage(cfg config.StorageConfig) (storage, error) {
	switch cfg.Driver {
	case "postgres":
		s, err := postgres.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func (a *App) Stop(ctx context.Context) error {
	return a.HTTPServer.Stop(ctx)
}
