package server

import (
	"context"
	"errors"

	"github.com/honeycarbs/jobkit/internal/domain/search"
	"github.com/honeycarbs/jobkit/internal/scheduler"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

// App is the fully wired process: HTTP server, re-query worker and cron
type App struct {
	Server    *Server
	Requerier *search.Requerier
	Scheduler *scheduler.Scheduler
	logger    *logging.Logger
}

func newApp(srv *Server, requerier *search.Requerier, sched *scheduler.Scheduler, logger *logging.Logger) *App {
	return &App{Server: srv, Requerier: requerier, Scheduler: sched, logger: logger}
}

// Run starts the follow-up cron and blocks serving HTTP
func (a *App) Run() error {
	if err := a.Scheduler.Start(); err != nil {
		return err
	}
	return a.Server.Run()
}

// Shutdown stops accepting requests, then drains pending re-queries and the cron
func (a *App) Shutdown(ctx context.Context) error {
	return errors.Join(
		a.Server.Shutdown(ctx),
		a.Requerier.Shutdown(ctx),
		a.Scheduler.Shutdown(ctx),
	)
}
