//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobkit/internal/config"
	"github.com/honeycarbs/jobkit/internal/domain/export"
	"github.com/honeycarbs/jobkit/internal/domain/search"
	"github.com/honeycarbs/jobkit/internal/domain/tracker"
	"github.com/honeycarbs/jobkit/internal/httpapi"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

// InitializeApp creates the App with all resources wired up
func InitializeApp(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func(), error) {
	wire.Build(
		// Storage
		provideStore,
		provideSavedJobs,
		provideUsers,
		provideRedis,
		provideStateKV,
		provideLoginLimiter,

		// Search
		provideSearchProvider,
		search.NewServiceWithDeps,
		wire.Bind(new(search.Searcher), new(*search.Service)),
		search.NewStateStore,
		provideRequerier,

		// Accounts and board
		provideTokenIssuer,
		provideAuthService,
		provideTracker,
		wire.Bind(new(export.BoardLister), new(*tracker.Service)),

		// AI and export
		provideGenerator,
		provideAssist,
		provideSheetWriter,
		provideExporter,

		// Transport
		httpapi.NewHandler,
		provideMCPHandler,
		provideRouter,
		NewServer,

		provideScheduler,
		newApp,
	)

	return nil, nil, nil
}
