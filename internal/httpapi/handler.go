// Package httpapi exposes the tracker, search and AI helpers over a gin REST API.
package httpapi

import (
	"github.com/honeycarbs/jobkit/internal/domain/assist"
	"github.com/honeycarbs/jobkit/internal/domain/auth"
	"github.com/honeycarbs/jobkit/internal/domain/export"
	"github.com/honeycarbs/jobkit/internal/domain/search"
	"github.com/honeycarbs/jobkit/internal/domain/tracker"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

// Handler groups the route handlers and the services they call
type Handler struct {
	auth     *auth.Service
	searcher search.Searcher
	states   *search.StateStore
	requery  *search.Requerier
	tracker  *tracker.Service
	assist   *assist.Service
	exporter *export.Exporter
	logger   *logging.Logger
}

// NewHandler wires the API handlers
func NewHandler(
	authSvc *auth.Service,
	searcher search.Searcher,
	states *search.StateStore,
	requery *search.Requerier,
	trackerSvc *tracker.Service,
	assistSvc *assist.Service,
	exporter *export.Exporter,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{
		auth:     authSvc,
		searcher: searcher,
		states:   states,
		requery:  requery,
		tracker:  trackerSvc,
		assist:   assistSvc,
		exporter: exporter,
		logger:   logger.Named("http"),
	}
}
