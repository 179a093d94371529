package mcp

import (
	"context"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/storage"
)

// DataSource abstracts the data layer for MCP tools, so handlers can be
// tested against a fake store.
type DataSource interface {
	ListPrograms(ctx context.Context) ([]models.Program, error)
	RecentSessions(ctx context.Context, limit int) ([]models.SessionSummary, error)
	SessionSets(ctx context.Context, sessionID int64) ([]models.ExerciseSet, error)
	ExerciseHistory(ctx context.Context, exerciseID int64, sessionLimit int) ([]models.ExerciseSet, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
