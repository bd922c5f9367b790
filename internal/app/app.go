package app

import (
	"context"
	"fmt"

	"stock-advisor/config"
	"stock-advisor/models"

	"github.com/google/uuid"
)

// RepositoryInterface defines the repository operations needed by App
type RepositoryInterface interface {
	Close()
	Health(ctx context.Context) error
	GetRecommendations(ctx context.Context, symbol string, limit int) ([]models.Recommendation, error)
	GetRecommendation(ctx context.Context, id uuid.UUID) (*models.Recommendation, error)
}

// AdvisorInterface defines the query pipeline operations
type AdvisorInterface interface {
	Ask(ctx context.Context, query models.Query) (*models.Response, error)
}

// App struct holds application dependencies using interfaces for testability
type App struct {
	cfg      *config.Config
	repo     RepositoryInterface
	advisor  AdvisorInterface
	querySem chan struct{}
}

// New creates a new App application struct
func New(cfg *config.Config, repo RepositoryInterface, advisor AdvisorInterface) *App {
	return &App{
		cfg:      cfg,
		repo:     repo,
		advisor:  advisor,
		querySem: make(chan struct{}, cfg.Advisor.ConcurrencyLimit),
	}
}

// Shutdown is called when the app is closing
func (a *App) Shutdown(ctx context.Context) {
	if a.repo != nil {
		a.repo.Close()
	}
}

// Repo returns the repository interface for API handlers
func (a *App) Repo() RepositoryInterface {
	return a.repo
}

// Health reports database health; a missing database is healthy by design.
func (a *App) Health(ctx context.Context) error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Health(ctx)
}

// Ask runs the advisor pipeline for one query under the concurrency limit.
func (a *App) Ask(ctx context.Context, query models.Query) (*models.Response, error) {
	if a.advisor == nil {
		return nil, fmt.Errorf("advisor not initialized")
	}

	select {
	case a.querySem <- struct{}{}:
		defer func() { <-a.querySem }()
	default:
		return nil, fmt.Errorf("query queue full, too many concurrent requests - try again later")
	}

	return a.advisor.Ask(ctx, query)
}

// GetRecommendations returns recent advice history, optionally filtered by
// symbol.
func (a *App) GetRecommendations(ctx context.Context, symbol string, limit int) ([]models.Recommendation, error) {
	if a.repo == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return a.repo.GetRecommendations(ctx, symbol, limit)
}

// GetRecommendationByID returns a single recommendation by ID
func (a *App) GetRecommendationByID(ctx context.Context, id string) (*models.Recommendation, error) {
	if a.repo == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	parsed, err := ParseUUID(id)
	if err != nil {
		return nil, err
	}

	return a.repo.GetRecommendation(ctx, parsed)
}

// ParseUUID parses a string UUID into a [16]byte
func ParseUUID(id string) ([16]byte, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return [16]byte{}, fmt.Errorf("invalid UUID: %w", err)
	}
	return parsed, nil
}

// QuerySemCapacity returns the capacity of the query semaphore (for testing)
func (a *App) QuerySemCapacity() int {
	return cap(a.querySem)
}
