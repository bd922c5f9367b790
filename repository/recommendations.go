package repository

import (
	"context"
	"fmt"

	"stock-advisor/models"
	"stock-advisor/observability"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateRecommendation persists one advice-history entry.
func (r *Repository) CreateRecommendation(ctx context.Context, rec *models.Recommendation) error {
	if err := r.checkDB(); err != nil {
		return err
	}
	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()
	defer timer.ObserveDB("insert", "recommendations")

	_, err := r.db.Exec(ctx, `
		INSERT INTO recommendations (id, symbol, action, confidence, risk, rationale,
			buy_score, sell_score, rsi, momentum_pct, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, rec.ID, rec.Symbol, rec.Action, rec.Confidence, rec.Risk, rec.Rationale,
		rec.BuyScore, rec.SellScore, rec.RSI, rec.MomentumPct, rec.CreatedAt)

	if err != nil {
		metrics.RecordDBError("insert", "recommendations")
		return fmt.Errorf("failed to create recommendation: %w", err)
	}

	return nil
}

// Record satisfies the advisor's recorder hook.
func (r *Repository) Record(ctx context.Context, rec *models.Recommendation) error {
	return r.CreateRecommendation(ctx, rec)
}

// GetRecommendations returns recent advice history, newest first. An empty
// symbol returns all symbols.
func (r *Repository) GetRecommendations(ctx context.Context, symbol string, limit int) ([]models.Recommendation, error) {
	if err := r.checkDB(); err != nil {
		return nil, err
	}
	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()
	defer timer.ObserveDB("select", "recommendations")

	if limit <= 0 {
		limit = 50
	}

	var rows pgx.Rows
	var err error

	if symbol == "" {
		rows, err = r.db.Query(ctx, `
			SELECT id, symbol, action, confidence, risk, rationale,
				   buy_score, sell_score, rsi, momentum_pct, created_at
			FROM recommendations
			ORDER BY created_at DESC
			LIMIT $1
		`, limit)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT id, symbol, action, confidence, risk, rationale,
				   buy_score, sell_score, rsi, momentum_pct, created_at
			FROM recommendations
			WHERE symbol = $1
			ORDER BY created_at DESC
			LIMIT $2
		`, symbol, limit)
	}

	if err != nil {
		metrics.RecordDBError("select", "recommendations")
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			metrics.RecordDBError("select", "recommendations")
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, *rec)
	}

	return recs, nil
}

// GetRecommendation returns a single recommendation by ID, or nil when the
// ID is unknown.
func (r *Repository) GetRecommendation(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	if err := r.checkDB(); err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
		SELECT id, symbol, action, confidence, risk, rationale,
			   buy_score, sell_score, rsi, momentum_pct, created_at
		FROM recommendations WHERE id = $1
	`, id)

	rec, err := scanRecommendation(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation: %w", err)
	}

	return rec, nil
}

func scanRecommendation(row pgx.Row) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := row.Scan(&rec.ID, &rec.Symbol, &rec.Action, &rec.Confidence, &rec.Risk, &rec.Rationale,
		&rec.BuyScore, &rec.SellScore, &rec.RSI, &rec.MomentumPct, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
