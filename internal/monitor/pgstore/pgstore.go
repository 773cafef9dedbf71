// Package pgstore provides a PostgreSQL implementation of monitor.Store.
package pgstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/harken/internal/sound"
)

var tracer = otel.Tracer("github.com/linnemanlabs/harken/internal/monitor/pgstore")

//go:embed schema.sql
var schema string

// Store persists alert events in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema on the given pool and returns a ready Store. The
// pool remains owned by the caller.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Append inserts one fired alert event.
func (s *Store) Append(ctx context.Context, ev *sound.Event) error {
	ctx, span := tracer.Start(ctx, "pgstore.Append", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "INSERT"),
	))
	defer span.End()

	var duration sql.NullFloat64
	if ev.Duration > 0 {
		duration = sql.NullFloat64{Float64: ev.Duration, Valid: true}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO alert_events (id, category, tier, at_seconds, confidence, duration_s, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET duration_s = EXCLUDED.duration_s`,
		ev.ID, ev.Category, ev.Tier.String(), ev.At, ev.Confidence, duration, ev.CreatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("insert alert event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*sound.Event, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Recent", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, category, tier, at_seconds, confidence, duration_s, created_at
		FROM alert_events ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("query alert events: %w", err)
	}
	defer rows.Close()

	var out []*sound.Event
	for rows.Next() {
		var ev sound.Event
		var tier string
		var duration sql.NullFloat64
		if err := rows.Scan(&ev.ID, &ev.Category, &tier, &ev.At, &ev.Confidence, &duration, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert event: %w", err)
		}
		ev.Tier = sound.ParseTier(tier)
		if duration.Valid {
			ev.Duration = duration.Float64
		}
		out = append(out, &ev)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("iterate alert events: %w", err)
	}
	return out, nil
}
