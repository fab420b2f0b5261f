package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"BidSnapper/internal/domain/models"
	domrepo "BidSnapper/internal/domain/repository"
	pkgch "BidSnapper/pkg/clickhouse"
	applogger "BidSnapper/pkg/logger"
)

const FeatureRowsTable = "bidsnapper.feature_rows"

// CHFeatureStore implements FeatureStore backed by ClickHouse.
type CHFeatureStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHFeatureStore(ch *pkgch.Client) *CHFeatureStore {
	return &CHFeatureStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHFeatureStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHFeatureStore) GetRows(ctx context.Context, from, to time.Time, limit int) ([]models.FeatureRow, error) {
	start := time.Now()
	const qtpl = `
        SELECT board_id, extracted, schema_version, feature_values, contract
        FROM %s
        WHERE extracted >= ? AND extracted <= ?
        ORDER BY extracted ASC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, FeatureRowsTable)
	rows, err := s.db.QueryContext(ctx, q, from, to, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_rows query error", applogger.Error(err))
		}
		return nil, fmt.Errorf("get feature rows: %w", err)
	}
	defer rows.Close()

	out := make([]models.FeatureRow, 0, 1024)
	for rows.Next() {
		var r models.FeatureRow
		if err := rows.Scan(&r.BoardID, &r.Extracted, &r.Schema, &r.Values, &r.Contract); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse get_rows scan error", applogger.Error(err))
			}
			return nil, fmt.Errorf("scan feature row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_rows rows error", applogger.Error(err))
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse get_rows ok",
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHFeatureStore) GetLatestN(ctx context.Context, n int) ([]models.FeatureRow, error) {
	start := time.Now()
	const qtpl = `
        SELECT board_id, extracted, schema_version, feature_values, contract
        FROM %s
        ORDER BY extracted DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, FeatureRowsTable)
	rows, err := s.db.QueryContext(ctx, q, n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_rows query error", applogger.Int("limit", n), applogger.Error(err))
		}
		return nil, fmt.Errorf("get latest rows: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.FeatureRow, 0, n)
	for rows.Next() {
		var r models.FeatureRow
		if err := rows.Scan(&r.BoardID, &r.Extracted, &r.Schema, &r.Values, &r.Contract); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse latest_rows scan error", applogger.Int("limit", n), applogger.Error(err))
			}
			return nil, fmt.Errorf("scan feature row: %w", err)
		}
		tmp = append(tmp, r)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_rows rows error", applogger.Int("limit", n), applogger.Error(err))
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_rows ok",
			applogger.Int("limit", n),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}

var _ domrepo.FeatureStore = (*CHFeatureStore)(nil)
