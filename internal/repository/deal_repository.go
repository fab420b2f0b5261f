package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"BidSnapper/internal/domain/models"
	"BidSnapper/internal/domain/repository"
	pkgkafka "BidSnapper/pkg/kafka"
)

// ClickHouseStorage implements Storage for ClickHouse.
type ClickHouseStorage struct {
	db    *sql.DB
	table string
}

// NewClickHouseStorage creates ClickHouse storage.
func NewClickHouseStorage(db *sql.DB, table string) repository.Storage {
	return &ClickHouseStorage{db: db, table: table}
}

func (s *ClickHouseStorage) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseStorage) Store(ctx context.Context, r *models.FeatureRow) error {
	q := fmt.Sprintf("INSERT INTO %s (board_id, extracted, schema_version, feature_values, contract) VALUES (?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		r.BoardID,
		r.Extracted,
		r.Schema,
		r.Values,
		r.Contract,
	)
	return err
}

func (s *ClickHouseStorage) StoreBatch(ctx context.Context, rows []*models.FeatureRow) error {
	if len(rows) == 0 {
		return nil
	}
	// Batch insert using VALUES multi-row to reduce round-trips.
	const chunkSize = 2000
	for start := 0; start < len(rows); start += chunkSize {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, r := range rows[start:end] {
			if r == nil || len(r.Values) == 0 {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args,
				r.BoardID,
				r.Extracted,
				r.Schema,
				r.Values,
				r.Contract,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (board_id, extracted, schema_version, feature_values, contract) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseStorage) Query(ctx context.Context, from, to time.Time, limit int) ([]*models.FeatureRow, error) {
	q := fmt.Sprintf("SELECT board_id, extracted, schema_version, feature_values, contract FROM %s WHERE extracted >= ? AND extracted <= ? ORDER BY extracted DESC LIMIT ?", s.table)
	dbRows, err := s.db.QueryContext(ctx, q, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	var rows []*models.FeatureRow
	for dbRows.Next() {
		var r models.FeatureRow
		if err := dbRows.Scan(&r.BoardID, &r.Extracted, &r.Schema, &r.Values, &r.Contract); err != nil {
			return nil, err
		}
		rows = append(rows, &r)
	}
	return rows, dbRows.Err()
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStorage) Close() error {
	return nil // Managed by pkg
}

// KafkaPublisher implements Publisher for Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, b *models.Board) error {
	return p.producer.Publish(ctx, p.topic, []byte(b.Table), b)
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, boards []*models.Board) error {
	if len(boards) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(boards))
	for i, b := range boards {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(b.Table),
			Value: b,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
