// Package clickhouse ships append-only settlement audit events to ClickHouse.
// Events are buffered through a rate-limited spool so a slow warehouse never
// stalls a settlement cycle.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

type (
	// Metrics records metrics for audit sink operations.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// Batch is the slice of driver.Batch the sink needs.
	Batch interface {
		Append(v ...any) error
		Send() error
	}

	// Conn is the connection surface the sink is written against.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Close() error
	}
)

// AuditSink buffers settlement events and flushes them to ClickHouse.
type AuditSink struct {
	conn    Conn
	metrics Metrics
	events  *eventSpool
}

// NewAuditSink opens a ClickHouse connection from the DSN. Start must be
// called before events are recorded.
func NewAuditSink(dsn string, logger *zap.Logger, metrics Metrics) (*AuditSink, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}
	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return newAuditSink(connAdapter{conn}, logger, metrics), nil
}

func newAuditSink(conn Conn, logger *zap.Logger, metrics Metrics) *AuditSink {
	sink := &AuditSink{conn: conn, metrics: metrics}
	sink.events = newEventSpool(logger, sink.insertEvents)
	return sink
}

// Start begins the background shipping loop.
func (s *AuditSink) Start(ctx context.Context) {
	s.events.start(ctx)
}

// Stop ships buffered events and closes the connection.
func (s *AuditSink) Stop() error {
	s.events.stop()
	return s.conn.Close()
}

// Record queues one event for shipping.
func (s *AuditSink) Record(ctx context.Context, event model.SettlementEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return s.events.enqueue(ctx, event)
}

const insertEventsQuery = `
INSERT INTO settlement_events (
	network,
	cycle,
	kind,
	address,
	tx_id,
	amount,
	detail,
	timestamp
) VALUES`

func (s *AuditSink) insertEvents(ctx context.Context, events []model.SettlementEvent) error {
	start := time.Now()
	var err error
	defer func() {
		s.metrics.Observe("insert_settlement_events", err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, insertEventsQuery)
	if err != nil {
		return fmt.Errorf("prepare events batch: %w", err)
	}

	for _, event := range events {
		if err = batch.Append(
			string(event.Network),
			event.Cycle,
			string(event.Kind),
			event.Address,
			event.TxID,
			event.Amount,
			event.Detail,
			event.Timestamp,
		); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("send events batch: %w", err)
	}
	return nil
}

// connAdapter narrows driver.Conn to the Conn interface.
type connAdapter struct {
	conn driver.Conn
}

func (c connAdapter) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	return c.conn.PrepareBatch(ctx, query)
}

func (c connAdapter) Close() error {
	return c.conn.Close()
}
