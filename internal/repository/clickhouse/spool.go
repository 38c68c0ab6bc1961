package clickhouse

import (
	"context"
	"errors"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

const (
	shipSize     = 200
	shipInterval = 5 * time.Second
	shipRPS      = 2
)

var errSpoolClosed = errors.New("event spool already stopped")

// eventSpool accumulates settlement events and ships them in batches. A
// batch goes out when it grows to shipSize events, when shipInterval elapses,
// or when the spool shuts down. Shipping is rate limited so replaying a
// backlog cannot hammer the warehouse.
type eventSpool struct {
	ship     func(context.Context, []model.SettlementEvent) error
	incoming chan model.SettlementEvent
	limiter  ratelimit.Limiter
	logger   *zap.Logger

	shutdown chan struct{}
	done     chan struct{}
}

func newEventSpool(logger *zap.Logger, ship func(context.Context, []model.SettlementEvent) error) *eventSpool {
	return &eventSpool{
		ship:     ship,
		incoming: make(chan model.SettlementEvent, shipSize*2),
		limiter:  ratelimit.New(shipRPS),
		logger:   logger,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// start launches the shipping loop.
func (s *eventSpool) start(ctx context.Context) {
	go s.run(ctx)
}

// stop drains the queue, ships the final batch and waits for the loop to end.
func (s *eventSpool) stop() {
	close(s.shutdown)
	<-s.done
}

// enqueue hands one event to the shipping loop.
func (s *eventSpool) enqueue(ctx context.Context, event model.SettlementEvent) error {
	select {
	case <-s.shutdown:
		return errSpoolClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case s.incoming <- event:
		return nil
	}
}

func (s *eventSpool) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(shipInterval)
	defer ticker.Stop()

	pending := make([]model.SettlementEvent, 0, shipSize)

	dispatch := func() {
		if len(pending) == 0 {
			return
		}

		s.limiter.Take()
		if err := s.ship(ctx, pending); err != nil {
			s.logger.Error("audit events not shipped",
				zap.Int("count", len(pending)), zap.Error(err))
		} else {
			s.logger.Debug("audit events shipped", zap.Int("count", len(pending)))
		}
		pending = pending[:0]
	}

	for {
		select {
		case event := <-s.incoming:
			pending = append(pending, event)
			if len(pending) >= shipSize {
				dispatch()
			}

		case <-ticker.C:
			dispatch()

		case <-s.shutdown:
			// Pick up whatever enqueue already accepted before the final ship.
			for {
				select {
				case event := <-s.incoming:
					pending = append(pending, event)
				default:
					dispatch()
					return
				}
			}

		case <-ctx.Done():
			dispatch()
			return
		}
	}
}
