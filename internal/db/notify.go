package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/dbpool"
	"github.com/pathfinderhq/pathfinder/internal/metrics"
)

// ChangesChannel is the LISTEN/NOTIFY channel stores publish mutations on.
const ChangesChannel = "graph_changes"

// graphChangedEvent is the WebSocket event type for every forwarded change.
const graphChangedEvent = "graph.changed"

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second

	// idleWait bounds a single wait for notifications. When it elapses with
	// nothing received the connection is pinged to detect a dead peer.
	idleWait = 2 * time.Minute
)

// Broadcaster sends events to connected clients.
type Broadcaster interface {
	BroadcastEvent(eventType string, data json.RawMessage)
}

// ChangePayload is the JSON body stores send with pg_notify on graph_changes.
type ChangePayload struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	ID    int64  `json:"id"`
}

func (p *ChangePayload) valid() bool {
	switch p.Table {
	case "nodes", "edges":
	default:
		return false
	}

	switch p.Op {
	case "insert", "delete":
	default:
		return false
	}

	return p.ID > 0
}

// NotifyBridge relays graph_changes notifications to the WebSocket hub.
// It holds one pooled connection for LISTEN and reconnects with jittered
// exponential backoff when that connection drops.
type NotifyBridge struct {
	log  *logrus.Logger
	pool *dbpool.Pool
	hub  Broadcaster
}

// NewNotifyBridge creates a NotifyBridge.
func NewNotifyBridge(log *logrus.Logger, pool *dbpool.Pool, hub Broadcaster) *NotifyBridge {
	return &NotifyBridge{log: log, pool: pool, hub: hub}
}

// Start checks the database is reachable and then listens in the background
// until ctx is cancelled.
func (b *NotifyBridge) Start(ctx context.Context) error {
	if err := b.pool.Ping(ctx); err != nil {
		return fmt.Errorf("notify bridge: database not reachable: %w", err)
	}

	go b.run(ctx)

	return nil
}

func (b *NotifyBridge) run(ctx context.Context) {
	delay := initialBackoff

	for ctx.Err() == nil {
		err := b.listen(ctx, func() { delay = initialBackoff })
		if err == nil || ctx.Err() != nil {
			return
		}

		b.log.WithError(err).WithField("retry_in", delay).Warn("notify bridge disconnected")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		delay = nextBackoff(delay)
	}
}

// listen subscribes on a dedicated connection and forwards notifications
// until the connection fails. subscribed is called once LISTEN succeeds.
func (b *NotifyBridge) listen(ctx context.Context, subscribed func()) error {
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ChangesChannel}.Sanitize()); err != nil {
		return fmt.Errorf("LISTEN %s: %w", ChangesChannel, err)
	}

	subscribed()
	b.log.WithField("channel", ChangesChannel).Info("notify bridge listening")

	for {
		waitCtx, cancel := context.WithTimeout(ctx, idleWait)
		n, err := conn.Conn().WaitForNotification(waitCtx)
		cancel()

		switch {
		case err == nil:
			b.handleNotification(n)
		case ctx.Err() != nil:
			return nil
		case pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded):
			if err := conn.Ping(ctx); err != nil {
				return fmt.Errorf("keepalive ping: %w", err)
			}
		default:
			return fmt.Errorf("waiting for notification: %w", err)
		}
	}
}

// handleNotification validates a payload and broadcasts it as a graph.changed event.
func (b *NotifyBridge) handleNotification(n *pgconn.Notification) {
	var p ChangePayload
	if err := json.Unmarshal([]byte(n.Payload), &p); err != nil || !p.valid() {
		b.log.WithField("payload", n.Payload).Warn("dropping malformed graph_changes notification")
		return
	}

	b.log.WithFields(logrus.Fields{
		"table": p.Table,
		"op":    p.Op,
		"id":    p.ID,
	}).Debug("graph change")

	metrics.ChangeEvents.WithLabelValues(p.Table, p.Op).Inc()

	data, err := json.Marshal(p)
	if err != nil {
		return
	}

	b.hub.BroadcastEvent(graphChangedEvent, data)
}

// nextBackoff doubles d up to maxBackoff and applies ±25% jitter.
func nextBackoff(d time.Duration) time.Duration {
	next := min(d*2, maxBackoff)
	return time.Duration(float64(next) * (0.75 + rand.Float64()*0.5)) //nolint:gosec // jitter only.
}
