package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/domain"
	"github.com/pathfinderhq/pathfinder/internal/models"
)

// AuditEnqueuer accepts audit entries for asynchronous recording.
type AuditEnqueuer interface {
	Enqueue(entry *models.AuditEntry)
}

// AuditWorker buffers audit entries and writes them via a single worker goroutine.
type AuditWorker struct {
	auditor domain.Auditor
	log     *logrus.Logger
	jobs    chan *models.AuditEntry
}

// NewAuditWorker creates an AuditWorker with the given queue capacity.
func NewAuditWorker(auditor domain.Auditor, log *logrus.Logger, queueSize int) *AuditWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}
	return &AuditWorker{
		auditor: auditor,
		log:     log,
		jobs:    make(chan *models.AuditEntry, queueSize),
	}
}

// Enqueue adds an audit entry. Non-blocking; drops the entry if the queue is full.
func (w *AuditWorker) Enqueue(entry *models.AuditEntry) {
	select {
	case w.jobs <- entry:
	default:
		w.log.WithField("action", entry.Action).Warn("audit queue full, dropping entry")
	}
}

// Run processes audit entries until the context is cancelled, then drains the queue.
func (w *AuditWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case job := <-w.jobs:
			w.process(job)
		}
	}
}

func (w *AuditWorker) drain() {
	for {
		select {
		case job := <-w.jobs:
			w.process(job)
		default:
			return
		}
	}
}

func (w *AuditWorker) process(entry *models.AuditEntry) {
	if err := w.auditor.RecordAudit(context.Background(), entry); err != nil {
		w.log.WithError(err).Warn("audit record failed")
	}
}

// LogAuditor records audit entries as structured info log lines.
type LogAuditor struct {
	log *logrus.Logger
}

// NewLogAuditor creates a LogAuditor.
func NewLogAuditor(log *logrus.Logger) *LogAuditor {
	return &LogAuditor{log: log}
}

// RecordAudit implements domain.Auditor.
func (a *LogAuditor) RecordAudit(_ context.Context, entry *models.AuditEntry) error {
	fields := logrus.Fields{
		"action":      entry.Action,
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
	}
	if entry.Actor != "" {
		fields["actor"] = entry.Actor
	}
	for k, v := range entry.Detail {
		fields[k] = v
	}

	a.log.WithFields(fields).Info("audit")

	return nil
}

// auditAsync enqueues an audit entry (best-effort, non-blocking). The actor
// is taken from ctx.
func auditAsync(
	ctx context.Context, w AuditEnqueuer, action, entityType string, entityID int64, detail map[string]any,
) {
	if w == nil {
		return
	}

	w.Enqueue(&models.AuditEntry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      domain.ActorFrom(ctx),
		Detail:     detail,
	})
}
