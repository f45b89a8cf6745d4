package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	batchSize     = 50
	flushInterval = 5 * time.Second
)

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs.
type DBHandler struct {
	db    *gorm.DB
	attrs []slog.Attr
	state *dbHandlerState
}

// dbHandlerState is shared by a handler and every copy WithAttrs derives.
type dbHandlerState struct {
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewDBHandler(db *gorm.DB) *DBHandler {
	return newDBHandler(db, flushInterval)
}

func newDBHandler(db *gorm.DB, interval time.Duration) *DBHandler {
	h := &DBHandler{
		db: db,
		state: &dbHandlerState{
			buffer:  make([]models.SystemLog, 0, batchSize),
			ticker:  time.NewTicker(interval),
			done:    make(chan struct{}),
			stopped: make(chan struct{}),
		},
	}
	go h.flushLoop()
	return h
}

func (h *DBHandler) flushLoop() {
	defer close(h.state.stopped)
	for {
		select {
		case <-h.state.ticker.C:
			h.flush()
		case <-h.state.done:
			h.flush()
			return
		}
	}
}

func (h *DBHandler) flush() {
	s := h.state
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, batchSize)
	s.mu.Unlock()

	if err := h.db.CreateInBatches(batch, batchSize).Error; err != nil {
		slog.Error("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Stop flushes what is buffered and waits for the flush goroutine to exit.
func (h *DBHandler) Stop() {
	h.state.stopOnce.Do(func() {
		h.state.ticker.Stop()
		close(h.state.done)
	})
	<-h.state.stopped
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "trace_id", "request_id":
			entry.TraceID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			if f, ok := a.Value.Any().(float64); ok {
				entry.LatencyMs = int(math.Round(f))
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	s := h.state
	s.mu.Lock()
	s.buffer = append(s.buffer, entry)
	needFlush := len(s.buffer) >= batchSize
	s.mu.Unlock()

	if needFlush {
		h.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{db: h.db, attrs: merged, state: h.state}
}

func (h *DBHandler) WithGroup(name string) slog.Handler {
	return h
}
