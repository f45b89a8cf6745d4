package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/config"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/database"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.Config{
		DBDriver: "sqlite",
		DBPath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	info := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	errs := slog.NewJSONHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError})

	logger := slog.New(NewMultiHandler(info, errs)).With("action", "login")
	logger.Info("signed in")
	logger.Error("sign in failed")

	assert.Equal(t, 2, bytes.Count(infoBuf.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(errBuf.Bytes(), []byte("\n")))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(errBuf.Bytes(), &line))
	assert.Equal(t, "sign in failed", line["msg"])
	assert.Equal(t, "login", line["action"])
}

func TestMultiHandler_DisabledWhenNoHandlerWants(t *testing.T) {
	h := NewMultiHandler(slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestDBHandler_PersistsErrorsOnStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	db := newTestDB(t)
	h := newDBHandler(db, time.Hour)

	logger := slog.New(h).With("request_id", "req-1")
	logger.Info("ignored")
	logger.Error("fun fact failed", "action", "fact.fetch", "error", "upstream 503", "latency_ms", 12.6, "model", "gemini")

	h.Stop()
	h.Stop()

	var rows []models.SystemLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "ERROR", row.Level)
	assert.Equal(t, "fun fact failed", row.Message)
	assert.Equal(t, "req-1", row.TraceID)
	assert.Equal(t, "fact.fetch", row.Action)
	assert.Equal(t, "upstream 503", row.Error)
	assert.Equal(t, 13, row.LatencyMs)
	assert.JSONEq(t, `{"model":"gemini"}`, string(row.Extra))
}

func TestDBHandler_FlushesFullBatch(t *testing.T) {
	db := newTestDB(t)
	h := newDBHandler(db, time.Hour)
	defer h.Stop()

	logger := slog.New(h)
	for i := 0; i < batchSize; i++ {
		logger.Error("boom", "user_id", "u-1")
	}

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&count).Error)
	assert.EqualValues(t, batchSize, count)
}

func TestPurgeOlderThan(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{ID: uuid.New(), Timestamp: now.Add(-2 * Retention), Level: "ERROR", Message: "old"},
		{ID: uuid.New(), Timestamp: now, Level: "ERROR", Message: "fresh"},
	}).Error)

	deleted := PurgeOlderThan(db, now.Add(-Retention))
	assert.EqualValues(t, 1, deleted)

	var left []models.SystemLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "fresh", left[0].Message)
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandler_KeepsGoingAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(failingHandler{}, slog.NewJSONHandler(&buf, nil))

	r := slog.NewRecord(time.Now(), slog.LevelError, "still written", 0)
	err := h.Handle(context.Background(), r)

	assert.ErrorContains(t, err, "sink down")
	assert.Contains(t, buf.String(), "still written")
}

func TestPurgeExpiredTokens(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	userID := uuid.New()
	require.NoError(t, db.Create(&[]models.RefreshToken{
		{ID: uuid.New(), UserID: userID, TokenHash: "expired", ExpiresAt: now.Add(-time.Hour)},
		{ID: uuid.New(), UserID: userID, TokenHash: "live", ExpiresAt: now.Add(time.Hour)},
	}).Error)

	assert.EqualValues(t, 1, PurgeExpiredTokens(db, now))

	var left []models.RefreshToken
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "live", left[0].TokenHash)
}

func TestStartCleanup_StopsOnDone(t *testing.T) {
	done := make(chan struct{})
	StartCleanup(newTestDB(t), done)
	close(done)

	require.Eventually(t, func() bool {
		return goleak.Find(goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener")) == nil
	}, time.Second, 10*time.Millisecond)
}
