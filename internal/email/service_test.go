package email

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func newTestService(rdb *redis.Client) *Service {
	return &Service{
		redis:    rdb,
		from:     "noreply@tablebook.app",
		fromName: "TableBook Team",
		smtpHost: "smtp.test.com",
		smtpPort: "587",
		smtpUser: "test@example.com",
		smtpPass: "password",
	}
}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetVal(1)

	svc := newTestService(db)
	err := svc.Send(ctx, "guest@example.com", "Guest", "Subject", "Body")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendBookingConfirmation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	var queued []byte
	mock.CustomMatch(func(expected, actual []interface{}) error {
		if len(actual) > 0 {
			if raw, ok := actual[len(actual)-1].([]byte); ok {
				queued = raw
			} else if s, ok := actual[len(actual)-1].(string); ok {
				queued = []byte(s)
			}
		}
		return nil
	}).ExpectLPush(queueKey, `.*`).SetVal(1)

	svc := newTestService(db)
	err := svc.SendBookingConfirmation(ctx, "guest@example.com", "Guest", 7, "2025-06-01", "19:00")
	require.NoError(t, err)

	var job EmailJob
	require.NoError(t, json.Unmarshal(queued, &job))
	assert.Equal(t, "guest@example.com", job.To)
	assert.Contains(t, job.Subject, "Table 7")
	assert.Contains(t, job.Body, "2025-06-01")
	assert.Contains(t, job.Body, "19:00")
}

func TestSendQueueFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetErr(assert.AnError)

	svc := newTestService(db)
	err := svc.Send(ctx, "guest@example.com", "Guest", "Subject", "Body")

	assert.Error(t, err)
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen(queueKey).SetVal(4)

	svc := newTestService(db)
	assert.Equal(t, int64(4), svc.QueueLength(ctx))
}
