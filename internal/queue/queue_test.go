package queue

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	ev := ActivityEvent{
		Kind:       AdPosted,
		UserID:     "u-1",
		AdID:       "ad-9",
		AdTitle:    "Mountain bike",
		Category:   "For Sale",
		OccurredAt: "2025-01-02T03:04:05Z",
	}
	assert.Equal(t,
		`[2025-01-02T03:04:05Z] ad.posted | user_id=u-1 | ad_id=ad-9 | title="Mountain bike" | category="For Sale"`+"\n",
		FormatLine(ev))

	short := FormatLine(ActivityEvent{Kind: UserLoggedOut, UserID: "u-2", OccurredAt: "t"})
	assert.Equal(t, "[t] user.logged_out | user_id=u-2\n", short)
}

func TestConsumerHandle_AppendsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c := NewConsumer("amqp://unused", dir)

	for _, kind := range []string{UserRegistered, UserLoggedIn} {
		ev := NewEvent(kind)
		ev.UserID = "u-1"
		body, err := json.Marshal(ev)
		require.NoError(t, err)
		require.NoError(t, c.Handle(body))
	}

	raw, err := os.ReadFile(filepath.Join(dir, ActivityLogFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "user.registered | user_id=u-1")
	assert.Contains(t, lines[1], "user.logged_in | user_id=u-1")
}

func TestConsumerHandle_RejectsBadMessages(t *testing.T) {
	c := NewConsumer("amqp://unused", t.TempDir())
	assert.Error(t, c.Handle([]byte("{not json")))
	assert.Error(t, c.Handle([]byte(`{"user_id":"u-1"}`)))
}

func TestNewConsumer_DefaultDir(t *testing.T) {
	assert.Equal(t, "logs", NewConsumer("amqp://x", "").Dir)
}

func TestNoopAndNilEmit(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), NewEvent(AdDeleted)))
	Emit(nil, NewEvent(AdDeleted))
}

type blockingPublisher struct {
	release chan struct{}
	got     chan ActivityEvent
}

func (p *blockingPublisher) Publish(ctx context.Context, ev ActivityEvent) error {
	select {
	case <-p.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.got <- ev
	return nil
}

func TestDrain_WaitsForInFlightEvents(t *testing.T) {
	p := &blockingPublisher{release: make(chan struct{}), got: make(chan ActivityEvent, 1)}
	Emit(p, NewEvent(AdPosted))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, Drain(ctx), context.DeadlineExceeded)

	close(p.release)
	require.NoError(t, Drain(context.Background()))
	select {
	case ev := <-p.got:
		assert.Equal(t, AdPosted, ev.Kind)
	default:
		t.Fatal("event was not published before Drain returned")
	}
}

func TestDrain_ReturnsImmediatelyWhenIdle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, Drain(ctx))
}
