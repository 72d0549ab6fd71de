package announcer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
)

func announcement(code string) domain.Announcement {
	return domain.Announcement{
		TicketID:     1,
		Code:         code,
		ClientName:   "Ana",
		ServiceName:  "Pagos",
		Message:      "Turno " + code + ", Ana, acérquese por favor. Servicio: Pagos",
		VoiceEnabled: true,
		VoiceVolume:  0.8,
		CalledAt:     time.Date(2024, 5, 7, 10, 0, 0, 0, time.UTC),
	}
}

func TestRedisPublisher_PublishAndRecent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	sub := client.Subscribe(ctx, "turnos:called")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := NewRedisPublisher(client, "turnos:called", "turnos:recent", 2, logger.Nop())
	require.NoError(t, pub.Ping(ctx))

	for _, code := range []string{"0705-001", "0705-002", "0705-003"} {
		require.NoError(t, pub.Publish(ctx, announcement(code)))
	}

	select {
	case msg := <-sub.Channel():
		var got domain.Announcement
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "0705-001", got.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("announcement was not delivered")
	}

	recent, err := pub.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "0705-003", recent[0].Code)
	assert.Equal(t, "0705-002", recent[1].Code)

	recent, err = pub.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "0705-003", recent[0].Code)
}

func TestRedisPublisher_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	pub := NewRedisPublisher(client, "turnos:called", "turnos:recent", 10, logger.Nop())

	err := pub.Publish(context.Background(), announcement("0705-001"))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestMemoryPublisher(t *testing.T) {
	pub := NewMemoryPublisher(2)
	ctx := context.Background()

	for _, code := range []string{"0705-001", "0705-002", "0705-003"} {
		require.NoError(t, pub.Publish(ctx, announcement(code)))
	}

	recent, err := pub.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "0705-003", recent[0].Code)
	assert.Equal(t, "0705-002", recent[1].Code)
}
