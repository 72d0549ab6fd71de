package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurnosService/internal/service/config/models"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
	"github.com/m04kA/SMC-TurnosService/pkg/ptr"
	"github.com/m04kA/SMC-TurnosService/pkg/types"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

var now = time.Date(2024, 5, 7, 10, 0, 0, 0, time.UTC)

func newTestService() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store.Config(), store.TxManager(), fixedTime{now: now}, logger.Nop()), store
}

func TestService_Get_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestService_Update_CreatesFromDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Update(ctx, &models.UpdateConfigRequest{
		BusinessName:        ptr.Ptr("  Farmacia Central "),
		SlotIntervalMinutes: ptr.Ptr(15),
	})
	require.NoError(t, err)
	assert.Equal(t, "Farmacia Central", resp.BusinessName)
	assert.Equal(t, 15, resp.SlotIntervalMinutes)
	assert.Equal(t, "08:00", resp.OpenTime.String())
	assert.Equal(t, "18:00", resp.CloseTime.String())
	assert.True(t, resp.VoiceEnabled)
	assert.InDelta(t, 0.8, resp.VoiceVolume, 1e-9)
	assert.Equal(t, 30, resp.NoShowWaitMinutes)
	assert.True(t, resp.ResetDaily)
	assert.True(t, resp.UpdatedAt.Equal(now))

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, resp, got)
}

func TestService_Update_Partial(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.EnsureDefaults(ctx)
	require.NoError(t, err)

	closeTime := types.MustTimeString("10:00")
	resp, err := svc.Update(ctx, &models.UpdateConfigRequest{CloseTime: &closeTime, VoiceEnabled: ptr.Ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.OpenTime.String())
	assert.Equal(t, "10:00", resp.CloseTime.String())
	assert.False(t, resp.VoiceEnabled)
	assert.Equal(t, 30, resp.SlotIntervalMinutes)
}

func TestService_Update_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateConfigRequest
	}{
		{name: "empty name", req: &models.UpdateConfigRequest{BusinessName: ptr.Ptr("   ")}},
		{name: "interval too small", req: &models.UpdateConfigRequest{SlotIntervalMinutes: ptr.Ptr(1)}},
		{name: "interval too large", req: &models.UpdateConfigRequest{SlotIntervalMinutes: ptr.Ptr(600)}},
		{name: "volume above one", req: &models.UpdateConfigRequest{VoiceVolume: ptr.Ptr(1.5)}},
		{name: "negative no-show wait", req: &models.UpdateConfigRequest{NoShowWaitMinutes: ptr.Ptr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService()

			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)

			// Транзакция откатилась, конфигурация не создана
			_, err = store.Config().Get(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestService_Update_AllowsEmptyDay(t *testing.T) {
	svc, _ := newTestService()
	openTime := types.MustTimeString("18:00")
	closeTime := types.MustTimeString("08:00")

	resp, err := svc.Update(context.Background(), &models.UpdateConfigRequest{OpenTime: &openTime, CloseTime: &closeTime})
	require.NoError(t, err)
	assert.Equal(t, "18:00", resp.OpenTime.String())
}

func TestService_EnsureDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	_, err = svc.Update(ctx, &models.UpdateConfigRequest{BusinessName: ptr.Ptr("Banco")})
	require.NoError(t, err)

	// Повторный вызов не перезаписывает существующую конфигурацию
	created, err = svc.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	resp, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Banco", resp.BusinessName)
}
