package list_announcements

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/internal/integrations/announcer"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
)

func TestHandle(t *testing.T) {
	feed := announcer.NewMemoryPublisher(20)
	for _, code := range []string{"0705-001", "0705-002", "0705-003"} {
		require.NoError(t, feed.Publish(context.Background(), domain.Announcement{Code: code}))
	}
	h := NewHandler(feed, logger.Nop())

	t.Run("limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/announcements?limit=2", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AnnouncementsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Announcements, 2)
		assert.Equal(t, "0705-003", resp.Announcements[0].Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		for _, q := range []string{"0", "abc", "51"} {
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/announcements?limit="+q, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
	})
}

func TestHandle_EmptyFeed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(announcer.NewMemoryPublisher(5), logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/announcements", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"announcements":[]}`, rec.Body.String())
}
