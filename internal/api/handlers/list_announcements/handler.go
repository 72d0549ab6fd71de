package list_announcements

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

const (
	defaultLimit = 10
	maxLimit     = 50

	msgInvalidLimit = "limit должен быть числом от 1 до 50"
)

// AnnouncementsResponse HTTP response model
type AnnouncementsResponse struct {
	Announcements []domain.Announcement `json:"announcements"`
}

type Handler struct {
	feed   AnnouncementFeed
	logger Logger
}

func NewHandler(feed AnnouncementFeed, logger Logger) *Handler {
	return &Handler{
		feed:   feed,
		logger: logger,
	}
}

// Handle GET /api/v1/announcements
// Query params: limit (опционально). Последние объявления для табло, новые первыми.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > maxLimit {
			h.logger.Warn("GET /announcements - Invalid limit=%q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = v
	}

	items, err := h.feed.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /announcements - Failed to read announcements: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}
	if items == nil {
		items = []domain.Announcement{}
	}

	h.logger.Info("GET /announcements - Announcements retrieved: count=%d", len(items))
	handlers.RespondJSON(w, http.StatusOK, AnnouncementsResponse{Announcements: items})
}
