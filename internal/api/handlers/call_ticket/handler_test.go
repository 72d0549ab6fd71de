package call_ticket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	callTicket "github.com/m04kA/SMC-TurnosService/internal/usecase/call_ticket"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
)

type stubUseCase struct {
	resp *callTicket.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, ticketID int64) (*callTicket.Response, error) {
	return s.resp, s.err
}

func (s *stubUseCase) ExecuteNext(ctx context.Context) (*callTicket.Response, error) {
	return s.resp, s.err
}

func newRouter(uc CallTicketUseCase) *mux.Router {
	h := NewHandler(uc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/queue/call/{ticketId}", h.Handle).Methods(http.MethodPost)
	r.HandleFunc("/queue/call-next", h.HandleNext).Methods(http.MethodPost)
	return r
}

func serve(r *mux.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestHandle_Called(t *testing.T) {
	now := time.Date(2024, 5, 7, 9, 0, 0, 0, time.UTC)
	ticket := &domain.Ticket{ID: 3, Code: "0705-003", ClientName: "Ana", ServiceName: "Consulta", State: domain.StateCalled, CalledAt: &now}
	uc := &stubUseCase{resp: &callTicket.Response{
		Ticket:       ticket,
		Announcement: domain.Announcement{TicketID: 3, Code: "0705-003", Message: domain.FormatAnnouncement(ticket)},
	}}

	rec := serve(newRouter(uc), "/queue/call/3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"announcementMessage":"Turno 0705-003`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"bad id", "/queue/call/x", nil, http.StatusBadRequest},
		{"not found", "/queue/call/9", callTicket.ErrTicketNotFound, http.StatusNotFound},
		{"attended", "/queue/call/9", callTicket.ErrTransitionNotAllowed, http.StatusConflict},
		{"internal", "/queue/call/9", callTicket.ErrInternal, http.StatusInternalServerError},
		{"empty queue", "/queue/call-next", callTicket.ErrQueueEmpty, http.StatusNoContent},
		{"next internal", "/queue/call-next", callTicket.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newRouter(&stubUseCase{err: tt.err}), tt.path)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
