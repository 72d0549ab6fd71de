package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	callTicketHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/call_ticket"
	cancelTicketHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/cancel_ticket"
	createServiceHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/create_service"
	createTicketHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/create_ticket"
	getAppointmentsHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/get_appointments"
	getAvailabilityHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/get_availability"
	getConfigHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/get_config"
	getNextPendingHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/get_next_pending"
	getQueueHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/get_queue"
	getStatisticsHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/get_statistics"
	getTicketHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/get_ticket"
	listAnnouncementsHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/list_announcements"
	listServicesHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/list_services"
	listTicketsHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/list_tickets"
	qrHistoryHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/qr_history"
	rolloverQueueHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/rollover_queue"
	setServiceActiveHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/set_service_active"
	updateConfigHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/update_config"
	updateTicketStateHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/update_ticket_state"
	validateQRHandler "github.com/m04kA/SMC-TurnosService/internal/api/handlers/validate_qr"
	"github.com/m04kA/SMC-TurnosService/internal/api/middleware"
	catalogService "github.com/m04kA/SMC-TurnosService/internal/service/catalog"
	configService "github.com/m04kA/SMC-TurnosService/internal/service/config"
	queueService "github.com/m04kA/SMC-TurnosService/internal/service/queue"
	ticketsService "github.com/m04kA/SMC-TurnosService/internal/service/tickets"
	callTicketUC "github.com/m04kA/SMC-TurnosService/internal/usecase/call_ticket"
	createTicketUC "github.com/m04kA/SMC-TurnosService/internal/usecase/create_ticket"
	getAvailabilityUC "github.com/m04kA/SMC-TurnosService/internal/usecase/get_availability"
	rolloverQueueUC "github.com/m04kA/SMC-TurnosService/internal/usecase/rollover_queue"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
	"github.com/m04kA/SMC-TurnosService/pkg/metrics"
)

// Dependencies сервисы и use cases, которые обслуживают HTTP API
type Dependencies struct {
	Tickets  *ticketsService.Service
	Queue    *queueService.Service
	Config   *configService.Service
	Catalog  *catalogService.Service
	Feed     listAnnouncementsHandler.AnnouncementFeed
	Create   *createTicketUC.UseCase
	Call     *callTicketUC.UseCase
	Slots    *getAvailabilityUC.UseCase
	Rollover *rolloverQueueUC.UseCase
}

// Options параметры роутера
type Options struct {
	OperatorKey string
	Metrics     *metrics.Metrics // nil - метрики выключены
	MetricsPath string
	ServiceName string
}

// NewRouter собирает маршруты /api/v1.
// Чтение открыто, изменяющие операции оператора закрыты ключом, если он задан.
func NewRouter(deps Dependencies, opts Options, log *logger.Logger) *mux.Router {
	createTicket := createTicketHandler.NewHandler(deps.Create, log)
	listTickets := listTicketsHandler.NewHandler(deps.Tickets, log)
	getTicket := getTicketHandler.NewHandler(deps.Tickets, log)
	updateTicketState := updateTicketStateHandler.NewHandler(deps.Tickets, log)
	cancelTicket := cancelTicketHandler.NewHandler(deps.Tickets, log)
	getAppointments := getAppointmentsHandler.NewHandler(deps.Tickets, log)
	getStatistics := getStatisticsHandler.NewHandler(deps.Tickets, log)
	validateQR := validateQRHandler.NewHandler(deps.Tickets, log)
	qrHistory := qrHistoryHandler.NewHandler(deps.Tickets, log)
	getQueue := getQueueHandler.NewHandler(deps.Queue, log)
	getNextPending := getNextPendingHandler.NewHandler(deps.Queue, log)
	callTicket := callTicketHandler.NewHandler(deps.Call, log)
	rolloverQueue := rolloverQueueHandler.NewHandler(deps.Rollover, log)
	getAvailability := getAvailabilityHandler.NewHandler(deps.Slots, log)
	getConfig := getConfigHandler.NewHandler(deps.Config, log)
	updateConfig := updateConfigHandler.NewHandler(deps.Config, log)
	listServices := listServicesHandler.NewHandler(deps.Catalog, log)
	createService := createServiceHandler.NewHandler(deps.Catalog, log)
	setServiceActive := setServiceActiveHandler.NewHandler(deps.Catalog, log)
	listAnnouncements := listAnnouncementsHandler.NewHandler(deps.Feed, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics, opts.ServiceName))
		r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Выдача тикета: киоск и QR регистрация работают без ключа оператора
	api.HandleFunc("/tickets", createTicket.Handle).Methods(http.MethodPost)
	api.HandleFunc("/tickets", listTickets.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tickets/{ticketId:[0-9]+}", getTicket.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{date}", getAppointments.Handle).Methods(http.MethodGet)

	api.HandleFunc("/queue", getQueue.Handle).Methods(http.MethodGet)
	api.HandleFunc("/queue/next", getNextPending.Handle).Methods(http.MethodGet)

	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)
	api.HandleFunc("/config", getConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	api.HandleFunc("/qr/validate", validateQR.Handle).Methods(http.MethodPost)
	api.HandleFunc("/qr/history", qrHistory.Handle).Methods(http.MethodGet)

	api.HandleFunc("/announcements", listAnnouncements.Handle).Methods(http.MethodGet)

	// ============================================================
	// OPERATOR ROUTES (X-Operator-Key)
	// ============================================================

	operator := api.PathPrefix("").Subrouter()
	operator.Use(middleware.OperatorAuth(opts.OperatorKey, log))

	operator.HandleFunc("/tickets/{ticketId:[0-9]+}", updateTicketState.Handle).Methods(http.MethodPut)
	operator.HandleFunc("/tickets/{ticketId:[0-9]+}/cancel", cancelTicket.Handle).Methods(http.MethodPost)

	operator.HandleFunc("/queue/call/{ticketId:[0-9]+}", callTicket.Handle).Methods(http.MethodPost)
	operator.HandleFunc("/queue/call-next", callTicket.HandleNext).Methods(http.MethodPost)
	operator.HandleFunc("/queue/rollover", rolloverQueue.Handle).Methods(http.MethodPost)

	operator.HandleFunc("/config", updateConfig.Handle).Methods(http.MethodPut)
	operator.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	operator.HandleFunc("/services/{serviceId:[0-9]+}/active", setServiceActive.Handle).Methods(http.MethodPatch)

	return r
}
