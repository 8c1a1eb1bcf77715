package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	inventorydomain "github.com/printops/inkwell/internal/inventory/domain"
	"github.com/printops/inkwell/internal/middleware"
	"github.com/printops/inkwell/internal/request/domain"
	"github.com/printops/inkwell/internal/request/usecase/command"
	"github.com/printops/inkwell/internal/request/usecase/query"
	userdomain "github.com/printops/inkwell/internal/user/domain"
	"github.com/printops/inkwell/pkg/logger"
)

// RequestHandler handles HTTP requests for the approval workflow
type RequestHandler struct {
	createHandler     *command.CreateRequestHandler
	supervisorHandler *command.SupervisorDecideHandler
	adminHandler      *command.AdminDecideHandler

	supervisorQueueHandler *query.ListSupervisorQueueHandler
	adminQueueHandler      *query.ListAdminQueueHandler
	userRequestsHandler    *query.ListUserRequestsHandler
	issuancesHandler       *query.ListIssuancesHandler

	repo            domain.RequestRepository
	requestCounter  *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	pendingRequests prometheus.Gauge
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(
	repo domain.RequestRepository,
	issuances domain.IssuanceRepository,
	lots inventorydomain.LotRepository,
	tx domain.TxManager,
	publisher command.IssuancePublisher,
) *RequestHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ink_service_requests_total",
			Help: "Total number of requests to ink request service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ink_service_request_duration_seconds",
			Help:    "Duration of ink request service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	pendingRequests := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ink_service_pending_requests",
			Help: "Number of ink requests still pending a decision",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(pendingRequests)

	return &RequestHandler{
		createHandler:          command.NewCreateRequestHandler(repo, lots),
		supervisorHandler:      command.NewSupervisorDecideHandler(tx),
		adminHandler:           command.NewAdminDecideHandler(tx, publisher),
		supervisorQueueHandler: query.NewListSupervisorQueueHandler(repo),
		adminQueueHandler:      query.NewListAdminQueueHandler(repo),
		userRequestsHandler:    query.NewListUserRequestsHandler(repo),
		issuancesHandler:       query.NewListIssuancesHandler(issuances),
		repo:                   repo,
		requestCounter:         requestCounter,
		requestLatency:         requestLatency,
		pendingRequests:        pendingRequests,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *RequestHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// CreateRequest handles POST /api/ink/request
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		LotID      uint   `json:"lot_id"`
		Quantity   int    `json:"quantity"`
		Department string `json:"department"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.createHandler.Handle(r.Context(), command.CreateRequestCommand{
		LotID:       req.LotID,
		RequesterID: userID,
		Department:  req.Department,
		Quantity:    req.Quantity,
	})
	if err != nil {
		if errors.Is(err, inventorydomain.ErrLotNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.updatePendingMetric(r)
	respondJSON(w, http.StatusCreated, Response{Success: true, Data: request})
}

// SupervisorQueue handles GET /api/ink/supervisor/requests
func (h *RequestHandler) SupervisorQueue(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	requests, err := h.supervisorQueueHandler.Handle(r.Context(), query.ListSupervisorQueueQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list supervisor queue")
		respondError(w, http.StatusInternalServerError, "Failed to list supervisor queue")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: requests})
}

// SupervisorDecide handles POST /api/ink/supervisor
func (h *RequestHandler) SupervisorDecide(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		RequestID uint   `json:"request_id"`
		Action    string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.supervisorHandler.Handle(r.Context(), command.SupervisorDecideCommand{
		RequestID:    req.RequestID,
		SupervisorID: userID,
		Action:       req.Action,
	})
	if err != nil {
		respondDecisionError(w, r, err)
		return
	}

	h.updatePendingMetric(r)
	respondJSON(w, http.StatusOK, Response{Success: true, Data: request})
}

// AdminQueue handles GET /api/ink/admin/requests
func (h *RequestHandler) AdminQueue(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	requests, err := h.adminQueueHandler.Handle(r.Context(), query.ListAdminQueueQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list admin queue")
		respondError(w, http.StatusInternalServerError, "Failed to list admin queue")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: requests})
}

// AdminDecide handles POST /api/ink/admin
func (h *RequestHandler) AdminDecide(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		RequestID         uint   `json:"request_id"`
		Action            string `json:"action"`
		ConsumptionStatus string `json:"consumption_status"`
		RemainingQuantity int    `json:"remaining_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.adminHandler.Handle(r.Context(), command.AdminDecideCommand{
		RequestID:         req.RequestID,
		AdminID:           userID,
		Action:            req.Action,
		ConsumptionStatus: req.ConsumptionStatus,
		RemainingQuantity: req.RemainingQuantity,
	})
	if err != nil {
		respondDecisionError(w, r, err)
		return
	}

	h.updatePendingMetric(r)
	respondJSON(w, http.StatusOK, Response{Success: true, Data: request})
}

// UserRequests handles GET /api/ink/requests/{userId}
func (h *RequestHandler) UserRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, err := strconv.ParseUint(mux.Vars(r)["userId"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	callerID, _ := middleware.UserIDFromContext(r.Context())
	role, _ := middleware.RoleFromContext(r.Context())
	if uint(requesterID) != callerID && role == userdomain.RoleEmployee {
		respondError(w, http.StatusForbidden, "Cannot view another user's requests")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	requests, err := h.userRequestsHandler.Handle(r.Context(), query.ListUserRequestsQuery{
		RequesterID: uint(requesterID),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list user requests")
		respondError(w, http.StatusInternalServerError, "Failed to list requests")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: requests})
}

// ListIssuances handles GET /api/issuances
func (h *RequestHandler) ListIssuances(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	issuances, err := h.issuancesHandler.Handle(r.Context(), query.ListIssuancesQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list issuances")
		respondError(w, http.StatusInternalServerError, "Failed to list issuances")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: issuances})
}

// RegisterRoutes registers all request workflow routes
func (h *RequestHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator) {
	router.HandleFunc("/api/ink/request",
		h.metricsMiddleware("/api/ink/request", authn.Authenticate(h.CreateRequest))).Methods("POST")
	router.HandleFunc("/api/ink/requests/{userId}",
		h.metricsMiddleware("/api/ink/requests/{userId}", authn.Authenticate(h.UserRequests))).Methods("GET")

	router.HandleFunc("/api/ink/supervisor/requests",
		h.metricsMiddleware("/api/ink/supervisor/requests", authn.RequireApprover(h.SupervisorQueue))).Methods("GET")
	router.HandleFunc("/api/ink/supervisor",
		h.metricsMiddleware("/api/ink/supervisor", authn.RequireApprover(h.SupervisorDecide))).Methods("POST")

	router.HandleFunc("/api/ink/admin/requests",
		h.metricsMiddleware("/api/ink/admin/requests", authn.RequireAdmin(h.AdminQueue))).Methods("GET")
	router.HandleFunc("/api/ink/admin",
		h.metricsMiddleware("/api/ink/admin", authn.RequireAdmin(h.AdminDecide))).Methods("POST")

	router.HandleFunc("/api/issuances",
		h.metricsMiddleware("/api/issuances", authn.RequireAdmin(h.ListIssuances))).Methods("GET")
}

// updatePendingMetric updates the pending requests gauge
func (h *RequestHandler) updatePendingMetric(r *http.Request) {
	count, err := h.repo.CountByStatus(r.Context(), domain.StatusPending)
	if err == nil {
		h.pendingRequests.Set(float64(count))
	}
}

// respondDecisionError maps workflow errors to HTTP status codes
func respondDecisionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrRequestNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotEligible),
		errors.Is(err, domain.ErrStateConflict),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidAction):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(r.Context()).Err(err).Msg("Decision failed")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}
