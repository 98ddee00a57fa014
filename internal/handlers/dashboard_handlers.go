package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rukaiya14/data-weaver-dashboard/internal/correlation"
	"github.com/rukaiya14/data-weaver-dashboard/internal/repository"
	"github.com/rukaiya14/data-weaver-dashboard/internal/services"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/logging"
	"github.com/rukaiya14/data-weaver-dashboard/pkg/metrics"
)

// displayInsightLimit caps the supplementary insight list shown under
// the main analysis block
const displayInsightLimit = 2

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	forecastService *services.ForecastService
	defaultCity     string
	logger          *logging.StructuredLogger
	metrics         *metrics.Collector
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	forecastService *services.ForecastService,
	defaultCity string,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *DashboardHandler {
	return &DashboardHandler{
		forecastService: forecastService,
		defaultCity:     defaultCity,
		logger:          logger,
		metrics:         metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

// ForecastResponse wraps a forecast with its display-ready insight list
type ForecastResponse struct {
	*services.Forecast
	DisplayInsights []correlation.Insight `json:"display_insights"`
}

// GetOrders handles GET /api/orders
func (h *DashboardHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/orders").Observe(duration.Seconds())
	}()

	startDateStr := r.URL.Query().Get("start_date")
	endDateStr := r.URL.Query().Get("end_date")
	pageStr := r.URL.Query().Get("page")
	limitStr := r.URL.Query().Get("limit")

	page := 1
	limit := 100

	if pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}

	offset := (page - 1) * limit

	filter := repository.OrderFilter{
		Limit:  limit,
		Offset: offset,
	}

	if startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			h.sendError(w, r, "invalid start_date format, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			h.sendError(w, r, "invalid end_date format, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.EndDate = &endDate
	}

	records, total, err := h.forecastService.GetOrders(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_ORDERS_ERROR] Failed to get orders", logging.Fields{
			"filter": filter,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/orders")
		h.sendError(w, r, "failed to retrieve order history", http.StatusInternalServerError)
		return
	}

	totalPages := (total + limit - 1) / limit

	response := PaginatedResponse{
		Data:       records,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}

	h.metrics.RecordAPIRequest("/api/orders", "GET", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// GetOrderSummary handles GET /api/orders/summary
func (h *DashboardHandler) GetOrderSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/orders/summary").Observe(duration.Seconds())
	}()

	summary, err := h.forecastService.GetSummary(ctx)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_SUMMARY_ERROR] Failed to compute order summary", logging.Fields{}, err)
		h.metrics.RecordAPIError("internal_error", "/api/orders/summary")
		h.sendError(w, r, "failed to compute order summary", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/orders/summary", "GET", "200")
	h.sendJSON(w, summary, http.StatusOK)
}

// GetForecast handles GET /api/forecast
func (h *DashboardHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/forecast").Observe(duration.Seconds())
	}()

	city := r.URL.Query().Get("city")
	if city == "" {
		city = h.defaultCity
	}

	forecast, err := h.forecastService.GetForecast(ctx, city)
	if err != nil {
		h.logger.Error(ctx, "[API_FORECAST_ERROR] Failed to evaluate forecast", logging.Fields{
			"city": city,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/forecast")
		h.sendError(w, r, "failed to evaluate demand forecast", http.StatusInternalServerError)
		return
	}

	display := forecast.Result.Insights
	if len(display) > displayInsightLimit {
		display = display[:displayInsightLimit]
	}

	response := ForecastResponse{
		Forecast:        forecast,
		DisplayInsights: display,
	}

	h.metrics.RecordAPIRequest("/api/forecast", "GET", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *DashboardHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// sendJSON sends a JSON response
func (h *DashboardHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *DashboardHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all dashboard API routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", h.GetOrders).Methods("GET")
	router.HandleFunc("/api/orders/summary", h.GetOrderSummary).Methods("GET")
	router.HandleFunc("/api/forecast", h.GetForecast).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}
