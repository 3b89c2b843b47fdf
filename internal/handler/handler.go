package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/finance"
	"github.com/Dan9191/wealth-tracker/internal/middleware"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/Dan9191/wealth-tracker/internal/repository"
	"github.com/Dan9191/wealth-tracker/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultForecastDays is used when the forecast length is not given
const DefaultForecastDays = 30

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Router builds the HTTP routes. auth guards everything under /api.
func (h *Handler) Router(auth mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth)
	h.Routes(api)
	return r
}

// Routes registers the API endpoints on an authenticated router
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/transactions", h.ListTransactions).Methods(http.MethodGet)
	r.HandleFunc("/transactions", h.CreateTransactions).Methods(http.MethodPost)
	r.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods(http.MethodDelete)
	r.HandleFunc("/summary", h.Summary).Methods(http.MethodGet)

	r.HandleFunc("/assets", h.ListAssets).Methods(http.MethodGet)
	r.HandleFunc("/assets", h.CreateAsset).Methods(http.MethodPost)
	r.HandleFunc("/assets/{id}", h.DeleteAsset).Methods(http.MethodDelete)
	r.HandleFunc("/assets/{id}/schedule", h.AssetSchedule).Methods(http.MethodGet)
	r.HandleFunc("/wealth", h.Wealth).Methods(http.MethodGet)

	r.HandleFunc("/current-account", h.GetCurrentAccount).Methods(http.MethodGet)
	r.HandleFunc("/current-account/manual", h.ManualUpdate).Methods(http.MethodPost)
	r.HandleFunc("/current-account/auto", h.AutoUpdate).Methods(http.MethodPost)
	r.HandleFunc("/forecast", h.Forecast).Methods(http.MethodGet)
}

// Health reports that the server is up
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, repository.ErrConcurrentUpdate):
		status, msg = http.StatusConflict, "account was updated concurrently, retry"
	default:
		h.log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Errorf("Request failed: %v", err)
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", service.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (h *Handler) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("malformed request body: %v", err)
	}
	return nil
}

func userID(r *http.Request) int64 {
	id, _ := middleware.UserID(r.Context())
	return id
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, badRequest("invalid id %q", mux.Vars(r)["id"])
	}
	return id, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest("invalid %s %q", key, v)
	}
	return n, nil
}

// parsePeriod reads ?period=month|year&year=&month=, defaulting year and month to today.
// It returns nil when no period is requested.
func parsePeriod(r *http.Request, today date.Date) (*finance.Period, error) {
	kind := strings.ToUpper(r.URL.Query().Get("period"))
	if kind == "" {
		return nil, nil
	}
	year, err := queryInt(r, "year", today.Year())
	if err != nil {
		return nil, err
	}
	month, err := queryInt(r, "month", int(today.Month()))
	if err != nil {
		return nil, err
	}
	p, err := finance.ParsePeriod(kind, year, month)
	if err != nil {
		return nil, badRequest("%v", err)
	}
	return &p, nil
}

// ListTransactions handles listing entries, optionally restricted to a month or a year
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r, h.svc.Today())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	entries, err := h.svc.ListEntries(r.Context(), userID(r), period)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// CreateTransactions handles recording an entry and its recurrences
func (h *Handler) CreateTransactions(w http.ResponseWriter, r *http.Request) {
	var in service.EntryInput
	if err := h.decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	entries, err := h.svc.AddEntries(r.Context(), userID(r), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, entries)
}

// DeleteTransaction handles removing an entry
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteEntry(r.Context(), userID(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summary handles the income and expense totals of a month or a year
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	today := h.svc.Today()
	period, err := parsePeriod(r, today)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if period == nil {
		p := finance.PeriodOf(finance.PeriodMonth, today)
		period = &p
	}
	summary, err := h.svc.Summary(r.Context(), userID(r), *period)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// ListAssets handles listing assets
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.svc.ListAssets(r.Context(), userID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, assets)
}

// CreateAsset handles asset creation
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var in service.AssetInput
	if err := h.decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	asset, err := h.svc.AddAsset(r.Context(), userID(r), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, asset)
}

// DeleteAsset handles removing an asset
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteAsset(r.Context(), userID(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssetSchedule handles the amortization table of an asset loan
func (h *Handler) AssetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	schedule, err := h.svc.Schedule(r.Context(), userID(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, schedule)
}

// Wealth handles the gross and net worth report
func (h *Handler) Wealth(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Wealth(r.Context(), userID(r), r.URL.Query().Get("currency"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// GetCurrentAccount handles reading the current account
func (h *Handler) GetCurrentAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.GetAccount(r.Context(), userID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, acc)
}

type manualUpdateRequest struct {
	Balance *decimal.Decimal `json:"balance"`
	Date    *date.Date       `json:"date,omitempty"`
}

// ManualUpdate handles overwriting the current account balance
func (h *Handler) ManualUpdate(w http.ResponseWriter, r *http.Request) {
	var req manualUpdateRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Balance == nil {
		h.writeError(w, r, badRequest("balance is required"))
		return
	}
	acc, err := h.svc.ManualUpdate(r.Context(), userID(r), *req.Balance, req.Date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, acc)
}

// Reconciliation statuses
const (
	StatusApplied  = "applied"
	StatusUpToDate = "up_to_date"
)

type autoUpdateResponse struct {
	models.Account
	Applied decimal.Decimal `json:"applied"`
	Entries int             `json:"entries"`
	Status  string          `json:"status"`
}

// AutoUpdate handles applying the entries recorded since the last update
func (h *Handler) AutoUpdate(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.AutoReconcile(r.Context(), userID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status := StatusApplied
	if rec.UpToDate() {
		status = StatusUpToDate
	}
	h.writeJSON(w, http.StatusOK, autoUpdateResponse{
		Account: rec.Account,
		Applied: rec.Net,
		Entries: rec.Entries,
		Status:  status,
	})
}

// Forecast handles the projected balance over the next days
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", DefaultForecastDays)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	forecast, err := h.svc.Forecast(r.Context(), userID(r), days)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, forecast)
}
