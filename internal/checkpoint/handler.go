package checkpoint

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/guardhq/workforce-management/internal"
	"github.com/guardhq/workforce-management/internal/transport"
	"github.com/guardhq/workforce-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handler) AddCheckpoint(w http.ResponseWriter, r *http.Request) {
	var dto CreateCheckpointDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.AddCheckpoint(dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) GetCheckpoint(w http.ResponseWriter, r *http.Request) {
	checkpointID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid checkpoint id")
		return
	}

	c, err := h.Service.GetCheckpoint(checkpointID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) GetCheckpointsByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(r.URL.Query().Get("client_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "client_id is required")
		return
	}

	result, err := h.Service.GetCheckpointsByClient(clientID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	checkpointID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid checkpoint id")
		return
	}

	roster, err := h.Service.GetRoster(checkpointID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, roster)
}

func (h *Handler) RecordScan(w http.ResponseWriter, r *http.Request) {
	var dto RecordScanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scan, err := h.Service.RecordScan(dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, scan)
}

func (h *Handler) GetScansByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeNo := r.URL.Query().Get("employee_no")
	if employeeNo == "" {
		h.WriteError(w, http.StatusBadRequest, "employee_no is required")
		return
	}

	scans, err := h.Service.GetScansByEmployee(employeeNo)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, scans)
}

func (h *Handler) GetScansByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(r.URL.Query().Get("client_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "client_id is required")
		return
	}

	scans, err := h.Service.GetScansByClient(clientID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, scans)
}

func (h *Handler) GetAllScans(w http.ResponseWriter, r *http.Request) {
	scans, err := h.Service.GetAllScans()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, scans)
}
