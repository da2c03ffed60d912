package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nexhr/worktime-backend-go/internal/domain/punch"
	"github.com/nexhr/worktime-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	RecordManual(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.Service
}

func NewPunchHandler(punchService punch.Service) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

// Record implements PunchHandler.
func (h *punchHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req punch.RecordPunchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Record punch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.punchService.RecordPunch(r.Context(), req)
	if err != nil {
		slog.Error("Record punch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", result)
}

// RecordManual implements PunchHandler.
func (h *punchHandlerImpl) RecordManual(w http.ResponseWriter, r *http.Request) {
	var req punch.ManualPunchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Record manual punch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.punchService.RecordManualPunch(r.Context(), req)
	if err != nil {
		slog.Error("Record manual punch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual punch recorded", result)
}
