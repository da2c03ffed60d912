package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nexhr/worktime-backend-go/internal/domain/worktime"
	"github.com/nexhr/worktime-backend-go/internal/handler/http/response"
	"github.com/nexhr/worktime-backend-go/internal/pkg/validator"
)

type SummaryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetMySummaries(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	ActivePolicy(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	worktimeService worktime.Service
}

func NewSummaryHandler(worktimeService worktime.Service) SummaryHandler {
	return &summaryHandlerImpl{
		worktimeService: worktimeService,
	}
}

func parseSummaryFilter(r *http.Request) worktime.SummaryFilter {
	filter := worktime.SummaryFilter{}

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}

	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	if statusTag := r.URL.Query().Get("status"); statusTag != "" {
		filter.StatusTag = &statusTag
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	filter.Page = page

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	filter.Limit = limit

	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	return filter
}

// List implements SummaryHandler.
func (h *summaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseSummaryFilter(r)

	results, err := h.worktimeService.ListSummaries(r.Context(), filter)
	if err != nil {
		slog.Error("List summaries service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetMySummaries implements SummaryHandler.
func (h *summaryHandlerImpl) GetMySummaries(w http.ResponseWriter, r *http.Request) {
	filter := parseSummaryFilter(r)
	filter.UserID = nil // always scoped to the authenticated user

	results, err := h.worktimeService.GetMySummaries(r.Context(), filter)
	if err != nil {
		slog.Error("Get my summaries service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Recalculate implements SummaryHandler.
func (h *summaryHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req worktime.RecalculateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Recalculate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	workDate, _ := validator.ParseDate(req.WorkDate)

	var (
		summary worktime.DaySummary
		err     error
	)
	if req.Force {
		summary, err = h.worktimeService.RecalculateForced(r.Context(), req.UserID, workDate)
	} else {
		summary, err = h.worktimeService.Recalculate(r.Context(), req.UserID, workDate)
	}
	if err != nil {
		slog.Error("Recalculate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Summary recalculated", worktime.ToSummaryResponse(summary))
}

// ActivePolicy implements SummaryHandler.
func (h *summaryHandlerImpl) ActivePolicy(w http.ResponseWriter, r *http.Request) {
	result, err := h.worktimeService.ActivePolicy(r.Context())
	if err != nil {
		slog.Error("Active policy service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
