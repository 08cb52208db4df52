package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/metrics"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/service"
)

type SummaryHandler struct {
	svc service.SummaryService
}

func NewSummaryHandler(svc service.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

type levelResponse struct {
	Level     int     `json:"level"`
	UserCount int     `json:"userCount"`
	Total     float64 `json:"total"`
}

type summaryResponse struct {
	UserID    uint64          `json:"userId"`
	UserTotal float64         `json:"userTotal"`
	Levels    []levelResponse `json:"levels"`
}

func toSummaryResponse(s *service.Summary) summaryResponse {
	levels := make([]levelResponse, 0, len(s.Levels))
	for _, lv := range s.Levels {
		levels = append(levels, levelResponse{
			Level:     lv.Level,
			UserCount: lv.UserCount,
			Total:     lv.Total.InexactFloat64(),
		})
	}
	return summaryResponse{
		UserID:    s.UserID,
		UserTotal: s.UserTotal.InexactFloat64(),
		Levels:    levels,
	}
}

func (h *SummaryHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid account id"))
	}
	summary, err := h.svc.Summarize(c.Request().Context(), id)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "account not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to compute summary"))
		}
	}
	metrics.SummaryRequestsTotal.Inc()
	metrics.SummaryTreeDepth.Observe(float64(len(summary.Levels)))
	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}
