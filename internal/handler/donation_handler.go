package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/metrics"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/model"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/service"
	"github.com/shopspring/decimal"
)

type DonationHandler struct {
	svc service.DonationService
}

func NewDonationHandler(svc service.DonationService) *DonationHandler {
	return &DonationHandler{svc: svc}
}

// amountValue accepts a JSON number or numeric string and keeps it as a
// decimal; no float ever touches the stored amount.
type amountValue struct {
	value decimal.Decimal
	set   bool
}

func (a *amountValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	a.value = d
	a.set = true
	return nil
}

type createDonationRequest struct {
	UserID optionalID  `json:"userId"`
	Amount amountValue `json:"amount"`
}

type donationResponse struct {
	ID        uint64  `json:"id"`
	UserID    uint64  `json:"userId"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"createdAt"`
}

func toDonationResponse(d *model.Donation) donationResponse {
	return donationResponse{
		ID:        d.ID,
		UserID:    d.AccountID,
		Amount:    d.Amount.InexactFloat64(),
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}

func (h *DonationHandler) Create(c echo.Context) error {
	var body createDonationRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid request body"))
	}
	if body.UserID.value == nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "userId is required"))
	}
	if !body.Amount.set {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "amount is required"))
	}
	d, err := h.svc.Record(c.Request().Context(), *body.UserID.value, body.Amount.value)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "account not found"))
		case service.ErrInvalidAmount:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "amount must be a positive number with at most two decimals"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to record donation"))
		}
	}
	metrics.DonationsRecordedTotal.Inc()
	metrics.DonationsAmountTotal.Add(d.Amount.InexactFloat64())
	return c.JSON(http.StatusCreated, toDonationResponse(d))
}

type donationListResponse struct {
	UserID    uint64             `json:"userId"`
	Total     float64            `json:"total"`
	Donations []donationResponse `json:"donations"`
}

func (h *DonationHandler) ListByAccount(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid account id"))
	}
	list, err := h.svc.ListByAccount(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch donations"))
	}
	total, err := h.svc.Total(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch donations"))
	}
	resp := donationListResponse{
		UserID:    id,
		Total:     total.InexactFloat64(),
		Donations: make([]donationResponse, 0, len(list)),
	}
	for i := range list {
		resp.Donations = append(resp.Donations, toDonationResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
