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
)

type AuthHandler struct {
	svc     service.AccountService
	baseURL string
}

func NewAuthHandler(svc service.AccountService, baseURL string) *AuthHandler {
	return &AuthHandler{svc: svc, baseURL: baseURL}
}

// optionalID accepts a JSON number or numeric string; share links carry the
// referrer id as a query parameter, so clients pass it through as a string.
type optionalID struct {
	value *uint64
}

func (o *optionalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		o.value = nil
		return nil
	}
	var s string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	if s == "" {
		o.value = nil
		return nil
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	o.value = &id
	return nil
}

type loginRequest struct {
	Username   string     `json:"username"`
	ReferrerID optionalID `json:"referrerId"`
	Ref        string     `json:"ref"`
}

type accountResponse struct {
	ID           uint64  `json:"id"`
	Username     string  `json:"username"`
	ReferrerID   *uint64 `json:"referrerId"`
	ReferralCode string  `json:"referralCode"`
	ReferralLink string  `json:"referralLink,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

func (h *AuthHandler) toAccountResponse(a *model.Account) accountResponse {
	return accountResponse{
		ID:           a.ID,
		Username:     a.Name,
		ReferrerID:   a.ReferrerID,
		ReferralCode: a.ReferralCode,
		ReferralLink: h.svc.ReferralLink(h.baseURL, a),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var body loginRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid request body"))
	}
	a, created, err := h.svc.Login(c.Request().Context(), body.Username, body.ReferrerID.value, body.Ref)
	if err != nil {
		switch err {
		case service.ErrInvalidName:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "username is required"))
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "referrer not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "login failed"))
		}
	}
	outcome := "existing"
	status := http.StatusOK
	if created {
		outcome = "created"
		status = http.StatusCreated
	}
	metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	return c.JSON(status, h.toAccountResponse(a))
}

func (h *AuthHandler) GetAccount(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid account id"))
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "account not found"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch account"))
		}
	}
	return c.JSON(http.StatusOK, h.toAccountResponse(a))
}
