package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/model"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/service"
	"github.com/shopspring/decimal"
)

type fakeDonationService struct {
	recorded []model.Donation
	err      error
}

func (f *fakeDonationService) Record(_ context.Context, accountID uint64, amount decimal.Decimal) (*model.Donation, error) {
	if f.err != nil {
		return nil, f.err
	}
	d := model.Donation{ID: uint64(len(f.recorded) + 1), AccountID: accountID, Amount: amount}
	f.recorded = append(f.recorded, d)
	return &d, nil
}

func (f *fakeDonationService) ListByAccount(_ context.Context, accountID uint64) ([]model.Donation, error) {
	var out []model.Donation
	for _, d := range f.recorded {
		if d.AccountID == accountID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDonationService) Total(_ context.Context, accountID uint64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range f.recorded {
		if d.AccountID == accountID {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

func postDonation(t *testing.T, svc service.DonationService, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := NewDonationHandler(svc).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestDonationCreate(t *testing.T) {
	svc := &fakeDonationService{}
	rec := postDonation(t, svc, `{"userId": 3, "amount": 25.5}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var got struct {
		UserID uint64  `json:"userId"`
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.UserID != 3 || got.Amount != 25.5 {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestDonationCreateStringFields(t *testing.T) {
	// Share-link clients post ids and amounts as strings.
	svc := &fakeDonationService{}
	rec := postDonation(t, svc, `{"userId": "3", "amount": "25.50"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if len(svc.recorded) != 1 || !svc.recorded[0].Amount.Equal(decimal.RequireFromString("25.5")) {
		t.Fatalf("unexpected recorded donations %+v", svc.recorded)
	}
}

func TestDonationCreateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"missing user", `{"amount": 10}`, nil, http.StatusBadRequest},
		{"missing amount", `{"userId": 1}`, nil, http.StatusBadRequest},
		{"non-numeric amount", `{"userId": 1, "amount": "ten"}`, nil, http.StatusBadRequest},
		{"invalid amount", `{"userId": 1, "amount": -5}`, service.ErrInvalidAmount, http.StatusBadRequest},
		{"unknown account", `{"userId": 9, "amount": 10}`, service.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postDonation(t, &fakeDonationService{err: tt.err}, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status=%d want %d body=%s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestDonationListByAccount(t *testing.T) {
	svc := &fakeDonationService{recorded: []model.Donation{
		{ID: 1, AccountID: 5, Amount: decimal.RequireFromString("10")},
		{ID: 2, AccountID: 5, Amount: decimal.RequireFromString("2.50")},
		{ID: 3, AccountID: 6, Amount: decimal.RequireFromString("99")},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/donations/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/donations/:userId")
	c.SetParamNames("userId")
	c.SetParamValues("5")
	if err := NewDonationHandler(svc).ListByAccount(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var got struct {
		UserID    uint64           `json:"userId"`
		Total     float64          `json:"total"`
		Donations []map[string]any `json:"donations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.UserID != 5 || got.Total != 12.5 || len(got.Donations) != 2 {
		t.Fatalf("unexpected response %+v", got)
	}
}
