package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	d "github.com/maavergroup/payos-link/internal/domain"
)

type ServiceMock struct {
	result *d.CheckoutResult
	err    error
	body   []byte
}

func (s *ServiceMock) Create(ctx context.Context, body []byte) (*d.CheckoutResult, error) {
	s.body = body
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postPaymentLink(handler *PaymentLinkHandler, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/create-payment-link", handler.CreatePaymentLink)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-link", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePaymentLink_Success(t *testing.T) {
	svc := &ServiceMock{result: &d.CheckoutResult{CheckoutURL: "https://pay.payos.vn/web/abc"}}
	handler := NewPaymentLinkHandler(svc, 1<<20, discardLogger())

	body := `{"description":"Order #1","items":[{"name":"Pen","quantity":2,"price":5000}]}`
	w := postPaymentLink(handler, body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"checkoutUrl":"https://pay.payos.vn/web/abc"}`, w.Body.String())
	assert.Equal(t, body, string(svc.body))
}

func TestCreatePaymentLink_ErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{
			name:       "validation",
			err:        d.ValidationError("items[0].quantity: must be greater than 0"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
			wantDetail: "items[0].quantity: must be greater than 0",
		},
		{
			name:       "aggregation",
			err:        d.AggregationError(d.ErrEmptyItems),
			wantStatus: http.StatusBadRequest,
			wantCode:   "aggregation_error",
			wantDetail: d.ErrEmptyItems.Error(),
		},
		{
			name:       "gateway",
			err:        d.GatewayError(errors.New("Thông tin xác thực không hợp lệ")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "gateway_error",
			wantDetail: "Thông tin xác thực không hợp lệ",
		},
		{
			name:       "untagged",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPaymentLinkHandler(&ServiceMock{err: tt.err}, 1<<20, discardLogger())
			w := postPaymentLink(handler, `{"items":[]}`)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantDetail, resp.Detail)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestCreatePaymentLink_BodyTooLarge(t *testing.T) {
	svc := &ServiceMock{result: &d.CheckoutResult{CheckoutURL: "https://pay.payos.vn/web/abc"}}
	handler := NewPaymentLinkHandler(svc, 16, discardLogger())

	w := postPaymentLink(handler, `{"description":"`+strings.Repeat("x", 64)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "request body too large")
	assert.Nil(t, svc.body)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	Health("payos-link")(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello from payos-link"}`, w.Body.String())
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte(`{"n":1}`)))
}
