package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	d "github.com/maavergroup/payos-link/internal/domain"
	"github.com/maavergroup/payos-link/internal/service"
	"github.com/maavergroup/payos-link/pkg/logger"
)

type PaymentLinkHandler struct {
	service     service.PaymentLinkCreator
	maxBodySize int64
	logger      *slog.Logger
}

func NewPaymentLinkHandler(svc service.PaymentLinkCreator, maxBodySize int64, logger *slog.Logger) *PaymentLinkHandler {
	return &PaymentLinkHandler{
		service:     svc,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// POST /create-payment-link
func (h *PaymentLinkHandler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, string(d.KindValidation), "request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, string(d.KindValidation), "failed to read request body")
		return
	}

	result, err := h.service.Create(r.Context(), body)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *PaymentLinkHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := d.KindOf(err)
	var status int
	switch kind {
	case d.KindValidation, d.KindAggregation:
		status = http.StatusBadRequest
	case d.KindGateway:
		status = http.StatusInternalServerError
	default:
		status = http.StatusInternalServerError
		h.logger.ErrorContext(r.Context(), "unexpected error creating payment link", "err", err, logger.Traced(r.Context()))
	}

	respondError(w, status, string(kind), err.Error())
}

// Health answers liveness probes.
func Health(serviceName string) http.HandlerFunc {
	msg := MessageResponse{Message: "Hello from " + serviceName}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, msg)
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, detail string) {
	respondJSON(w, status, ErrorResponse{
		Detail: detail,
		Code:   code,
	})
}
