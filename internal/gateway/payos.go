package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL     = "https://api-merchant.payos.vn"
	paymentRequestPath = "/v2/payment-requests"
	successCode        = "00"
	maxResponseBytes   = 1 << 20
)

var ErrSignatureMismatch = errors.New("the data is unreliable because the signature of the response does not match the signature of the data")

type Credentials struct {
	ClientID    string
	APIKey      string
	ChecksumKey string
}

// PayOSClient creates payment links through the PayOS merchant REST API.
type PayOSClient struct {
	creds   Credentials
	baseURL string
	http    *http.Client
}

func NewPayOSClient(creds Credentials, baseURL string, httpClient *http.Client) *PayOSClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &PayOSClient{
		creds:   creds,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type envelope struct {
	Code      string          `json:"code"`
	Desc      string          `json:"desc"`
	Data      json.RawMessage `json:"data"`
	Signature string          `json:"signature"`
}

func (c *PayOSClient) CreatePaymentLink(ctx context.Context, data PaymentData) (*PaymentLink, error) {
	data.Signature = SignPaymentData(data, c.creds.ChecksumKey)
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode payment data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+paymentRequestPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.creds.ClientID)
	req.Header.Set("x-api-key", c.creds.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("payos returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Code != successCode {
		return nil, &APIError{Code: env.Code, Desc: env.Desc}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("payos response has no data")
	}

	if env.Signature != "" {
		ok, err := VerifyData(env.Data, env.Signature, c.creds.ChecksumKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrSignatureMismatch
		}
	}

	var link PaymentLink
	if err := json.Unmarshal(env.Data, &link); err != nil {
		return nil, fmt.Errorf("decode payment link: %w", err)
	}
	if link.CheckoutURL == "" {
		return nil, fmt.Errorf("payos response has no checkout url")
	}
	return &link, nil
}
