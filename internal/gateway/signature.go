package gateway

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SignPaymentData computes the request signature PayOS expects for a new
// payment link.
func SignPaymentData(data PaymentData, checksumKey string) string {
	msg := fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		data.Amount, data.CancelURL, data.Description, data.OrderCode, data.ReturnURL)
	return sign(msg, checksumKey)
}

// SignData signs an arbitrary response object: keys sorted, "k=v" joined by "&".
func SignData(raw json.RawMessage, checksumKey string) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return "", fmt.Errorf("decode signed data: %w", err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v, err := stringify(fields[k])
		if err != nil {
			return "", err
		}
		pairs = append(pairs, k+"="+v)
	}
	return sign(strings.Join(pairs, "&"), checksumKey), nil
}

func VerifyData(raw json.RawMessage, signature, checksumKey string) (bool, error) {
	expected, err := SignData(raw, checksumKey)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(expected), []byte(signature)), nil
}

func stringify(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("encode signed field: %w", err)
		}
		return string(b), nil
	}
}

func sign(msg, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}
