package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	d "github.com/maavergroup/payos-link/internal/domain"
)

// Validator turns a raw request body into a fully populated PaymentRequest.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

type requestInput struct {
	Description *string         `json:"description"`
	Items       json.RawMessage `json:"items"`
	BuyerName   *string         `json:"buyer_name"`
	BuyerEmail  *string         `json:"buyer_email"`
	BuyerPhone  *string         `json:"buyer_phone"`
}

type itemInput struct {
	Name     *string `json:"name"`
	Quantity *int64  `json:"quantity"`
	Price    *int64  `json:"price"`
}

func (v *Validator) Parse(body []byte) (*d.PaymentRequest, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, d.ValidationError("request body must be a JSON object")
	}

	var in requestInput
	if err := json.Unmarshal(trimmed, &in); err != nil {
		return nil, decodeError("", err)
	}

	items, err := parseItems(in.Items)
	if err != nil {
		return nil, err
	}

	req := &d.PaymentRequest{
		Description: valueOr(in.Description, d.DefaultDescription),
		Items:       items,
		BuyerName:   valueOr(in.BuyerName, d.DefaultBuyerName),
		BuyerEmail:  valueOr(in.BuyerEmail, d.DefaultBuyerEmail),
		BuyerPhone:  valueOr(in.BuyerPhone, d.DefaultBuyerPhone),
	}

	if err := v.validate.Struct(req); err != nil {
		return nil, structError(err)
	}
	return req, nil
}

func parseItems(raw json.RawMessage) ([]d.LineItem, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, d.ValidationError("items: field required")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, d.ValidationError("items: must be a list of objects")
	}

	items := make([]d.LineItem, 0, len(elems))
	for i, elem := range elems {
		path := fmt.Sprintf("items[%d]", i)
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, d.ValidationError("%s: must be an object", path)
		}

		var in itemInput
		if err := json.Unmarshal(elem, &in); err != nil {
			return nil, decodeError(path, err)
		}
		items = append(items, d.LineItem{
			Name:     valueOr(in.Name, d.DefaultItemName),
			Quantity: valueOr(in.Quantity, d.DefaultQuantity),
			Price:    valueOr(in.Price, d.DefaultPrice),
		})
	}
	return items, nil
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func decodeError(prefix string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if prefix != "" {
			field = prefix + "." + field
		}
		switch typeErr.Type.Kind() {
		case reflect.Int, reflect.Int64:
			return d.ValidationError("%s: must be an integer, got %s", field, typeErr.Value)
		case reflect.String:
			return d.ValidationError("%s: must be a string, got %s", field, typeErr.Value)
		default:
			return d.ValidationError("%s: invalid value %s", field, typeErr.Value)
		}
	}
	if prefix != "" {
		return d.ValidationError("%s: %v", prefix, err)
	}
	return d.ValidationError("invalid JSON body: %v", err)
}

func structError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return d.ValidationError("%v", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		// Namespace is "PaymentRequest.items[0].quantity"; drop the struct name.
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		msgs = append(msgs, field+": "+describe(fe))
	}
	return d.ValidationError("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}
