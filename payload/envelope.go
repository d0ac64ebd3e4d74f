package payload

import (
	"errors"
	"fmt"
)

// CodeNoData is the error code reported when a response lacks the ok flag.
const CodeNoData = 1000

// ErrNoData is returned for responses without an "ok" member.
var ErrNoData = errors.New("payload: data not received")

// ResponseParameters carries the optional hints of a failed request.
type ResponseParameters struct {
	MigrateToChatID int64
	RetryAfter      int64
}

// APIError is a failed Bot API response (ok=false).
type APIError struct {
	Code        int64
	Description string
	Parameters  *ResponseParameters
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %s (code %d)", e.Description, e.Code)
}

// Result is the content of a successful response. Value is the raw "result"
// member; an absent or null result yields an empty []any, never nil.
type Result struct {
	Value       any
	Description string
}

// Unwrap decodes a response envelope and returns its result, or the API
// failure as *APIError.
func Unwrap(data []byte) (Result, error) {
	raw, err := Decode(data)
	if err != nil {
		return Result{}, err
	}
	return UnwrapValue(raw)
}

// UnwrapValue interprets an already decoded envelope.
func UnwrapValue(raw any) (Result, error) {
	env, ok := raw.(map[string]any)
	if !ok {
		return Result{}, ErrNoData
	}
	flag, ok := env["ok"]
	if !ok || flag == nil {
		return Result{}, ErrNoData
	}
	desc, _ := env["description"].(string)
	if b, _ := flag.(bool); !b {
		apiErr := &APIError{Description: desc}
		apiErr.Code, _ = toInt64(env["error_code"])
		if p, ok := env["parameters"].(map[string]any); ok {
			rp := &ResponseParameters{}
			rp.MigrateToChatID, _ = toInt64(p["migrate_to_chat_id"])
			rp.RetryAfter, _ = toInt64(p["retry_after"])
			apiErr.Parameters = rp
		}
		return Result{}, apiErr
	}
	value := env["result"]
	if value == nil {
		value = []any{}
	}
	return Result{Value: value, Description: desc}, nil
}

type int64er interface{ Int64() (int64, error) }

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64er:
		n, err := t.Int64()
		return n, err == nil
	case float64:
		return int64(t), t == float64(int64(t))
	case int:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}
