package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fairtrip/fairtrip/internal/core"
)

var Writer io.Writer = os.Stdout

func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(Writer, string(data))
	return err
}

func JSONCompact(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(Writer, string(data))
	return err
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Details string `json:"details,omitempty"`
}

const (
	KindInvalidTrip         = "invalid_trip"
	KindProviderUnavailable = "provider_unavailable"
	KindCurrencyMismatch    = "currency_mismatch"
	KindInternal            = "internal"
)

// ErrorKind classifies err by the core sentinel it wraps.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidTrip):
		return KindInvalidTrip
	case errors.Is(err, core.ErrCurrencyMismatch):
		return KindCurrencyMismatch
	case errors.Is(err, core.ErrProviderUnavailable):
		return KindProviderUnavailable
	default:
		return KindInternal
	}
}

func NewErrorResponse(msg string, err error) ErrorResponse {
	resp := ErrorResponse{Error: msg, Kind: KindInternal}
	if err != nil {
		resp.Kind = ErrorKind(err)
		resp.Details = err.Error()
	}
	return resp
}

func JSONError(msg string, err error) {
	_ = JSON(NewErrorResponse(msg, err))
}
