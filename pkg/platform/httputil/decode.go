package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
)

// Request hooks run by PrepareRequest, in the order Sanitize, Normalize,
// Validate. Each is optional.
type (
	Sanitizable  interface{ Sanitize() }
	Normalizable interface{ Normalize() }
	Validatable  interface{ Validate() error }
)

// DecodeJSON decodes the body into a new T. A malformed body gets a 400
// written and ok=false.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req := new(T)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.WarnContext(ctx, "request body is not valid JSON",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return req, true
}

// PrepareRequest applies whichever hooks req implements.
func PrepareRequest(req any) error {
	if s, ok := req.(Sanitizable); ok {
		s.Sanitize()
	}
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := req.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

// DecodeAndPrepare is DecodeJSON followed by PrepareRequest. Validation
// failures that are not already domain errors become CodeValidation.
//
//	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
//	if !ok {
//		return
//	}
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger, ctx, requestID)
	if !ok {
		return nil, false
	}
	err := PrepareRequest(req)
	if err == nil {
		return req, true
	}

	logger.WarnContext(ctx, "request rejected by validation",
		"error", err,
		"request_id", requestID,
	)
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) {
		err = dErrors.New(dErrors.CodeValidation, err.Error())
	}
	WriteError(w, err)
	return nil, false
}
