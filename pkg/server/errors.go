package server

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/observability"
)

// errorResponse is the JSON body of every failed request. Stage, token and
// position are set only for notation errors.
type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	Stage     string      `json:"stage,omitempty"`
	Token     string      `json:"token,omitempty"`
	Position  *int        `json:"position,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	var pe *notation.ParseError
	if stderrors.As(err, &pe) {
		return http.StatusUnprocessableEntity
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPitchClass, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidLayout:
		return http.StatusBadRequest
	case errors.ErrCodeParseFailure:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodePresetNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func newErrorResponse(err error) errorResponse {
	resp := errorResponse{
		Code:    errors.GetCode(err),
		Message: errors.UserMessage(err),
	}

	var pe *notation.ParseError
	if stderrors.As(err, &pe) {
		resp.Code = errors.GetCode(pe.Err)
		resp.Message = pe.Error()
		resp.Stage = string(pe.Stage)
		resp.Token = pe.Token
		if pe.Position >= 0 {
			pos := pe.Position
			resp.Position = &pos
		}
	}
	if resp.Code == "" {
		resp.Code = errors.ErrCodeInternal
	}
	return resp
}

// writeError writes err as JSON. Internal errors are logged and their
// details withheld from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := newErrorResponse(err)
	resp.RequestID = requestIDFrom(r.Context())

	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", resp.RequestID, "path", r.URL.Path, "err", err)
		if status == http.StatusInternalServerError {
			resp.Message = "internal error"
		}
	}

	writeJSON(w, status, resp)
}
