package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error   string        `json:"error"`
	Field   string        `json:"field,omitempty"`
	Details []fieldDetail `json:"details,omitempty"`
	Debug   string        `json:"debug,omitempty"`
}

type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Responder turns service errors into the JSON error envelope. It is the
// only place where the domain error taxonomy is mapped to status codes.
type Responder struct {
	log   *slog.Logger
	debug bool
}

// NewResponder creates a Responder. With debug set, internal errors carry
// their error chain in the "debug" field.
func NewResponder(logger *slog.Logger, debug bool) *Responder {
	return &Responder{log: logger.With("component", "responder"), debug: debug}
}

// Error writes the response for err.
func (re *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *domain.ValidationError
		exists *domain.AlreadyExistsError
	)

	switch {
	case errors.As(err, &verr):
		body := errorBody{Error: "validation failed", Details: make([]fieldDetail, len(verr.Errors))}
		for i, fe := range verr.Errors {
			body.Details[i] = fieldDetail{Field: fe.Field, Message: fe.Message}
		}
		if len(verr.Errors) > 0 {
			body.Field = verr.Errors[0].Field
			body.Error = verr.Errors[0].Field + ": " + verr.Errors[0].Message
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "resource not found")
	case errors.As(err, &exists):
		writeJSON(w, http.StatusConflict, errorBody{Error: exists.Error(), Field: exists.Field})
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "resource already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "resource was modified concurrently, retry the request")
	default:
		re.log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		body := errorBody{Error: "internal server error"}
		if re.debug {
			body.Debug = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// decodeJSON reads the request body into v. An empty body decodes as {}.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

// pathID parses the named path wildcard as a UUID and answers 404 when it
// is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusNotFound, "resource not found")
		return uuid.Nil, false
	}
	return id, true
}

// Nullable distinguishes an absent JSON field from an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only called for present fields, including null.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Cleared reports whether the field was sent as null.
func (n Nullable[T]) Cleared() bool {
	return n.Set && n.Value == nil
}
