// Package httpapi exposes the portal's core to its two dashboard
// front-ends over JSON/HTTP. The handlers stay thin: decode, call the
// service, map the domain error to a status code.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/psahay/classwork/internal/auth"
	"github.com/psahay/classwork/internal/service"
)

// Server bundles the services the HTTP layer dispatches into.
type Server struct {
	gate        *auth.Gate
	jwt         *auth.JWTManager
	roster      *service.RosterService
	groups      *service.GroupService
	submissions *service.SubmissionService
	grades      *service.GradeService
	projects    *service.ProjectService
}

// NewServer creates the HTTP layer over the given services.
func NewServer(
	gate *auth.Gate,
	jwt *auth.JWTManager,
	roster *service.RosterService,
	groups *service.GroupService,
	submissions *service.SubmissionService,
	grades *service.GradeService,
	projects *service.ProjectService,
) *Server {
	return &Server{
		gate:        gate,
		jwt:         jwt,
		roster:      roster,
		groups:      groups,
		submissions: submissions,
		grades:      grades,
		projects:    projects,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeErr maps domain errors to HTTP status codes. Everything the
// services return deliberately is a recoverable validation failure;
// anything else is a 500.
func writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrNotInGroup),
		errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrGradeNotFound):
		status = http.StatusNotFound

	case errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrDuplicateGroupName),
		errors.Is(err, service.ErrDuplicateProject),
		errors.Is(err, service.ErrAlreadyInGroup),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrGroupFull),
		errors.Is(err, service.ErrAlreadySubmitted):
		status = http.StatusConflict

	case errors.Is(err, service.ErrEmptyGroupName),
		errors.Is(err, service.ErrEmptyTitle),
		errors.Is(err, service.ErrMissingValue),
		errors.Is(err, service.ErrEmptyMarks),
		errors.Is(err, service.ErrNotMember):
		status = http.StatusBadRequest

	case errors.Is(err, service.ErrNotLeader),
		errors.Is(err, service.ErrAccessDenied):
		status = http.StatusForbidden

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		slog.Error("Internal error", "error", err)
		respond(w, status, errorResponse{Error: "internal error"})
		return
	}
	respond(w, status, errorResponse{Error: err.Error()})
}
