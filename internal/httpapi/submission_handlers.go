package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/psahay/classwork/internal/deadline"
	"github.com/psahay/classwork/internal/middleware"
	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/service"
)

type submissionResponse struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Project     string   `json:"project,omitempty"`
	GroupName   string   `json:"group_name"`
	Title       string   `json:"title"`
	Kind        string   `json:"kind"`
	Value       string   `json:"value"`
	Members     []string `json:"members"`
	SubmittedAt int64    `json:"submitted_at"`
	Status      string   `json:"status"`
	Marks       string   `json:"marks,omitempty"`
	Feedback    string   `json:"feedback,omitempty"`
	Graded      bool     `json:"graded"`
}

// annotate decorates a raw submission with its deadline status and any
// recorded grade, the way both dashboards present it.
func (s *Server) annotate(r *http.Request, sub *models.Submission) (submissionResponse, error) {
	resp := submissionResponse{
		ID:          sub.ID,
		Subject:     sub.Scope.Subject,
		Project:     sub.Scope.Project,
		GroupName:   sub.GroupName,
		Title:       sub.Title,
		Kind:        string(sub.Kind),
		Value:       sub.Value,
		Members:     sub.Members,
		SubmittedAt: sub.SubmittedAt,
	}

	var project *models.Project
	if sub.Scope.Project != "" {
		p, err := s.projects.Get(r.Context(), sub.Scope.Subject, sub.Scope.Project)
		if err != nil && !errors.Is(err, service.ErrProjectNotFound) {
			return resp, err
		}
		project = p
	}
	resp.Status = string(deadline.Evaluate(sub, project))

	grade, err := s.grades.For(r.Context(), sub.ID)
	switch {
	case err == nil:
		resp.Graded = true
		resp.Marks = grade.Marks
		resp.Feedback = grade.Feedback
	case errors.Is(err, service.ErrGradeNotFound):
		// marks pending
	default:
		return resp, err
	}

	return resp, nil
}

func (s *Server) annotateAll(r *http.Request, subs []*models.Submission) ([]submissionResponse, error) {
	out := make([]submissionResponse, 0, len(subs))
	for _, sub := range subs {
		resp, err := s.annotate(r, sub)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// handleSubmit records the deliverable of the requester's group for the
// scope. The requester must be the group's leader.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		scopedRequest
		Title string `json:"title"`
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	scope := req.scope()
	user := middleware.GetUsername(r.Context())

	group, err := s.groups.MyGroup(r.Context(), scope, user)
	if err != nil {
		writeErr(w, err)
		return
	}

	kind := models.DeliverableKind(req.Kind)
	if kind != models.KindFile && kind != models.KindURL {
		respond(w, http.StatusBadRequest, errorResponse{Error: "kind must be \"file\" or \"url\""})
		return
	}

	sub, err := s.submissions.Submit(r.Context(), scope, group.Name, user, req.Title, kind, req.Value)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp, err := s.annotate(r, sub)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusCreated, resp)
}

// handleMySubmissions returns the requester's group's submissions for
// the scope, annotated with status and grade.
func (s *Server) handleMySubmissions(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromQuery(r)
	user := middleware.GetUsername(r.Context())

	group, err := s.groups.MyGroup(r.Context(), scope, user)
	if err != nil {
		if errors.Is(err, service.ErrNotInGroup) {
			respond(w, http.StatusOK, []submissionResponse{})
			return
		}
		writeErr(w, err)
		return
	}

	subs, err := s.submissions.ForScope(r.Context(), scope)
	if err != nil {
		writeErr(w, err)
		return
	}

	mine := subs[:0:0]
	for _, sub := range subs {
		if sub.GroupName == group.Name {
			mine = append(mine, sub)
		}
	}

	out, err := s.annotateAll(r, mine)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

// handleSubjectSubmissions returns every submission under a subject for
// the teacher's grading view.
func (s *Server) handleSubjectSubmissions(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("subject")

	subs, err := s.submissions.ForSubject(r.Context(), subject)
	if err != nil {
		writeErr(w, err)
		return
	}

	out, err := s.annotateAll(r, subs)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

type gradeResponse struct {
	SubmissionID string `json:"submission_id"`
	Marks        string `json:"marks"`
	Feedback     string `json:"feedback,omitempty"`
	GradedAt     int64  `json:"graded_at"`
}

// handleSaveGrade records marks for a submission. The 0-100 range is
// enforced here, at the caller, not in the grade book.
func (s *Server) handleSaveGrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubmissionID string `json:"submission_id"`
		Marks        string `json:"marks"`
		Feedback     string `json:"feedback"`
	}
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if marks := strings.TrimSpace(req.Marks); marks != "" {
		n, err := strconv.Atoi(marks)
		if err != nil || n < 0 || n > 100 {
			respond(w, http.StatusBadRequest, errorResponse{Error: "marks must be a number between 0 and 100"})
			return
		}
	}

	grade, err := s.grades.Save(r.Context(), req.SubmissionID, req.Marks, req.Feedback)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, gradeResponse{
		SubmissionID: grade.SubmissionID,
		Marks:        grade.Marks,
		Feedback:     grade.Feedback,
		GradedAt:     grade.GradedAt,
	})
}

// handleGradeFor returns the grade for a submission, or 404 while marks
// are pending.
func (s *Server) handleGradeFor(w http.ResponseWriter, r *http.Request) {
	grade, err := s.grades.For(r.Context(), chi.URLParam(r, "submissionID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, gradeResponse{
		SubmissionID: grade.SubmissionID,
		Marks:        grade.Marks,
		Feedback:     grade.Feedback,
		GradedAt:     grade.GradedAt,
	})
}
