package httpapi

import (
	"net/http"

	"github.com/psahay/classwork/internal/models"
)

type projectResponse struct {
	Subject     string `json:"subject"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
	Value       string `json:"value"`
	Deadline    string `json:"deadline,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

func toProjectResponse(p *models.Project) projectResponse {
	return projectResponse{
		Subject:     p.Subject,
		Title:       p.Title,
		Description: p.Description,
		Kind:        string(p.Kind),
		Value:       p.Value,
		Deadline:    p.Deadline,
		CreatedAt:   p.CreatedAt,
	}
}

func (s *Server) handleUploadProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject     string `json:"subject"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Kind        string `json:"kind"`
		Value       string `json:"value"`
		Deadline    string `json:"deadline"`
	}
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	kind := models.DeliverableKind(req.Kind)
	if kind != models.KindFile && kind != models.KindURL {
		respond(w, http.StatusBadRequest, errorResponse{Error: "kind must be \"file\" or \"url\""})
		return
	}

	project, err := s.projects.Upload(r.Context(), req.Subject, req.Title, req.Description, kind, req.Value, req.Deadline)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusCreated, toProjectResponse(project))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List(r.Context(), r.URL.Query().Get("subject"))
	if err != nil {
		writeErr(w, err)
		return
	}

	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	respond(w, http.StatusOK, out)
}

func (s *Server) handleSetDeadline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject  string `json:"subject"`
		Title    string `json:"title"`
		Deadline string `json:"deadline"`
	}
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.projects.SetDeadline(r.Context(), req.Subject, req.Title, req.Deadline); err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}
