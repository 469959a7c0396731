package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/psahay/classwork/internal/auth"
	"github.com/psahay/classwork/internal/middleware"
	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/service"
)

// scopeFromQuery builds the scope a request addresses from its
// subject/project query parameters. An absent project means
// subject-only grouping.
func scopeFromQuery(r *http.Request) models.Scope {
	return models.Scope{
		Subject: r.URL.Query().Get("subject"),
		Project: r.URL.Query().Get("project"),
	}
}

type scopedRequest struct {
	Subject string `json:"subject"`
	Project string `json:"project"`
}

func (req scopedRequest) scope() models.Scope {
	return models.Scope{Subject: req.Subject, Project: req.Project}
}

type groupResponse struct {
	Subject   string   `json:"subject"`
	Project   string   `json:"project,omitempty"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	Leader    string   `json:"leader,omitempty"`
	CreatedAt int64    `json:"created_at"`
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		Subject:   g.Scope.Subject,
		Project:   g.Scope.Project,
		Name:      g.Name,
		Members:   g.Members,
		Leader:    g.Leader,
		CreatedAt: g.CreatedAt,
	}
}

// handleListGroups returns the scope's groups in creation order. With
// ?joinable=true the list is filtered to groups the requester could
// join (not full, not already a member).
func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromQuery(r)
	groups, err := s.groups.List(r.Context(), scope)
	if err != nil {
		writeErr(w, err)
		return
	}

	user := middleware.GetUsername(r.Context())
	joinableOnly := r.URL.Query().Get("joinable") == "true"

	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		if joinableOnly && (g.Full() || g.HasMember(user)) {
			continue
		}
		out = append(out, toGroupResponse(g))
	}
	respond(w, http.StatusOK, out)
}

func (s *Server) handleMyGroup(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromQuery(r)
	group, err := s.groups.MyGroup(r.Context(), scope, middleware.GetUsername(r.Context()))
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		scopedRequest
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	group, err := s.groups.Create(r.Context(), req.scope(), req.Name, middleware.GetUsername(r.Context()))
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		scopedRequest
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	group, err := s.groups.Join(r.Context(), req.scope(), req.Name, middleware.GetUsername(r.Context()))
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	var req scopedRequest
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.groups.Leave(r.Context(), req.scope(), middleware.GetUsername(r.Context())); err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

// handleSetLeader elects a member as leader. Students may only elect
// within their own group; the teacher may do it for any group.
func (s *Server) handleSetLeader(w http.ResponseWriter, r *http.Request) {
	var req struct {
		scopedRequest
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	scope := req.scope()

	if middleware.GetRole(r.Context()) == auth.RoleStudent {
		requester := middleware.GetUsername(r.Context())
		mine, err := s.groups.MyGroup(r.Context(), scope, requester)
		if err != nil || mine.Name != req.Name {
			writeErr(w, service.ErrNotMember)
			return
		}
	}

	if err := s.groups.SetLeader(r.Context(), scope, req.Name, req.Username); err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (s *Server) handleCreateEmptyGroup(w http.ResponseWriter, r *http.Request) {
	var req scopedRequest
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	group, err := s.groups.CreateEmpty(r.Context(), req.scope())
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		scopedRequest
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	group, err := s.groups.AddMember(r.Context(), req.scope(), req.Name, req.Username)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromQuery(r)
	name := chi.URLParam(r, "name")

	if err := s.groups.Delete(r.Context(), scope, name); err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}
