package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/psahay/classwork/internal/models"
)

type studentResponse struct {
	Username  string   `json:"username"`
	Access    bool     `json:"access"`
	Subjects  []string `json:"subjects"`
	CreatedAt int64    `json:"created_at"`
}

func toStudentResponse(student *models.Student) studentResponse {
	return studentResponse{
		Username:  student.Username,
		Access:    student.Access,
		Subjects:  student.Subjects,
		CreatedAt: student.CreatedAt,
	}
}

func (s *Server) handleAddStudent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string   `json:"username"`
		Secret   string   `json:"secret"`
		Subjects []string `json:"subjects"`
	}
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Username == "" || req.Secret == "" {
		respond(w, http.StatusBadRequest, errorResponse{Error: "username and secret are required"})
		return
	}

	student, err := s.roster.AddStudent(r.Context(), req.Username, req.Secret, req.Subjects)
	if err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusCreated, toStudentResponse(student))
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.roster.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	out := make([]studentResponse, 0, len(students))
	for _, student := range students {
		out = append(out, toStudentResponse(student))
	}
	respond(w, http.StatusOK, out)
}

func (s *Server) handleSetAccess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Access bool `json:"access"`
	}
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.roster.SetAccess(r.Context(), chi.URLParam(r, "username"), req.Access); err != nil {
		writeErr(w, err)
		return
	}
	respond(w, http.StatusOK, nil)
}
