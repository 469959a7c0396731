package httpapi

import (
	"net/http"

	"github.com/psahay/classwork/internal/auth"
)

type loginRequest struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// handleLogin authenticates a teacher or student and issues a session
// token carrying the (username, role) pair everything downstream
// trusts.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	role := auth.Role(req.Role)
	if err := s.gate.Login(r.Context(), role, req.Username, req.Password); err != nil {
		writeErr(w, err)
		return
	}

	token, err := s.jwt.Generate(req.Username, role)
	if err != nil {
		writeErr(w, err)
		return
	}

	respond(w, http.StatusOK, loginResponse{
		Token:    token,
		Username: req.Username,
		Role:     string(role),
	})
}
