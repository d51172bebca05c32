package httpx

import (
	"encoding/json"
	"net/http"
	"strings"

	"mandimart-be/internal/user"
	"mandimart-be/internal/utils"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || len(req.Password) < 8 || req.Name == "" {
		utils.WriteJSONError(w, "name, email and a password of 8+ characters are required", http.StatusBadRequest)
		return
	}

	token, u, err := s.UserSvc.Register(r.Context(), req.Name, req.Email, req.Password, user.Role(req.Role))
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, authResponse{
		Token: token, ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	token, u, err := s.UserSvc.Login(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, authResponse{
		Token: token, ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role),
	})
}
