package server

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	u, err := s.store.CreateUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if mapError(err) == http.StatusConflict {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		s.log.Error().Err(err).Msg("create user")
		writeError(w, http.StatusInternalServerError, "could not create user")
		return
	}
	s.log.Info().Int64("user_id", u.ID).Msg("user created")
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User created"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	token, err := s.store.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		status := mapError(err)
		if status == http.StatusUnauthorized {
			writeError(w, status, "Invalid email or password")
			return
		}
		s.log.Error().Err(err).Msg("authenticate")
		writeError(w, status, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
