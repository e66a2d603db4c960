package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/api/dto"
	"github.com/radieske/footy-predictor/internal/identity"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	user, token, err := s.Identity.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrMissingFields),
			errors.Is(err, identity.ErrWeakPassword),
			errors.Is(err, identity.ErrUserExists):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.Log.Error("register failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":      "Registration successful",
		"user":         user,
		"access_token": token,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	user, token, err := s.Identity.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusUnauthorized, identity.ErrInvalidCredentials.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Login successful",
		"user":         user,
		"access_token": token,
	})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r.Context())

	user, err := s.Identity.Me(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
