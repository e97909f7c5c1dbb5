package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mfiorito/hard75/internal/account"
)

const (
	serviceTimeout = 8 * time.Second
	maxBodyBytes   = 64 * 1024
)

type checkEmailRequest struct {
	Email string `json:"email"`
}

type checkEmailResponse struct {
	Exists bool `json:"exists"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	User  *account.User          `json:"user"`
	Stats *account.PhysicalStats `json:"stats"`
}

type loginResponse struct {
	User  *account.User `json:"user"`
	Token string        `json:"token"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegisterRoutes mounts the auth endpoints.
func RegisterRoutes(r chi.Router, svc *account.Service, logger *slog.Logger) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Post("/check-email", checkEmail(svc, logger))
		r.Post("/register", register(svc, logger))
		r.Post("/login", login(svc, logger))
	})
}

func checkEmail(svc *account.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkEmailRequest
		if !decode(w, r, &req) {
			return
		}
		if req.Email == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "email is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		exists, err := svc.CheckEmail(ctx, req.Email)
		if err != nil {
			logger.Error("check-email failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "failed to check email")
			return
		}
		writeJSON(w, http.StatusOK, checkEmailResponse{Exists: exists})
	}
}

func register(svc *account.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input account.RegisterInput
		if !decode(w, r, &input) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		user, stats, err := svc.Register(ctx, input)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrEmailTaken):
				writeError(w, http.StatusConflict, "conflict", err.Error())
			case errors.Is(err, account.ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			default:
				logger.Error("registration failed", "error", err)
				writeError(w, http.StatusInternalServerError, "internal", "registration failed")
			}
			return
		}
		writeJSON(w, http.StatusCreated, registerResponse{User: user, Stats: stats})
	}
}

func login(svc *account.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decode(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		user, token, err := svc.Login(ctx, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}
			logger.Error("login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "login failed")
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
