package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/service"
	"github.com/composersite/catalog/internal/store"
)

const (
	// AuthCookieName marks a browser that entered a valid download password.
	AuthCookieName  = "df_download_auth"
	authCookieValue = "authenticated"
	authCookieTTL   = 24 * 60 * 60
)

type verifyPasswordRequest struct {
	Password string `json:"password"`
	WorkID   string `json:"workId,omitempty"`
}

type verifyPasswordResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type authStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("error writing response: %v", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrDocumentNotFound) {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
		return
	}
	logrus.Errorf("request failed: %v", err)
	respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}

func (s *Server) verifyPassword(w http.ResponseWriter, r *http.Request) {
	var req verifyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.Errorf("password verification error: %v", err)
		respondJSON(w, http.StatusInternalServerError, verifyPasswordResponse{Error: "An error occurred during verification"})
		return
	}

	err := s.passwords.Verify(r.Context(), req.Password, req.WorkID)
	switch {
	case err == nil:
		http.SetCookie(w, &http.Cookie{
			Name:     AuthCookieName,
			Value:    authCookieValue,
			Path:     "/",
			MaxAge:   authCookieTTL,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteStrictMode,
		})
		respondJSON(w, http.StatusOK, verifyPasswordResponse{Success: true})
	case errors.Is(err, service.ErrPasswordRequired):
		respondJSON(w, http.StatusBadRequest, verifyPasswordResponse{Error: "Password is required"})
	case errors.Is(err, service.ErrIncorrectPassword):
		respondJSON(w, http.StatusUnauthorized, verifyPasswordResponse{Error: "Incorrect password"})
	case errors.Is(err, service.ErrPasswordNotConfigured):
		respondJSON(w, http.StatusInternalServerError, verifyPasswordResponse{Error: "Password protection is not configured"})
	default:
		logrus.Errorf("password verification error: %v", err)
		respondJSON(w, http.StatusInternalServerError, verifyPasswordResponse{Error: "An error occurred during verification"})
	}
}

func (s *Server) authStatus(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(AuthCookieName)
	respondJSON(w, http.StatusOK, authStatusResponse{Authenticated: err == nil && cookie.Value == authCookieValue})
}

func (s *Server) listWorks(w http.ResponseWriter, r *http.Request) {
	works, err := s.catalog.ListWorks(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, works)
}

func (s *Server) getWork(w http.ResponseWriter, r *http.Request) {
	work, err := s.catalog.GetWork(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, work)
}

func (s *Server) listRecordings(w http.ResponseWriter, r *http.Request) {
	recordings, err := s.catalog.ListRecordings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recordings)
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.catalog.ListReviews(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (s *Server) listPerformances(w http.ResponseWriter, r *http.Request) {
	performances, err := s.catalog.ListPerformances(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, performances)
}
