package http

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"wonderfinance/internal/storage"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"access_token"`
	Type  string `json:"token_type"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	token, err := s.deps.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, Type: "bearer"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := s.deps.Users.Login(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, Type: "bearer"})
}

type profileResponse struct {
	Email               string          `json:"email"`
	MonthlyIncome       decimal.Decimal `json:"monthly_income"`
	RiskTolerance       int             `json:"risk_tolerance"`
	Goals               string          `json:"goals"`
	PreferredCategories []string        `json:"preferred_categories"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.deps.Users.Profile(r.Context(), userEmail(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		Email:               user.Email,
		MonthlyIncome:       user.MonthlyIncome,
		RiskTolerance:       user.RiskTolerance,
		Goals:               user.Goals,
		PreferredCategories: user.PreferredCategories,
	})
}

type profileUpdateRequest struct {
	MonthlyIncome       *decimal.Decimal `json:"monthly_income"`
	RiskTolerance       *int             `json:"risk_tolerance"`
	Goals               *string          `json:"goals"`
	PreferredCategories []string         `json:"preferred_categories"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := s.deps.Users.UpdateProfile(r.Context(), userEmail(r), storage.ProfileUpdate{
		MonthlyIncome:       req.MonthlyIncome,
		RiskTolerance:       req.RiskTolerance,
		Goals:               req.Goals,
		PreferredCategories: req.PreferredCategories,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}
