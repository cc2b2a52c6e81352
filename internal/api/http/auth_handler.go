package http

import (
	"net/http"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type signupRequest struct {
	CompanyID int32  `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.authSvc.Signup(r.Context(), req.CompanyID, req.Name, req.Email, req.Password, domain.UserRole(req.Role))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	token, user, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{AccessToken: token, User: user})
}

type otpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code,omitempty"`
}

func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.authSvc.RequestEmailOTP(r.Context(), req.Email); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.authSvc.VerifyEmailOTP(r.Context(), req.Email, req.Code); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}
