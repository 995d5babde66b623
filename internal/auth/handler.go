package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"gather/config"
	"gather/internal/api"
	"gather/internal/apperror"
	"gather/pkg/jwt"
)

const tokenCookie = "token"

type Handler struct {
	useCase UseCase
	cfg     *config.Config
	logger  *zap.Logger
}

func NewHandler(useCase UseCase, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{useCase: useCase, cfg: cfg, logger: logger}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type googleRequest struct {
	Credential string `json:"credential" validate:"required"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !api.DecodeAndValidate(w, r, &req) {
		return
	}

	challenge, err := h.useCase.Register(r.Context(), req.Username, req.Name, req.Email)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteSuccess(w, http.StatusCreated, "OTP sent to email", challenge)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !api.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.useCase.VerifyOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	h.setAuthCookie(w, user.Token)
	api.WriteSuccess(w, http.StatusOK, "OTP verified", user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !api.DecodeAndValidate(w, r, &req) {
		return
	}

	challenge, err := h.useCase.Login(r.Context(), req.Email)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, "OTP sent to email", challenge)
}

func (h *Handler) VerifyLogin(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !api.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.useCase.VerifyLoginOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	h.setAuthCookie(w, user.Token)
	api.WriteSuccess(w, http.StatusOK, "Logged in successfully", user)
}

func (h *Handler) Resend(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !api.DecodeAndValidate(w, r, &req) {
		return
	}

	challenge, err := h.useCase.ResendOTP(r.Context(), req.Email)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, "OTP sent to email", challenge)
}

func (h *Handler) Google(w http.ResponseWriter, r *http.Request) {
	var req googleRequest
	if !api.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.useCase.GoogleSignIn(r.Context(), req.Credential)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	h.setAuthCookie(w, user.Token)
	api.WriteSuccess(w, http.StatusOK, "Logged in successfully", user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *Handler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("u")
	if username == "" {
		api.WriteError(w, h.logger, apperror.BadRequest("Username is required"))
		return
	}

	exists, err := h.useCase.CheckUsername(r.Context(), username)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]bool{"success": true, "exists": exists})
}

func (h *Handler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, authCookie(h.cfg, token, int(jwt.TokenValidity/time.Second)))
}

func (h *Handler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, authCookie(h.cfg, "", -1))
}

func authCookie(cfg *config.Config, value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if cfg.Production() {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     tokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Production(),
		SameSite: sameSite,
	}
}

func SetupAuthRoutes(r *mux.Router, h *Handler) {
	sub := r.PathPrefix("/api/auth").Subrouter()
	sub.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	sub.HandleFunc("/verify", h.Verify).Methods(http.MethodPost)
	sub.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	sub.HandleFunc("/verify-login", h.VerifyLogin).Methods(http.MethodPost)
	sub.HandleFunc("/resend", h.Resend).Methods(http.MethodPost)
	sub.HandleFunc("/google", h.Google).Methods(http.MethodPost)
	sub.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	sub.HandleFunc("/check-username", h.CheckUsername).Methods(http.MethodGet)
}
