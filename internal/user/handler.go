package user

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"gather/internal/api"
	"gather/internal/apperror"
	"gather/internal/auth"
	"gather/internal/database"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type socialRequest struct {
	Type string `json:"type" validate:"required,oneof=TWITTER INSTAGRAM LINKEDIN FACEBOOK GITHUB OTHER"`
	URL  string `json:"url" validate:"required,url,max=500"`
}

type updateRequest struct {
	Name           *string         `json:"name" validate:"omitempty,min=1,max=100"`
	Phone          *string         `json:"phone" validate:"omitempty,min=10,max=20"`
	ProfilePicture *string         `json:"profilePicture" validate:"omitempty,url,max=500"`
	DOB            *string         `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender         *string         `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Bio            *string         `json:"bio" validate:"omitempty,max=2000"`
	IsOnboarded    *bool           `json:"isOnboarded"`
	Interests      []uint          `json:"interests" validate:"omitempty,max=200"`
	Socials        []socialRequest `json:"socials" validate:"omitempty,dive"`
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		api.WriteError(w, h.logger, apperror.Unauthorized("Unauthorized"))
		return
	}

	profile, err := h.service.Me(r.Context(), claims.UserID)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, "User fetched successfully", profile)
}

func (h *Handler) ByUsername(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if username == "" {
		api.WriteError(w, h.logger, apperror.BadRequest("username is required"))
		return
	}

	profile, err := h.service.ByUsername(r.Context(), username)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, "User fetched successfully", profile)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		api.WriteError(w, h.logger, apperror.Unauthorized("Unauthorized"))
		return
	}

	var req updateRequest
	if !api.DecodeAndValidate(w, r, &req) {
		return
	}

	input, err := toUpdateInput(req)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	profile, err := h.service.Update(r.Context(), claims.UserID, input)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, "user updated successfully", profile)
}

func toUpdateInput(req updateRequest) (UpdateInput, error) {
	input := UpdateInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Bio:         req.Bio,
		IsOnboarded: req.IsOnboarded,
		Interests:   req.Interests,
	}

	if req.ProfilePicture != nil && *req.ProfilePicture != "" {
		input.ProfilePicture = req.ProfilePicture
	}
	if req.Gender != nil {
		g := database.Gender(strings.ToUpper(*req.Gender))
		input.Gender = &g
	}
	if req.DOB != nil {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			return input, apperror.BadRequest("Invalid date of birth")
		}
		input.DOB = &dob
	}
	if req.Socials != nil {
		input.Socials = make([]SocialInput, 0, len(req.Socials))
		for _, s := range req.Socials {
			input.Socials = append(input.Socials, SocialInput{
				Type: database.SocialType(strings.ToUpper(strings.TrimSpace(s.Type))),
				URL:  strings.TrimSpace(s.URL),
			})
		}
	}

	return input, nil
}

func SetupUserRoutes(r *mux.Router, h *Handler, authMW func(http.Handler) http.Handler) {
	sub := r.PathPrefix("/api/user").Subrouter()
	sub.Handle("/me", authMW(http.HandlerFunc(h.Me))).Methods(http.MethodGet)
	sub.HandleFunc("/get/{username}", h.ByUsername).Methods(http.MethodGet)
	sub.Handle("/update", authMW(http.HandlerFunc(h.Update))).Methods(http.MethodPut)
}
