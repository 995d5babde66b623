package category

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"gather/internal/api"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type interestsRequest struct {
	CategoryIDs []uint `json:"categoryIds" validate:"required,min=1,max=50"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	message := "Category fetched successfully"
	if len(categories) == 0 {
		message = "No category found"
	}
	api.WriteSuccess(w, http.StatusOK, message, categories)
}

func (h *Handler) Interests(w http.ResponseWriter, r *http.Request) {
	var req interestsRequest
	if !api.DecodeAndValidate(w, r, &req) {
		return
	}

	interests, err := h.service.InterestsByCategories(r.Context(), req.CategoryIDs)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, "Interests fetched successfully", interests)
}

func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Seed(r.Context()); err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, "Catalog seeded", nil)
}

func SetupCategoryRoutes(r *mux.Router, h *Handler, authMW func(http.Handler) http.Handler) {
	sub := r.PathPrefix("/api/category").Subrouter()
	sub.Handle("", authMW(http.HandlerFunc(h.List))).Methods(http.MethodGet)
	sub.HandleFunc("/seed", h.Seed).Methods(http.MethodGet)
	sub.Handle("/interests", authMW(http.HandlerFunc(h.Interests))).Methods(http.MethodPost)
}
