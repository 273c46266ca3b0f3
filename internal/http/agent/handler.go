package agent

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/collecta/internal/http/auth"
	"github.com/MrJamesThe3rd/collecta/internal/http/httpio"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

type Handler struct {
	svc *tracker.Service
}

func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.With(auth.RequireAdmin).Post("/", h.create)
	r.With(auth.RequireAdmin).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	httpio.JSON(w, http.StatusOK, h.svc.Snapshot().Agents)
}

type createRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpio.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.AddAgent(r.Context(), req.Name, req.Username)
	if err != nil {
		httpio.Error(w, err)
		return
	}

	httpio.JSON(w, http.StatusCreated, a)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAgent(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpio.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
