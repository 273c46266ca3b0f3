package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/http/auth"
	"github.com/MrJamesThe3rd/collecta/internal/http/httpio"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

type Handler struct {
	svc    *tracker.Service
	tokens *auth.Tokens
}

func NewHandler(svc *tracker.Service, tokens *auth.Tokens) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// Routes mounts login and, behind authenticate, the current-agent read.
func (h *Handler) Routes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Post("/", h.login)
	r.With(authenticate).Get("/", h.current)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	Agent agent.Agent `json:"agent"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpio.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Authenticate(req.Username)
	if err != nil {
		httpio.Error(w, err)
		return
	}

	token, err := h.tokens.Issue(a.ID)
	if err != nil {
		httpio.Error(w, err)
		return
	}

	httpio.JSON(w, http.StatusOK, loginResponse{Token: token, Agent: a})
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	a, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	httpio.JSON(w, http.StatusOK, a)
}
