package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/collecta/internal/http/httpio"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

type Handler struct {
	svc *tracker.Service
}

func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/performance", h.performance)
}

type performanceResponse struct {
	Agents    []loan.AgentPerformance `json:"agents"`
	Portfolio []loan.Share            `json:"portfolio"`
}

func (h *Handler) performance(w http.ResponseWriter, r *http.Request) {
	st := h.svc.Snapshot()
	perf := loan.Performance(st.Loans, st.Agents)

	httpio.JSON(w, http.StatusOK, performanceResponse{
		Agents:    perf,
		Portfolio: loan.PortfolioShare(perf),
	})
}
