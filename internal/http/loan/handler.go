package loan

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/collecta/internal/http/auth"
	"github.com/MrJamesThe3rd/collecta/internal/http/httpio"
	"github.com/MrJamesThe3rd/collecta/internal/loan"
	"github.com/MrJamesThe3rd/collecta/internal/state"
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
	r.With(auth.RequireAdmin).Post("/distribute", h.distribute)
	r.Get("/{id}", h.get)
	r.With(auth.RequireAdmin).Delete("/{id}", h.delete)
	r.Patch("/{id}/remark", h.updateRemark)
	r.Post("/{id}/payments", h.recordPayment)
	r.Post("/{id}/communications", h.addCommunication)
}

type listResponse struct {
	Loans                 []loan.Loan `json:"loans"`
	UnassignedOutstanding int         `json:"unassignedOutstanding"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.FromContext(r.Context())
	st := h.svc.Snapshot()

	loans := loan.Search(st.VisibleLoans(user), r.URL.Query().Get("q"))
	if loans == nil {
		loans = []loan.Loan{}
	}

	httpio.JSON(w, http.StatusOK, listResponse{
		Loans:                 loans,
		UnassignedOutstanding: loan.UnassignedOutstanding(st.Loans),
	})
}

// visible resolves the loan in the URL if the caller may work it: admins see
// everything, agents only their own loans.
func (h *Handler) visible(w http.ResponseWriter, r *http.Request) (loan.Loan, bool) {
	user, _ := auth.FromContext(r.Context())

	l, ok := h.svc.Snapshot().Loan(chi.URLParam(r, "id"))
	if !ok || (!user.IsAdmin && l.AssignedAgentID != user.ID) {
		httpio.Error(w, state.ErrLoanNotFound)
		return loan.Loan{}, false
	}

	return l, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	l, ok := h.visible(w, r)
	if !ok {
		return
	}

	httpio.JSON(w, http.StatusOK, l)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteLoan(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpio.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) distribute(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DistributeUnassigned(r.Context()); err != nil {
		httpio.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type remarkRequest struct {
	Remark string `json:"remark"`
}

func (h *Handler) updateRemark(w http.ResponseWriter, r *http.Request) {
	l, ok := h.visible(w, r)
	if !ok {
		return
	}

	var req remarkRequest
	if err := httpio.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, _ := auth.FromContext(r.Context())

	updated, err := h.svc.UpdateRemark(r.Context(), user.ID, l.ID, req.Remark)
	if err != nil {
		httpio.Error(w, err)
		return
	}

	httpio.JSON(w, http.StatusOK, updated)
}

type paymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	l, ok := h.visible(w, r)
	if !ok {
		return
	}

	var req paymentRequest
	if err := httpio.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, _ := auth.FromContext(r.Context())

	updated, err := h.svc.RecordPayment(r.Context(), user.ID, l.ID, req.Amount)
	if err != nil {
		httpio.Error(w, err)
		return
	}

	httpio.JSON(w, http.StatusCreated, updated)
}

type communicationRequest struct {
	Type  loan.CommType `json:"type" validate:"required,oneof=Call Email Visit SMS Other"`
	Notes string        `json:"notes" validate:"required"`
}

func (h *Handler) addCommunication(w http.ResponseWriter, r *http.Request) {
	l, ok := h.visible(w, r)
	if !ok {
		return
	}

	var req communicationRequest
	if err := httpio.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, _ := auth.FromContext(r.Context())

	updated, err := h.svc.AddCommunication(r.Context(), user.ID, l.ID, req.Type, req.Notes)
	if err != nil {
		httpio.Error(w, err)
		return
	}

	httpio.JSON(w, http.StatusCreated, updated)
}
