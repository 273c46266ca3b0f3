package export

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/collecta/internal/export"
	"github.com/MrJamesThe3rd/collecta/internal/http/httpio"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

type Handler struct {
	svc    *tracker.Service
	export *export.Service
}

func NewHandler(svc *tracker.Service, exportSvc *export.Service) *Handler {
	return &Handler{svc: svc, export: exportSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Post("/publish", h.publish)
}

func (h *Handler) workbook() ([]byte, error) {
	st := h.svc.Snapshot()
	return h.export.Workbook(st.Loans, st.Agents)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	data, err := h.workbook()
	if err != nil {
		httpio.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.export.FileName()))

	if _, err := w.Write(data); err != nil {
		httpio.Error(w, err)
	}
}

type publishResponse struct {
	URL string `json:"url"`
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	data, err := h.workbook()
	if err != nil {
		httpio.Error(w, err)
		return
	}

	url, err := h.export.Publish(r.Context(), data)
	if err != nil {
		httpio.Error(w, err)
		return
	}

	httpio.JSON(w, http.StatusOK, publishResponse{URL: url})
}
