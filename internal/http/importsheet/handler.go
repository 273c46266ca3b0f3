package importsheet

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/collecta/internal/http/httpio"
	"github.com/MrJamesThe3rd/collecta/internal/importer"
	"github.com/MrJamesThe3rd/collecta/internal/tracker"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc *tracker.Service
}

func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importSheet)
}

func (h *Handler) importSheet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	format, err := importer.FormatFromFilename(header.Filename)
	if err != nil {
		httpio.Error(w, err)
		return
	}

	distribute := false
	if v := r.FormValue("distribute"); v != "" {
		distribute, err = strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "distribute must be a boolean", http.StatusBadRequest)
			return
		}
	}

	summary, err := h.svc.ImportFile(r.Context(), format, file, distribute)
	if err != nil {
		httpio.Error(w, err)
		return
	}

	httpio.JSON(w, http.StatusOK, summary)
}
