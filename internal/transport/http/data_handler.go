package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"mhtidy/internal/errors"
	"mhtidy/internal/store"
	"mhtidy/pkg/contracts/domain"
)

// DataHandler serves the persisted tidy datasets
type DataHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewDataHandler creates a new data handler
func NewDataHandler(st *store.Store, logger *slog.Logger) *DataHandler {
	return &DataHandler{
		store:  st,
		logger: logger.With(slog.String("handler", "data")),
	}
}

// DatasetInfo summarizes one stored dataset
type DatasetInfo struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// DatasetListResponse is the response for the dataset listing
type DatasetListResponse struct {
	Success  bool          `json:"success"`
	Datasets []DatasetInfo `json:"datasets"`
}

// DatasetResponse is the response for a single dataset
type DatasetResponse struct {
	Success bool          `json:"success"`
	Name    string        `json:"name"`
	Table   *domain.Table `json:"table"`
}

// List returns every stored dataset with its shape
func (h *DataHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.List()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list datasets", "error", err)
		render.Render(w, r, errors.NewErrorResponse(errors.FileSystemError("list", err)))
		return
	}

	infos := make([]DatasetInfo, 0, len(names))
	for _, name := range names {
		tbl, err := h.store.Get(name)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "failed to load dataset", "dataset", name, "error", err)
			render.Render(w, r, errors.NewErrorResponse(errors.FileSystemError("load", err)))
			return
		}
		infos = append(infos, DatasetInfo{Name: name, Rows: tbl.NumRows(), Columns: tbl.NumCols()})
	}

	render.JSON(w, r, DatasetListResponse{Success: true, Datasets: infos})
}

// GetJSON returns one dataset as JSON
func (h *DataHandler) GetJSON(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.store.Exists(name) {
		render.Render(w, r, errors.NewErrorResponse(errors.DatasetNotFoundError(name)))
		return
	}

	tbl, err := h.store.Get(name)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load dataset", "dataset", name, "error", err)
		render.Render(w, r, errors.NewErrorResponse(errors.FileSystemError("load", err)))
		return
	}

	render.JSON(w, r, DatasetResponse{Success: true, Name: name, Table: tbl})
}

// GetCSV streams one dataset's persisted CSV file
func (h *DataHandler) GetCSV(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.store.Exists(name) {
		render.Render(w, r, errors.NewErrorResponse(errors.DatasetNotFoundError(name)))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	http.ServeFile(w, r, h.store.Path(name))
}
