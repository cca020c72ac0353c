package api

import (
	"encoding/json"
	"io"
	"net/http"

	"carpark/internal/service"
	"carpark/internal/svcerr"
)

type PrivilegeHandler struct {
	Service *service.PrivilegeService
}

func NewPrivilegeHandler(svc *service.PrivilegeService) *PrivilegeHandler {
	return &PrivilegeHandler{Service: svc}
}

// Import replaces the bond-holder register from an uploaded CSV. Accepts
// either a multipart form with a "file" field or a raw CSV body.
func (h *PrivilegeHandler) Import(w http.ResponseWriter, r *http.Request) {
	var reader io.Reader = r.Body
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		reader = file
	}

	count, err := h.Service.ReplaceFromCSV(reader)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":  "Bond holder register replaced",
		"imported": count,
	})
}

func (h *PrivilegeHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=bond_holders.csv")
	if err := h.Service.ExportCSV(w); err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
	}
}

func (h *PrivilegeHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.List()
	if err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}
