package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"carpark/internal/service"
	"carpark/internal/svcerr"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	Service *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{Service: svc}
}

func reportPeriod(r *http.Request) (int, time.Month, error) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 2000 || year > 9998 {
		return 0, 0, fmt.Errorf("invalid year %q", vars["year"])
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %q", vars["month"])
	}
	return year, time.Month(month), nil
}

func (h *ReportHandler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := reportPeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report, err := h.Service.GenerateMonthlyReport(year, month)
	if err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (h *ReportHandler) TenantReportCSV(w http.ResponseWriter, r *http.Request) {
	year, month, err := reportPeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report, err := h.Service.GenerateMonthlyReport(year, month)
	if err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Tenant_Report_%d_%d.csv", year, int(month)))
	if err := service.TenantReportCSV(w, report); err != nil {
		http.Error(w, "Failed to write tenant report", http.StatusInternalServerError)
	}
}

func (h *ReportHandler) MonthlyReportPDF(w http.ResponseWriter, r *http.Request) {
	year, month, err := reportPeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report, err := h.Service.GenerateMonthlyReport(year, month)
	if err != nil {
		http.Error(w, err.Error(), svcerr.HTTPStatus(err))
		return
	}
	pdf, err := service.MonthlyReportPDF(report)
	if err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Monthly_Report_%d_%d.pdf", year, int(month)))
	w.Write(pdf)
}
