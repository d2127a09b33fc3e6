package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxmitra/internal/csvexport"
	"taxmitra/internal/service"
	"taxmitra/internal/xlsxreport"
)

// ExportHandler handles calculation history and report downloads.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// HistoryCSV handles GET /api/v1/export/history/csv
func (h *ExportHandler) HistoryCSV(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	// Buffer first so a repository failure still produces a JSON error
	// instead of a truncated download.
	var buf bytes.Buffer
	if err := h.exportService.ExportHistoryCSV(c.Request.Context(), userID, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("tax_history")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ReportXLSX handles GET /api/v1/export/report/:year
func (h *ExportHandler) ReportXLSX(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	year := c.Param("year")

	var buf bytes.Buffer
	if err := h.exportService.ExportReportXLSX(c.Request.Context(), userID, year, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := xlsxreport.BuildFilename("tax_report_" + year)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
