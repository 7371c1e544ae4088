package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/stockflowhq/stockflow-api/internal/application/service"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/response"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles reporting and export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSummary handles the store summary dashboard numbers
func (h *ReportHandler) GetSummary(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	from, to := dateRangeFromQuery(c)
	stats, err := h.reportService.GetSummary(c.Request.Context(), *userID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", stats)
}

// ExportInventory streams the inventory workbook as an xlsx download
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	file, filename, err := h.reportService.ExportInventory(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.streamWorkbook(c, file, filename)
}

// ExportTransactions streams the transaction history workbook as an xlsx
// download
func (h *ReportHandler) ExportTransactions(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	from, to := dateRangeFromQuery(c)
	file, filename, err := h.reportService.ExportTransactions(c.Request.Context(), *userID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.streamWorkbook(c, file, filename)
}

func (h *ReportHandler) streamWorkbook(c *gin.Context, file *excelize.File, filename string) {
	defer file.Close()

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := file.Write(c.Writer); err != nil {
		response.InternalServerError(c, "Failed to write workbook")
	}
}
