package handlers

import (
	"net/http"

	"tripmart/models"
	"tripmart/services/report"
	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler exposes per-role sales reports. Each owner endpoint scopes
// the report to the caller's own catalog.
type ReportHandler struct {
	Reports report.ReportService
}

func NewReportHandler(rs report.ReportService) *ReportHandler {
	return &ReportHandler{Reports: rs}
}

// MySales routes the caller to the report matching their role.
func (h *ReportHandler) MySales(c *gin.Context) {
	userID := c.GetString("userID")

	var (
		out *models.SalesReport
		err error
	)
	switch c.GetString("role") {
	case models.RoleAdvertiser:
		out, err = h.Reports.AdvertiserReport(userID)
	case models.RoleTourGuide:
		out, err = h.Reports.GuideReport(userID)
	case models.RoleTourismGovernor:
		out, err = h.Reports.GovernorReport(userID)
	case models.RoleSeller:
		out, err = h.Reports.SellerReport(userID)
	default:
		utils.RespondError(c, utils.NewError(utils.KindForbidden, "no sales report for this role"))
		return
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, out)
}

// AdminSales is the platform-wide report.
func (h *ReportHandler) AdminSales(c *gin.Context) {
	out, err := h.Reports.AdminReport()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, out)
}
