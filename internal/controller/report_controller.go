package controller

import (
	"culturefit_backend/internal/service"
	"culturefit_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// ExportCSV godoc
// @Summary Export campaign results as CSV
// @Description Renders one row per scored candidate and uploads the file to the configured storage
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Campaign ID"
// @Success 200 {object} util.Response{data=service.ExportResult}
// @Failure 404 {object} util.Response
// @Router /api/campaigns/{id}/export [post]
func (c *ReportController) ExportCSV(ctx *gin.Context) {
	campaignID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid campaign ID")
		return
	}

	result, err := c.ReportService.ExportCampaignCSV(ctx.Request.Context(), uint(campaignID))
	if err != nil {
		if errors.Is(err, util.ErrCampaignNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
