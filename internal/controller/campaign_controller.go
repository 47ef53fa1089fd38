package controller

import (
	"culturefit_backend/internal/service"
	"culturefit_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

func NewCampaignController(campaignService *service.CampaignService) *CampaignController {
	return &CampaignController{CampaignService: campaignService}
}

// CreateCampaign godoc
// @Summary Create a campaign
// @Tags campaigns
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CampaignRequest true "Campaign details"
// @Success 201 {object} util.Response{data=model.Campaign}
// @Failure 400 {object} util.Response
// @Router /api/campaigns [post]
func (c *CampaignController) CreateCampaign(ctx *gin.Context) {
	var req service.CampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	campaign, err := c.CampaignService.Create(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, campaign)
}

// GetCampaign godoc
// @Summary Get a campaign
// @Tags campaigns
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Campaign ID"
// @Success 200 {object} util.Response{data=model.Campaign}
// @Failure 404 {object} util.Response
// @Router /api/campaigns/{id} [get]
func (c *CampaignController) GetCampaign(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid campaign ID")
		return
	}

	campaign, err := c.CampaignService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrCampaignNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, campaign)
}

// ListCampaigns godoc
// @Summary List campaigns
// @Tags campaigns
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} util.Response{data=object}
// @Router /api/campaigns [get]
func (c *CampaignController) ListCampaigns(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	campaigns, total, err := c.CampaignService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"campaigns": campaigns,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// UpdateCampaign godoc
// @Summary Update a campaign
// @Tags campaigns
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Campaign ID"
// @Param   body body service.CampaignRequest true "Campaign details"
// @Success 200 {object} util.Response{data=model.Campaign}
// @Failure 404 {object} util.Response
// @Router /api/campaigns/{id} [put]
func (c *CampaignController) UpdateCampaign(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid campaign ID")
		return
	}

	var req service.CampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	campaign, err := c.CampaignService.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrCampaignNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, campaign)
}

// DeleteCampaign godoc
// @Summary Delete a campaign
// @Tags campaigns
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Campaign ID"
// @Success 200 {object} util.Response
// @Router /api/campaigns/{id} [delete]
func (c *CampaignController) DeleteCampaign(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid campaign ID")
		return
	}

	if err := c.CampaignService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// GetSummary godoc
// @Summary Campaign results summary
// @Description Invite funnel, average score and risk distribution
// @Tags campaigns
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Campaign ID"
// @Success 200 {object} util.Response{data=service.CampaignSummary}
// @Failure 404 {object} util.Response
// @Router /api/campaigns/{id}/summary [get]
func (c *CampaignController) GetSummary(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid campaign ID")
		return
	}

	summary, err := c.CampaignService.Summary(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrCampaignNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, summary)
}
