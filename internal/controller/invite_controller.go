package controller

import (
	"culturefit_backend/internal/service"
	"culturefit_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InviteController struct {
	InviteService *service.InviteService
}

func NewInviteController(inviteService *service.InviteService) *InviteController {
	return &InviteController{InviteService: inviteService}
}

// swagger:model InviteBatchRequest
type InviteBatchRequest struct {
	Emails []string `json:"emails" binding:"required,min=1"`
}

// CreateInvites godoc
// @Summary Invite candidates to a campaign
// @Description Creates one tokenized invite per address; invalid or duplicate addresses are skipped with a reason
// @Tags invites
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Campaign ID"
// @Param   body body InviteBatchRequest true "Candidate email addresses"
// @Success 201 {object} util.Response{data=service.InviteBatchResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/campaigns/{id}/invites [post]
func (c *InviteController) CreateInvites(ctx *gin.Context) {
	campaignID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid campaign ID")
		return
	}

	var req InviteBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.InviteService.CreateInvites(ctx.Request.Context(), uint(campaignID), req.Emails)
	if err != nil {
		if errors.Is(err, util.ErrCampaignNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

// ListInvites godoc
// @Summary List a campaign's invites
// @Tags invites
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Campaign ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/campaigns/{id}/invites [get]
func (c *InviteController) ListInvites(ctx *gin.Context) {
	campaignID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid campaign ID")
		return
	}

	invites, err := c.InviteService.ListByCampaign(uint(campaignID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"invites": invites, "total": len(invites)})
}

// ResendInvite godoc
// @Summary Resend an invite
// @Description Issues a fresh token and sends a reminder mail; the old token stops working
// @Tags invites
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Invite ID"
// @Success 200 {object} util.Response{data=model.Invite}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/invites/{id}/resend [post]
func (c *InviteController) ResendInvite(ctx *gin.Context) {
	inviteID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid invite ID")
		return
	}

	inv, err := c.InviteService.Resend(ctx.Request.Context(), uint(inviteID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInviteNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInviteCompleted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, inv)
}
