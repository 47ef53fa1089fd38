package controller

import (
	"culturefit_backend/internal/service"
	"culturefit_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CandidateController struct {
	CandidateService *service.CandidateService
}

func NewCandidateController(candidateService *service.CandidateService) *CandidateController {
	return &CandidateController{CandidateService: candidateService}
}

// ListCandidates godoc
// @Summary List scored candidates
// @Tags candidates
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} util.Response{data=object}
// @Router /api/candidates [get]
func (c *CandidateController) ListCandidates(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	candidates, total, err := c.CandidateService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"candidates": candidates,
		"total":      total,
		"page":       page,
		"limit":      limit,
	})
}

// GetCandidate godoc
// @Summary Candidate record with full scoring detail
// @Tags candidates
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Candidate ID"
// @Success 200 {object} util.Response{data=model.Candidate}
// @Failure 404 {object} util.Response
// @Router /api/candidates/{id} [get]
func (c *CandidateController) GetCandidate(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid candidate ID")
		return
	}

	candidate, err := c.CandidateService.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, candidate)
}
