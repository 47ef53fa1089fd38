package controller

import (
	"culturefit_backend/internal/scoring"
	"culturefit_backend/internal/service"
	"culturefit_backend/internal/util"
	"culturefit_backend/pkg/monitoring"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
)

// AssessmentController serves the candidate-facing flow. Its routes are
// public; the invite token is the only credential.
type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// GetQuestions godoc
// @Summary Questionnaire for an invite token
// @Description Returns the ordered questions without scoring metadata
// @Tags assessment
// @Produce  json
// @Param   token path string true "Invite token"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/assessment/{token}/questions [get]
func (c *AssessmentController) GetQuestions(ctx *gin.Context) {
	token := ctx.Param("token")

	questions, err := c.AssessmentService.QuestionsForToken(token)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInviteNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyCompleted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"questions": questions, "total": len(questions)})
}

// swagger:model PartialSaveRequest
type PartialSaveRequest struct {
	PageData []json.RawMessage `json:"page_data" binding:"required"`
}

// SavePartial godoc
// @Summary Save one page of responses
// @Description Appends the page to the invite's accumulated responses and returns the running count
// @Tags assessment
// @Accept  json
// @Produce  json
// @Param   token path string true "Invite token"
// @Param   body body PartialSaveRequest true "Page responses"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/assessment/{token}/partial [post]
func (c *AssessmentController) SavePartial(ctx *gin.Context) {
	token := ctx.Param("token")

	var req PartialSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	count, err := c.AssessmentService.SavePartial(token, req.PageData)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInviteNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyCompleted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"saved": count})
}

// swagger:model CompleteAssessmentRequest
type CompleteAssessmentRequest struct {
	FinalResponses []interface{}         `json:"final_responses" binding:"required"`
	CandidateInfo  service.CandidateInfo `json:"candidate_info" binding:"required"`
}

// Complete godoc
// @Summary Submit the assessment
// @Description Scores the final responses, stores the candidate record and closes the invite
// @Tags assessment
// @Accept  json
// @Produce  json
// @Param   token path string true "Invite token"
// @Param   body body CompleteAssessmentRequest true "Final responses and candidate details"
// @Success 200 {object} util.Response{data=service.CompletionResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/assessment/{token}/complete [post]
func (c *AssessmentController) Complete(ctx *gin.Context) {
	token := ctx.Param("token")

	var req CompleteAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		monitoring.CompletionCounter.WithLabelValues("bad_request").Inc()
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.Complete(service.CompleteRequest{
		Token:          token,
		FinalResponses: req.FinalResponses,
		CandidateInfo:  req.CandidateInfo,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInviteNotFound):
			monitoring.CompletionCounter.WithLabelValues("not_found").Inc()
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyCompleted):
			monitoring.CompletionCounter.WithLabelValues("already_completed").Inc()
			util.Conflict(ctx, err.Error())
		case errors.Is(err, scoring.ErrInsufficientData):
			monitoring.CompletionCounter.WithLabelValues("insufficient_data").Inc()
			util.UnprocessableEntity(ctx, err.Error())
		default:
			monitoring.CompletionCounter.WithLabelValues("error").Inc()
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.CompletionCounter.WithLabelValues("completed").Inc()
	util.Success(ctx, result)
}
