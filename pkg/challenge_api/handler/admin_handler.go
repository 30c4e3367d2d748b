package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	problem "github.com/hocus-focus/challenge-api/pkg/challenge_api/helpers/problem"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/helpers/util"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/models"
)

// ListChallenges handles GET /admin/challenges
func (c *ChallengesAPIController) ListChallenges(ctx *gin.Context, p *models.ListChallengesParams) ([]models.ChallengeSummary, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 10
	}
	summaries, pagination, err := c.Service.ListChallenges(ctx.Request.Context(), p)
	if err != nil {
		return nil, err
	}
	util.SetPaginationHeaders(ctx.Request, ctx.Header, pagination)
	return summaries, nil
}

// UpdateChallenge handles PUT /admin/challenges/:id. The route id and the
// body fields bind into the one input struct.
func (c *ChallengesAPIController) UpdateChallenge(ctx *gin.Context, input *models.UpdateChallengeInput) (*models.ChallengeResponse, error) {
	resp, err := c.Service.UpdateChallenge(ctx.Request.Context(), input.Id, input)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, problem.NewNotFound("Challenge not found")
	}
	return resp, nil
}

// ReplaceChallengeImage handles PUT /admin/challenges/:id/image. The body is
// multipart, so like the image read route this is a plain gin handler
// registered on the engine.
func (c *ChallengesAPIController) ReplaceChallengeImage(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		apiErr := problem.NewNotFound("Challenge not found")
		ctx.JSON(apiErr.Status, apiErr)
		return
	}
	upload, err := formImageUpload(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	input := models.ReplaceImageInput{Image: upload}
	resp, err := c.Service.ReplaceChallengeImage(ctx.Request.Context(), id, &input)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if resp == nil {
		apiErr := problem.NewNotFound("Challenge not found")
		ctx.JSON(apiErr.Status, apiErr)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteChallenge handles DELETE /admin/challenges/:id
func (c *ChallengesAPIController) DeleteChallenge(ctx *gin.Context, params *models.ChallengeParams) error {
	deleted, err := c.Service.DeleteChallenge(ctx.Request.Context(), params.Id)
	if err != nil {
		return err
	}
	if !deleted {
		return problem.NewNotFound("Challenge not found")
	}
	return nil
}

// writeError renders an error on routes that bypass tonic.
func writeError(ctx *gin.Context, err error) {
	var apiErr problem.APIError
	if errors.As(err, &apiErr) {
		ctx.JSON(apiErr.Status, apiErr)
		return
	}
	log.Printf("[ERROR] %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	internal := problem.NewInternalServerError()
	ctx.JSON(internal.Status, internal)
}
