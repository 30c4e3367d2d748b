package handler

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teris-io/shortid"

	problem "github.com/hocus-focus/challenge-api/pkg/challenge_api/helpers/problem"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/models"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/services"
)

// ChallengesAPIController binds HTTP requests to the ChallengesAPIService
type ChallengesAPIController struct {
	Service *services.ChallengesAPIService
}

// NewChallengesAPIController creates a new controller
func NewChallengesAPIController(s *services.ChallengesAPIService) *ChallengesAPIController {
	return &ChallengesAPIController{Service: s}
}

// CreateChallenge handles POST /challenge. The body is either JSON or a
// multipart form carrying an optional image file.
func (c *ChallengesAPIController) CreateChallenge(ctx *gin.Context) (*models.ChallengeResponse, error) {
	input, err := bindCreateChallengeInput(ctx)
	if err != nil {
		return nil, err
	}
	return c.Service.CreateChallenge(ctx.Request.Context(), input)
}

// RetrieveChallenge handles GET /challenge/:id
func (c *ChallengesAPIController) RetrieveChallenge(ctx *gin.Context, params *models.ChallengeParams) (*models.ChallengeResponse, error) {
	resp, err := c.Service.RetrieveChallenge(ctx.Request.Context(), params.Id)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, problem.NewNotFound("Challenge not found")
	}
	return resp, nil
}

// RetrieveChallengeImage handles GET /challenge/:id/image. It writes raw
// bytes instead of JSON, so it is a plain gin handler registered on the
// engine rather than a tonic one.
func (c *ChallengesAPIController) RetrieveChallengeImage(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		apiErr := problem.NewNotFound("Challenge not found")
		ctx.JSON(apiErr.Status, apiErr)
		return
	}
	ch, err := c.Service.GetChallenge(ctx.Request.Context(), id)
	if err != nil {
		log.Printf("[ERROR] fetch image for challenge %d: %v", id, err)
		apiErr := problem.NewInternalServerError()
		ctx.JSON(apiErr.Status, apiErr)
		return
	}
	if ch == nil {
		apiErr := problem.NewNotFound("Challenge not found")
		ctx.JSON(apiErr.Status, apiErr)
		return
	}
	if !ch.HasImage() {
		apiErr := problem.NewNotFound("Challenge has no image")
		ctx.JSON(apiErr.Status, apiErr)
		return
	}
	contentType := "image/jpeg"
	if ch.ImageContentType != nil {
		contentType = *ch.ImageContentType
	}
	ctx.Data(http.StatusOK, contentType, ch.ImageData)
}

// CreateChristmasChallenge handles POST /christmas
func (c *ChallengesAPIController) CreateChristmasChallenge(ctx *gin.Context) (*models.ChallengeResponse, error) {
	var input models.ChristmasChallengeInput
	if err := bindByContentType(ctx, &input); err != nil {
		return nil, err
	}
	return c.Service.CreateChristmasChallenge(ctx.Request.Context(), &input)
}

func bindCreateChallengeInput(ctx *gin.Context) (*models.CreateChallengeInput, error) {
	var input models.CreateChallengeInput
	if err := bindByContentType(ctx, &input); err != nil {
		return nil, err
	}
	if isFormRequest(ctx) {
		upload, err := formImageUpload(ctx)
		if err != nil {
			return nil, err
		}
		input.Image = upload
	}
	return &input, nil
}

func isFormRequest(ctx *gin.Context) bool {
	contentType := ctx.ContentType()
	return strings.HasPrefix(contentType, "multipart/form-data") ||
		contentType == "application/x-www-form-urlencoded"
}

func bindByContentType(ctx *gin.Context, input any) error {
	if isFormRequest(ctx) {
		if err := ctx.ShouldBind(input); err != nil {
			return problem.NewBadRequest("invalid form body",
				problem.InvalidParam{Name: "body", Reason: err.Error()})
		}
		return nil
	}
	if err := ctx.ShouldBindJSON(input); err != nil {
		return problem.NewBadRequest("invalid JSON body",
			problem.InvalidParam{Name: "body", Reason: err.Error()})
	}
	return nil
}

// formImageUpload reads the optional "image" part of a multipart form.
// Absence is not an error; size and type policy is checked later with the
// rest of the input.
func formImageUpload(ctx *gin.Context) (*models.ImageUpload, error) {
	header, err := ctx.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, problem.NewBadRequest("could not read uploaded image",
			problem.InvalidParam{Name: "image", Reason: err.Error()})
	}
	return readImageUpload(header)
}

func readImageUpload(header *multipart.FileHeader) (*models.ImageUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, problem.NewBadRequest("could not read uploaded image",
			problem.InvalidParam{Name: "image", Reason: err.Error()})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, problem.NewBadRequest("could not read uploaded image",
			problem.InvalidParam{Name: "image", Reason: err.Error()})
	}

	name := header.Filename
	if name == "" {
		name = "upload-" + shortid.MustGenerate()
	}
	return &models.ImageUpload{
		Name:        name,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
