package challenge_api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"

	"github.com/hocus-focus/challenge-api/pkg/challenge_api/handler"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/middleware"
)

var apiVersionHeader = fizz.Header(
	"API-Version",
	"The API version of the response",
	"",
)

func NewRouter(apiVersion string, controller *handler.ChallengesAPIController) *fizz.Fizz {
	g := gin.Default()
	g.Use(APIVersionMiddleware(apiVersion))
	g.Use(RequestIDMiddleware())
	g.Use(cors.Default())
	f := fizz.NewFromEngine(g)

	info := &openapi.Info{
		Title:       "Hocus Focus challenge API",
		Description: "CRUD backend for Hocus Focus puzzle challenges",
		Version:     apiVersion,
	}

	// Play-facing routes: deliberately public, challenges are not
	// sensitive. The AllowAnonymous marker keeps that explicit.
	public := f.Group("", "Challenges", "Public challenge routes", middleware.AllowAnonymous())
	public.POST("/challenge",
		[]fizz.OperationOption{
			fizz.Summary("Create a challenge (JSON or multipart with image upload)"),
			apiVersionHeader,
		},
		tonic.Handler(controller.CreateChallenge, 201),
	)
	public.GET("/challenge/:id",
		[]fizz.OperationOption{
			fizz.Summary("Fetch a challenge by id"),
			apiVersionHeader,
		},
		tonic.Handler(controller.RetrieveChallenge, 200),
	)
	public.POST("/christmas",
		[]fizz.OperationOption{
			fizz.Summary("Create a templated Christmas card challenge"),
			apiVersionHeader,
		},
		tonic.Handler(controller.CreateChristmasChallenge, 201),
	)

	// Raw bytes, not JSON: bypass tonic and register on the engine.
	g.GET("/challenge/:id/image", middleware.AllowAnonymous(), controller.RetrieveChallengeImage)

	admin := f.Group("/admin", "Admin", "Operator routes", middleware.RequireAccess("challenges:admin"))
	admin.GET("/challenges",
		[]fizz.OperationOption{
			fizz.Summary("List challenges, most recently created first"),
			apiVersionHeader,
		},
		tonic.Handler(controller.ListChallenges, 200),
	)
	admin.PUT("/challenges/:id",
		[]fizz.OperationOption{
			fizz.Summary("Update challenge metadata"),
			apiVersionHeader,
		},
		tonic.Handler(controller.UpdateChallenge, 200),
	)
	admin.DELETE("/challenges/:id",
		[]fizz.OperationOption{
			fizz.Summary("Delete a challenge"),
			apiVersionHeader,
		},
		tonic.Handler(controller.DeleteChallenge, 204),
	)

	// Multipart body: bypass tonic and register on the engine, like the
	// image read route.
	g.PUT("/admin/challenges/:id/image", middleware.RequireAccess("challenges:admin"), controller.ReplaceChallengeImage)

	f.GET("/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}

// RequestIDMiddleware echoes an inbound X-Request-Id or mints one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}
