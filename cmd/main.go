package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/loopfz/gadgeto/tonic"

	api "github.com/hocus-focus/challenge-api/pkg/challenge_api"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/database"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/handler"
	problem "github.com/hocus-focus/challenge-api/pkg/challenge_api/helpers/problem"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/models"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/repositories"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/services"
	"github.com/hocus-focus/challenge-api/pkg/jobs"
)

func invalidParamsFromBinding(err error, sample any) []problem.InvalidParam {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []problem.InvalidParam{{Name: "body", Reason: err.Error()}}
	}

	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	out := make([]problem.InvalidParam, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		// StructField -> json tag
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
				name = strings.Split(tag, ",")[0]
			}
		}
		out = append(out, problem.InvalidParam{
			Name:   name,
			Reason: humanReason(fe),
		})
	}
	return out
}

func humanReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL (e.g. https://…)"
	default:
		return fe.Error()
	}
}

func init() {
	tonic.SetErrorHook(func(c *gin.Context, err error) (int, interface{}) {
		// Bind/validate errors → 400 with field-keyed params
		var be tonic.BindError
		if errors.As(err, &be) || isValidationErr(err) {
			invalids := invalidParamsFromBinding(err, models.CreateChallengeInput{})
			apiErr := problem.NewBadRequest("Request validation failed", invalids...)
			return apiErr.Status, apiErr
		}

		// Domain APIError → pass-through
		if apiErr, ok := err.(problem.APIError); ok {
			return apiErr.Status, apiErr
		}

		// Everything else → generic 500; the cause goes to the log only.
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		internal := problem.NewInternalServerError()
		return internal.Status, internal
	})
}

func isValidationErr(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func main() {
	_ = godotenv.Load()

	version := os.Getenv("API_VERSION")
	if version == "" {
		version = "1.0.0"
	}

	dbcon := "postgres://" +
		os.Getenv("DB_USERNAME") + ":" +
		os.Getenv("DB_PASSWORD") + "@" +
		os.Getenv("DB_HOSTNAME") + "/" +
		os.Getenv("DB_DBNAME") + "?search_path=" +
		os.Getenv("DB_SCHEMA")
	db, err := database.Connect(dbcon)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	challengeRepo := repositories.NewChallengeRepository(db)
	challengeService := services.NewChallengesAPIService(challengeRepo)
	challengeController := handler.NewChallengesAPIController(challengeService)
	jobs.ScheduleNightlyCleanup(context.Background(), challengeService)

	router := api.NewRouter(version, challengeController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server is running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
