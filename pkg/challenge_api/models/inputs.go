package models

import (
	"fmt"
	"strconv"
	"strings"

	problem "github.com/hocus-focus/challenge-api/pkg/challenge_api/helpers/problem"
)

// Image upload policy. Shared by every write path that accepts a file.
const MaxImageBytes = 100 * 1024

var AllowedImageContentTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// ChristmasTheme is the default theme id for /christmas cards.
const ChristmasTheme = "11"

// ChristmasGoals are the fixed scoring tiers for /christmas cards.
var ChristmasGoals = []int{20, 40, 60, 90, 120}

func themeBackgroundUrl(theme string) string {
	return fmt.Sprintf("./img/themes/bgs/%s.jpg", theme)
}

func allowedImageContentType(ct string) bool {
	for _, allowed := range AllowedImageContentTypes {
		if strings.EqualFold(ct, allowed) {
			return true
		}
	}
	return false
}

// ImageUpload carries one uploaded file through validation.
type ImageUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

func (u *ImageUpload) validate() []problem.InvalidParam {
	var invalids []problem.InvalidParam
	if len(u.Data) > MaxImageBytes {
		invalids = append(invalids, problem.InvalidParam{
			Name: "image",
			Reason: fmt.Sprintf("image is %dKB, the maximum allowed size is %dKB",
				len(u.Data)/1024, MaxImageBytes/1024),
		})
	}
	if !allowedImageContentType(u.ContentType) {
		invalids = append(invalids, problem.InvalidParam{
			Name: "image",
			Reason: fmt.Sprintf("unsupported image content type %q, allowed types are: %s",
				u.ContentType, strings.Join(AllowedImageContentTypes, ", ")),
		})
	}
	return invalids
}

// ParseGoals turns a form-encoded goals value like "20,40,60" into the
// integer list. An empty string means no goals.
func ParseGoals(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []int{}, nil
	}
	parts := strings.Split(raw, ",")
	goals := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("goals must be a comma-separated list of integers, got %q", raw)
		}
		goals = append(goals, n)
	}
	return goals, nil
}

// CreateChallengeInput is the write representation of POST /challenge.
// JSON bodies bind the json tags, form/multipart bodies the form tags;
// goals arrive as a literal array in JSON and as a delimited string in
// form submissions.
type CreateChallengeInput struct {
	Date                            string `json:"date" form:"date"`
	Clue                            string `json:"clue" form:"clue"`
	Credit                          string `json:"credit" form:"credit"`
	CreditUrl                       string `json:"credit_url" form:"credit_url"`
	Goals                           []int  `json:"goals" form:"-"`
	GoalsRaw                        string `json:"-" form:"goals"`
	Hitareas                        string `json:"hitareas" form:"hitareas"`
	BeforeMessageTitle              string `json:"before_message_title" form:"before_message_title"`
	BeforeMessageBody               string `json:"before_message_body" form:"before_message_body"`
	BeforeMessageButton             string `json:"before_message_button" form:"before_message_button"`
	BeforeMessageBackgroundImageUrl string `json:"before_message_background_image_url" form:"before_message_background_image_url"`
	Theme                           string `json:"theme" form:"theme"`
	IsTest                          bool   `json:"is_test" form:"is_test"`
	IsPermanent                     bool   `json:"is_permanent" form:"is_permanent"`
	IsTutorial                      bool   `json:"is_tutorial" form:"is_tutorial"`

	Image *ImageUpload `json:"-" form:"-"`
}

// Validate checks the whole input before anything is persisted. On success
// the receiver is fully populated (GoalsRaw folded into Goals).
func (in *CreateChallengeInput) Validate() []problem.InvalidParam {
	var invalids []problem.InvalidParam

	if strings.TrimSpace(in.Clue) == "" {
		invalids = append(invalids, problem.InvalidParam{Name: "clue", Reason: "clue is required"})
	}

	if in.GoalsRaw != "" {
		goals, err := ParseGoals(in.GoalsRaw)
		if err != nil {
			invalids = append(invalids, problem.InvalidParam{Name: "goals", Reason: err.Error()})
		} else {
			in.Goals = goals
		}
	}

	if in.Image != nil {
		invalids = append(invalids, in.Image.validate()...)
	}

	return invalids
}

// Challenge maps the validated input onto a new record. A supplied theme
// only derives the background URL when no explicit URL was given.
func (in *CreateChallengeInput) Challenge() Challenge {
	ch := Challenge{
		Date:                optional(in.Date),
		Clue:                in.Clue,
		Credit:              optional(in.Credit),
		CreditUrl:           optional(in.CreditUrl),
		Goals:               GoalList(in.Goals),
		Hitareas:            optional(in.Hitareas),
		BeforeMessageTitle:  optional(in.BeforeMessageTitle),
		BeforeMessageBody:   optional(in.BeforeMessageBody),
		BeforeMessageButton: optional(in.BeforeMessageButton),
		IsTest:              in.IsTest,
		IsPermanent:         in.IsPermanent,
		IsTutorial:          in.IsTutorial,
	}
	if ch.Goals == nil {
		ch.Goals = GoalList{}
	}

	background := in.BeforeMessageBackgroundImageUrl
	if background == "" && in.Theme != "" {
		background = themeBackgroundUrl(in.Theme)
	}
	ch.BeforeMessageBackgroundImageUrl = optional(background)

	if in.Image != nil {
		ch.SetImage(in.Image.Name, in.Image.ContentType, in.Image.Data)
	}
	return ch
}

// ChristmasChallengeInput is the small templated payload of POST /christmas.
type ChristmasChallengeInput struct {
	Clue          string `json:"clue" form:"clue"`
	BeforeMessage string `json:"before_message" form:"before_message"`
	BeforeTitle   string `json:"before_title" form:"before_title"`
	Theme         string `json:"theme" form:"theme"`
}

// Challenge expands the template into a full record.
func (in *ChristmasChallengeInput) Challenge() Challenge {
	theme := in.Theme
	if theme == "" {
		theme = ChristmasTheme
	}
	button := "Open Card"
	background := themeBackgroundUrl(theme)
	return Challenge{
		Clue:                            in.Clue,
		Goals:                           GoalList(ChristmasGoals),
		BeforeMessageTitle:              optional(in.BeforeTitle),
		BeforeMessageBody:               optional(in.BeforeMessage),
		BeforeMessageButton:             &button,
		BeforeMessageBackgroundImageUrl: &background,
	}
}

// UpdateChallengeInput is the admin partial update. The id binds from the
// route, the rest from the JSON body; nil means "leave as is".
type UpdateChallengeInput struct {
	Id                              int     `path:"id" json:"-"`
	Date                            *string `json:"date"`
	Clue                            *string `json:"clue"`
	Credit                          *string `json:"credit"`
	CreditUrl                       *string `json:"credit_url"`
	Goals                           *[]int  `json:"goals"`
	Hitareas                        *string `json:"hitareas"`
	BeforeMessageTitle              *string `json:"before_message_title"`
	BeforeMessageBody               *string `json:"before_message_body"`
	BeforeMessageButton             *string `json:"before_message_button"`
	BeforeMessageBackgroundImageUrl *string `json:"before_message_background_image_url"`
	IsTest                          *bool   `json:"is_test"`
	IsPermanent                     *bool   `json:"is_permanent"`
	IsTutorial                      *bool   `json:"is_tutorial"`
}

func (in *UpdateChallengeInput) Validate() []problem.InvalidParam {
	var invalids []problem.InvalidParam
	if in.Clue != nil && strings.TrimSpace(*in.Clue) == "" {
		invalids = append(invalids, problem.InvalidParam{Name: "clue", Reason: "clue cannot be blank"})
	}
	return invalids
}

// Apply copies the supplied fields onto an existing record.
func (in *UpdateChallengeInput) Apply(ch *Challenge) {
	if in.Date != nil {
		ch.Date = in.Date
	}
	if in.Clue != nil {
		ch.Clue = *in.Clue
	}
	if in.Credit != nil {
		ch.Credit = in.Credit
	}
	if in.CreditUrl != nil {
		ch.CreditUrl = in.CreditUrl
	}
	if in.Goals != nil {
		ch.Goals = GoalList(*in.Goals)
	}
	if in.Hitareas != nil {
		ch.Hitareas = in.Hitareas
	}
	if in.BeforeMessageTitle != nil {
		ch.BeforeMessageTitle = in.BeforeMessageTitle
	}
	if in.BeforeMessageBody != nil {
		ch.BeforeMessageBody = in.BeforeMessageBody
	}
	if in.BeforeMessageButton != nil {
		ch.BeforeMessageButton = in.BeforeMessageButton
	}
	if in.BeforeMessageBackgroundImageUrl != nil {
		ch.BeforeMessageBackgroundImageUrl = in.BeforeMessageBackgroundImageUrl
	}
	if in.IsTest != nil {
		ch.IsTest = *in.IsTest
	}
	if in.IsPermanent != nil {
		ch.IsPermanent = *in.IsPermanent
	}
	if in.IsTutorial != nil {
		ch.IsTutorial = *in.IsTutorial
	}
}

// ReplaceImageInput validates an admin image replacement.
type ReplaceImageInput struct {
	Image *ImageUpload
}

func (in *ReplaceImageInput) Validate() []problem.InvalidParam {
	if in.Image == nil {
		return []problem.InvalidParam{{Name: "image", Reason: "an image file is required"}}
	}
	return in.Image.validate()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
