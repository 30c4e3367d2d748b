package models

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUpload(size int) *ImageUpload {
	return &ImageUpload{
		Name:        "cat.png",
		ContentType: "image/png",
		Data:        bytes.Repeat([]byte{0x42}, size),
	}
}

func TestCreateChallengeInput_ClueRequired(t *testing.T) {
	input := &CreateChallengeInput{}
	invalids := input.Validate()
	require.Len(t, invalids, 1)
	assert.Equal(t, "clue", invalids[0].Name)
	assert.Equal(t, "clue is required", invalids[0].Reason)

	input = &CreateChallengeInput{Clue: "   "}
	invalids = input.Validate()
	require.Len(t, invalids, 1)
	assert.Equal(t, "clue", invalids[0].Name)
}

func TestCreateChallengeInput_ImageSizeBoundary(t *testing.T) {
	input := &CreateChallengeInput{Clue: "find it", Image: validUpload(MaxImageBytes)}
	assert.Empty(t, input.Validate(), "exactly 100KiB must be accepted")

	input = &CreateChallengeInput{Clue: "find it", Image: validUpload(MaxImageBytes + 1)}
	invalids := input.Validate()
	require.Len(t, invalids, 1)
	assert.Equal(t, "image", invalids[0].Name)
	// both sizes are reported in KB, floor-divided
	assert.Contains(t, invalids[0].Reason, "100KB")
	assert.Contains(t, invalids[0].Reason, fmt.Sprintf("%dKB", (MaxImageBytes+1)/1024))
}

func TestCreateChallengeInput_ImageContentType(t *testing.T) {
	for _, allowed := range []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"} {
		input := &CreateChallengeInput{Clue: "c", Image: &ImageUpload{Name: "f", ContentType: allowed, Data: []byte{1}}}
		assert.Emptyf(t, input.Validate(), "%s must be accepted", allowed)
	}

	input := &CreateChallengeInput{Clue: "c", Image: &ImageUpload{Name: "f", ContentType: "image/bmp", Data: []byte{1}}}
	invalids := input.Validate()
	require.Len(t, invalids, 1)
	assert.Equal(t, "image", invalids[0].Name)
	assert.Contains(t, invalids[0].Reason, `"image/bmp"`)
	assert.Contains(t, invalids[0].Reason, "image/webp")
}

func TestCreateChallengeInput_GoalsFromForm(t *testing.T) {
	input := &CreateChallengeInput{Clue: "c", GoalsRaw: "20, 40,60"}
	require.Empty(t, input.Validate())
	assert.Equal(t, []int{20, 40, 60}, input.Goals)

	input = &CreateChallengeInput{Clue: "c", GoalsRaw: "20,forty"}
	invalids := input.Validate()
	require.Len(t, invalids, 1)
	assert.Equal(t, "goals", invalids[0].Name)
}

func TestCreateChallengeInput_GoalsDefaultEmpty(t *testing.T) {
	input := &CreateChallengeInput{Clue: "c"}
	require.Empty(t, input.Validate())
	ch := input.Challenge()
	require.NotNil(t, ch.Goals)
	assert.Empty(t, ch.Goals)
}

func TestCreateChallengeInput_ThemeDerivesBackground(t *testing.T) {
	input := &CreateChallengeInput{Clue: "c", Theme: "5"}
	ch := input.Challenge()
	require.NotNil(t, ch.BeforeMessageBackgroundImageUrl)
	assert.Equal(t, "./img/themes/bgs/5.jpg", *ch.BeforeMessageBackgroundImageUrl)

	// an explicit URL always wins over the theme
	input = &CreateChallengeInput{Clue: "c", Theme: "5", BeforeMessageBackgroundImageUrl: "https://cdn.example.com/bg.jpg"}
	ch = input.Challenge()
	require.NotNil(t, ch.BeforeMessageBackgroundImageUrl)
	assert.Equal(t, "https://cdn.example.com/bg.jpg", *ch.BeforeMessageBackgroundImageUrl)
}

func TestCreateChallengeInput_ImageFieldsSetTogether(t *testing.T) {
	input := &CreateChallengeInput{Clue: "c", Image: validUpload(10)}
	ch := input.Challenge()
	require.True(t, ch.HasImage())
	require.NotNil(t, ch.ImageName)
	assert.Equal(t, "cat.png", *ch.ImageName)
	require.NotNil(t, ch.ImageContentType)
	assert.Equal(t, "image/png", *ch.ImageContentType)
	require.NotNil(t, ch.ImageSize)
	assert.Equal(t, 10, *ch.ImageSize)

	// no image → no metadata either
	input = &CreateChallengeInput{Clue: "c"}
	ch = input.Challenge()
	assert.False(t, ch.HasImage())
	assert.Nil(t, ch.ImageName)
	assert.Nil(t, ch.ImageContentType)
	assert.Nil(t, ch.ImageSize)
}

func TestChristmasChallengeInput_Defaults(t *testing.T) {
	input := &ChristmasChallengeInput{BeforeMessage: "Merry!", BeforeTitle: "Hello"}
	ch := input.Challenge()

	assert.Equal(t, GoalList{20, 40, 60, 90, 120}, ch.Goals)
	require.NotNil(t, ch.BeforeMessageButton)
	assert.Equal(t, "Open Card", *ch.BeforeMessageButton)
	require.NotNil(t, ch.BeforeMessageBackgroundImageUrl)
	assert.Equal(t, "./img/themes/bgs/11.jpg", *ch.BeforeMessageBackgroundImageUrl)

	input = &ChristmasChallengeInput{Theme: "7"}
	ch = input.Challenge()
	assert.Equal(t, "./img/themes/bgs/7.jpg", *ch.BeforeMessageBackgroundImageUrl)
}

func TestUpdateChallengeInput_Apply(t *testing.T) {
	date := "2025-12-24"
	ch := Challenge{Clue: "old", Date: &date, IsTest: true}

	clue := "new"
	goals := []int{5}
	isTest := false
	input := &UpdateChallengeInput{Clue: &clue, Goals: &goals, IsTest: &isTest}
	require.Empty(t, input.Validate())
	input.Apply(&ch)

	assert.Equal(t, "new", ch.Clue)
	assert.Equal(t, GoalList{5}, ch.Goals)
	assert.False(t, ch.IsTest)
	// untouched fields stay as they were
	require.NotNil(t, ch.Date)
	assert.Equal(t, "2025-12-24", *ch.Date)
}

func TestUpdateChallengeInput_BlankClueRejected(t *testing.T) {
	blank := " "
	input := &UpdateChallengeInput{Clue: &blank}
	invalids := input.Validate()
	require.Len(t, invalids, 1)
	assert.Equal(t, "clue", invalids[0].Name)
}

func TestParseGoals(t *testing.T) {
	goals, err := ParseGoals("")
	require.NoError(t, err)
	assert.Empty(t, goals)

	goals, err = ParseGoals("20,40,60,90,120")
	require.NoError(t, err)
	assert.Equal(t, []int{20, 40, 60, 90, 120}, goals)

	_, err = ParseGoals("a,b")
	assert.Error(t, err)
}
