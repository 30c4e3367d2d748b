package serializers_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hocus-focus/challenge-api/pkg/challenge_api/models"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/serializers"
)

func TestSerializeChallenge_NoImage(t *testing.T) {
	ch := models.Challenge{ID: 1, Clue: "A hidden cat"}
	resp := serializers.SerializeChallenge(&ch)

	assert.Equal(t, 1, resp.Id)
	assert.Equal(t, "A hidden cat", resp.Clue)
	assert.False(t, resp.HasImage)
	assert.Nil(t, resp.ImageBase64)
	require.NotNil(t, resp.Goals, "goals must serialize as [] not null")
	assert.Empty(t, resp.Goals)
}

func TestSerializeChallenge_ImageRoundTrip(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	ch := models.Challenge{ID: 2, Clue: "find it"}
	ch.SetImage("cat.png", "image/png", raw)

	resp := serializers.SerializeChallenge(&ch)
	assert.True(t, resp.HasImage)
	require.NotNil(t, resp.ImageBase64)

	decoded, err := base64.StdEncoding.DecodeString(*resp.ImageBase64)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestSerializeChallengeSummary(t *testing.T) {
	size := 7
	ch := models.Challenge{ID: 3, Clue: "c", ImageData: []byte("1234567"), ImageSize: &size, IsTest: true}
	summary := serializers.SerializeChallengeSummary(&ch)

	assert.Equal(t, 3, summary.Id)
	assert.True(t, summary.HasImage)
	require.NotNil(t, summary.ImageSize)
	assert.Equal(t, 7, *summary.ImageSize)
	assert.True(t, summary.IsTest)
}
