package serializers

import (
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/models"
)

// SerializeChallenge builds the read representation. goals is always a
// list (never null) and image_base64 is derived from the stored bytes only.
func SerializeChallenge(ch *models.Challenge) models.ChallengeResponse {
	goals := []int(ch.Goals)
	if goals == nil {
		goals = []int{}
	}
	return models.ChallengeResponse{
		Id:                              ch.ID,
		Date:                            ch.Date,
		Clue:                            ch.Clue,
		Credit:                          ch.Credit,
		CreditUrl:                       ch.CreditUrl,
		Goals:                           goals,
		Hitareas:                        ch.Hitareas,
		BeforeMessageTitle:              ch.BeforeMessageTitle,
		BeforeMessageBody:               ch.BeforeMessageBody,
		BeforeMessageButton:             ch.BeforeMessageButton,
		BeforeMessageBackgroundImageUrl: ch.BeforeMessageBackgroundImageUrl,
		IsTest:                          ch.IsTest,
		IsPermanent:                     ch.IsPermanent,
		IsTutorial:                      ch.IsTutorial,
		ImageName:                       ch.ImageName,
		ImageContentType:                ch.ImageContentType,
		ImageSize:                       ch.ImageSize,
		HasImage:                        ch.HasImage(),
		ImageBase64:                     ch.ImageBase64(),
		CreatedAt:                       ch.CreatedAt,
		UpdatedAt:                       ch.UpdatedAt,
	}
}

// SerializeChallengeSummary is the admin listing shape, without the blob.
func SerializeChallengeSummary(ch *models.Challenge) models.ChallengeSummary {
	return models.ChallengeSummary{
		Id:          ch.ID,
		Date:        ch.Date,
		Clue:        ch.Clue,
		HasImage:    ch.HasImage(),
		ImageSize:   ch.ImageSize,
		IsTest:      ch.IsTest,
		IsPermanent: ch.IsPermanent,
		IsTutorial:  ch.IsTutorial,
		CreatedAt:   ch.CreatedAt,
		UpdatedAt:   ch.UpdatedAt,
	}
}
