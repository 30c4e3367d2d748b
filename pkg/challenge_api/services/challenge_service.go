package services

import (
	"context"
	"time"

	problem "github.com/hocus-focus/challenge-api/pkg/challenge_api/helpers/problem"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/models"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/repositories"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/serializers"
)

// testChallengeMaxAge is how long is_test rows are kept before the nightly
// purge removes them.
const testChallengeMaxAge = 7 * 24 * time.Hour

// ChallengesAPIService orchestrates validate → persist → serialize for the
// challenge resource.
type ChallengesAPIService struct {
	repo repositories.ChallengeRepository
}

func NewChallengesAPIService(repo repositories.ChallengeRepository) *ChallengesAPIService {
	return &ChallengesAPIService{repo: repo}
}

// CreateChallenge validates the whole input before any persistence attempt;
// a validation failure never leaves a partial row behind.
func (s *ChallengesAPIService) CreateChallenge(ctx context.Context, input *models.CreateChallengeInput) (*models.ChallengeResponse, error) {
	if invalids := input.Validate(); len(invalids) > 0 {
		return nil, problem.NewValidationError(invalids...)
	}
	ch := input.Challenge()
	if err := s.repo.Save(ctx, &ch); err != nil {
		return nil, err
	}
	resp := serializers.SerializeChallenge(&ch)
	return &resp, nil
}

// CreateChristmasChallenge expands the card template and persists it. The
// template has no required fields.
func (s *ChallengesAPIService) CreateChristmasChallenge(ctx context.Context, input *models.ChristmasChallengeInput) (*models.ChallengeResponse, error) {
	ch := input.Challenge()
	if err := s.repo.Save(ctx, &ch); err != nil {
		return nil, err
	}
	resp := serializers.SerializeChallenge(&ch)
	return &resp, nil
}

// RetrieveChallenge returns nil when the id is unknown.
func (s *ChallengesAPIService) RetrieveChallenge(ctx context.Context, id int) (*models.ChallengeResponse, error) {
	ch, err := s.repo.GetChallengeByID(ctx, id)
	if err != nil || ch == nil {
		return nil, err
	}
	resp := serializers.SerializeChallenge(ch)
	return &resp, nil
}

// GetChallenge exposes the raw record for callers that need the stored
// bytes (the image route, admin mutations).
func (s *ChallengesAPIService) GetChallenge(ctx context.Context, id int) (*models.Challenge, error) {
	return s.repo.GetChallengeByID(ctx, id)
}

func (s *ChallengesAPIService) ListChallenges(ctx context.Context, p *models.ListChallengesParams) ([]models.ChallengeSummary, models.Pagination, error) {
	challenges, pagination, err := s.repo.GetChallenges(ctx, p.Page, p.PerPage)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	summaries := make([]models.ChallengeSummary, len(challenges))
	for i := range challenges {
		summaries[i] = serializers.SerializeChallengeSummary(&challenges[i])
	}
	return summaries, pagination, nil
}

// UpdateChallenge applies a partial admin edit. Missing id surfaces as a
// nil response, not an error.
func (s *ChallengesAPIService) UpdateChallenge(ctx context.Context, id int, input *models.UpdateChallengeInput) (*models.ChallengeResponse, error) {
	if invalids := input.Validate(); len(invalids) > 0 {
		return nil, problem.NewValidationError(invalids...)
	}
	ch, err := s.repo.GetChallengeByID(ctx, id)
	if err != nil || ch == nil {
		return nil, err
	}
	input.Apply(ch)
	if err := s.repo.UpdateChallenge(ctx, ch); err != nil {
		return nil, err
	}
	resp := serializers.SerializeChallenge(ch)
	return &resp, nil
}

// ReplaceChallengeImage swaps the image under the same policy as create;
// the four image fields change together or not at all.
func (s *ChallengesAPIService) ReplaceChallengeImage(ctx context.Context, id int, input *models.ReplaceImageInput) (*models.ChallengeResponse, error) {
	if invalids := input.Validate(); len(invalids) > 0 {
		return nil, problem.NewValidationError(invalids...)
	}
	ch, err := s.repo.GetChallengeByID(ctx, id)
	if err != nil || ch == nil {
		return nil, err
	}
	ch.SetImage(input.Image.Name, input.Image.ContentType, input.Image.Data)
	if err := s.repo.UpdateChallenge(ctx, ch); err != nil {
		return nil, err
	}
	resp := serializers.SerializeChallenge(ch)
	return &resp, nil
}

// DeleteChallenge reports whether a row was actually removed.
func (s *ChallengesAPIService) DeleteChallenge(ctx context.Context, id int) (bool, error) {
	ch, err := s.repo.GetChallengeByID(ctx, id)
	if err != nil {
		return false, err
	}
	if ch == nil {
		return false, nil
	}
	if err := s.repo.DeleteChallenge(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// CountChallenges reports the stored total.
func (s *ChallengesAPIService) CountChallenges(ctx context.Context) (int64, error) {
	return s.repo.CountChallenges(ctx)
}

// PurgeStaleTestChallenges is the nightly cleanup entry point.
func (s *ChallengesAPIService) PurgeStaleTestChallenges(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-testChallengeMaxAge)
	return s.repo.DeleteTestChallengesBefore(ctx, cutoff)
}
