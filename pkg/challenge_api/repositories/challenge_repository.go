package repositories

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/hocus-focus/challenge-api/pkg/challenge_api/models"
)

type ChallengeRepository interface {
	Save(ctx context.Context, ch *models.Challenge) error
	GetChallengeByID(ctx context.Context, id int) (*models.Challenge, error)
	GetChallenges(ctx context.Context, page, perPage int) ([]models.Challenge, models.Pagination, error)
	UpdateChallenge(ctx context.Context, ch *models.Challenge) error
	DeleteChallenge(ctx context.Context, id int) error
	CountChallenges(ctx context.Context) (int64, error)
	DeleteTestChallengesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type challengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

// Save inserts the row and fills in the assigned id and timestamps.
// The insert is a single statement: it is fully visible or not at all.
func (r *challengeRepository) Save(ctx context.Context, ch *models.Challenge) error {
	return r.db.WithContext(ctx).Create(ch).Error
}

// GetChallengeByID returns nil without error when no row has that id.
func (r *challengeRepository) GetChallengeByID(ctx context.Context, id int) (*models.Challenge, error) {
	var ch models.Challenge
	err := r.db.WithContext(ctx).First(&ch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// GetChallenges lists most recently created first.
func (r *challengeRepository) GetChallenges(ctx context.Context, page, perPage int) ([]models.Challenge, models.Pagination, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Challenge{}).Count(&total).Error; err != nil {
		return nil, models.Pagination{}, err
	}

	offset := (page - 1) * perPage
	var challenges []models.Challenge
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(perPage).
		Offset(offset).
		Find(&challenges).Error
	if err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	pagination := models.Pagination{
		CurrentPage:    page,
		RecordsPerPage: perPage,
		TotalPages:     totalPages,
		TotalRecords:   int(total),
	}
	if page < totalPages {
		next := page + 1
		pagination.Next = &next
	}
	if page > 1 {
		prev := page - 1
		pagination.Previous = &prev
	}

	return challenges, pagination, nil
}

func (r *challengeRepository) UpdateChallenge(ctx context.Context, ch *models.Challenge) error {
	return r.db.WithContext(ctx).Save(ch).Error
}

func (r *challengeRepository) DeleteChallenge(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&models.Challenge{}, id).Error
}

func (r *challengeRepository) CountChallenges(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Challenge{}).Count(&total).Error
	return total, err
}

// DeleteTestChallengesBefore removes test challenges created before the
// cutoff. Permanent rows are never touched.
func (r *challengeRepository) DeleteTestChallengesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("is_test = ? AND is_permanent = ? AND created_at < ?", true, false, cutoff).
		Delete(&models.Challenge{})
	return res.RowsAffected, res.Error
}
