package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kritika/internal/models"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// ListByTitle retrieves the reviews of a title, newest first.
func (r *GORMReviewRepository) ListByTitle(titleID string, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Author").
		Where("title_id = ?", titleID).
		Order("pub_date DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetByID retrieves a review scoped to its parent title.
func (r *GORMReviewRepository) GetByID(titleID, reviewID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Author").
		First(&review, "id = ? AND title_id = ?", reviewID, titleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review by ID %s: %w", reviewID, err)
	}
	return &review, nil
}

// Create creates a review inside a transaction. The duplicate check and the
// insert run atomically; the composite unique index on (title_id,
// author_id) closes the race between concurrent creators, so exactly one of
// two simultaneous attempts succeeds and the other gets ErrDuplicate.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Review{}).
			Where("title_id = ? AND author_id = ?", review.TitleID, review.AuthorID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Omit("Author", "Title").Create(review).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update persists the text and score of an existing review.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Review{}).
			Where("id = ?", review.ID).
			Updates(map[string]interface{}{"text": review.Text, "score": review.Score})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

// Delete removes a review scoped to its parent title; comments cascade away
// with it.
func (r *GORMReviewRepository) Delete(titleID, reviewID string) error {
	res := r.db.Delete(&models.Review{}, "id = ? AND title_id = ?", reviewID, titleID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// ListByReview retrieves the comments of a review, newest first.
func (r *GORMCommentRepository) ListByReview(reviewID string, limit, offset int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("review_id = ?", reviewID).
		Order("pub_date DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// GetByID retrieves a comment scoped to its parent review.
func (r *GORMCommentRepository) GetByID(reviewID, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").
		First(&comment, "id = ? AND review_id = ?", commentID, reviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment by ID %s: %w", commentID, err)
	}
	return &comment, nil
}

// Create creates a comment.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Author", "Review").Create(comment).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Update persists the text of an existing comment.
func (r *GORMCommentRepository) Update(comment *models.Comment) error {
	res := r.db.Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Update("text", comment.Text)
	if res.Error != nil {
		return fmt.Errorf("failed to update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a comment scoped to its parent review.
func (r *GORMCommentRepository) Delete(reviewID, commentID string) error {
	res := r.db.Delete(&models.Comment{}, "id = ? AND review_id = ?", commentID, reviewID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
