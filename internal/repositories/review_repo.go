package repositories

import "kritika/internal/models"

// ReviewRepository defines the interface for review data access. Reviews
// are always addressed through their parent title; listings are newest
// first (pub_date desc, then id desc) and return the author preloaded.
type ReviewRepository interface {
	ListByTitle(titleID string, limit, offset int) ([]models.Review, error)
	GetByID(titleID, reviewID string) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(titleID, reviewID string) error
}

// CommentRepository defines the interface for comment data access. Comments
// are always addressed through their parent review; listings are newest
// first and return the author preloaded.
type CommentRepository interface {
	ListByReview(reviewID string, limit, offset int) ([]models.Comment, error)
	GetByID(reviewID, commentID string) (*models.Comment, error)
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(reviewID, commentID string) error
}
