package services

import (
	"errors"
	"fmt"

	"kritika/internal/models"
	"kritika/internal/repositories"
)

// ReviewService handles business logic for reviews and their comments. Both
// are addressed through their parents; a missing parent surfaces as
// repositories.ErrNotFound.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	commentRepo repositories.CommentRepository
	titleRepo   repositories.TitleRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository,
	commentRepo repositories.CommentRepository,
	titleRepo repositories.TitleRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		commentRepo: commentRepo,
		titleRepo:   titleRepo,
	}
}

// ListReviews retrieves a title's reviews, newest first.
func (s *ReviewService) ListReviews(titleID string, limit, offset int) ([]models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByTitle(titleID, limit, offset)
}

// GetReview retrieves one review of a title.
func (s *ReviewService) GetReview(titleID, reviewID string) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(titleID, reviewID)
}

// CreateReview creates the author's review of a title. At most one review
// per (author, title) pair may exist; a duplicate attempt returns
// ErrReviewExists.
func (s *ReviewService) CreateReview(titleID string, author *models.User, text string, score int) (*models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, err
	}
	review := &models.Review{
		TitleID:  titleID,
		AuthorID: author.ID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrReviewExists
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return s.reviewRepo.GetByID(titleID, review.ID)
}

// UpdateReview updates the text and score of an existing review. The
// caller is responsible for the ownership check.
func (s *ReviewService) UpdateReview(review *models.Review, text string, score int) (*models.Review, error) {
	if text != "" {
		review.Text = text
	}
	if score != 0 {
		review.Score = score
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(review.TitleID, review.ID)
}

// DeleteReview deletes one review of a title; its comments go with it.
func (s *ReviewService) DeleteReview(titleID, reviewID string) error {
	return s.reviewRepo.Delete(titleID, reviewID)
}

// ListComments retrieves a review's comments, newest first.
func (s *ReviewService) ListComments(titleID, reviewID string, limit, offset int) ([]models.Comment, error) {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByReview(reviewID, limit, offset)
}

// GetComment retrieves one comment of a review.
func (s *ReviewService) GetComment(titleID, reviewID, commentID string) (*models.Comment, error) {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(reviewID, commentID)
}

// CreateComment adds the author's comment to a review.
func (s *ReviewService) CreateComment(titleID, reviewID string, author *models.User, text string) (*models.Comment, error) {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: author.ID,
		Text:     text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return s.commentRepo.GetByID(reviewID, comment.ID)
}

// UpdateComment updates the text of an existing comment. The caller is
// responsible for the ownership check.
func (s *ReviewService) UpdateComment(comment *models.Comment, text string) (*models.Comment, error) {
	if text != "" {
		comment.Text = text
	}
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(comment.ReviewID, comment.ID)
}

// DeleteComment deletes one comment of a review.
func (s *ReviewService) DeleteComment(reviewID, commentID string) error {
	return s.commentRepo.Delete(reviewID, commentID)
}
