package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kritika/internal/models"
	"kritika/internal/repositories"
	"kritika/internal/services"
)

// MockReviewRepository is a mock implementation of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ListByTitle(titleID string, limit, offset int) ([]models.Review, error) {
	args := m.Called(titleID, limit, offset)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByID(titleID, reviewID string) (*models.Review, error) {
	args := m.Called(titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(titleID, reviewID string) error {
	args := m.Called(titleID, reviewID)
	return args.Error(0)
}

// MockCommentRepository is a mock implementation of repositories.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) ListByReview(reviewID string, limit, offset int) ([]models.Comment, error) {
	args := m.Called(reviewID, limit, offset)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByID(reviewID, commentID string) (*models.Comment, error) {
	args := m.Called(reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(reviewID, commentID string) error {
	args := m.Called(reviewID, commentID)
	return args.Error(0)
}

// MockTitleRepository is a mock implementation of repositories.TitleRepository
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) List(filter repositories.TitleFilter, limit, offset int) ([]models.Title, error) {
	args := m.Called(filter, limit, offset)
	return args.Get(0).([]models.Title), args.Error(1)
}

func (m *MockTitleRepository) GetByID(id string) (*models.Title, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) Create(title *models.Title) error {
	args := m.Called(title)
	return args.Error(0)
}

func (m *MockTitleRepository) Update(title *models.Title) error {
	args := m.Called(title)
	return args.Error(0)
}

func (m *MockTitleRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestReviewService_CreateReview(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockComments := new(MockCommentRepository)
	mockTitles := new(MockTitleRepository)
	service := services.NewReviewService(mockReviews, mockComments, mockTitles)

	author := &models.User{ID: "u1", Username: "bob", Role: models.RoleUser}
	title := &models.Title{ID: "t1", Name: "Solaris", Year: 1972}

	mockTitles.On("GetByID", "t1").Return(title, nil).Once()
	mockReviews.On("Create", mock.AnythingOfType("*models.Review")).Return(nil).Once()
	mockReviews.On("GetByID", "t1", mock.Anything).
		Return(&models.Review{ID: "r1", TitleID: "t1", AuthorID: "u1", Text: "great", Score: 9}, nil).Once()

	review, err := service.CreateReview("t1", author, "great", 9)

	assert.NoError(t, err)
	assert.Equal(t, 9, review.Score)
	mockTitles.AssertExpectations(t)
	mockReviews.AssertExpectations(t)
}

func TestReviewService_CreateReviewDuplicate(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockComments := new(MockCommentRepository)
	mockTitles := new(MockTitleRepository)
	service := services.NewReviewService(mockReviews, mockComments, mockTitles)

	author := &models.User{ID: "u1", Username: "bob", Role: models.RoleUser}

	mockTitles.On("GetByID", "t1").Return(&models.Title{ID: "t1"}, nil).Once()
	mockReviews.On("Create", mock.AnythingOfType("*models.Review")).Return(repositories.ErrDuplicate).Once()

	_, err := service.CreateReview("t1", author, "again", 5)

	assert.ErrorIs(t, err, services.ErrReviewExists)
	mockReviews.AssertExpectations(t)
}

func TestReviewService_CreateReviewMissingTitle(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockComments := new(MockCommentRepository)
	mockTitles := new(MockTitleRepository)
	service := services.NewReviewService(mockReviews, mockComments, mockTitles)

	mockTitles.On("GetByID", "nope").Return(nil, repositories.ErrNotFound).Once()

	_, err := service.CreateReview("nope", &models.User{ID: "u1"}, "text", 5)

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockReviews.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReviewService_ListReviews(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockComments := new(MockCommentRepository)
	mockTitles := new(MockTitleRepository)
	service := services.NewReviewService(mockReviews, mockComments, mockTitles)

	expected := []models.Review{
		{ID: "r2", TitleID: "t1", Score: 7},
		{ID: "r1", TitleID: "t1", Score: 9},
	}
	mockTitles.On("GetByID", "t1").Return(&models.Title{ID: "t1"}, nil).Once()
	mockReviews.On("ListByTitle", "t1", 10, 0).Return(expected, nil).Once()

	reviews, err := service.ListReviews("t1", 10, 0)

	assert.NoError(t, err)
	assert.Equal(t, expected, reviews)
	mockReviews.AssertExpectations(t)
}

func TestReviewService_CreateComment(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockComments := new(MockCommentRepository)
	mockTitles := new(MockTitleRepository)
	service := services.NewReviewService(mockReviews, mockComments, mockTitles)

	author := &models.User{ID: "u2", Username: "alice"}
	review := &models.Review{ID: "r1", TitleID: "t1", AuthorID: "u1"}

	mockReviews.On("GetByID", "t1", "r1").Return(review, nil).Once()
	mockComments.On("Create", mock.AnythingOfType("*models.Comment")).Return(nil).Once()
	mockComments.On("GetByID", "r1", mock.Anything).
		Return(&models.Comment{ID: "c1", ReviewID: "r1", AuthorID: "u2", Text: "agreed"}, nil).Once()

	comment, err := service.CreateComment("t1", "r1", author, "agreed")

	assert.NoError(t, err)
	assert.Equal(t, "agreed", comment.Text)
	mockComments.AssertExpectations(t)
}

func TestReviewService_CommentOnMissingReview(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockComments := new(MockCommentRepository)
	mockTitles := new(MockTitleRepository)
	service := services.NewReviewService(mockReviews, mockComments, mockTitles)

	mockReviews.On("GetByID", "t1", "nope").Return(nil, repositories.ErrNotFound).Once()

	_, err := service.CreateComment("t1", "nope", &models.User{ID: "u1"}, "text")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockComments.AssertNotCalled(t, "Create", mock.Anything)
}
