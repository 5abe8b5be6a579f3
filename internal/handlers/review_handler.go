package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kritika/internal/permissions"
	"kritika/internal/repositories"
	"kritika/internal/services"
	"kritika/internal/validation"
)

// ReviewHandler handles HTTP requests for reviews and comments, nested
// under their parent title and review. Reads are open; writes require
// authentication, and mutating an existing object additionally requires
// authorship, the moderator role or the admin role.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the review and comment routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviews := router.Group("/titles/:titleID/reviews")
	reviews.Get("/", h.HandleListReviews)
	reviews.Post("/", h.HandleCreateReview)
	reviews.Get("/:reviewID", h.HandleGetReview)
	reviews.Patch("/:reviewID", h.HandleUpdateReview)
	reviews.Delete("/:reviewID", h.HandleDeleteReview)

	comments := reviews.Group("/:reviewID/comments")
	comments.Get("/", h.HandleListComments)
	comments.Post("/", h.HandleCreateComment)
	comments.Get("/:commentID", h.HandleGetComment)
	comments.Patch("/:commentID", h.HandleUpdateComment)
	comments.Delete("/:commentID", h.HandleDeleteComment)
}

func (h *ReviewHandler) reviewError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
		})
	case errors.Is(err, services.ErrReviewExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": services.ErrReviewExists.Error(),
		})
	}
	log.Printf("Review error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal error",
	})
}

// ReviewRequest represents the create payload for reviews.
type ReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,gte=1,lte=10"`
}

// ReviewUpdateRequest is the partial update payload for reviews.
type ReviewUpdateRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score" validate:"omitempty,gte=1,lte=10"`
}

// HandleListReviews lists a title's reviews, newest first.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	reviews, err := h.service.ListReviews(c.Params("titleID"), limit, offset)
	if err != nil {
		return h.reviewError(c, err)
	}
	return c.JSON(toReviewResponses(reviews))
}

// HandleGetReview retrieves one review of a title.
func (h *ReviewHandler) HandleGetReview(c *fiber.Ctx) error {
	review, err := h.service.GetReview(c.Params("titleID"), c.Params("reviewID"))
	if err != nil {
		return h.reviewError(c, err)
	}
	return c.JSON(toReviewResponse(*review))
}

// HandleCreateReview creates the caller's review of a title. A second
// review of the same title by the same author is rejected.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceReview)
	if !ok {
		return denyAccess(c, user)
	}
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	review, err := h.service.CreateReview(c.Params("titleID"), user, req.Text, req.Score)
	if err != nil {
		return h.reviewError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReviewResponse(*review))
}

// HandleUpdateReview updates a review; only its author, a moderator or an
// admin may.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceReview)
	if !ok {
		return denyAccess(c, user)
	}
	review, err := h.service.GetReview(c.Params("titleID"), c.Params("reviewID"))
	if err != nil {
		return h.reviewError(c, err)
	}
	if !permissions.CanMutateObject(user, c.Method(), review.AuthorID) {
		return denyAccess(c, user)
	}
	var req ReviewUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	updated, err := h.service.UpdateReview(review, req.Text, req.Score)
	if err != nil {
		return h.reviewError(c, err)
	}
	return c.JSON(toReviewResponse(*updated))
}

// HandleDeleteReview deletes a review; only its author, a moderator or an
// admin may.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceReview)
	if !ok {
		return denyAccess(c, user)
	}
	review, err := h.service.GetReview(c.Params("titleID"), c.Params("reviewID"))
	if err != nil {
		return h.reviewError(c, err)
	}
	if !permissions.CanMutateObject(user, c.Method(), review.AuthorID) {
		return denyAccess(c, user)
	}
	if err := h.service.DeleteReview(c.Params("titleID"), review.ID); err != nil {
		return h.reviewError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CommentRequest represents the write payload for comments.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// HandleListComments lists a review's comments, newest first.
func (h *ReviewHandler) HandleListComments(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	comments, err := h.service.ListComments(c.Params("titleID"), c.Params("reviewID"), limit, offset)
	if err != nil {
		return h.reviewError(c, err)
	}
	return c.JSON(toCommentResponses(comments))
}

// HandleGetComment retrieves one comment of a review.
func (h *ReviewHandler) HandleGetComment(c *fiber.Ctx) error {
	comment, err := h.service.GetComment(c.Params("titleID"), c.Params("reviewID"), c.Params("commentID"))
	if err != nil {
		return h.reviewError(c, err)
	}
	return c.JSON(toCommentResponse(*comment))
}

// HandleCreateComment adds the caller's comment to a review.
func (h *ReviewHandler) HandleCreateComment(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceReview)
	if !ok {
		return denyAccess(c, user)
	}
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	comment, err := h.service.CreateComment(c.Params("titleID"), c.Params("reviewID"), user, req.Text)
	if err != nil {
		return h.reviewError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCommentResponse(*comment))
}

// HandleUpdateComment updates a comment; only its author, a moderator or an
// admin may.
func (h *ReviewHandler) HandleUpdateComment(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceReview)
	if !ok {
		return denyAccess(c, user)
	}
	comment, err := h.service.GetComment(c.Params("titleID"), c.Params("reviewID"), c.Params("commentID"))
	if err != nil {
		return h.reviewError(c, err)
	}
	if !permissions.CanMutateObject(user, c.Method(), comment.AuthorID) {
		return denyAccess(c, user)
	}
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	updated, err := h.service.UpdateComment(comment, req.Text)
	if err != nil {
		return h.reviewError(c, err)
	}
	return c.JSON(toCommentResponse(*updated))
}

// HandleDeleteComment deletes a comment; only its author, a moderator or an
// admin may.
func (h *ReviewHandler) HandleDeleteComment(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceReview)
	if !ok {
		return denyAccess(c, user)
	}
	comment, err := h.service.GetComment(c.Params("titleID"), c.Params("reviewID"), c.Params("commentID"))
	if err != nil {
		return h.reviewError(c, err)
	}
	if !permissions.CanMutateObject(user, c.Method(), comment.AuthorID) {
		return denyAccess(c, user)
	}
	if err := h.service.DeleteComment(c.Params("reviewID"), comment.ID); err != nil {
		return h.reviewError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
