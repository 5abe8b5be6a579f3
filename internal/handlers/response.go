package handlers

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kritika/internal/middleware"
	"kritika/internal/models"
	"kritika/internal/permissions"
)

// defaultPageSize is the page size applied to every list endpoint when the
// client does not pass limit.
const defaultPageSize = 10

// pagination reads limit/offset query parameters.
func pagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// validationError converts validator errors into a field-keyed 400 body.
func validationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// denyAccess renders an authorization denial: 401 for anonymous callers,
// 403 for authenticated callers with insufficient role or ownership.
func denyAccess(c *fiber.Ctx, user *models.User) error {
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"message": "Insufficient permissions",
	})
}

// requireAccess runs the request-level authorization gate. On denial the
// caller renders the response via denyAccess with the returned user.
func requireAccess(c *fiber.Ctx, resource permissions.Resource) (*models.User, bool) {
	user := middleware.CurrentUser(c)
	if !permissions.CanAccess(user, c.Method(), resource) {
		return user, false
	}
	return user, true
}

// reviewResponse is the wire shape of a review; the author appears as a
// username.
type reviewResponse struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func toReviewResponse(r models.Review) reviewResponse {
	return reviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

func toReviewResponses(reviews []models.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out
}

// commentResponse is the wire shape of a comment.
type commentResponse struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func toCommentResponse(cm models.Comment) commentResponse {
	return commentResponse{
		ID:      cm.ID,
		Text:    cm.Text,
		Author:  cm.Author.Username,
		PubDate: cm.PubDate,
	}
}

func toCommentResponses(comments []models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, toCommentResponse(cm))
	}
	return out
}
