package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kritika/internal/repositories"
	"kritika/internal/services"
	"kritika/internal/validation"
)

// AuthHandler handles HTTP requests for signup and token issuance. Both
// endpoints are open to anonymous callers.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validation.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/token", h.HandleToken)
}

// SignupRequest represents the request body for registration.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// HandleSignup registers a user (idempotently for an exact repeat of the
// same username and email) and emails a confirmation code.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user, err := h.authService.Signup(req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservedUsername):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"username": services.ErrReservedUsername.Error(),
			})
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"email": services.ErrEmailTaken.Error(),
			})
		case errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"username": services.ErrUsernameTaken.Error(),
			})
		}
		log.Printf("Error during signup for %s: %v", req.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	return c.JSON(fiber.Map{
		"username": user.Username,
		"email":    user.Email,
	})
}

// TokenRequest represents the request body for token issuance.
type TokenRequest struct {
	Username         string `json:"username" validate:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// HandleToken exchanges a confirmation code for a signed access token.
func (h *AuthHandler) HandleToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	token, err := h.authService.IssueToken(req.Username, req.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		case errors.Is(err, services.ErrReservedUsername):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"username": services.ErrReservedUsername.Error(),
			})
		case errors.Is(err, services.ErrInvalidConfirmationCode):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"confirmation_code": services.ErrInvalidConfirmationCode.Error(),
			})
		}
		log.Printf("Error issuing token for %s: %v", req.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not issue token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}
