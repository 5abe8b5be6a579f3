package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kritika/internal/models"
	"kritika/internal/permissions"
	"kritika/internal/repositories"
	"kritika/internal/services"
	"kritika/internal/validation"
)

// UserHandler handles HTTP requests for user administration (admin only)
// and the caller's own profile at /users/me (any authenticated user).
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The "me"
// routes are registered first so the reserved segment never matches the
// :username parameter.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Get("/me", h.HandleGetMe)
	users.Patch("/me", h.HandleUpdateMe)
	users.Get("/", h.HandleListUsers)
	users.Post("/", h.HandleCreateUser)
	users.Get("/:username", h.HandleGetUser)
	users.Patch("/:username", h.HandleUpdateUser)
	users.Delete("/:username", h.HandleDeleteUser)
}

func (h *UserHandler) userError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	case errors.Is(err, services.ErrReservedUsername):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"username": services.ErrReservedUsername.Error(),
		})
	case errors.Is(err, services.ErrUsernameTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"username": services.ErrUsernameTaken.Error(),
		})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"email": services.ErrEmailTaken.Error(),
		})
	}
	log.Printf("User error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal error",
	})
}

// UserCreateRequest represents the admin create payload.
type UserCreateRequest struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// UserUpdateRequest is the partial update payload for users. The role field
// only has effect on the admin path; /users/me discards it.
type UserUpdateRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

func (r UserUpdateRequest) toUpdate() services.UserUpdate {
	return services.UserUpdate{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Role:      r.Role,
	}
}

// HandleListUsers lists users with optional username search (admin only).
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceUserAdmin)
	if !ok {
		return denyAccess(c, user)
	}
	limit, offset := pagination(c)
	users, err := h.service.List(c.Query("search"), limit, offset)
	if err != nil {
		return h.userError(c, err)
	}
	return c.JSON(users)
}

// HandleCreateUser creates a user with any role (admin only).
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceUserAdmin)
	if !ok {
		return denyAccess(c, user)
	}
	var req UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	created := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	}
	if err := h.service.Create(created); err != nil {
		return h.userError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleGetUser retrieves one user by username (admin only).
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceUserAdmin)
	if !ok {
		return denyAccess(c, user)
	}
	target, err := h.service.GetByUsername(c.Params("username"))
	if err != nil {
		return h.userError(c, err)
	}
	return c.JSON(target)
}

// HandleUpdateUser partially updates a user by username, including the
// role (admin only).
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceUserAdmin)
	if !ok {
		return denyAccess(c, user)
	}
	var req UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	updated, err := h.service.Update(c.Params("username"), req.toUpdate())
	if err != nil {
		return h.userError(c, err)
	}
	return c.JSON(updated)
}

// HandleDeleteUser deletes a user by username (admin only).
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceUserAdmin)
	if !ok {
		return denyAccess(c, user)
	}
	if err := h.service.Delete(c.Params("username")); err != nil {
		return h.userError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetMe returns the caller's own profile.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceSelf)
	if !ok {
		return denyAccess(c, user)
	}
	return c.JSON(user)
}

// HandleUpdateMe partially updates the caller's own profile. Whatever role
// the payload carries, the stored role is re-applied after the update.
func (h *UserHandler) HandleUpdateMe(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceSelf)
	if !ok {
		return denyAccess(c, user)
	}
	var req UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	updated, err := h.service.UpdateSelf(user, req.toUpdate())
	if err != nil {
		return h.userError(c, err)
	}
	return c.JSON(updated)
}
