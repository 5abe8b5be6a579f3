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

// CatalogHandler handles HTTP requests for categories, genres and titles.
// Reads are open to everyone; mutations are admin-only.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleListCategories)
	categories.Post("/", h.HandleCreateCategory)
	categories.Get("/:slug", h.HandleGetCategory)
	categories.Patch("/:slug", h.HandleUpdateCategory)
	categories.Delete("/:slug", h.HandleDeleteCategory)

	genres := router.Group("/genres")
	genres.Get("/", h.HandleListGenres)
	genres.Post("/", h.HandleCreateGenre)
	genres.Get("/:slug", h.HandleGetGenre)
	genres.Patch("/:slug", h.HandleUpdateGenre)
	genres.Delete("/:slug", h.HandleDeleteGenre)

	titles := router.Group("/titles")
	titles.Get("/", h.HandleListTitles)
	titles.Post("/", h.HandleCreateTitle)
	titles.Get("/:id", h.HandleGetTitle)
	titles.Patch("/:id", h.HandleUpdateTitle)
	titles.Delete("/:id", h.HandleDeleteTitle)
}

// TermRequest represents the write payload for categories and genres.
type TermRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

// TermUpdateRequest is the partial write payload for categories and genres.
type TermUpdateRequest struct {
	Name string `json:"name" validate:"omitempty,max=256"`
	Slug string `json:"slug" validate:"omitempty,max=50,slug"`
}

// catalogError maps service and repository errors to a response.
func (h *CatalogHandler) catalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
		})
	case errors.Is(err, repositories.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"slug": "slug already in use",
		})
	case errors.Is(err, services.ErrUnknownCategory):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"category": services.ErrUnknownCategory.Error(),
		})
	case errors.Is(err, services.ErrUnknownGenre):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"genre": services.ErrUnknownGenre.Error(),
		})
	}
	log.Printf("Catalog error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal error",
	})
}

// HandleListCategories lists categories with optional name search.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	categories, err := h.service.ListCategories(c.Query("search"), limit, offset)
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(categories)
}

// HandleGetCategory retrieves one category by slug.
func (h *CatalogHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.Params("slug"))
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a category (admin only).
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceCatalog)
	if !ok {
		return denyAccess(c, user)
	}
	var req TermRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := h.service.CreateCategory(category); err != nil {
		return h.catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory updates a category addressed by slug (admin only).
func (h *CatalogHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceCatalog)
	if !ok {
		return denyAccess(c, user)
	}
	var req TermUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	category, err := h.service.UpdateCategory(c.Params("slug"), req.Name, req.Slug)
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category by slug (admin only). Titles in
// the category survive with a null category.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceCatalog)
	if !ok {
		return denyAccess(c, user)
	}
	if err := h.service.DeleteCategory(c.Params("slug")); err != nil {
		return h.catalogError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListGenres lists genres with optional name search.
func (h *CatalogHandler) HandleListGenres(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	genres, err := h.service.ListGenres(c.Query("search"), limit, offset)
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(genres)
}

// HandleGetGenre retrieves one genre by slug.
func (h *CatalogHandler) HandleGetGenre(c *fiber.Ctx) error {
	genre, err := h.service.GetGenre(c.Params("slug"))
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(genre)
}

// HandleCreateGenre creates a genre (admin only).
func (h *CatalogHandler) HandleCreateGenre(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceCatalog)
	if !ok {
		return denyAccess(c, user)
	}
	var req TermRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := h.service.CreateGenre(genre); err != nil {
		return h.catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

// HandleUpdateGenre updates a genre addressed by slug (admin only).
func (h *CatalogHandler) HandleUpdateGenre(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceCatalog)
	if !ok {
		return denyAccess(c, user)
	}
	var req TermUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	genre, err := h.service.UpdateGenre(c.Params("slug"), req.Name, req.Slug)
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(genre)
}

// HandleDeleteGenre deletes a genre by slug (admin only).
func (h *CatalogHandler) HandleDeleteGenre(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceCatalog)
	if !ok {
		return denyAccess(c, user)
	}
	if err := h.service.DeleteGenre(c.Params("slug")); err != nil {
		return h.catalogError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TitleRequest represents the write payload for titles; category and
// genres are referenced by slug.
type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Description string   `json:"description"`
	Year        int      `json:"year" validate:"required,titleyear"`
	Category    string   `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
}

// TitleUpdateRequest is the partial write payload for titles.
type TitleUpdateRequest struct {
	Name        string   `json:"name" validate:"omitempty,max=256"`
	Description string   `json:"description"`
	Year        int      `json:"year" validate:"omitempty,titleyear"`
	Category    string   `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
}

// HandleListTitles lists titles filtered by category slug, genre slug, name
// substring and year.
func (h *CatalogHandler) HandleListTitles(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	filter := repositories.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
		Year:         c.QueryInt("year", 0),
	}
	titles, err := h.service.ListTitles(filter, limit, offset)
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(titles)
}

// HandleGetTitle retrieves one title with its computed rating.
func (h *CatalogHandler) HandleGetTitle(c *fiber.Ctx) error {
	title, err := h.service.GetTitle(c.Params("id"))
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(title)
}

// HandleCreateTitle creates a title (admin only).
func (h *CatalogHandler) HandleCreateTitle(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceCatalog)
	if !ok {
		return denyAccess(c, user)
	}
	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	title, err := h.service.CreateTitle(services.TitleInput{
		Name:         req.Name,
		Description:  req.Description,
		Year:         req.Year,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(title)
}

// HandleUpdateTitle partially updates a title (admin only).
func (h *CatalogHandler) HandleUpdateTitle(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceCatalog)
	if !ok {
		return denyAccess(c, user)
	}
	var req TitleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	title, err := h.service.UpdateTitle(c.Params("id"), services.TitleInput{
		Name:         req.Name,
		Description:  req.Description,
		Year:         req.Year,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(title)
}

// HandleDeleteTitle deletes a title (admin only); its reviews and their
// comments cascade away.
func (h *CatalogHandler) HandleDeleteTitle(c *fiber.Ctx) error {
	user, ok := requireAccess(c, permissions.ResourceCatalog)
	if !ok {
		return denyAccess(c, user)
	}
	if err := h.service.DeleteTitle(c.Params("id")); err != nil {
		return h.catalogError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
