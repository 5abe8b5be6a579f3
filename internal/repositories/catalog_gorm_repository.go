package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kritika/internal/models"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// List retrieves categories ordered by name, optionally filtered by a name
// substring.
func (r *GORMCategoryRepository) List(search string, limit, offset int) ([]models.Category, error) {
	var categories []models.Category
	q := r.db.Order("name")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if err := q.Limit(limit).Offset(offset).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetBySlug retrieves a category by its slug.
func (r *GORMCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return &category, nil
}

// Create creates a new category.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update persists all fields of an existing category.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Save(category)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category by slug. Titles referencing it keep existing
// with a null category (ON DELETE SET NULL).
func (r *GORMCategoryRepository) Delete(slug string) error {
	res := r.db.Unscoped().Delete(&models.Category{}, "slug = ?", slug)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GORMGenreRepository is a GORM implementation of GenreRepository.
type GORMGenreRepository struct {
	db *gorm.DB
}

// NewGORMGenreRepository creates a new instance of GORMGenreRepository.
func NewGORMGenreRepository(db *gorm.DB) *GORMGenreRepository {
	return &GORMGenreRepository{
		db: db,
	}
}

// List retrieves genres ordered by name, optionally filtered by a name
// substring.
func (r *GORMGenreRepository) List(search string, limit, offset int) ([]models.Genre, error) {
	var genres []models.Genre
	q := r.db.Order("name")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if err := q.Limit(limit).Offset(offset).Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// GetBySlug retrieves a genre by its slug.
func (r *GORMGenreRepository) GetBySlug(slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.First(&genre, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get genre by slug %s: %w", slug, err)
	}
	return &genre, nil
}

// GetBySlugs retrieves the genres for the given slugs. ErrNotFound is
// returned when any slug does not resolve.
func (r *GORMGenreRepository) GetBySlugs(slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := r.db.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to get genres by slugs: %w", err)
	}
	if len(genres) != len(slugs) {
		return nil, ErrNotFound
	}
	return genres, nil
}

// Create creates a new genre.
func (r *GORMGenreRepository) Create(genre *models.Genre) error {
	if genre.ID == "" {
		genre.ID = uuid.New().String()
	}
	if err := r.db.Create(genre).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create genre: %w", err)
	}
	return nil
}

// Update persists all fields of an existing genre.
func (r *GORMGenreRepository) Update(genre *models.Genre) error {
	res := r.db.Save(genre)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update genre: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a genre by slug and its join-table rows.
func (r *GORMGenreRepository) Delete(slug string) error {
	res := r.db.Unscoped().Delete(&models.Genre{}, "slug = ?", slug)
	if res.Error != nil {
		return fmt.Errorf("failed to delete genre: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
