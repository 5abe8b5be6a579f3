package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kritika/internal/models"
)

// GORMTitleRepository is a GORM implementation of TitleRepository.
type GORMTitleRepository struct {
	db *gorm.DB
}

// NewGORMTitleRepository creates a new instance of GORMTitleRepository.
func NewGORMTitleRepository(db *gorm.DB) *GORMTitleRepository {
	return &GORMTitleRepository{
		db: db,
	}
}

// List retrieves titles ordered by name, narrowed by the filter, with
// Category and Genres preloaded and Rating attached.
func (r *GORMTitleRepository) List(filter TitleFilter, limit, offset int) ([]models.Title, error) {
	var titles []models.Title
	q := r.db.Model(&models.Title{}).Preload("Category").Preload("Genres")
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		q = q.Where("titles.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != 0 {
		q = q.Where("titles.year = ?", filter.Year)
	}
	if err := q.Order("titles.name").Limit(limit).Offset(offset).Find(&titles).Error; err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	if err := r.attachRatings(titles); err != nil {
		return nil, err
	}
	return titles, nil
}

// GetByID retrieves a single title with Category and Genres preloaded and
// Rating attached.
func (r *GORMTitleRepository) GetByID(id string) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Category").Preload("Genres").First(&title, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get title by ID %s: %w", id, err)
	}
	titles := []models.Title{title}
	if err := r.attachRatings(titles); err != nil {
		return nil, err
	}
	return &titles[0], nil
}

// attachRatings computes the average review score per title and fills
// Title.Rating. Titles without reviews keep a nil rating.
func (r *GORMTitleRepository) attachRatings(titles []models.Title) error {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]string, len(titles))
	for i := range titles {
		ids[i] = titles[i].ID
	}
	var rows []struct {
		TitleID string
		Rating  float64
	}
	err := r.db.Model(&models.Review{}).
		Select("title_id, AVG(score) AS rating").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate title ratings: %w", err)
	}
	ratings := make(map[string]float64, len(rows))
	for _, row := range rows {
		ratings[row.TitleID] = row.Rating
	}
	for i := range titles {
		if rating, ok := ratings[titles[i].ID]; ok {
			titles[i].Rating = &rating
		}
	}
	return nil
}

// Create creates a new title together with its genre associations.
func (r *GORMTitleRepository) Create(title *models.Title) error {
	if title.ID == "" {
		title.ID = uuid.New().String()
	}
	if err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(title).Error
	}); err != nil {
		return fmt.Errorf("failed to create title: %w", err)
	}
	return nil
}

// Update persists all fields of an existing title and replaces its genre
// associations in one transaction.
func (r *GORMTitleRepository) Update(title *models.Title) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("Genres").Save(title)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(title).Association("Genres").Replace(title.Genres)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update title: %w", err)
	}
	return nil
}

// Delete removes a title by ID. The delete is unscoped so the foreign key
// constraints cascade to the title's reviews and their comments.
func (r *GORMTitleRepository) Delete(id string) error {
	res := r.db.Unscoped().Delete(&models.Title{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete title: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
