package repositories

import "kritika/internal/models"

// CategoryRepository defines the interface for category data access.
// Categories are addressed by slug.
type CategoryRepository interface {
	List(search string, limit, offset int) ([]models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(slug string) error
}

// GenreRepository defines the interface for genre data access. Genres are
// addressed by slug.
type GenreRepository interface {
	List(search string, limit, offset int) ([]models.Genre, error)
	GetBySlug(slug string) (*models.Genre, error)
	GetBySlugs(slugs []string) ([]models.Genre, error)
	Create(genre *models.Genre) error
	Update(genre *models.Genre) error
	Delete(slug string) error
}

// TitleFilter narrows a title listing. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

// TitleRepository defines the interface for title data access. List and
// GetByID return titles with Category and Genres preloaded and Rating
// computed from the title's reviews (nil when there are none).
type TitleRepository interface {
	List(filter TitleFilter, limit, offset int) ([]models.Title, error)
	GetByID(id string) (*models.Title, error)
	Create(title *models.Title) error
	Update(title *models.Title) error
	Delete(id string) error
}
