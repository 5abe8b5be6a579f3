package services

import (
	"errors"
	"fmt"

	"kritika/internal/models"
	"kritika/internal/repositories"
)

// TitleInput is the write payload for titles. Category and genres are
// referenced by slug.
type TitleInput struct {
	Name         string
	Description  string
	Year         int
	CategorySlug string
	GenreSlugs   []string
}

// CatalogService handles business logic for categories, genres and titles.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
	titleRepo    repositories.TitleRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository,
	genreRepo repositories.GenreRepository,
	titleRepo repositories.TitleRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		titleRepo:    titleRepo,
	}
}

// ListCategories retrieves categories, optionally filtered by name.
func (s *CatalogService) ListCategories(search string, limit, offset int) ([]models.Category, error) {
	return s.categoryRepo.List(search, limit, offset)
}

// GetCategory retrieves a category by slug.
func (s *CatalogService) GetCategory(slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(slug)
}

// CreateCategory creates a new category.
func (s *CatalogService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}

// UpdateCategory updates the category addressed by slug.
func (s *CatalogService) UpdateCategory(slug string, name, newSlug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if name != "" {
		category.Name = name
	}
	if newSlug != "" {
		category.Slug = newSlug
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category by slug.
func (s *CatalogService) DeleteCategory(slug string) error {
	return s.categoryRepo.Delete(slug)
}

// ListGenres retrieves genres, optionally filtered by name.
func (s *CatalogService) ListGenres(search string, limit, offset int) ([]models.Genre, error) {
	return s.genreRepo.List(search, limit, offset)
}

// GetGenre retrieves a genre by slug.
func (s *CatalogService) GetGenre(slug string) (*models.Genre, error) {
	return s.genreRepo.GetBySlug(slug)
}

// CreateGenre creates a new genre.
func (s *CatalogService) CreateGenre(genre *models.Genre) error {
	return s.genreRepo.Create(genre)
}

// UpdateGenre updates the genre addressed by slug.
func (s *CatalogService) UpdateGenre(slug string, name, newSlug string) (*models.Genre, error) {
	genre, err := s.genreRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if name != "" {
		genre.Name = name
	}
	if newSlug != "" {
		genre.Slug = newSlug
	}
	if err := s.genreRepo.Update(genre); err != nil {
		return nil, err
	}
	return genre, nil
}

// DeleteGenre deletes a genre by slug.
func (s *CatalogService) DeleteGenre(slug string) error {
	return s.genreRepo.Delete(slug)
}

// ListTitles retrieves titles narrowed by the filter.
func (s *CatalogService) ListTitles(filter repositories.TitleFilter, limit, offset int) ([]models.Title, error) {
	return s.titleRepo.List(filter, limit, offset)
}

// GetTitle retrieves a title by ID.
func (s *CatalogService) GetTitle(id string) (*models.Title, error) {
	return s.titleRepo.GetByID(id)
}

// CreateTitle creates a title from the input, resolving category and genre
// slugs to records.
func (s *CatalogService) CreateTitle(input TitleInput) (*models.Title, error) {
	title := &models.Title{
		Name:        input.Name,
		Description: input.Description,
		Year:        input.Year,
	}
	if err := s.resolveTitleRefs(title, input); err != nil {
		return nil, err
	}
	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}
	return s.titleRepo.GetByID(title.ID)
}

// UpdateTitle partially updates the title addressed by ID. Zero-valued
// input fields keep the stored value; GenreSlugs replaces the genre set
// when non-nil.
func (s *CatalogService) UpdateTitle(id string, input TitleInput) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		title.Name = input.Name
	}
	if input.Description != "" {
		title.Description = input.Description
	}
	if input.Year != 0 {
		title.Year = input.Year
	}
	if input.CategorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(input.CategorySlug)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUnknownCategory
			}
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = nil
	}
	if input.GenreSlugs != nil {
		genres, err := s.genreRepo.GetBySlugs(input.GenreSlugs)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUnknownGenre
			}
			return nil, err
		}
		title.Genres = genres
	}
	if err := s.titleRepo.Update(title); err != nil {
		return nil, fmt.Errorf("failed to update title %s: %w", id, err)
	}
	return s.titleRepo.GetByID(id)
}

// DeleteTitle deletes a title by ID; its reviews and their comments go with
// it.
func (s *CatalogService) DeleteTitle(id string) error {
	return s.titleRepo.Delete(id)
}

func (s *CatalogService) resolveTitleRefs(title *models.Title, input TitleInput) error {
	if input.CategorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(input.CategorySlug)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUnknownCategory
			}
			return err
		}
		title.CategoryID = &category.ID
	}
	if len(input.GenreSlugs) > 0 {
		genres, err := s.genreRepo.GetBySlugs(input.GenreSlugs)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUnknownGenre
			}
			return err
		}
		title.Genres = genres
	}
	return nil
}
