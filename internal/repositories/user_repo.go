package repositories

import "kritika/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(search string, limit, offset int) ([]models.User, error)
	Update(user *models.User) error
	Delete(username string) error
}
