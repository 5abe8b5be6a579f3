package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kritika/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	return r.getOne("id = ?", id)
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getOne("username = ?", username)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getOne("email = ?", email)
}

func (r *GORMUserRepository) getOne(query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// List retrieves users ordered by username, optionally filtered by a
// username substring.
func (r *GORMUserRepository) List(search string, limit, offset int) ([]models.User, error) {
	var users []models.User
	q := r.db.Order("username")
	if search != "" {
		q = q.Where("username LIKE ?", "%"+search+"%")
	}
	if err := q.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update persists all fields of an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user by username. The delete is unscoped so the foreign
// key constraints cascade to the user's reviews and comments.
func (r *GORMUserRepository) Delete(username string) error {
	res := r.db.Unscoped().Delete(&models.User{}, "username = ?", username)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
