package services

import (
	"errors"
	"fmt"

	"kritika/internal/models"
	"kritika/internal/repositories"
)

// UserUpdate is a partial update of a user profile. Nil fields keep the
// stored value.
type UserUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

// UserService handles business logic for user administration and profile
// self-service.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// List retrieves users, optionally filtered by a username substring.
func (s *UserService) List(search string, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(search, limit, offset)
}

// GetByUsername retrieves one user by username.
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// Create creates a user on behalf of an admin. Unlike signup there is no
// idempotent path: any username or email collision is an error. The admin
// may set any role.
func (s *UserService) Create(user *models.User) error {
	if user.Username == models.ReservedUsername {
		return ErrReservedUsername
	}
	if err := s.checkCollisions(user.Username, user.Email, ""); err != nil {
		return err
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update applies a partial update to the user addressed by username on
// behalf of an admin; the role may change through this path.
func (s *UserService) Update(username string, update UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := s.applyUpdate(user, update); err != nil {
		return nil, err
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateSelf applies a partial update to the caller's own profile. The
// stored role is re-asserted after the update, so a role field in the
// payload is silently discarded; this privilege-escalation guard must stay.
func (s *UserService) UpdateSelf(user *models.User, update UserUpdate) (*models.User, error) {
	storedRole := user.Role
	if err := s.applyUpdate(user, update); err != nil {
		return nil, err
	}
	user.Role = storedRole
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user addressed by username; their reviews and comments
// cascade away.
func (s *UserService) Delete(username string) error {
	return s.userRepo.Delete(username)
}

// applyUpdate copies non-nil fields onto the user, rejecting a reserved or
// colliding username and a colliding email.
func (s *UserService) applyUpdate(user *models.User, update UserUpdate) error {
	newUsername := user.Username
	newEmail := user.Email
	if update.Username != nil {
		if *update.Username == models.ReservedUsername {
			return ErrReservedUsername
		}
		newUsername = *update.Username
	}
	if update.Email != nil {
		newEmail = *update.Email
	}
	if err := s.checkCollisions(newUsername, newEmail, user.ID); err != nil {
		return err
	}
	user.Username = newUsername
	user.Email = newEmail
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	return nil
}

// checkCollisions fails when the username or email belongs to an account
// other than selfID.
func (s *UserService) checkCollisions(username, email, selfID string) error {
	byEmail, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up email: %w", err)
	}
	if byEmail != nil && byEmail.ID != selfID {
		return ErrEmailTaken
	}
	byUsername, err := s.userRepo.GetByUsername(username)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up username: %w", err)
	}
	if byUsername != nil && byUsername.ID != selfID {
		return ErrUsernameTaken
	}
	return nil
}
