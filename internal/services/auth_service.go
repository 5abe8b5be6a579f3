package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"

	"kritika/internal/models"
	"kritika/internal/repositories"
	"kritika/pkg/mailer"
)

const confirmationSubject = "Confirmation code"

// AuthService handles registration, confirmation codes and access tokens.
type AuthService struct {
	userRepo     repositories.UserRepository
	mailer       mailer.Mailer
	jwtSecret    []byte
	codeSecret   []byte
	tokenDurat   time.Duration // Duration for which JWT is valid
	fromEmail    string
	failSilently bool // suppress mail transport errors on signup
}

// NewAuthService creates a new AuthService. jwtSecret signs access tokens;
// codeSecret keys the confirmation-code HMAC. When failSilently is true a
// broken mail transport does not fail registration.
func NewAuthService(userRepo repositories.UserRepository, m mailer.Mailer,
	jwtSecret, codeSecret, fromEmail string, failSilently bool) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		mailer:       m,
		jwtSecret:    []byte(jwtSecret),
		codeSecret:   []byte(codeSecret),
		tokenDurat:   24 * time.Hour, // Token valid for 24 hours
		fromEmail:    fromEmail,
		failSilently: failSilently,
	}
}

// Signup registers a user (or re-registers an existing one) and emails a
// fresh confirmation code. The (username, email) pair is checked jointly:
// an exact match on an existing account is idempotent re-registration, a
// collision on only one of the two fields is an error.
func (s *AuthService) Signup(username, email string) (*models.User, error) {
	if username == models.ReservedUsername {
		return nil, ErrReservedUsername
	}

	byUsername, err := s.userRepo.GetByUsername(username)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	byEmail, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	var user *models.User
	switch {
	case byUsername != nil && byUsername.Email == email:
		// Same account registering again: regenerate the code, no error.
		user = byUsername
	case byEmail != nil:
		return nil, ErrEmailTaken
	case byUsername != nil:
		return nil, ErrUsernameTaken
	default:
		user = &models.User{Username: username, Email: email, Role: models.RoleUser}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to register user: %w", err)
		}
	}

	code, err := s.generateConfirmationCode(user)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.Send(confirmationSubject, code, s.fromEmail, []string{user.Email}); err != nil {
		if !s.failSilently {
			return nil, fmt.Errorf("failed to send confirmation code: %w", err)
		}
		log.Printf("Suppressed mail transport error for %s: %v", user.Username, err)
	}

	return user, nil
}

// IssueToken exchanges a valid confirmation code for a signed access token.
// The code is single use: issuing a token stamps LastLogin, which changes
// the fingerprint the code was computed over.
func (s *AuthService) IssueToken(username, code string) (string, error) {
	if username == models.ReservedUsername {
		return "", ErrReservedUsername
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", repositories.ErrNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.checkConfirmationCode(user, code) {
		return "", ErrInvalidConfirmationCode
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	// Consume the code.
	user.LastLogin = time.Now().UTC().Truncate(time.Second)
	if err := s.userRepo.Update(user); err != nil {
		return "", fmt.Errorf("failed to record login: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// generateConfirmationCode stamps CodeIssuedAt and derives the code from
// the new state, so only the most recently issued code verifies.
func (s *AuthService) generateConfirmationCode(user *models.User) (string, error) {
	user.CodeIssuedAt = time.Now().UTC().Truncate(time.Second)
	if err := s.userRepo.Update(user); err != nil {
		return "", fmt.Errorf("failed to stamp confirmation code: %w", err)
	}
	return s.confirmationCode(user), nil
}

// confirmationCode computes the HMAC of the user's mutable fingerprint.
// Editing the username, email or role, logging in, or requesting a new code
// all change the fingerprint and invalidate outstanding codes.
func (s *AuthService) confirmationCode(user *models.User) string {
	mac := hmac.New(sha256.New, s.codeSecret)
	fmt.Fprintf(mac, "%s|%s|%s|%s|%d|%d",
		user.ID, user.Username, user.Email, user.Role,
		user.LastLogin.Unix(), user.CodeIssuedAt.Unix())
	return hex.EncodeToString(mac.Sum(nil)[:16])
}

func (s *AuthService) checkConfirmationCode(user *models.User, code string) bool {
	return hmac.Equal([]byte(s.confirmationCode(user)), []byte(code))
}
