package services

import (
	"strings"
	"time"

	"github.com/wishlane/wishlane/internal/models"
	"github.com/wishlane/wishlane/internal/security"
	"github.com/wishlane/wishlane/internal/storage"
	"github.com/wishlane/wishlane/pkg/errors"
	"github.com/wishlane/wishlane/pkg/logger"
)

// RegistrationInput carries the fields needed to open an account.
type RegistrationInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries optional profile changes; empty fields are left
// untouched.
type ProfileUpdate struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Birthday  *time.Time `json:"birthday"`
}

type UserService struct {
	users     UserStore
	blobs     storage.BlobStore
	jwtSecret string
}

func NewUserService(users UserStore, blobs storage.BlobStore, jwtSecret string) *UserService {
	return &UserService{
		users:     users,
		blobs:     blobs,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(input *RegistrationInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" {
		return nil, errors.New(errors.ErrCodeValidation, "username and email are required")
	}
	if len(input.Password) < 8 {
		return nil, errors.New(errors.ErrCodeValidation, "password must be at least 8 characters")
	}

	taken, err := s.users.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.New(errors.ErrCodeAlreadyExists, "username is already taken")
	}

	taken, err = s.users.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.New(errors.ErrCodeAlreadyExists, "email is already in use")
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to hash password")
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}

	logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate verifies credentials and issues a JWT.
func (s *UserService) Authenticate(username, password string) (string, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		// Same answer for a missing user and a bad password.
		return "", errors.New(errors.ErrCodeUnauthorized, "invalid username or password")
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return "", errors.New(errors.ErrCodeUnauthorized, "invalid username or password")
	}

	token, err := security.GenerateJWT(user.ID, user.Username, s.jwtSecret)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to issue token")
	}

	return token, nil
}

// GetProfile returns the public profile for a username.
func (s *UserService) GetProfile(username string) (*FriendProfile, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	profile := profileOf(user)
	return &profile, nil
}

// GetByID returns the full user record for an authenticated principal.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.users.GetByID(id)
}

// UpdateProfile applies non-empty changes to the caller's profile.
func (s *UserService) UpdateProfile(userID uint, update *ProfileUpdate) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != "" {
		user.FirstName = security.SanitizeHTML(security.SanitizeString(update.FirstName))
	}
	if update.LastName != "" {
		user.LastName = security.SanitizeHTML(security.SanitizeString(update.LastName))
	}
	if update.Birthday != nil {
		if update.Birthday.After(time.Now()) {
			return nil, errors.New(errors.ErrCodeValidation, "birthday cannot be in the future")
		}
		user.Birthday = update.Birthday
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	return user, nil
}

// UploadAvatar stores a new avatar blob and replaces the previous one.
func (s *UserService) UploadAvatar(userID uint, data []byte, contentType string) (*models.User, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "file is empty")
	}
	if !security.ValidateImageContentType(contentType) {
		return nil, errors.New(errors.ErrCodeValidation, "only image files allowed")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	url, key, err := s.blobs.Upload(data, contentType, "avatars")
	if err != nil {
		return nil, err
	}

	oldKey := user.AvatarKey
	user.AvatarURL = url
	user.AvatarKey = key

	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	if oldKey != "" {
		if err := s.blobs.Remove(oldKey); err != nil {
			logger.Warn("Failed to remove old avatar blob", "key", oldKey, "error", err)
		}
	}

	return user, nil
}

// DeleteAvatar clears the caller's avatar. A user without one is a no-op.
func (s *UserService) DeleteAvatar(userID uint) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}

	if user.AvatarKey == "" && user.AvatarURL == "" {
		return nil
	}

	key := user.AvatarKey
	user.AvatarURL = ""
	user.AvatarKey = ""

	if err := s.users.Save(user); err != nil {
		return err
	}

	if key != "" {
		if err := s.blobs.Remove(key); err != nil {
			logger.Warn("Failed to remove avatar blob", "key", key, "error", err)
		}
	}

	return nil
}
