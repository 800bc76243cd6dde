package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"blogapi/internal/apperr"
	"blogapi/internal/images"
	"blogapi/internal/models"
	"blogapi/internal/repositories"
)

// AvatarUpload carries the raw bytes of an uploaded profile image along
// with the filename the client sent.
type AvatarUpload struct {
	Filename string
	Data     []byte
}

// AccountService handles business logic for user profiles.
type AccountService struct {
	userRepo  repositories.UserRepository
	uploadDir string
}

// NewAccountService creates a new AccountService. Avatar files are written
// under uploadDir.
func NewAccountService(userRepo repositories.UserRepository, uploadDir string) *AccountService {
	return &AccountService{
		userRepo:  userRepo,
		uploadDir: uploadDir,
	}
}

// GetAccount retrieves a user profile by ID.
func (s *AccountService) GetAccount(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateAccount applies changed profile fields and, when an avatar upload is
// present, converts it to JPEG, stores it, and points the profile at the
// saved file. Empty email/username inputs leave the current values alone.
func (s *AccountService) UpdateAccount(id, email, username string, avatar *AvatarUpload) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if email != "" && user.Email != email {
		user.Email = email
	}
	if username != "" && user.Username != username {
		user.Username = username
	}
	if avatar != nil {
		saved, err := s.saveAvatar(avatar)
		if err != nil {
			return nil, err
		}
		user.ImageFile = saved
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// saveAvatar re-encodes the upload as JPEG and writes it to the upload dir
// under the original filename with a .jpg suffix. Returns the saved name,
// which is what the profile records.
func (s *AccountService) saveAvatar(avatar *AvatarUpload) (string, error) {
	name := filepath.Base(avatar.Filename)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", apperr.Validation("invalid avatar filename %q", avatar.Filename)
	}

	encoded, format, err := images.ReencodeJPEG(avatar.Data)
	if err != nil {
		return "", apperr.Validation("uploaded file is not a decodable image: %v", err)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	saved := name + ".jpg"
	if err := os.WriteFile(filepath.Join(s.uploadDir, saved), encoded, 0o644); err != nil {
		return "", fmt.Errorf("failed to write avatar file: %w", err)
	}

	log.Printf("Saved %s avatar upload %q as %q", format, name, saved)
	return saved, nil
}
