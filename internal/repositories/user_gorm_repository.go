package repositories

import (
	"errors"

	"blogapi/internal/apperr"
	"blogapi/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
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

// Create inserts a new user. IDs normally come from the caller; a uuid is
// filled in only when none was supplied.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.ImageFile == "" {
		user.ImageFile = "default.jpg"
	}
	if err := r.db.Create(user).Error; err != nil {
		return storeErr(err, "failed to create user %s", user.ID)
	}
	return nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user with ID %s not found", id)
		}
		return nil, apperr.Store(err, "failed to get user by ID %s", id)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user with username %s not found", username)
		}
		return nil, apperr.Store(err, "failed to get user by username %s", username)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user with email %s not found", email)
		}
		return nil, apperr.Store(err, "failed to get user by email %s", email)
	}
	return &user, nil
}

// Update persists all fields of an existing user row.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return storeErr(res.Error, "failed to update user %s", user.ID)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user with ID %s not found for update", user.ID)
	}
	return nil
}
