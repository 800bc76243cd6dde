package repositories

import (
	"sync"

	"blogapi/internal/apperr"
	"blogapi/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user, enforcing the same uniqueness the store would.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.ImageFile == "" {
		user.ImageFile = "default.jpg"
	}
	if _, ok := r.users[user.ID]; ok {
		return apperr.Conflict(nil, "user with ID %s already exists", user.ID)
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return apperr.Conflict(nil, "username %s already taken", user.Username)
		}
		if u.Email == user.Email {
			return apperr.Conflict(nil, "email %s already registered", user.Email)
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("user with ID %s not found", id)
	}
	return &user, nil
}

// GetByUsername returns a user by their username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, apperr.NotFound("user with username %s not found", username)
}

// GetByEmail returns a user by their email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperr.NotFound("user with email %s not found", email)
}

// Update modifies an existing user.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("user with ID %s not found for update", user.ID)
	}
	r.users[user.ID] = *user
	return nil
}
