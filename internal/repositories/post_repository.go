package repositories

import "blogapi/internal/models"

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	Update(post *models.Post) error
	// Delete is idempotent: removing an absent post is not an error.
	Delete(id uint) error
	GetAllNewestFirst() ([]models.Post, error)
	// GetPage returns one page of posts, newest first, along with the
	// total number of posts in the table. Pages are 1-based.
	GetPage(page, perPage int) ([]models.Post, int64, error)
}
