package repositories

import (
	"errors"
	"time"

	"blogapi/internal/apperr"
	"blogapi/internal/models"

	"gorm.io/gorm"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create inserts a new post. The store assigns the ID; the posting time
// defaults to now (UTC) when the caller did not set one.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if post.DatePosted.IsZero() {
		post.DatePosted = time.Now().UTC()
	}
	if err := r.db.Create(post).Error; err != nil {
		return storeErr(err, "failed to create post for user %s", post.UserID)
	}
	return nil
}

// GetByID retrieves a single post by its ID.
func (r *GORMPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post with ID %d not found", id)
		}
		return nil, apperr.Store(err, "failed to get post by ID %d", id)
	}
	return &post, nil
}

// Update persists all fields of an existing post row.
func (r *GORMPostRepository) Update(post *models.Post) error {
	res := r.db.Save(post)
	if res.Error != nil {
		return storeErr(res.Error, "failed to update post %d", post.ID)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post with ID %d not found for update", post.ID)
	}
	return nil
}

// Delete removes a post by its ID. Deleting a post that does not exist is
// treated as success so the operation stays idempotent.
func (r *GORMPostRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Post{}, "id = ?", id).Error; err != nil {
		return storeErr(err, "failed to delete post %d", id)
	}
	return nil
}

// GetAllNewestFirst retrieves every post ordered by posting time descending.
func (r *GORMPostRepository) GetAllNewestFirst() ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Order("date_posted DESC").Find(&posts).Error; err != nil {
		return nil, apperr.Store(err, "failed to list posts")
	}
	return posts, nil
}

// GetPage retrieves one page of posts, newest first, plus the total count.
func (r *GORMPostRepository) GetPage(page, perPage int) ([]models.Post, int64, error) {
	var total int64
	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, apperr.Store(err, "failed to count posts")
	}

	var posts []models.Post
	err := r.db.Order("date_posted DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error
	if err != nil {
		return nil, 0, apperr.Store(err, "failed to get page %d of posts", page)
	}
	return posts, total, nil
}
