package repositories

import (
	"sort"
	"sync"
	"time"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// MockPostRepository is an in-memory implementation of PostRepository.
type MockPostRepository struct {
	posts  map[uint]models.Post
	nextID uint
	mu     sync.RWMutex
}

// NewMockPostRepository creates a new instance of MockPostRepository.
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		posts:  make(map[uint]models.Post),
		nextID: 1,
	}
}

// Create adds a new post, assigning the next sequential ID.
func (r *MockPostRepository) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == 0 {
		post.ID = r.nextID
		r.nextID++
	} else if post.ID >= r.nextID {
		r.nextID = post.ID + 1
	}
	if post.DatePosted.IsZero() {
		post.DatePosted = time.Now().UTC()
	}
	r.posts[post.ID] = *post
	return nil
}

// GetByID returns a post by its ID.
func (r *MockPostRepository) GetByID(id uint) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, apperr.NotFound("post with ID %d not found", id)
	}
	return &post, nil
}

// Update modifies an existing post.
func (r *MockPostRepository) Update(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; !ok {
		return apperr.NotFound("post with ID %d not found for update", post.ID)
	}
	r.posts[post.ID] = *post
	return nil
}

// Delete removes a post by its ID; a missing post is not an error.
func (r *MockPostRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.posts, id)
	return nil
}

// GetAllNewestFirst returns every post ordered by posting time descending.
func (r *MockPostRepository) GetAllNewestFirst() ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNewestFirst(), nil
}

// GetPage returns one page of posts, newest first, plus the total count.
func (r *MockPostRepository) GetPage(page, perPage int) ([]models.Post, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedNewestFirst()
	total := int64(len(all))

	start := (page - 1) * perPage
	if start >= len(all) {
		return []models.Post{}, total, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *MockPostRepository) sortedNewestFirst() []models.Post {
	postList := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		postList = append(postList, p)
	}
	sort.Slice(postList, func(i, j int) bool {
		return postList[i].DatePosted.After(postList[j].DatePosted)
	})
	return postList
}
