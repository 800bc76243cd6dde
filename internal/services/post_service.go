package services

import (
	"log"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
	"blogapi/internal/repositories"
	"blogapi/internal/serializers"
	"blogapi/pkg/rabbitmq"
)

// EventPublisher publishes post lifecycle events. *rabbitmq.Client
// satisfies it; a nil publisher disables eventing.
type EventPublisher interface {
	PublishPostEvent(event rabbitmq.PostEvent) error
}

// PostService handles business logic related to posts.
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	events   EventPublisher
	pageSize int
}

// NewPostService creates a new PostService. events may be nil when no
// queue is configured; pageSize <= 0 falls back to 2.
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, events EventPublisher, pageSize int) *PostService {
	if pageSize <= 0 {
		pageSize = 2
	}
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		events:   events,
		pageSize: pageSize,
	}
}

// CreatePost stores a new post for the given author. The author id comes
// from the request header and must be present; the store's foreign key
// rejects unknown authors.
func (s *PostService) CreatePost(authorID, title, content string) (*models.Post, error) {
	if authorID == "" {
		return nil, apperr.Validation("author id is required")
	}

	post := &models.Post{
		Title:   title,
		Content: content,
		UserID:  authorID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	s.publish(rabbitmq.PostEvent{
		Action: "created",
		PostID: post.ID,
		UserID: post.UserID,
		Title:  post.Title,
	})
	return post, nil
}

// GetPost retrieves a single post joined with its author's username.
func (s *PostService) GetPost(id uint) (*serializers.PostDetail, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(post.UserID)
	if err != nil {
		return nil, err
	}
	detail := serializers.NewPostDetail(post, author.Username)
	return &detail, nil
}

// UpdatePost applies changed title/content fields and always persists the
// result. Empty inputs leave the current values alone.
func (s *PostService) UpdatePost(id uint, title, content string) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}

	if title != "" && post.Title != title {
		post.Title = title
	}
	if content != "" && post.Content != content {
		post.Content = content
	}
	return s.postRepo.Update(post)
}

// DeletePost removes a post. Deleting an id that does not exist is a
// success, so repeated deletes are safe.
func (s *PostService) DeletePost(id uint) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil
		}
		return err
	}

	if err := s.postRepo.Delete(id); err != nil {
		return err
	}

	s.publish(rabbitmq.PostEvent{
		Action: "deleted",
		PostID: post.ID,
		UserID: post.UserID,
		Title:  post.Title,
	})
	return nil
}

// ListPosts retrieves every post, newest first, annotated with the author's
// username.
func (s *PostService) ListPosts() ([]serializers.PostSummary, error) {
	posts, err := s.postRepo.GetAllNewestFirst()
	if err != nil {
		return nil, err
	}
	return s.withAuthors(posts)
}

// GetPage retrieves one page of posts, newest first, wrapped in the page
// envelope. Pages are 1-based; a page past the end of a non-empty table is
// not found.
func (s *PostService) GetPage(page int) (*serializers.PostPage, error) {
	if page < 1 {
		return nil, apperr.Validation("page must be at least 1, got %d", page)
	}

	posts, total, err := s.postRepo.GetPage(page, s.pageSize)
	if err != nil {
		return nil, err
	}

	// Page 1 is always servable, even when the table is empty; anything
	// past the last page is not found.
	totalPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	if page > 1 && page > totalPages {
		return nil, apperr.NotFound("page %d is out of range, only %d pages exist", page, totalPages)
	}

	summaries, err := s.withAuthors(posts)
	if err != nil {
		return nil, err
	}

	pages := make([]int, 0, totalPages)
	for n := 1; n <= totalPages; n++ {
		pages = append(pages, n)
	}

	return &serializers.PostPage{
		Posts:   summaries,
		PageNum: totalPages,
		Pages:   pages,
		Page:    page,
	}, nil
}

// withAuthors resolves each post's author username. Authors are looked up
// per post; the foreign key guarantees they exist.
func (s *PostService) withAuthors(posts []models.Post) ([]serializers.PostSummary, error) {
	summaries := make([]serializers.PostSummary, 0, len(posts))
	for i := range posts {
		author, err := s.userRepo.GetByID(posts[i].UserID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, serializers.NewPostSummary(&posts[i], author.Username))
	}
	return summaries, nil
}

// publish sends a post event when a publisher is configured. Event delivery
// is best-effort: a queue outage must not fail the write that triggered it.
func (s *PostService) publish(event rabbitmq.PostEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishPostEvent(event); err != nil {
		log.Printf("Failed to publish post event %s for post %d: %v", event.Action, event.PostID, err)
	}
}
