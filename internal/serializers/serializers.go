// Package serializers maps store records onto the wire shapes the API
// exposes. Each endpoint gets exactly one explicit shape; the password
// column has no representation here at all.
package serializers

import (
	"time"

	"blogapi/internal/models"
)

// UserProfile is the public view of a user account.
type UserProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	ImageFile string `json:"image_file"`
}

// NewUserProfile builds the profile view of a user record.
func NewUserProfile(u *models.User) UserProfile {
	return UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		ImageFile: u.ImageFile,
	}
}

// PostSummary is a post as it appears in list and page responses,
// annotated with the resolved author username.
type PostSummary struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	DatePosted time.Time `json:"date_posted"`
	UserName   string    `json:"user_name"`
}

// NewPostSummary builds the list view of a post with its author's username.
func NewPostSummary(p *models.Post, username string) PostSummary {
	return PostSummary{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		DatePosted: p.DatePosted,
		UserName:   username,
	}
}

// PostDetail is the single-post view; it additionally carries the author id.
type PostDetail struct {
	PostSummary
	UserID string `json:"user_id"`
}

// NewPostDetail builds the detail view of a post.
func NewPostDetail(p *models.Post, username string) PostDetail {
	return PostDetail{
		PostSummary: NewPostSummary(p, username),
		UserID:      p.UserID,
	}
}

// PostPage is the envelope for a paginated listing. PageNum reports the
// total number of pages, Pages every valid page number, Page the page
// actually served.
type PostPage struct {
	Posts   []PostSummary `json:"posts"`
	PageNum int           `json:"page_num"`
	Pages   []int         `json:"pages"`
	Page    int           `json:"page"`
}
