package repositories_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"blogapi/internal/apperr"
	"blogapi/internal/database"
	"blogapi/internal/models"
	"blogapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// openTestDB opens a fresh in-memory sqlite database for one test, through
// the same path production uses so foreign keys are enforced.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(context.Background(), "sqlite", dsn)
	assert.NoError(t, err)
	assert.NoError(t, database.Migrate(db))
	return db
}

func TestGORMUserRepository_UniqueConstraints(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	assert.NoError(t, repo.Create(&models.User{
		ID: "1", Username: "alice", Email: "a@x.com", Password: "pw",
	}))

	// Duplicate username surfaces as a conflict, not a generic store fault.
	err := repo.Create(&models.User{
		ID: "2", Username: "alice", Email: "b@x.com", Password: "pw",
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	err = repo.Create(&models.User{
		ID: "3", Username: "carol", Email: "a@x.com", Password: "pw",
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestGORMUserRepository_GetAndUpdate(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	assert.NoError(t, repo.Create(&models.User{
		ID: "1", Username: "alice", Email: "a@x.com", Password: "pw",
	}))

	user, err := repo.GetByID("1")
	assert.NoError(t, err)
	assert.Equal(t, "default.jpg", user.ImageFile)

	user.Email = "new@x.com"
	assert.NoError(t, repo.Update(user))

	byEmail, err := repo.GetByEmail("new@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "1", byEmail.ID)

	byName, err := repo.GetByUsername("alice")
	assert.NoError(t, err)
	assert.Equal(t, "new@x.com", byName.Email)

	_, err = repo.GetByID("missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// A post referencing a user that does not exist must be rejected on every
// pooled connection, not just the first one.
func TestGORMPostRepository_RejectsUnknownAuthor(t *testing.T) {
	posts := repositories.NewGORMPostRepository(openTestDB(t))

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- posts.Create(&models.Post{
				Title:   fmt.Sprintf("orphan %d", i),
				Content: "body",
				UserID:  "ghost",
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	}
}

func TestGORMPostRepository_CreateDefaultsDatePosted(t *testing.T) {
	db := openTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	posts := repositories.NewGORMPostRepository(db)

	assert.NoError(t, users.Create(&models.User{
		ID: "1", Username: "alice", Email: "a@x.com", Password: "pw",
	}))

	post := &models.Post{Title: "T", Content: "C", UserID: "1"}
	assert.NoError(t, posts.Create(post))
	assert.NotZero(t, post.ID)
	assert.False(t, post.DatePosted.IsZero())
}

func TestGORMPostRepository_OrderingAndPaging(t *testing.T) {
	db := openTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	posts := repositories.NewGORMPostRepository(db)

	assert.NoError(t, users.Create(&models.User{
		ID: "1", Username: "alice", Email: "a@x.com", Password: "pw",
	}))

	base := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		assert.NoError(t, posts.Create(&models.Post{
			Title:      fmt.Sprintf("post %d", i),
			Content:    "body",
			DatePosted: base.Add(time.Duration(i) * time.Hour),
			UserID:     "1",
		}))
	}

	all, err := posts.GetAllNewestFirst()
	assert.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, "post 4", all[0].Title)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].DatePosted.After(all[i-1].DatePosted))
	}

	page1, total, err := posts.GetPage(1, 2)
	assert.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page1, 2)
	assert.Equal(t, "post 4", page1[0].Title)

	page3, _, err := posts.GetPage(3, 2)
	assert.NoError(t, err)
	assert.Len(t, page3, 1)
	assert.Equal(t, "post 0", page3[0].Title)
}

func TestGORMPostRepository_DeleteIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	posts := repositories.NewGORMPostRepository(db)

	assert.NoError(t, users.Create(&models.User{
		ID: "1", Username: "alice", Email: "a@x.com", Password: "pw",
	}))
	post := &models.Post{Title: "T", Content: "C", UserID: "1"}
	assert.NoError(t, posts.Create(post))

	assert.NoError(t, posts.Delete(post.ID))
	assert.NoError(t, posts.Delete(post.ID)) // second delete is a no-op

	_, err := posts.GetByID(post.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGORMPostRepository_UpdatePersistsTitleOnlyChange(t *testing.T) {
	db := openTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	posts := repositories.NewGORMPostRepository(db)

	assert.NoError(t, users.Create(&models.User{
		ID: "1", Username: "alice", Email: "a@x.com", Password: "pw",
	}))
	post := &models.Post{Title: "old", Content: "C", UserID: "1"}
	assert.NoError(t, posts.Create(post))

	post.Title = "new"
	assert.NoError(t, posts.Update(post))

	stored, err := posts.GetByID(post.ID)
	assert.NoError(t, err)
	assert.Equal(t, "new", stored.Title)
	assert.Equal(t, "C", stored.Content)
}
