package services_test

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
	"blogapi/internal/repositories"
	"blogapi/internal/services"

	"github.com/stretchr/testify/assert"
)

func seedUser(t *testing.T) *repositories.MockUserRepository {
	t.Helper()
	userRepo := repositories.NewMockUserRepository()
	assert.NoError(t, userRepo.Create(&models.User{
		ID:       "1",
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw",
	}))
	return userRepo
}

// pngBytes renders a tiny valid PNG for upload tests.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAccountService_GetAccount(t *testing.T) {
	service := services.NewAccountService(seedUser(t), t.TempDir())

	user, err := service.GetAccount("1")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "default.jpg", user.ImageFile)

	_, err = service.GetAccount("nope")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAccountService_UpdateAccount_Fields(t *testing.T) {
	userRepo := seedUser(t)
	service := services.NewAccountService(userRepo, t.TempDir())

	user, err := service.UpdateAccount("1", "new@x.com", "alice2", nil)
	assert.NoError(t, err)
	assert.Equal(t, "new@x.com", user.Email)
	assert.Equal(t, "alice2", user.Username)

	// Empty inputs leave the stored values alone.
	user, err = service.UpdateAccount("1", "", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, "new@x.com", user.Email)
	assert.Equal(t, "alice2", user.Username)

	stored, err := userRepo.GetByID("1")
	assert.NoError(t, err)
	assert.Equal(t, "new@x.com", stored.Email)
}

func TestAccountService_UpdateAccount_Avatar(t *testing.T) {
	userRepo := seedUser(t)
	uploadDir := t.TempDir()
	service := services.NewAccountService(userRepo, uploadDir)

	user, err := service.UpdateAccount("1", "", "", &services.AvatarUpload{
		Filename: "me.png",
		Data:     pngBytes(t),
	})
	assert.NoError(t, err)
	// The profile records the name of the file actually written.
	assert.Equal(t, "me.png.jpg", user.ImageFile)

	data, err := os.ReadFile(filepath.Join(uploadDir, "me.png.jpg"))
	assert.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestAccountService_UpdateAccount_BadImage(t *testing.T) {
	service := services.NewAccountService(seedUser(t), t.TempDir())

	_, err := service.UpdateAccount("1", "", "", &services.AvatarUpload{
		Filename: "notes.txt",
		Data:     []byte("not an image"),
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// The failed upload must not have touched the profile.
	user, err := service.GetAccount("1")
	assert.NoError(t, err)
	assert.Equal(t, "default.jpg", user.ImageFile)
}

func TestAccountService_UpdateAccount_MissingUser(t *testing.T) {
	service := services.NewAccountService(repositories.NewMockUserRepository(), t.TempDir())

	_, err := service.UpdateAccount("ghost", "g@x.com", "ghost", nil)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
