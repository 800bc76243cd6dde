package handlers

import (
	"io"
	"log"

	"blogapi/internal/serializers"
	"blogapi/internal/services"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v2"
)

var avatarUpdates = metrics.NewCounter(`blogapi_avatar_updates_total`)

// AccountHandler handles HTTP requests for user profiles.
type AccountHandler struct {
	service *services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{
		service: service,
	}
}

// RegisterRoutes registers the account routes with the Fiber app.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/account/:id", h.HandleGetAccount)
	router.Post("/account/:id", h.HandleUpdateAccount)
}

// HandleGetAccount fetches one user profile.
func (h *AccountHandler) HandleGetAccount(c *fiber.Ctx) error {
	id := c.Params("id")
	user, err := h.service.GetAccount(id)
	if err != nil {
		log.Printf("Error getting account %s: %v", id, err)
		return respondError(c, err, "Could not retrieve account")
	}
	return c.JSON(fiber.Map{
		"user": serializers.NewUserProfile(user),
	})
}

// HandleUpdateAccount updates email/username and, when a file field is
// present in the multipart form, replaces the avatar.
func (h *AccountHandler) HandleUpdateAccount(c *fiber.Ctx) error {
	id := c.Params("id")
	email := c.FormValue("email")
	userName := c.FormValue("userName")

	var avatar *services.AvatarUpload
	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("Error opening avatar upload for account %s: %v", id, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not read uploaded file",
				"error":   err.Error(),
			})
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			log.Printf("Error reading avatar upload for account %s: %v", id, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not read uploaded file",
				"error":   err.Error(),
			})
		}
		avatar = &services.AvatarUpload{
			Filename: fileHeader.Filename,
			Data:     data,
		}
	}

	if _, err := h.service.UpdateAccount(id, email, userName, avatar); err != nil {
		log.Printf("Error updating account %s: %v", id, err)
		return respondError(c, err, "Could not update account")
	}

	if avatar != nil {
		avatarUpdates.Inc()
	}
	// Legacy success body, typo included; existing clients match on it.
	return c.JSON("successs")
}
