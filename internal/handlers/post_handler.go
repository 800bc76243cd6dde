package handlers

import (
	"log"

	"blogapi/internal/apperr"
	"blogapi/internal/services"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v2"
)

var (
	postsCreated = metrics.NewCounter(`blogapi_posts_created_total`)
	postsUpdated = metrics.NewCounter(`blogapi_posts_updated_total`)
	postsDeleted = metrics.NewCounter(`blogapi_posts_deleted_total`)
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service *services.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service *services.PostService) *PostHandler {
	return &PostHandler{
		service: service,
	}
}

// RegisterRoutes registers the post routes with the Fiber app.
func (h *PostHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/posts", h.HandleListPosts)
	router.Post("/new_post", h.HandleCreatePost)
	router.Get("/get_post/:post_id", h.HandleGetPost)
	router.Put("/update_post/:post_id", h.HandleUpdatePost)
	router.Delete("/delete_post/:post_id", h.HandleDeletePost)
	router.Get("/get_posts/:page_id", h.HandleGetPage)
}

// postBody is the request body for creating and updating posts. Clients
// send either a form or JSON.
type postBody struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// HandleListPosts returns every post, newest first, with resolved author
// usernames.
func (h *PostHandler) HandleListPosts(c *fiber.Ctx) error {
	posts, err := h.service.ListPosts()
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		return respondError(c, err, "Could not retrieve posts")
	}
	return c.JSON(posts)
}

// HandleCreatePost creates a post. The author id travels in the "id"
// request header.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	authorID := c.Get("id")

	var body postBody
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing create post body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := h.service.CreatePost(authorID, body.Title, body.Content); err != nil {
		log.Printf("Error creating post for author %q: %v", authorID, err)
		return respondError(c, err, "Could not create post")
	}

	postsCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"response": "success",
	})
}

// HandleGetPost fetches one post joined with its author's username.
func (h *PostHandler) HandleGetPost(c *fiber.Ctx) error {
	postID, err := h.paramID(c, "post_id")
	if err != nil {
		return respondError(c, err, "Invalid post id")
	}

	post, err := h.service.GetPost(postID)
	if err != nil {
		log.Printf("Error getting post %d: %v", postID, err)
		return respondError(c, err, "Could not retrieve post")
	}
	return c.JSON(post)
}

// HandleUpdatePost edits a post's title and/or content.
func (h *PostHandler) HandleUpdatePost(c *fiber.Ctx) error {
	postID, err := h.paramID(c, "post_id")
	if err != nil {
		return respondError(c, err, "Invalid post id")
	}

	var body postBody
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing update post body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpdatePost(postID, body.Title, body.Content); err != nil {
		log.Printf("Error updating post %d: %v", postID, err)
		return respondError(c, err, "Could not update post")
	}

	postsUpdated.Inc()
	return c.JSON("success")
}

// HandleDeletePost removes a post. Deleting an unknown id succeeds with the
// same body as a real delete.
func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	postID, err := h.paramID(c, "post_id")
	if err != nil {
		return respondError(c, err, "Invalid post id")
	}

	if err := h.service.DeletePost(postID); err != nil {
		log.Printf("Error deleting post %d: %v", postID, err)
		return respondError(c, err, "Could not delete post")
	}

	postsDeleted.Inc()
	return c.JSON("success")
}

// HandleGetPage returns one page of posts in the page envelope.
func (h *PostHandler) HandleGetPage(c *fiber.Ctx) error {
	page, err := h.paramID(c, "page_id")
	if err != nil {
		return respondError(c, err, "Invalid page number")
	}

	postPage, err := h.service.GetPage(int(page))
	if err != nil {
		log.Printf("Error getting post page %d: %v", page, err)
		return respondError(c, err, "Could not retrieve posts page")
	}
	return c.JSON(postPage)
}

// paramID parses a positive integer path parameter.
func (h *PostHandler) paramID(c *fiber.Ctx, name string) (uint, error) {
	v, err := c.ParamsInt(name)
	if err != nil || v < 1 {
		return 0, apperr.Validation("%s must be a positive integer, got %q", name, c.Params(name))
	}
	return uint(v), nil
}
