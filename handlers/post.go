package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"socialfeed/middleware"
	"socialfeed/services"
)

// ImageUploader pushes an uploaded image to external storage and
// returns the URL to persist on the post.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}

type CreatePostRequest struct {
	Text  string `json:"text" binding:"required"`
	Image string `json:"image"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type Posts struct {
	posts    *services.Posts
	uploader ImageUploader // nil when image uploads are not configured
}

func NewPosts(posts *services.Posts, uploader ImageUploader) *Posts {
	return &Posts{posts: posts, uploader: uploader}
}

// Create accepts either a JSON body {text, image?} or multipart form
// data with a "text" field and an optional "image" file that is
// uploaded to the storage provider first.
func (h *Posts) Create(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	var text, image string

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		text = c.PostForm("text")

		file, header, err := c.Request.FormFile("image")
		if err == nil {
			defer file.Close()

			mimeType := header.Header.Get("Content-Type")
			if mimeType != "image/jpeg" && mimeType != "image/png" {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Only JPEG and PNG images are allowed"})
				return
			}
			if h.uploader == nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Image uploads are not configured"})
				return
			}

			url, err := h.uploader.Upload(c.Request.Context(), file)
			if err != nil {
				writeError(c, err)
				return
			}
			image = url
		}
	} else {
		var req CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Text is required"})
			return
		}
		text = req.Text
		image = req.Image
	}

	post, err := h.posts.Create(c.Request.Context(), claims.UserID, text, image)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Posts) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Posts) Get(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	post, err := h.posts.Get(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Posts) Like(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	post, err := h.posts.Like(c.Request.Context(), postID, claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Posts) Comment(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Text is required"})
		return
	}

	post, err := h.posts.Comment(c.Request.Context(), postID, claims.UserID, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}
