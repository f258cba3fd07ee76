package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"socialfeed/errs"
	"socialfeed/middleware"
	"socialfeed/services"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Auth struct {
	identity *services.Identity
}

func NewAuth(identity *services.Identity) *Auth {
	return &Auth{identity: identity}
}

func (h *Auth) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username, email and password are required"})
		return
	}

	session, err := h.identity.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *Auth) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	session, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if errs.Is(err, errs.KindAuthentication) {
		// Bad credentials come back as 400 here, with a message that
		// never reveals whether the email exists.
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *Auth) Me(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	user, err := h.identity.UserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
