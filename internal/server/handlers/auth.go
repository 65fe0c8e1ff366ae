package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/auth"
	"github.com/Mangum87/Charis/internal/repository"
)

// AuthHandler exchanges credentials for session tokens.
type AuthHandler struct {
	users  *repository.UserRepository
	secret string
	logger *zap.Logger
}

// NewAuthHandler constructs the login adapter.
func NewAuthHandler(users *repository.UserRepository, secret string, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{users: users, secret: secret, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials against the User collection and returns a
// signed token. Inactive accounts cannot log in.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := h.users.GetUser(req.Username)
	if user == nil || !user.Active || !repository.CheckPassword(req.Password, user.Password) {
		h.logger.Warn("failed login", zap.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(h.secret, user)
	if err != nil {
		h.logger.Error("sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"admin":     user.Admin,
	})
}
