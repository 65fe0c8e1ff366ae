package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/repository"
)

// UsersHandler exposes operator account administration.
type UsersHandler struct {
	users  *repository.UserRepository
	logger *zap.Logger
}

// NewUsersHandler constructs the user HTTP adapter.
func NewUsersHandler(users *repository.UserRepository, logger *zap.Logger) *UsersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UsersHandler{users: users, logger: logger}
}

type createUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
	Active    bool   `json:"active"`
}

type updateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
	Active    bool   `json:"active"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

// Create registers a new operator account.
func (h *UsersHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if h.users.GetUser(req.Username) != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username taken"})
		return
	}

	user := h.users.CreateUser(req.Username, req.Password, req.Admin, req.Active, req.FirstName, req.LastName)
	if user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user not saved"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"admin":     user.Admin,
		"active":    user.Active,
	})
}

// Update rewrites an account's fields, password excluded.
func (h *UsersHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := h.users.GetUser(c.Param("username"))
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Admin = req.Admin
	user.Active = req.Active
	if !h.users.UpdateUser(user) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user not updated"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangePassword sets a new password for an account. Admins may change
// anyone's; everyone else only their own.
func (h *UsersHandler) ChangePassword(c *gin.Context) {
	target := strings.ToLower(c.Param("username"))
	if !c.GetBool(ctxAdmin) && target != c.GetString(ctxUsername) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot change another user's password"})
		return
	}

	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	user := h.users.GetUser(target)
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user.Password = req.Password
	if !h.users.UpdatePassword(user) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password not updated"})
		return
	}
	c.Status(http.StatusNoContent)
}
