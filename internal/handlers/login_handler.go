package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-sense/internal/auth"
	"retail-sense/internal/database"
	"retail-sense/internal/models"
	"retail-sense/internal/services"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// allowAdminSignup is set from ALLOW_ADMIN_SIGNUP by RegisterRoutes.
var allowAdminSignup bool

// --- POST: /api/auth/signin ---
func SignIn(c *gin.Context) {
	var input LoginRequest
	if !bindJSON(c, &input) {
		return
	}

	user, err := services.Authenticate(c.Request.Context(), database.DB, input.Email, input.Password)
	if err != nil {
		fail(c, err, "Failed to sign in")
		return
	}

	token, expiresAt, err := auth.GenerateToken(user.UserID, user.Email, user.Role)
	if err != nil {
		fail(c, err, "Failed to generate token")
		return
	}

	respond(c, http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt,
		"user":      user,
	}, "Signed in successfully")
}

// --- POST: /api/auth/signup ---
// Signup creates customers. An admin role is honoured only when
// ALLOW_ADMIN_SIGNUP is on.
func SignUp(c *gin.Context) {
	var input services.UserInput
	if !bindJSON(c, &input) {
		return
	}
	if !allowAdminSignup {
		input.Role = models.RoleCustomer
	}

	user, err := services.CreateUser(c.Request.Context(), database.DB, input)
	if err != nil {
		fail(c, err, "Failed to sign up")
		return
	}
	respond(c, http.StatusCreated, user, "User created successfully")
}
