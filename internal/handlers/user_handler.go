package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-sense/internal/database"
	"retail-sense/internal/services"
)

// --- POST: /api/users ---
func CreateUser(c *gin.Context) {
	var input services.UserInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := services.CreateUser(c.Request.Context(), database.DB, input)
	if err != nil {
		fail(c, err, "Failed to create user")
		return
	}
	respond(c, http.StatusCreated, user, "User created successfully")
}

// --- GET: /api/users ---
func GetUsers(c *gin.Context) {
	users, err := services.ListUsers(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err, "Failed to fetch users")
		return
	}
	respond(c, http.StatusOK, users, "")
}

// --- GET: /api/users/:id ---
func GetUser(c *gin.Context) {
	user, err := services.GetUser(c.Request.Context(), database.DB, c.Param("id"))
	if err != nil {
		fail(c, err, "User not found")
		return
	}
	respond(c, http.StatusOK, user, "")
}

// --- PUT: /api/users/:id ---
func UpdateUser(c *gin.Context) {
	var input services.UserUpdate
	if !bindJSON(c, &input) {
		return
	}

	user, err := services.UpdateUser(c.Request.Context(), database.DB, c.Param("id"), input)
	if err != nil {
		fail(c, err, "User not found")
		return
	}
	respond(c, http.StatusOK, user, "User updated successfully")
}

// --- DELETE: /api/users/:id ---
func DeleteUser(c *gin.Context) {
	if err := services.DeleteUser(c.Request.Context(), database.DB, c.Param("id")); err != nil {
		fail(c, err, "User not found")
		return
	}
	respond(c, http.StatusOK, nil, "User deleted successfully")
}
