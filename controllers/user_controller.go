package controllers

import (
	"net/http"
	"strings"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/stores"
	"github.com/freshcheck/api-go/utils"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users stores.UserStore
}

type CreateUserRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     models.Role `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Name     *string      `json:"name"`
	Email    *string      `json:"email" binding:"omitempty,email"`
	Password *string      `json:"password" binding:"omitempty,min=6"`
	Role     *models.Role `json:"role"`
}

func NewUserController(users stores.UserStore) *UserController {
	return &UserController{Users: users}
}

func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Name, a valid email, a password of at least 6 characters and a role are required")
		return
	}
	if !req.Role.Valid() {
		badRequest(c, "Unknown role")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respondMessage(c, http.StatusInternalServerError, "Could not hash password")
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		Role:     req.Role,
	}
	if err := uc.Users.Create(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := uc.Users.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			badRequest(c, "Unknown role")
			return
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			respondMessage(c, http.StatusInternalServerError, "Could not hash password")
			return
		}
		user.Password = hashed
	}

	if err := uc.Users.Update(ctx, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid user id")
		return
	}
	if caller := utils.GetUser(c); caller != nil && caller.UserID == id {
		badRequest(c, "You cannot delete your own account")
		return
	}

	if err := uc.Users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User deleted successfully")
}
