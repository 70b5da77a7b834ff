package controllers

import (
	"net/http"
	"testing"

	"github.com/freshcheck/api-go/apperrors"
	"github.com/freshcheck/api-go/mocks"
	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateUser(t *testing.T) {
	users := new(mocks.UserStore)
	uc := NewUserController(users)
	ctx, w := newTestContext(t, http.MethodPost, "/api/users",
		`{"name":" Ina ","email":"Ina@Hotel.com","password":"secret1","role":"INSPECTOR"}`, 1, models.RoleAdmin, "")

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Name == "Ina" && u.Email == "ina@hotel.com" && u.Role == models.RoleInspector &&
			utils.CheckPassword(u.Password, "secret1") == nil
	})).Return(nil)

	uc.CreateUser(ctx)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	users.AssertExpectations(t)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := new(mocks.UserStore)
	uc := NewUserController(users)
	ctx, w := newTestContext(t, http.MethodPost, "/api/users",
		`{"name":"Ina","email":"ina@hotel.com","password":"secret1","role":"INSPECTOR"}`, 1, models.RoleAdmin, "")
	users.On("Create", mock.Anything, mock.Anything).Return(apperrors.New(apperrors.KindConflict, "User already exists"))

	uc.CreateUser(ctx)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUserUnknownRole(t *testing.T) {
	users := new(mocks.UserStore)
	uc := NewUserController(users)
	ctx, w := newTestContext(t, http.MethodPost, "/api/users",
		`{"name":"Ina","email":"ina@hotel.com","password":"secret1","role":"CHEF"}`, 1, models.RoleAdmin, "")

	uc.CreateUser(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateUser(t *testing.T) {
	users := new(mocks.UserStore)
	uc := NewUserController(users)
	ctx, w := newTestContext(t, http.MethodPut, "/api/users/2", `{"role":"KITCHEN_MANAGER"}`, 1, models.RoleAdmin, "2")

	users.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Name: "Ina", Email: "ina@hotel.com", Role: models.RoleInspector}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleKitchenManager && u.Name == "Ina"
	})).Return(nil)

	uc.UpdateUser(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	users.AssertExpectations(t)
}

func TestDeleteUserSelf(t *testing.T) {
	users := new(mocks.UserStore)
	uc := NewUserController(users)
	ctx, w := newTestContext(t, http.MethodDelete, "/api/users/1", "", 1, models.RoleAdmin, "1")

	uc.DeleteUser(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteUserNotFound(t *testing.T) {
	users := new(mocks.UserStore)
	uc := NewUserController(users)
	ctx, w := newTestContext(t, http.MethodDelete, "/api/users/9", "", 1, models.RoleAdmin, "9")
	users.On("Delete", mock.Anything, uint(9)).Return(apperrors.NotFound("User"))

	uc.DeleteUser(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
