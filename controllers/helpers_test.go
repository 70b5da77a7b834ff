package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/utils"
	"github.com/gin-gonic/gin"
)

// newTestContext builds a gin context for a request made by a caller with role.
// id, when non-empty, is set as the :id path parameter.
func newTestContext(t *testing.T, method, target, body string, userID uint, role models.Role, id string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req

	if id != "" {
		ctx.Params = gin.Params{{Key: "id", Value: id}}
	}
	if userID != 0 {
		utils.SetUser(ctx, &utils.UserClaims{UserID: userID, Role: role})
	}
	return ctx, w
}
