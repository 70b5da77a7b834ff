package utils

import (
	"github.com/freshcheck/api-go/models"
	"github.com/gin-gonic/gin"
)

// UserClaims is the identity resolved from a bearer token.
type UserClaims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
}

// HasRole reports whether the identity holds one of roles.
func (u *UserClaims) HasRole(roles ...models.Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

type contextKey string

const UserContextKey contextKey = "user"

// SetUser attaches the resolved identity to the request context.
func SetUser(c *gin.Context, claims *UserClaims) {
	c.Set(string(UserContextKey), claims)
}

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}
