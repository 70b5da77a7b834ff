package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/freshcheck/api-go/apperrors"
	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/stores"
	"github.com/freshcheck/api-go/utils"
	"github.com/gin-gonic/gin"
)

const refreshTokenBytes = 32

type AuthController struct {
	Users           stores.UserStore
	RefreshTokens   stores.RefreshTokenStore
	Secret          []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         *models.User `json:"user"`
}

func NewAuthController(users stores.UserStore, refreshTokens stores.RefreshTokenStore, secret []byte, accessTTL, refreshTTL time.Duration) *AuthController {
	return &AuthController{
		Users:           users,
		RefreshTokens:   refreshTokens,
		Secret:          secret,
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}
}

// Login godoc
// @Summary Exchange email and password for a token pair
// @Tags auth
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email and password are required")
		return
	}

	user, err := ac.Users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			respondMessage(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(c, err)
		return
	}

	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		respondMessage(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	resp, err := ac.issueTokens(c, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (ac *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Refresh token is required")
		return
	}

	ctx := c.Request.Context()
	stored, err := ac.RefreshTokens.FindByHash(ctx, utils.HashRefreshToken(req.RefreshToken))
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			respondMessage(c, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		respondError(c, err)
		return
	}

	now := time.Now()
	if !stored.Active(now) {
		respondMessage(c, http.StatusUnauthorized, "Refresh token expired")
		return
	}

	revoked, err := ac.RefreshTokens.Revoke(ctx, stored.ID, now)
	if err != nil {
		respondError(c, err)
		return
	}
	if !revoked {
		respondMessage(c, http.StatusUnauthorized, "Refresh token expired")
		return
	}

	user, err := ac.Users.GetByID(ctx, stored.UserID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			respondMessage(c, http.StatusUnauthorized, "User not found")
			return
		}
		respondError(c, err)
		return
	}

	resp, err := ac.issueTokens(c, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes every refresh token of the caller.
func (ac *AuthController) Logout(c *gin.Context) {
	user := utils.GetUser(c)
	if err := ac.RefreshTokens.RevokeAllForUser(c.Request.Context(), user.UserID, time.Now()); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Logged out successfully")
}

func (ac *AuthController) Me(c *gin.Context) {
	claims := utils.GetUser(c)
	user, err := ac.Users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) issueTokens(c *gin.Context, user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role, ac.AccessTokenTTL, ac.Secret)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	raw, hash, err := utils.GenerateRefreshToken(refreshTokenBytes)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	err = ac.RefreshTokens.Create(c.Request.Context(), &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(ac.RefreshTokenTTL),
	})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:        accessToken,
		RefreshToken: raw,
		TokenType:    "Bearer",
		ExpiresIn:    int64(ac.AccessTokenTTL.Seconds()),
		User:         user,
	}, nil
}
