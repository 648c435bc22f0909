package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"optifuel/api/internal/apperr"
	"optifuel/api/internal/model"
	"optifuel/api/internal/service"
)

// AuthService is the account API used by AuthHandler
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// TokenParser verifies access tokens
type TokenParser interface {
	Parse(token string) (*service.TokenClaims, error)
}

// AuthHandler handles account requests and guards protected routes
type AuthHandler struct {
	auth   AuthService
	tokens TokenParser
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService, tokens TokenParser) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens}
}

// Register creates an account
// @Summary Register
// @Description Create an account. Passwords need 8 characters with a digit, a lowercase and an uppercase letter.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Account"
// @Success 201 {object} model.User
// @Failure 400 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for an access token
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Credentials"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMe returns the current account
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), getOwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the owner id
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if header == "" || !found || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		ownerID, err := h.authenticate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperr.MessageOf(err)})
			return
		}

		c.Set(ownerKey, ownerID)
		c.Next()
	}
}

func (h *AuthHandler) authenticate(token string) (uint, error) {
	claims, err := h.tokens.Parse(token)
	if err != nil {
		return 0, err
	}
	return claims.OwnerID()
}
