package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/inventory-api/internal/config"
	"github.com/BruksfildServices01/inventory-api/internal/httperr"
)

type AuthHandler struct {
	config       *config.Config
	username     string
	passwordHash []byte
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	// The configured demo password is hashed once at startup so the login
	// check is a constant-time comparison.
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	return &AuthHandler{
		config:       cfg,
		username:     cfg.AdminUsername,
		passwordHash: hash,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Username and password are required.")
		return
	}

	if req.Username != h.username ||
		bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	token, err := h.generateToken(req.Username)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(1 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
