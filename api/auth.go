package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vertexcare/clinicbook/internal/domain"
	"github.com/vertexcare/clinicbook/internal/service/auth"
)

type AuthHandler struct {
	authority  auth.SessionAuthority
	cookieName string
	cookieTTL  time.Duration
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthHandler(authority auth.SessionAuthority, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authority: authority, cookieName: cookieName, cookieTTL: cookieTTL}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	session, err := h.authority.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		log.Printf("login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	// Secure stays false: TLS is terminated upstream when present.
	c.SetCookie(h.cookieName, session.Token, int(h.cookieTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

func (h *AuthHandler) logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)
	if err := h.authority.Invalidate(c.Request.Context(), token); err != nil {
		log.Printf("logout error: %v", err)
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
