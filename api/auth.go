package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/service/auth"
)

type AuthHandler struct {
	service    auth.AuthUseCase
	sessionTTL time.Duration
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type editProfileRequest struct {
	Email       string `json:"email" binding:"omitempty,email"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword" binding:"omitempty,min=6"`
}

type userResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    string `json:"role"`
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Surname: user.Surname,
		Role:    string(user.Role),
	}
}

func NewAuthHandler(service auth.AuthUseCase, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: service, sessionTTL: sessionTTL}
}

func (h *AuthHandler) Register(router *gin.RouterGroup, mw *Middleware) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.GET("/profile", mw.RequireAuth, h.profile)
	router.PUT("/profile/edit", mw.RequireAuth, h.editProfile)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user registered", "user": toUserResponse(user)})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(sessionCookie, sessionID, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "user": toUserResponse(user)})
}

func (h *AuthHandler) logout(c *gin.Context) {
	sessionID, err := c.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no active session"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

func (h *AuthHandler) profile(c *gin.Context) {
	user, err := h.service.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h *AuthHandler) editProfile(c *gin.Context) {
	var req editProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.EditProfile(c.Request.Context(), currentUserID(c), auth.EditProfileInput{
		Email:       req.Email,
		Name:        req.Name,
		Surname:     req.Surname,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "user": toUserResponse(user)})
}
