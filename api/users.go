package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/service/users"
)

type UserHandler struct {
	service users.UserUseCase
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup, mw *Middleware) {
	router.GET("/users", mw.RequireAuth, mw.RequireRole(domain.RoleAdmin), h.list)
	router.PUT("/users/:id/role", mw.RequireAuth, mw.RequireRole(domain.RoleAdmin), h.updateRole)
}

func (h *UserHandler) list(c *gin.Context) {
	filter := domain.UserFilter{
		Email:   c.Query("email"),
		Name:    c.Query("name"),
		Surname: c.Query("surname"),
		Role:    domain.Role(c.Query("role")),
	}
	page, err := pageQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, total, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]userResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(&u))
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       out,
		"currentPage": page.Number,
		"totalPages":  page.TotalPages(total),
		"totalUsers":  total,
	})
}

func (h *UserHandler) updateRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), id, domain.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role updated", "user": toUserResponse(user)})
}
