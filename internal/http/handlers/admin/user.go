package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/repository"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateUserRequest 管理端更新用户请求
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize, 10)

	users, total, err := h.UserService.ListUsers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("q")),
		Role:     strings.TrimSpace(c.Query("role")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list users", err)
		return
	}

	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}

// GetUser 用户详情
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := h.UserService.GetProfile(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to get user", err)
		return
	}

	response.Success(c, user)
}

// UpdateUser 更新用户昵称与角色，角色只接受 user/admin
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserService.UpdateUser(id, req.Name, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "user not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeBadRequest, "invalid role", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update user", err)
		}
		return
	}

	response.SuccessWithMsg(c, "user updated", user)
}

// DeleteUser 删除用户
func (h *Handler) DeleteUser(c *gin.Context) {
	uid, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if id == uid {
		respondError(c, response.CodeBadRequest, "cannot delete yourself", nil)
		return
	}

	if err := h.UserService.DeleteUser(id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to delete user", err)
		return
	}

	response.SuccessWithMsg(c, "user deleted", nil)
}
