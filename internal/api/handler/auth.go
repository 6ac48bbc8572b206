package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fitforge/gym_go_server/internal/api/middleware"
	"github.com/fitforge/gym_go_server/internal/model/dto"
	"github.com/fitforge/gym_go_server/internal/pkg/response"
	"github.com/fitforge/gym_go_server/internal/service"
)

type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 管理员注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	resp, err := h.authSvc.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "注册成功", resp)
}

// Login 管理员登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	resp, err := h.authSvc.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			response.AuthError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, resp)
}

// Profile 当前登录员工信息
func (h *AuthHandler) Profile(c *gin.Context) {
	staffID := middleware.GetStaffID(c)

	info, err := h.authSvc.Profile(staffID)
	if err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}
