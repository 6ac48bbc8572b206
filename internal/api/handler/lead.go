package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fitforge/gym_go_server/internal/model/dto"
	"github.com/fitforge/gym_go_server/internal/pkg/response"
	"github.com/fitforge/gym_go_server/internal/service"
)

type LeadHandler struct {
	leadSvc *service.LeadService
}

func NewLeadHandler(leadSvc *service.LeadService) *LeadHandler {
	return &LeadHandler{leadSvc: leadSvc}
}

// Capture 到访登记，前台开放接口不需要登录
func (h *LeadHandler) Capture(c *gin.Context) {
	var req dto.CaptureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	info, err := h.leadSvc.Capture(&req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "登记成功", info)
}

// List 潜客列表
func (h *LeadHandler) List(c *gin.Context) {
	var req dto.LeadFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	infos, total, err := h.leadSvc.List(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	page, pageSize := service.NormalizePage(req.Page, req.PageSize, service.DefaultListPageSize)
	response.SuccessPage(c, total, page, pageSize, infos)
}

// Detail 潜客详情
func (h *LeadHandler) Detail(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	info, err := h.leadSvc.Detail(id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, info)
}

// Stats 转化漏斗统计
func (h *LeadHandler) Stats(c *gin.Context) {
	stats, err := h.leadSvc.Stats()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, stats)
}

// Update 跟进信息修改
func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	info, err := h.leadSvc.UpdateLead(id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "修改成功", info)
}

// Delete 删除潜客
func (h *LeadHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.leadSvc.Delete(id); err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// Convert 潜客转化为会员
func (h *LeadHandler) Convert(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.ConvertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	resp, err := h.leadSvc.Convert(id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "转化成功", resp)
}

func (h *LeadHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, "潜客 ID 不合法")
		return 0, false
	}
	return id, true
}

func (h *LeadHandler) writeError(c *gin.Context, err error) {
	if fieldErrs, ok := service.AsFieldErrors(err); ok {
		response.ValidationError(c, fieldErrs)
		return
	}
	if errors.Is(err, service.ErrLeadNotFound) {
		response.NotFoundError(c, err.Error())
		return
	}
	if errors.Is(err, service.ErrLeadAlreadyConverted) {
		response.ParamError(c, err.Error())
		return
	}
	response.ServerError(c, "")
}
