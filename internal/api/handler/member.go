package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fitforge/gym_go_server/internal/model/dto"
	"github.com/fitforge/gym_go_server/internal/pkg/response"
	"github.com/fitforge/gym_go_server/internal/service"
)

// 上传照片限制 5MB
const maxPhotoSize = 5 << 20

type MemberHandler struct {
	memberSvc  *service.MemberService
	paymentSvc *service.PaymentService
}

func NewMemberHandler(memberSvc *service.MemberService, paymentSvc *service.PaymentService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc, paymentSvc: paymentSvc}
}

// Enroll 会员登记
func (h *MemberHandler) Enroll(c *gin.Context) {
	var req dto.EnrollMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	info, err := h.memberSvc.Enroll(&req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "登记成功", info)
}

// QuickEnroll 快速登记
func (h *MemberHandler) QuickEnroll(c *gin.Context) {
	var req dto.QuickEnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	info, err := h.memberSvc.QuickEnroll(&req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "登记成功", info)
}

// List 会员列表
func (h *MemberHandler) List(c *gin.Context) {
	var req dto.MemberFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	infos, total, err := h.memberSvc.List(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	page, pageSize := service.NormalizePage(req.Page, req.PageSize, service.DefaultListPageSize)
	response.SuccessPage(c, total, page, pageSize, infos)
}

// Detail 会员详情，附分页的缴费历史
func (h *MemberHandler) Detail(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	detail, err := h.memberSvc.Detail(id, page, pageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, detail)
}

// Update 修改会员信息
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	info, err := h.memberSvc.Update(id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "修改成功", info)
}

// Delete 删除会员
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.memberSvc.Delete(id); err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// RecordPayment 收款
func (h *MemberHandler) RecordPayment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	info, err := h.paymentSvc.RecordPayment(id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "收款成功", info)
}

// PaymentHistory 缴费历史
func (h *MemberHandler) PaymentHistory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = service.NormalizePage(page, pageSize, service.DefaultHistoryPageSize)

	infos, total, err := h.paymentSvc.History(id, page, pageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessPage(c, total, page, pageSize, infos)
}

// UploadPhoto 上传会员照片
func (h *MemberHandler) UploadPhoto(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.ParamError(c, "请选择要上传的照片")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		response.ParamError(c, "照片不能超过 5MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	photoURL, err := h.memberSvc.UploadProfilePhoto(id, data, fileHeader.Filename)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "上传成功", gin.H{"profile_photo_url": photoURL})
}

func (h *MemberHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, "会员 ID 不合法")
		return 0, false
	}
	return id, true
}

func (h *MemberHandler) writeError(c *gin.Context, err error) {
	if fieldErrs, ok := service.AsFieldErrors(err); ok {
		response.ValidationError(c, fieldErrs)
		return
	}
	if errors.Is(err, service.ErrMemberNotFound) {
		response.NotFoundError(c, err.Error())
		return
	}
	if errors.Is(err, service.ErrOSSNotReady) {
		response.ServerError(c, err.Error())
		return
	}
	response.ServerError(c, "")
}
