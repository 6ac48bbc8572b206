package service

import (
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/model"
	"github.com/fitforge/gym_go_server/internal/model/dto"
	"github.com/fitforge/gym_go_server/internal/pkg/ws"
	"github.com/fitforge/gym_go_server/internal/repository"
)

var (
	ErrLeadNotFound         = errors.New("潜客不存在")
	ErrLeadAlreadyConverted = errors.New("该潜客已转化为会员")
)

type LeadService struct {
	db        *gorm.DB
	leadRepo  *repository.LeadRepository
	memberSvc *MemberService
	hub       *ws.Hub
}

func NewLeadService(
	db *gorm.DB,
	leadRepo *repository.LeadRepository,
	memberSvc *MemberService,
	hub *ws.Hub,
) *LeadService {
	return &LeadService{
		db:        db,
		leadRepo:  leadRepo,
		memberSvc: memberSvc,
		hub:       hub,
	}
}

// Capture 到访登记。前台开放接口，校验同样一次性收集
func (s *LeadService) Capture(req *dto.CaptureLeadRequest) (*dto.LeadInfo, error) {
	fieldErrs := FieldErrors{}

	lead := &model.Lead{
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		Status:        "new",
		Source:        req.Source,
		InterestLevel: 5,
		Notes:         req.Notes,
	}

	if lead.Name == "" {
		fieldErrs.Add("name", "请填写姓名")
	}
	if lead.Phone == "" {
		fieldErrs.Add("phone", "请填写联系电话")
	} else if !phoneRe.MatchString(lead.Phone) {
		fieldErrs.Add("phone", "手机号格式不正确")
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" {
			if !emailRe.MatchString(email) {
				fieldErrs.Add("email", "邮箱格式不正确")
			} else {
				lead.Email = &email
			}
		}
	}

	if lead.Source == "" {
		lead.Source = "walk_in"
	} else if !validLeadSources[lead.Source] {
		fieldErrs.Add("source", "来源取值不合法")
	}

	if req.InterestLevel != nil {
		if *req.InterestLevel < 1 || *req.InterestLevel > 10 {
			fieldErrs.Add("interest_level", "意向等级应在 1-10 之间")
		} else {
			lead.InterestLevel = *req.InterestLevel
		}
	}

	if req.NextFollowUp != nil && *req.NextFollowUp != "" {
		if followUp, err := parseDate(*req.NextFollowUp); err != nil {
			fieldErrs.Add("next_follow_up", "日期格式应为 YYYY-MM-DD")
		} else {
			day := model.DateOnly(followUp)
			lead.NextFollowUp = &day
		}
	}

	if fieldErrs.Has() {
		return nil, fieldErrs
	}

	if err := s.leadRepo.Create(lead); err != nil {
		return nil, err
	}

	return leadInfo(lead, time.Now()), nil
}

// List 潜客列表，筛选逻辑见 repository.LeadFilter
func (s *LeadService) List(req *dto.LeadFilterRequest) ([]*dto.LeadInfo, int64, error) {
	page, pageSize := NormalizePage(req.Page, req.PageSize, DefaultListPageSize)
	now := time.Now()

	leads, total, err := s.leadRepo.List(&repository.LeadFilter{
		Search:          req.Search,
		Status:          req.Status,
		Source:          req.Source,
		InterestBucket:  req.InterestBucket,
		OverdueFollowUp: req.OverdueFollowUp,
		Today:           now,
		Page:            page,
		PageSize:        pageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	infos := make([]*dto.LeadInfo, 0, len(leads))
	for _, lead := range leads {
		infos = append(infos, leadInfo(lead, now))
	}
	return infos, total, nil
}

func (s *LeadService) Detail(id int64) (*dto.LeadInfo, error) {
	lead, err := s.leadRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return leadInfo(lead, time.Now()), nil
}

// Stats 转化漏斗统计
func (s *LeadService) Stats() (*dto.LeadStats, error) {
	total, err := s.leadRepo.Count()
	if err != nil {
		return nil, err
	}
	newCount, err := s.leadRepo.CountByStatus("new")
	if err != nil {
		return nil, err
	}
	converted, err := s.leadRepo.CountByStatus("converted")
	if err != nil {
		return nil, err
	}

	stats := &dto.LeadStats{Total: total, New: newCount, Converted: converted}
	if total > 0 {
		stats.ConversionRate = math.Round(float64(converted)/float64(total)*1000) / 10
	}
	return stats, nil
}

// UpdateLead 跟进信息修改。状态可以任意改动，不限制流转顺序，
// 前台改错了还能改回来。首次标记 contacted 时顺带记下联系时间。
func (s *LeadService) UpdateLead(id int64, req *dto.UpdateLeadRequest) (*dto.LeadInfo, error) {
	lead, err := s.leadRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	fieldErrs := FieldErrors{}

	if req.Status != nil {
		if !validLeadStatuses[*req.Status] {
			fieldErrs.Add("status", "状态取值不合法")
		} else {
			if *req.Status == "contacted" && lead.LastContacted == nil {
				now := time.Now()
				lead.LastContacted = &now
			}
			lead.Status = *req.Status
		}
	}
	if req.Source != nil {
		if !validLeadSources[*req.Source] {
			fieldErrs.Add("source", "来源取值不合法")
		} else {
			lead.Source = *req.Source
		}
	}
	if req.InterestLevel != nil {
		if *req.InterestLevel < 1 || *req.InterestLevel > 10 {
			fieldErrs.Add("interest_level", "意向等级应在 1-10 之间")
		} else {
			lead.InterestLevel = *req.InterestLevel
		}
	}
	if req.Notes != nil {
		lead.Notes = req.Notes
	}
	if req.NextFollowUp != nil {
		if *req.NextFollowUp == "" {
			lead.NextFollowUp = nil
		} else if followUp, err := parseDate(*req.NextFollowUp); err != nil {
			fieldErrs.Add("next_follow_up", "日期格式应为 YYYY-MM-DD")
		} else {
			day := model.DateOnly(followUp)
			lead.NextFollowUp = &day
		}
	}

	if fieldErrs.Has() {
		return nil, fieldErrs
	}

	if err := s.leadRepo.Update(lead); err != nil {
		return nil, err
	}

	return leadInfo(lead, time.Now()), nil
}

func (s *LeadService) Delete(id int64) error {
	if _, err := s.leadRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeadNotFound
		}
		return err
	}
	return s.leadRepo.Delete(id)
}

// Convert 潜客转化为会员。会员登记和 Lead 状态更新在同一个事务里，
// 会员创建失败时 Lead 原样不动。联系方式缺省沿用 Lead 上的登记信息。
func (s *LeadService) Convert(id int64, req *dto.ConvertLeadRequest) (*dto.ConvertLeadResponse, error) {
	lead, err := s.leadRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	if lead.IsConverted() {
		return nil, ErrLeadAlreadyConverted
	}

	enrollReq := &dto.EnrollMemberRequest{
		Name:           lead.Name,
		Phone:          lead.Phone,
		Email:          lead.Email,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		Address:        req.Address,
		MemberSince:    req.MemberSince,
		MembershipType: req.MembershipType,
		ExpiryDate:     req.ExpiryDate,
		PaymentAmount:  req.PaymentAmount,
		PendingAmount:  req.PendingAmount,
		PaymentType:    req.PaymentType,
	}
	if req.Name != nil {
		enrollReq.Name = *req.Name
	}
	if req.Phone != nil {
		enrollReq.Phone = *req.Phone
	}
	if req.Email != nil {
		enrollReq.Email = req.Email
	}

	now := time.Now()
	member, fieldErrs := buildMember(enrollReq, now)

	if member.Email != nil {
		exists, err := s.memberSvc.memberRepo.ExistsByEmail(*member.Email, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			fieldErrs.Add("email", "邮箱已被其他会员使用")
		}
	}

	if fieldErrs.Has() {
		return nil, fieldErrs
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return tx.Model(&model.Lead{}).Where("id = ?", lead.ID).
			Updates(map[string]interface{}{
				"status":              "converted",
				"converted_member_id": member.ID,
				"conversion_date":     now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	lead.Status = "converted"
	lead.ConvertedMemberID = &member.ID
	lead.ConversionDate = &now

	s.memberSvc.enqueueWelcome(member)
	s.broadcastConversion(lead, member)

	return &dto.ConvertLeadResponse{
		Lead:   leadInfo(lead, now),
		Member: memberInfo(member, now),
	}, nil
}

func (s *LeadService) broadcastConversion(lead *model.Lead, member *model.Member) {
	if s.hub == nil {
		return
	}
	err := s.hub.Broadcast(&ws.Message{
		Type: "lead_converted",
		Data: map[string]interface{}{
			"lead_id":     lead.ID,
			"member_id":   member.ID,
			"member_name": member.Name,
		},
	})
	if err != nil {
		log.Printf("Failed to broadcast lead_converted: %v", err)
	}
}

// leadInfo 组装返回给前端的潜客信息，派生字段按 asOf 计算
func leadInfo(l *model.Lead, asOf time.Time) *dto.LeadInfo {
	info := &dto.LeadInfo{
		ID:                l.ID,
		Name:              l.Name,
		Phone:             l.Phone,
		Status:            l.Status,
		Source:            l.Source,
		InterestLevel:     l.InterestLevel,
		IsOverdueFollowUp: l.IsOverdueFollowUp(asOf),
		DaysSinceCreated:  l.DaysSinceCreated(asOf),
		IsConverted:       l.IsConverted(),
		ConvertedMemberID: l.ConvertedMemberID,
		CreatedAt:         l.CreatedAt.Format(time.RFC3339),
	}

	if l.Email != nil {
		info.Email = *l.Email
	}
	if l.Notes != nil {
		info.Notes = *l.Notes
	}
	if l.LastContacted != nil {
		info.LastContacted = l.LastContacted.Format(time.RFC3339)
	}
	if l.NextFollowUp != nil {
		info.NextFollowUp = l.NextFollowUp.Format(dateLayout)
	}
	if l.ConversionDate != nil {
		info.ConversionDate = l.ConversionDate.Format(time.RFC3339)
	}

	return info
}
