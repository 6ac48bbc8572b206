package service

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/model"
	"github.com/fitforge/gym_go_server/internal/model/dto"
	"github.com/fitforge/gym_go_server/internal/pkg/oss"
	"github.com/fitforge/gym_go_server/internal/pkg/queue"
	"github.com/fitforge/gym_go_server/internal/pkg/ws"
	"github.com/fitforge/gym_go_server/internal/repository"
)

var (
	ErrMemberNotFound = errors.New("会员不存在")
	ErrOSSNotReady    = errors.New("OSS 客户端未配置")
)

type MemberService struct {
	db          *gorm.DB
	memberRepo  *repository.MemberRepository
	paymentRepo *repository.PaymentRecordRepository
	mailQueue   *queue.Queue
	hub         *ws.Hub
	ossClient   *oss.Client
}

func NewMemberService(
	db *gorm.DB,
	memberRepo *repository.MemberRepository,
	paymentRepo *repository.PaymentRecordRepository,
	mailQueue *queue.Queue,
	hub *ws.Hub,
	ossClient *oss.Client,
) *MemberService {
	return &MemberService{
		db:          db,
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		mailQueue:   mailQueue,
		hub:         hub,
		ossClient:   ossClient,
	}
}

// Enroll 会员登记。所有字段问题一次性返回，全部通过才落库。
func (s *MemberService) Enroll(req *dto.EnrollMemberRequest) (*dto.MemberInfo, error) {
	now := time.Now()

	member, fieldErrs := buildMember(req, now)

	if member.Email != nil {
		exists, err := s.memberRepo.ExistsByEmail(*member.Email, 0)
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

	if err := s.memberRepo.Create(member); err != nil {
		return nil, err
	}

	s.enqueueWelcome(member)
	s.broadcast("member_enrolled", memberInfo(member, now))

	return memberInfo(member, now), nil
}

// QuickEnroll 快速登记，只填最少字段，其余走默认值
func (s *MemberService) QuickEnroll(req *dto.QuickEnrollRequest) (*dto.MemberInfo, error) {
	return s.Enroll(&dto.EnrollMemberRequest{
		Name:           req.Name,
		Phone:          req.Phone,
		MembershipType: req.MembershipType,
		PaymentAmount:  req.PaymentAmount,
		PaymentType:    req.PaymentType,
	})
}

// Update 修改会员信息，nil 字段不动
func (s *MemberService) Update(id int64, req *dto.UpdateMemberRequest) (*dto.MemberInfo, error) {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	now := time.Now()
	fieldErrs := FieldErrors{}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			fieldErrs.Add("name", "请填写姓名")
		} else {
			member.Name = strings.TrimSpace(*req.Name)
		}
	}
	if req.Phone != nil {
		if strings.TrimSpace(*req.Phone) == "" {
			fieldErrs.Add("phone", "请填写联系电话")
		} else {
			member.Phone = strings.TrimSpace(*req.Phone)
		}
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			member.Email = nil
		} else if !emailRe.MatchString(email) {
			fieldErrs.Add("email", "邮箱格式不正确")
		} else {
			exists, err := s.memberRepo.ExistsByEmail(email, id)
			if err != nil {
				return nil, err
			}
			if exists {
				fieldErrs.Add("email", "邮箱已被其他会员使用")
			} else {
				member.Email = &email
			}
		}
	}
	if req.DateOfBirth != nil {
		if dob, ok := parseBirthDate(*req.DateOfBirth, now, fieldErrs); ok {
			member.DateOfBirth = &dob
		}
	}
	if req.Gender != nil {
		if !validGenders[*req.Gender] {
			fieldErrs.Add("gender", "性别取值不合法")
		} else {
			member.Gender = *req.Gender
		}
	}
	if req.Address != nil {
		member.Address = *req.Address
	}
	if req.MembershipType != nil {
		member.MembershipType = *req.MembershipType
	}
	if req.ExpiryDate != nil {
		if expiry, err := parseDate(*req.ExpiryDate); err != nil {
			fieldErrs.Add("expiry_date", "日期格式应为 YYYY-MM-DD")
		} else {
			day := model.DateOnly(expiry)
			member.ExpiryDate = &day
		}
	}
	if req.PaymentAmount != nil {
		if *req.PaymentAmount <= 0 {
			fieldErrs.Add("payment_amount", "缴费金额必须大于 0")
		} else {
			member.PaymentAmount = *req.PaymentAmount
		}
	}
	if req.PendingAmount != nil {
		if *req.PendingAmount < 0 {
			fieldErrs.Add("pending_amount", "欠费金额不能为负")
		} else {
			member.PendingAmount = *req.PendingAmount
		}
	}
	if req.PaymentType != nil {
		if !validPaymentTypes[*req.PaymentType] {
			fieldErrs.Add("payment_type", "缴费方式不合法")
		} else {
			member.PaymentType = *req.PaymentType
		}
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if fieldErrs.Has() {
		return nil, fieldErrs
	}

	if err := s.memberRepo.Update(member); err != nil {
		return nil, err
	}

	return memberInfo(member, now), nil
}

// Detail 会员详情，附分页的缴费历史
func (s *MemberService) Detail(id int64, page, pageSize int) (*dto.MemberDetailResponse, error) {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	page, pageSize = NormalizePage(page, pageSize, DefaultHistoryPageSize)
	records, total, err := s.paymentRepo.ListByMemberID(id, page, pageSize)
	if err != nil {
		return nil, err
	}

	payments := make([]*dto.PaymentInfo, 0, len(records))
	for _, record := range records {
		payments = append(payments, paymentInfo(record))
	}

	return &dto.MemberDetailResponse{
		Member:       memberInfo(member, time.Now()),
		Payments:     payments,
		PaymentTotal: total,
	}, nil
}

// List 会员列表，筛选逻辑见 repository.MemberFilter
func (s *MemberService) List(req *dto.MemberFilterRequest) ([]*dto.MemberInfo, int64, error) {
	page, pageSize := NormalizePage(req.Page, req.PageSize, DefaultListPageSize)
	now := time.Now()

	members, total, err := s.memberRepo.List(&repository.MemberFilter{
		Search:         req.Search,
		MembershipType: req.MembershipType,
		Gender:         req.Gender,
		Activity:       req.Activity,
		HasPending:     req.HasPending,
		ExpiryStatus:   req.ExpiryStatus,
		Today:          now,
		Page:           page,
		PageSize:       pageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	infos := make([]*dto.MemberInfo, 0, len(members))
	for _, member := range members {
		infos = append(infos, memberInfo(member, now))
	}
	return infos, total, nil
}

// Delete 删除会员。流水随之清理，已转化的 Lead 只解绑不删。
func (s *MemberService) Delete(id int64) error {
	if _, err := s.memberRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	// 外键行为在 SQLite 下默认不开启，清理动作显式写在事务里保证各环境一致
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&model.PaymentRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Lead{}).Where("converted_member_id = ?", id).
			Update("converted_member_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Member{}, id).Error
	})
}

// UploadProfilePhoto 上传会员照片到 OSS 并回写地址
func (s *MemberService) UploadProfilePhoto(id int64, data []byte, filename string) (string, error) {
	if s.ossClient == nil {
		return "", ErrOSSNotReady
	}

	if _, err := s.memberRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrMemberNotFound
		}
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	photoURL, err := s.ossClient.UploadProfilePhoto(id, data, ext)
	if err != nil {
		return "", err
	}

	if err := s.memberRepo.UpdateFields(id, map[string]interface{}{
		"profile_photo_url": photoURL,
	}); err != nil {
		return "", err
	}

	return photoURL, nil
}

// enqueueWelcome 登记成功后排队发欢迎邮件，发不出去不影响登记
func (s *MemberService) enqueueWelcome(member *model.Member) {
	if s.mailQueue == nil || member.Email == nil {
		return
	}
	job := &queue.MailJob{MemberID: member.ID, Kind: queue.KindWelcome}
	if err := s.mailQueue.Push(context.Background(), job); err != nil {
		log.Printf("Failed to enqueue welcome mail for member %d: %v", member.ID, err)
	}
}

func (s *MemberService) broadcast(eventType string, data interface{}) {
	if s.hub == nil {
		return
	}
	if err := s.hub.Broadcast(&ws.Message{Type: eventType, Data: data}); err != nil {
		log.Printf("Failed to broadcast %s: %v", eventType, err)
	}
}

// buildMember 校验登记字段并组装模型，错误全部收集后一起返回
func buildMember(req *dto.EnrollMemberRequest, now time.Time) (*model.Member, FieldErrors) {
	fieldErrs := FieldErrors{}
	today := model.DateOnly(now)

	member := &model.Member{
		Name:           strings.TrimSpace(req.Name),
		Phone:          strings.TrimSpace(req.Phone),
		Gender:         req.Gender,
		Address:        req.Address,
		MembershipType: req.MembershipType,
		PaymentAmount:  req.PaymentAmount,
		PaymentType:    req.PaymentType,
		IsActive:       true,
	}

	if member.Name == "" {
		fieldErrs.Add("name", "请填写姓名")
	}
	if member.Phone == "" {
		fieldErrs.Add("phone", "请填写联系电话")
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" {
			if !emailRe.MatchString(email) {
				fieldErrs.Add("email", "邮箱格式不正确")
			} else {
				member.Email = &email
			}
		}
	}

	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		if dob, ok := parseBirthDate(*req.DateOfBirth, now, fieldErrs); ok {
			member.DateOfBirth = &dob
		}
	}

	if member.Gender == "" {
		member.Gender = "M"
	} else if !validGenders[member.Gender] {
		fieldErrs.Add("gender", "性别取值不合法")
	}

	// 未识别的会籍类型不报错，到期日按月卡规则兜底
	if member.MembershipType == "" {
		member.MembershipType = "monthly"
	}

	member.MemberSince = today
	if req.MemberSince != nil && *req.MemberSince != "" {
		if since, err := parseDate(*req.MemberSince); err != nil {
			fieldErrs.Add("member_since", "日期格式应为 YYYY-MM-DD")
		} else if model.DateOnly(since).After(today) {
			fieldErrs.Add("member_since", "入会日期不能晚于今天")
		} else {
			member.MemberSince = model.DateOnly(since)
		}
	}

	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		if expiry, err := parseDate(*req.ExpiryDate); err != nil {
			fieldErrs.Add("expiry_date", "日期格式应为 YYYY-MM-DD")
		} else {
			day := model.DateOnly(expiry)
			member.ExpiryDate = &day
		}
	}
	if member.ExpiryDate == nil {
		expiry := model.ExpiryFromType(member.MemberSince, member.MembershipType)
		member.ExpiryDate = &expiry
	}

	if member.PaymentAmount <= 0 {
		fieldErrs.Add("payment_amount", "缴费金额必须大于 0")
	}
	if req.PendingAmount != nil {
		if *req.PendingAmount < 0 {
			fieldErrs.Add("pending_amount", "欠费金额不能为负")
		} else {
			member.PendingAmount = *req.PendingAmount
		}
	}

	if member.PaymentType == "" {
		member.PaymentType = "cash"
	} else if !validPaymentTypes[member.PaymentType] {
		fieldErrs.Add("payment_type", "缴费方式不合法")
	}

	return member, fieldErrs
}

// parseBirthDate 出生日期校验：格式、不能晚于今天、年龄在 10-100 之间
func parseBirthDate(s string, now time.Time, fieldErrs FieldErrors) (time.Time, bool) {
	dob, err := parseDate(s)
	if err != nil {
		fieldErrs.Add("date_of_birth", "日期格式应为 YYYY-MM-DD")
		return time.Time{}, false
	}

	today := model.DateOnly(now)
	day := model.DateOnly(dob)
	if !day.Before(today) {
		fieldErrs.Add("date_of_birth", "出生日期不能晚于今天")
		return time.Time{}, false
	}

	age := now.Year() - day.Year()
	if now.Month() < day.Month() || (now.Month() == day.Month() && now.Day() < day.Day()) {
		age--
	}
	if age < 10 {
		fieldErrs.Add("date_of_birth", "会员年龄不能小于 10 岁")
		return time.Time{}, false
	}
	if age > 100 {
		fieldErrs.Add("date_of_birth", "请核对出生日期")
		return time.Time{}, false
	}

	return day, true
}

// memberInfo 组装返回给前端的会员信息，派生字段按 asOf 计算
func memberInfo(m *model.Member, asOf time.Time) *dto.MemberInfo {
	info := &dto.MemberInfo{
		ID:              m.ID,
		Name:            m.Name,
		Phone:           m.Phone,
		Gender:          m.Gender,
		Address:         m.Address,
		MemberSince:     m.MemberSince.Format(dateLayout),
		MembershipType:  m.MembershipType,
		IsExpired:       m.IsMembershipExpired(asOf),
		DaysUntilExpiry: m.DaysUntilExpiry(asOf),
		PaymentAmount:   m.PaymentAmount,
		PendingAmount:   m.PendingAmount,
		HasPending:      m.HasPendingPayment(),
		PaymentType:     m.PaymentType,
		IsActive:        m.IsActive,
		ProfilePhotoURL: m.ProfilePhotoURL,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       m.UpdatedAt.Format(time.RFC3339),
	}

	if m.Email != nil {
		info.Email = *m.Email
	}
	if m.DateOfBirth != nil {
		info.DateOfBirth = m.DateOfBirth.Format(dateLayout)
	}
	if m.ExpiryDate != nil {
		info.ExpiryDate = m.ExpiryDate.Format(dateLayout)
	}
	if age, ok := m.Age(asOf); ok {
		info.Age = &age
	}

	return info
}

func paymentInfo(record *model.PaymentRecord) *dto.PaymentInfo {
	info := &dto.PaymentInfo{
		ID:          record.ID,
		MemberID:    record.MemberID,
		Amount:      record.Amount,
		PaymentDate: record.PaymentDate.Format(time.RFC3339),
		PaymentType: record.PaymentType,
	}
	if record.TransactionID != nil {
		info.TransactionID = *record.TransactionID
	}
	if record.Notes != nil {
		info.Notes = *record.Notes
	}
	return info
}

// 默认分页大小：列表页 12 条，缴费历史 10 条
const (
	DefaultListPageSize    = 12
	DefaultHistoryPageSize = 10
)

// NormalizePage 分页参数兜底：page 最小为 1，pageSize 超出 1-100 时取默认值。
// handler 回写分页信息时也用它，保证响应里的页码和实际查询一致。
func NormalizePage(page, pageSize, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultSize
	}
	return page, pageSize
}
