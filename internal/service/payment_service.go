package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/model"
	"github.com/fitforge/gym_go_server/internal/model/dto"
	"github.com/fitforge/gym_go_server/internal/pkg/ws"
	"github.com/fitforge/gym_go_server/internal/repository"
)

type PaymentService struct {
	db          *gorm.DB
	memberRepo  *repository.MemberRepository
	paymentRepo *repository.PaymentRecordRepository
	hub         *ws.Hub
}

func NewPaymentService(
	db *gorm.DB,
	memberRepo *repository.MemberRepository,
	paymentRepo *repository.PaymentRecordRepository,
	hub *ws.Hub,
) *PaymentService {
	return &PaymentService{
		db:          db,
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		hub:         hub,
	}
}

// RecordPayment 收款。流水写入和欠费抵扣在同一个事务里，
// 任一步失败则整体回滚，余额不会和流水对不上。
func (s *PaymentService) RecordPayment(memberID int64, req *dto.RecordPaymentRequest) (*dto.PaymentInfo, error) {
	member, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	fieldErrs := FieldErrors{}
	if req.Amount <= 0 {
		fieldErrs.Add("amount", "收款金额必须大于 0")
	} else if req.Amount > member.PendingAmount {
		fieldErrs.Add("amount", "收款金额不能超过欠费金额")
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = member.PaymentType
	} else if !validPaymentTypes[paymentType] {
		fieldErrs.Add("payment_type", "缴费方式不合法")
	}

	if fieldErrs.Has() {
		return nil, fieldErrs
	}

	record := &model.PaymentRecord{
		MemberID:      member.ID,
		Amount:        req.Amount,
		PaymentDate:   time.Now(),
		PaymentType:   paymentType,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}

	remaining := member.PendingAmount - req.Amount
	if remaining < 0 {
		remaining = 0
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return tx.Model(&model.Member{}).Where("id = ?", member.ID).
			Update("pending_amount", remaining).Error
	})
	if err != nil {
		return nil, err
	}
	member.PendingAmount = remaining

	s.broadcastPayment(member, record)

	return paymentInfo(record), nil
}

// History 会员缴费历史，按缴费时间倒序
func (s *PaymentService) History(memberID int64, page, pageSize int) ([]*dto.PaymentInfo, int64, error) {
	if _, err := s.memberRepo.GetByID(memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrMemberNotFound
		}
		return nil, 0, err
	}

	page, pageSize = NormalizePage(page, pageSize, DefaultHistoryPageSize)
	records, total, err := s.paymentRepo.ListByMemberID(memberID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]*dto.PaymentInfo, 0, len(records))
	for _, record := range records {
		infos = append(infos, paymentInfo(record))
	}
	return infos, total, nil
}

func (s *PaymentService) broadcastPayment(member *model.Member, record *model.PaymentRecord) {
	if s.hub == nil {
		return
	}
	err := s.hub.Broadcast(&ws.Message{
		Type: "payment_recorded",
		Data: map[string]interface{}{
			"member_id":      member.ID,
			"member_name":    member.Name,
			"amount":         record.Amount,
			"pending_amount": member.PendingAmount,
			"payment_type":   record.PaymentType,
		},
	})
	if err != nil {
		log.Printf("Failed to broadcast payment_recorded: %v", err)
	}
}
