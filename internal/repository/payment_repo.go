package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/model"
)

// PaymentRecordRepository 缴费流水仓储。流水只增不改，
// 所以这里没有 Update/Delete（删会员时由 service 层事务清理）。
type PaymentRecordRepository struct {
	db *gorm.DB
}

func NewPaymentRecordRepository(db *gorm.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{db: db}
}

func (r *PaymentRecordRepository) Create(record *model.PaymentRecord) error {
	return r.db.Create(record).Error
}

func (r *PaymentRecordRepository) GetByID(id int64) (*model.PaymentRecord, error) {
	var record model.PaymentRecord
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByMemberID 会员的缴费历史，新的在前
func (r *PaymentRecordRepository) ListByMemberID(memberID int64, page, pageSize int) ([]*model.PaymentRecord, int64, error) {
	var records []*model.PaymentRecord
	var total int64

	query := r.db.Model(&model.PaymentRecord{}).Where("member_id = ?", memberID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("payment_date DESC").Offset(offset).Limit(pageSize).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *PaymentRecordRepository) CountByMemberID(memberID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.PaymentRecord{}).Where("member_id = ?", memberID).Count(&count).Error
	return count, err
}

// ListSince 某时间点之后的全部流水，报表按月汇总用
func (r *PaymentRecordRepository) ListSince(t time.Time) ([]*model.PaymentRecord, error) {
	var records []*model.PaymentRecord
	err := r.db.Where("payment_date >= ?", t).Order("payment_date DESC").Find(&records).Error
	return records, err
}
