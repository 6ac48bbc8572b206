package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/model"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// MemberFilter 列表筛选条件，today 用于按日期分桶
type MemberFilter struct {
	Search         string // 姓名/邮箱/手机号模糊匹配
	MembershipType string
	Gender         string
	Activity       string // active, expired
	HasPending     bool
	ExpiryStatus   string // active, expiring_soon, expired
	Today          time.Time
	Page           int
	PageSize       int
}

func (r *MemberRepository) Create(member *model.Member) error {
	return r.db.Create(member).Error
}

func (r *MemberRepository) GetByID(id int64) (*model.Member, error) {
	var member model.Member
	err := r.db.Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) Update(member *model.Member) error {
	return r.db.Save(member).Error
}

func (r *MemberRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Member{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 只删会员记录本身，流水清理和 Lead 解绑由 service 层事务负责
func (r *MemberRepository) Delete(id int64) error {
	return r.db.Delete(&model.Member{}, id).Error
}

// ExistsByEmail 检查邮箱占用，excludeID 用于编辑时排除自身
func (r *MemberRepository) ExistsByEmail(email string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.Model(&model.Member{}).Where("email = ?", email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// List 按筛选条件分页查询，分桶逻辑与后台列表页一致
func (r *MemberRepository) List(filter *MemberFilter) ([]*model.Member, int64, error) {
	var members []*model.Member
	var total int64

	today := model.DateOnly(filter.Today)
	query := r.db.Model(&model.Member{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}
	if filter.MembershipType != "" {
		query = query.Where("membership_type = ?", filter.MembershipType)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}

	switch filter.Activity {
	case "active":
		// 有效会员 = 标记启用且未过期
		query = query.Where("is_active = ? AND expiry_date > ?", true, today)
	case "expired":
		// 已过期，不看启用标记
		query = query.Where("expiry_date < ?", today)
	}

	if filter.HasPending {
		query = query.Where("pending_amount > 0")
	}

	switch filter.ExpiryStatus {
	case "expired":
		query = query.Where("expiry_date < ?", today)
	case "expiring_soon":
		query = query.Where("expiry_date >= ? AND expiry_date <= ?", today, today.AddDate(0, 0, 7))
	case "active":
		query = query.Where("expiry_date > ?", today.AddDate(0, 0, 7))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.PageSize).Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *MemberRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Member{}).Count(&count).Error
	return count, err
}

func (r *MemberRepository) CountActive(today time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Member{}).
		Where("is_active = ? AND expiry_date > ?", true, model.DateOnly(today)).
		Count(&count).Error
	return count, err
}

func (r *MemberRepository) CountExpired(today time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Member{}).
		Where("expiry_date < ?", model.DateOnly(today)).
		Count(&count).Error
	return count, err
}

// CountExpiringBetween 到期日落在 [from, to] 区间内的会员数
func (r *MemberRepository) CountExpiringBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Member{}).
		Where("expiry_date >= ? AND expiry_date <= ?", model.DateOnly(from), model.DateOnly(to)).
		Count(&count).Error
	return count, err
}

func (r *MemberRepository) CountCreatedSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Member{}).Where("created_at >= ?", t).Count(&count).Error
	return count, err
}

func (r *MemberRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&model.Member{}).Where("pending_amount > 0").Count(&count).Error
	return count, err
}

func (r *MemberRepository) SumPaymentAmount() (float64, error) {
	var total float64
	err := r.db.Model(&model.Member{}).
		Select("COALESCE(SUM(payment_amount), 0)").Scan(&total).Error
	return total, err
}

func (r *MemberRepository) SumPendingAmount() (float64, error) {
	var total float64
	err := r.db.Model(&model.Member{}).
		Select("COALESCE(SUM(pending_amount), 0)").
		Where("pending_amount > 0").Scan(&total).Error
	return total, err
}

// MembershipTypeCounts 各会籍类型人数分布
func (r *MemberRepository) MembershipTypeCounts() (map[string]int64, error) {
	var rows []struct {
		MembershipType string
		Count          int64
	}
	err := r.db.Model(&model.Member{}).
		Select("membership_type, COUNT(id) AS count").
		Group("membership_type").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.MembershipType] = row.Count
	}
	return counts, nil
}

// MembershipBreakdownRow 各会籍类型的人数和收入
type MembershipBreakdownRow struct {
	MembershipType string
	Count          int64
	Revenue        float64
}

// MembershipBreakdown 按会籍类型统计人数和收入，供报表页使用
func (r *MemberRepository) MembershipBreakdown() ([]*MembershipBreakdownRow, error) {
	var rows []*MembershipBreakdownRow
	err := r.db.Model(&model.Member{}).
		Select("membership_type, COUNT(id) AS count, COALESCE(SUM(payment_amount), 0) AS revenue").
		Group("membership_type").
		Order("membership_type ASC").Scan(&rows).Error
	return rows, err
}

func (r *MemberRepository) Recent(limit int) ([]*model.Member, error) {
	var members []*model.Member
	err := r.db.Order("created_at DESC").Limit(limit).Find(&members).Error
	return members, err
}

// ListPendingOrdered 欠费会员，按欠费金额倒序
func (r *MemberRepository) ListPendingOrdered(limit int) ([]*model.Member, error) {
	var members []*model.Member
	err := r.db.Where("pending_amount > 0").
		Order("pending_amount DESC").Limit(limit).Find(&members).Error
	return members, err
}

// ListExpiringBetween 到期日落在区间内的会员，按到期日升序
func (r *MemberRepository) ListExpiringBetween(from, to time.Time) ([]*model.Member, error) {
	var members []*model.Member
	err := r.db.Where("expiry_date >= ? AND expiry_date <= ?", model.DateOnly(from), model.DateOnly(to)).
		Order("expiry_date ASC").Find(&members).Error
	return members, err
}

// ListPendingReminderTargets 欠费提醒对象：启用、有欠费且留了邮箱
func (r *MemberRepository) ListPendingReminderTargets() ([]*model.Member, error) {
	var members []*model.Member
	err := r.db.Where("pending_amount > 0 AND is_active = ? AND email IS NOT NULL", true).
		Find(&members).Error
	return members, err
}

// ListExpiryReminderTargets 到期提醒对象：启用、7 天内到期且留了邮箱
func (r *MemberRepository) ListExpiryReminderTargets(today time.Time) ([]*model.Member, error) {
	var members []*model.Member
	day := model.DateOnly(today)
	err := r.db.Where("expiry_date >= ? AND expiry_date <= ? AND is_active = ? AND email IS NOT NULL",
		day, day.AddDate(0, 0, 7), true).
		Find(&members).Error
	return members, err
}
