package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/model"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// LeadFilter 潜客列表筛选条件
type LeadFilter struct {
	Search          string // 姓名/手机号/邮箱模糊匹配
	Status          string
	Source          string
	InterestBucket  string // high, medium, low
	OverdueFollowUp bool
	Today           time.Time
	Page            int
	PageSize        int
}

func (r *LeadRepository) Create(lead *model.Lead) error {
	return r.db.Create(lead).Error
}

func (r *LeadRepository) GetByID(id int64) (*model.Lead, error) {
	var lead model.Lead
	err := r.db.Where("id = ?", id).First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) Update(lead *model.Lead) error {
	return r.db.Save(lead).Error
}

func (r *LeadRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Lead{}).Where("id = ?", id).Updates(fields).Error
}

func (r *LeadRepository) Delete(id int64) error {
	return r.db.Delete(&model.Lead{}, id).Error
}

// List 按筛选条件分页查询
func (r *LeadRepository) List(filter *LeadFilter) ([]*model.Lead, int64, error) {
	var leads []*model.Lead
	var total int64

	query := r.db.Model(&model.Lead{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}

	switch filter.InterestBucket {
	case "high":
		query = query.Where("interest_level >= 8")
	case "medium":
		query = query.Where("interest_level >= 5 AND interest_level < 8")
	case "low":
		query = query.Where("interest_level < 5")
	}

	if filter.OverdueFollowUp {
		// 只看还在跟进中的：已转化或明确不感兴趣的不算逾期
		query = query.Where("next_follow_up < ? AND status IN ?",
			model.DateOnly(filter.Today), []string{"new", "contacted", "interested"})
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.PageSize).Find(&leads).Error; err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (r *LeadRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Lead{}).Count(&count).Error
	return count, err
}

func (r *LeadRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Lead{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *LeadRepository) CountCreatedSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Lead{}).Where("created_at >= ?", t).Count(&count).Error
	return count, err
}
