package repository

import (
	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/model"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(staff *model.Staff) error {
	return r.db.Create(staff).Error
}

func (r *StaffRepository) GetByID(id int64) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.Where("id = ?", id).First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) GetByUsername(username string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.Where("username = ?", username).First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Staff{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
