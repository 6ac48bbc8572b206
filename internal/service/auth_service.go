package service

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/config"
	"github.com/fitforge/gym_go_server/internal/model"
	"github.com/fitforge/gym_go_server/internal/model/dto"
	"github.com/fitforge/gym_go_server/internal/pkg/jwt"
	"github.com/fitforge/gym_go_server/internal/repository"
)

var (
	ErrUsernameExists    = errors.New("用户名已被占用")
	ErrInvalidCredential = errors.New("用户名或密码错误")
	ErrStaffNotFound     = errors.New("员工不存在")
)

type AuthService struct {
	staffRepo *repository.StaffRepository
	cfg       *config.Config
}

func NewAuthService(staffRepo *repository.StaffRepository, cfg *config.Config) *AuthService {
	return &AuthService{staffRepo: staffRepo, cfg: cfg}
}

// Register 创建后台账号
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)

	exists, err := s.staffRepo.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	staff := &model.Staff{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
	}
	if staff.DisplayName == "" {
		staff.DisplayName = username
	}

	if err := s.staffRepo.Create(staff); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{StaffID: staff.ID}, nil
}

// Login 校验密码并签发 Token。用户名不存在和密码不对返回同一个错误，
// 不给外面探测账号的机会。
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	staff, err := s.staffRepo.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := jwt.GenerateToken(staff.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		Staff: staffInfo(staff),
	}, nil
}

// Profile 当前登录员工信息
func (s *AuthService) Profile(staffID int64) (*dto.StaffInfo, error) {
	staff, err := s.staffRepo.GetByID(staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return staffInfo(staff), nil
}

func staffInfo(staff *model.Staff) *dto.StaffInfo {
	return &dto.StaffInfo{
		ID:          staff.ID,
		Username:    staff.Username,
		DisplayName: staff.DisplayName,
		CreatedAt:   staff.CreatedAt.Format(time.RFC3339),
	}
}
