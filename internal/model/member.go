package model

import (
	"time"
)

type Member struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:100;not null" json:"name"`
	Email           *string    `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	Phone           string     `gorm:"size:15;not null" json:"phone"`
	DateOfBirth     *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender          string     `gorm:"size:1;default:M" json:"gender"` // M, F, O
	Address         string     `gorm:"type:text" json:"address,omitempty"`
	MemberSince     time.Time  `gorm:"type:date;not null" json:"member_since"`
	MembershipType  string     `gorm:"size:20;default:monthly;index" json:"membership_type"` // weekly, monthly, quarterly, annual
	ExpiryDate      *time.Time `gorm:"type:date;index" json:"expiry_date"`
	PaymentAmount   float64    `gorm:"type:decimal(10,2);not null" json:"payment_amount"`
	PendingAmount   float64    `gorm:"type:decimal(10,2);default:0" json:"pending_amount"`
	PaymentType     string     `gorm:"size:20;default:cash" json:"payment_type"` // cash, card, upi, cheque
	IsActive        bool       `gorm:"default:true;index" json:"is_active"`
	ProfilePhotoURL string     `gorm:"size:500" json:"profile_photo_url,omitempty"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// DateOnly 截断到日期（零点），日期字段比较统一走这里
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween 两个日期间的日历天数差，两端都归一到 UTC 零点再相减，
// 不受本地时区夏令时切换影响
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// MembershipDays 会籍类型对应的有效天数，未识别的类型按月卡处理
func MembershipDays(membershipType string) int {
	switch membershipType {
	case "weekly":
		return 7
	case "monthly":
		return 30
	case "quarterly":
		return 90
	case "annual":
		return 365
	default:
		return 30
	}
}

// ExpiryFromType 按入会日期和会籍类型推算到期日
func ExpiryFromType(memberSince time.Time, membershipType string) time.Time {
	return DateOnly(memberSince).AddDate(0, 0, MembershipDays(membershipType))
}

// Age 按 asOf 计算年龄，未填生日时 ok 为 false
func (m *Member) Age(asOf time.Time) (int, bool) {
	if m.DateOfBirth == nil {
		return 0, false
	}
	dob := *m.DateOfBirth
	age := asOf.Year() - dob.Year()
	if asOf.Month() < dob.Month() || (asOf.Month() == dob.Month() && asOf.Day() < dob.Day()) {
		age--
	}
	return age, true
}

// IsMembershipExpired 到期日当天不算过期，次日起算
func (m *Member) IsMembershipExpired(asOf time.Time) bool {
	if m.ExpiryDate == nil {
		return false
	}
	return DateOnly(asOf).After(DateOnly(*m.ExpiryDate))
}

// DaysUntilExpiry 距到期日的日历天数，已过期为负
func (m *Member) DaysUntilExpiry(asOf time.Time) int {
	if m.ExpiryDate == nil {
		return 0
	}
	return DaysBetween(asOf, *m.ExpiryDate)
}

func (m *Member) HasPendingPayment() bool {
	return m.PendingAmount > 0
}
