package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/model"
)

// TestMember 创建测试会员，默认月卡、今天入会、无欠费
func TestMember(t *testing.T, db *gorm.DB, opts ...func(*model.Member)) *model.Member {
	t.Helper()

	today := model.DateOnly(time.Now())
	expiry := model.ExpiryFromType(today, "monthly")
	member := &model.Member{
		Name:           fmt.Sprintf("Test Member %d", time.Now().UnixNano()%10000),
		Phone:          "9876543210",
		Gender:         "M",
		MemberSince:    today,
		MembershipType: "monthly",
		ExpiryDate:     &expiry,
		PaymentAmount:  1000,
		PendingAmount:  0,
		PaymentType:    "cash",
		IsActive:       true,
	}

	for _, opt := range opts {
		opt(member)
	}

	if err := db.Create(member).Error; err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}

	return member
}

// WithMemberEmail 设置邮箱
func WithMemberEmail(email string) func(*model.Member) {
	return func(m *model.Member) {
		m.Email = &email
	}
}

// WithMemberName 设置姓名
func WithMemberName(name string) func(*model.Member) {
	return func(m *model.Member) {
		m.Name = name
	}
}

// WithMembershipType 设置会籍类型并重算到期日
func WithMembershipType(membershipType string) func(*model.Member) {
	return func(m *model.Member) {
		m.MembershipType = membershipType
		expiry := model.ExpiryFromType(m.MemberSince, membershipType)
		m.ExpiryDate = &expiry
	}
}

// WithPendingAmount 设置欠费金额
func WithPendingAmount(pending float64) func(*model.Member) {
	return func(m *model.Member) {
		m.PendingAmount = pending
	}
}

// WithExpiryDate 设置到期日
func WithExpiryDate(expiry time.Time) func(*model.Member) {
	return func(m *model.Member) {
		day := model.DateOnly(expiry)
		m.ExpiryDate = &day
	}
}

// WithInactive 停用会籍
func WithInactive() func(*model.Member) {
	return func(m *model.Member) {
		m.IsActive = false
	}
}

// TestPayment 创建测试缴费流水
func TestPayment(t *testing.T, db *gorm.DB, memberID int64, amount float64, opts ...func(*model.PaymentRecord)) *model.PaymentRecord {
	t.Helper()

	record := &model.PaymentRecord{
		MemberID:    memberID,
		Amount:      amount,
		PaymentDate: time.Now(),
		PaymentType: "cash",
	}

	for _, opt := range opts {
		opt(record)
	}

	if err := db.Create(record).Error; err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}

	return record
}

// WithPaymentDate 设置缴费时间
func WithPaymentDate(d time.Time) func(*model.PaymentRecord) {
	return func(p *model.PaymentRecord) {
		p.PaymentDate = d
	}
}

// TestLead 创建测试潜客，默认 new 状态、walk_in 来源
func TestLead(t *testing.T, db *gorm.DB, opts ...func(*model.Lead)) *model.Lead {
	t.Helper()

	lead := &model.Lead{
		Name:          fmt.Sprintf("Test Lead %d", time.Now().UnixNano()%10000),
		Phone:         "9123456789",
		Status:        "new",
		Source:        "walk_in",
		InterestLevel: 5,
	}

	for _, opt := range opts {
		opt(lead)
	}

	if err := db.Create(lead).Error; err != nil {
		t.Fatalf("Failed to create test lead: %v", err)
	}

	return lead
}

// WithLeadStatus 设置潜客状态
func WithLeadStatus(status string) func(*model.Lead) {
	return func(l *model.Lead) {
		l.Status = status
	}
}

// WithInterestLevel 设置意向等级
func WithInterestLevel(level int) func(*model.Lead) {
	return func(l *model.Lead) {
		l.InterestLevel = level
	}
}

// WithNextFollowUp 设置跟进日期
func WithNextFollowUp(d time.Time) func(*model.Lead) {
	return func(l *model.Lead) {
		day := model.DateOnly(d)
		l.NextFollowUp = &day
	}
}

// WithLeadEmail 设置潜客邮箱
func WithLeadEmail(email string) func(*model.Lead) {
	return func(l *model.Lead) {
		l.Email = &email
	}
}

// TestStaff 创建测试管理员
func TestStaff(t *testing.T, db *gorm.DB, opts ...func(*model.Staff)) *model.Staff {
	t.Helper()

	staff := &model.Staff{
		Username:     fmt.Sprintf("staff_%d", time.Now().UnixNano()%100000),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		DisplayName:  "Test Staff",
	}

	for _, opt := range opts {
		opt(staff)
	}

	if err := db.Create(staff).Error; err != nil {
		t.Fatalf("Failed to create test staff: %v", err)
	}

	return staff
}

// WithStaffUsername 设置用户名
func WithStaffUsername(username string) func(*model.Staff) {
	return func(s *model.Staff) {
		s.Username = username
	}
}
