package model

import (
	"time"
)

// Lead 到访客户（潜在会员）
type Lead struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	Phone         string     `gorm:"size:15;not null" json:"phone"`
	Email         *string    `gorm:"size:100" json:"email,omitempty"`
	Status        string     `gorm:"size:20;default:new;index" json:"status"`     // new, contacted, interested, converted, not_interested
	Source        string     `gorm:"size:20;default:walk_in" json:"source"`       // walk_in, referral, online, advertisement, social_media, other
	InterestLevel int        `gorm:"default:5" json:"interest_level"`             // 1-10
	Notes         *string    `gorm:"type:text" json:"notes,omitempty"`
	LastContacted *time.Time `json:"last_contacted,omitempty"`
	NextFollowUp  *time.Time `gorm:"type:date" json:"next_follow_up,omitempty"`

	// 转化信息，会员删除时只置空不删 Lead
	ConvertedMemberID *int64     `json:"converted_member_id,omitempty"`
	ConversionDate    *time.Time `json:"conversion_date,omitempty"`
	ConvertedMember   *Member    `gorm:"foreignKey:ConvertedMemberID;constraint:OnDelete:SET NULL" json:"converted_member,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Lead) TableName() string {
	return "leads"
}

// IsConverted 状态为 converted 且已绑定会员才算转化成功
func (l *Lead) IsConverted() bool {
	return l.Status == "converted" && l.ConvertedMemberID != nil
}

func (l *Lead) DaysSinceCreated(asOf time.Time) int {
	return DaysBetween(l.CreatedAt, asOf)
}

// IsOverdueFollowUp 未设置跟进日期时不算逾期
func (l *Lead) IsOverdueFollowUp(asOf time.Time) bool {
	if l.NextFollowUp == nil {
		return false
	}
	return DateOnly(asOf).After(DateOnly(*l.NextFollowUp))
}
