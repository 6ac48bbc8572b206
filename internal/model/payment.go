package model

import (
	"time"
)

// PaymentRecord 缴费流水，只增不改
type PaymentRecord struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	MemberID      int64     `gorm:"not null;index" json:"member_id"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate   time.Time `gorm:"not null;index" json:"payment_date"`
	PaymentType   string    `gorm:"size:20;not null" json:"payment_type"` // cash, card, upi, cheque
	TransactionID *string   `gorm:"size:100" json:"transaction_id,omitempty"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	// 关联的会员
	Member *Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}
