package dto

// EnrollMemberRequest 会员登记请求。字段级校验在 service 层完成，
// 一次性返回所有不合法字段，所以这里只做类型绑定不加 required。
type EnrollMemberRequest struct {
	Name           string   `json:"name"`
	Email          *string  `json:"email,omitempty"`
	Phone          string   `json:"phone"`
	DateOfBirth    *string  `json:"date_of_birth,omitempty"` // 2006-01-02
	Gender         string   `json:"gender,omitempty"`        // M, F, O
	Address        string   `json:"address,omitempty"`
	MemberSince    *string  `json:"member_since,omitempty"` // 2006-01-02，缺省为今天
	MembershipType string   `json:"membership_type,omitempty"`
	ExpiryDate     *string  `json:"expiry_date,omitempty"` // 缺省按会籍类型推算
	PaymentAmount  float64  `json:"payment_amount"`
	PendingAmount  *float64 `json:"pending_amount,omitempty"`
	PaymentType    string   `json:"payment_type,omitempty"`
}

// QuickEnrollRequest 快速登记，只填最少字段
type QuickEnrollRequest struct {
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	MembershipType string  `json:"membership_type,omitempty"`
	PaymentAmount  float64 `json:"payment_amount"`
	PaymentType    string  `json:"payment_type,omitempty"`
}

// UpdateMemberRequest 会员信息修改，nil 字段不更新
type UpdateMemberRequest struct {
	Name           *string  `json:"name,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	DateOfBirth    *string  `json:"date_of_birth,omitempty"`
	Gender         *string  `json:"gender,omitempty"`
	Address        *string  `json:"address,omitempty"`
	MembershipType *string  `json:"membership_type,omitempty"`
	ExpiryDate     *string  `json:"expiry_date,omitempty"`
	PaymentAmount  *float64 `json:"payment_amount,omitempty"`
	PendingAmount  *float64 `json:"pending_amount,omitempty"`
	PaymentType    *string  `json:"payment_type,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
}

// MemberFilterRequest 会员列表筛选
type MemberFilterRequest struct {
	Search         string `form:"search"`          // 姓名/邮箱/手机号模糊匹配
	MembershipType string `form:"membership_type"` // weekly, monthly, quarterly, annual
	Gender         string `form:"gender"`          // M, F, O
	Activity       string `form:"activity"`        // active, expired
	HasPending     bool   `form:"has_pending"`
	ExpiryStatus   string `form:"expiry_status"` // active, expiring_soon, expired
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
}

// MemberInfo 会员信息（返回给前端，含派生字段）
type MemberInfo struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email,omitempty"`
	Phone           string  `json:"phone"`
	DateOfBirth     string  `json:"date_of_birth,omitempty"`
	Age             *int    `json:"age,omitempty"`
	Gender          string  `json:"gender"`
	Address         string  `json:"address,omitempty"`
	MemberSince     string  `json:"member_since"`
	MembershipType  string  `json:"membership_type"`
	ExpiryDate      string  `json:"expiry_date"`
	IsExpired       bool    `json:"is_membership_expired"`
	DaysUntilExpiry int     `json:"days_until_expiry"`
	PaymentAmount   float64 `json:"payment_amount"`
	PendingAmount   float64 `json:"pending_amount"`
	HasPending      bool    `json:"has_pending_payment"`
	PaymentType     string  `json:"payment_type"`
	IsActive        bool    `json:"is_active"`
	ProfilePhotoURL string  `json:"profile_photo_url,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// RecordPaymentRequest 收款请求
type RecordPaymentRequest struct {
	Amount        float64 `json:"amount"`
	PaymentType   string  `json:"payment_type"`
	TransactionID *string `json:"transaction_id,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// PaymentInfo 缴费流水（返回给前端）
type PaymentInfo struct {
	ID            int64   `json:"id"`
	MemberID      int64   `json:"member_id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"payment_date"`
	PaymentType   string  `json:"payment_type"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// MemberDetailResponse 会员详情，附缴费历史
type MemberDetailResponse struct {
	Member       *MemberInfo    `json:"member"`
	Payments     []*PaymentInfo `json:"payments"`
	PaymentTotal int64          `json:"payment_total"`
}
