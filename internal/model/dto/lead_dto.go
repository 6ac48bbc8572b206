package dto

// CaptureLeadRequest 到访登记请求，前台开放接口
type CaptureLeadRequest struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email,omitempty"`
	Source        string  `json:"source,omitempty"`         // 缺省 walk_in
	InterestLevel *int    `json:"interest_level,omitempty"` // 1-10，缺省 5
	Notes         *string `json:"notes,omitempty"`
	NextFollowUp  *string `json:"next_follow_up,omitempty"` // 2006-01-02
}

// UpdateLeadRequest 跟进信息修改，nil 字段不更新
type UpdateLeadRequest struct {
	Status        *string `json:"status,omitempty"`
	Source        *string `json:"source,omitempty"`
	InterestLevel *int    `json:"interest_level,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	NextFollowUp  *string `json:"next_follow_up,omitempty"`
}

// ConvertLeadRequest 转化为会员。联系方式缺省沿用 Lead 上的登记信息。
type ConvertLeadRequest struct {
	Name           *string  `json:"name,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	DateOfBirth    *string  `json:"date_of_birth,omitempty"`
	Gender         string   `json:"gender,omitempty"`
	Address        string   `json:"address,omitempty"`
	MemberSince    *string  `json:"member_since,omitempty"`
	MembershipType string   `json:"membership_type,omitempty"`
	ExpiryDate     *string  `json:"expiry_date,omitempty"`
	PaymentAmount  float64  `json:"payment_amount"`
	PendingAmount  *float64 `json:"pending_amount,omitempty"`
	PaymentType    string   `json:"payment_type,omitempty"`
}

// LeadFilterRequest 潜客列表筛选
type LeadFilterRequest struct {
	Search          string `form:"search"`
	Status          string `form:"status"`
	Source          string `form:"source"`
	InterestBucket  string `form:"interest"` // high(>=8), medium(5-7), low(<5)
	OverdueFollowUp bool   `form:"overdue_follow_up"`
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
}

// LeadInfo 潜客信息（返回给前端，含派生字段）
type LeadInfo struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email,omitempty"`
	Status            string `json:"status"`
	Source            string `json:"source"`
	InterestLevel     int    `json:"interest_level"`
	Notes             string `json:"notes,omitempty"`
	LastContacted     string `json:"last_contacted,omitempty"`
	NextFollowUp      string `json:"next_follow_up,omitempty"`
	IsOverdueFollowUp bool   `json:"is_overdue_follow_up"`
	DaysSinceCreated  int    `json:"days_since_created"`
	IsConverted       bool   `json:"is_converted"`
	ConvertedMemberID *int64 `json:"converted_member_id,omitempty"`
	ConversionDate    string `json:"conversion_date,omitempty"`
	CreatedAt         string `json:"created_at"`
}

// LeadStats 转化漏斗统计
type LeadStats struct {
	Total          int64   `json:"total"`
	New            int64   `json:"new"`
	Converted      int64   `json:"converted"`
	ConversionRate float64 `json:"conversion_rate"` // 百分比，保留一位小数
}

// ConvertLeadResponse 转化结果
type ConvertLeadResponse struct {
	Lead   *LeadInfo   `json:"lead"`
	Member *MemberInfo `json:"member"`
}
