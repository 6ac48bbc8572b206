package dto

// DashboardStats 首页统计卡片
type DashboardStats struct {
	TotalMembers    int64   `json:"total_members"`
	ActiveMembers   int64   `json:"active_members"`
	ExpiredMembers  int64   `json:"expired_members"`
	ExpiringSoon    int64   `json:"expiring_soon"` // 7 天内到期
	NewThisWeek     int64   `json:"new_this_week"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingTotal    float64 `json:"pending_total"`
	PendingCount    int64   `json:"pending_count"`
	TotalLeads      int64   `json:"total_leads"`
	NewLeads        int64   `json:"new_leads"`
	ConvertedLeads  int64   `json:"converted_leads"`
	LeadsThisWeek   int64   `json:"leads_this_week"`

	MembershipStats []*MembershipTypeStat `json:"membership_stats"`
	RecentMembers   []*MemberInfo         `json:"recent_members"`
}

// MembershipTypeStat 会籍类型分布
type MembershipTypeStat struct {
	MembershipType string `json:"membership_type"`
	Count          int64  `json:"count"`
}

// MonthRevenue 按月收款汇总
type MonthRevenue struct {
	Month string  `json:"month"` // 2006-01
	Total float64 `json:"total"`
}

// MembershipBreakdownItem 会籍类型营收拆分
type MembershipBreakdownItem struct {
	MembershipType string  `json:"membership_type"`
	Count          int64   `json:"count"`
	Revenue        float64 `json:"revenue"`
}

// ReportData 报表页数据
type ReportData struct {
	MonthlyRevenue      []*MonthRevenue            `json:"monthly_revenue"` // 最近 6 个月
	MembershipBreakdown []*MembershipBreakdownItem `json:"membership_breakdown"`
	PendingMembers      []*MemberInfo              `json:"pending_members"`      // 按欠费金额倒序
	ExpiringMemberships []*MemberInfo              `json:"expiring_memberships"` // 30 天内到期
	TotalPending        float64                    `json:"total_pending"`
	TotalRevenue        float64                    `json:"total_revenue"`
}
