package service

import (
	"time"

	"github.com/fitforge/gym_go_server/internal/model/dto"
	"github.com/fitforge/gym_go_server/internal/repository"
)

type DashboardService struct {
	memberRepo  *repository.MemberRepository
	paymentRepo *repository.PaymentRecordRepository
	leadRepo    *repository.LeadRepository
}

func NewDashboardService(
	memberRepo *repository.MemberRepository,
	paymentRepo *repository.PaymentRecordRepository,
	leadRepo *repository.LeadRepository,
) *DashboardService {
	return &DashboardService{
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		leadRepo:    leadRepo,
	}
}

// Stats 首页统计卡片数据
func (s *DashboardService) Stats() (*dto.DashboardStats, error) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)

	stats := &dto.DashboardStats{}
	var err error

	if stats.TotalMembers, err = s.memberRepo.Count(); err != nil {
		return nil, err
	}
	if stats.ActiveMembers, err = s.memberRepo.CountActive(now); err != nil {
		return nil, err
	}
	if stats.ExpiredMembers, err = s.memberRepo.CountExpired(now); err != nil {
		return nil, err
	}
	if stats.ExpiringSoon, err = s.memberRepo.CountExpiringBetween(now, now.AddDate(0, 0, 7)); err != nil {
		return nil, err
	}
	if stats.NewThisWeek, err = s.memberRepo.CountCreatedSince(weekAgo); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.memberRepo.SumPaymentAmount(); err != nil {
		return nil, err
	}
	if stats.PendingTotal, err = s.memberRepo.SumPendingAmount(); err != nil {
		return nil, err
	}
	if stats.PendingCount, err = s.memberRepo.CountPending(); err != nil {
		return nil, err
	}
	if stats.TotalLeads, err = s.leadRepo.Count(); err != nil {
		return nil, err
	}
	if stats.NewLeads, err = s.leadRepo.CountByStatus("new"); err != nil {
		return nil, err
	}
	if stats.ConvertedLeads, err = s.leadRepo.CountByStatus("converted"); err != nil {
		return nil, err
	}
	if stats.LeadsThisWeek, err = s.leadRepo.CountCreatedSince(weekAgo); err != nil {
		return nil, err
	}

	typeCounts, err := s.memberRepo.MembershipTypeCounts()
	if err != nil {
		return nil, err
	}
	// 固定顺序展示，不在分布里的类型也占一行
	for _, membershipType := range []string{"weekly", "monthly", "quarterly", "annual"} {
		stats.MembershipStats = append(stats.MembershipStats, &dto.MembershipTypeStat{
			MembershipType: membershipType,
			Count:          typeCounts[membershipType],
		})
	}

	recent, err := s.memberRepo.Recent(5)
	if err != nil {
		return nil, err
	}
	stats.RecentMembers = make([]*dto.MemberInfo, 0, len(recent))
	for _, member := range recent {
		stats.RecentMembers = append(stats.RecentMembers, memberInfo(member, now))
	}

	return stats, nil
}

// Reports 报表页数据。按月汇总在内存里做，
// 省掉 MySQL 和 SQLite 日期函数不一致的麻烦。
func (s *DashboardService) Reports() (*dto.ReportData, error) {
	now := time.Now()
	report := &dto.ReportData{}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	sixMonthsAgo := monthStart.AddDate(0, -5, 0)

	records, err := s.paymentRepo.ListSince(sixMonthsAgo)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, 6)
	for _, record := range records {
		totals[record.PaymentDate.Format("2006-01")] += record.Amount
	}
	for i := 0; i < 6; i++ {
		month := sixMonthsAgo.AddDate(0, i, 0).Format("2006-01")
		report.MonthlyRevenue = append(report.MonthlyRevenue, &dto.MonthRevenue{
			Month: month,
			Total: totals[month],
		})
	}

	breakdown, err := s.memberRepo.MembershipBreakdown()
	if err != nil {
		return nil, err
	}
	for _, row := range breakdown {
		report.MembershipBreakdown = append(report.MembershipBreakdown, &dto.MembershipBreakdownItem{
			MembershipType: row.MembershipType,
			Count:          row.Count,
			Revenue:        row.Revenue,
		})
	}

	pending, err := s.memberRepo.ListPendingOrdered(20)
	if err != nil {
		return nil, err
	}
	report.PendingMembers = make([]*dto.MemberInfo, 0, len(pending))
	for _, member := range pending {
		report.PendingMembers = append(report.PendingMembers, memberInfo(member, now))
	}

	expiring, err := s.memberRepo.ListExpiringBetween(now, now.AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}
	report.ExpiringMemberships = make([]*dto.MemberInfo, 0, len(expiring))
	for _, member := range expiring {
		report.ExpiringMemberships = append(report.ExpiringMemberships, memberInfo(member, now))
	}

	if report.TotalPending, err = s.memberRepo.SumPendingAmount(); err != nil {
		return nil, err
	}
	if report.TotalRevenue, err = s.memberRepo.SumPaymentAmount(); err != nil {
		return nil, err
	}

	return report, nil
}
