package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/repository"
	"github.com/fitforge/gym_go_server/internal/testutil"
)

func newDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(
		repository.NewMemberRepository(db),
		repository.NewPaymentRecordRepository(db),
		repository.NewLeadRepository(db),
	)
}

func TestDashboardStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newDashboardService(db)

	now := time.Now()
	testutil.TestMember(t, db, testutil.WithExpiryDate(now.AddDate(0, 0, 20)))
	testutil.TestMember(t, db,
		testutil.WithExpiryDate(now.AddDate(0, 0, 3)), testutil.WithPendingAmount(400))
	testutil.TestMember(t, db, testutil.WithExpiryDate(now.AddDate(0, 0, -5)))

	testutil.TestLead(t, db)
	testutil.TestLead(t, db, testutil.WithLeadStatus("converted"))

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalMembers)
	assert.Equal(t, int64(2), stats.ActiveMembers)
	assert.Equal(t, int64(1), stats.ExpiredMembers)
	assert.Equal(t, int64(1), stats.ExpiringSoon)
	assert.Equal(t, int64(1), stats.PendingCount)
	assert.Equal(t, float64(400), stats.PendingTotal)
	assert.Equal(t, int64(2), stats.TotalLeads)
	assert.Equal(t, int64(1), stats.NewLeads)
	assert.Equal(t, int64(1), stats.ConvertedLeads)

	// 会籍分布固定四行，没人办的类型也占一行
	require.Len(t, stats.MembershipStats, 4)
	assert.Len(t, stats.RecentMembers, 3)
}

func TestDashboardReportsMonthlyRevenue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newDashboardService(db)

	member := testutil.TestMember(t, db, testutil.WithPendingAmount(100))
	now := time.Now()

	testutil.TestPayment(t, db, member.ID, 300)
	testutil.TestPayment(t, db, member.ID, 200)
	lastMonth := now.AddDate(0, -1, 0)
	testutil.TestPayment(t, db, member.ID, 150, testutil.WithPaymentDate(lastMonth))
	// 窗口外的流水不计入
	testutil.TestPayment(t, db, member.ID, 999, testutil.WithPaymentDate(now.AddDate(0, -8, 0)))

	report, err := svc.Reports()
	require.NoError(t, err)

	// 固定 6 行，最后一行是当月
	require.Len(t, report.MonthlyRevenue, 6)
	byMonth := make(map[string]float64)
	for _, row := range report.MonthlyRevenue {
		byMonth[row.Month] = row.Total
	}
	assert.Equal(t, float64(500), byMonth[now.Format("2006-01")])
	assert.Equal(t, float64(150), byMonth[lastMonth.Format("2006-01")])

	assert.Equal(t, float64(100), report.TotalPending)
	assert.Len(t, report.PendingMembers, 1)
}

func TestDashboardReportsExpiringWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newDashboardService(db)

	now := time.Now()
	testutil.TestMember(t, db, testutil.WithExpiryDate(now.AddDate(0, 0, 10)))
	testutil.TestMember(t, db, testutil.WithExpiryDate(now.AddDate(0, 0, 60)))
	testutil.TestMember(t, db, testutil.WithExpiryDate(now.AddDate(0, 0, -3)))

	report, err := svc.Reports()
	require.NoError(t, err)

	// 报表只看 30 天内到期的
	assert.Len(t, report.ExpiringMemberships, 1)
}
