package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/model"
	"github.com/fitforge/gym_go_server/internal/model/dto"
	"github.com/fitforge/gym_go_server/internal/repository"
	"github.com/fitforge/gym_go_server/internal/testutil"
)

func newLeadService(db *gorm.DB) *LeadService {
	return NewLeadService(db, repository.NewLeadRepository(db), newMemberService(db), nil)
}

func intPtr(i int) *int { return &i }

func TestCaptureLeadWithDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	info, err := svc.Capture(&dto.CaptureLeadRequest{
		Name:  "Walk In",
		Phone: "9123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", info.Status)
	assert.Equal(t, "walk_in", info.Source)
	assert.Equal(t, 5, info.InterestLevel)
	assert.False(t, info.IsConverted)
}

func TestCaptureLeadValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	_, err := svc.Capture(&dto.CaptureLeadRequest{
		Name:          "",
		Phone:         "abc",
		Email:         strPtr("bad-email"),
		Source:        "tv",
		InterestLevel: intPtr(11),
	})
	require.Error(t, err)

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "name")
	assert.Contains(t, fieldErrs, "phone")
	assert.Contains(t, fieldErrs, "email")
	assert.Contains(t, fieldErrs, "source")
	assert.Contains(t, fieldErrs, "interest_level")
}

func TestCaptureLeadPhoneFormat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	for _, phone := range []string{"9123456789", "+919123456789"} {
		_, err := svc.Capture(&dto.CaptureLeadRequest{Name: "Lead", Phone: phone})
		assert.NoError(t, err, phone)
	}

	for _, phone := range []string{"12345", "98-76-54", "+9191234567890123"} {
		_, err := svc.Capture(&dto.CaptureLeadRequest{Name: "Lead", Phone: phone})
		fieldErrs, ok := AsFieldErrors(err)
		require.True(t, ok, phone)
		assert.Contains(t, fieldErrs, "phone")
	}
}

func TestUpdateLeadStampsLastContactedOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	lead := testutil.TestLead(t, db)

	info, err := svc.UpdateLead(lead.ID, &dto.UpdateLeadRequest{Status: strPtr("contacted")})
	require.NoError(t, err)
	require.NotEmpty(t, info.LastContacted)
	first := info.LastContacted

	// 再改回 contacted 不覆盖首次联系时间
	_, err = svc.UpdateLead(lead.ID, &dto.UpdateLeadRequest{Status: strPtr("interested")})
	require.NoError(t, err)
	info, err = svc.UpdateLead(lead.ID, &dto.UpdateLeadRequest{Status: strPtr("contacted")})
	require.NoError(t, err)
	assert.Equal(t, first, info.LastContacted)
}

func TestUpdateLeadAllowsAnyStatusOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	lead := testutil.TestLead(t, db, testutil.WithLeadStatus("not_interested"))

	// 状态不限制流转顺序，改错了还能改回来
	info, err := svc.UpdateLead(lead.ID, &dto.UpdateLeadRequest{Status: strPtr("interested")})
	require.NoError(t, err)
	assert.Equal(t, "interested", info.Status)

	info, err = svc.UpdateLead(lead.ID, &dto.UpdateLeadRequest{Status: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", info.Status)
}

func TestUpdateLeadRejectsUnknownStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	lead := testutil.TestLead(t, db)

	_, err := svc.UpdateLead(lead.ID, &dto.UpdateLeadRequest{Status: strPtr("ghosted")})
	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "status")
}

func TestConvertLead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	lead := testutil.TestLead(t, db, testutil.WithLeadEmail("lead@example.com"))

	resp, err := svc.Convert(lead.ID, &dto.ConvertLeadRequest{
		MembershipType: "quarterly",
		PaymentAmount:  3000,
	})
	require.NoError(t, err)

	// 联系方式沿用 Lead 上的登记信息
	assert.Equal(t, lead.Name, resp.Member.Name)
	assert.Equal(t, lead.Phone, resp.Member.Phone)
	assert.Equal(t, "lead@example.com", resp.Member.Email)
	assert.Equal(t, "quarterly", resp.Member.MembershipType)

	assert.Equal(t, "converted", resp.Lead.Status)
	assert.True(t, resp.Lead.IsConverted)
	require.NotNil(t, resp.Lead.ConvertedMemberID)
	assert.Equal(t, resp.Member.ID, *resp.Lead.ConvertedMemberID)
	assert.NotEmpty(t, resp.Lead.ConversionDate)

	var reloaded model.Lead
	require.NoError(t, db.First(&reloaded, lead.ID).Error)
	assert.Equal(t, "converted", reloaded.Status)
}

func TestConvertLeadFailureLeavesLeadUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	lead := testutil.TestLead(t, db)

	// 会员资料没过校验，Lead 原样不动
	_, err := svc.Convert(lead.ID, &dto.ConvertLeadRequest{PaymentAmount: 0})
	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "payment_amount")

	var reloaded model.Lead
	require.NoError(t, db.First(&reloaded, lead.ID).Error)
	assert.Equal(t, "new", reloaded.Status)
	assert.Nil(t, reloaded.ConvertedMemberID)

	var memberCount int64
	db.Model(&model.Member{}).Count(&memberCount)
	assert.Zero(t, memberCount)
}

func TestConvertLeadTwiceFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	lead := testutil.TestLead(t, db)

	_, err := svc.Convert(lead.ID, &dto.ConvertLeadRequest{PaymentAmount: 1000})
	require.NoError(t, err)

	_, err = svc.Convert(lead.ID, &dto.ConvertLeadRequest{PaymentAmount: 1000})
	assert.ErrorIs(t, err, ErrLeadAlreadyConverted)
}

func TestLeadStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	testutil.TestLead(t, db)
	testutil.TestLead(t, db)
	testutil.TestLead(t, db, testutil.WithLeadStatus("converted"))
	testutil.TestLead(t, db, testutil.WithLeadStatus("not_interested"))

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.New)
	assert.Equal(t, int64(1), stats.Converted)
	assert.Equal(t, 25.0, stats.ConversionRate)
}

func TestLeadStatsEmptyFunnel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newLeadService(db)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.ConversionRate)
}
