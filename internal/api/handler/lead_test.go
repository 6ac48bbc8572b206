package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitforge/gym_go_server/internal/model"
	"github.com/fitforge/gym_go_server/internal/pkg/response"
	"github.com/fitforge/gym_go_server/internal/testutil"
)

func TestLeadCaptureAPI(t *testing.T) {
	r, db := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/leads/capture", map[string]interface{}{
		"name":  "Walk In",
		"phone": "9123456789",
	})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, "new", dataField(t, resp, "status"))
	assert.Equal(t, "walk_in", dataField(t, resp, "source"))

	var count int64
	db.Model(&model.Lead{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLeadCaptureAPIBadPhone(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/leads/capture", map[string]interface{}{
		"name":  "Walk In",
		"phone": "12-34",
	})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeValidationFailed, resp.Code)

	fields, ok := dataField(t, resp, "fields").(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "phone")
}

func TestLeadUpdateAPI(t *testing.T) {
	r, db := setupTestRouter(t)

	lead := testutil.TestLead(t, db)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/leads/%d", lead.ID),
		map[string]interface{}{"status": "contacted", "interest_level": 8})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, "contacted", dataField(t, resp, "status"))
	assert.NotEmpty(t, dataField(t, resp, "last_contacted"))
}

func TestLeadConvertAPI(t *testing.T) {
	r, db := setupTestRouter(t)

	lead := testutil.TestLead(t, db)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/leads/%d/convert", lead.ID),
		map[string]interface{}{"payment_amount": 2000, "membership_type": "quarterly"})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	var reloaded model.Lead
	require.NoError(t, db.First(&reloaded, lead.ID).Error)
	assert.Equal(t, "converted", reloaded.Status)
	require.NotNil(t, reloaded.ConvertedMemberID)

	var member model.Member
	require.NoError(t, db.First(&member, *reloaded.ConvertedMemberID).Error)
	assert.Equal(t, lead.Name, member.Name)
	assert.Equal(t, "quarterly", member.MembershipType)
}

func TestLeadConvertAPIValidationFailure(t *testing.T) {
	r, db := setupTestRouter(t)

	lead := testutil.TestLead(t, db)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/leads/%d/convert", lead.ID),
		map[string]interface{}{"payment_amount": 0})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeValidationFailed, resp.Code)

	var reloaded model.Lead
	require.NoError(t, db.First(&reloaded, lead.ID).Error)
	assert.Equal(t, "new", reloaded.Status)
}

func TestLeadStatsAPI(t *testing.T) {
	r, db := setupTestRouter(t)

	testutil.TestLead(t, db)
	testutil.TestLead(t, db, testutil.WithLeadStatus("converted"))

	w := doJSON(t, r, http.MethodGet, "/leads/stats", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, float64(2), dataField(t, resp, "total"))
	assert.Equal(t, float64(1), dataField(t, resp, "converted"))
	assert.Equal(t, float64(50), dataField(t, resp, "conversion_rate"))
}

func TestDashboardStatsAPI(t *testing.T) {
	r, db := setupTestRouter(t)

	testutil.TestMember(t, db)
	testutil.TestLead(t, db)

	w := doJSON(t, r, http.MethodGet, "/dashboard/stats", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, float64(1), dataField(t, resp, "total_members"))
	assert.Equal(t, float64(1), dataField(t, resp, "total_leads"))
}
