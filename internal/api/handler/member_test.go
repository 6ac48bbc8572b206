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

func TestMemberEnrollAPI(t *testing.T) {
	r, db := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/members", map[string]interface{}{
		"name":           "Rahul Sharma",
		"phone":          "9876543210",
		"payment_amount": 1500,
	})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, "Rahul Sharma", dataField(t, resp, "name"))
	assert.Equal(t, "monthly", dataField(t, resp, "membership_type"))

	var count int64
	db.Model(&model.Member{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMemberEnrollAPIValidationFailure(t *testing.T) {
	r, db := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/members", map[string]interface{}{
		"name":           "",
		"phone":          "",
		"payment_amount": 0,
	})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeValidationFailed, resp.Code)

	fields, ok := dataField(t, resp, "fields").(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "payment_amount")

	var count int64
	db.Model(&model.Member{}).Count(&count)
	assert.Zero(t, count)
}

func TestMemberRecordPaymentAPI(t *testing.T) {
	r, db := setupTestRouter(t)

	member := testutil.TestMember(t, db, testutil.WithPendingAmount(800))

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/members/%d/payments", member.ID),
		map[string]interface{}{"amount": 300, "payment_type": "card"})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	var reloaded model.Member
	require.NoError(t, db.First(&reloaded, member.ID).Error)
	assert.Equal(t, float64(500), reloaded.PendingAmount)
}

func TestMemberRecordPaymentAPIOverpay(t *testing.T) {
	r, db := setupTestRouter(t)

	member := testutil.TestMember(t, db, testutil.WithPendingAmount(100))

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/members/%d/payments", member.ID),
		map[string]interface{}{"amount": 500})

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeValidationFailed, resp.Code)
}

func TestMemberDetailAPINotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/members/9999", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestMemberListAPIWithFilter(t *testing.T) {
	r, db := setupTestRouter(t)

	testutil.TestMember(t, db, testutil.WithMemberName("Rahul Sharma"))
	testutil.TestMember(t, db, testutil.WithMemberName("Priya Patel"))

	w := doJSON(t, r, http.MethodGet, "/members?search=priya", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, float64(1), dataField(t, resp, "total"))
}

func TestMemberListAPIPaginationDefaults(t *testing.T) {
	r, db := setupTestRouter(t)

	testutil.TestMember(t, db)

	// 不带分页参数时，响应里的页码要回落到实际查询用的默认值
	w := doJSON(t, r, http.MethodGet, "/members", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, float64(1), dataField(t, resp, "page"))
	assert.Equal(t, float64(12), dataField(t, resp, "page_size"))

	// 超界的 page_size 同样回落
	w = doJSON(t, r, http.MethodGet, "/members?page=0&page_size=500", nil)
	resp = parseResponse(t, w)
	assert.Equal(t, float64(1), dataField(t, resp, "page"))
	assert.Equal(t, float64(12), dataField(t, resp, "page_size"))
}

func TestPaymentHistoryAPIPaginationDefaults(t *testing.T) {
	r, db := setupTestRouter(t)

	member := testutil.TestMember(t, db)
	testutil.TestPayment(t, db, member.ID, 500)

	w := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/members/%d/payments?page_size=0", member.ID), nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, float64(1), dataField(t, resp, "page"))
	assert.Equal(t, float64(10), dataField(t, resp, "page_size"))
	assert.Equal(t, float64(1), dataField(t, resp, "total"))
}

func TestMemberDeleteAPI(t *testing.T) {
	r, db := setupTestRouter(t)

	member := testutil.TestMember(t, db)
	testutil.TestPayment(t, db, member.ID, 500)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/members/%d", member.ID), nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	var count int64
	db.Model(&model.PaymentRecord{}).Count(&count)
	assert.Zero(t, count)
}

func TestMemberInvalidIDParam(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/members/abc", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeParamError, resp.Code)
}
