package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/pkg/response"
	"github.com/fitforge/gym_go_server/internal/repository"
	"github.com/fitforge/gym_go_server/internal/service"
	"github.com/fitforge/gym_go_server/internal/testutil"
)

// setupTestRouter 用内存库搭一套不带认证的路由，
// 认证中间件单独在 middleware 包里测
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	memberRepo := repository.NewMemberRepository(db)
	paymentRepo := repository.NewPaymentRecordRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	memberSvc := service.NewMemberService(db, memberRepo, paymentRepo, nil, nil, nil)
	paymentSvc := service.NewPaymentService(db, memberRepo, paymentRepo, nil)
	leadSvc := service.NewLeadService(db, leadRepo, memberSvc, nil)
	dashboardSvc := service.NewDashboardService(memberRepo, paymentRepo, leadRepo)

	memberHandler := NewMemberHandler(memberSvc, paymentSvc)
	leadHandler := NewLeadHandler(leadSvc)
	dashboardHandler := NewDashboardHandler(dashboardSvc)

	r := gin.New()
	r.POST("/members", memberHandler.Enroll)
	r.POST("/members/quick", memberHandler.QuickEnroll)
	r.GET("/members", memberHandler.List)
	r.GET("/members/:id", memberHandler.Detail)
	r.PUT("/members/:id", memberHandler.Update)
	r.DELETE("/members/:id", memberHandler.Delete)
	r.POST("/members/:id/payments", memberHandler.RecordPayment)
	r.GET("/members/:id/payments", memberHandler.PaymentHistory)
	r.POST("/leads/capture", leadHandler.Capture)
	r.GET("/leads", leadHandler.List)
	r.GET("/leads/stats", leadHandler.Stats)
	r.PUT("/leads/:id", leadHandler.Update)
	r.POST("/leads/:id/convert", leadHandler.Convert)
	r.GET("/dashboard/stats", dashboardHandler.Stats)
	r.GET("/dashboard/reports", dashboardHandler.Reports)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *response.Response {
	t.Helper()

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func dataField(t *testing.T, resp *response.Response, key string) interface{} {
	t.Helper()

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is not an object")
	return data[key]
}
