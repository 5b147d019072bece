package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPI_TriggerDailyReset(t *testing.T) {
	rr := doRequest(t, http.MethodPost, "/api/admin/settings/daily_reset",
		DailyResetSettings{VIPQuota: 100000, DefaultQuota: 20000}, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)

	vipUser := createAPIUser(t, "vip", 0, 321, false)
	defaultUser := createAPIUser(t, "default", 0, 654, false)
	enterpriseUser := createAPIUser(t, "enterprise", 0, 555, false)
	deletedVIP := createAPIUser(t, "vip", 7, 888, true)

	rr = doRequest(t, http.MethodPost, "/api/admin/actions/trigger_daily_reset", nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	var ok OkResponse
	requireJSON(t, rr, &ok)
	require.True(t, ok.Ok)

	quota, usedQuota := fetchQuota(t, vipUser)
	require.Equal(t, int64(100000), quota)
	require.Equal(t, int64(0), usedQuota)

	quota, usedQuota = fetchQuota(t, defaultUser)
	require.Equal(t, int64(20000), quota)
	require.Equal(t, int64(0), usedQuota)

	// Untouched: wrong group and soft-deleted.
	quota, usedQuota = fetchQuota(t, enterpriseUser)
	require.Equal(t, int64(0), quota)
	require.Equal(t, int64(555), usedQuota)

	quota, usedQuota = fetchQuota(t, deletedVIP)
	require.Equal(t, int64(7), quota)
	require.Equal(t, int64(888), usedQuota)
}

func TestAPI_TriggerDailyReset_Idempotent(t *testing.T) {
	rr := doRequest(t, http.MethodPost, "/api/admin/settings/daily_reset",
		DailyResetSettings{VIPQuota: 100000, DefaultQuota: 20000}, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)

	vipUser := createAPIUser(t, "vip", 0, 100, false)
	defaultUser := createAPIUser(t, "default", 0, 100, false)

	rr = doRequest(t, http.MethodPost, "/api/admin/actions/trigger_daily_reset", nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doRequest(t, http.MethodPost, "/api/admin/actions/trigger_daily_reset", nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)

	quota, usedQuota := fetchQuota(t, vipUser)
	require.Equal(t, int64(100000), quota)
	require.Equal(t, int64(0), usedQuota)

	quota, usedQuota = fetchQuota(t, defaultUser)
	require.Equal(t, int64(20000), quota)
	require.Equal(t, int64(0), usedQuota)
}
