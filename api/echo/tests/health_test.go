package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmalu/studyhub/core/health"
)

func Test_healthApi_water(t *testing.T) {
	usr := createUser(t, "hydrated@wiu.edu", "Univ3rse&Beyond", false)
	other := createUser(t, "hydrated2@wiu.edu", "Univ3rse&Beyond", false)
	token := getToken(t, usr)

	health.NowFunc = func() time.Time { return time.Date(2021, time.June, 16, 12, 0, 0, 0, time.UTC) }
	defer func() { health.NowFunc = time.Now }()

	logWater := func(t *testing.T, day string, glasses int) health.WaterLog {
		t.Helper()
		body := marchallObj(t, health.NewWaterLog{Email: "hydrated@wiu.edu", Day: day, Glasses: glasses})
		req, rec := newAuthRequest(http.MethodPost, "/v1/health/water", token, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var wl health.WaterLog
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wl))
		assert.Equal(t, usr.ID, wl.UserID)
		return wl
	}

	t.Run("log defaults to today", func(t *testing.T) {
		wl := logWater(t, "", 4)
		assert.Equal(t, time.Date(2021, time.June, 16, 0, 0, 0, 0, time.UTC), wl.Day)
		assert.Equal(t, 4, wl.Glasses)
		assert.False(t, wl.GoalReached())
	})

	t.Run("log is an upsert", func(t *testing.T) {
		wl := logWater(t, "2021-06-16", 10)
		assert.Equal(t, 10, wl.Glasses)
		assert.True(t, wl.GoalReached())

		req, rec := newAuthRequest(http.MethodGet, "/v1/health/water/hydrated@wiu.edu", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, wl)}, rec)
	})

	createTests := []httpTest{
		{name: "auth required", body: []byte(`{}`), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "cannot log for others", token: getToken(t, other),
			body:     marchallObj(t, health.NewWaterLog{Email: "hydrated@wiu.edu", Glasses: 2}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "too many glasses", token: token,
			body:     marchallObj(t, health.NewWaterLog{Email: "hydrated@wiu.edu", Glasses: 11}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"glasses": "glasses must be 10 or less"}),
		},
		{
			name: "negative glasses", token: token,
			body:     marchallObj(t, health.NewWaterLog{Email: "hydrated@wiu.edu", Glasses: -1}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"glasses": "glasses must be 0 or greater"}),
		},
		{
			name: "malformed day", token: token,
			body:     marchallObj(t, health.NewWaterLog{Email: "hydrated@wiu.edu", Day: "16/06/2021", Glasses: 2}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"day": "day must look like 2006-01-02"}),
		},
	}
	for _, tt := range createTests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/health/water", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("history", func(t *testing.T) {
		todayLog := logWater(t, "2021-06-16", 10)
		pastLog := logWater(t, "2021-06-15", 7)

		req, rec := newAuthRequest(http.MethodGet, "/v1/health/water/hydrated@wiu.edu/history", token)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var logs []health.WaterLog
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
		require.Len(t, logs, 2)
		for _, wl := range logs {
			assert.Contains(t, []int{todayLog.ID, pastLog.ID}, wl.ID)
		}
	})

	queryTests := []httpTest{
		{name: "get: auth required", path: "/v1/health/water/hydrated@wiu.edu", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "get: other user's log hidden", path: "/v1/health/water/hydrated@wiu.edu", token: getToken(t, other),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "get: no log for day", path: "/v1/health/water/hydrated@wiu.edu?day=2020-01-01", token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "get: bad day param", path: "/v1/health/water/hydrated@wiu.edu?day=lol", token: token,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid day; expected YYYY-MM-DD"}),
		},
	}
	for _, tt := range queryTests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
