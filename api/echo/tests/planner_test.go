package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmalu/studyhub/core/planner"
)

func Test_plannerApi(t *testing.T) {
	usr := createUser(t, "planner@wiu.edu", "Univ3rse&Beyond", false)
	other := createUser(t, "planner2@wiu.edu", "Univ3rse&Beyond", false)
	token := getToken(t, usr)

	addTask := func(t *testing.T, title, category string) planner.Task {
		t.Helper()
		body := marchallObj(t, planner.NewTask{
			Email:    "planner@wiu.edu",
			Title:    title,
			Date:     "2025-11-03",
			Time:     "09:30",
			Category: category,
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/planner", token, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var task planner.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
		assert.Equal(t, usr.ID, task.UserID)
		assert.False(t, task.Done)
		return task
	}

	revise := addTask(t, "Revise algorithms notes", planner.CategoryDaily)
	report := addTask(t, "Submit lab report", planner.CategoryWeekly)

	createTests := []httpTest{
		{name: "auth required", body: []byte(`{}`), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "cannot plan for others", token: getToken(t, other),
			body:     marchallObj(t, planner.NewTask{Email: "planner@wiu.edu", Title: "x", Date: "2025-11-03", Category: planner.CategoryDaily}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "empty body", body: []byte(`{"email":"planner@wiu.edu"}`), token: token, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"title":    "this field is required",
				"date":     "this field is required",
				"category": "this field is required",
			}),
		},
		{
			name: "bad category", token: token,
			body:     marchallObj(t, planner.NewTask{Email: "planner@wiu.edu", Title: "x", Date: "2025-11-03", Category: "yearly"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"category": "category must be one of [daily weekly monthly]"}),
		},
	}
	for _, tt := range createTests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/planner", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("query tasks", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, revise, report)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/planner/planner@wiu.edu", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("other user's tasks hidden", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/planner/planner@wiu.edu", getToken(t, other))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("toggle", func(t *testing.T) {
		path := fmt.Sprintf("/v1/planner/tasks/%d/toggle", revise.ID)

		req, rec := newAuthRequest(http.MethodPut, path, getToken(t, other))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)

		req, rec = newAuthRequest(http.MethodPut, path, token)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var task planner.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
		assert.True(t, task.Done)

		// toggling again flips it back
		req, rec = newAuthRequest(http.MethodPut, path, token)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
		assert.False(t, task.Done)
	})

	t.Run("set note", func(t *testing.T) {
		path := fmt.Sprintf("/v1/planner/tasks/%d/note", report.ID)

		req, rec := newAuthRequest(http.MethodPut, path, token, []byte(`{"note":" chapters 4-6 "}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var task planner.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
		assert.Equal(t, "chapters 4-6", task.Note.String)

		// clearing the note nulls it
		req, rec = newAuthRequest(http.MethodPut, path, token, []byte(`{"note":""}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
		assert.False(t, task.Note.Valid)
	})

	t.Run("delete", func(t *testing.T) {
		path := fmt.Sprintf("/v1/planner/tasks/%d", revise.ID)

		req, rec := newAuthRequest(http.MethodDelete, path, getToken(t, other))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)

		req, rec = newAuthRequest(http.MethodDelete, path, token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, map[string]string{"message": "task deleted successfully"})}, rec)

		req, rec = newAuthRequest(http.MethodDelete, path, token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)

		req, rec = newAuthRequest(http.MethodGet, "/v1/planner/planner@wiu.edu", token)
		app.ServeHTTP(rec, req)
		var tasks []planner.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
		require.Len(t, tasks, 1)
		assert.Equal(t, report.ID, tasks[0].ID)
	})
}
