package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/tmalu/studyhub/api/echo"
	"github.com/tmalu/studyhub/core/user"
)

func Test_authApi_register(t *testing.T) {
	path := "/v1/auth/register"
	createUser(t, "taken@wiu.edu", "Univ3rse&Beyond", false)

	tests := []httpTest{
		{
			name: "empty body", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
		{
			name: "invalid email", body: []byte(`{"email":"lol","password":"Univ3rse&Beyond"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "foreign domain", body: []byte(`{"email":"jane@gmail.com","password":"Univ3rse&Beyond"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "only @wiu.edu emails are allowed"}),
		},
		{
			name: "short password", body: []byte(`{"email":"jane@wiu.edu","password":"short"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password must contain at least 8 characters"}),
		},
		{
			name: "numeric password", body: []byte(`{"email":"jane@wiu.edu","password":"1234567890"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password cannot be entirely numeric"}),
		},
		{
			name: "password similar to email", body: []byte(`{"email":"janedoe@wiu.edu","password":"janedoe1"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "password cannot be similar to the email address"}),
		},
		{
			name: "duplicate email", body: []byte(`{"email":"Taken@wiu.edu","password":"Univ3rse&Beyond"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "a user with this email already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("register ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, path, []byte(`{"email":"John.Doe@wiu.edu","password":"Univ3rse&Beyond"}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var usr user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
		assert.True(t, usr.ID > 0)
		assert.Equal(t, "john.doe@wiu.edu", usr.Email)
		assert.False(t, usr.IsAdmin)
		assert.False(t, usr.CreatedAt.IsZero())

		// welcome email
		var found bool
		for _, msg := range mailSvc.SentMessages() {
			for _, addr := range msg.To {
				if addr.Address == usr.Email {
					found = true
				}
			}
		}
		assert.True(t, found, "welcome email not sent")
	})
}

func Test_authApi_login(t *testing.T) {
	path := "/v1/auth/login"
	usr := createUser(t, "login@wiu.edu", "Univ3rse&Beyond", false)

	invalidCreds := marchallObj(t, httpErr{Error: "invalid credentials"})
	tests := []httpTest{
		{
			name: "empty body", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
		{name: "unknown user", body: []byte(`{"email":"ghost@wiu.edu","password":"Univ3rse&Beyond"}`), wantCode: http.StatusBadRequest, wantData: invalidCreds},
		{name: "wrong password", body: []byte(`{"email":"login@wiu.edu","password":"nope-nope"}`), wantCode: http.StatusBadRequest, wantData: invalidCreds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("login ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, path, []byte(`{"email":"Login@wiu.edu","password":"Univ3rse&Beyond"}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, usr.ID, resp.User.ID)
		assert.Equal(t, usr.Email, resp.User.Email)
		assert.False(t, resp.User.LastLogin.IsZero())

		// the token must open a protected route
		req, rec = newAuthRequest(http.MethodGet, "/v1/courses/all-courses", resp.Token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}
