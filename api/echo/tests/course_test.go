package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmalu/studyhub/core/course"
)

func Test_courseApi_queryCourses(t *testing.T) {
	path := "/v1/courses/all-courses"
	usr := createUser(t, "catalog@wiu.edu", "Univ3rse&Beyond", false)
	crs := createCourse(t, "Master of Computer Science")

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, path)
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("get all", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, path, getToken(t, usr))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var courses []course.Course
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
		var found bool
		for _, c := range courses {
			if c.ID == crs.ID {
				found = true
				assert.Equal(t, crs.Name, c.Name)
			}
		}
		assert.True(t, found)
	})
}

func Test_courseApi_querySubjects(t *testing.T) {
	usr := createUser(t, "subjects@wiu.edu", "Univ3rse&Beyond", false)
	other := createUser(t, "subjects2@wiu.edu", "Univ3rse&Beyond", false)
	admin := createUser(t, "subjects-admin@wiu.edu", "Univ3rse&Beyond", true)

	mcs := createCourse(t, "Subjects: Master of Computer Science")
	algo := createSubject(t, mcs.ID, "Advanced Algorithms", 3)
	dist := createSubject(t, mcs.ID, "Distributed Systems", 3)
	mba := createCourse(t, "Subjects: MBA")
	acct := createSubject(t, mba.ID, "Accounting", 3)

	semester := course.CurrentSemester().String()
	createRegistration(t, usr, algo, semester, "")
	createRegistration(t, usr, acct, semester, "")

	token := getToken(t, usr)
	notEnrolled := marchallObj(t, httpErr{Error: "no enrollment found"})

	tests := []httpTest{
		{name: "auth required", path: "/v1/courses/subjects@wiu.edu", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "other user's subjects hidden", path: "/v1/courses/subjects@wiu.edu", token: getToken(t, other),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "no enrollment", path: "/v1/courses/subjects2@wiu.edu", token: getToken(t, other),
			wantCode: http.StatusNotFound, wantData: notEnrolled,
		},
		{
			name: "all enrolled courses", path: "/v1/courses/subjects@wiu.edu", token: token,
			wantCode: http.StatusOK, wantData: marchallList(t, algo, dist, acct),
		},
		{
			name: "narrowed to one course", path: fmt.Sprintf("/v1/courses/subjects@wiu.edu?course=%d", mcs.ID), token: token,
			wantCode: http.StatusOK, wantData: marchallList(t, algo, dist),
		},
		{
			name: "narrowed to course not enrolled in", path: "/v1/courses/subjects@wiu.edu?course=99999", token: token,
			wantCode: http.StatusNotFound, wantData: notEnrolled,
		},
		{
			name: "bad course param", path: "/v1/courses/subjects@wiu.edu?course=lol", token: token,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid course id"}),
		},
		{
			name: "admin sees any user", path: fmt.Sprintf("/v1/courses/subjects@wiu.edu?course=%d", mba.ID), token: getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallList(t, acct),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_courseApi_register(t *testing.T) {
	path := "/v1/courses/register-course"
	usr := createUser(t, "enroll@wiu.edu", "Univ3rse&Beyond", false)
	other := createUser(t, "enroll2@wiu.edu", "Univ3rse&Beyond", false)

	mcs := createCourse(t, "Enroll: Master of Computer Science")
	algo := createSubject(t, mcs.ID, "Advanced Algorithms", 3)
	bulk := createSubject(t, mcs.ID, "Directed Research", 30)
	tiny := createSubject(t, mcs.ID, "Seminar", 1)

	semester := course.CurrentSemester().String()
	token := getToken(t, usr)
	body := func(email string, subjectID int, semester string) []byte {
		return []byte(fmt.Sprintf(`{"email":%q,"subject_id":%d,"semester":%q}`, email, subjectID, semester))
	}

	t.Run("register ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, token, body("enroll@wiu.edu", algo.ID, semester))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var reg course.Registration
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
		assert.True(t, reg.ID > 0)
		assert.Equal(t, usr.ID, reg.UserID)
		assert.Equal(t, algo.ID, reg.SubjectID)
		assert.Equal(t, mcs.ID, reg.CourseID) // always the subject's parent course
		assert.Equal(t, algo.Name, reg.Name)
		assert.Equal(t, semester, reg.Semester)
		assert.False(t, reg.Grade.Valid)
	})

	tests := []httpTest{
		{name: "auth required", body: body("enroll@wiu.edu", algo.ID, semester), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "cannot enroll others", body: body("enroll@wiu.edu", algo.ID, semester), token: getToken(t, other),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "unknown subject", body: body("enroll@wiu.edu", 99999, semester), token: token,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"subject_id": "subject not found"}),
		},
		{
			name: "malformed semester", body: body("enroll@wiu.edu", algo.ID, "whenever"), token: token,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"semester": `semester must look like "Fall 2024"`}),
		},
		{
			name: "past semester", body: body("enroll@wiu.edu", algo.ID, "Fall 2019"), token: token,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"semester": "registration is only open for the current semester"}),
		},
		{
			name: "duplicate registration", body: body("enroll@wiu.edu", algo.ID, semester), token: token,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"subject_id": "subject already registered for this semester"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("credit cap", func(t *testing.T) {
		// 3 (algo) + 30 (bulk) hits the cap exactly
		req, rec := newAuthRequest(http.MethodPost, path, token, body("enroll@wiu.edu", bulk.ID, semester))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		// one more credit goes over
		req, rec = newAuthRequest(http.MethodPost, path, token, body("enroll@wiu.edu", tiny.ID, semester))
		app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"semester": "registering this subject would exceed the 33 credit limit"}),
		}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_courseApi_destroyRegistration(t *testing.T) {
	usr := createUser(t, "drop@wiu.edu", "Univ3rse&Beyond", false)
	other := createUser(t, "drop2@wiu.edu", "Univ3rse&Beyond", false)

	mcs := createCourse(t, "Drop: Master of Computer Science")
	algo := createSubject(t, mcs.ID, "Advanced Algorithms", 3)

	semester := course.CurrentSemester().String()
	reg := createRegistration(t, usr, algo, semester, "")
	path := fmt.Sprintf("/v1/courses/registrations/%d", reg.ID)

	tests := []httpTest{
		{name: "auth required", path: path, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "other user's registration hidden", path: path, token: getToken(t, other),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "non-numeric id", path: "/v1/courses/registrations/lol", token: getToken(t, usr),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "delete ok", path: path, token: getToken(t, usr),
			wantCode: http.StatusOK, wantData: marchallObj(t, map[string]string{"message": "course deleted successfully"}),
		},
		{
			name: "already deleted", path: path, token: getToken(t, usr),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodDelete, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("deleted registration leaves no enrollment", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/courses/drop@wiu.edu", getToken(t, usr))
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "no enrollment found"})}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_courseApi_queryCompleted(t *testing.T) {
	usr := createUser(t, "alumni@wiu.edu", "Univ3rse&Beyond", false)

	mcs := createCourse(t, "Alumni: Master of Computer Science")
	algo := createSubject(t, mcs.ID, "Advanced Algorithms", 3)
	dist := createSubject(t, mcs.ID, "Distributed Systems", 3)

	semester := course.CurrentSemester().String()
	past := createRegistration(t, usr, algo, "Fall 2019", "A-")
	createRegistration(t, usr, dist, semester, "")

	token := getToken(t, usr)
	tests := []httpTest{
		{name: "auth required", path: "/v1/courses/alumni@wiu.edu/completed", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "only past semesters", path: "/v1/courses/alumni@wiu.edu/completed", token: token,
			wantCode: http.StatusOK, wantData: marchallList(t, past),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
