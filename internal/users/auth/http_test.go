// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getemall/getemall/internal/platform/constants"
	"github.com/getemall/getemall/internal/platform/ctxutil"
	"github.com/getemall/getemall/internal/platform/middleware"
	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/internal/platform/session"
	"github.com/getemall/getemall/internal/users/auth"
)

type failingDao struct{}

func (failingDao) GetUserByUsername(context.Context, string) (*sec.User, error) {
	return nil, auth.ErrUserStoreUnavailable
}

func (failingDao) Authenticate(context.Context, string, string) (*sec.User, error) {
	return nil, errors.New("wrapped: " + auth.ErrUserStoreUnavailable.Error())
}

func newRouter(dao auth.UserDao) chi.Router {
	router := chi.NewRouter()
	middleware.Mount(router, discardLogger(), auth.NewHandler(dao, discardLogger()).Routes()...)
	return router
}

func serve(router http.Handler, current *session.Session, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request.WithContext(ctxutil.WithSession(request.Context(), current)))
	return recorder
}

/*
TestLogin covers both body encodings, rejection and store failure.
*/
func TestLogin(t *testing.T) {
	memory := auth.NewMemoryUserDao(sec.User{Name: "admin", HashedPass: mustHash(t, "s3cret"), Role: sec.RoleAdmin})

	jsonLogin := func(password string) *http.Request {
		body := `{"username":"admin","password":"` + password + `"}`
		request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		request.Header.Set(constants.HeaderContentType, constants.MediaTypeJSON)
		return request
	}

	tests := []struct {
		name     string
		dao      auth.UserDao
		request  *http.Request
		wantCode int
		wantUser bool
		wantFlag session.Flag
	}{
		{"json_success", memory, jsonLogin("s3cret"), http.StatusOK, true, session.FlagAuthSucceeded},
		{"json_rejected", memory, jsonLogin("nope"), http.StatusUnauthorized, false, session.FlagAuthFailed},
		{"store_failure", failingDao{}, jsonLogin("s3cret"), http.StatusServiceUnavailable, false, session.FlagAuthError},
		{
			name: "form_success_redirects",
			dao:  memory,
			request: func() *http.Request {
				form := url.Values{"username": {"admin"}, "password": {"s3cret"}, "loginRedirect": {"/organizations"}}
				request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
				request.Header.Set(constants.HeaderContentType, constants.MediaTypeForm)
				return request
			}(),
			wantCode: http.StatusSeeOther,
			wantUser: true,
			wantFlag: session.FlagAuthSucceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := session.New("sid")

			recorder := serve(newRouter(tt.dao), current, tt.request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantUser, current.CurrentUser() != nil)
			assert.Equal(t, tt.wantUser, current.ID != "sid", "session id renewed on login")
			assert.Equal(t, []session.Flag{tt.wantFlag}, current.ConsumeFlags())
		})
	}
}

/*
TestLogin_MissingFields rejects incomplete credentials before any lookup.
*/
func TestLogin_MissingFields(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin"}`))

	recorder := serve(newRouter(failingDao{}), session.New("sid"), request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestLogoutAndLoginState clears the user and reports the flag once.
*/
func TestLogoutAndLoginState(t *testing.T) {
	router := newRouter(auth.NewMemoryUserDao())
	current := session.New("sid")
	current.SetUser(&sec.User{Name: "admin", Role: sec.RoleAdmin})

	state := func() map[string]any {
		recorder := serve(router, current, httptest.NewRequest(http.MethodGet, "/api/admin/loginState", nil))
		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
		return envelope.Data
	}

	before := state()
	assert.Equal(t, true, before["logged"])
	assert.Equal(t, "admin", before["user"])
	assert.Equal(t, "ADMIN", before["role"])

	recorder := serve(router, current, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.NotEqual(t, "sid", current.ID)
	assert.Equal(t, "sid", current.PreviousID())

	after := state()
	assert.Equal(t, false, after["logged"])
	assert.Equal(t, "ANONYMOUS", after["role"])
	assert.Equal(t, []any{"loggedOut"}, after["flags"])

	assert.Equal(t, []any{}, state()["flags"])
}
