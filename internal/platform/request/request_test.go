// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getemall/getemall/internal/platform/apperr"
	"github.com/getemall/getemall/internal/platform/constants"
	"github.com/getemall/getemall/internal/platform/ctxutil"
	requestutil "github.com/getemall/getemall/internal/platform/request"
	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/internal/platform/session"
)

func withParam(request *http.Request, name, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(name, value)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

/*
TestIntParam accepts positive integers only.
*/
func TestIntParam(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{name: "valid", value: "42", want: 42},
		{name: "zero", value: "0", wantErr: true},
		{name: "negative", value: "-3", wantErr: true},
		{name: "text", value: "abc", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.value)

			got, err := requestutil.IntParam(request, "id")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestMediaType ignores parameters and rejects unexpected types.
*/
func TestMediaType(t *testing.T) {
	request := httptest.NewRequest(http.MethodPatch, "/", nil)
	request.Header.Set(constants.HeaderContentType, "application/merge-patch+json; charset=utf-8")

	assert.Equal(t, constants.MediaTypeMergePatch, requestutil.MediaType(request))
	assert.NoError(t, requestutil.RequireMediaType(request, constants.MediaTypeMergePatch))

	err := requestutil.RequireMediaType(request, constants.MediaTypeJSON)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, apperr.As(err).HTTPStatus)

	assert.Empty(t, requestutil.MediaType(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	ok := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"acme"}`))
	require.NoError(t, requestutil.DecodeJSON(ok, &target))
	assert.Equal(t, "acme", target.Name)

	broken := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, requestutil.DecodeJSON(broken, &target))
}

/*
TestRequiredUser rejects anonymous sessions.
*/
func TestRequiredUser(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	current := session.New("sid")
	request = request.WithContext(ctxutil.WithSession(request.Context(), current))

	_, err := requestutil.RequiredUser(request)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)

	current.SetUser(&sec.User{Name: "jane", Role: sec.RoleRegularUser})
	user, err := requestutil.RequiredUser(request)
	require.NoError(t, err)
	assert.Equal(t, "jane", user.Name)
}
