// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/getemall/getemall/internal/platform/apperr"
	"github.com/getemall/getemall/internal/platform/constants"
	"github.com/getemall/getemall/internal/platform/ctxutil"
	"github.com/getemall/getemall/internal/platform/middleware"
	requestutil "github.com/getemall/getemall/internal/platform/request"
	"github.com/getemall/getemall/internal/platform/respond"
	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/internal/platform/session"
	"github.com/getemall/getemall/internal/platform/validate"
)

// # Request Payloads

// loginRequest carries the credentials sent as JSON or as an HTML form.
type loginRequest struct {
	Username      string `json:"username"      validate:"required"`
	Password      string `json:"password"      validate:"required"`
	LoginRedirect string `json:"loginRedirect"`
}

// loginResponse is the JSON answer to a successful login.
type loginResponse struct {
	*sec.User
	Redirect string `json:"redirect,omitempty"`
}

// loginStateResponse reports the session identity and the pending flags.
type loginStateResponse struct {
	Logged   bool           `json:"logged"`
	User     string         `json:"user,omitempty"`
	Role     sec.UserRole   `json:"role"`
	Flags    []session.Flag `json:"flags"`
	Redirect string         `json:"redirect,omitempty"`
}

// # Handler

// Handler serves the login endpoints over the request session.
type Handler struct {
	users  UserDao
	logger *slog.Logger
}

// NewHandler constructs a new auth [Handler].
func NewHandler(users UserDao, logger *slog.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// Routes returns the auth routing table.
func (h *Handler) Routes() []middleware.Route {
	return []middleware.Route{
		{Method: http.MethodPost, Pattern: "/login", Handler: h.login, Roles: sec.Anyone},
		{Method: http.MethodPost, Pattern: "/logout", Handler: h.logout, Roles: sec.Anyone},
		{Method: http.MethodGet, Pattern: "/api/admin/loginState", Handler: h.loginState, Roles: sec.Anyone},
	}
}

/*
POST /login.

Description: Authenticates the credentials and binds the user to the session.

Request (JSON or form):
  - username: string (required)
  - password: string (required)
  - loginRedirect: string (optional local path)

Response:
  - 200: user and the page to go back to (JSON requests)
  - 303: redirect to the requested or remembered local path (form requests)
  - 401: credentials rejected (flag authFailed)
  - 503: user store unavailable (flag authError)
*/
func (h *Handler) login(writer http.ResponseWriter, request *http.Request) {
	current := ctxutil.GetSession(request.Context())
	if current == nil {
		respond.Error(writer, request, apperr.Internal(nil))
		return
	}

	isForm := requestutil.MediaType(request) == constants.MediaTypeForm
	input, err := decodeLogin(request, isForm)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := h.users.Authenticate(request.Context(), input.Username, input.Password)
	if err != nil {
		current.SetFlag(session.FlagAuthError)
		respond.Error(writer, request, apperr.ServiceUnavailable("Unable to authenticate due an internal error"))
		return
	}
	if user == nil {
		current.SetFlag(session.FlagAuthFailed)
		respond.Error(writer, request, apperr.Unauthorized("Invalid username or password"))
		return
	}

	current.SetUser(user)
	current.Renew()
	current.SetFlag(session.FlagAuthSucceeded)
	ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "login_succeeded", slog.String("username", user.Name))

	redirect := current.TakeLoginRedirect()
	if input.LoginRedirect != "" {
		redirect = input.LoginRedirect
	}
	if !isLocalPath(redirect) {
		redirect = ""
	}

	if isForm {
		if redirect == "" {
			redirect = "/"
		}
		http.Redirect(writer, request, redirect, http.StatusSeeOther)
		return
	}

	respond.OK(writer, loginResponse{User: user, Redirect: redirect})
}

/*
POST /logout.

Description: Clears the session user.

Response:
  - 204: No Content
*/
func (h *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if current := ctxutil.GetSession(request.Context()); current != nil {
		current.ClearUser()
		current.Renew()
		current.SetFlag(session.FlagLoggedOut)
	}
	respond.NoContent(writer)
}

/*
GET /api/admin/loginState.

Description: Reports who is logged in and consumes the one-shot login flags.

Response:
  - 200: loginStateResponse
*/
func (h *Handler) loginState(writer http.ResponseWriter, request *http.Request) {
	current := ctxutil.GetSession(request.Context())

	state := loginStateResponse{Role: current.Role(), Flags: []session.Flag{}}
	if user := current.CurrentUser(); user != nil {
		state.Logged = true
		state.User = user.Name
	}
	if current != nil {
		state.Flags = current.ConsumeFlags()
		state.Redirect = current.LoginRedirect
	}

	respond.OK(writer, state)
}

// # Helpers

// decodeLogin reads the credentials from a form or a JSON body.
func decodeLogin(request *http.Request, isForm bool) (loginRequest, error) {
	var input loginRequest

	if isForm {
		if err := request.ParseForm(); err != nil {
			return input, apperr.BadRequest("Invalid form body")
		}
		input.Username = request.PostFormValue("username")
		input.Password = request.PostFormValue("password")
		input.LoginRedirect = request.PostFormValue("loginRedirect")
	} else if err := requestutil.DecodeJSON(request, &input); err != nil {
		return input, err
	}

	return input, validate.Struct(input)
}

// isLocalPath accepts same-origin absolute paths only.
func isLocalPath(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") && !strings.Contains(path, "\\")
}
