package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/server/http/dto"
	"github.com/polkiloo/interviewprep/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/interviewprep/internal/test"
	"github.com/polkiloo/interviewprep/internal/test/facadetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func performRequest(t *testing.T, method, path, route string, handler gin.HandlerFunc, setup func(*gin.Context), body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", resp.Body.String(), err)
	}
	return body
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != "" {
		t.Fatalf("expected empty id when not set, got %q", got)
	}

	c.Set(middleware.UserIDContextKey, "admin-1")
	if got := CurrentUserID(c); got != "admin-1" {
		t.Fatalf("expected admin-1, got %q", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	email := testhelpers.RandomEmail()
	password := testhelpers.RandomASCIIString(16, 32)
	facade := &facadetest.PrepFacadeStub{RegisterFn: func(ctx context.Context, gotEmail, gotPassword string) (string, error) {
		if gotEmail != email || gotPassword != password {
			t.Errorf("unexpected credentials passed to facade: %q %q", gotEmail, gotPassword)
		}
		return "token", nil
	}}

	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(facade, discardLogger()).Register, nil,
		jsonBody(t, dto.AuthRequest{Email: email, Password: password}), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") != "Bearer token" {
		t.Fatalf("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		field  string
	}{
		{"missing credentials", domainErrors.ErrInvalidCredentials, http.StatusBadRequest, ""},
		{"bad email", &domainErrors.ValidationError{Field: "email", Reason: "must be a valid email address"}, http.StatusBadRequest, "email"},
		{"duplicate", domainErrors.ErrAlreadyExists, http.StatusConflict, ""},
		{"internal", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := &facadetest.PrepFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) { return "", tc.err }}
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(facade, discardLogger()).Register, nil,
				jsonBody(t, dto.AuthRequest{Email: "a@example.com", Password: "p"}), jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			body := decodeError(t, resp)
			if body.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, body.Field)
			}
			if strings.Contains(body.Error, "boom") {
				t.Fatalf("internal cause leaked: %q", body.Error)
			}
		})
	}

	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(&facadetest.PrepFacadeStub{}, discardLogger()).Register, nil,
		strings.NewReader("{"), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	facade := &facadetest.PrepFacadeStub{}
	handler := NewAuthHandler(facade, discardLogger())

	resp := performRequest(t, http.MethodPost, "/login", "/login", handler.Login, nil,
		jsonBody(t, dto.AuthRequest{Email: "a@example.com", Password: "p"}), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	facade.AuthenticateFn = func(context.Context, string, string) (string, error) { return "", domainErrors.ErrInvalidCredentials }
	resp = performRequest(t, http.MethodPost, "/login", "/login", handler.Login, nil,
		jsonBody(t, dto.AuthRequest{Email: "a@example.com", Password: "p"}), jsonHeaders)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthHandlerAdminLogin(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"bad password", domainErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not admin", domainErrors.ErrForbidden, http.StatusForbidden},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := &facadetest.PrepFacadeStub{AdminLoginFn: func(context.Context, string, string) (string, error) {
				if tc.err != nil {
					return "", tc.err
				}
				return "admin-token", nil
			}}
			resp := performRequest(t, http.MethodPost, "/admin/login", "/admin/login", NewAuthHandler(facade, discardLogger()).AdminLogin, nil,
				jsonBody(t, dto.AuthRequest{Email: "admin@example.com", Password: "p"}), jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			if tc.err == nil {
				result := resp.Result()
				defer result.Body.Close()
				if cookies := result.Cookies(); len(cookies) == 0 || cookies[0].Value != "admin-token" {
					t.Fatalf("expected auth cookie, got %+v", cookies)
				}
			}
		})
	}
}

func TestAuthHandlerAdminSetup(t *testing.T) {
	facade := &facadetest.PrepFacadeStub{}
	handler := NewAuthHandler(facade, discardLogger())

	resp := performRequest(t, http.MethodPost, "/setup", "/setup", handler.AdminSetup, nil, nil, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var created dto.AdminSetupResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Email != "admin@example.com" || created.Password != "generated" {
		t.Fatalf("unexpected setup response %+v", created)
	}

	facade.SetupFn = func(context.Context) (string, string, error) { return "", "", domainErrors.ErrAlreadyExists }
	resp = performRequest(t, http.MethodPost, "/setup", "/setup", handler.AdminSetup, nil, nil, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}

	facade.SetupFn = func(context.Context) (string, string, error) { return "", "", errors.New("boom") }
	resp = performRequest(t, http.MethodPost, "/setup", "/setup", handler.AdminSetup, nil, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	facade := &facadetest.PrepFacadeStub{}
	handler := NewHealthHandler(facade, discardLogger())

	resp := performRequest(t, http.MethodGet, "/healthz", "/healthz", handler.Check, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	facade.HealthErr = errors.New("db down")
	resp = performRequest(t, http.MethodGet, "/healthz", "/healthz", handler.Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
