package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/fblogin/internal/middleware"
	"github.com/hitoshi/fblogin/internal/model"
)

// --- モック定義 ---

type mockAuthenticator struct {
	performFn func(ctx context.Context, input model.AuthenticationInput) error
	inputs    []model.AuthenticationInput
}

func (m *mockAuthenticator) Perform(ctx context.Context, input model.AuthenticationInput) error {
	m.inputs = append(m.inputs, input)
	if m.performFn != nil {
		return m.performFn(ctx, input)
	}
	return nil
}

var _ FacebookAuthenticator = (*mockAuthenticator)(nil)

func postLogin(h *LoginHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/login/facebook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.FacebookLogin(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) middleware.ErrorResponseBody {
	t.Helper()
	var body middleware.ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

// --- テスト ---

func TestFacebookLogin_Success_Returns204(t *testing.T) {
	svc := &mockAuthenticator{}
	h := NewLoginHandler(svc)

	w := postLogin(h, `{"token":"any_token"}`)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if len(svc.inputs) != 1 || svc.inputs[0].Token != "any_token" {
		t.Errorf("Perform inputs = %+v, want one call with any_token", svc.inputs)
	}
}

func TestFacebookLogin_AuthenticationError_Returns401(t *testing.T) {
	svc := &mockAuthenticator{
		performFn: func(ctx context.Context, input model.AuthenticationInput) error {
			return model.ErrAuthentication
		},
	}
	h := NewLoginHandler(svc)

	w := postLogin(h, `{"token":"invalid_token"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if body := decodeError(t, w); body.Code != model.ErrCodeUnauthorized {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeUnauthorized)
	}
}

func TestFacebookLogin_CollaboratorError_Returns500(t *testing.T) {
	svc := &mockAuthenticator{
		performFn: func(ctx context.Context, input model.AuthenticationInput) error {
			return errors.New("failed to load user account: connection refused")
		},
	}
	h := NewLoginHandler(svc)

	w := postLogin(h, `{"token":"any_token"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	body := decodeError(t, w)
	if strings.Contains(body.Message, "connection refused") {
		t.Error("internal error details must not be exposed")
	}
}

func TestFacebookLogin_InvalidRequest_Returns400(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "空ボディ", body: ""},
		{name: "JSONでない", body: "token=abc"},
		{name: "tokenなし", body: `{}`},
		{name: "tokenが空白のみ", body: `{"token":"   "}`},
		{name: "tokenが文字列でない", body: `{"token":123}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthenticator{}
			h := NewLoginHandler(svc)

			w := postLogin(h, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if body := decodeError(t, w); body.Code != model.ErrCodeBadRequest {
				t.Errorf("code = %q, want %q", body.Code, model.ErrCodeBadRequest)
			}
			if len(svc.inputs) != 0 {
				t.Error("Perform should not be called for an invalid request")
			}
		})
	}
}

func TestFacebookLogin_TrimsToken(t *testing.T) {
	svc := &mockAuthenticator{}
	h := NewLoginHandler(svc)

	postLogin(h, `{"token":"  any_token \n"}`)

	if len(svc.inputs) != 1 || svc.inputs[0].Token != "any_token" {
		t.Errorf("Perform inputs = %+v, want trimmed token", svc.inputs)
	}
}
