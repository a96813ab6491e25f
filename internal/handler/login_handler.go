// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/fblogin/internal/middleware"
	"github.com/hitoshi/fblogin/internal/model"
)

// ログインリクエストボディの上限（バイト）
const maxLoginBodySize = 64 << 10

var (
	errInvalidBody   = errors.New("request body must be a JSON object")
	errTokenRequired = errors.New("token is required")
)

// FacebookAuthenticator はログインハンドラーが必要とする認証サービスのインターフェース。
type FacebookAuthenticator interface {
	Perform(ctx context.Context, input model.AuthenticationInput) error
}

// LoginHandler はFacebookログインのHTTPハンドラー。
type LoginHandler struct {
	service FacebookAuthenticator
}

// NewLoginHandler はLoginHandlerを生成する。
func NewLoginHandler(service FacebookAuthenticator) *LoginHandler {
	return &LoginHandler{service: service}
}

// facebookLoginRequest はFacebookログインのリクエストボディ。
type facebookLoginRequest struct {
	Token string `json:"token"`
}

// FacebookLogin はFacebookのアクセストークンでログインする。
// POST /api/login/facebook
func (h *LoginHandler) FacebookLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodySize)

	var req facebookLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteHTTPResponse(w, middleware.BadRequest(errInvalidBody))
		return
	}

	token := strings.TrimSpace(req.Token)
	if token == "" {
		middleware.WriteHTTPResponse(w, middleware.BadRequest(errTokenRequired))
		return
	}

	err := h.service.Perform(r.Context(), model.AuthenticationInput{Token: token})
	switch {
	case errors.Is(err, model.ErrAuthentication):
		middleware.WriteHTTPResponse(w, middleware.Unauthorized())
	case err != nil:
		slog.Error("facebook login failed", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
