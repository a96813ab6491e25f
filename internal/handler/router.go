package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/hitoshi/fblogin/internal/metrics"
	"github.com/hitoshi/fblogin/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger             *slog.Logger
	Metrics            metrics.Recorder
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	HealthChecker HealthChecker

	// 認証
	AuthService FacebookAuthenticator
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Recovery → Logging → Metrics → SecurityHeaders → CORS
//
// /health と /metrics はCORSの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := deps.Metrics
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.NewRecoveryMiddleware(logger))
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(recorder))

	healthHandler := NewHealthHandler(deps.HealthChecker)
	loginHandler := NewLoginHandler(deps.AuthService)

	// --- 運用向けルート ---
	r.Get("/health", healthHandler.Health)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- ログインAPI ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSecurityHeadersMiddleware())
		r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigins))

		r.Route("/api/login", func(r chi.Router) {
			r.Post("/facebook", loginHandler.FacebookLogin)
			// プリフライトはCORSミドルウェアが204で応答する。ルートがないとchiが405を返す
			r.Options("/facebook", func(w http.ResponseWriter, r *http.Request) {})
		})
	})

	return r
}
