package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hitoshi/fblogin/internal/model"
	"github.com/hitoshi/fblogin/internal/security"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/facebook"
)

const (
	defaultFacebookGraphURL = "https://graph.facebook.com"
	defaultFacebookTimeout  = 10 * time.Second

	// Graph APIのレスポンスサイズ上限
	maxGraphResponseSize = 1 << 20
)

// errGraphRejected はGraph APIがリクエストを拒否したこと（429を除く4xx）を表す。
// トークン不正を意味するため、呼び出し側にはnilとして伝える。
// 5xxや429はGraph API側の障害としてエラーのまま返す。
var errGraphRejected = errors.New("graph api rejected request")

// FacebookAPIConfig はFacebook Graph APIクライアントの設定。
type FacebookAPIConfig struct {
	ClientID     string
	ClientSecret string

	// テスト用にオーバーライド可能なURL
	GraphURL string
	TokenURL string

	Timeout time.Duration
}

// FacebookAPI はFacebook Graph APIでアクセストークンを検証し、ユーザー情報を取得する。
type FacebookAPI struct {
	config    FacebookAPIConfig
	appToken  *clientcredentials.Config
	client    *http.Client
	sanitizer security.NameSanitizerService
}

// NewFacebookAPI はFacebookAPIを生成する。
// GraphURLのみ指定された場合、アプリトークンの取得先もGraphURL配下になる。
func NewFacebookAPI(config FacebookAPIConfig, sanitizer security.NameSanitizerService) *FacebookAPI {
	if config.TokenURL == "" {
		if config.GraphURL == "" {
			config.TokenURL = facebook.Endpoint.TokenURL
		} else {
			config.TokenURL = strings.TrimSuffix(config.GraphURL, "/") + "/oauth/access_token"
		}
	}
	if config.GraphURL == "" {
		config.GraphURL = defaultFacebookGraphURL
	}
	config.GraphURL = strings.TrimSuffix(config.GraphURL, "/")
	if config.Timeout <= 0 {
		config.Timeout = defaultFacebookTimeout
	}
	if sanitizer == nil {
		sanitizer = security.NewNameSanitizer()
	}

	return &FacebookAPI{
		config: config,
		appToken: &clientcredentials.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     config.TokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		client:    &http.Client{Timeout: config.Timeout},
		sanitizer: sanitizer,
	}
}

// debugTokenResponse はdebug_tokenエンドポイントのレスポンス。
type debugTokenResponse struct {
	Data struct {
		AppID   string `json:"app_id"`
		IsValid bool   `json:"is_valid"`
		UserID  string `json:"user_id"`
	} `json:"data"`
}

// graphUser はユーザーノードのレスポンス。
type graphUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoadUser はアクセストークンを検証し、Facebookユーザー情報を取得する。
// Graph APIがトークンを拒否した場合、トークンが別アプリ向けに発行されている場合、
// またはメールアドレスを取得できない場合はnilを返す。
// 通信エラーやアプリトークンの取得失敗はエラーとして返す。
func (p *FacebookAPI) LoadUser(ctx context.Context, params LoadFacebookUserParams) (*model.FacebookUser, error) {
	if params.Token == "" {
		return nil, nil
	}

	// 1. クライアントクレデンシャルでアプリトークンを取得
	appToken, err := p.fetchAppToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch app token: %w", err)
	}

	// 2. debug_tokenでユーザートークンを検証しユーザーIDを取得
	var debug debugTokenResponse
	err = p.getJSON(ctx, "/debug_token", url.Values{
		"access_token": {appToken},
		"input_token":  {params.Token},
	}, &debug)
	if errors.Is(err, errGraphRejected) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to debug token: %w", err)
	}
	if !debug.Data.IsValid || debug.Data.UserID == "" {
		slog.Warn("facebook token is not valid", slog.String("app_id", debug.Data.AppID))
		return nil, nil
	}
	// 他アプリ向けのトークンを受け入れると、そのアプリの利用者としてログインできてしまう
	if debug.Data.AppID != p.config.ClientID {
		slog.Warn("facebook token was issued for another app", slog.String("app_id", debug.Data.AppID))
		return nil, nil
	}

	// 3. ユーザートークンでユーザー情報を取得
	var user graphUser
	err = p.getJSON(ctx, "/"+url.PathEscape(debug.Data.UserID), url.Values{
		"fields":       {"id,name,email"},
		"access_token": {params.Token},
	}, &user)
	if errors.Is(err, errGraphRejected) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user.Email == "" {
		slog.Warn("facebook user has no email permission", slog.String("facebook_id", user.ID))
		return nil, nil
	}

	return &model.FacebookUser{
		Name:       p.sanitizer.Sanitize(user.Name),
		Email:      user.Email,
		FacebookID: user.ID,
	}, nil
}

// fetchAppToken はクライアントクレデンシャルフローでアプリのアクセストークンを取得する。
func (p *FacebookAPI) fetchAppToken(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	token, err := p.appToken.Token(ctx)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// getJSON はGraph APIにGETリクエストを送り、JSONレスポンスをoutにデコードする。
// 429を除く4xxはerrGraphRejectedでラップし、それ以外の2xx以外は通常のエラーとして返す。
func (p *FacebookAPI) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.GraphURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create graph request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGraphResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read graph response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		slog.Warn("facebook graph api rejected request",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d: %s", errGraphRejected, resp.StatusCode, string(body))
	default:
		return fmt.Errorf("graph api unavailable: status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse graph response: %w", err)
	}

	return nil
}

// compile-time interface check
var _ LoadFacebookUserAPI = (*FacebookAPI)(nil)
