// Package auth はFacebookログインの認証フローを提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/fblogin/internal/metrics"
	"github.com/hitoshi/fblogin/internal/model"
	"github.com/hitoshi/fblogin/internal/repository"
)

// LoadFacebookUserParams はFacebookユーザー情報取得の入力。
type LoadFacebookUserParams struct {
	Token string
}

// LoadFacebookUserAPI はアクセストークンからFacebookユーザー情報を取得するインターフェース。
type LoadFacebookUserAPI interface {
	// LoadUser はトークンに対応するユーザー情報を返す。
	// トークンが無効な場合はnilを返す。
	LoadUser(ctx context.Context, params LoadFacebookUserParams) (*model.FacebookUser, error)
}

// FacebookAuthenticationService はFacebookのアクセストークンを検証し、
// ローカルのユーザーアカウントと突き合わせる。
type FacebookAuthenticationService struct {
	facebookAPI LoadFacebookUserAPI
	accountRepo repository.UserAccountRepository
	metrics     metrics.Recorder
}

// NewFacebookAuthenticationService はFacebookAuthenticationServiceを生成する。
// recorderがnilの場合はメトリクスを記録しない。
func NewFacebookAuthenticationService(
	facebookAPI LoadFacebookUserAPI,
	accountRepo repository.UserAccountRepository,
	recorder metrics.Recorder,
) *FacebookAuthenticationService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &FacebookAuthenticationService{
		facebookAPI: facebookAPI,
		accountRepo: accountRepo,
		metrics:     recorder,
	}
}

// Perform はFacebookログインを実行する。
// トークンが無効な場合はmodel.ErrAuthenticationを返し、リポジトリには一切アクセスしない。
// 未登録のメールアドレスであればアカウントを作成し、登録済みであれば名前とFacebook IDを更新する。
// 既存アカウントの名前が設定済みの場合はその名前を維持する。
func (s *FacebookAuthenticationService) Perform(ctx context.Context, input model.AuthenticationInput) error {
	// 1. トークンからFacebookユーザー情報を取得
	start := time.Now()
	fbUser, err := s.facebookAPI.LoadUser(ctx, LoadFacebookUserParams{Token: input.Token})
	s.metrics.RecordFacebookLookup(time.Since(start))
	if err != nil {
		s.metrics.RecordAuthentication(metrics.ResultFailed)
		return fmt.Errorf("failed to load facebook user: %w", err)
	}
	if fbUser == nil {
		s.metrics.RecordAuthentication(metrics.ResultRejected)
		slog.Info("facebook token rejected")
		return model.ErrAuthentication
	}

	// 2. メールアドレスで既存アカウントを検索
	account, err := s.accountRepo.Load(ctx, repository.LoadUserAccountParams{Email: fbUser.Email})
	if err != nil {
		s.metrics.RecordAuthentication(metrics.ResultFailed)
		return fmt.Errorf("failed to load user account: %w", err)
	}

	if account == nil {
		// 3a. 新規アカウント
		err := s.accountRepo.CreateFromFacebook(ctx, model.CreateFromFacebookInput{
			Email:      fbUser.Email,
			Name:       fbUser.Name,
			FacebookID: fbUser.FacebookID,
		})
		if err != nil {
			s.metrics.RecordAuthentication(metrics.ResultFailed)
			return fmt.Errorf("failed to create user account: %w", err)
		}

		s.metrics.RecordAuthentication(metrics.ResultCreated)
		// メールアドレスは個人情報のためログに出さない
		slog.Info("user account created from facebook",
			slog.String("facebook_id", fbUser.FacebookID),
		)
		return nil
	}

	// 3b. 既存アカウント: 名前が未設定の場合のみFacebookの名前で補完
	name := account.Name
	if name == "" {
		name = fbUser.Name
	}
	err = s.accountRepo.UpdateWithFacebook(ctx, model.UpdateWithFacebookInput{
		ID:         account.ID,
		Name:       name,
		FacebookID: fbUser.FacebookID,
	})
	if err != nil {
		s.metrics.RecordAuthentication(metrics.ResultFailed)
		return fmt.Errorf("failed to update user account: %w", err)
	}

	s.metrics.RecordAuthentication(metrics.ResultUpdated)
	slog.Info("user account updated with facebook",
		slog.String("user_id", account.ID),
		slog.String("facebook_id", fbUser.FacebookID),
	)
	return nil
}
