package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/fblogin/internal/model"
)

// PostgresUserAccountRepo はPostgreSQLを使用したユーザーアカウントリポジトリ。
type PostgresUserAccountRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgresUserAccountRepo はPostgresUserAccountRepoを生成する。
func NewPostgresUserAccountRepo(db *sql.DB) *PostgresUserAccountRepo {
	return &PostgresUserAccountRepo{db: db, now: time.Now}
}

// Load はメールアドレスでアカウントを検索する。見つからない場合はnilを返す。
// メールアドレスは大文字小文字を区別しない。nameとfacebook_idがNULLの場合は空文字列として扱う。
func (r *PostgresUserAccountRepo) Load(ctx context.Context, params LoadUserAccountParams) (*model.UserAccount, error) {
	account := &model.UserAccount{}
	var name, facebookID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, facebook_id, created_at, updated_at FROM users WHERE email = $1`,
		normalizeEmail(params.Email),
	).Scan(&account.ID, &account.Email, &name, &facebookID, &account.CreatedAt, &account.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user account by email: %w", err)
	}

	account.Name = name.String
	account.FacebookID = facebookID.String
	return account, nil
}

// CreateFromFacebook はFacebook情報からアカウントを新規作成する。
// IDはUUIDv4で採番し、メールアドレスは小文字に正規化して保存する。
func (r *PostgresUserAccountRepo) CreateFromFacebook(ctx context.Context, input model.CreateFromFacebookInput) error {
	now := r.now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, facebook_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), normalizeEmail(input.Email), nullIfEmpty(input.Name), input.FacebookID, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user account: %w", err)
	}
	return nil
}

// UpdateWithFacebook は既存アカウントの名前とFacebook IDを更新する。
func (r *PostgresUserAccountRepo) UpdateWithFacebook(ctx context.Context, input model.UpdateWithFacebookInput) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $2, facebook_id = $3, updated_at = $4 WHERE id = $1`,
		input.ID, nullIfEmpty(input.Name), input.FacebookID, r.now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update user account: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user account not found: %s", input.ID)
	}
	return nil
}

// normalizeEmail はメールアドレスを比較・保存用に正規化する。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// nullIfEmpty は空文字列をNULLとして書き込むための変換を行う。
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// compile-time interface check
var _ UserAccountRepository = (*PostgresUserAccountRepo)(nil)
