package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
	"golang.org/x/oauth2"
)

// TokenStore persists OAuth tokens, one row per account. Saving an
// account's token replaces whatever was stored before, so the table
// always holds each account's latest grant.
type TokenStore struct {
	db *sql.DB
}

// NewTokenStore creates a new [TokenStore] with the given database connection
func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Save upserts the token for its account. When the incoming token has
// no refresh token the stored one is kept, matching the provider's
// habit of omitting the refresh token on renewal responses.
func (s *TokenStore) Save(token *models.StoredToken) error {
	if err := token.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if token.ID() == "" {
		token.SetID(shared.GenerateID())
	}
	token.SetUpdatedAt(time.Now())

	query := `
		INSERT INTO tokens (id, account_id, access_token, refresh_token, token_type, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = CASE WHEN excluded.refresh_token = '' THEN tokens.refresh_token ELSE excluded.refresh_token END,
			token_type = excluded.token_type,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	_, err := s.db.Exec(query,
		token.ID(),
		token.AccountID(),
		token.AccessToken(),
		token.RefreshToken(),
		token.TokenType(),
		nullableTime(token.Expiry()),
		token.CreatedAt(),
		token.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// Get retrieves the stored token for an account.
func (s *TokenStore) Get(accountID string) (*models.StoredToken, error) {
	query := `
		SELECT id, account_id, access_token, refresh_token, token_type, expires_at, created_at, updated_at
		FROM tokens
		WHERE account_id = ?
	`

	return s.scan(s.db.QueryRow(query, accountID))
}

// Latest retrieves the most recently saved token across all accounts,
// the one the CLI uses when no account is named.
func (s *TokenStore) Latest() (*models.StoredToken, error) {
	query := `
		SELECT id, account_id, access_token, refresh_token, token_type, expires_at, created_at, updated_at
		FROM tokens
		ORDER BY updated_at DESC
		LIMIT 1
	`

	return s.scan(s.db.QueryRow(query))
}

// Delete removes an account's stored token. Unlike the cached catalog,
// token rows are deleted outright on logout.
func (s *TokenStore) Delete(accountID string) error {
	result, err := s.db.Exec("DELETE FROM tokens WHERE account_id = ?", accountID)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: account %s", shared.ErrTokenNotFound, accountID)
	}

	return nil
}

func (s *TokenStore) scan(row *sql.Row) (*models.StoredToken, error) {
	var (
		id           string
		accountID    string
		accessToken  string
		refreshToken string
		tokenType    string
		expiresAt    sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := row.Scan(&id, &accountID, &accessToken, &refreshToken, &tokenType, &expiresAt, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan token: %w", err)
	}

	grant := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenType,
	}
	if expiresAt.Valid {
		grant.Expiry = expiresAt.Time
	}

	token := models.NewStoredToken(accountID, grant)
	token.SetID(id)
	token.SetCreatedAt(createdAt)
	token.SetUpdatedAt(updatedAt)

	return token, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
