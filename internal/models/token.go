package models

import (
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// StoredToken is the persisted form of an account's OAuth token. One
// row exists per account; refreshes replace it.
type StoredToken struct {
	id           string
	accountID    string
	accessToken  string
	refreshToken string
	tokenType    string
	expiry       time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewStoredToken creates a StoredToken from an OAuth token.
func NewStoredToken(accountID string, tok *oauth2.Token) *StoredToken {
	now := time.Now()
	t := &StoredToken{
		accountID: accountID,
		tokenType: "Bearer",
		createdAt: now,
		updatedAt: now,
	}
	if tok != nil {
		t.accessToken = tok.AccessToken
		t.refreshToken = tok.RefreshToken
		t.expiry = tok.Expiry
		if tok.TokenType != "" {
			t.tokenType = tok.TokenType
		}
	}
	return t
}

func (t *StoredToken) ID() string           { return t.id }
func (t *StoredToken) AccountID() string    { return t.accountID }
func (t *StoredToken) AccessToken() string  { return t.accessToken }
func (t *StoredToken) RefreshToken() string { return t.refreshToken }
func (t *StoredToken) TokenType() string    { return t.tokenType }
func (t *StoredToken) Expiry() time.Time    { return t.expiry }
func (t *StoredToken) CreatedAt() time.Time { return t.createdAt }
func (t *StoredToken) UpdatedAt() time.Time { return t.updatedAt }

func (t *StoredToken) SetID(id string)           { t.id = id }
func (t *StoredToken) SetCreatedAt(at time.Time) { t.createdAt = at }
func (t *StoredToken) SetUpdatedAt(at time.Time) { t.updatedAt = at }

// OAuthToken converts the stored row back into an [oauth2.Token].
func (t *StoredToken) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.accessToken,
		RefreshToken: t.refreshToken,
		TokenType:    t.tokenType,
		Expiry:       t.expiry,
	}
}

// Validate checks that the token carries the fields persistence
// depends on.
func (t *StoredToken) Validate() error {
	if t.accountID == "" {
		return fmt.Errorf("stored token requires an account id")
	}
	if t.accessToken == "" {
		return fmt.Errorf("stored token requires an access token")
	}
	return nil
}
