package models

import (
	"fmt"
	"time"
)

// Account is an authenticated account whose tokens and cached library
// live in the local database.
type Account struct {
	id          string
	sequence    int
	spotifyID   string
	displayName string
	email       string
	country     string
	product     string
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewAccount creates an Account for the given profile.
func NewAccount(sequence int, spotifyID, displayName string) *Account {
	now := time.Now()
	return &Account{
		sequence:    sequence,
		spotifyID:   spotifyID,
		displayName: displayName,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (a *Account) ID() string            { return a.id }
func (a *Account) Sequence() int         { return a.sequence }
func (a *Account) SpotifyID() string     { return a.spotifyID }
func (a *Account) DisplayName() string   { return a.displayName }
func (a *Account) Email() string         { return a.email }
func (a *Account) Country() string       { return a.country }
func (a *Account) Product() string       { return a.product }
func (a *Account) CreatedAt() time.Time  { return a.createdAt }
func (a *Account) UpdatedAt() time.Time  { return a.updatedAt }
func (a *Account) DeletedAt() *time.Time { return a.deletedAt }

func (a *Account) SetID(id string)            { a.id = id }
func (a *Account) SetDisplayName(name string) { a.displayName = name }
func (a *Account) SetEmail(email string)      { a.email = email }
func (a *Account) SetCountry(country string)  { a.country = country }
func (a *Account) SetProduct(product string)  { a.product = product }
func (a *Account) SetCreatedAt(t time.Time)   { a.createdAt = t }
func (a *Account) SetUpdatedAt(t time.Time)   { a.updatedAt = t }
func (a *Account) SetDeletedAt(t *time.Time)  { a.deletedAt = t }

// Validate checks that the account carries the fields persistence
// depends on.
func (a *Account) Validate() error {
	if a.spotifyID == "" {
		return fmt.Errorf("account requires a spotify id")
	}
	return nil
}
