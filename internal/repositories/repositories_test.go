package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
	"golang.org/x/oauth2"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(shared.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// createTestAccount inserts an account most tests hang their rows off
func createTestAccount(t *testing.T, db *sql.DB) *models.Account {
	t.Helper()

	repo := NewAccountRepository(db)
	account := models.NewAccount(0, "listener", "Listener")
	if err := repo.Create(account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account
}

func TestAccountRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)
		account := models.NewAccount(0, "listener", "Listener")

		if err := repo.Create(account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}

		if account.ID() == "" {
			t.Error("account ID should be set after creation")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)
		account := models.NewAccount(0, "listener", "Listener")
		account.SetEmail("listener@example.com")

		if err := repo.Create(account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}

		retrieved, err := repo.Get(account.ID())
		if err != nil {
			t.Fatalf("failed to get account: %v", err)
		}

		if retrieved.SpotifyID() != "listener" {
			t.Errorf("expected spotify id listener, got %s", retrieved.SpotifyID())
		}

		if retrieved.Email() != "listener@example.com" {
			t.Errorf("expected email to round trip, got %s", retrieved.Email())
		}
	})

	t.Run("GetBySpotifyID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)
		account := models.NewAccount(0, "listener", "Listener")

		if err := repo.Create(account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}

		retrieved, err := repo.GetBySpotifyID("listener")
		if err != nil {
			t.Fatalf("failed to get account by spotify id: %v", err)
		}

		if retrieved.ID() != account.ID() {
			t.Errorf("expected ID %s, got %s", account.ID(), retrieved.ID())
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)
		account := models.NewAccount(0, "listener", "Listener")

		if err := repo.Create(account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}

		account.SetDisplayName("Renamed")
		account.SetCountry("DE")

		if err := repo.Update(account); err != nil {
			t.Fatalf("failed to update account: %v", err)
		}

		retrieved, err := repo.Get(account.ID())
		if err != nil {
			t.Fatalf("failed to get account: %v", err)
		}

		if retrieved.DisplayName() != "Renamed" {
			t.Errorf("expected display name Renamed, got %s", retrieved.DisplayName())
		}

		if retrieved.Country() != "DE" {
			t.Errorf("expected country DE, got %s", retrieved.Country())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)
		account := models.NewAccount(0, "listener", "Listener")

		if err := repo.Create(account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}

		if err := repo.Delete(account.ID()); err != nil {
			t.Fatalf("failed to delete account: %v", err)
		}

		if _, err := repo.Get(account.ID()); !errors.Is(err, shared.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound for deleted account, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewAccountRepository(db)

		for _, id := range []string{"one", "two", "three"} {
			if err := repo.Create(models.NewAccount(0, id, "Account "+id)); err != nil {
				t.Fatalf("failed to create account %s: %v", id, err)
			}
		}

		all, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list accounts: %v", err)
		}

		if len(all) != 3 {
			t.Errorf("expected 3 accounts, got %d", len(all))
		}

		filtered, err := repo.List(map[string]any{"spotify_id": "two"})
		if err != nil {
			t.Fatalf("failed to list filtered accounts: %v", err)
		}

		if len(filtered) != 1 || filtered[0].SpotifyID() != "two" {
			t.Errorf("expected exactly account two, got %d rows", len(filtered))
		}
	})
}

func TestTokenStore(t *testing.T) {
	t.Run("Save And Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		account := createTestAccount(t, db)
		store := NewTokenStore(db)

		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		token := models.NewStoredToken(account.ID(), &oauth2.Token{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			TokenType:    "Bearer",
			Expiry:       expiry,
		})

		if err := store.Save(token); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}

		retrieved, err := store.Get(account.ID())
		if err != nil {
			t.Fatalf("failed to get token: %v", err)
		}

		if retrieved.AccessToken() != "access-1" {
			t.Errorf("expected access token to round trip, got %s", retrieved.AccessToken())
		}

		if retrieved.RefreshToken() != "refresh-1" {
			t.Errorf("expected refresh token to round trip, got %s", retrieved.RefreshToken())
		}

		if !retrieved.Expiry().Equal(expiry) {
			t.Errorf("expected expiry %v, got %v", expiry, retrieved.Expiry())
		}
	})

	t.Run("Replaces On Refresh", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		account := createTestAccount(t, db)
		store := NewTokenStore(db)

		first := models.NewStoredToken(account.ID(), &oauth2.Token{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
		})
		if err := store.Save(first); err != nil {
			t.Fatalf("failed to save first token: %v", err)
		}

		second := models.NewStoredToken(account.ID(), &oauth2.Token{
			AccessToken: "access-2",
		})
		if err := store.Save(second); err != nil {
			t.Fatalf("failed to save second token: %v", err)
		}

		retrieved, err := store.Get(account.ID())
		if err != nil {
			t.Fatalf("failed to get token: %v", err)
		}

		if retrieved.AccessToken() != "access-2" {
			t.Errorf("expected replacement access token, got %s", retrieved.AccessToken())
		}

		if retrieved.RefreshToken() != "refresh-1" {
			t.Errorf("expected stored refresh token kept when renewal omits it, got %q", retrieved.RefreshToken())
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM tokens WHERE account_id = ?", account.ID()).Scan(&count); err != nil {
			t.Fatalf("failed to count tokens: %v", err)
		}
		if count != 1 {
			t.Errorf("expected one token row per account, got %d", count)
		}
	})

	t.Run("Latest", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		accountRepo := NewAccountRepository(db)
		older := models.NewAccount(0, "older", "Older")
		newer := models.NewAccount(0, "newer", "Newer")
		for _, a := range []*models.Account{older, newer} {
			if err := accountRepo.Create(a); err != nil {
				t.Fatalf("failed to create account: %v", err)
			}
		}

		store := NewTokenStore(db)

		first := models.NewStoredToken(older.ID(), &oauth2.Token{AccessToken: "old"})
		if err := store.Save(first); err != nil {
			t.Fatalf("failed to save first token: %v", err)
		}

		// Save stamps updated_at itself, so space the writes out.
		time.Sleep(5 * time.Millisecond)

		second := models.NewStoredToken(newer.ID(), &oauth2.Token{AccessToken: "new"})
		if err := store.Save(second); err != nil {
			t.Fatalf("failed to save second token: %v", err)
		}

		latest, err := store.Latest()
		if err != nil {
			t.Fatalf("failed to get latest token: %v", err)
		}

		if latest.AccountID() != newer.ID() {
			t.Errorf("expected latest token to belong to the newer account")
		}
	})

	t.Run("Missing Token", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewTokenStore(db)

		if _, err := store.Get("nobody"); !errors.Is(err, shared.ErrTokenNotFound) {
			t.Errorf("expected ErrTokenNotFound, got %v", err)
		}

		if _, err := store.Latest(); !errors.Is(err, shared.ErrTokenNotFound) {
			t.Errorf("expected ErrTokenNotFound from empty store, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		account := createTestAccount(t, db)
		store := NewTokenStore(db)

		token := models.NewStoredToken(account.ID(), &oauth2.Token{AccessToken: "access"})
		if err := store.Save(token); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}

		if err := store.Delete(account.ID()); err != nil {
			t.Fatalf("failed to delete token: %v", err)
		}

		if _, err := store.Get(account.ID()); !errors.Is(err, shared.ErrTokenNotFound) {
			t.Errorf("expected ErrTokenNotFound after delete, got %v", err)
		}

		if err := store.Delete(account.ID()); !errors.Is(err, shared.ErrTokenNotFound) {
			t.Errorf("expected ErrTokenNotFound on double delete, got %v", err)
		}
	})
}

func TestTrackRepository(t *testing.T) {
	t.Run("Create & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		trackDTO := models.Track{
			ID:       "track123",
			Title:    "Test Song",
			Artist:   "Test Artist",
			Album:    "Test Album",
			Duration: 180000,
			ISRC:     "USTEST1234567",
			URI:      "spotify:track:track123",
		}

		track := models.NewCachedTrack(0, "track123", trackDTO)

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		retrieved, err := repo.GetBySpotifyID("track123")
		if err != nil {
			t.Fatalf("failed to get track: %v", err)
		}

		if retrieved.Title() != "Test Song" {
			t.Errorf("expected title 'Test Song', got %s", retrieved.Title())
		}

		if retrieved.ISRC() != "USTEST1234567" {
			t.Errorf("expected ISRC 'USTEST1234567', got %s", retrieved.ISRC())
		}

		if retrieved.URI() != "spotify:track:track123" {
			t.Errorf("expected uri to round trip, got %s", retrieved.URI())
		}
	})

	t.Run("GetByISRC", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)

		track := models.NewCachedTrack(0, "track123", models.Track{
			ID:     "track123",
			Title:  "Test Song",
			Artist: "Test Artist",
			ISRC:   "USTEST1234567",
		})

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		retrieved, err := repo.GetByISRC("USTEST1234567")
		if err != nil {
			t.Fatalf("failed to get track by ISRC: %v", err)
		}

		if retrieved.SpotifyID() != "track123" {
			t.Errorf("expected spotify id track123, got %s", retrieved.SpotifyID())
		}
	})
}

func TestTrackCacheAdapter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewTrackRepository(db)
	adapter := NewTrackCacheAdapter(repo)

	trackDTO := models.Track{
		ID:       "track123",
		Title:    "Test Song",
		Artist:   "Test Artist",
		Album:    "Test Album",
		Duration: 180000,
		ISRC:     "USTEST1234567",
	}

	firstID, err := adapter.CacheTrack(trackDTO)
	if err != nil {
		t.Fatalf("failed to cache track: %v", err)
	}

	secondID, err := adapter.CacheTrack(trackDTO)
	if err != nil {
		t.Fatalf("caching duplicate track should not error: %v", err)
	}

	if firstID != secondID {
		t.Errorf("expected duplicate to resolve to the same row, got %s and %s", firstID, secondID)
	}

	retrieved, err := repo.GetBySpotifyID("track123")
	if err != nil {
		t.Fatalf("failed to retrieve cached track: %v", err)
	}

	if retrieved.Title() != "Test Song" {
		t.Errorf("expected title 'Test Song', got %s", retrieved.Title())
	}
}

func TestPlaylistRepository(t *testing.T) {
	t.Run("Create And Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		account := createTestAccount(t, db)

		playlistRepo := NewPlaylistRepository(db)
		playlistDTO := models.Playlist{
			ID:          "playlist123",
			Name:        "Test Playlist",
			Description: "Test Description",
			Owner:       "Listener",
			SnapshotID:  "snap-1",
			TrackCount:  10,
			Public:      true,
		}

		playlist := models.NewCachedPlaylist(0, "playlist123", account.ID(), playlistDTO)

		if err := playlistRepo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		retrieved, err := playlistRepo.GetBySpotifyID("playlist123")
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}

		if retrieved.Name() != "Test Playlist" {
			t.Errorf("expected name 'Test Playlist', got %s", retrieved.Name())
		}

		if retrieved.SnapshotID() != "snap-1" {
			t.Errorf("expected snapshot id snap-1, got %s", retrieved.SnapshotID())
		}

		if retrieved.AccountID() != account.ID() {
			t.Errorf("expected account ID %s, got %s", account.ID(), retrieved.AccountID())
		}
	})

	t.Run("Ordered Track Membership", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		account := createTestAccount(t, db)

		playlistRepo := NewPlaylistRepository(db)
		playlist := models.NewCachedPlaylist(0, "playlist123", account.ID(), models.Playlist{
			ID:   "playlist123",
			Name: "Ordered",
		})
		if err := playlistRepo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		trackRepo := NewTrackRepository(db)
		adapter := NewTrackCacheAdapter(trackRepo)

		var localIDs []string
		for _, title := range []string{"First", "Second", "Third"} {
			id, err := adapter.CacheTrack(models.Track{ID: "id-" + title, Title: title, Artist: "Artist"})
			if err != nil {
				t.Fatalf("failed to cache track %s: %v", title, err)
			}
			localIDs = append(localIDs, id)
		}

		if err := playlistRepo.ReplaceTracks(playlist.ID(), localIDs); err != nil {
			t.Fatalf("failed to link tracks: %v", err)
		}

		tracks, err := playlistRepo.Tracks(playlist.ID())
		if err != nil {
			t.Fatalf("failed to list playlist tracks: %v", err)
		}

		if len(tracks) != 3 {
			t.Fatalf("expected 3 tracks, got %d", len(tracks))
		}

		for i, want := range []string{"First", "Second", "Third"} {
			if tracks[i].Title() != want {
				t.Errorf("expected track %d to be %s, got %s", i, want, tracks[i].Title())
			}
		}

		reversed := []string{localIDs[2], localIDs[1], localIDs[0]}
		if err := playlistRepo.ReplaceTracks(playlist.ID(), reversed); err != nil {
			t.Fatalf("failed to relink tracks: %v", err)
		}

		tracks, err = playlistRepo.Tracks(playlist.ID())
		if err != nil {
			t.Fatalf("failed to list relinked tracks: %v", err)
		}

		if tracks[0].Title() != "Third" {
			t.Errorf("expected replacement to reorder, got %s first", tracks[0].Title())
		}
	})
}

func TestPlaylistCacheAdapter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	account := createTestAccount(t, db)
	repo := NewPlaylistRepository(db)
	adapter := NewPlaylistCacheAdapter(repo)

	dto := models.Playlist{
		ID:         "playlist123",
		Name:       "Before",
		SnapshotID: "snap-1",
		TrackCount: 5,
	}

	firstID, err := adapter.CachePlaylist(account.ID(), dto)
	if err != nil {
		t.Fatalf("failed to cache playlist: %v", err)
	}

	dto.Name = "After"
	dto.SnapshotID = "snap-2"
	dto.TrackCount = 6

	secondID, err := adapter.CachePlaylist(account.ID(), dto)
	if err != nil {
		t.Fatalf("failed to re-cache playlist: %v", err)
	}

	if firstID != secondID {
		t.Errorf("expected upsert to reuse the row, got %s and %s", firstID, secondID)
	}

	retrieved, err := repo.GetBySpotifyID("playlist123")
	if err != nil {
		t.Fatalf("failed to get playlist: %v", err)
	}

	if retrieved.Name() != "After" || retrieved.SnapshotID() != "snap-2" {
		t.Errorf("expected refreshed fields, got name %s snapshot %s", retrieved.Name(), retrieved.SnapshotID())
	}
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	seq1, err := NextSequence(db, "accounts")
	if err != nil {
		t.Fatalf("failed to get first sequence: %v", err)
	}

	if seq1 != 1 {
		t.Errorf("expected first sequence to be 1, got %d", seq1)
	}

	// Get second sequence
	seq2, err := NextSequence(db, "accounts")
	if err != nil {
		t.Fatalf("failed to get second sequence: %v", err)
	}

	if seq2 != 2 {
		t.Errorf("expected second sequence to be 2, got %d", seq2)
	}

	trackSeq, err := NextSequence(db, "tracks")
	if err != nil {
		t.Fatalf("failed to get track sequence: %v", err)
	}

	if trackSeq != 1 {
		t.Errorf("expected first track sequence to be 1, got %d", trackSeq)
	}
}
