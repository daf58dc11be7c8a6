package spotify

// OAuth scopes recognized by the authorization service. Requested
// scopes bound what a user token may do; the client-credentials grant
// carries none.
const (
	ScopeUGCImageUpload            = "ugc-image-upload"
	ScopeUserReadPlaybackState     = "user-read-playback-state"
	ScopeUserModifyPlaybackState   = "user-modify-playback-state"
	ScopeUserReadCurrentlyPlaying  = "user-read-currently-playing"
	ScopeAppRemoteControl          = "app-remote-control"
	ScopeStreaming                 = "streaming"
	ScopePlaylistReadPrivate       = "playlist-read-private"
	ScopePlaylistReadCollaborative = "playlist-read-collaborative"
	ScopePlaylistModifyPrivate     = "playlist-modify-private"
	ScopePlaylistModifyPublic      = "playlist-modify-public"
	ScopeUserFollowModify          = "user-follow-modify"
	ScopeUserFollowRead            = "user-follow-read"
	ScopeUserReadPlaybackPosition  = "user-read-playback-position"
	ScopeUserTopRead               = "user-top-read"
	ScopeUserReadRecentlyPlayed    = "user-read-recently-played"
	ScopeUserLibraryModify         = "user-library-modify"
	ScopeUserLibraryRead           = "user-library-read"
	ScopeUserReadEmail             = "user-read-email"
	ScopeUserReadPrivate           = "user-read-private"
	ScopeUserSOALink               = "user-soa-link"
	ScopeUserSOAUnlink             = "user-soa-unlink"
)

// ScopesAll returns every scope a standard application may request.
// The partner-only scopes (app remote, streaming, SOA) are left out.
func ScopesAll() []string {
	return []string{
		ScopeUGCImageUpload,
		ScopeUserReadPlaybackState,
		ScopeUserModifyPlaybackState,
		ScopeUserReadCurrentlyPlaying,
		ScopePlaylistReadPrivate,
		ScopePlaylistReadCollaborative,
		ScopePlaylistModifyPrivate,
		ScopePlaylistModifyPublic,
		ScopeUserFollowModify,
		ScopeUserFollowRead,
		ScopeUserReadPlaybackPosition,
		ScopeUserTopRead,
		ScopeUserReadRecentlyPlayed,
		ScopeUserLibraryModify,
		ScopeUserLibraryRead,
		ScopeUserReadEmail,
		ScopeUserReadPrivate,
	}
}
