package spotify

import "time"

// ExternalURLs maps provider names to public web URLs for an object.
// The service currently only reports a "spotify" entry.
type ExternalURLs map[string]string

// ExternalIDs maps identifier systems (isrc, ean, upc) to their values.
type ExternalIDs map[string]string

// Image is artwork at one resolution.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Followers reports an object's follower count.
type Followers struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// Restrictions explains why content is unavailable (market, product,
// explicit).
type Restrictions struct {
	Reason string `json:"reason"`
}

// Copyright is a copyright statement. Type "C" covers the work, "P"
// the sound recording.
type Copyright struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Cursors carry the positions for cursor-paginated listings.
type Cursors struct {
	After  string `json:"after"`
	Before string `json:"before"`
}

// SimpleArtist is the artist reference embedded in albums and tracks.
type SimpleArtist struct {
	ExternalURLs ExternalURLs `json:"external_urls"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

// Artist is the full catalog record for an artist.
type Artist struct {
	SimpleArtist
	Followers  Followers `json:"followers"`
	Genres     []string  `json:"genres"`
	Images     []Image   `json:"images"`
	Popularity int       `json:"popularity"`
}

// SimpleAlbum is the album shape embedded in tracks, listings, and
// search results.
type SimpleAlbum struct {
	AlbumType            string         `json:"album_type"`
	AlbumGroup           string         `json:"album_group,omitempty"`
	TotalTracks          int            `json:"total_tracks"`
	AvailableMarkets     []string       `json:"available_markets"`
	ExternalURLs         ExternalURLs   `json:"external_urls"`
	Href                 string         `json:"href"`
	ID                   string         `json:"id"`
	Images               []Image        `json:"images"`
	Name                 string         `json:"name"`
	ReleaseDate          string         `json:"release_date"`
	ReleaseDatePrecision string         `json:"release_date_precision"`
	Restrictions         *Restrictions  `json:"restrictions,omitempty"`
	Type                 string         `json:"type"`
	URI                  string         `json:"uri"`
	Artists              []SimpleArtist `json:"artists"`
}

// Album is the full catalog record for an album, including the first
// page of its tracks.
type Album struct {
	SimpleAlbum
	Tracks      Page[SimpleTrack] `json:"tracks"`
	Copyrights  []Copyright       `json:"copyrights"`
	ExternalIDs ExternalIDs       `json:"external_ids"`
	Genres      []string          `json:"genres"`
	Label       string            `json:"label"`
	Popularity  int               `json:"popularity"`
}

// SavedAlbum is an album in the account's library.
type SavedAlbum struct {
	AddedAt time.Time `json:"added_at"`
	Album   Album     `json:"album"`
}

// LinkedTrack points at the originally requested track when track
// relinking substituted a market-appropriate one.
type LinkedTrack struct {
	ExternalURLs ExternalURLs `json:"external_urls"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

// SimpleTrack is the track shape embedded in albums.
type SimpleTrack struct {
	Artists          []SimpleArtist `json:"artists"`
	AvailableMarkets []string       `json:"available_markets"`
	DiscNumber       int            `json:"disc_number"`
	DurationMS       int            `json:"duration_ms"`
	Explicit         bool           `json:"explicit"`
	ExternalURLs     ExternalURLs   `json:"external_urls"`
	Href             string         `json:"href"`
	ID               string         `json:"id"`
	IsPlayable       bool           `json:"is_playable,omitempty"`
	LinkedFrom       *LinkedTrack   `json:"linked_from,omitempty"`
	Restrictions     *Restrictions  `json:"restrictions,omitempty"`
	Name             string         `json:"name"`
	PreviewURL       string         `json:"preview_url"`
	TrackNumber      int            `json:"track_number"`
	Type             string         `json:"type"`
	URI              string         `json:"uri"`
	IsLocal          bool           `json:"is_local"`
}

// Track is the full catalog record for a track.
type Track struct {
	SimpleTrack
	Album       SimpleAlbum `json:"album"`
	ExternalIDs ExternalIDs `json:"external_ids"`
	Popularity  int         `json:"popularity"`
}

// ISRC returns the track's International Standard Recording Code, or
// the empty string when the catalog does not carry one.
func (t *Track) ISRC() string {
	return t.ExternalIDs["isrc"]
}

// SavedTrack is a track in the account's library.
type SavedTrack struct {
	AddedAt time.Time `json:"added_at"`
	Track   Track     `json:"track"`
}

// PlaylistTrack is one entry of a playlist's track listing.
type PlaylistTrack struct {
	AddedAt time.Time `json:"added_at"`
	AddedBy *User     `json:"added_by"`
	IsLocal bool      `json:"is_local"`
	Track   Track     `json:"track"`
}

// Context describes what playback was started from (album, playlist,
// artist, show).
type Context struct {
	Type         string       `json:"type"`
	Href         string       `json:"href"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

// PlayHistory is one entry of the account's recently-played listing.
type PlayHistory struct {
	Track    Track     `json:"track"`
	PlayedAt time.Time `json:"played_at"`
	Context  *Context  `json:"context"`
}

// PlaylistTracksRef is the track-listing stub embedded in simplified
// playlists: a link and a count, no items.
type PlaylistTracksRef struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// SimplePlaylist is the playlist shape returned by listings and search.
type SimplePlaylist struct {
	Collaborative bool              `json:"collaborative"`
	Description   string            `json:"description"`
	ExternalURLs  ExternalURLs      `json:"external_urls"`
	Href          string            `json:"href"`
	ID            string            `json:"id"`
	Images        []Image           `json:"images"`
	Name          string            `json:"name"`
	Owner         User              `json:"owner"`
	Public        bool              `json:"public"`
	SnapshotID    string            `json:"snapshot_id"`
	Tracks        PlaylistTracksRef `json:"tracks"`
	Type          string            `json:"type"`
	URI           string            `json:"uri"`
}

// Playlist is the full record for a playlist, including the first page
// of its tracks.
type Playlist struct {
	Collaborative bool                `json:"collaborative"`
	Description   string              `json:"description"`
	ExternalURLs  ExternalURLs        `json:"external_urls"`
	Followers     Followers           `json:"followers"`
	Href          string              `json:"href"`
	ID            string              `json:"id"`
	Images        []Image             `json:"images"`
	Name          string              `json:"name"`
	Owner         User                `json:"owner"`
	Public        bool                `json:"public"`
	SnapshotID    string              `json:"snapshot_id"`
	Tracks        Page[PlaylistTrack] `json:"tracks"`
	Type          string              `json:"type"`
	URI           string              `json:"uri"`
}

// User is a profile. Country, Email, and Product are only present on
// the current user's own profile, and only under the matching scopes.
type User struct {
	Country      string       `json:"country,omitempty"`
	DisplayName  string       `json:"display_name"`
	Email        string       `json:"email,omitempty"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Followers    Followers    `json:"followers"`
	Href         string       `json:"href"`
	ID           string       `json:"id"`
	Images       []Image      `json:"images"`
	Product      string       `json:"product,omitempty"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

// SimpleShow is the show shape embedded in episodes and listings.
type SimpleShow struct {
	AvailableMarkets   []string     `json:"available_markets"`
	Copyrights         []Copyright  `json:"copyrights"`
	Description        string       `json:"description"`
	HTMLDescription    string       `json:"html_description"`
	Explicit           bool         `json:"explicit"`
	ExternalURLs       ExternalURLs `json:"external_urls"`
	Href               string       `json:"href"`
	ID                 string       `json:"id"`
	Images             []Image      `json:"images"`
	IsExternallyHosted bool         `json:"is_externally_hosted"`
	Languages          []string     `json:"languages"`
	MediaType          string       `json:"media_type"`
	Name               string       `json:"name"`
	Publisher          string       `json:"publisher"`
	TotalEpisodes      int          `json:"total_episodes"`
	Type               string       `json:"type"`
	URI                string       `json:"uri"`
}

// Show is the full record for a show, including the first page of its
// episodes.
type Show struct {
	SimpleShow
	Episodes Page[SimpleEpisode] `json:"episodes"`
}

// SavedShow is a show in the account's library.
type SavedShow struct {
	AddedAt time.Time  `json:"added_at"`
	Show    SimpleShow `json:"show"`
}

// ResumePoint is the account's position in an episode.
type ResumePoint struct {
	FullyPlayed      bool `json:"fully_played"`
	ResumePositionMS int  `json:"resume_position_ms"`
}

// SimpleEpisode is the episode shape embedded in shows and listings.
type SimpleEpisode struct {
	AudioPreviewURL      string       `json:"audio_preview_url"`
	Description          string       `json:"description"`
	HTMLDescription      string       `json:"html_description"`
	DurationMS           int          `json:"duration_ms"`
	Explicit             bool         `json:"explicit"`
	ExternalURLs         ExternalURLs `json:"external_urls"`
	Href                 string       `json:"href"`
	ID                   string       `json:"id"`
	Images               []Image      `json:"images"`
	IsExternallyHosted   bool         `json:"is_externally_hosted"`
	IsPlayable           bool         `json:"is_playable"`
	Languages            []string     `json:"languages"`
	Name                 string       `json:"name"`
	ReleaseDate          string       `json:"release_date"`
	ReleaseDatePrecision string       `json:"release_date_precision"`
	ResumePoint          *ResumePoint `json:"resume_point,omitempty"`
	Type                 string       `json:"type"`
	URI                  string       `json:"uri"`
}

// Episode is the full record for an episode.
type Episode struct {
	SimpleEpisode
	Show SimpleShow `json:"show"`
}

// SavedEpisode is an episode in the account's library.
type SavedEpisode struct {
	AddedAt time.Time `json:"added_at"`
	Episode Episode   `json:"episode"`
}

// AudioFeatures are the audio attributes computed for one track.
type AudioFeatures struct {
	Acousticness     float64 `json:"acousticness"`
	AnalysisURL      string  `json:"analysis_url"`
	Danceability     float64 `json:"danceability"`
	DurationMS       int     `json:"duration_ms"`
	Energy           float64 `json:"energy"`
	ID               string  `json:"id"`
	Instrumentalness float64 `json:"instrumentalness"`
	Key              int     `json:"key"`
	Liveness         float64 `json:"liveness"`
	Loudness         float64 `json:"loudness"`
	Mode             int     `json:"mode"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`
	TimeSignature    int     `json:"time_signature"`
	TrackHref        string  `json:"track_href"`
	Type             string  `json:"type"`
	URI              string  `json:"uri"`
	Valence          float64 `json:"valence"`
}

// AnalysisMeta describes the analyzer run behind an [AudioAnalysis].
type AnalysisMeta struct {
	AnalyzerVersion string  `json:"analyzer_version"`
	Platform        string  `json:"platform"`
	DetailedStatus  string  `json:"detailed_status"`
	StatusCode      int     `json:"status_code"`
	Timestamp       int64   `json:"timestamp"`
	AnalysisTime    float64 `json:"analysis_time"`
	InputProcess    string  `json:"input_process"`
}

// AnalysisTrack is the whole-track summary of an [AudioAnalysis].
type AnalysisTrack struct {
	NumSamples              int     `json:"num_samples"`
	Duration                float64 `json:"duration"`
	SampleMD5               string  `json:"sample_md5"`
	OffsetSeconds           int     `json:"offset_seconds"`
	WindowSeconds           int     `json:"window_seconds"`
	AnalysisSampleRate      int     `json:"analysis_sample_rate"`
	AnalysisChannels        int     `json:"analysis_channels"`
	EndOfFadeIn             float64 `json:"end_of_fade_in"`
	StartOfFadeOut          float64 `json:"start_of_fade_out"`
	Loudness                float64 `json:"loudness"`
	Tempo                   float64 `json:"tempo"`
	TempoConfidence         float64 `json:"tempo_confidence"`
	TimeSignature           int     `json:"time_signature"`
	TimeSignatureConfidence float64 `json:"time_signature_confidence"`
	Key                     int     `json:"key"`
	KeyConfidence           float64 `json:"key_confidence"`
	Mode                    int     `json:"mode"`
	ModeConfidence          float64 `json:"mode_confidence"`
}

// AnalysisInterval is one timed span (bar, beat, tatum) of an analysis.
type AnalysisInterval struct {
	Start      float64 `json:"start"`
	Duration   float64 `json:"duration"`
	Confidence float64 `json:"confidence"`
}

// AnalysisSection is a large structural span (chorus, bridge) with its
// musical attributes.
type AnalysisSection struct {
	AnalysisInterval
	Loudness                float64 `json:"loudness"`
	Tempo                   float64 `json:"tempo"`
	TempoConfidence         float64 `json:"tempo_confidence"`
	Key                     int     `json:"key"`
	KeyConfidence           float64 `json:"key_confidence"`
	Mode                    int     `json:"mode"`
	ModeConfidence          float64 `json:"mode_confidence"`
	TimeSignature           int     `json:"time_signature"`
	TimeSignatureConfidence float64 `json:"time_signature_confidence"`
}

// AnalysisSegment is a short span of roughly constant sound with pitch
// and timbre vectors.
type AnalysisSegment struct {
	AnalysisInterval
	LoudnessStart   float64   `json:"loudness_start"`
	LoudnessMax     float64   `json:"loudness_max"`
	LoudnessMaxTime float64   `json:"loudness_max_time"`
	LoudnessEnd     float64   `json:"loudness_end"`
	Pitches         []float64 `json:"pitches"`
	Timbre          []float64 `json:"timbre"`
}

// AudioAnalysis is the low-level temporal description of one track.
type AudioAnalysis struct {
	Meta     AnalysisMeta       `json:"meta"`
	Track    AnalysisTrack      `json:"track"`
	Bars     []AnalysisInterval `json:"bars"`
	Beats    []AnalysisInterval `json:"beats"`
	Sections []AnalysisSection  `json:"sections"`
	Segments []AnalysisSegment  `json:"segments"`
	Tatums   []AnalysisInterval `json:"tatums"`
}

// Device is a playback target connected to the account.
type Device struct {
	ID               string `json:"id"`
	IsActive         bool   `json:"is_active"`
	IsPrivateSession bool   `json:"is_private_session"`
	IsRestricted     bool   `json:"is_restricted"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	VolumePercent    int    `json:"volume_percent"`
	SupportsVolume   bool   `json:"supports_volume"`
}

// Actions reports which playback operations the service currently
// disallows.
type Actions struct {
	Disallows map[string]bool `json:"disallows"`
}

// CurrentlyPlaying is the item playing on the account right now.
type CurrentlyPlaying struct {
	Context              *Context `json:"context"`
	Timestamp            int64    `json:"timestamp"`
	ProgressMS           int      `json:"progress_ms"`
	IsPlaying            bool     `json:"is_playing"`
	Item                 *Track   `json:"item"`
	CurrentlyPlayingType string   `json:"currently_playing_type"`
	Actions              Actions  `json:"actions"`
}

// PlaybackState is the full playback status of the account, device
// included.
type PlaybackState struct {
	CurrentlyPlaying
	Device       Device `json:"device"`
	RepeatState  string `json:"repeat_state"`
	ShuffleState bool   `json:"shuffle_state"`
}

// Queue is the account's play queue.
type Queue struct {
	CurrentlyPlaying *Track  `json:"currently_playing"`
	Queue            []Track `json:"queue"`
}

// Category is a browse category of the catalog.
type Category struct {
	Href  string  `json:"href"`
	Icons []Image `json:"icons"`
	ID    string  `json:"id"`
	Name  string  `json:"name"`
}

// RecommendationSeed reports how one seed contributed to a
// recommendation response.
type RecommendationSeed struct {
	AfterFilteringSize int    `json:"afterFilteringSize"`
	AfterRelinkingSize int    `json:"afterRelinkingSize"`
	Href               string `json:"href"`
	ID                 string `json:"id"`
	InitialPoolSize    int    `json:"initialPoolSize"`
	Type               string `json:"type"`
}

// Recommendations is a generated track listing with its seeds.
type Recommendations struct {
	Seeds  []RecommendationSeed `json:"seeds"`
	Tracks []Track              `json:"tracks"`
}

// SearchResult holds one page per requested search type. Types that
// were not requested are nil.
type SearchResult struct {
	Tracks    *Page[Track]          `json:"tracks,omitempty"`
	Artists   *Page[Artist]         `json:"artists,omitempty"`
	Albums    *Page[SimpleAlbum]    `json:"albums,omitempty"`
	Playlists *Page[SimplePlaylist] `json:"playlists,omitempty"`
	Shows     *Page[SimpleShow]     `json:"shows,omitempty"`
	Episodes  *Page[SimpleEpisode]  `json:"episodes,omitempty"`
}

// Time ranges accepted by the top-artists and top-tracks listings.
const (
	TimeRangeShort  = "short_term"
	TimeRangeMedium = "medium_term"
	TimeRangeLong   = "long_term"
)

// Repeat modes accepted by [Client.SetRepeat].
const (
	RepeatOff     = "off"
	RepeatTrack   = "track"
	RepeatContext = "context"
)

// Album groups accepted by [Client.ArtistAlbums].
const (
	IncludeGroupAlbum       = "album"
	IncludeGroupSingle      = "single"
	IncludeGroupAppearsOn   = "appears_on"
	IncludeGroupCompilation = "compilation"
)

// Search types accepted by [Client.Search].
const (
	SearchTypeTrack    = "track"
	SearchTypeAlbum    = "album"
	SearchTypeArtist   = "artist"
	SearchTypePlaylist = "playlist"
	SearchTypeShow     = "show"
	SearchTypeEpisode  = "episode"
)
