package album

// View is the load-album payload served to the player: album metadata
// plus every track projected for playback.
type View struct {
	AlbumName      string                `json:"albumName"`
	Artist         string                `json:"artist"`
	Styles         []Style               `json:"styles"`
	UseTransitions bool                  `json:"useTransitions"`
	Tracks         map[string]*TrackView `json:"tracks"`
	Transitions    map[string]any        `json:"transitions"`
}

// TrackView is one track inside a View. Only style slots with audio
// appear; slots never uploaded to are omitted.
type TrackView struct {
	Number int                  `json:"number"`
	Name   string               `json:"name"`
	Artist string               `json:"artist"`
	Icon   string               `json:"icon"`
	Styles map[string]*SlotView `json:"styles"`
	Social SocialSummary        `json:"social"`
}

// SlotView is the playback projection of a populated style slot.
type SlotView struct {
	URL       string `json:"url"`
	Type      string `json:"type"`
	YouTubeID string `json:"youtube_id"`
	LyricsURL string `json:"lyrics_url"`
	Uploaded  bool   `json:"uploaded"`

	// Present only when the album enables transitions.
	TransitionURL       *string `json:"transition_url,omitempty"`
	TransitionType      *string `json:"transition_type,omitempty"`
	TransitionLyricsURL *string `json:"transition_lyrics_url,omitempty"`
}

// SocialSummary carries per-track like and comment counts, not bodies.
type SocialSummary struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}
