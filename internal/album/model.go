// Package album implements the album lifecycle: initialization of the
// on-store document graph, loading it into a player view, uploads and
// YouTube links, and deletion.
package album

import (
	"fmt"
	"strings"
)

// Audio source kinds stored in a style slot.
const (
	SourceFile    = "file"
	SourceYouTube = "youtube"
)

// DefaultTrackName is the placeholder name a track is created with.
func DefaultTrackName(n int) string {
	return fmt.Sprintf("Track %d", n)
}

// DefaultArtistName is the placeholder artist a track is created with.
const DefaultArtistName = "Unknown Artist"

// palette is the fixed color cycle styles are assigned from, by index.
var palette = []string{
	"#d13b3b", "#9b3480", "#513c99", "#2373a1", "#1da9a0",
	"#25a56a", "#c6a527", "#d96c27", "#c73a63", "#7c4199",
	"#3498db", "#e74c3c", "#9b59b6", "#1abc9c", "#f39c12",
}

// StyleColor returns the palette color for the style at index i.
func StyleColor(i int) string {
	return palette[i%len(palette)]
}

// StyleKey normalizes a style display name into its document key:
// lowercase, spaces replaced with underscores.
func StyleKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Style is one entry of an album's style list.
type Style struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Color string `json:"color"`
}

// Metadata is the album_metadata.json document, written once at album
// initialization and only ever replaced wholesale.
type Metadata struct {
	AlbumName      string  `json:"album_name"`
	TrackCount     int     `json:"track_count"`
	UseTransitions bool    `json:"use_transitions"`
	Styles         []Style `json:"styles"`
}

// NewMetadata builds album metadata with colors assigned round-robin
// from the palette.
func NewMetadata(name string, trackCount int, styleNames []string, useTransitions bool) *Metadata {
	meta := &Metadata{
		AlbumName:      name,
		TrackCount:     trackCount,
		UseTransitions: useTransitions,
		Styles:         make([]Style, 0, len(styleNames)),
	}
	for i, styleName := range styleNames {
		meta.Styles = append(meta.Styles, Style{
			Name:  styleName,
			Key:   StyleKey(styleName),
			Color: StyleColor(i),
		})
	}
	return meta
}

// StyleSlot holds one style's audio, lyrics and optional transition
// data inside a track_info.json document. The transition fields are
// only populated when the owning album enables transitions.
type StyleSlot struct {
	AudioURL  string `json:"audio_url"`
	AudioType string `json:"audio_type"`
	YouTubeID string `json:"youtube_id"`
	LyricsURL string `json:"lyrics_url"`
	Uploaded  bool   `json:"uploaded"`

	TransitionAudioURL  string `json:"transition_audio_url,omitempty"`
	TransitionAudioType string `json:"transition_audio_type,omitempty"`
	TransitionYouTubeID string `json:"transition_youtube_id,omitempty"`
	TransitionLyricsURL string `json:"transition_lyrics_url,omitempty"`
}

// TrackInfo is the track_info.json document for one track.
type TrackInfo struct {
	TrackNumber int                   `json:"track_number"`
	TrackName   string                `json:"track_name"`
	ArtistName  string                `json:"artist_name"`
	IconURL     string                `json:"icon_url"`
	Styles      map[string]*StyleSlot `json:"styles"`
}

// NewTrackInfo builds an empty track document with a slot for every
// configured style.
func NewTrackInfo(n int, styles []Style, useTransitions bool) *TrackInfo {
	info := &TrackInfo{
		TrackNumber: n,
		TrackName:   DefaultTrackName(n),
		ArtistName:  DefaultArtistName,
		Styles:      make(map[string]*StyleSlot, len(styles)),
	}
	for _, style := range styles {
		slot := &StyleSlot{AudioType: SourceFile}
		if useTransitions {
			slot.TransitionAudioType = SourceFile
		}
		info.Styles[style.Key] = slot
	}
	return info
}

// Slot returns the style slot for key, creating it if absent. Uploads
// may target styles added after the track document was written.
func (t *TrackInfo) Slot(key string) *StyleSlot {
	if t.Styles == nil {
		t.Styles = make(map[string]*StyleSlot)
	}
	slot, ok := t.Styles[key]
	if !ok {
		slot = &StyleSlot{}
		t.Styles[key] = slot
	}
	return slot
}
