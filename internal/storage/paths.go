// Package storage provides object-store access and the on-store file
// layout for albums, tracks and their JSON documents.
package storage

import (
	"errors"
	"fmt"
)

// AlbumsPrefix is the root folder all albums live under.
const AlbumsPrefix = "albums/"

// FileType identifies what kind of object a storage key points at.
type FileType string

// Known file types.
const (
	FileTypeIcon             FileType = "icon"
	FileTypeAudio            FileType = "audio"
	FileTypeLyrics           FileType = "lyrics"
	FileTypeSocialData       FileType = "social_data"
	FileTypeTransitionAudio  FileType = "transition_audio"
	FileTypeTransitionLyrics FileType = "transition_lyrics"
	FileTypeTrackInfo        FileType = "track_info"
	FileTypeAlbumMetadata    FileType = "album_metadata"
)

// ErrInvalidFileType is returned when ObjectKey is given an unknown file type.
var ErrInvalidFileType = errors.New("invalid file type")

// AlbumPrefix returns the key prefix owning every object of an album.
func AlbumPrefix(album string) string {
	return AlbumsPrefix + album + "/"
}

// TrackPrefix returns the folder segment owning a single track's objects.
func TrackPrefix(album string, trackNumber int) string {
	return fmt.Sprintf("%sTrack_%02d/", AlbumPrefix(album), trackNumber)
}

// ObjectKey maps (album, track, file type, style) to its storage key.
// It is the single source of truth for the on-store layout: writers and
// readers must derive identical keys from identical inputs. styleKey is
// only consulted for the per-style file types.
func ObjectKey(album string, trackNumber int, fileType FileType, styleKey string) (string, error) {
	trackFolder := TrackPrefix(album, trackNumber)

	switch fileType {
	case FileTypeIcon:
		return trackFolder + "icon.png", nil
	case FileTypeAudio:
		return trackFolder + styleKey + "_track.mp3", nil
	case FileTypeLyrics:
		return trackFolder + styleKey + "_lyrics.txt", nil
	case FileTypeSocialData:
		return trackFolder + "social_data.json", nil
	case FileTypeTransitionAudio:
		return trackFolder + styleKey + "_transition.mp3", nil
	case FileTypeTransitionLyrics:
		return trackFolder + styleKey + "_transition_lyrics.txt", nil
	case FileTypeTrackInfo:
		return trackFolder + "track_info.json", nil
	case FileTypeAlbumMetadata:
		return AlbumPrefix(album) + "album_metadata.json", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFileType, fileType)
	}
}

// ContentTypeFor returns the media type objects of the given file type
// are stored with.
func ContentTypeFor(fileType FileType) string {
	switch fileType {
	case FileTypeIcon:
		return "image/png"
	case FileTypeAudio, FileTypeTransitionAudio:
		return "audio/mpeg"
	case FileTypeLyrics, FileTypeTransitionLyrics:
		return "text/plain"
	case FileTypeSocialData, FileTypeTrackInfo, FileTypeAlbumMetadata:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
