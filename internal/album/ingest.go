package album

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/musicwheel/music-wheel/internal/storage"
	"github.com/musicwheel/music-wheel/internal/youtube"
)

// UpdateTrackMetadata overwrites a track's name and artist.
// Returns ErrTrackNotFound when the track document is absent.
func (s *Service) UpdateTrackMetadata(ctx context.Context, album string, trackNumber int, trackName, artistName string) error {
	key, err := storage.ObjectKey(album, trackNumber, storage.FileTypeTrackInfo, "")
	if err != nil {
		return err
	}

	_, err = storage.UpdateJSON(ctx, s.docs, key, nil, func(info *TrackInfo) error {
		info.TrackName = trackName
		info.ArtistName = artistName
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTrackNotFound
		}
		return fmt.Errorf("updating track metadata: %w", err)
	}

	s.log.Info("track metadata updated",
		zap.String("album", album),
		zap.Int("track", trackNumber),
		zap.String("name", trackName))
	return nil
}

// UploadFile stores an uploaded blob at its resolved key and records
// the resulting public URL in the owning track document. The blob and
// the document are written without atomicity between them: a failed
// document write after a successful blob write leaves an unreferenced
// blob behind.
func (s *Service) UploadFile(ctx context.Context, album string, trackNumber int, fileType storage.FileType, styleKey string, r io.Reader, size int64) (string, error) {
	key, err := storage.ObjectKey(album, trackNumber, fileType, styleKey)
	if err != nil {
		return "", err
	}

	if err := s.docs.Objects().Put(ctx, key, r, size, storage.ContentTypeFor(fileType)); err != nil {
		return "", fmt.Errorf("uploading %s: %w", fileType, err)
	}

	publicURL := s.publicBase + "/" + key

	trackKey, err := storage.ObjectKey(album, trackNumber, storage.FileTypeTrackInfo, "")
	if err != nil {
		return "", err
	}

	_, err = storage.UpdateJSON(ctx, s.docs, trackKey, nil, func(info *TrackInfo) error {
		switch fileType {
		case storage.FileTypeIcon:
			info.IconURL = publicURL
		case storage.FileTypeAudio:
			slot := info.Slot(styleKey)
			slot.AudioURL = publicURL
			slot.AudioType = SourceFile
			slot.Uploaded = true
		case storage.FileTypeLyrics:
			info.Slot(styleKey).LyricsURL = publicURL
		case storage.FileTypeTransitionAudio:
			slot := info.Slot(styleKey)
			slot.TransitionAudioURL = publicURL
			slot.TransitionAudioType = SourceFile
		case storage.FileTypeTransitionLyrics:
			info.Slot(styleKey).TransitionLyricsURL = publicURL
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrTrackNotFound
		}
		return "", fmt.Errorf("recording upload in track info: %w", err)
	}

	s.log.Info("file uploaded",
		zap.String("album", album),
		zap.Int("track", trackNumber),
		zap.String("type", string(fileType)),
		zap.String("key", key))
	return publicURL, nil
}

// StoreYouTubeLink records a YouTube video as a style slot's audio
// source. role is FileTypeAudio for the main track or
// FileTypeTransitionAudio for the transition. Returns the canonical
// watch URL stored in the document.
func (s *Service) StoreYouTubeLink(ctx context.Context, album string, trackNumber int, role storage.FileType, styleKey, videoID string) (string, error) {
	if role != storage.FileTypeAudio && role != storage.FileTypeTransitionAudio {
		return "", fmt.Errorf("%w: %q is not a YouTube link role", storage.ErrInvalidFileType, role)
	}

	watchURL := youtube.WatchURL(videoID)

	trackKey, err := storage.ObjectKey(album, trackNumber, storage.FileTypeTrackInfo, "")
	if err != nil {
		return "", err
	}

	_, err = storage.UpdateJSON(ctx, s.docs, trackKey, nil, func(info *TrackInfo) error {
		slot := info.Slot(styleKey)
		if role == storage.FileTypeAudio {
			slot.AudioURL = watchURL
			slot.AudioType = SourceYouTube
			slot.YouTubeID = videoID
			slot.Uploaded = true
		} else {
			slot.TransitionAudioURL = watchURL
			slot.TransitionAudioType = SourceYouTube
			slot.TransitionYouTubeID = videoID
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrTrackNotFound
		}
		return "", fmt.Errorf("storing YouTube link: %w", err)
	}

	s.log.Info("youtube link stored",
		zap.String("album", album),
		zap.Int("track", trackNumber),
		zap.String("style", styleKey),
		zap.String("video", videoID))
	return watchURL, nil
}
