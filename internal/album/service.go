package album

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/musicwheel/music-wheel/internal/social"
	"github.com/musicwheel/music-wheel/internal/storage"
)

// Common errors.
var (
	// ErrAlbumNotFound is returned when an album has no metadata document.
	ErrAlbumNotFound = errors.New("album not found")

	// ErrTrackNotFound is returned when a track_info document is absent.
	ErrTrackNotFound = errors.New("track not found")
)

// Service orchestrates the album object graph on the document store.
// It holds no mutable state; every operation reads current remote
// state and writes whole documents back.
type Service struct {
	docs       *storage.DocumentStore
	publicBase string
	log        *zap.Logger
}

// NewService creates an album service. publicBase is the URL prefix
// public object URLs are built from.
func NewService(docs *storage.DocumentStore, publicBase string, log *zap.Logger) *Service {
	return &Service{
		docs:       docs,
		publicBase: publicBase,
		log:        log,
	}
}

// Initialize writes the full document graph for a new album: metadata,
// then an empty track_info and social_data per track. It fails fast on
// the first write error; a partially initialized album is left as-is
// for the caller to retry or delete.
func (s *Service) Initialize(ctx context.Context, name string, trackCount int, styleNames []string, useTransitions bool) error {
	meta := NewMetadata(name, trackCount, styleNames, useTransitions)

	metaKey, err := storage.ObjectKey(name, 0, storage.FileTypeAlbumMetadata, "")
	if err != nil {
		return err
	}
	if err := s.docs.PutJSON(ctx, metaKey, meta); err != nil {
		return fmt.Errorf("writing album metadata: %w", err)
	}

	for n := 1; n <= trackCount; n++ {
		trackKey, err := storage.ObjectKey(name, n, storage.FileTypeTrackInfo, "")
		if err != nil {
			return err
		}
		if err := s.docs.PutJSON(ctx, trackKey, NewTrackInfo(n, meta.Styles, useTransitions)); err != nil {
			return fmt.Errorf("writing track %d info: %w", n, err)
		}

		socialKey, err := storage.ObjectKey(name, n, storage.FileTypeSocialData, "")
		if err != nil {
			return err
		}
		if err := s.docs.PutJSON(ctx, socialKey, social.NewData()); err != nil {
			return fmt.Errorf("writing track %d social data: %w", n, err)
		}
	}

	s.log.Info("album initialized",
		zap.String("album", name),
		zap.Int("tracks", trackCount),
		zap.Int("styles", len(styleNames)),
		zap.Bool("transitions", useTransitions))
	return nil
}

// Load reads the whole album and projects it into a player view.
// Returns ErrAlbumNotFound when the metadata document is absent.
func (s *Service) Load(ctx context.Context, name string) (*View, error) {
	metaKey, err := storage.ObjectKey(name, 0, storage.FileTypeAlbumMetadata, "")
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := s.docs.GetJSON(ctx, metaKey, &meta); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, fmt.Errorf("loading album metadata: %w", err)
	}

	view := &View{
		AlbumName:      name,
		Artist:         "Various Artists",
		Styles:         meta.Styles,
		UseTransitions: meta.UseTransitions,
		Tracks:         make(map[string]*TrackView, meta.TrackCount),
		Transitions:    map[string]any{},
	}

	for n := 1; n <= meta.TrackCount; n++ {
		track, err := s.loadTrackView(ctx, name, n, meta.UseTransitions)
		if err != nil {
			return nil, err
		}
		if track != nil {
			view.Tracks[fmt.Sprintf("%d", track.Number)] = track
		}
	}

	s.log.Info("album loaded", zap.String("album", name), zap.Int("tracks", len(view.Tracks)))
	return view, nil
}

// loadTrackView reads one track's info and social documents and
// projects the populated style slots. A missing track_info yields a
// nil view, not an error.
func (s *Service) loadTrackView(ctx context.Context, name string, n int, useTransitions bool) (*TrackView, error) {
	trackKey, err := storage.ObjectKey(name, n, storage.FileTypeTrackInfo, "")
	if err != nil {
		return nil, err
	}

	var info TrackInfo
	if err := s.docs.GetJSON(ctx, trackKey, &info); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading track %d info: %w", n, err)
	}

	socialKey, err := storage.ObjectKey(name, n, storage.FileTypeSocialData, "")
	if err != nil {
		return nil, err
	}

	var socialData social.Data
	if err := s.docs.GetJSON(ctx, socialKey, &socialData); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("loading track %d social data: %w", n, err)
	}

	track := &TrackView{
		Number: info.TrackNumber,
		Name:   info.TrackName,
		Artist: info.ArtistName,
		Icon:   info.IconURL,
		Styles: make(map[string]*SlotView),
		Social: SocialSummary{
			Likes:    socialData.LikeCount,
			Comments: len(socialData.Comments),
		},
	}

	for key, slot := range info.Styles {
		if slot == nil || slot.AudioURL == "" {
			continue
		}

		audioType := slot.AudioType
		if audioType == "" {
			audioType = SourceFile
		}

		sv := &SlotView{
			URL:       slot.AudioURL,
			Type:      audioType,
			YouTubeID: slot.YouTubeID,
			LyricsURL: slot.LyricsURL,
			Uploaded:  true,
		}

		if useTransitions {
			transitionType := slot.TransitionAudioType
			if transitionType == "" {
				transitionType = SourceFile
			}
			sv.TransitionURL = ptr(slot.TransitionAudioURL)
			sv.TransitionType = ptr(transitionType)
			sv.TransitionLyricsURL = ptr(slot.TransitionLyricsURL)
		}

		track.Styles[key] = sv
	}

	return track, nil
}

// Delete removes every object under the album's root folder. Not
// transactional: a failed delete may leave orphaned objects behind.
func (s *Service) Delete(ctx context.Context, name string) error {
	objects := s.docs.Objects()

	keys, err := objects.List(ctx, storage.AlbumPrefix(name))
	if err != nil {
		return fmt.Errorf("listing album objects: %w", err)
	}

	for _, key := range keys {
		if err := objects.Delete(ctx, key); err != nil {
			return fmt.Errorf("deleting album objects: %w", err)
		}
	}

	s.log.Info("album deleted", zap.String("album", name), zap.Int("objects", len(keys)))
	return nil
}

// List enumerates the album names present in the store. Order is not
// guaranteed; each name appears at most once.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.docs.Objects().ListPrefixes(ctx, storage.AlbumsPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing albums: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func ptr(s string) *string {
	return &s
}
