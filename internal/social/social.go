// Package social implements per-track likes and comments, stored as
// one social_data.json document per track.
package social

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/musicwheel/music-wheel/internal/storage"
)

// ErrEmptyComment is returned when a comment has no text.
var ErrEmptyComment = errors.New("comment text required")

// Comment is one entry of a track's comment list.
type Comment struct {
	ID        int    `json:"id"`
	User      string `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Data is the social_data.json document. LikeCount always equals the
// size of Likes; Comments is append-only and kept in insertion order.
type Data struct {
	Likes     []string  `json:"likes"`
	LikeCount int       `json:"like_count"`
	Comments  []Comment `json:"comments"`
}

// NewData returns an empty social document.
func NewData() *Data {
	return &Data{Likes: []string{}, Comments: []Comment{}}
}

// Service provides like and comment operations over the document store.
type Service struct {
	docs *storage.DocumentStore
	log  *zap.Logger
	now  func() time.Time
}

// NewService creates a social service.
func NewService(docs *storage.DocumentStore, log *zap.Logger) *Service {
	return &Service{docs: docs, log: log, now: time.Now}
}

// ToggleLike adds userID to the track's liker set, or removes it when
// already present. Returns the resulting state and like count. A
// second toggle from the same user restores the original state; two
// concurrent togglers race last-write-wins on the whole document.
func (s *Service) ToggleLike(ctx context.Context, album string, trackNumber int, userID string) (liked bool, count int, err error) {
	key, err := storage.ObjectKey(album, trackNumber, storage.FileTypeSocialData, "")
	if err != nil {
		return false, 0, err
	}

	data, err := storage.UpdateJSON(ctx, s.docs, key, NewData, func(data *Data) error {
		if i := slices.Index(data.Likes, userID); i >= 0 {
			data.Likes = slices.Delete(data.Likes, i, i+1)
			liked = false
		} else {
			data.Likes = append(data.Likes, userID)
			liked = true
		}
		data.LikeCount = len(data.Likes)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("toggling like: %w", err)
	}

	s.log.Info("like toggled",
		zap.String("album", album),
		zap.Int("track", trackNumber),
		zap.Bool("liked", liked),
		zap.Int("count", data.LikeCount))
	return liked, data.LikeCount, nil
}

// AddComment appends a comment and returns it. The id is computed from
// the current comment count, matching the stored layout: it is not a
// durable counter, so ids can be reused after deletions and concurrent
// appends can collide.
func (s *Service) AddComment(ctx context.Context, album string, trackNumber int, userName, text string) (*Comment, error) {
	if text == "" {
		return nil, ErrEmptyComment
	}

	key, err := storage.ObjectKey(album, trackNumber, storage.FileTypeSocialData, "")
	if err != nil {
		return nil, err
	}

	var comment Comment
	_, err = storage.UpdateJSON(ctx, s.docs, key, NewData, func(data *Data) error {
		comment = Comment{
			ID:        len(data.Comments) + 1,
			User:      userName,
			Text:      text,
			Timestamp: s.now().Format(time.RFC3339),
		}
		data.Comments = append(data.Comments, comment)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}

	s.log.Info("comment added",
		zap.String("album", album),
		zap.Int("track", trackNumber),
		zap.Int("id", comment.ID))
	return &comment, nil
}

// Comments returns the track's comments in insertion order. A track
// with no social document has no comments, not an error.
func (s *Service) Comments(ctx context.Context, album string, trackNumber int) ([]Comment, error) {
	key, err := storage.ObjectKey(album, trackNumber, storage.FileTypeSocialData, "")
	if err != nil {
		return nil, err
	}

	var data Data
	if err := s.docs.GetJSON(ctx, key, &data); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Comment{}, nil
		}
		return nil, fmt.Errorf("loading comments: %w", err)
	}

	if data.Comments == nil {
		return []Comment{}, nil
	}
	return data.Comments, nil
}
