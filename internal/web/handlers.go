package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/musicwheel/music-wheel/internal/album"
	"github.com/musicwheel/music-wheel/internal/social"
)

// defaultStyles is used when an init request names no styles.
var defaultStyles = []string{"Rock", "Funk", "Hip Hop", "Blues", "Theatrical"}

const defaultTrackCount = 8

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	albums  *album.Service
	social  *social.Service
	tempDir string
	timeout time.Duration
	log     *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(albums *album.Service, socialSvc *social.Service, tempDir string, timeout time.Duration, log *zap.Logger) *Handlers {
	return &Handlers{
		albums:  albums,
		social:  socialSvc,
		tempDir: tempDir,
		timeout: timeout,
		log:     log,
	}
}

// opContext bounds a store-touching operation with the configured
// timeout; single attempt, no retries.
func (h *Handlers) opContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

// serviceError maps a service error onto the response envelope.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, album.ErrAlbumNotFound):
		respondError(w, http.StatusNotFound, "Album not found")
	case errors.Is(err, album.ErrTrackNotFound):
		respondError(w, http.StatusNotFound, "Track not found")
	case errors.Is(err, social.ErrEmptyComment):
		respondError(w, http.StatusBadRequest, "Comment text required")
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// ListAlbums handles GET /api/albums/list.
func (h *Handlers) ListAlbums(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.opContext(r)
	defer cancel()

	albums, err := h.albums.List(ctx)
	if err != nil {
		h.log.Error("listing albums", zap.Error(err))
		serviceError(w, err)
		return
	}

	respondSuccess(w, envelope{"albums": albums})
}

// LoadAlbum handles GET /api/album/load.
func (h *Handlers) LoadAlbum(w http.ResponseWriter, r *http.Request) {
	albumName := r.URL.Query().Get("album")
	if albumName == "" {
		respondError(w, http.StatusBadRequest, "Album name required")
		return
	}

	ctx, cancel := h.opContext(r)
	defer cancel()

	view, err := h.albums.Load(ctx, albumName)
	if err != nil {
		if !errors.Is(err, album.ErrAlbumNotFound) {
			h.log.Error("loading album", zap.String("album", albumName), zap.Error(err))
		}
		serviceError(w, err)
		return
	}

	respondSuccess(w, envelope{"data": view})
}

type initRequest struct {
	Album          string   `json:"album"`
	TrackCount     int      `json:"trackCount"`
	Styles         []string `json:"styles"`
	UseTransitions bool     `json:"useTransitions"`
}

// InitAlbum handles POST /api/album/init.
func (h *Handlers) InitAlbum(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Album == "" {
		respondError(w, http.StatusBadRequest, "Album name required")
		return
	}
	if req.TrackCount <= 0 {
		req.TrackCount = defaultTrackCount
	}
	if len(req.Styles) == 0 {
		req.Styles = defaultStyles
	}

	ctx, cancel := h.opContext(r)
	defer cancel()

	if err := h.albums.Initialize(ctx, req.Album, req.TrackCount, req.Styles, req.UseTransitions); err != nil {
		h.log.Error("initializing album", zap.String("album", req.Album), zap.Error(err))
		serviceError(w, err)
		return
	}

	respondSuccess(w, envelope{
		"message":  "Album " + strconv.Quote(req.Album) + " created successfully",
		"album_id": req.Album,
	})
}

type deleteRequest struct {
	Album string `json:"album"`
}

// DeleteAlbum handles POST /api/album/delete.
func (h *Handlers) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Album == "" {
		respondError(w, http.StatusBadRequest, "Album name required")
		return
	}

	ctx, cancel := h.opContext(r)
	defer cancel()

	if err := h.albums.Delete(ctx, req.Album); err != nil {
		h.log.Error("deleting album", zap.String("album", req.Album), zap.Error(err))
		serviceError(w, err)
		return
	}

	respondSuccess(w, envelope{
		"message": "Album " + strconv.Quote(req.Album) + " deleted successfully",
	})
}

type likeRequest struct {
	Album  string `json:"album"`
	Track  int    `json:"track"`
	UserID string `json:"userId"`
}

// ToggleLike handles POST /api/social/like.
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	ctx, cancel := h.opContext(r)
	defer cancel()

	liked, count, err := h.social.ToggleLike(ctx, req.Album, req.Track, req.UserID)
	if err != nil {
		h.log.Error("toggling like", zap.String("album", req.Album), zap.Error(err))
		serviceError(w, err)
		return
	}

	respondSuccess(w, envelope{"liked": liked, "count": count})
}

type commentRequest struct {
	Album    string `json:"album"`
	Track    int    `json:"track"`
	UserName string `json:"userName"`
	Comment  string `json:"comment"`
}

// AddComment handles POST /api/social/comment.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserName == "" {
		req.UserName = "Anonymous"
	}

	ctx, cancel := h.opContext(r)
	defer cancel()

	comment, err := h.social.AddComment(ctx, req.Album, req.Track, req.UserName, req.Comment)
	if err != nil {
		if !errors.Is(err, social.ErrEmptyComment) {
			h.log.Error("adding comment", zap.String("album", req.Album), zap.Error(err))
		}
		serviceError(w, err)
		return
	}

	respondSuccess(w, envelope{"comment": comment})
}

// GetComments handles GET /api/social/comments.
func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	albumName := r.URL.Query().Get("album")
	track, err := strconv.Atoi(r.URL.Query().Get("track"))
	if albumName == "" || err != nil {
		respondError(w, http.StatusBadRequest, "Album and track required")
		return
	}

	ctx, cancel := h.opContext(r)
	defer cancel()

	comments, err := h.social.Comments(ctx, albumName, track)
	if err != nil {
		h.log.Error("getting comments", zap.String("album", albumName), zap.Error(err))
		serviceError(w, err)
		return
	}

	respondSuccess(w, envelope{"comments": comments})
}
