package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/musicwheel/music-wheel/internal/album"
	"github.com/musicwheel/music-wheel/internal/storage"
	"github.com/musicwheel/music-wheel/internal/youtube"
)

// maxUploadBytes caps the size of a multipart upload request body.
const maxUploadBytes = 100 << 20 // 100 MB

// multipartMemory is how much of a parsed form is held in memory
// before spilling to disk.
const multipartMemory = 32 << 20

// UploadTrack handles POST /api/upload/track: track metadata, an
// optional icon, per-style audio/lyrics/transition files and YouTube
// link fields, all in one multipart form.
func (h *Handlers) UploadTrack(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "File too large (max 100MB)")
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	albumName := r.FormValue("album")
	if albumName == "" {
		respondError(w, http.StatusBadRequest, "Album name required")
		return
	}

	trackNumber, err := strconv.Atoi(r.FormValue("number"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Track number required")
		return
	}

	trackName := r.FormValue("name")
	if trackName == "" {
		trackName = album.DefaultTrackName(trackNumber)
	}
	artistName := r.FormValue("artist")
	if artistName == "" {
		artistName = album.DefaultArtistName
	}

	ctx, cancel := h.opContext(r)
	defer cancel()

	if err := h.albums.UpdateTrackMetadata(ctx, albumName, trackNumber, trackName, artistName); err != nil {
		h.log.Error("updating track metadata", zap.String("album", albumName), zap.Error(err))
		serviceError(w, err)
		return
	}

	var uploaded []string

	// Icon first, then YouTube links, then the style files; the same
	// order the upload form is laid out in.
	if headers := r.MultipartForm.File["icon"]; len(headers) > 0 && headers[0].Filename != "" {
		url, err := h.uploadStaged(ctx, albumName, trackNumber, storage.FileTypeIcon, "", headers[0])
		if err != nil {
			serviceError(w, err)
			return
		}
		uploaded = append(uploaded, "icon: "+url)
	}

	for field, values := range r.MultipartForm.Value {
		role, styleKey, ok := parseYouTubeField(field)
		if !ok || len(values) == 0 || values[0] == "" {
			continue
		}

		videoID, ok := youtube.ExtractID(values[0])
		if !ok {
			// A malformed link skips that slot, not the whole request.
			h.log.Warn("invalid YouTube URL, skipping",
				zap.String("field", field),
				zap.String("url", values[0]))
			continue
		}

		url, err := h.albums.StoreYouTubeLink(ctx, albumName, trackNumber, role, styleKey, videoID)
		if err != nil {
			serviceError(w, err)
			return
		}
		uploaded = append(uploaded, field+": "+url)
	}

	for field, headers := range r.MultipartForm.File {
		if field == "icon" {
			continue
		}
		fileType, styleKey, ok := parseFileField(field)
		if !ok || len(headers) == 0 || headers[0].Filename == "" {
			continue
		}

		url, err := h.uploadStaged(ctx, albumName, trackNumber, fileType, styleKey, headers[0])
		if err != nil {
			serviceError(w, err)
			return
		}
		uploaded = append(uploaded, field+": "+url)
	}

	h.log.Info("track upload complete",
		zap.String("album", albumName),
		zap.Int("track", trackNumber),
		zap.Int("items", len(uploaded)))

	respondSuccess(w, envelope{
		"message": fmt.Sprintf("Track %d uploaded successfully", trackNumber),
		"files":   uploaded,
	})
}

// uploadStaged copies one multipart part to a temp file, forwards it
// to the store, and removes the temp file on every exit path.
func (h *Handlers) uploadStaged(ctx context.Context, albumName string, trackNumber int, fileType storage.FileType, styleKey string, header *multipart.FileHeader) (string, error) {
	path, size, err := stageToTemp(h.tempDir, header)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening staged file: %w", err)
	}
	defer f.Close()

	return h.albums.UploadFile(ctx, albumName, trackNumber, fileType, styleKey, f, size)
}

// parseFileField maps an upload form file field to its file type and
// style key: track_<style>, lyrics_<style>, transition_<style>,
// transition_lyrics_<style>.
func parseFileField(field string) (storage.FileType, string, bool) {
	switch {
	case strings.HasPrefix(field, "transition_lyrics_"):
		return storage.FileTypeTransitionLyrics, strings.TrimPrefix(field, "transition_lyrics_"), true
	case strings.HasPrefix(field, "transition_"):
		return storage.FileTypeTransitionAudio, strings.TrimPrefix(field, "transition_"), true
	case strings.HasPrefix(field, "track_"):
		return storage.FileTypeAudio, strings.TrimPrefix(field, "track_"), true
	case strings.HasPrefix(field, "lyrics_"):
		return storage.FileTypeLyrics, strings.TrimPrefix(field, "lyrics_"), true
	default:
		return "", "", false
	}
}

// parseYouTubeField maps a youtube_track_<style> or
// youtube_transition_<style> form field to its link role and style key.
func parseYouTubeField(field string) (storage.FileType, string, bool) {
	switch {
	case strings.HasPrefix(field, "youtube_track_"):
		return storage.FileTypeAudio, strings.TrimPrefix(field, "youtube_track_"), true
	case strings.HasPrefix(field, "youtube_transition_"):
		return storage.FileTypeTransitionAudio, strings.TrimPrefix(field, "youtube_transition_"), true
	default:
		return "", "", false
	}
}

// stageToTemp copies a multipart part to a uniquely named file under
// the temp dir and returns its path and size. The caller removes it.
func stageToTemp(tempDir string, header *multipart.FileHeader) (string, int64, error) {
	src, err := header.Open()
	if err != nil {
		return "", 0, fmt.Errorf("opening uploaded file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating temp dir: %w", err)
	}

	path := filepath.Join(tempDir, uuid.NewString()+filepath.Ext(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating temp file: %w", err)
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("staging uploaded file: %w", err)
	}

	return path, size, nil
}
