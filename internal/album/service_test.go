package album

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/musicwheel/music-wheel/internal/storage"
)

const testPublicBase = "https://pub-test.r2.dev"

func newTestService() (*Service, *storage.MemStore) {
	store := storage.NewMemStore()
	docs := storage.NewDocumentStore(store)
	return NewService(docs, testPublicBase, zap.NewNop()), store
}

func TestInitializeThenLoad(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	styles := []string{"Rock", "Hip Hop"}
	if err := svc.Initialize(ctx, "Demo", 3, styles, false); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	view, err := svc.Load(ctx, "Demo")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(view.Tracks) != 3 {
		t.Fatalf("len(Tracks) = %d, want 3", len(view.Tracks))
	}
	if len(view.Styles) != 2 {
		t.Fatalf("len(Styles) = %d, want 2", len(view.Styles))
	}
	if view.Styles[1].Key != "hip_hop" {
		t.Errorf("style key = %q, want %q", view.Styles[1].Key, "hip_hop")
	}

	// Nothing uploaded yet: every track view has an empty style map.
	for num, track := range view.Tracks {
		if len(track.Styles) != 0 {
			t.Errorf("track %s has %d populated styles, want 0", num, len(track.Styles))
		}
		if track.Artist != DefaultArtistName {
			t.Errorf("track %s artist = %q, want %q", num, track.Artist, DefaultArtistName)
		}
	}
}

func TestStyleColorWrapsAround(t *testing.T) {
	styleNames := []string{
		"A", "B", "C", "D", "E", "F", "G", "H",
		"I", "J", "K", "L", "M", "N", "O", "P",
	}
	meta := NewMetadata("Demo", 1, styleNames, false)

	if len(meta.Styles) != 16 {
		t.Fatalf("len(Styles) = %d, want 16", len(meta.Styles))
	}
	if meta.Styles[15].Color != meta.Styles[0].Color {
		t.Errorf("style 15 color = %q, want %q (palette wraparound)",
			meta.Styles[15].Color, meta.Styles[0].Color)
	}
	if meta.Styles[1].Color == meta.Styles[0].Color {
		t.Errorf("adjacent styles share color %q", meta.Styles[0].Color)
	}
}

func TestLoadMissingAlbum(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Load(context.Background(), "Nothing")
	if !errors.Is(err, ErrAlbumNotFound) {
		t.Errorf("Load() error = %v, want ErrAlbumNotFound", err)
	}
}

func TestUploadFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	if err := svc.Initialize(ctx, "Demo", 1, []string{"Rock"}, false); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	audio := []byte("not really an mp3")
	url, err := svc.UploadFile(ctx, "Demo", 1, storage.FileTypeAudio, "rock",
		bytes.NewReader(audio), int64(len(audio)))
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}

	wantURL := testPublicBase + "/albums/Demo/Track_01/rock_track.mp3"
	if url != wantURL {
		t.Errorf("UploadFile() url = %q, want %q", url, wantURL)
	}
	if ct := store.ContentType("albums/Demo/Track_01/rock_track.mp3"); ct != "audio/mpeg" {
		t.Errorf("stored content type = %q, want audio/mpeg", ct)
	}

	view, err := svc.Load(ctx, "Demo")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	slot := view.Tracks["1"].Styles["rock"]
	if slot == nil {
		t.Fatal("rock slot missing from loaded view")
	}
	if slot.URL != url {
		t.Errorf("slot url = %q, want %q", slot.URL, url)
	}
	if !slot.Uploaded {
		t.Error("slot uploaded = false, want true")
	}
	if slot.Type != SourceFile {
		t.Errorf("slot type = %q, want %q", slot.Type, SourceFile)
	}
	if slot.TransitionURL != nil {
		t.Error("transition fields present on album without transitions")
	}
}

func TestUploadIcon(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if err := svc.Initialize(ctx, "Demo", 1, []string{"Rock"}, false); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	url, err := svc.UploadFile(ctx, "Demo", 1, storage.FileTypeIcon, "",
		strings.NewReader("png bytes"), 9)
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
	if !strings.HasSuffix(url, "/albums/Demo/Track_01/icon.png") {
		t.Errorf("icon url = %q", url)
	}

	view, err := svc.Load(ctx, "Demo")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if view.Tracks["1"].Icon != url {
		t.Errorf("track icon = %q, want %q", view.Tracks["1"].Icon, url)
	}
}

func TestStoreYouTubeLink(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if err := svc.Initialize(ctx, "Demo", 1, []string{"Rock"}, true); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	url, err := svc.StoreYouTubeLink(ctx, "Demo", 1, storage.FileTypeAudio, "rock", "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("StoreYouTubeLink() error = %v", err)
	}
	if url != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("StoreYouTubeLink() url = %q", url)
	}

	if _, err := svc.StoreYouTubeLink(ctx, "Demo", 1, storage.FileTypeTransitionAudio, "rock", "abcdefghij_"); err != nil {
		t.Fatalf("StoreYouTubeLink(transition) error = %v", err)
	}

	view, err := svc.Load(ctx, "Demo")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	slot := view.Tracks["1"].Styles["rock"]
	if slot == nil {
		t.Fatal("rock slot missing from loaded view")
	}
	if slot.Type != SourceYouTube {
		t.Errorf("slot type = %q, want %q", slot.Type, SourceYouTube)
	}
	if slot.YouTubeID != "dQw4w9WgXcQ" {
		t.Errorf("slot youtube id = %q", slot.YouTubeID)
	}
	if slot.TransitionType == nil || *slot.TransitionType != SourceYouTube {
		t.Errorf("transition type = %v, want youtube", slot.TransitionType)
	}
	if slot.TransitionURL == nil || *slot.TransitionURL != "https://www.youtube.com/watch?v=abcdefghij_" {
		t.Errorf("transition url = %v", slot.TransitionURL)
	}
}

func TestStoreYouTubeLinkMissingTrack(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.StoreYouTubeLink(context.Background(), "Nothing", 1, storage.FileTypeAudio, "rock", "dQw4w9WgXcQ")
	if !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("StoreYouTubeLink() error = %v, want ErrTrackNotFound", err)
	}
}

func TestStoreYouTubeLinkInvalidRole(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.StoreYouTubeLink(context.Background(), "Demo", 1, storage.FileTypeLyrics, "rock", "dQw4w9WgXcQ")
	if !errors.Is(err, storage.ErrInvalidFileType) {
		t.Errorf("StoreYouTubeLink() error = %v, want ErrInvalidFileType", err)
	}
}

func TestUpdateTrackMetadata(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if err := svc.Initialize(ctx, "Demo", 1, []string{"Rock"}, false); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if err := svc.UpdateTrackMetadata(ctx, "Demo", 1, "Opening", "The Band"); err != nil {
		t.Fatalf("UpdateTrackMetadata() error = %v", err)
	}

	view, err := svc.Load(ctx, "Demo")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if view.Tracks["1"].Name != "Opening" || view.Tracks["1"].Artist != "The Band" {
		t.Errorf("track = %q by %q, want Opening by The Band",
			view.Tracks["1"].Name, view.Tracks["1"].Artist)
	}

	err = svc.UpdateTrackMetadata(ctx, "Demo", 2, "No Such", "Track")
	if !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("UpdateTrackMetadata() error = %v, want ErrTrackNotFound", err)
	}
}

func TestDeleteAlbum(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	if err := svc.Initialize(ctx, "Demo", 2, []string{"Rock"}, false); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if err := svc.Delete(ctx, "Demo"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	keys, err := store.List(ctx, "albums/Demo/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("album objects remain after delete: %v", keys)
	}

	if _, err := svc.Load(ctx, "Demo"); !errors.Is(err, ErrAlbumNotFound) {
		t.Errorf("Load() after delete error = %v, want ErrAlbumNotFound", err)
	}
}

func TestListAlbums(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	names, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() on empty store = %v, want []", names)
	}

	for _, name := range []string{"First", "Second"} {
		if err := svc.Initialize(ctx, name, 1, []string{"Rock"}, false); err != nil {
			t.Fatalf("Initialize(%s) error = %v", name, err)
		}
	}

	names, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2 {
		t.Errorf("List() = %v, want two unique names", names)
	}
}

func TestStyleKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Rock", "rock"},
		{"Hip Hop", "hip_hop"},
		{"ALREADY_KEYED", "already_keyed"},
	}
	for _, tt := range tests {
		if got := StyleKey(tt.name); got != tt.want {
			t.Errorf("StyleKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
