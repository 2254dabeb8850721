package storage

import (
	"context"
	"errors"
	"testing"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	docs := NewDocumentStore(NewMemStore())

	want := testDoc{Name: "Demo", Count: 3}
	if err := docs.PutJSON(ctx, "albums/Demo/doc.json", want); err != nil {
		t.Fatalf("PutJSON() error = %v", err)
	}

	var got testDoc
	if err := docs.GetJSON(ctx, "albums/Demo/doc.json", &got); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if got != want {
		t.Errorf("GetJSON() = %+v, want %+v", got, want)
	}
}

func TestDocumentStoreGetMissing(t *testing.T) {
	docs := NewDocumentStore(NewMemStore())

	var got testDoc
	err := docs.GetJSON(context.Background(), "albums/None/doc.json", &got)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetJSON() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateJSON(t *testing.T) {
	ctx := context.Background()
	docs := NewDocumentStore(NewMemStore())

	if err := docs.PutJSON(ctx, "doc.json", testDoc{Name: "Demo", Count: 1}); err != nil {
		t.Fatalf("PutJSON() error = %v", err)
	}

	updated, err := UpdateJSON(ctx, docs, "doc.json", nil, func(doc *testDoc) error {
		doc.Count++
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateJSON() error = %v", err)
	}
	if updated.Count != 2 {
		t.Errorf("updated count = %d, want 2", updated.Count)
	}

	var stored testDoc
	if err := docs.GetJSON(ctx, "doc.json", &stored); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if stored.Count != 2 {
		t.Errorf("stored count = %d, want 2", stored.Count)
	}
}

func TestUpdateJSONMissing(t *testing.T) {
	ctx := context.Background()
	docs := NewDocumentStore(NewMemStore())

	// Without an init the absence propagates.
	_, err := UpdateJSON(ctx, docs, "doc.json", nil, func(doc *testDoc) error {
		return nil
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateJSON() error = %v, want ErrNotFound", err)
	}

	// With an init the document starts from the default.
	updated, err := UpdateJSON(ctx, docs, "doc.json",
		func() *testDoc { return &testDoc{Name: "fresh"} },
		func(doc *testDoc) error {
			doc.Count = 7
			return nil
		})
	if err != nil {
		t.Fatalf("UpdateJSON() error = %v", err)
	}
	if updated.Name != "fresh" || updated.Count != 7 {
		t.Errorf("updated = %+v, want {fresh 7}", updated)
	}
}

func TestMemStoreListPrefixes(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	docs := NewDocumentStore(store)

	keys := []string{
		"albums/First/album_metadata.json",
		"albums/First/Track_01/track_info.json",
		"albums/Second/album_metadata.json",
	}
	for _, key := range keys {
		if err := docs.PutJSON(ctx, key, testDoc{}); err != nil {
			t.Fatalf("PutJSON(%s) error = %v", key, err)
		}
	}

	names, err := store.ListPrefixes(ctx, "albums/")
	if err != nil {
		t.Fatalf("ListPrefixes() error = %v", err)
	}

	want := []string{"First", "Second"}
	if len(names) != len(want) {
		t.Fatalf("ListPrefixes() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ListPrefixes()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
