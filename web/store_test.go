package web

import (
	"testing"

	"github.com/cricketlab/crickmotion/feature"
)

func testStore(t *testing.T) *SessionStore {
	t.Helper()

	store, err := OpenSessionStore(":memory:")

	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { store.Close() })

	return store
}

func TestSessionStoreInsertGet(t *testing.T) {

	store := testStore(t)

	sess := &Session{
		VideoName:   "delivery",
		FPS:         5,
		FrameCount:  20,
		RecordCount: 18,
		RowCount:    17,
		FeaturesCSV: "data/analysis/delivery_features.csv",
		OverlayMP4:  "data/analysis/delivery_overlay.mp4",
		PoseHTML:    "data/analysis/delivery_pose.html",
		Summary: feature.Summary{
			Rows:       17,
			RightElbow: feature.Stats{Mean: 120, Min: 90, Max: 160},
		},
	}

	if err := store.Insert(sess); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if sess.ID == "" {
		t.Fatal("Insert did not assign an ID")
	}

	got, err := store.Get(sess.ID)

	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.VideoName != "delivery" || got.FPS != 5 {
		t.Errorf("unexpected session: %+v", got)
	}

	if got.Summary.RightElbow.Mean != 120 {
		t.Errorf("summary did not survive round trip: %+v", got.Summary)
	}
}

func TestSessionStoreGetMissing(t *testing.T) {

	store := testStore(t)

	if _, err := store.Get("no-such-id"); err == nil {
		t.Error("expected error for unknown session id")
	}
}

func TestSessionStoreListOrder(t *testing.T) {

	store := testStore(t)

	for _, name := range []string{"first", "second", "third"} {
		sess := &Session{VideoName: name}

		if err := store.Insert(sess); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := store.List()

	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
}
