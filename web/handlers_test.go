package web

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cricketlab/crickmotion/logging"
	"github.com/cricketlab/crickmotion/pipeline"
)

// stubRunner returns a fixed pipeline result without touching any video
type stubRunner struct {
	res *pipeline.Result
	err error
}

func (s *stubRunner) Run(videoPath string, fps int) (*pipeline.Result, error) {
	if s.err != nil {
		return nil, s.err
	}

	res := *s.res
	res.FPS = fps
	return &res, nil
}

func testApp(t *testing.T, runner Runner) *App {
	t.Helper()

	dir := t.TempDir()

	storage, err := NewLocalStorage(filepath.Join(dir, "uploads"))

	if err != nil {
		t.Fatal(err)
	}

	store, err := OpenSessionStore(":memory:")

	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { store.Close() })

	return &App{
		Storage:       storage,
		Store:         store,
		Runner:        runner,
		Workspace:     pipeline.Workspace{DataDir: filepath.Join(dir, "data")},
		MaxUploadSize: 10 << 20,
		MinFPS:        2,
		MaxFPS:        15,
		DefaultFPS:    5,
		Log:           logging.New(logging.LevelError, ""),
	}
}

func uploadRequest(t *testing.T, filename, fps string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("video", filename)

	if err != nil {
		t.Fatal(err)
	}

	io.WriteString(fw, "not really video bytes")

	if fps != "" {
		mw.WriteField("fps", fps)
	}

	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestAnalyzeHandler(t *testing.T) {

	runner := &stubRunner{
		res: &pipeline.Result{
			VideoName:   "clip",
			FrameCount:  10,
			RecordCount: 9,
			RowCount:    9,
			FeaturesCSV: "data/analysis/clip_features.csv",
			OverlayMP4:  "data/analysis/clip_overlay.mp4",
			PoseHTML:    "data/analysis/clip_pose.html",
		},
	}

	app := testApp(t, runner)
	router := NewRouter(app)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "clip.mp4", "8"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d: %s", rec.Code, rec.Body.String())
	}

	loc := rec.Header().Get("Location")

	if !strings.HasPrefix(loc, "/sessions/") {
		t.Fatalf("unexpected redirect target %q", loc)
	}

	// the session result page renders from the store
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("session page returned %d", rec.Code)
	}

	for _, want := range []string{"clip", "8 fps", "clip_overlay.mp4"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("session page missing %q", want)
		}
	}
}

func TestAnalyzeHandlerRejectsNonVideo(t *testing.T) {

	app := testApp(t, &stubRunner{})
	router := NewRouter(app)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "notes.txt", "5"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non video upload, got %d", rec.Code)
	}
}

func TestAnalyzeHandlerEmptyPipeline(t *testing.T) {

	app := testApp(t, &stubRunner{err: pipeline.ErrNoPoses})
	router := NewRouter(app)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "clip.mp4", "5"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for an empty pipeline, got %d", rec.Code)
	}
}

func TestHomeHandler(t *testing.T) {

	app := testApp(t, &stubRunner{})
	router := NewRouter(app)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("home returned %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "Sampling FPS") {
		t.Error("home page missing the fps slider")
	}
}

func TestClampFPS(t *testing.T) {

	app := &App{MinFPS: 2, MaxFPS: 15, DefaultFPS: 5}

	tests := []struct {
		value    string
		expected int
	}{
		{"8", 8},
		{"1", 2},
		{"30", 15},
		{"", 5},
		{"abc", 5},
	}

	for _, tc := range tests {
		if got := app.clampFPS(tc.value); got != tc.expected {
			t.Errorf("clampFPS(%q) = %d, expected %d", tc.value, got, tc.expected)
		}
	}
}

func TestAllowedVideo(t *testing.T) {

	tests := []struct {
		filename    string
		contentType string
		expected    bool
	}{
		{"clip.mp4", "video/mp4", true},
		{"clip.mov", "application/octet-stream", true},
		{"clip.MKV", "", true},
		{"notes.txt", "text/plain", false},
		{"payload.exe", "application/octet-stream", false},
	}

	for _, tc := range tests {
		if got := allowedVideo(tc.filename, tc.contentType); got != tc.expected {
			t.Errorf("allowedVideo(%q, %q) = %v, expected %v",
				tc.filename, tc.contentType, got, tc.expected)
		}
	}
}
