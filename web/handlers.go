// Package web exposes the analysis pipeline behind an upload and run
// dashboard with session history and artifact downloads.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cricketlab/crickmotion/feature"
	"github.com/cricketlab/crickmotion/logging"
	"github.com/cricketlab/crickmotion/pipeline"
)

// thumbWidth is the pixel width of the session list poster images
const thumbWidth = 320

// Runner runs the analysis pipeline for one uploaded video.
type Runner interface {
	Run(videoPath string, fps int) (*pipeline.Result, error)
}

// App holds the dashboard dependencies and request handlers.
type App struct {
	Storage       Storage
	Store         *SessionStore
	Runner        Runner
	Workspace     pipeline.Workspace
	MaxUploadSize int64
	MinFPS        int
	MaxFPS        int
	DefaultFPS    int
	Log           *logging.Logger
}

// PingHandler answers liveness probes.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// HomeHandler renders the upload form and the past session list.
func (app *App) HomeHandler(w http.ResponseWriter, r *http.Request) {

	sessions, err := app.Store.List()

	if err != nil {
		app.Log.Error("listing sessions: %v", err)
		http.Error(w, "Error loading sessions", http.StatusInternalServerError)
		return
	}

	data := struct {
		MinFPS     int
		MaxFPS     int
		DefaultFPS int
		Sessions   []Session
	}{
		MinFPS:     app.MinFPS,
		MaxFPS:     app.MaxFPS,
		DefaultFPS: app.DefaultFPS,
		Sessions:   sessions,
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		app.Log.Error("rendering page: %v", err)
	}
}

// AnalyzeHandler accepts an uploaded video, runs the full pipeline
// synchronously and redirects to the session result page.
func (app *App) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {

	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)

	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		app.renderError(w, http.StatusBadRequest, "File too large")
		return
	}

	file, header, err := r.FormFile("video")

	if err != nil {
		app.renderError(w, http.StatusBadRequest, "Failed to get uploaded file")
		return
	}

	defer file.Close()

	if !allowedVideo(header.Filename, header.Header.Get("Content-Type")) {
		app.renderError(w, http.StatusBadRequest,
			"Only MP4, MOV or MKV video files are allowed")
		return
	}

	fps := app.clampFPS(r.FormValue("fps"))

	name, err := app.Storage.SaveUpload(file, UploadInfo{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})

	if err != nil {
		app.Log.Error("saving upload: %v", err)
		app.renderError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	videoPath, err := app.Storage.Path(name)

	if err != nil {
		app.renderError(w, http.StatusInternalServerError, "Failed to locate upload")
		return
	}

	res, err := app.Runner.Run(videoPath, fps)

	if err != nil {
		app.Log.Error("pipeline run for %s: %v", name, err)

		status := http.StatusInternalServerError
		msg := "Analysis failed"

		if errors.Is(err, pipeline.ErrNoFrames) || errors.Is(err, pipeline.ErrNoPoses) {
			status = http.StatusUnprocessableEntity
			msg = fmt.Sprintf("Analysis produced no output: %v", err)
		}

		app.renderError(w, status, msg)
		return
	}

	sess := &Session{
		VideoName:   res.VideoName,
		FPS:         res.FPS,
		FrameCount:  res.FrameCount,
		RecordCount: res.RecordCount,
		RowCount:    res.RowCount,
		FeaturesCSV: res.FeaturesCSV,
		OverlayMP4:  res.OverlayMP4,
		PoseHTML:    res.PoseHTML,
		Summary:     res.Summary,
		ThumbPath:   app.writeThumb(res),
	}

	if err := app.Store.Insert(sess); err != nil {
		app.Log.Error("saving session: %v", err)
		app.renderError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	http.Redirect(w, r, "/sessions/"+sess.ID, http.StatusSeeOther)
}

// SessionHandler renders the result page for a past analysis.
func (app *App) SessionHandler(w http.ResponseWriter, r *http.Request) {

	id := chi.URLParam(r, "id")

	sess, err := app.Store.Get(id)

	if err != nil {
		http.NotFound(w, r)
		return
	}

	type statRow struct {
		Name string
		feature.Stats
	}

	data := struct {
		Session      *Session
		OverlayName  string
		FeaturesName string
		PoseName     string
		Stats        []statRow
	}{
		Session:      sess,
		OverlayName:  filepath.Base(sess.OverlayMP4),
		FeaturesName: filepath.Base(sess.FeaturesCSV),
		PoseName:     filepath.Base(sess.PoseHTML),
		Stats: []statRow{
			{"Right elbow", sess.Summary.RightElbow},
			{"Right knee", sess.Summary.RightKnee},
			{"Trunk tilt", sess.Summary.Trunk},
		},
	}

	if err := resultTemplate.Execute(w, data); err != nil {
		app.Log.Error("rendering result: %v", err)
	}
}

// writeThumb generates the session list poster from the first sampled
// frame.  A missing thumbnail is not fatal.
func (app *App) writeThumb(res *pipeline.Result) string {

	firstFrame := filepath.Join(app.Workspace.FramesDir(res.VideoName),
		"frame_00000.jpg")
	thumbName := res.VideoName + "_thumb.jpg"
	thumbPath := filepath.Join(app.Workspace.AnalysisDir(), thumbName)

	if err := WriteThumb(firstFrame, thumbPath, thumbWidth); err != nil {
		app.Log.Warn("thumbnail generation: %v", err)
		return ""
	}

	return thumbName
}

// clampFPS parses the form value and clamps it into the configured slider
// bounds, falling back to the default on a parse failure.
func (app *App) clampFPS(value string) int {

	fps, err := strconv.Atoi(value)

	if err != nil {
		return app.DefaultFPS
	}

	if fps < app.MinFPS {
		return app.MinFPS
	}

	if fps > app.MaxFPS {
		return app.MaxFPS
	}

	return fps
}

// allowedVideo reports whether the upload looks like a supported video
// container by content type or file extension.
func allowedVideo(filename, contentType string) bool {

	if strings.HasPrefix(contentType, "video/") {
		return true
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".mov", ".mkv":
		return true
	}

	return false
}

func (app *App) renderError(w http.ResponseWriter, status int, message string) {

	w.WriteHeader(status)

	data := struct{ Message string }{Message: message}

	if err := errorTemplate.Execute(w, data); err != nil {
		app.Log.Error("rendering error page: %v", err)
	}
}
