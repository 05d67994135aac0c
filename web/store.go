package web

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cricketlab/crickmotion/feature"
)

// Session records one completed analysis run and the artifacts it produced.
type Session struct {
	ID          string
	VideoName   string
	FPS         int
	FrameCount  int
	RecordCount int
	RowCount    int
	FeaturesCSV string
	OverlayMP4  string
	PoseHTML    string
	ThumbPath   string
	Summary     feature.Summary
	CreatedAt   time.Time
}

// SessionStore persists analysis sessions in SQLite.
type SessionStore struct {
	db *sql.DB
}

// OpenSessionStore opens (or creates) the session database at path and
// ensures the schema exists.
func OpenSessionStore(path string) (*SessionStore, error) {

	db, err := sql.Open("sqlite3", path)

	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	s := &SessionStore{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

func (s *SessionStore) migrate() error {

	const schema = `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		video_name TEXT NOT NULL,
		fps INTEGER NOT NULL,
		frame_count INTEGER NOT NULL,
		record_count INTEGER NOT NULL,
		row_count INTEGER NOT NULL,
		features_csv TEXT NOT NULL,
		overlay_mp4 TEXT NOT NULL,
		pose_html TEXT NOT NULL,
		thumb_path TEXT NOT NULL DEFAULT '',
		summary_json TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL
	)`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate sessions table: %w", err)
	}

	return nil
}

// Insert stores a new session, assigning it an ID and creation time.
func (s *SessionStore) Insert(sess *Session) error {

	sess.ID = uuid.New().String()
	sess.CreatedAt = time.Now().UTC()

	summary, err := json.Marshal(sess.Summary)

	if err != nil {
		return fmt.Errorf("failed to encode session summary: %w", err)
	}

	const q = `INSERT INTO sessions
		(id, video_name, fps, frame_count, record_count, row_count,
		 features_csv, overlay_mp4, pose_html, thumb_path, summary_json,
		 created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(q, sess.ID, sess.VideoName, sess.FPS,
		sess.FrameCount, sess.RecordCount, sess.RowCount,
		sess.FeaturesCSV, sess.OverlayMP4, sess.PoseHTML, sess.ThumbPath,
		string(summary), sess.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get returns the session with the given ID.
func (s *SessionStore) Get(id string) (*Session, error) {

	const q = `SELECT id, video_name, fps, frame_count, record_count,
		row_count, features_csv, overlay_mp4, pose_html, thumb_path,
		summary_json, created_at FROM sessions WHERE id = ?`

	var sess Session
	var summary string

	err := s.db.QueryRow(q, id).Scan(&sess.ID, &sess.VideoName, &sess.FPS,
		&sess.FrameCount, &sess.RecordCount, &sess.RowCount,
		&sess.FeaturesCSV, &sess.OverlayMP4, &sess.PoseHTML, &sess.ThumbPath,
		&summary, &sess.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(summary), &sess.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode session summary: %w", err)
	}

	return &sess, nil
}

// List returns sessions most recent first.
func (s *SessionStore) List() ([]Session, error) {

	const q = `SELECT id, video_name, fps, frame_count, record_count,
		row_count, features_csv, overlay_mp4, pose_html, thumb_path,
		summary_json, created_at FROM sessions ORDER BY created_at DESC`

	rows, err := s.db.Query(q)

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	defer rows.Close()

	var sessions []Session

	for rows.Next() {
		var sess Session
		var summary string

		if err := rows.Scan(&sess.ID, &sess.VideoName, &sess.FPS,
			&sess.FrameCount, &sess.RecordCount, &sess.RowCount,
			&sess.FeaturesCSV, &sess.OverlayMP4, &sess.PoseHTML,
			&sess.ThumbPath, &summary, &sess.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		if err := json.Unmarshal([]byte(summary), &sess.Summary); err != nil {
			return nil, fmt.Errorf("failed to decode session summary: %w", err)
		}

		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}
