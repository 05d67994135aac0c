package feature

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/cricketlab/crickmotion/logging"
	"github.com/cricketlab/crickmotion/pose"
)

func testLogger() *logging.Logger {
	return logging.New(logging.LevelError, "")
}

func writeRecord(t *testing.T, dir, name string, rec pose.Record) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := rec.Save(path); err != nil {
		t.Fatalf("writing record %s: %v", name, err)
	}

	return path
}

func TestExtractFeatures(t *testing.T) {

	dir := t.TempDir()
	csvOut := filepath.Join(dir, "features.csv")

	complete := fullRecord()

	partial := fullRecord()
	delete(partial, pose.RightWrist)

	paths := []string{
		writeRecord(t, dir, "frame_00000.json", complete),
		writeRecord(t, dir, "frame_00001.json", partial),
		writeRecord(t, dir, "frame_00002.json", complete),
	}

	rows, err := ExtractFeatures(paths, csvOut, testLogger())

	if err != nil {
		t.Fatalf("ExtractFeatures failed: %v", err)
	}

	// the partial record is skipped, not fatal
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].Frame != "frame_00000" || rows[1].Frame != "frame_00002" {
		t.Errorf("unexpected row order: %s, %s", rows[0].Frame, rows[1].Frame)
	}

	f, err := os.Open(csvOut)

	if err != nil {
		t.Fatalf("feature table not written: %v", err)
	}

	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()

	if err != nil {
		t.Fatalf("reading feature table: %v", err)
	}

	// header plus two rows
	if len(records) != 3 {
		t.Fatalf("expected 3 csv records, got %d", len(records))
	}

	for i, col := range Header {
		if records[0][i] != col {
			t.Errorf("header column %d = %s, expected %s", i, records[0][i], col)
		}
	}
}

func TestExtractFeaturesEmptyStillWritesTable(t *testing.T) {

	dir := t.TempDir()
	csvOut := filepath.Join(dir, "features.csv")

	rows, err := ExtractFeatures(nil, csvOut, testLogger())

	if err != nil {
		t.Fatalf("ExtractFeatures failed: %v", err)
	}

	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}

	f, err := os.Open(csvOut)

	if err != nil {
		t.Fatalf("expected header only table to exist: %v", err)
	}

	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()

	if err != nil {
		t.Fatalf("reading feature table: %v", err)
	}

	if len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}

func TestSummarise(t *testing.T) {

	rows := []Row{
		{Frame: "frame_00000", Angles: Angles{RightElbow: 100, RightKnee: 170, Trunk: 80}},
		{Frame: "frame_00001", Angles: Angles{RightElbow: 120, RightKnee: 170, Trunk: 85}},
		{Frame: "frame_00002", Angles: Angles{RightElbow: 140, RightKnee: 170, Trunk: 90}},
	}

	s := Summarise(rows, 5)

	if s.Rows != 3 {
		t.Fatalf("expected 3 rows, got %d", s.Rows)
	}

	if s.RightElbow.Mean != 120 {
		t.Errorf("elbow mean = %v, expected 120", s.RightElbow.Mean)
	}

	if s.RightElbow.Min != 100 || s.RightElbow.Max != 140 {
		t.Errorf("elbow min/max = %v/%v, expected 100/140",
			s.RightElbow.Min, s.RightElbow.Max)
	}

	// 20 degrees per frame at 5 fps is 100 degrees per second
	if s.RightElbow.MeanAbsVelocity != 100 {
		t.Errorf("elbow velocity = %v, expected 100", s.RightElbow.MeanAbsVelocity)
	}

	// a constant series has zero velocity and spread
	if s.RightKnee.MeanAbsVelocity != 0 || s.RightKnee.StdDev != 0 {
		t.Errorf("constant knee series should have zero velocity and stddev, got %v, %v",
			s.RightKnee.MeanAbsVelocity, s.RightKnee.StdDev)
	}
}

func TestSummariseEmpty(t *testing.T) {

	s := Summarise(nil, 5)

	if s.Rows != 0 {
		t.Errorf("expected zero rows, got %d", s.Rows)
	}
}
