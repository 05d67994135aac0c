package feature

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cricketlab/crickmotion/logging"
	"github.com/cricketlab/crickmotion/pose"
)

// Header lists the feature table columns in output order.
var Header = []string{"frame", "r_elbow_deg", "r_knee_deg", "trunk_deg"}

// Row is one feature table entry holding the frame identifier and the three
// derived joint angles in degrees.
type Row struct {
	Frame  string
	Angles Angles
}

// ExtractFeatures computes a feature Row for each landmark record and
// writes the table as CSV to csvOut.  Records missing a required landmark
// index are skipped with a debug log.  The CSV file is always written, even
// when no row survives.
func ExtractFeatures(recordPaths []string, csvOut string,
	log *logging.Logger) ([]Row, error) {

	var rows []Row

	for _, jpath := range recordPaths {

		rec, err := pose.LoadRecord(jpath)

		if err != nil {
			log.Warn("[feature] unreadable record %s: %v", jpath, err)
			continue
		}

		angles, ok := FromRecord(rec)

		if !ok {
			log.Debug("[feature] missing keypoints in %s", filepath.Base(jpath))
			continue
		}

		rows = append(rows, Row{
			Frame:  pose.Stem(jpath),
			Angles: angles,
		})
	}

	if err := WriteTable(rows, csvOut); err != nil {
		return nil, err
	}

	log.Info("[feature] saved %d rows to %s", len(rows), filepath.Base(csvOut))

	return rows, nil
}

// WriteTable writes the feature rows as a CSV file with a header row.
func WriteTable(rows []Row, csvOut string) error {

	if err := os.MkdirAll(filepath.Dir(csvOut), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	f, err := os.Create(csvOut)

	if err != nil {
		return fmt.Errorf("error creating feature table: %w", err)
	}

	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(Header); err != nil {
		return fmt.Errorf("error writing feature table header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Frame,
			formatAngle(row.Angles.RightElbow),
			formatAngle(row.Angles.RightKnee),
			formatAngle(row.Angles.Trunk),
		}

		if err := w.Write(record); err != nil {
			return fmt.Errorf("error writing feature table row: %w", err)
		}
	}

	w.Flush()

	return w.Error()
}

func formatAngle(deg float64) string {
	return strconv.FormatFloat(deg, 'f', 2, 64)
}
