// Package pose runs an external pose estimation model over frame images and
// persists per frame landmark records.
//
// The landmark schema is the fixed 33 point body map used by BlazePose style
// models.  Coordinates are normalized to [0,1] relative to the frame and
// each point carries a visibility confidence score.
package pose

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

/* landmark schema
0: Nose
1-6: Eyes (inner, center, outer per side)
7: Left Ear        8: Right Ear
9: Mouth Left      10: Mouth Right
11: Left Shoulder  12: Right Shoulder
13: Left Elbow     14: Right Elbow
15: Left Wrist     16: Right Wrist
17-22: Hands (pinky, index, thumb per side)
23: Left Hip       24: Right Hip
25: Left Knee      26: Right Knee
27: Left Ankle     28: Right Ankle
29-32: Feet (heel, foot index per side)
*/

// NumLandmarks is the number of keypoints in the body landmark schema
const NumLandmarks = 33

// Landmark indices used by the feature calculator and overlay renderer
const (
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
)

// Landmark is a single body keypoint's normalized 3D position plus a
// visibility confidence score.
type Landmark struct {
	X   float64
	Y   float64
	Z   float64
	Vis float64
}

// Record maps landmark indices 0-32 to their positions for one frame.  A
// Record is immutable once created, downstream stages only read it.
type Record map[int]Landmark

// Point returns the landmark at the given index and whether it is present
// in the record.
func (r Record) Point(idx int) (Landmark, bool) {
	lm, ok := r[idx]
	return lm, ok
}

// Visible reports whether the landmark at idx is present and meets the
// given visibility threshold.
func (r Record) Visible(idx int, threshold float64) bool {
	lm, ok := r[idx]
	return ok && lm.Vis >= threshold
}

// landmarkJSON is the wire format of a single landmark inside a record file
type landmarkJSON struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
	Vis float64 `json:"vis"`
}

// MarshalJSON encodes the record as a flat object keyed by the stringified
// landmark index.
func (r Record) MarshalJSON() ([]byte, error) {

	out := make(map[string]landmarkJSON, len(r))

	for idx, lm := range r {
		out[strconv.Itoa(idx)] = landmarkJSON{X: lm.X, Y: lm.Y, Z: lm.Z, Vis: lm.Vis}
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes the stringified index keyed wire format.
func (r *Record) UnmarshalJSON(data []byte) error {

	var raw map[string]landmarkJSON

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rec := make(Record, len(raw))

	for key, lm := range raw {
		idx, err := strconv.Atoi(key)

		if err != nil {
			return fmt.Errorf("invalid landmark index %q: %w", key, err)
		}

		rec[idx] = Landmark{X: lm.X, Y: lm.Y, Z: lm.Z, Vis: lm.Vis}
	}

	*r = rec
	return nil
}

// Save writes the record as JSON to the given file path.
func (r Record) Save(path string) error {

	data, err := json.Marshal(r)

	if err != nil {
		return fmt.Errorf("error encoding landmark record: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing landmark record: %w", err)
	}

	return nil
}

// LoadRecord reads a landmark record previously written with Save.
func LoadRecord(path string) (Record, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("error reading landmark record: %w", err)
	}

	var rec Record

	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("error decoding landmark record %s: %w", path, err)
	}

	return rec, nil
}
