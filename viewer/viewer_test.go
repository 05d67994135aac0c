package viewer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cricketlab/crickmotion/pose"
)

func testRecord() pose.Record {
	return pose.Record{
		pose.LeftShoulder:  {X: 0.4, Y: 0.3, Z: 0.0, Vis: 0.9},
		pose.RightShoulder: {X: 0.6, Y: 0.3, Z: 0.0, Vis: 0.9},
		pose.LeftHip:       {X: 0.45, Y: 0.6, Z: 0.05, Vis: 0.9},
		pose.RightHip:      {X: 0.55, Y: 0.6, Z: 0.05, Vis: 0.9},
	}
}

func TestSkeletonTrace(t *testing.T) {

	tr := SkeletonTrace(testRecord(), "Actual", "blue")

	// present pairs: (11,12), (11,23), (12,24) = 3 segments of 3 entries
	if len(tr.Xs) != 9 {
		t.Fatalf("expected 9 x entries, got %d", len(tr.Xs))
	}

	// each segment ends with a nil break
	for i := 2; i < len(tr.Xs); i += 3 {
		if tr.Xs[i] != nil || tr.Ys[i] != nil || tr.Zs[i] != nil {
			t.Fatalf("expected nil break at entry %d", i)
		}
	}

	// vertical axis is inverted for display
	if *tr.Ys[0] != -0.3 {
		t.Errorf("expected inverted y -0.3, got %v", *tr.Ys[0])
	}
}

func TestSkeletonTraceAbsentPointsBreakSegments(t *testing.T) {

	rec := testRecord()
	delete(rec, pose.LeftHip)

	tr := SkeletonTrace(rec, "Actual", "blue")

	// dropping the left hip removes the (11,23) segment
	if len(tr.Xs) != 6 {
		t.Errorf("expected 6 x entries after dropping a point, got %d", len(tr.Xs))
	}
}

// two identical records must render as coincident traces
func TestComparePosesIdenticalRecords(t *testing.T) {

	rec := testRecord()
	fig := ComparePoses(rec, rec)

	if len(fig.Traces) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(fig.Traces))
	}

	actual, ideal := fig.Traces[0], fig.Traces[1]

	if actual.Color == ideal.Color {
		t.Error("comparison traces must be distinctly colored")
	}

	if len(actual.Xs) != len(ideal.Xs) {
		t.Fatalf("trace lengths differ: %d vs %d", len(actual.Xs), len(ideal.Xs))
	}

	for i := range actual.Xs {
		if (actual.Xs[i] == nil) != (ideal.Xs[i] == nil) {
			t.Fatalf("break mismatch at entry %d", i)
		}

		if actual.Xs[i] == nil {
			continue
		}

		if *actual.Xs[i] != *ideal.Xs[i] ||
			*actual.Ys[i] != *ideal.Ys[i] ||
			*actual.Zs[i] != *ideal.Zs[i] {
			t.Fatalf("traces diverge at entry %d", i)
		}
	}
}

func TestRenderHTML(t *testing.T) {

	var buf bytes.Buffer

	fig := PlotPose(testRecord(), "first pose")

	if err := RenderHTML(fig, &buf); err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}

	html := buf.String()

	for _, want := range []string{"scatter3d", "first pose", "plotly"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}
