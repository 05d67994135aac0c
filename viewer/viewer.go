// Package viewer builds interactive 3D skeleton figures from landmark
// records for visual sanity checking, either a single pose or an actual vs
// ideal comparison overlay.
package viewer

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/cricketlab/crickmotion/pose"
)

// connections defines the landmark pairs drawn as 3D line segments,
// including the head detail omitted from the video overlay
var connections = [][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 7},
	{0, 4}, {4, 5}, {5, 6}, {6, 8},
	{9, 10},
	{11, 13}, {13, 15},
	{12, 14}, {14, 16},
	{11, 12}, {11, 23}, {12, 24},
	{23, 25}, {25, 27},
	{24, 26}, {26, 28},
}

// Trace is one skeleton drawn as a sequence of 3D line segments.  Segment
// breaks are encoded as nil coordinates, absent landmarks therefore produce
// implicit breaks in the figure.
type Trace struct {
	Name  string     `json:"name"`
	Color string     `json:"color"`
	Xs    []*float64 `json:"x"`
	Ys    []*float64 `json:"y"`
	Zs    []*float64 `json:"z"`
}

// Figure is a renderable 3D scene of one or more skeleton traces.
type Figure struct {
	Title  string
	Traces []Trace
}

// SkeletonTrace converts a landmark record into a line segment trace.  The
// vertical axis is inverted so the figure displays upright.
func SkeletonTrace(rec pose.Record, name, color string) Trace {

	tr := Trace{Name: name, Color: color}

	for _, conn := range connections {
		a, okA := rec.Point(conn[0])
		b, okB := rec.Point(conn[1])

		if !okA || !okB {
			continue
		}

		tr.Xs = append(tr.Xs, f(a.X), f(b.X), nil)
		tr.Ys = append(tr.Ys, f(-a.Y), f(-b.Y), nil)
		tr.Zs = append(tr.Zs, f(a.Z), f(b.Z), nil)
	}

	return tr
}

func f(v float64) *float64 {
	return &v
}

// PlotPose builds a figure of a single pose record.
func PlotPose(rec pose.Record, title string) Figure {
	return Figure{
		Title:  title,
		Traces: []Trace{SkeletonTrace(rec, "Actual", "blue")},
	}
}

// ComparePoses overlays two records in one scene as two distinctly colored
// traces, eg. an actual delivery against an ideal reference pose.
func ComparePoses(actual, ideal pose.Record) Figure {
	return Figure{
		Title: "Actual vs Ideal Pose",
		Traces: []Trace{
			SkeletonTrace(actual, "Actual", "blue"),
			SkeletonTrace(ideal, "Ideal", "green"),
		},
	}
}

// RenderHTML writes the figure as a self contained interactive HTML page.
func RenderHTML(fig Figure, w io.Writer) error {

	traces, err := json.Marshal(fig.Traces)

	if err != nil {
		return fmt.Errorf("error encoding figure traces: %w", err)
	}

	data := struct {
		Title  string
		Traces template.JS
	}{
		Title:  fig.Title,
		Traces: template.JS(traces),
	}

	return pageTemplate.Execute(w, data)
}

// WriteHTML renders the figure to the given file path.
func WriteHTML(fig Figure, outPath string) error {

	out, err := os.Create(outPath)

	if err != nil {
		return fmt.Errorf("error creating figure file: %w", err)
	}

	defer out.Close()

	return RenderHTML(fig, out)
}

// PlotRecordFile loads a landmark record and writes its figure to outPath.
func PlotRecordFile(recordPath, title, outPath string) error {

	rec, err := pose.LoadRecord(recordPath)

	if err != nil {
		return err
	}

	return WriteHTML(PlotPose(rec, title), outPath)
}

var pageTemplate = template.Must(template.New("pose3d").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
</head>
<body>
<div id="pose" style="width:100%;height:90vh;"></div>
<script>
var traces = {{.Traces}};
var data = traces.map(function(t) {
	return {
		type: "scatter3d",
		mode: "lines",
		name: t.name,
		x: t.x, y: t.y, z: t.z,
		line: {width: 4, color: t.color}
	};
});
Plotly.newPlot("pose", data, {
	title: {{.Title}},
	scene: {xaxis: {title: "X"}, yaxis: {title: "Y"}, zaxis: {title: "Z"}},
	margin: {l: 0, r: 0, b: 0, t: 30}
});
</script>
</body>
</html>
`))
