package web

import "html/template"

// pageTemplate is the upload and run dashboard page.  The busy indicator is
// shown client side while the synchronous analysis request is in flight.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cricket Motion Analyzer</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; }
.spinner { display: none; margin-left: 1em; }
form.busy .spinner { display: inline; }
.session { border-bottom: 1px solid #ddd; padding: 0.5em 0; }
.session img { vertical-align: middle; margin-right: 1em; }
.error { color: #b00; }
</style>
</head>
<body>
<h1>Cricket Motion Analyzer</h1>
<form method="post" action="/analyze" enctype="multipart/form-data"
      onsubmit="this.classList.add('busy')">
  <p><input type="file" name="video" accept=".mp4,.mov,.mkv" required></p>
  <p>
    Sampling FPS:
    <input type="range" name="fps" min="{{.MinFPS}}" max="{{.MaxFPS}}"
           value="{{.DefaultFPS}}" oninput="fpsval.value=this.value">
    <output id="fpsval">{{.DefaultFPS}}</output>
  </p>
  <p>
    <button type="submit">Analyze</button>
    <span class="spinner">Processing... this may take a moment.</span>
  </p>
</form>
<h2>Past analyses</h2>
<div id="sessions">
{{range .Sessions}}
  <div class="session">
    {{if .ThumbPath}}<img src="/artifacts/{{.ThumbPath}}" width="120">{{end}}
    <strong>{{.VideoName}}</strong>
    {{.FPS}} fps, {{.FrameCount}} frames, {{.RowCount}} rows
    <a href="/sessions/{{.ID}}">view</a>
    <small>{{.CreatedAt.Format "Jan 2, 2006 15:04"}}</small>
  </div>
{{else}}
  <p>No analyses yet.</p>
{{end}}
</div>
</body>
</html>
`))

// resultTemplate shows the artifacts of a completed analysis: inline video
// preview, download links, summary metrics and the 3D first frame figure.
var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Session.VideoName}} - analysis</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: right; }
th:first-child, td:first-child { text-align: left; }
iframe { width: 100%; height: 480px; border: 1px solid #ccc; }
</style>
</head>
<body>
<h1>{{.Session.VideoName}}</h1>
<p>{{.Session.FrameCount}} frames sampled at {{.Session.FPS}} fps,
{{.Session.RecordCount}} poses detected, {{.Session.RowCount}} feature rows.</p>

<h2>Annotated video</h2>
<video controls width="640" src="/artifacts/{{.OverlayName}}"></video>
<p>
  <a href="/artifacts/{{.OverlayName}}" download>Download MP4</a> |
  <a href="/artifacts/{{.FeaturesName}}" download>Download CSV</a>
</p>

<h2>Summary</h2>
<table>
<tr><th>Angle</th><th>Mean</th><th>Min</th><th>Max</th><th>Std</th><th>Deg/s</th></tr>
{{range .Stats}}
<tr>
  <td>{{.Name}}</td>
  <td>{{printf "%.1f" .Mean}}</td>
  <td>{{printf "%.1f" .Min}}</td>
  <td>{{printf "%.1f" .Max}}</td>
  <td>{{printf "%.1f" .StdDev}}</td>
  <td>{{printf "%.1f" .MeanAbsVelocity}}</td>
</tr>
{{end}}
</table>

<h2>3D pose (first frame)</h2>
<iframe src="/artifacts/{{.PoseName}}"></iframe>

<p><a href="/">Back</a></p>
</body>
</html>
`))

// errorTemplate renders a request failure back to the upload page
var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Analysis failed</title></head>
<body>
<p class="error">{{.Message}}</p>
<p><a href="/">Back</a></p>
</body>
</html>
`))
