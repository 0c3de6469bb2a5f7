package report

import (
	"html/template"
	"io"

	"github.com/teamtotals/teamtotals/pkg/standings"
)

var page = template.Must(template.New("standings").Funcs(template.FuncMap{
	"place":  func(i int) int { return i + 1 },
	"points": func(c standings.ClubTotal) string { return FormatFloat(c.Total()) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<meta charset="utf-8">
<meta name="description" content="Team Points Results For {{.Title}}">
<meta http-equiv="Cache-Control" content="no-cache, no-store, must-revalidate">
<meta http-equiv="Pragma" content="no-cache">
<meta http-equiv="Expires" content="0">
<meta http-equiv="refresh" content="{{.Refresh}}">
<style>
  table, th, td {
    border: 1px solid black;
    border-collapse: collapse;
  }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table style="width:50%">
  <tr>
    <th>#</th>
    <th>Club</th>
    <th>Points</th>
  </tr>
{{- range $i, $c := .Clubs}}
  <tr>
    <td>{{place $i}}</td>
    <td>{{$c.Club}}</td>
    <td>{{points $c}}</td>
  </tr>
{{- end}}
</table>
</body>
</html>
`))

// RefreshSeconds is how often a browser showing the page reloads it.
const RefreshSeconds = 30

// WriteHTML writes a standings page that reloads itself, suitable for a
// screen at the rink while results come in.
func WriteHTML(w io.Writer, title string, clubs []standings.ClubTotal) error {
	return page.Execute(w, struct {
		Title   string
		Refresh int
		Clubs   []standings.ClubTotal
	}{title, RefreshSeconds, clubs})
}
