package web

import (
	"html/template"
	"net/http"
	"strings"

	"agendacal/internal/agenda"
	appLog "agendacal/internal/log"
)

var pageTmpl = template.Must(template.New("agenda").Funcs(template.FuncMap{
	"continues": continuesClass,
}).Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 1.5rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ddd; padding: .4rem .6rem; text-align: left; vertical-align: top; }
.continues-prior::before { content: "« "; }
.continues-after::after { content: " »"; }
.badge { border-radius: .25rem; padding: .1rem .4rem; color: #fff; font-size: .8rem; }
.badge-success { background: #28a745; } .badge-warning { background: #ffc107; color: #222; }
.badge-secondary { background: #6c757d; } .badge-info { background: #17a2b8; } .badge-dark { background: #343a40; }
</style>
</head>
<body>
<div class="agenda-view" data-ready="true">
<nav><a href="?date={{.Prev}}&days={{.Length}}">‹</a> <strong>{{.Title}}</strong> <a href="?date={{.Next}}&days={{.Length}}">›</a></nav>
{{if .Empty}}<p class="agenda-empty">{{.NoEvents}}</p>{{else}}
<table class="agenda-table">
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Days}}{{$span := .RowSpan}}{{range .Rows}}<tr class="{{.ClassName}}"{{if .Selected}} aria-selected="true"{{end}} title="{{.Tooltip}}">
{{with .DateLabel}}<td rowspan="{{$span}}">{{.}}</td>{{end}}
<td><span class="{{continues .Label}}">{{.TimeLabel}}</span></td>
<td>{{.Title}}</td>
<td>{{.Customer}}</td>
<td>{{.Phone}}</td>
<td>{{.Location}}</td>
<td><span class="badge {{.StatusClass}}">{{.Status}}</span></td>
</tr>
{{end}}{{end}}</tbody>
</table>{{end}}
</div>
</body>
</html>
`))

type pageData struct {
	agenda.Agenda
	Prev string
	Next string
}

// continuesClass returns the CSS classes marking a row that continues from
// the previous day or into the next one.
func continuesClass(l agenda.Label) string {
	var parts []string
	if l.ContinuesBefore {
		parts = append(parts, "continues-prior")
	}
	if l.ContinuesAfter {
		parts = append(parts, "continues-after")
	}
	return strings.Join(parts, " ")
}

func (s *Server) handleAgendaHTML(w http.ResponseWriter, r *http.Request) {
	a, status, err := s.buildAgenda(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	data := pageData{
		Agenda: a,
		Prev:   agenda.Navigate(a.Window.Start, agenda.Previous, a.Length).Format("2006-01-02"),
		Next:   agenda.Navigate(a.Window.Start, agenda.Next, a.Length).Format("2006-01-02"),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		appLog.Error("failed to render agenda page", err)
	}
}
