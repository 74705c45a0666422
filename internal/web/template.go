package web

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/veraxus/deskcycle-controller/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"keys": func(held []string) string {
		if len(held) == 0 {
			return "none"
		}
		return strings.Join(held, " + ")
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>DeskCycle Controller</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.fast { color: green; font-weight: bold; }
.slow { color: green; }
.stopped { color: #888; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>DeskCycle Controller</h1>

<h2>Motion</h2>
<table>
<tr><th>Pace</th><td class="{{if eq (printf "%s" .State.Pace) "FAST"}}fast{{else if eq (printf "%s" .State.Pace) "SLOW"}}slow{{else}}stopped{{end}}">{{.State.Pace}}</td></tr>
<tr><th>Direction</th><td class="{{if eq (printf "%s" .State.Direction) "UNKNOWN"}}unknown{{end}}">{{.State.Direction}}</td></tr>
<tr><th>Held Keys</th><td>{{keys .HeldKeys}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{if .Config.Broker}}{{.Config.Broker}}{{else}}disabled{{end}}</td></tr>
</table>

<h2>Counters</h2>
<table>
<tr><th>Edges A</th><td>{{.Counts.EdgesA}}</td></tr>
<tr><th>Edges B</th><td>{{.Counts.EdgesB}}</td></tr>
<tr><th>Intervals</th><td>{{.Counts.Intervals}}</td></tr>
<tr><th>Stops</th><td>{{.Counts.Stops}}</td></tr>
<tr><th>Direction Flips</th><td>{{.Counts.Flips}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Variant</th><td>{{.Config.Variant}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Stop Timeout</th><td>{{.Config.StopTimeoutMs}}ms</td></tr>
<tr><th>Fast Threshold</th><td>{{.Config.FastThresholdMs}}ms</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
