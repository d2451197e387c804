package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/reaction-game/internal/status"
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
	"ms": func(d time.Duration) string {
		if d == 0 {
			return "-"
		}
		return fmt.Sprintf("%dms", d.Milliseconds())
	},
	"lit": func(target, i int, started bool) bool {
		if !started {
			return i == 0
		}
		return i == target
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>Reaction Game</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.lamps span { display: inline-block; width: 2em; height: 2em; margin-right: 1em; border-radius: 50%; background: #ddd; }
.lamps span.lit { background: gold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Reaction Game</h1>

<p class="lamps">{{range $i, $l := .Config.Lamps}}<span id="lamp-{{$i}}" class="{{if lit $.Target $i $.Started}}lit{{end}}" title="line {{$l}}"></span>{{end}}</p>

<h2>Game</h2>
<table>
<tr><th>Phase</th><td id="phase">{{.Phase}}</td></tr>
<tr><th>Target</th><td>{{.Target}}</td></tr>
<tr><th>Started</th><td>{{if .Started}}yes{{else}}waiting for start press{{end}}</td></tr>
</table>

<h2>Score</h2>
<table>
<tr><th>Rounds</th><td>{{.Score.Counts.Rounds}}</td></tr>
<tr><th>Correct</th><td id="correct">{{.Score.Counts.Correct}}</td></tr>
<tr><th>Incorrect</th><td id="incorrect">{{.Score.Counts.Incorrect}}</td></tr>
<tr><th>Streak</th><td>{{.Score.Streak}} (best {{.Score.BestStreak}})</td></tr>
<tr><th>Reaction</th><td>{{ms .Score.LastReaction}} (best {{ms .Score.BestReaction}})</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .Config.Broker}}{{if .MQTTConnected}}connected{{else}}disconnected{{end}}{{else}}disabled{{end}}</td></tr>
{{if .Config.Broker}}<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>{{end}}
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}} {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Backend</th><td>{{.Config.Backend}}</td></tr>
<tr><th>Lamps</th><td>{{.Config.Lamps}}</td></tr>
<tr><th>Buttons</th><td>{{.Config.Buttons}}</td></tr>
<tr><th>Tone</th><td>{{.Config.ToneLine}}</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
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
