package report

// reportHTML is the self-contained report document. All dynamic fields
// are escaped by html/template.
const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Session Report {{.SessionID}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #1c1e21; background: #f6f7f9; }
  h1 { font-size: 1.4rem; }
  h2 { font-size: 1.1rem; margin-top: 2rem; }
  .meta { color: #555; font-size: 0.9rem; }
  table { border-collapse: collapse; background: #fff; margin-top: 0.5rem; }
  th, td { border: 1px solid #d5d8dc; padding: 0.35rem 0.7rem; text-align: left; font-size: 0.9rem; vertical-align: top; }
  th { background: #eef1f4; }
  .badge { display: inline-block; padding: 0.1rem 0.5rem; border-radius: 3px; font-size: 0.8rem; font-weight: 600; color: #fff; }
  .pass { background: #2e7d32; }
  .fail { background: #c62828; }
  details { background: #fff; border: 1px solid #d5d8dc; border-radius: 4px; margin-top: 0.6rem; padding: 0.4rem 0.8rem; }
  summary { cursor: pointer; font-size: 0.95rem; }
  pre { background: #f0f2f5; padding: 0.5rem; border-radius: 3px; overflow-x: auto; font-size: 0.85rem; white-space: pre-wrap; word-break: break-word; }
  code { font-family: "SF Mono", Consolas, monospace; }
</style>
</head>
<body>
<h1>Session Report</h1>
<p class="meta">
  Session: <code>{{.SessionID}}</code> &middot; Status: {{.Status}}<br>
  Started: {{.StartTime}}{{if .EndTime}} &middot; Ended: {{.EndTime}}{{end}}<br>
  Generated: {{.GeneratedAt}}
</p>

<h2>Summary</h2>
<table>
  <tr><th>Total requests</th><td>{{.Summary.TotalRequests}}</td></tr>
  <tr><th>Successful</th><td>{{.Summary.SuccessfulRequests}}</td></tr>
  <tr><th>Failed</th><td>{{.Summary.FailedRequests}}</td></tr>
  <tr><th>Success rate</th><td>{{printf "%.2f" .Summary.SuccessRate}}</td></tr>
  <tr><th>Validations passed</th><td>{{.Summary.ValidationsPassed}}</td></tr>
  <tr><th>Validations failed</th><td>{{.Summary.ValidationsFailed}}</td></tr>
  <tr><th>Validation rate</th><td>{{printf "%.2f" .Summary.ValidationRate}}</td></tr>
  <tr><th>Chain requests</th><td>{{.Summary.ChainRequests}}</td></tr>
  <tr><th>Single requests</th><td>{{.Summary.SingleRequests}}</td></tr>
</table>

{{if .Timing}}
<h2>Timing</h2>
<table>
  <tr><th>Request</th><th>Offset (ms)</th><th>Interval (ms)</th></tr>
  {{range .Timing.Requests}}
  <tr><td>{{.Label}}</td><td>{{.OffsetMs}}</td><td>{{.IntervalMs}}</td></tr>
  {{end}}
  <tr><th>Average interval (ms)</th><td colspan="2">{{.Timing.AverageIntervalMs}}</td></tr>
  <tr><th>Session duration (ms)</th><td colspan="2">{{.Timing.SessionDurationMs}}</td></tr>
</table>
{{end}}

<h2>Requests</h2>
{{range .Entries}}
<details>
  <summary>
    #{{.Index}} [{{.Origin}}{{if .Name}}:{{.Name}}{{end}}]
    <code>{{.Method}} {{.URL}}</code>
    &rarr; {{.Status}} {{.StatusText}}
    {{if .Passed}}<span class="badge pass">PASS</span>{{else}}<span class="badge fail">FAIL</span>{{end}}
  </summary>
  <p class="meta">At {{.Timestamp}}{{if .ContentType}} &middot; {{.ContentType}}{{end}}</p>
  {{if .RequestHeaders}}
  <h3>Request headers</h3>
  <table>
    {{range $k, $v := .RequestHeaders}}<tr><th>{{$k}}</th><td><code>{{$v}}</code></td></tr>{{end}}
  </table>
  {{end}}
  {{if .RequestData}}
  <h3>Request body</h3>
  <pre>{{.RequestData}}</pre>
  {{end}}
  {{if .ResponseHeaders}}
  <h3>Response headers</h3>
  <table>
    {{range $k, $v := .ResponseHeaders}}<tr><th>{{$k}}</th><td><code>{{$v}}</code></td></tr>{{end}}
  </table>
  {{end}}
  {{if .ResponseBody}}
  <h3>Response body</h3>
  <pre>{{.ResponseBody}}</pre>
  {{end}}
  <h3>Validation</h3>
  <table>
    <tr><th>Dimension</th><th>Expected</th><th>Actual</th><th>Result</th></tr>
    {{range .Checks}}
    <tr>
      <td>{{.Dimension}}</td>
      <td><pre>{{.Expected}}</pre></td>
      <td><pre>{{.Actual}}</pre></td>
      <td>{{if .Passed}}<span class="badge pass">PASS</span>{{else}}<span class="badge fail">FAIL</span>{{end}}{{if .Reason}}<br><span class="meta">{{.Reason}}</span>{{end}}</td>
    </tr>
    {{end}}
  </table>
</details>
{{end}}
</body>
</html>
`
