package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"httpchain/internal/session"
	"httpchain/internal/validate"
)

// reportView is the data handed to the HTML template. Gathering is kept
// separate from rendering so the structure can be tested on its own.
type reportView struct {
	SessionID   string
	Status      string
	StartTime   string
	EndTime     string
	GeneratedAt string
	Summary     Summary
	Timing      *TimingAnalysis
	Entries     []entryView
}

// entryView is one loggable request as displayed in the report. Chain
// container entries are not rendered themselves; their steps appear as
// independent entries.
type entryView struct {
	Index           int
	Origin          string
	Name            string
	Method          string
	URL             string
	Status          int
	StatusText      string
	ContentType     string
	Passed          bool
	Timestamp       string
	RequestHeaders  map[string]string
	RequestData     string
	ResponseHeaders map[string]string
	ResponseBody    string
	Checks          []checkView
}

// checkView is one expected-vs-actual comparison row.
type checkView struct {
	Dimension string
	Expected  string
	Actual    string
	Passed    bool
	Reason    string
}

// Render produces the self-contained HTML report document for a session.
// Every interpolated field goes through html/template's contextual
// escaping.
func Render(s *session.Session) (string, error) {
	view := buildView(s)
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.String(), nil
}

func buildView(s *session.Session) reportView {
	view := reportView{
		SessionID:   s.ID,
		Status:      string(s.Status),
		StartTime:   formatTime(s.StartTime),
		GeneratedAt: formatTime(time.Now()),
		Summary:     Summarize(s),
		Timing:      Timing(s),
	}
	if s.EndTime != nil {
		view.EndTime = formatTime(*s.EndTime)
	}

	for _, entry := range s.Logs {
		if entry.Type != session.EntryRequest {
			continue
		}
		if entry.Step != nil {
			view.Entries = append(view.Entries, stepEntryView(entry))
		} else if entry.Request != nil && entry.Response != nil {
			view.Entries = append(view.Entries, singleEntryView(entry))
		}
	}
	for i := range view.Entries {
		view.Entries[i].Index = i + 1
	}
	return view
}

func stepEntryView(entry session.LogEntry) entryView {
	step := entry.Step
	view := entryView{
		Origin:       string(session.OriginChain),
		Name:         step.Name,
		Method:       step.Method,
		URL:          step.URL,
		Status:       step.Status,
		StatusText:   step.StatusText,
		ContentType:  step.ContentType,
		Passed:       validate.Passed(step.Validation, step.BodyValidation),
		Timestamp:    formatTime(step.Timestamp),
		ResponseBody: dump(step.Body),
		Checks:       buildChecks(entry.Expectations, step.Status, step.ContentType, step.Body, step.Validation, step.BodyValidation),
	}
	if entry.Request != nil {
		view.RequestHeaders = entry.Request.Headers
		view.RequestData = dump(entry.Request.Data)
	}
	return view
}

func singleEntryView(entry session.LogEntry) entryView {
	req, resp := entry.Request, entry.Response
	var validation validate.Result
	var bodyValidation validate.BodyResult
	if entry.Validation != nil {
		validation = *entry.Validation
	}
	if entry.BodyValidation != nil {
		bodyValidation = *entry.BodyValidation
	}
	return entryView{
		Origin:          string(session.OriginSingle),
		Method:          req.Method,
		URL:             req.URL,
		Status:          resp.Status,
		StatusText:      resp.StatusText,
		ContentType:     resp.ContentType,
		Passed:          validate.Passed(validation, bodyValidation),
		Timestamp:       formatTime(entry.Timestamp),
		RequestHeaders:  req.Headers,
		RequestData:     dump(req.Data),
		ResponseHeaders: resp.Headers,
		ResponseBody:    dump(resp.Body),
		Checks:          buildChecks(entry.Expectations, resp.Status, resp.ContentType, resp.Body, validation, bodyValidation),
	}
}

func buildChecks(exp *validate.Expectation, status int, contentType string, body any, v validate.Result, b validate.BodyResult) []checkView {
	checks := []checkView{
		{Dimension: "Status", Expected: "any", Actual: fmt.Sprintf("%d", status), Passed: v.Status},
		{Dimension: "Content-Type", Expected: "any", Actual: contentType, Passed: v.ContentType},
		{Dimension: "Body", Expected: "none", Actual: dump(body), Passed: b.Matched, Reason: b.Reason},
	}
	if exp != nil {
		if exp.Status != nil {
			checks[0].Expected = fmt.Sprintf("%d", *exp.Status)
		}
		if exp.ContentType != "" {
			checks[1].Expected = fmt.Sprintf("contains %q", exp.ContentType)
		}
		if exp.BodyRegex != "" {
			checks[2].Expected = fmt.Sprintf("regex %s", exp.BodyRegex)
		} else if exp.Body != nil {
			checks[2].Expected = dump(exp.Body)
		}
	}
	return checks
}

// dump renders a value for display: strings verbatim, everything else as
// indented JSON.
func dump(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		b, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05.000 MST")
}

var reportTmpl = template.Must(template.New("report").Parse(reportHTML))
