package session

import (
	"time"

	"httpchain/internal/executor"
	"httpchain/internal/validate"
)

// Status describes the lifecycle state of a session.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// EntryType tags a log entry variant. Standalone calls and chain steps
// both log as request entries; a chain invocation additionally logs one
// trailing chain entry carrying its aggregate step results.
type EntryType string

const (
	EntryRequest EntryType = "request"
	EntryChain   EntryType = "chain"
)

// Origin records which call path produced a request entry.
type Origin string

const (
	OriginSingle Origin = "single"
	OriginChain  Origin = "chain"
)

// RequestInfo captures the request side of a call for the log. For chain
// steps the URL, headers and data are recorded post-template rendering.
type RequestInfo struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Data    any               `json:"data,omitempty"`
}

// StepResult is the outcome of one chain step. Name doubles as the
// variable bucket the step's result is stored under in the chain scope.
type StepResult struct {
	Name           string              `json:"name"`
	Method         string              `json:"method"`
	URL            string              `json:"url"`
	Status         int                 `json:"status"`
	StatusText     string              `json:"statusText"`
	ContentType    string              `json:"contentType"`
	Body           any                 `json:"body"`
	Validation     validate.Result     `json:"validation"`
	BodyValidation validate.BodyResult `json:"bodyValidation"`
	Extracted      map[string]any      `json:"extracted,omitempty"`
	Timestamp      time.Time           `json:"timestamp"`
}

// LogEntry is one record in a session's append-only log.
//
// A standalone call produces a request entry carrying Request, Response
// and the validation outcome. A chain step produces a request entry
// carrying its rendered Request and its Step result. A completed chain
// appends one chain entry carrying all Steps.
type LogEntry struct {
	Type           EntryType             `json:"type"`
	Origin         Origin                `json:"origin,omitempty"`
	Request        *RequestInfo          `json:"request,omitempty"`
	Response       *executor.Response    `json:"response,omitempty"`
	Expectations   *validate.Expectation `json:"expectations,omitempty"`
	Validation     *validate.Result      `json:"validation,omitempty"`
	BodyValidation *validate.BodyResult  `json:"bodyValidation,omitempty"`
	Step           *StepResult           `json:"step,omitempty"`
	Steps          []StepResult          `json:"steps,omitempty"`
	Timestamp      time.Time             `json:"timestamp"`
}

// Session is the durable, append-only record of all requests made under
// one identifier. It lives for the lifetime of the owning Store.
type Session struct {
	ID              string     `json:"sessionId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	ExecutionTimeMs int64      `json:"executionTimeMs,omitempty"`
	Status          Status     `json:"status"`
	Logs            []LogEntry `json:"logs"`
}
