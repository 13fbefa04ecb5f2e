package chain

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"httpchain/internal/executor"
	"httpchain/internal/extract"
	"httpchain/internal/logging"
	"httpchain/internal/session"
	"httpchain/internal/template"
	"httpchain/internal/validate"
)

// requestExecutor defines the interface for performing one HTTP call.
// It allows replacing the real executor with a mock during tests.
type requestExecutor interface {
	Execute(ctx context.Context, client *http.Client, r executor.Request) (*executor.Response, error)
}

// defaultRequestExecutor provides the default implementation using the
// executor package.
type defaultRequestExecutor struct{}

func (e *defaultRequestExecutor) Execute(ctx context.Context, client *http.Client, r executor.Request) (*executor.Response, error) {
	return executor.Execute(ctx, client, r)
}

// Step is one named request in a chain. Name is the variable bucket the
// step's result bundle is stored under; extracted variables additionally
// merge flatly into the scope under their own names.
type Step struct {
	Name    string                `json:"name"`
	Method  string                `json:"method,omitempty"`
	URL     string                `json:"url"`
	Headers map[string]string     `json:"headers,omitempty"`
	Data    any                   `json:"data,omitempty"`
	Expect  *validate.Expectation `json:"expect,omitempty"`
	Extract map[string]string     `json:"extract,omitempty"`
}

// SingleRequest describes a standalone (non-chain) call.
type SingleRequest struct {
	Method  string                `json:"method,omitempty"`
	URL     string                `json:"url"`
	Headers map[string]string     `json:"headers,omitempty"`
	Data    any                   `json:"data,omitempty"`
	Expect  *validate.Expectation `json:"expect,omitempty"`
}

// SingleResult is the caller-facing outcome of a standalone call.
type SingleResult struct {
	OK             bool                `json:"ok"`
	Status         int                 `json:"status"`
	StatusText     string              `json:"statusText"`
	ContentType    string              `json:"contentType"`
	Body           any                 `json:"body"`
	Validation     validate.Result     `json:"validation"`
	BodyValidation validate.BodyResult `json:"bodyValidation"`
}

// Runner executes chains and standalone requests against one HTTP client,
// recording everything in the injected session store.
type Runner struct {
	store  *session.Store
	client *http.Client
	exec   requestExecutor
}

// RunnerOpts allows replacing the Runner's dependencies for testing.
type RunnerOpts struct {
	RequestExecutor requestExecutor
}

// NewRunner creates a runner with the default request executor.
func NewRunner(store *session.Store, client *http.Client) *Runner {
	return NewRunnerWithOpts(store, client, RunnerOpts{})
}

// NewRunnerWithOpts creates a runner with injected dependencies.
func NewRunnerWithOpts(store *session.Store, client *http.Client, opts RunnerOpts) *Runner {
	exec := opts.RequestExecutor
	if exec == nil {
		exec = &defaultRequestExecutor{}
	}
	return &Runner{
		store:  store,
		client: client,
		exec:   exec,
	}
}

// RunChain executes the steps strictly in order, threading extracted
// variables forward through the invocation-local scope. A transport error
// at step i aborts the invocation: steps 0..i-1 stay logged in the
// session, no chain entry is appended, and the error surfaces to the
// caller. After the last step one chain-type log entry is appended and
// the session is marked completed.
func (r *Runner) RunChain(ctx context.Context, sessionID string, steps []Step) ([]session.StepResult, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("chain must contain at least one step")
	}
	for i, step := range steps {
		if step.URL == "" {
			return nil, fmt.Errorf("chain step %d ('%s') is missing a url", i+1, step.Name)
		}
	}

	r.store.GetOrCreate(sessionID)
	scope := NewState()
	results := make([]session.StepResult, 0, len(steps))

	for i, step := range steps {
		stepName := step.Name
		if stepName == "" {
			stepName = fmt.Sprintf("step_%d", i+1)
		}
		logging.Logf(logging.Info, "Executing step: %s", stepName)

		if ctx.Err() != nil {
			r.store.SetStatus(sessionID, session.StatusFailed)
			return results, fmt.Errorf("chain cancelled during step '%s': %w", stepName, ctx.Err())
		}

		result, err := r.executeStep(ctx, sessionID, stepName, step, scope)
		if err != nil {
			r.store.SetStatus(sessionID, session.StatusFailed)
			return results, fmt.Errorf("error in step '%s': %w", stepName, err)
		}
		results = append(results, *result)
	}

	r.store.Append(sessionID, session.LogEntry{
		Type:  session.EntryChain,
		Steps: results,
	})
	r.store.SetStatus(sessionID, session.StatusCompleted)
	logging.Logf(logging.Info, "Chain execution completed (%d steps)", len(results))
	return results, nil
}

// executeStep performs one step: render templates, execute, validate,
// extract, merge the scope, and append the step's request log entry. The
// entry carries the rendered request side (post-template URL, headers and
// data) alongside the step result.
func (r *Runner) executeStep(ctx context.Context, sessionID, stepName string, step Step, scope *State) (*session.StepResult, error) {
	vars := scope.GetAll()
	renderedURL := template.Render(step.URL, vars)
	renderedHeaders := template.RenderHeaders(step.Headers, vars)

	// Only string-typed body payloads are templated; structured payloads
	// pass through untouched.
	data := step.Data
	if s, ok := data.(string); ok {
		data = template.Render(s, vars)
	}

	resp, err := r.exec.Execute(ctx, r.client, executor.Request{
		Method:  step.Method,
		URL:     renderedURL,
		Headers: renderedHeaders,
		Data:    data,
	})
	if err != nil {
		return nil, err
	}

	validation, bodyValidation := validate.Response(resp.Status, resp.ContentType, resp.Body, step.Expect)
	extracted := extract.Fields(resp.Body, step.Extract)

	// Extracted variables merge flatly first; the step's own result bundle
	// is assigned afterwards, so a name collision resolves to the bundle.
	scope.MergeMap(extracted)
	scope.Set(stepName, stepBundle(extracted, resp))

	result := session.StepResult{
		Name:           stepName,
		Method:         effectiveMethod(step.Method),
		URL:            renderedURL,
		Status:         resp.Status,
		StatusText:     resp.StatusText,
		ContentType:    resp.ContentType,
		Body:           resp.Body,
		Validation:     validation,
		BodyValidation: bodyValidation,
		Extracted:      extracted,
		Timestamp:      r.store.Now(),
	}

	r.store.Append(sessionID, session.LogEntry{
		Type:   session.EntryRequest,
		Origin: session.OriginChain,
		Request: &session.RequestInfo{
			Method:  effectiveMethod(step.Method),
			URL:     renderedURL,
			Headers: renderedHeaders,
			Data:    data,
		},
		Expectations: step.Expect,
		Step:         &result,
		Timestamp:    result.Timestamp,
	})
	return &result, nil
}

// effectiveMethod mirrors the executor's method defaulting for log and
// report display.
func effectiveMethod(m string) string {
	if m == "" {
		return http.MethodGet
	}
	return strings.ToUpper(m)
}

// stepBundle builds the scope value stored under a step's name: the
// extracted fields plus the response's body, status, statusText and
// contentType (the fixed keys win on collision).
func stepBundle(extracted map[string]any, resp *executor.Response) map[string]any {
	bundle := make(map[string]any, len(extracted)+4)
	for k, v := range extracted {
		bundle[k] = v
	}
	bundle["body"] = resp.Body
	bundle["status"] = resp.Status
	bundle["statusText"] = resp.StatusText
	bundle["contentType"] = resp.ContentType
	return bundle
}

// RunSingle executes one standalone call with the same validate/log
// behavior as a chain step, logged as a single-origin request entry.
// Transport errors propagate without touching the session log.
func (r *Runner) RunSingle(ctx context.Context, sessionID string, req SingleRequest) (*SingleResult, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("url is required for a single request")
	}

	r.store.GetOrCreate(sessionID)

	resp, err := r.exec.Execute(ctx, r.client, executor.Request{
		Method:  req.Method,
		URL:     req.URL,
		Headers: req.Headers,
		Data:    req.Data,
	})
	if err != nil {
		return nil, err
	}

	validation, bodyValidation := validate.Response(resp.Status, resp.ContentType, resp.Body, req.Expect)

	r.store.Append(sessionID, session.LogEntry{
		Type:   session.EntryRequest,
		Origin: session.OriginSingle,
		Request: &session.RequestInfo{
			Method:  effectiveMethod(req.Method),
			URL:     req.URL,
			Headers: req.Headers,
			Data:    req.Data,
		},
		Response:       resp,
		Expectations:   req.Expect,
		Validation:     &validation,
		BodyValidation: &bodyValidation,
	})

	return &SingleResult{
		OK:             validate.Passed(validation, bodyValidation),
		Status:         resp.Status,
		StatusText:     resp.StatusText,
		ContentType:    resp.ContentType,
		Body:           resp.Body,
		Validation:     validation,
		BodyValidation: bodyValidation,
	}, nil
}
