package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"httpchain/internal/chain"
	"httpchain/internal/config"
	"httpchain/internal/httpclient"
	"httpchain/internal/logging"
	"httpchain/internal/report"
	"httpchain/internal/session"
	"httpchain/internal/validate"
)

// ErrInvalidInput marks caller mistakes such as a missing url. Input
// errors fail fast before any session mutation.
var ErrInvalidInput = errors.New("invalid input")

// ExecuteRequestInput is the execute_request tool's input: either a
// single request descriptor (url required) or a chain of step
// descriptors. An omitted sessionId is auto-generated and echoed back.
type ExecuteRequestInput struct {
	SessionID string                `json:"sessionId,omitempty"`
	Method    string                `json:"method,omitempty"`
	URL       string                `json:"url,omitempty"`
	Headers   map[string]string     `json:"headers,omitempty"`
	Data      any                   `json:"data,omitempty"`
	Expect    *validate.Expectation `json:"expect,omitempty"`
	Chain     []chain.Step          `json:"chain,omitempty"`
}

// ExecuteRequestOutput carries the result of either mode. Single mode
// fills OK through BodyValidation; chain mode fills Results.
type ExecuteRequestOutput struct {
	SessionID      string               `json:"sessionId"`
	OK             *bool                `json:"ok,omitempty"`
	Status         int                  `json:"status,omitempty"`
	StatusText     string               `json:"statusText,omitempty"`
	ContentType    string               `json:"contentType,omitempty"`
	Body           any                  `json:"body,omitempty"`
	Validation     *validate.Result     `json:"validation,omitempty"`
	BodyValidation *validate.BodyResult `json:"bodyValidation,omitempty"`
	Results        []session.StepResult `json:"results,omitempty"`
}

// GetSessionInput identifies the session to query.
type GetSessionInput struct {
	SessionID string `json:"sessionId"`
}

// GetSessionOutput returns the full session record, or Found=false with a
// not-found message. A missing session is a result, not an error.
type GetSessionOutput struct {
	Found   bool             `json:"found"`
	Message string           `json:"message,omitempty"`
	Session *session.Session `json:"session,omitempty"`
}

// GetSessionReportInput identifies the session to report on.
type GetSessionReportInput struct {
	SessionID string `json:"sessionId"`
}

// GetSessionReportOutput returns the location of the persisted report, or
// a not-found message when the session does not exist (nothing is
// written in that case).
type GetSessionReportOutput struct {
	SessionID  string `json:"sessionId"`
	ReportPath string `json:"reportPath,omitempty"`
	Message    string `json:"message,omitempty"`
}

// App owns the session store and wires the three tool operations over it.
type App struct {
	store   *session.Store
	runner  *chain.Runner
	reports *report.Generator
}

// AppOpts allows injecting pre-built dependencies for testing.
type AppOpts struct {
	Store   *session.Store
	Runner  *chain.Runner
	Reports *report.Generator
}

// NewApp builds the application from configuration: one HTTP client, one
// session store, one chain runner and one report generator, all sharing
// the store.
func NewApp(cfg *config.Config) *App {
	store := session.NewStore()
	client := httpclient.NewClient(httpclient.Options{
		Timeout:       time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		TLSSkipVerify: cfg.HTTP.TlsSkipVerify,
	})
	return NewAppWithOpts(AppOpts{
		Store:   store,
		Runner:  chain.NewRunner(store, client),
		Reports: report.NewGenerator(store, cfg.Reports.OutputDir),
	})
}

// NewAppWithOpts builds the application from injected dependencies.
func NewAppWithOpts(opts AppOpts) *App {
	return &App{
		store:   opts.Store,
		runner:  opts.Runner,
		reports: opts.Reports,
	}
}

// ExecuteRequest dispatches a single request or a chain, depending on the
// input shape. The session id in the output is always populated so the
// caller can resume the session later.
func (a *App) ExecuteRequest(ctx context.Context, in ExecuteRequestInput) (*ExecuteRequestOutput, error) {
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
		logging.Logf(logging.Debug, "Generated session id '%s'", sessionID)
	}

	if len(in.Chain) > 0 {
		results, err := a.runner.RunChain(ctx, sessionID, in.Chain)
		if err != nil {
			return nil, err
		}
		return &ExecuteRequestOutput{SessionID: sessionID, Results: results}, nil
	}

	if in.URL == "" {
		return nil, fmt.Errorf("%w: url is required in single request mode", ErrInvalidInput)
	}
	res, err := a.runner.RunSingle(ctx, sessionID, chain.SingleRequest{
		Method:  in.Method,
		URL:     in.URL,
		Headers: in.Headers,
		Data:    in.Data,
		Expect:  in.Expect,
	})
	if err != nil {
		return nil, err
	}
	ok := res.OK
	return &ExecuteRequestOutput{
		SessionID:      sessionID,
		OK:             &ok,
		Status:         res.Status,
		StatusText:     res.StatusText,
		ContentType:    res.ContentType,
		Body:           res.Body,
		Validation:     &res.Validation,
		BodyValidation: &res.BodyValidation,
	}, nil
}

// GetSession returns the full session record, or an explicit not-found
// result.
func (a *App) GetSession(in GetSessionInput) *GetSessionOutput {
	if in.SessionID == "" {
		return &GetSessionOutput{Found: false, Message: "sessionId is required"}
	}
	sess, ok := a.store.Get(in.SessionID)
	if !ok {
		return &GetSessionOutput{Found: false, Message: fmt.Sprintf("Session not found: %s", in.SessionID)}
	}
	return &GetSessionOutput{Found: true, Session: sess}
}

// GetSessionReport renders and persists the session's report, returning
// its location. An unknown session yields a not-found message and no
// filesystem write.
func (a *App) GetSessionReport(in GetSessionReportInput) (*GetSessionReportOutput, error) {
	path, err := a.reports.Generate(in.SessionID)
	if err != nil {
		if errors.Is(err, report.ErrSessionNotFound) {
			return &GetSessionReportOutput{
				SessionID: in.SessionID,
				Message:   fmt.Sprintf("Session not found: %s", in.SessionID),
			}, nil
		}
		return nil, err
	}
	return &GetSessionReportOutput{SessionID: in.SessionID, ReportPath: path}, nil
}
