package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Project Pulse REST backend. All calls are
// synchronous and terminal on failure: no retries, no backoff.
type Client struct {
	endpoint string
	http     *http.Client
	observer Observer
}

// New creates a Client against the given endpoint (scheme://host[:port]).
func New(endpoint string, timeout time.Duration, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// do performs one request and decodes the JSON response into out (when
// out is non-nil). Non-2xx statuses become *StatusError carrying a
// truncated body snippet; an unparseable body is ErrBadResponse.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	start := time.Now()
	status, err := c.doOnce(ctx, method, path, body, out)
	c.observer.OnCall(CallEvent{
		Method:    method,
		Resource:  path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Err:       err,
	})
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &StatusError{Status: resp.StatusCode, Snippet: snippet(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: %s", ErrBadResponse, snippet(respBody))
		}
	}
	return resp.StatusCode, nil
}

// Server-side aliases for client field names, applied to outgoing
// partial update bodies.
var (
	projectAliases = map[string]string{
		"leadId": "owner_id",
		"teamId": "team_id",
	}
	// Client-only project fields never transmitted to the server.
	projectClientOnly = map[string]bool{
		"parentId":        true,
		"weight":          true,
		"frequency":       true,
		"frequencyDetail": true,
	}
	taskAliases = map[string]string{
		"projectId":  "project_id",
		"assigneeId": "assignee_id",
	}
	todoAliases = map[string]string{
		"ownerId": "owner_id",
	}
	leaveAliases = map[string]string{
		"memberId": "member_id",
	}
	auditAliases = map[string]string{
		"userId": "user_id",
	}
)

// translate maps client field names onto server names and drops
// client-only fields.
func translate(patch map[string]any, aliases map[string]string, clientOnly map[string]bool) map[string]any {
	out := make(map[string]any, len(patch))
	for k, v := range patch {
		if clientOnly[k] {
			continue
		}
		if alias, ok := aliases[k]; ok {
			k = alias
		}
		out[k] = v
	}
	return out
}

// Projects

func (c *Client) ListProjects(ctx context.Context) ([]ProjectRecord, error) {
	var out []ProjectRecord
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, body map[string]any) (*ProjectRecord, error) {
	var out ProjectRecord
	if err := c.do(ctx, http.MethodPost, "/api/projects", translate(body, projectAliases, nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch map[string]any) (*ProjectRecord, error) {
	var out ProjectRecord
	path := "/api/projects/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, translate(patch, projectAliases, projectClientOnly), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) (*DeleteProjectResponse, error) {
	var out DeleteProjectResponse
	path := "/api/projects/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tasks

func (c *Client) ListTasks(ctx context.Context) ([]TaskRecord, error) {
	var out []TaskRecord
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, body map[string]any) (*TaskRecord, error) {
	var out TaskRecord
	if err := c.do(ctx, http.MethodPost, "/api/tasks", translate(body, taskAliases, nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch map[string]any) (*TaskRecord, error) {
	var out TaskRecord
	path := "/api/tasks/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, translate(patch, taskAliases, nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

// Members

func (c *Client) ListMembers(ctx context.Context) ([]MemberRecord, error) {
	var out []MemberRecord
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MemberPerformance(ctx context.Context, id string) (*PerformanceRecord, error) {
	var out PerformanceRecord
	path := "/api/users/" + url.PathEscape(id) + "/performance"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToDos

func (c *Client) ListToDos(ctx context.Context) ([]ToDoRecord, error) {
	var out []ToDoRecord
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateToDo(ctx context.Context, body map[string]any) (*ToDoRecord, error) {
	var out ToDoRecord
	if err := c.do(ctx, http.MethodPost, "/api/todos", translate(body, todoAliases, nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateToDo(ctx context.Context, id string, patch map[string]any) (*ToDoRecord, error) {
	var out ToDoRecord
	path := "/api/todos/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, translate(patch, todoAliases, nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteToDo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+url.PathEscape(id), nil, nil)
}

// Leave

func (c *Client) ListLeaves(ctx context.Context) ([]LeaveRecord, error) {
	var out []LeaveRecord
	if err := c.do(ctx, http.MethodGet, "/api/leaves", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateLeave(ctx context.Context, body map[string]any) (*LeaveRecord, error) {
	var out LeaveRecord
	if err := c.do(ctx, http.MethodPost, "/api/leaves", translate(body, leaveAliases, nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteLeave(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/leaves/"+url.PathEscape(id), nil, nil)
}

// Audit log

func (c *Client) ListAuditLogs(ctx context.Context) ([]AuditRecord, error) {
	var out []AuditRecord
	if err := c.do(ctx, http.MethodGet, "/api/audit-logs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAuditLog(ctx context.Context, body map[string]any) (*AuditRecord, error) {
	var out AuditRecord
	if err := c.do(ctx, http.MethodPost, "/api/audit-logs", translate(body, auditAliases, nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Teams and tools

func (c *Client) ListTeams(ctx context.Context) ([]TeamRecord, error) {
	var out []TeamRecord
	if err := c.do(ctx, http.MethodGet, "/api/teams", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListTools(ctx context.Context) ([]ToolRecord, error) {
	var out []ToolRecord
	if err := c.do(ctx, http.MethodGet, "/api/tools", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Settings resources

func (c *Client) ListRiskLevels(ctx context.Context) ([]SettingRecord, error) {
	return c.listSettings(ctx, "/api/risk-levels")
}

func (c *Client) ListDepartments(ctx context.Context) ([]SettingRecord, error) {
	return c.listSettings(ctx, "/api/departments")
}

func (c *Client) ListProjectPhases(ctx context.Context) ([]SettingRecord, error) {
	return c.listSettings(ctx, "/api/project-phases")
}

func (c *Client) ListSystemConfiguration(ctx context.Context) ([]SettingRecord, error) {
	return c.listSettings(ctx, "/api/system-configuration")
}

func (c *Client) listSettings(ctx context.Context, path string) ([]SettingRecord, error) {
	var out []SettingRecord
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login authenticates and returns the matching user record. Any
// non-2xx response surfaces the response body text as the message.
func (c *Client) Login(ctx context.Context, username, password string) (*MemberRecord, error) {
	body := map[string]string{"username": username, "password": password}
	var out MemberRecord
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, fmt.Errorf("login failed: %s", statusErr.Snippet)
		}
		return nil, err
	}
	return &out, nil
}
