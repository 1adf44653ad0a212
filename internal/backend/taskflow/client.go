// Package taskflow implements the service.Service interface against the
// TaskFlow REST backend.
package taskflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"taskflow/internal/config"
	"taskflow/internal/service"
	"taskflow/internal/session"
)

// Endpoint paths.
const (
	healthPath   = "/api/health"
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
	tasksPath    = "/api/tasks"
	usersPath    = "/api/admin/users"
)

// opClass selects the timeout bound and the timeout wording for a call.
type opClass int

const (
	classHealth opClass = iota
	classTask
	classAuth
)

// Client implements service.Service against the TaskFlow REST API.
type Client struct {
	baseURL  string
	timeouts config.Timeouts
	sessions *session.Store
	http     *http.Client
	log      *logrus.Logger
}

// New creates a TaskFlow backend client. The session store supplies the
// bearer token; a nil logger disables logging.
func New(cfg *config.Config, sessions *session.Store, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		timeouts: cfg.Timeouts,
		sessions: sessions,
		http:     &http.Client{},
		log:      log,
	}
}

// Health reports whether the backend is reachable. Any failure reads as
// unreachable.
func (c *Client) Health(ctx context.Context) bool {
	err := c.do(ctx, classHealth, http.MethodGet, healthPath, nil, nil, false)
	return err == nil
}

// Login exchanges credentials for a bearer token and user record.
func (c *Client) Login(ctx context.Context, creds service.Credentials) (service.Auth, error) {
	body := map[string]string{"email": creds.Email, "password": creds.Password}
	var resp authResponse
	if err := c.do(ctx, classAuth, http.MethodPost, loginPath, body, &resp, false); err != nil {
		return service.Auth{}, err
	}
	if resp.Token == "" {
		return service.Auth{}, &service.DecodeError{Field: "token", Reason: "missing in auth response"}
	}
	return service.Auth{Token: resp.Token, User: resp.User}, nil
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, reg service.Registration) (service.Auth, error) {
	body := map[string]string{
		"firstName": reg.FirstName,
		"lastName":  reg.LastName,
		"email":     reg.Email,
		"password":  reg.Password,
		"role":      string(reg.Role),
	}
	var resp authResponse
	if err := c.do(ctx, classAuth, http.MethodPost, registerPath, body, &resp, false); err != nil {
		return service.Auth{}, err
	}
	if resp.Token == "" {
		return service.Auth{}, &service.DecodeError{Field: "token", Reason: "missing in auth response"}
	}
	return service.Auth{Token: resp.Token, User: resp.User}, nil
}

// ListTasks returns all tasks for the current user, normalized to canonical
// records. With no session token it returns an empty slice without a
// network call. Records that cannot be normalized are skipped.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	if c.sessions.Token() == "" {
		return []service.Task{}, nil
	}

	var raw []rawTask
	if err := c.do(ctx, classTask, http.MethodGet, tasksPath+"/all", nil, &raw, true); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(raw))
	for _, r := range raw {
		task, err := decodeTask(r)
		if err != nil {
			c.log.WithField("id", r.ID).Warnf("skipping task record: %v", err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server's record.
func (c *Client) CreateTask(ctx context.Context, nt service.NewTask) (service.Task, error) {
	status := nt.Status
	if status == "" {
		status = service.StatusPending
	}
	priority := nt.Priority
	if priority == "" {
		priority = service.PriorityMedium
	}
	body := map[string]any{
		"title":        nt.Title,
		"description":  nt.Description,
		"status":       status,
		"deadlineDate": nt.Date,
		"priority":     priority,
	}

	var raw rawTask
	if err := c.do(ctx, classTask, http.MethodPost, tasksPath+"/add", body, &raw, true); err != nil {
		return service.Task{}, err
	}
	return decodeTask(raw)
}

// DeleteTask deletes a task by ID.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, classTask, http.MethodDelete, fmt.Sprintf("%s/%d", tasksPath, id), nil, nil, true)
}

// UpdateTaskStatus sets a task's status via the generic status endpoint.
func (c *Client) UpdateTaskStatus(ctx context.Context, id int64, status service.Status) (service.Task, error) {
	body := map[string]service.Status{"status": status}
	var raw rawTask
	if err := c.do(ctx, classTask, http.MethodPut, fmt.Sprintf("%s/%d/status", tasksPath, id), body, &raw, true); err != nil {
		return service.Task{}, err
	}
	return decodeTask(raw)
}

// CompleteTask marks a task completed via the dedicated endpoint.
func (c *Client) CompleteTask(ctx context.Context, id int64) (service.Task, error) {
	var raw rawTask
	if err := c.do(ctx, classTask, http.MethodPut, fmt.Sprintf("%s/%d/complete", tasksPath, id), nil, &raw, true); err != nil {
		return service.Task{}, err
	}
	return decodeTask(raw)
}

// ListUsers returns all accounts.
func (c *Client) ListUsers(ctx context.Context) ([]service.User, error) {
	var users []service.User
	if err := c.do(ctx, classTask, http.MethodGet, usersPath, nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserStatus activates or deactivates an account.
func (c *Client) UpdateUserStatus(ctx context.Context, id int64, active bool) (service.User, error) {
	body := map[string]bool{"active": active}
	var user service.User
	if err := c.do(ctx, classTask, http.MethodPut, fmt.Sprintf("%s/%d/status", usersPath, id), body, &user, true); err != nil {
		return service.User{}, err
	}
	return user, nil
}

// UpdateUserRole changes an account's role.
func (c *Client) UpdateUserRole(ctx context.Context, id int64, role service.Role) (service.User, error) {
	body := map[string]service.Role{"role": role}
	var user service.User
	if err := c.do(ctx, classTask, http.MethodPut, fmt.Sprintf("%s/%d/role", usersPath, id), body, &user, true); err != nil {
		return service.User{}, err
	}
	return user, nil
}

// DeleteUser deletes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, classTask, http.MethodDelete, fmt.Sprintf("%s/%d", usersPath, id), nil, nil, true)
}

// do performs one request with the class's timeout, bearer auth when
// required, and response decoding into out (when non-nil).
func (c *Client) do(ctx context.Context, class opClass, method, path string, body, out any, needAuth bool) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout(class))
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	httpClient := c.http
	if needAuth {
		token := c.sessions.Token()
		if token == "" {
			return service.ErrUnauthorized
		}
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, src)
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method":     method,
			"path":       path,
			"request_id": reqID,
		}).Debugf("request failed: %v", err)
		return c.wrapTransportError(class, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": reqID,
		"status":     resp.StatusCode,
		"elapsed":    time.Since(start).Round(time.Millisecond).String(),
	}).Debug("request complete")

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("token expired or revoked (run: taskflow login): %w", service.ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &service.APIError{StatusCode: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &service.DecodeError{Field: "body", Reason: err.Error()}
		}
	}
	return nil
}

func (c *Client) timeout(class opClass) time.Duration {
	switch class {
	case classHealth:
		return c.timeouts.Health
	case classAuth:
		return c.timeouts.Auth
	default:
		return c.timeouts.Task
	}
}

// wrapTransportError maps connection-level failures onto the error
// taxonomy. Auth-operation timeouts get the cold-start wording because the
// hosted backend spins down when idle.
func (c *Client) wrapTransportError(class opClass, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		if class == classAuth {
			return fmt.Errorf("backend may be starting up, try again in a few seconds: %w", service.ErrTimeout)
		}
		return service.ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", service.ErrOffline, err)
}

// serverMessage extracts the backend's error text from a non-2xx body,
// if any. The backend reports errors as {"error": "..."}.
func serverMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// authResponse is the wire shape of login/register responses.
type authResponse struct {
	Token string       `json:"token"`
	User  service.User `json:"user"`
}

// rawTask is the wire shape of a task record. Older backend versions sent
// the due date as "date"; current ones send "deadlineDate".
type rawTask struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	Date         string `json:"date"`
	DeadlineDate string `json:"deadlineDate"`
	Priority     string `json:"priority"`
}

// decodeTask normalizes a raw record into a canonical Task. Missing
// status and priority default per the documented table; a record without
// a server-assigned ID or any date field is malformed.
func decodeTask(r rawTask) (service.Task, error) {
	if r.ID == 0 {
		return service.Task{}, &service.DecodeError{Field: "id", Reason: "missing"}
	}
	date := r.DeadlineDate
	if date == "" {
		date = r.Date
	}
	if date == "" {
		return service.Task{}, &service.DecodeError{Field: "deadlineDate", Reason: "missing"}
	}
	return service.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Date:        date,
		Status:      service.NormalizeStatus(r.Status),
		Priority:    service.NormalizePriority(r.Priority),
	}, nil
}
