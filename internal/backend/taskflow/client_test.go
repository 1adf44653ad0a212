package taskflow_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	backend "taskflow/internal/backend/taskflow"
	"taskflow/internal/config"
	"taskflow/internal/service"
	"taskflow/internal/session"
)

// newClient wires a client against the given test server. A non-empty
// token is persisted so authenticated calls carry it.
func newClient(t *testing.T, srv *httptest.Server, token string) *backend.Client {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	cfg.BaseURL = srv.URL

	sessions := session.NewStore(cfg)
	if token != "" {
		err := sessions.Set(session.Session{
			Token: token,
			User:  service.User{ID: 1, Email: "user@x.com", Role: service.RoleUser},
		})
		if err != nil {
			t.Fatalf("failed to set session: %v", err)
		}
	}
	return backend.New(cfg, sessions, nil)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if !newClient(t, srv, "").Health(context.Background()) {
		t.Error("expected healthy")
	}
}

func TestHealth_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if newClient(t, srv, "").Health(context.Background()) {
		t.Error("expected unhealthy on 500")
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if body["email"] != "user@x.com" || body["password"] != "secret1" {
			t.Errorf("unexpected body %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "abc",
			"user":  map[string]any{"id": 1, "email": "user@x.com", "role": "USER", "active": true},
		})
	}))
	defer srv.Close()

	auth, err := newClient(t, srv, "").Login(context.Background(), service.Credentials{
		Email:    "user@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if auth.Token != "abc" {
		t.Errorf("expected token abc, got %q", auth.Token)
	}
	if auth.User.ID != 1 || auth.User.Role != service.RoleUser {
		t.Errorf("unexpected user %+v", auth.User)
	}
}

func TestLogin_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": 1}})
	}))
	defer srv.Close()

	_, err := newClient(t, srv, "").Login(context.Background(), service.Credentials{
		Email:    "user@x.com",
		Password: "secret1",
	})
	var derr *service.DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestListTasks_Normalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			// Current field name
			{"id": 1, "title": "A", "deadlineDate": "2025-01-10", "status": "IN_PROGRESS", "priority": "HIGH"},
			// Legacy field name, missing status and priority
			{"id": 2, "title": "B", "date": "2025-01-11"},
			// Lowercase hyphenated status
			{"id": 3, "title": "C", "deadlineDate": "2025-01-12", "status": "in progress"},
			// No ID: skipped
			{"title": "D", "deadlineDate": "2025-01-13"},
			// No date at all: skipped
			{"id": 5, "title": "E"},
		})
	}))
	defer srv.Close()

	tasks, err := newClient(t, srv, "test-token").ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d: %+v", len(tasks), tasks)
	}

	if tasks[0].Status != service.StatusInProgress || tasks[0].Priority != service.PriorityHigh {
		t.Errorf("unexpected task 1: %+v", tasks[0])
	}
	if tasks[1].Date != "2025-01-11" {
		t.Errorf("expected legacy date field to map, got %+v", tasks[1])
	}
	if tasks[1].Status != service.StatusPending || tasks[1].Priority != service.PriorityMedium {
		t.Errorf("expected defaults for task 2, got %+v", tasks[1])
	}
	if tasks[2].Status != service.StatusInProgress {
		t.Errorf("expected normalized status for task 3, got %+v", tasks[2])
	}
}

func TestListTasks_NoTokenSkipsNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	tasks, err := newClient(t, srv, "").ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty result, got %d tasks", len(tasks))
	}
	if calls != 0 {
		t.Errorf("expected no network call, got %d", calls)
	}
}

func TestCreateTask_Defaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/tasks/add" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if body["status"] != "PENDING" || body["priority"] != "MEDIUM" {
			t.Errorf("expected defaults in request, got %v", body)
		}
		if body["deadlineDate"] != "2025-01-10" {
			t.Errorf("expected deadlineDate field, got %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": 7, "title": body["title"], "deadlineDate": body["deadlineDate"],
			"status": "PENDING", "priority": "MEDIUM",
		})
	}))
	defer srv.Close()

	task, err := newClient(t, srv, "test-token").CreateTask(context.Background(), service.NewTask{
		Title: "Write report",
		Date:  "2025-01-10",
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID != 7 || task.Status != service.StatusPending {
		t.Errorf("unexpected task %+v", task)
	}
}

func TestAuthenticatedCall_NoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	err := newClient(t, srv, "").DeleteTask(context.Background(), 1)
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	}))
	defer srv.Close()

	err := newClient(t, srv, "test-token").DeleteTask(context.Background(), 1)
	var apiErr *service.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "boom" {
		t.Errorf("unexpected APIError %+v", apiErr)
	}
}

func TestUnauthorizedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := newClient(t, srv, "stale-token").DeleteTask(context.Background(), 1)
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !strings.Contains(err.Error(), "taskflow login") {
		t.Errorf("expected re-login hint, got %q", err.Error())
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	cfg.BaseURL = srv.URL
	cfg.Timeouts.Task = 20 * time.Millisecond
	cfg.Timeouts.Auth = 20 * time.Millisecond

	sessions := session.NewStore(cfg)
	if err := sessions.Set(session.Session{Token: "test-token", User: service.User{ID: 1}}); err != nil {
		t.Fatalf("failed to set session: %v", err)
	}
	client := backend.New(cfg, sessions, nil)

	err = client.DeleteTask(context.Background(), 1)
	if !errors.Is(err, service.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}

	// Auth-class timeouts carry the cold-start wording
	_, err = client.Login(context.Background(), service.Credentials{Email: "u@x.com", Password: "secret1"})
	if !errors.Is(err, service.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !strings.Contains(err.Error(), "starting up") {
		t.Errorf("expected cold-start wording, got %q", err.Error())
	}
}

func TestOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newClient(t, srv, "test-token")
	srv.Close()

	err := client.DeleteTask(context.Background(), 1)
	if !errors.Is(err, service.ErrOffline) {
		t.Errorf("expected ErrOffline, got %v", err)
	}
}

func TestUpdateUserRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/admin/users/3/role" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if body["role"] != "ADMIN" {
			t.Errorf("unexpected body %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 3, "email": "u@x.com", "role": "ADMIN", "active": true})
	}))
	defer srv.Close()

	user, err := newClient(t, srv, "test-token").UpdateUserRole(context.Background(), 3, service.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateUserRole failed: %v", err)
	}
	if user.Role != service.RoleAdmin {
		t.Errorf("unexpected user %+v", user)
	}
}
