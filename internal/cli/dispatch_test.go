package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/testutil"
)

// run dispatches args with a FakeService backend and a fresh config dir.
// The returned session store can be used to log a user in between calls.
func newHarness(t *testing.T) (*Dispatcher, *testutil.FakeService, *session.Store, string) {
	t.Helper()
	dir := t.TempDir()
	svc := testutil.NewFakeService()
	factory := func(ctx context.Context, cfg *config.Config, sessions *session.Store) (service.Service, error) {
		return svc, nil
	}
	d := NewDispatcher(commands.DefaultRegistry, factory)

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	return d, svc, session.NewStore(cfg), dir
}

func dispatch(t *testing.T, d *Dispatcher, dir string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{}, args...)
	// Every invocation pins the config dir so tests never touch the real one
	if len(full) > 0 {
		full = append([]string{full[0], "--config", dir}, full[1:]...)
	}
	code := d.Run(context.Background(), full, &out, &errOut)
	return code, out.String(), errOut.String()
}

func login(t *testing.T, sessions *session.Store, role service.Role) {
	t.Helper()
	err := sessions.Set(session.Session{
		Token: "abc",
		User:  service.User{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", Role: role, Active: true},
	})
	if err != nil {
		t.Fatalf("failed to set session: %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	d, _, _, dir := newHarness(t)
	code, _, errOut := dispatch(t, d, dir, "frobnicate")
	if code != exitcode.UserError {
		t.Fatalf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut, "unknown command: frobnicate") {
		t.Errorf("unexpected error %q", errOut)
	}
}

func TestRun_FlagBeforeCommand(t *testing.T) {
	d, _, _, _ := newHarness(t)
	var out, errOut bytes.Buffer
	code := d.Run(context.Background(), []string{"--quiet", "list"}, &out, &errOut)
	if code != exitcode.UserError {
		t.Fatalf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut.String(), "unknown command: --quiet") {
		t.Errorf("unexpected error %q", errOut.String())
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	d, _, _, dir := newHarness(t)
	code, _, errOut := dispatch(t, d, dir, "version", "--frobnicate")
	if code != exitcode.UserError {
		t.Fatalf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut, "unknown flag: -frobnicate") {
		t.Errorf("unexpected error %q", errOut)
	}
}

func TestRun_Version(t *testing.T) {
	d, _, _, dir := newHarness(t)
	code, out, _ := dispatch(t, d, dir, "version")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.HasPrefix(out, "taskflow ") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRun_Help(t *testing.T) {
	d, _, _, dir := newHarness(t)
	code, out, _ := dispatch(t, d, dir, "help")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.HasPrefix(out, "Usage:") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRun_DefaultsToList(t *testing.T) {
	// With no arguments there is no place to pass --config, so point the
	// default config dir at a scratch location instead.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	svc := testutil.NewFakeService()
	svc.AddTask("Write report", "2025-01-10", service.StatusPending)
	factory := func(ctx context.Context, cfg *config.Config, sessions *session.Store) (service.Service, error) {
		return svc, nil
	}
	d := NewDispatcher(commands.DefaultRegistry, factory)

	cfg, err := config.New("")
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	login(t, session.NewStore(cfg), service.RoleUser)

	var out, errOut bytes.Buffer
	code := d.Run(context.Background(), nil, &out, &errOut)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr: %s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Write report") {
		t.Errorf("expected task listing, got %q", out.String())
	}
}

func TestRun_ProtectedRequiresLogin(t *testing.T) {
	d, _, _, dir := newHarness(t)
	code, _, errOut := dispatch(t, d, dir, "list")
	if code != exitcode.AuthError {
		t.Fatalf("expected auth error, got %d", code)
	}
	if !strings.Contains(errOut, "not logged in (run: taskflow login)") {
		t.Errorf("unexpected error %q", errOut)
	}
}

func TestRun_ProtectedWithSession(t *testing.T) {
	d, svc, sessions, dir := newHarness(t)
	login(t, sessions, service.RoleUser)
	svc.AddTask("Write report", "2025-01-10", service.StatusPending)

	code, out, errOut := dispatch(t, d, dir, "list")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr: %s)", code, errOut)
	}
	if !strings.Contains(out, "Write report") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRun_AdminRequiresAdminRole(t *testing.T) {
	d, _, sessions, dir := newHarness(t)
	login(t, sessions, service.RoleUser)

	code, _, errOut := dispatch(t, d, dir, "users")
	if code != exitcode.AuthError {
		t.Fatalf("expected auth error, got %d", code)
	}
	if !strings.Contains(errOut, "admin access required") {
		t.Errorf("unexpected error %q", errOut)
	}
}

func TestRun_AdminAllowed(t *testing.T) {
	d, svc, sessions, dir := newHarness(t)
	login(t, sessions, service.RoleAdmin)
	svc.AddUser(service.User{ID: 2, FirstName: "Bob", LastName: "Smith", Email: "bob@x.com", Role: service.RoleUser, Active: true})

	code, out, errOut := dispatch(t, d, dir, "users")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr: %s)", code, errOut)
	}
	if !strings.Contains(out, "bob@x.com") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRun_LoginWhileLoggedIn(t *testing.T) {
	d, _, sessions, dir := newHarness(t)
	login(t, sessions, service.RoleUser)

	code, out, _ := dispatch(t, d, dir, "login", "--email", "ada@x.com", "--password", "secret1")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(out, "already logged in") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRun_Alias(t *testing.T) {
	d, svc, sessions, dir := newHarness(t)
	login(t, sessions, service.RoleUser)
	svc.AddTask("Write report", "2025-01-10", service.StatusPending)

	code, out, errOut := dispatch(t, d, dir, "complete", "1")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr: %s)", code, errOut)
	}
	if out != "ok\n" {
		t.Errorf("unexpected output %q", out)
	}
	task, _ := svc.Task(1)
	if task.Status != service.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", task.Status)
	}
}

func TestRun_QuietSuppressesChrome(t *testing.T) {
	d, svc, sessions, dir := newHarness(t)
	login(t, sessions, service.RoleUser)
	svc.AddTask("Write report", "2025-01-10", service.StatusPending)

	code, out, _ := dispatch(t, d, dir, "list", "--quiet")
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if strings.Contains(out, "page 1 of") {
		t.Errorf("expected footer to be suppressed, got %q", out)
	}
	if !strings.Contains(out, "Write report") {
		t.Errorf("expected task rows to remain, got %q", out)
	}
}

func TestRun_NoFactory(t *testing.T) {
	d := NewDispatcher(commands.DefaultRegistry, nil)
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("config.New failed: %v", err)
	}
	login(t, session.NewStore(cfg), service.RoleUser)

	code, _, errOut := dispatch(t, d, dir, "list")
	if code != exitcode.BackendError {
		t.Fatalf("expected backend error, got %d", code)
	}
	if !strings.Contains(errOut, "no backend configured") {
		t.Errorf("unexpected error %q", errOut)
	}
}
