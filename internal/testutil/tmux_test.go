package testutil

import "testing"

func TestStartTmuxServerLifecycle(t *testing.T) {
	socket := StartTmuxServer(t)
	out, err := TmuxOutput(t, socket, "list-sessions", "-F", "#{session_name}")
	if err != nil {
		t.Skipf("skipping: list-sessions failed: %v", err)
	}
	if out != "runpop-test" {
		t.Fatalf("expected runpop-test session, got %q", out)
	}
}
