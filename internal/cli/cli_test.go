package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildBinary compiles the hijri-cal binary to a temp directory for testing.
func buildBinary(t *testing.T, ldflags string) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "hijri-cal")

	args := []string{"build"}
	if ldflags != "" {
		args = append(args, "-ldflags", ldflags)
	}
	args = append(args, "-o", binPath, "../../cmd/hijri-cal")

	cmd := exec.Command("go", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

// isolatedEnv keeps the binary away from the user's config and data.
func isolatedEnv(t *testing.T) []string {
	home := t.TempDir()
	return append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, "config"),
		"XDG_DATA_HOME="+filepath.Join(home, "data"),
		"NO_COLOR=1",
	)
}

// TestVersionFlag verifies that --version prints the version string.
func TestVersionFlag(t *testing.T) {
	binPath := buildBinary(t, "-X main.version=v1.2.3-test")

	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	want := "hijri-cal version v1.2.3-test"
	if got != want {
		t.Errorf("--version = %q, want %q", got, want)
	}
}

// TestVersionFlag_Dev verifies the default "dev" version when no ldflags.
func TestVersionFlag_Dev(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	if got != "hijri-cal version dev" {
		t.Errorf("--version output unexpected: %q", got)
	}
}

// TestVersionSubcommand verifies that ldflags reach the version command.
func TestVersionSubcommand(t *testing.T) {
	binPath := buildBinary(t, "-X main.version=v2.0.0 -X main.commit=deadbeef")

	out, err := exec.Command(binPath, "version").Output()
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, want := range []string{"v2.0.0", "deadbeef"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("version output missing %q: %s", want, out)
		}
	}
}

// TestOfflineToday verifies the tabular source works without network.
func TestOfflineToday(t *testing.T) {
	binPath := buildBinary(t, "")

	cmd := exec.Command(binPath, "--source", "tabular", "--date", "2026-03-16")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("today failed: %v", err)
	}
	if !strings.Contains(string(out), "27 Ramadan 1447 AH") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

// TestUnavailable_ExitCode verifies that an unreachable calendar exits non-zero.
func TestUnavailable_ExitCode(t *testing.T) {
	binPath := buildBinary(t, "")

	// The cache dir cannot be created, and HIJRI_CAL_SOURCE forces the
	// remote calendar; without network or cache this must fail cleanly.
	runCmd := exec.Command(binPath, "month", "--cache-dir", "/dev/null/impossible")
	runCmd.Env = append(isolatedEnv(t), "HIJRI_CAL_SOURCE=aladhan", "HTTPS_PROXY=http://127.0.0.1:1")
	out, err := runCmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected failure, got:\n%s", out)
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "error: calendar unavailable") {
		t.Errorf("stderr missing error line:\n%s", out)
	}
}

// TestJSONError verifies errors are printed as JSON on stdout under --json.
func TestJSONError(t *testing.T) {
	binPath := buildBinary(t, "")

	cmd := exec.Command(binPath, "convert", "not-a-date", "--source", "tabular", "--json")
	cmd.Env = isolatedEnv(t)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err == nil {
		t.Fatal("expected non-zero exit")
	}
	if !strings.HasPrefix(strings.TrimSpace(string(out)), `{`) || !strings.Contains(string(out), `"error"`) {
		t.Errorf("stdout = %q, want JSON error", out)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}
}

// TestHelpFlag verifies that --help shows the expected subcommands.
func TestHelpFlag(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "--help").Output()
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}

	output := string(out)

	expectedSubcommands := []string{
		"today",
		"month",
		"events",
		"convert",
		"export",
		"watch",
		"tasbih",
		"worship",
		"config",
		"version",
	}
	for _, sub := range expectedSubcommands {
		if !strings.Contains(output, sub) {
			t.Errorf("--help output missing subcommand %q", sub)
		}
	}
}

// TestOfflineSubcommands verifies the offline commands run without error.
func TestOfflineSubcommands(t *testing.T) {
	binPath := buildBinary(t, "")
	env := isolatedEnv(t)

	cmds := [][]string{
		{"events"},
		{"month", "--source", "tabular"},
		{"convert", "2026-03-20", "--source", "tabular"},
		{"export", "--source", "tabular", "--months", "1"},
		{"tasbih", "inc"},
		{"worship"},
		{"config"},
		{"config", "path"},
	}

	for _, args := range cmds {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			cmd := exec.Command(binPath, args...)
			cmd.Env = env
			if out, err := cmd.CombinedOutput(); err != nil {
				t.Errorf("command %v failed: %v\n%s", args, err, out)
			}
		})
	}
}
