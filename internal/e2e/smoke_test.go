package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeAccountsFixture(home))

	stdout, stderr, err := runSA(t, binaryPath, home, "config", "check")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "ok       main")

	_, stderr, err = runSA(t, binaryPath, home, "secret", "set", "gemini/api_key", "--value", "AIza-test")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runSA(t, binaryPath, home, "status", "--account", "main")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "main (@maya)")
	assert.Contains(t, stdout, "ledger: empty")

	_, _, err = runSA(t, binaryPath, home, "run", "--accounts", "nobody")
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.NotZero(t, exitErr.ExitCode())
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "sa-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/sa")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build sa binary: %s", string(output))
	return binaryPath
}

func runSA(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "SA_SECRETS_BACKEND=file", "SA_CONFIG="+filepath.Join(home, "missing.toml"))

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeAccountsFixture(home string) error {
	configDir := filepath.Join(home, ".social-actions")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	accounts := `version = 1

[[accounts]]
id = "main"
handle = "@maya"
targets = ["alice", "bob"]

[accounts.browser]
user_data_dir = "profiles/main"

[accounts.features]
like = true
bookmark = true

[accounts.rate_limits]
like_per_hour = 20
min_interval_seconds = 1.5
`

	return os.WriteFile(filepath.Join(configDir, "accounts.toml"), []byte(accounts), 0o644)
}
