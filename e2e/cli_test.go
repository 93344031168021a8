package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadportal/dinojump-go/internal/api"
	"github.com/dadportal/dinojump-go/internal/factory"
	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/services/ledger"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "dinoctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/dinoctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{
		LedgerConfig: ledger.Config{
			FallbackDefaults: ledger.Defaults{DailyLimit: 3, Difficulty: model.DifficultyEasy},
		},
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		LedgerService: app.Ledger,
		GuardianGate:  app.Gate,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing

type profileResponse struct {
	PlayerID       string `json:"player_id"`
	DailyLimit     int    `json:"daily_limit"`
	Difficulty     string `json:"difficulty"`
	AttemptsToday  int    `json:"attempts_today"`
	HighScore      int    `json:"high_score"`
	RemainingPlays int    `json:"remaining_plays"`
}

type beginRunResponse struct {
	RunID   string          `json:"run_id"`
	Profile profileResponse `json:"profile"`
}

type verifyResponse struct {
	GuardianToken string `json:"guardian_token"`
	ExpiresAt     string `json:"expires_at"`
}

type lockoutResponse struct {
	LockedOut         bool `json:"locked_out"`
	RetryAfterSeconds int  `json:"retry_after_seconds"`
}

type simulateResponse struct {
	PlayerID   string `json:"player_id"`
	Difficulty string `json:"difficulty"`
	Ticks      int    `json:"ticks"`
	Score      int    `json:"score"`
	HighScore  int    `json:"high_score"`
	Jumps      int    `json:"jumps"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_ProfileAndRuns(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Fresh profile has defaults
	output, err := cli.run("profile", "get", "kiddo")
	require.NoError(t, err, "output: %s", output)

	var profile profileResponse
	require.NoError(t, json.Unmarshal([]byte(output), &profile))
	assert.Equal(t, "kiddo", profile.PlayerID)
	assert.Equal(t, 3, profile.DailyLimit)
	assert.Equal(t, 3, profile.RemainingPlays)

	// Start a run
	output, err = cli.run("run", "start", "kiddo")
	require.NoError(t, err, "output: %s", output)

	var run beginRunResponse
	require.NoError(t, json.Unmarshal([]byte(output), &run))
	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, 1, run.Profile.AttemptsToday)

	// Report its score
	output, err = cli.run("run", "score", "kiddo", "--score", "12", "--run-id", run.RunID)
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &profile))
	assert.Equal(t, 12, profile.HighScore)

	// Exhaust the budget
	for i := 0; i < 2; i++ {
		_, err = cli.run("run", "start", "kiddo")
		require.NoError(t, err)
	}

	output, err = cli.run("run", "start", "kiddo")
	require.Error(t, err)
	assert.Contains(t, output, "DAILY_LIMIT_REACHED")
}

func TestCLI_GuardianFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Guarded command without a session fails
	output, err := cli.run("profile", "reset-attempts", "kiddo")
	require.Error(t, err)
	assert.Contains(t, output, "UNAUTHORIZED")

	// Wrong PIN
	output, err = cli.run("guardian", "verify", "--pin", "0000")
	require.Error(t, err)
	assert.Contains(t, output, "PIN_MISMATCH")

	// Correct PIN stores the token in the token file
	output, err = cli.run("guardian", "verify", "--pin", "1234")
	require.NoError(t, err, "output: %s", output)

	var verify verifyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &verify))
	assert.NotEmpty(t, verify.GuardianToken)

	// Guarded commands now work off the saved token
	output, err = cli.run("profile", "settings", "kiddo", "--daily-limit", "5", "--difficulty", "medium")
	require.NoError(t, err, "output: %s", output)

	var profile profileResponse
	require.NoError(t, json.Unmarshal([]byte(output), &profile))
	assert.Equal(t, 5, profile.DailyLimit)
	assert.Equal(t, "medium", profile.Difficulty)

	output, err = cli.run("profile", "reset-attempts", "kiddo")
	require.NoError(t, err, "output: %s", output)

	// Close the session; guarded commands fail again
	_, err = cli.run("guardian", "close")
	require.NoError(t, err)

	output, err = cli.run("profile", "reset-attempts", "kiddo")
	require.Error(t, err)
	assert.Contains(t, output, "UNAUTHORIZED")
}

func TestCLI_GuardianLockout(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	for i := 0; i < 2; i++ {
		output, err := cli.run("guardian", "verify", "--pin", "0000")
		require.Error(t, err)
		assert.Contains(t, output, "PIN_MISMATCH")
	}

	output, err := cli.run("guardian", "verify", "--pin", "0000")
	require.Error(t, err)
	assert.Contains(t, output, "LOCKED_OUT")

	output, err = cli.run("guardian", "lockout")
	require.NoError(t, err, "output: %s", output)

	var lockout lockoutResponse
	require.NoError(t, json.Unmarshal([]byte(output), &lockout))
	assert.True(t, lockout.LockedOut)
	assert.Positive(t, lockout.RetryAfterSeconds)
}

func TestCLI_SimulateRunsLocally(t *testing.T) {
	// No server needed: simulate runs the engine in-process
	cli := newCLIRunner(t, "http://127.0.0.1:1")

	output, err := cli.run("simulate", "kiddo", "--difficulty", "easy", "--max-ticks", "300", "--frame-ms", "1")
	require.NoError(t, err, "output: %s", output)

	var sim simulateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sim))
	assert.Equal(t, "kiddo", sim.PlayerID)
	assert.Equal(t, "easy", sim.Difficulty)
	assert.Positive(t, sim.Ticks)
	assert.Positive(t, sim.Score)
}
