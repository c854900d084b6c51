package e2e

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conclave-gg/conclave/internal/api"
	"github.com/conclave-gg/conclave/internal/factory"
)

// cliRunner builds and runs the CLI binary against a test server.
type cliRunner struct {
	t          *testing.T
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot, err := findProjectRoot()
	require.NoError(t, err, "failed to find project root")

	binaryPath := filepath.Join(projectRoot, "bin", "conclave-test")
	buildCmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/conclave")
	buildCmd.Dir = projectRoot
	output, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI binary: %s", string(output))

	t.Cleanup(func() {
		os.Remove(binaryPath)
	})

	return &cliRunner{
		t:          t,
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

// run executes the CLI with JSON output and returns stdout.
func (c *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{"--server", c.serverURL, "--output", "json"}, args...)
	cmd := exec.Command(c.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// start launches a long-running CLI command and returns pipes to drive it.
func (c *cliRunner) start(args ...string) (*exec.Cmd, *bufio.Scanner, func(string), error) {
	fullArgs := append([]string{"--server", c.serverURL}, args...)
	cmd := exec.Command(c.binaryPath, fullArgs...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, nil, err
	}

	send := func(line string) {
		fmt.Fprintln(stdin, line)
	}
	return cmd, bufio.NewScanner(stdout), send, nil
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}

// testServer runs the real HTTP server with in-memory storage.
type testServer struct {
	t      *testing.T
	app    *factory.App
	server *http.Server
	url    string
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	router := api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Manager: app.Manager,
		Storage: app.Storage,
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Errorf("test server failed: %v", err)
		}
	}()

	url := "http://" + addr
	waitForServer(t, url)

	ts := &testServer{
		t:      t,
		app:    app,
		server: server,
		url:    url,
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ts.server.Shutdown(ctx)
	})

	return ts
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url + "/api/v1/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

type lobbyResponse struct {
	Code      string   `json:"code"`
	InGame    bool     `json:"inGame"`
	UserCount int      `json:"userCount"`
	Usernames []string `json:"usernames"`
}

type joinCheckResponse struct {
	CanJoin bool   `json:"canJoin"`
	Reason  string `json:"reason"`
}

type gameRecordResponse struct {
	ID        string   `json:"id"`
	LobbyCode string   `json:"lobbyCode"`
	Players   []string `json:"players"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Lobbies int    `json:"lobbies"`
}

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	cli := newCLIRunner(t, ts.url)

	output, err := cli.run("health")
	require.NoError(t, err, "health check failed: %s", output)

	var health healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 0, health.Lobbies)
}

func TestCLI_LobbyCommands(t *testing.T) {
	ts := startTestServer(t)
	cli := newCLIRunner(t, ts.url)

	output, err := cli.run("lobby", "create")
	require.NoError(t, err, "lobby create failed: %s", output)

	var created lobbyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.Len(t, created.Code, 6)
	assert.False(t, created.InGame)
	assert.Equal(t, 0, created.UserCount)

	output, err = cli.run("lobby", "get", created.Code)
	require.NoError(t, err, "lobby get failed: %s", output)

	var fetched lobbyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &fetched))
	assert.Equal(t, created.Code, fetched.Code)

	// Codes are case-insensitive at the API edge.
	output, err = cli.run("lobby", "get", strings.ToLower(created.Code))
	require.NoError(t, err, "lowercase lobby get failed: %s", output)

	output, err = cli.run("lobby", "check", created.Code, "alice")
	require.NoError(t, err, "lobby check failed: %s", output)

	var check joinCheckResponse
	require.NoError(t, json.Unmarshal([]byte(output), &check))
	assert.True(t, check.CanJoin)
	assert.Empty(t, check.Reason)

	output, err = cli.run("lobby", "games", created.Code)
	require.NoError(t, err, "lobby games failed: %s", output)
	assert.JSONEq(t, "[]", output)
}

func TestCLI_JoinSession(t *testing.T) {
	ts := startTestServer(t)
	cli := newCLIRunner(t, ts.url)

	output, err := cli.run("lobby", "create")
	require.NoError(t, err, "lobby create failed: %s", output)

	var created lobbyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))

	cmd, frames, send, err := cli.start("join", created.Code, "alice", "--json")
	require.NoError(t, err)
	defer cmd.Process.Kill()

	line := readLine(t, frames)

	var view struct {
		InGame    bool     `json:"inGame"`
		UserCount int      `json:"userCount"`
		Usernames []string `json:"usernames"`
	}
	require.NoError(t, json.Unmarshal([]byte(line), &view))
	assert.False(t, view.InGame)
	assert.Equal(t, 1, view.UserCount)
	assert.Equal(t, []string{"alice"}, view.Usernames)

	// The joined seat shows up in lobby reads from other clients.
	output, err = cli.run("lobby", "get", created.Code)
	require.NoError(t, err, "lobby get failed: %s", output)

	var fetched lobbyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &fetched))
	assert.Equal(t, 1, fetched.UserCount)

	output, err = cli.run("lobby", "check", created.Code, "alice")
	require.NoError(t, err, "lobby check failed: %s", output)

	var check joinCheckResponse
	require.NoError(t, json.Unmarshal([]byte(output), &check))
	assert.False(t, check.CanJoin)
	assert.Equal(t, "DUPLICATE_NAME", check.Reason)

	send("quit")
	waitForExit(t, cmd)
}

func TestCLI_GameRecordLookup(t *testing.T) {
	ts := startTestServer(t)
	cli := newCLIRunner(t, ts.url)

	output, err := cli.run("lobby", "create")
	require.NoError(t, err, "lobby create failed: %s", output)

	var created lobbyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))

	// Drive a full game through joined sessions: five players, one starts.
	players := []string{"alice", "bob", "carol", "dave", "eve"}
	var cmds []*exec.Cmd
	var sends []func(string)
	for _, name := range players {
		cmd, frames, send, err := cli.start("join", created.Code, name, "--json")
		require.NoError(t, err)
		defer cmd.Process.Kill()
		cmds = append(cmds, cmd)
		sends = append(sends, send)

		line := readLine(t, frames)
		var view struct {
			UserCount int `json:"userCount"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &view))
	}

	sends[0]("start")

	// The game record lands in storage once the session starts.
	var recordID string
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		output, err = cli.run("lobby", "games", created.Code)
		require.NoError(t, err, "lobby games failed: %s", output)

		var records []gameRecordResponse
		require.NoError(t, json.Unmarshal([]byte(output), &records))
		if len(records) == 1 {
			recordID = records[0].ID
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	require.NotEmpty(t, recordID, "game record never appeared")

	output, err = cli.run("game", "get", recordID)
	require.NoError(t, err, "game get failed: %s", output)

	var record gameRecordResponse
	require.NoError(t, json.Unmarshal([]byte(output), &record))
	assert.Equal(t, recordID, record.ID)
	assert.Equal(t, created.Code, record.LobbyCode)
	assert.ElementsMatch(t, players, record.Players)

	for _, send := range sends {
		send("quit")
	}
	for _, cmd := range cmds {
		waitForExit(t, cmd)
	}
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	cli := newCLIRunner(t, ts.url)

	output, err := cli.run("lobby", "get", "NOSUCH")
	assert.Error(t, err)
	assert.Contains(t, output, "Lobby not found")

	output, err = cli.run("game", "get", "bogus-id")
	assert.Error(t, err)
	assert.Contains(t, output, "not found")
}

func readLine(t *testing.T, scanner *bufio.Scanner) string {
	t.Helper()

	lines := make(chan string, 1)
	go func() {
		if scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	select {
	case line, ok := <-lines:
		require.True(t, ok, "output stream closed before a frame arrived")
		return line
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for output")
		return ""
	}
}

func waitForExit(t *testing.T, cmd *exec.Cmd) {
	t.Helper()

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		cmd.Process.Kill()
		t.Fatal("CLI did not exit after quit")
	}
}
