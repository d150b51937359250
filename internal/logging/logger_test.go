package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"pmvhaven/internal/config"
	"pmvhaven/internal/logging"
	"pmvhaven/internal/services"
)

func TestNewWritesStderrAndSideLog(t *testing.T) {
	var stderr bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "nested", "pmvhaven.scraper.log")

	logger, err := logging.New(logging.Options{
		Level:     "info",
		Format:    "console",
		Stderr:    &stderr,
		FilePath:  logPath,
		SessionID: "session-1",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "resolver").Info("search returned candidates", logging.Int("count", 3))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read side log: %v", err)
	}
	for _, out := range []string{stderr.String(), string(content)} {
		for _, want := range []string{"INFO", "resolver:", "search returned candidates", "count=3", "session_id=session-1"} {
			if !strings.Contains(out, want) {
				t.Fatalf("expected %q in %q", want, out)
			}
		}
	}
	if strings.Contains(stderr.String(), "\x1b[") {
		t.Fatalf("expected no colour codes for non-terminal writer, got %q", stderr.String())
	}
}

func TestNewJSONFormat(t *testing.T) {
	var stderr bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Stderr: &stderr})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("json message", logging.String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(stderr.Bytes(), &record); err != nil {
		t.Fatalf("decode record %q: %v", stderr.String(), err)
	}
	if record["level"] != "warn" || record["msg"] != "json message" || record["k"] != "v" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Stderr: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var stderr bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Stderr: &stderr})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Error("shown")
	if strings.Contains(stderr.String(), "hidden") || !strings.Contains(stderr.String(), "shown") {
		t.Fatalf("unexpected output %q", stderr.String())
	}
}

func TestConsoleIncludesSourceForDebug(t *testing.T) {
	var stderr bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Stderr: &stderr})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("with caller")
	if !strings.Contains(stderr.String(), "logger_test.go:") {
		t.Fatalf("expected caller information at debug level, got %q", stderr.String())
	}
}

func TestNewDegradesWhenSideLogUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	var stderr bytes.Buffer
	logger, err := logging.New(logging.Options{Stderr: &stderr, FilePath: filepath.Join(blocker, "scraper.log")})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("still logging")

	out := stderr.String()
	if !strings.Contains(out, "side log unavailable") || !strings.Contains(out, "still logging") {
		t.Fatalf("expected degraded stderr logging, got %q", out)
	}
}

func TestSideLogConcurrentWriters(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "shared.log")
	const writers, lines = 4, 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		logger, err := logging.New(logging.Options{Format: "json", Stderr: &bytes.Buffer{}, FilePath: logPath})
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < lines; j++ {
				logger.Info("concurrent line", logging.Int("n", j))
			}
		}()
	}
	wg.Wait()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read side log: %v", err)
	}
	got := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(got) != writers*lines {
		t.Fatalf("expected %d lines, got %d", writers*lines, len(got))
	}
	for _, line := range got {
		if !json.Valid([]byte(line)) {
			t.Fatalf("interleaved line %q", line)
		}
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := services.WithMethod(context.Background(), "sceneByFragment")
	ctx = services.WithStage(ctx, "search")
	ctx = services.WithRequestID(ctx, "req-xyz")

	var stderr bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Stderr: &stderr})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal(stderr.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	want := map[string]string{
		logging.FieldMethod:        "sceneByFragment",
		logging.FieldStage:         "search",
		logging.FieldCorrelationID: "req-xyz",
	}
	for key, value := range want {
		if record[key] != value {
			t.Fatalf("expected %s=%q, got %v", key, value, record[key])
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var stderr bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Stderr: &stderr})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "candidate dropped", "candidate_dropped", logging.String(logging.FieldImpact, "fewer candidates scored"))

	var record map[string]any
	if err := json.Unmarshal(stderr.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record[logging.FieldEventType] != "candidate_dropped" {
		t.Fatalf("expected event type, got %v", record)
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatalf("expected default error hint, got %v", record)
	}
	if record[logging.FieldImpact] != "fewer candidates scored" {
		t.Fatalf("expected caller impact preserved, got %v", record)
	}
}

func TestNewFromConfigUsesLogDir(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = t.TempDir()
	cfg.Logging.Format = "json"

	var stderr bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &stderr)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Warn("configured")

	content, err := os.ReadFile(cfg.LogFilePath())
	if err != nil {
		t.Fatalf("read side log: %v", err)
	}
	if !strings.Contains(string(content), `"session_id"`) {
		t.Fatalf("expected session id in side log, got %q", content)
	}
	if !strings.Contains(stderr.String(), "configured") {
		t.Fatalf("expected record on stderr, got %q", stderr.String())
	}
}
