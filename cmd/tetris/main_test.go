package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("tetris %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

// resetFlags restores flag defaults; cobra keeps parsed values between runs.
func resetFlags() {
	rootCmd.SetArgs(nil)
	flagFPS, flagSeed = 60, 0
	flagConfig, flagDifficulty = "", ""
	flagLimit, flagAll, flagClear = 10, false, false
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const testConfig = `board: { width: 10, height: 22, spawn_rows: 2 }
gravity: { initial_speed_ms: 900, min_speed_ms: 50, decay_divisor: 6 }
scoring: { rows_per_level: 10, rewards: {1: 40, 2: 100, 3: 300, 4: 1200} }
start_level: 1
`

func TestListShowsTetris(t *testing.T) {
	out := execute(t, "list")
	if !strings.Contains(out, tetris.GameID) || !strings.Contains(out, "Tetris") {
		t.Errorf("list output missing tetris:\n%s", out)
	}
}

func TestConfigPrintsEffectiveYAML(t *testing.T) {
	path := writeConfig(t, testConfig)

	out := execute(t, "config", "--config", path)
	if !strings.Contains(out, "initial_speed_ms: 900") {
		t.Errorf("expected file value, got:\n%s", out)
	}

	out = execute(t, "config", "--config", path, "--difficulty", "hard")
	if !strings.Contains(out, "initial_speed_ms: 500") {
		t.Errorf("expected hard preset, got:\n%s", out)
	}
}

func TestConfigRejectsUnknownDifficulty(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"config", "--difficulty", "insane"})
	t.Cleanup(resetFlags)

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestScores(t *testing.T) {
	db := filepath.Join(t.TempDir(), "scores.db")

	out := execute(t, "scores", "--db", db)
	if !strings.Contains(out, "No scores recorded yet.") {
		t.Errorf("expected empty message, got:\n%s", out)
	}

	store, err := storage.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []int{120, 1240, 40} {
		if _, err := store.SaveScore(tetris.GameID, s, 2, 11); err != nil {
			t.Fatal(err)
		}
	}
	store.Close()

	out = execute(t, "scores", "--db", db, "--limit", "2")
	if !strings.Contains(out, "1240") || !strings.Contains(out, "120") {
		t.Errorf("expected top two scores, got:\n%s", out)
	}
	if strings.Contains(out, "  40  ") {
		t.Errorf("limit not applied:\n%s", out)
	}
	if !strings.Contains(out, "Games: 3  Best: 1240  Top level: 2  Rows: 33") {
		t.Errorf("missing stats line:\n%s", out)
	}

	out = execute(t, "scores", "--db", db, "--limit", "2", "--all")
	if !strings.Contains(out, "  3     40  ") {
		t.Errorf("--all should ignore the limit:\n%s", out)
	}

	out = execute(t, "scores", "--db", db, "--clear")
	if !strings.Contains(out, "Scores cleared.") {
		t.Errorf("expected clear confirmation, got:\n%s", out)
	}
	out = execute(t, "scores", "--db", db)
	if !strings.Contains(out, "No scores recorded yet.") {
		t.Errorf("scores survived --clear:\n%s", out)
	}
}

func TestFPSMustBePositive(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"list", "--fps", "0"})
	t.Cleanup(resetFlags)

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for --fps 0")
	}
}
