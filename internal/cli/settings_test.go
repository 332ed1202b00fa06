package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/matzehuels/qrnoize/pkg/errors"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), settingsFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSettings(t *testing.T) {
	path := writeSettings(t, `
workers = 4
seed = 9
jpeg_quality = 80
legacy_limits = true
flush_at_eof = true
addr = ":9000"
`)
	s, err := readSettings(path, true, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}
	want := Settings{Workers: 4, Seed: 9, JPEGQuality: 80, LegacyLimits: true, FlushAtEOF: true, Addr: ":9000"}
	if s != want {
		t.Errorf("settings = %+v, want %+v", s, want)
	}
}

func TestReadSettingsUnknownKeys(t *testing.T) {
	var buf bytes.Buffer
	path := writeSettings(t, "workers = 2\ncolour = \"red\"\n")

	s, err := readSettings(path, true, log.New(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if s.Workers != 2 {
		t.Errorf("Workers = %d, want 2", s.Workers)
	}
	if !strings.Contains(buf.String(), "colour") {
		t.Errorf("unknown keys should be logged, got %q", buf.String())
	}
}

func TestReadSettingsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")
	logger := log.New(&bytes.Buffer{})

	s, err := readSettings(path, false, logger)
	if err != nil || s != (Settings{}) {
		t.Errorf("missing default settings = %+v, %v; want zero, nil", s, err)
	}
	if _, err := readSettings(path, true, logger); err == nil {
		t.Error("missing explicit settings should fail")
	}
}

func TestReadSettingsInvalid(t *testing.T) {
	path := writeSettings(t, "workers = [\n")
	_, err := readSettings(path, true, log.New(&bytes.Buffer{}))
	if !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("error = %v, want INVALID_OPTIONS", err)
	}
}

func TestApplySettings(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var workers, quality int
	var seed uint64
	var legacy bool
	var addr string
	fs.IntVar(&workers, "workers", 1, "")
	fs.IntVar(&quality, "quality", 95, "")
	fs.Uint64Var(&seed, "seed", 0, "")
	fs.BoolVar(&legacy, "legacy-limits", false, "")
	fs.StringVar(&addr, "addr", ":8080", "")
	if err := fs.Parse([]string{"--workers", "3"}); err != nil {
		t.Fatal(err)
	}

	applyInt(fs, "workers", &workers, 8)
	applyInt(fs, "quality", &quality, 70)
	applyUint64(fs, "seed", &seed, 5)
	applyBool(fs, "legacy-limits", &legacy, true)
	applyString(fs, "addr", &addr, "")

	if workers != 3 {
		t.Errorf("explicit flag should win: workers = %d", workers)
	}
	if quality != 70 || seed != 5 || !legacy {
		t.Errorf("settings should fill unset flags: quality=%d seed=%d legacy=%v", quality, seed, legacy)
	}
	if addr != ":8080" {
		t.Errorf("empty setting should keep the default, addr = %q", addr)
	}
}
