package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/matzehuels/qrnoize/pkg/errors"
)

// Settings are persistent defaults read from a TOML file. Flags set on the
// command line take precedence.
type Settings struct {
	Workers      int    `toml:"workers"`
	Seed         uint64 `toml:"seed"`
	JPEGQuality  int    `toml:"jpeg_quality"`
	LegacyLimits bool   `toml:"legacy_limits"`
	FlushAtEOF   bool   `toml:"flush_at_eof"`
	Addr         string `toml:"addr"`
}

// loadSettings reads the settings file. A missing default file yields zero
// settings; a missing file named with --settings is an error.
func (c *CLI) loadSettings(logger *log.Logger) (Settings, error) {
	path, explicit := c.settingsPath, c.settingsPath != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return Settings{}, nil
		}
		path = filepath.Join(dir, settingsFile)
	}
	return readSettings(path, explicit, logger)
}

func readSettings(path string, required bool, logger *log.Logger) (Settings, error) {
	var s Settings
	if _, err := os.Stat(path); os.IsNotExist(err) && !required {
		return s, nil
	}
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidOptions, err, "read settings %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.Warn("unknown settings keys", "path", path, "keys", strings.Join(keys, ", "))
	}
	logger.Debug("loaded settings", "path", path)
	return s, nil
}

// applyInt copies v into dst unless the flag was set explicitly or v is zero.
func applyInt(flags *pflag.FlagSet, name string, dst *int, v int) {
	if v != 0 && !flags.Changed(name) {
		*dst = v
	}
}

func applyUint64(flags *pflag.FlagSet, name string, dst *uint64, v uint64) {
	if v != 0 && !flags.Changed(name) {
		*dst = v
	}
}

func applyBool(flags *pflag.FlagSet, name string, dst *bool, v bool) {
	if v && !flags.Changed(name) {
		*dst = v
	}
}

func applyString(flags *pflag.FlagSet, name string, dst *string, v string) {
	if v != "" && !flags.Changed(name) {
		*dst = v
	}
}
