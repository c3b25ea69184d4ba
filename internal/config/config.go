// Package config holds the immutable description of the bridge service:
// how the native service manager addresses it, where its PID file lives,
// and how its logging engine lays out files on disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comelit-hap/bridgectl/internal/platform"
)

// ServiceName is the logical name of the bridge daemon. The executable
// and the systemd unit share this name.
const ServiceName = "comelit-hap-bridge"

// Config describes the controlled service for one platform. It is built
// once at startup from the resolved platform and passed to every
// component; nothing mutates it afterwards.
//
// The PID file and every log path are owned by the bridge (or its
// startup wrapper) — this tool only reads them, except for reset.
type Config struct {
	// Platform is the resolved OS family.
	Platform platform.Kind `yaml:"-"`

	// SystemdUnit is the unit name used with systemctl/journalctl.
	SystemdUnit string `yaml:"systemd_unit"`

	// LaunchdLabel is the launchd job label.
	LaunchdLabel string `yaml:"launchd_label"`

	// LaunchdPlist is the path to the LaunchDaemon plist.
	LaunchdPlist string `yaml:"launchd_plist"`

	// PIDFile is written by the bridge's startup wrapper. Advisory only:
	// it may be absent or stale and is always re-validated against the
	// process table before being trusted.
	PIDFile string `yaml:"pid_file"`

	// LogDir holds the fixed log pair and the agent-rotated files.
	LogDir string `yaml:"log_dir"`

	// MainLog and ErrorLog are the fixed pair the bridge writes when
	// started with --log-file/--error-log-file.
	MainLog  string `yaml:"main_log"`
	ErrorLog string `yaml:"error_log"`

	// RotatedPrefix is the file name prefix of the bridge's rolling
	// appender; rotated files carry a date suffix after it.
	RotatedPrefix string `yaml:"rotated_prefix"`

	// DataDir holds HomeKit pairing state. Removed by reset.
	DataDir string `yaml:"data_dir"`
}

// New builds the default configuration for the given platform.
func New(kind platform.Kind) *Config {
	c := &Config{
		Platform:      kind,
		SystemdUnit:   ServiceName + ".service",
		LaunchdLabel:  "com.comelit.hap-bridge",
		LaunchdPlist:  "/Library/LaunchDaemons/com.comelit.hap-bridge.plist",
		RotatedPrefix: "comelit-hub",
	}

	switch kind {
	case platform.Launchd:
		c.PIDFile = "/usr/local/var/run/" + ServiceName + ".pid"
		c.LogDir = "/usr/local/var/log/comelit"
		c.DataDir = "/usr/local/var/lib/comelit/data"
	default:
		c.PIDFile = "/run/" + ServiceName + ".pid"
		c.LogDir = "/var/log/comelit"
		c.DataDir = "/var/lib/comelit/data"
	}

	c.MainLog = filepath.Join(c.LogDir, ServiceName+".log")
	c.ErrorLog = filepath.Join(c.LogDir, ServiceName+".error.log")
	return c
}

// ServiceID returns the identifier used to address the service on the
// configured platform: the systemd unit name or the launchd label.
func (c *Config) ServiceID() string {
	if c.Platform == platform.Launchd {
		return c.LaunchdLabel
	}
	return c.SystemdUnit
}

// OverrideFile returns the path of the optional YAML override file for
// the given platform.
func OverrideFile(kind platform.Kind) string {
	if kind == platform.Launchd {
		return "/usr/local/etc/comelit/bridgectl.yaml"
	}
	return "/etc/comelit/bridgectl.yaml"
}

// Load builds the configuration for the platform and applies the YAML
// override file if one exists. A missing override file is not an error.
func Load(kind platform.Kind) (*Config, error) {
	return load(kind, OverrideFile(kind))
}

func load(kind platform.Kind, overridePath string) (*Config, error) {
	c := New(kind)

	data, err := os.ReadFile(overridePath)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read override file %s: %w", overridePath, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("invalid override file %s: %w", overridePath, err)
	}
	return c, nil
}
