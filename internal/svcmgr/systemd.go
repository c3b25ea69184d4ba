package svcmgr

import (
	"context"
	"fmt"

	"github.com/comelit-hap/bridgectl/internal/config"
	"github.com/comelit-hap/bridgectl/internal/debuglog"
)

// systemdManager drives the bridge unit through systemctl.
type systemdManager struct {
	unit   string
	runner Runner
}

func newSystemd(cfg *config.Config, r Runner) *systemdManager {
	return &systemdManager{unit: cfg.SystemdUnit, runner: r}
}

func (m *systemdManager) IsActive(ctx context.Context) (bool, error) {
	// is-active exits 0 when active and nonzero otherwise.
	_, code, err := m.runner.Run(ctx, "systemctl", "is-active", "--quiet", m.unit)
	if err != nil {
		return false, fmt.Errorf("failed to run systemctl: %w", err)
	}
	return code == 0, nil
}

func (m *systemdManager) Start(ctx context.Context) error {
	active, err := m.IsActive(ctx)
	if err != nil {
		return err
	}
	if active {
		return ErrAlreadyRunning
	}

	out, code, err := m.runner.Run(ctx, "systemctl", "start", m.unit)
	if err != nil {
		return fmt.Errorf("failed to run systemctl: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("systemctl start %s failed: %s", m.unit, out)
	}
	return nil
}

func (m *systemdManager) Stop(ctx context.Context) error {
	active, err := m.IsActive(ctx)
	if err != nil {
		return err
	}
	if !active {
		return ErrNotRunning
	}

	out, code, err := m.runner.Run(ctx, "systemctl", "stop", m.unit)
	if err != nil {
		return fmt.Errorf("failed to run systemctl: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("systemctl stop %s failed: %s", m.unit, out)
	}
	return nil
}

func (m *systemdManager) Restart(ctx context.Context) error {
	// systemd has an atomic restart primitive; use it directly.
	out, code, err := m.runner.Run(ctx, "systemctl", "restart", m.unit)
	if err != nil {
		return fmt.Errorf("failed to run systemctl: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("systemctl restart %s failed: %s", m.unit, out)
	}
	return nil
}

func (m *systemdManager) Status(ctx context.Context) (string, error) {
	// Relay systemctl's own report verbatim. status exits nonzero for
	// inactive units but still prints the report, so the exit code is
	// not treated as a failure.
	out, _, err := m.runner.Run(ctx, "systemctl", "status", m.unit, "--no-pager")
	if err != nil {
		return "", fmt.Errorf("failed to run systemctl: %w", err)
	}
	return out, nil
}

func (m *systemdManager) Signal(ctx context.Context) error {
	active, err := m.IsActive(ctx)
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("%w: unit %s", ErrNotActive, m.unit)
	}

	// Deliver through systemd so the signal is scoped to the unit's
	// main process, even if same-named processes exist elsewhere.
	out, code, err := m.runner.Run(ctx, "systemctl", "kill", "-s", "HUP", "--kill-who=main", m.unit)
	if err != nil {
		return fmt.Errorf("failed to run systemctl: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("systemctl kill %s failed: %s", m.unit, out)
	}

	log := debuglog.WithComponent("svcmgr")
	log.Debug().Str("unit", m.unit).Msg("delivered SIGHUP via systemctl kill")
	return nil
}
