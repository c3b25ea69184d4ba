// Package platform resolves the host OS family and the privileges
// available to the current invocation.
package platform

import (
	"errors"
	"os"
	"runtime"
)

// Kind identifies which native service manager supervises the bridge.
type Kind int

const (
	// Unsupported means no known service manager is available.
	Unsupported Kind = iota
	// Systemd is the Linux platform (systemctl/journalctl).
	Systemd
	// Launchd is the macOS platform (launchctl).
	Launchd
)

var (
	// ErrUnsupported is returned for lifecycle and signal operations on
	// platforms without a known service manager.
	ErrUnsupported = errors.New("unsupported operating system")

	// ErrPrivilegeRequired is returned when a mutating operation is
	// attempted without root privileges.
	ErrPrivilegeRequired = errors.New("root privileges required (try sudo)")
)

// geteuid is swapped in tests.
var geteuid = os.Geteuid

// Resolve determines the platform kind from the runtime OS.
func Resolve() Kind {
	return ResolveOS(runtime.GOOS)
}

// ResolveOS maps a GOOS value to a platform kind.
func ResolveOS(goos string) Kind {
	switch goos {
	case "linux":
		return Systemd
	case "darwin":
		return Launchd
	default:
		return Unsupported
	}
}

// Supported reports whether lifecycle and signal operations are available.
func (k Kind) Supported() bool {
	return k == Systemd || k == Launchd
}

func (k Kind) String() string {
	switch k {
	case Systemd:
		return "linux/systemd"
	case Launchd:
		return "macos/launchd"
	default:
		return "unsupported"
	}
}

// RequireRoot verifies the caller holds effective root privileges.
// Mutating operations call this before touching the service manager so
// a missing privilege fails fast rather than mid-operation.
func RequireRoot() error {
	if geteuid() != 0 {
		return ErrPrivilegeRequired
	}
	return nil
}
