package svcmgr

import (
	"context"

	"github.com/comelit-hap/bridgectl/internal/platform"
)

// unsupported rejects every operation. Log viewing does not go through
// the Manager, so it stays available on these platforms.
type unsupported struct{}

func (unsupported) IsActive(ctx context.Context) (bool, error) {
	return false, platform.ErrUnsupported
}

func (unsupported) Start(ctx context.Context) error {
	return platform.ErrUnsupported
}

func (unsupported) Stop(ctx context.Context) error {
	return platform.ErrUnsupported
}

func (unsupported) Restart(ctx context.Context) error {
	return platform.ErrUnsupported
}

func (unsupported) Status(ctx context.Context) (string, error) {
	return "", platform.ErrUnsupported
}

func (unsupported) Signal(ctx context.Context) error {
	return platform.ErrUnsupported
}
