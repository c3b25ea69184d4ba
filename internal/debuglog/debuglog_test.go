package debuglog

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestWithComponentChains(t *testing.T) {
	// BRIDGECTL_DEBUG is unset in tests, so the logger must be a Nop
	// and the full event chain must still be usable.
	log := WithComponent("test")
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("GetLevel() = %v, want Disabled without BRIDGECTL_DEBUG", log.GetLevel())
	}
	log.Debug().Str("key", "value").Msg("dropped")
}
