package realtime

import (
	"sync"

	"github.com/EnzoPetry/Dice/internal/wire"
)

// The process-wide gateway holder. main sets it once at startup and clears
// it on shutdown; HTTP handlers receive the gateway by injection and this
// registry exists for the few callers without access to that wiring.
var (
	defaultMu      sync.RWMutex
	defaultGateway *Gateway
)

// SetDefault installs the process-wide gateway instance.
func SetDefault(gw *Gateway) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultGateway = gw
}

// Default returns the process-wide gateway, if one has been installed.
func Default() (*Gateway, bool) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultGateway, defaultGateway != nil
}

// ClearDefault removes the process-wide gateway on shutdown.
func ClearDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultGateway = nil
}

// EmitToGroup broadcasts through the process-wide gateway. It reports
// whether a gateway was installed.
func EmitToGroup(groupID int64, event wire.OutboundEvent, payload any) bool {
	gw, ok := Default()
	if !ok {
		return false
	}
	gw.EmitToGroup(groupID, event, payload)
	return true
}
