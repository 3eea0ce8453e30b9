package adaptive

import (
	"fmt"
	"sync"
)

var (
	globalOnce     sync.Once
	globalSelector *Selector

	globalMu     sync.Mutex
	globalParams = DefaultParams()
	globalOpts   []Option
	globalBuilt  bool
)

// ConfigureGlobal sets the policy and options Global uses when it builds the
// shared Selector. It must be called before the first Global call.
func ConfigureGlobal(params Params, opts ...Option) error {
	if err := params.Validate(); err != nil {
		return err
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalBuilt {
		return fmt.Errorf("configure: %w", ErrGlobalInitialized)
	}
	globalParams = params
	globalOpts = opts
	return nil
}

// Global returns the process-wide Selector, creating it on first use with
// DefaultParams or whatever ConfigureGlobal set. Every game mode shares it,
// so an item missed in one mode surfaces more often in the others.
func Global() *Selector {
	globalOnce.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		s, err := NewSelector(globalParams, globalOpts...)
		if err != nil {
			panic(err) // params were validated by ConfigureGlobal
		}
		globalSelector = s
		globalBuilt = true
	})
	return globalSelector
}
