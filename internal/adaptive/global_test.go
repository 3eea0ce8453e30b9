package adaptive

import (
	"errors"
	"sync"
	"testing"
)

// TestConfigureGlobal runs first in this package so the shared selector is
// normally not built yet; it tolerates either order.
func TestConfigureGlobal(t *testing.T) {
	custom := DefaultParams()
	custom.Boost = 2

	if err := ConfigureGlobal(Params{}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("ConfigureGlobal(zero) = %v, want ErrInvalidParams", err)
	}

	err := ConfigureGlobal(custom, WithSeed(1))
	switch {
	case err == nil:
		if got := Global().Params(); got != custom {
			t.Errorf("Global params = %+v, want %+v", got, custom)
		}
	case !errors.Is(err, ErrGlobalInitialized):
		t.Fatalf("ConfigureGlobal = %v", err)
	}

	Global()
	if err := ConfigureGlobal(DefaultParams()); !errors.Is(err, ErrGlobalInitialized) {
		t.Errorf("ConfigureGlobal after Global = %v, want ErrGlobalInitialized", err)
	}
}

func TestGlobal_SameInstance(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Selector, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Global()
		}(i)
	}
	wg.Wait()

	for i, s := range got {
		if s == nil {
			t.Fatalf("Global() #%d returned nil", i)
		}
		if s != got[0] {
			t.Fatalf("Global() #%d returned a different instance", i)
		}
	}
}

func TestGlobal_SharedAcrossCallers(t *testing.T) {
	Global().UpdateWeight("global-test-item", false)
	if w := Global().Weight("global-test-item"); w <= Global().Params().DefaultWeight {
		t.Errorf("Weight = %v, want boosted above default", w)
	}
}
