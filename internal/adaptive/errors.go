package adaptive

import "errors"

// Sentinel errors for the adaptive package.
var (
	// ErrEmptyPool is returned by Select when called with no candidates.
	ErrEmptyPool = errors.New("adaptive: empty candidate pool")

	// ErrInvalidParams is returned when selector tuning is out of range.
	ErrInvalidParams = errors.New("adaptive: parameters out of range")

	// ErrGlobalInitialized is returned by ConfigureGlobal once the shared
	// selector exists.
	ErrGlobalInitialized = errors.New("adaptive: global selector already initialized")
)
