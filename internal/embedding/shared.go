package embedding

import "sync"

// The encoder owns the process-wide onnxruntime environment, so the process
// holds exactly one. A failed load is sticky: retrying a half-initialized
// runtime is worse than failing the run.
var (
	sharedOnce    sync.Once
	sharedEncoder *Encoder
	sharedErr     error
)

// Shared returns the process-wide encoder, loading it on first use.
func Shared(cfg Config) (*Encoder, error) {
	sharedOnce.Do(func() {
		sharedEncoder, sharedErr = NewEncoder(cfg)
	})
	return sharedEncoder, sharedErr
}
