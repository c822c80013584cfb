package synth

import "fmt"

// SynthesisIOError reports a failed write. Files written before it stay
// on disk.
type SynthesisIOError struct {
	Path    string
	Builder string
	Err     error
}

func (e *SynthesisIOError) Error() string {
	if e.Builder == "" {
		return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("writing %s (from %s): %v", e.Path, e.Builder, e.Err)
}

func (e *SynthesisIOError) Unwrap() error {
	return e.Err
}
