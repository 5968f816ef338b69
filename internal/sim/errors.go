package sim

import "fmt"

// StepError reports the tick at which a run stopped.
type StepError struct {
	Tick int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
