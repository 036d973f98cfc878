package monitor

import "fmt"

// CallbackAbortError wraps the negative return code a callback used to
// abort dispatch, per CallbackFunc's contract.
type CallbackAbortError struct {
	Code int
}

func (e *CallbackAbortError) Error() string {
	return fmt.Sprintf("monitor: callback aborted dispatch with code %d", e.Code)
}
