package records

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoUpdateFields is returned when an appointment update carries
// neither a status nor a notes change.
var ErrNoUpdateFields = errors.New("update requires a status or notes change")

// PartialWriteError reports a fan-out that failed after some projection
// writes already succeeded. The entity is partially visible; nothing is
// rolled back. Succeeded lists the projections written before the
// failure, Failed the projection whose write returned Err; later
// projections in the fan-out sequence were not attempted.
type PartialWriteError struct {
	Op        string
	Succeeded []string
	Failed    string
	Err       error
}

func (e *PartialWriteError) Error() string {
	if len(e.Succeeded) == 0 {
		return fmt.Sprintf("%s: write to %s failed: %v", e.Op, e.Failed, e.Err)
	}
	return fmt.Sprintf("%s: write to %s failed after %s succeeded: %v",
		e.Op, e.Failed, strings.Join(e.Succeeded, ", "), e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
