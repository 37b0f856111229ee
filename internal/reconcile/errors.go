package reconcile

import (
	"errors"
	"fmt"

	"github.com/roach88/seriesync/internal/series"
)

// UndefinedResumePointError is returned by ResumeFrom when the identifier to
// resume after is not declared in the index.
type UndefinedResumePointError struct {
	SeriesID series.SeriesID
}

// Error implements the error interface.
func (e *UndefinedResumePointError) Error() string {
	return fmt.Sprintf("UNDEFINED_RESUME_POINT: series %q is not in the specification", string(e.SeriesID))
}

// IsUndefinedResumePoint reports whether err is an UndefinedResumePointError.
func IsUndefinedResumePoint(err error) bool {
	var ue *UndefinedResumePointError
	return errors.As(err, &ue)
}
