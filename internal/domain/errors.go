package domain

import "errors"

// Rejections. These never alter state and are reported back to the caller.
var (
	// ErrDuplicateCompleted indicates the task text matches an existing completed task.
	ErrDuplicateCompleted = errors.New("task already completed")

	// ErrDuplicatePending indicates the task text matches an existing pending task.
	ErrDuplicatePending = errors.New("task already pending")

	// ErrNoSelection indicates an operation was invoked with nothing to act on.
	ErrNoSelection = errors.New("no tasks selected")

	// ErrIndexOutOfRange indicates a selected position does not exist in the collection.
	ErrIndexOutOfRange = errors.New("selection index out of range")

	// ErrTaskNotFound indicates a selected task is not in the collection it was taken from.
	ErrTaskNotFound = errors.New("task not found")
)

// Validation and persistence errors.
var (
	ErrRecordNotFound      = errors.New("performance record not found")
	ErrInvalidTaskType     = errors.New("invalid task type")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrInvalidDeadline     = errors.New("invalid deadline")

	// ErrMalformedDocument indicates persisted data could not be decoded.
	ErrMalformedDocument = errors.New("malformed document")
)

// RejectionReason classifies a validation rejection.
type RejectionReason string

const (
	ReasonDuplicateCompleted RejectionReason = "DUPLICATE_COMPLETED"
	ReasonDuplicatePending   RejectionReason = "DUPLICATE_PENDING"
	ReasonNoSelection        RejectionReason = "NO_SELECTION"
	ReasonIndexOutOfRange    RejectionReason = "INDEX_OUT_OF_RANGE"
	ReasonTaskNotFound       RejectionReason = "TASK_NOT_FOUND"
)

var rejections = []struct {
	err    error
	reason RejectionReason
}{
	{ErrDuplicateCompleted, ReasonDuplicateCompleted},
	{ErrDuplicatePending, ReasonDuplicatePending},
	{ErrNoSelection, ReasonNoSelection},
	{ErrIndexOutOfRange, ReasonIndexOutOfRange},
	{ErrTaskNotFound, ReasonTaskNotFound},
}

// Rejection reports whether err is a validation rejection and, if so, its reason.
func Rejection(err error) (RejectionReason, bool) {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.reason, true
		}
	}
	return "", false
}

// IsRejection reports whether err is a validation rejection rather than a failure.
func IsRejection(err error) bool {
	_, ok := Rejection(err)
	return ok
}
