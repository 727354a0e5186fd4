package errors

import "fmt"

const (
	errWorkerFailure = "worker failure"
)

// WorkerFailureError is returned when a task panics inside pool worker.
// Failure is not recoverable: the benchmark run it belongs to is aborted.
// Any WorkerFailureError matches errors.Is(err, WorkerFailureError{}).
type WorkerFailureError struct {
	Cause  string
	Worker int
}

func NewWorkerFailure(worker int, recovered any) WorkerFailureError {
	return WorkerFailureError{
		Worker: worker,
		Cause:  fmt.Sprint(recovered),
	}
}

func (e WorkerFailureError) Error() string {
	if e.Cause == "" {
		return errWorkerFailure
	}
	return fmt.Sprintf("%s: worker %d: %s", errWorkerFailure, e.Worker, e.Cause)
}

func (e WorkerFailureError) Is(target error) bool {
	_, ok := target.(WorkerFailureError)
	return ok
}
