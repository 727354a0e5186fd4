package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerFailureError(t *testing.T) {
	err := NewWorkerFailure(3, []int{1, 2})

	assert.Equal(t, "worker failure: worker 3: [1 2]", err.Error())
	assert.Equal(t, "worker failure", WorkerFailureError{}.Error())

	assert.ErrorIs(t, err, WorkerFailureError{})
	assert.ErrorIs(t, fmt.Errorf("depth 4: %w", err), WorkerFailureError{})
	assert.ErrorIs(t, errors.Join(errors.New("run failed"), err), WorkerFailureError{})

	assert.NotErrorIs(t, errors.New("worker failure"), WorkerFailureError{})

	var wf WorkerFailureError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &wf))
	assert.Equal(t, 3, wf.Worker)
}
