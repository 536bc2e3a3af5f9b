package blocks

import (
	"fmt"

	"github.com/pkg/errors"
)

// Operation names reported by OperationError.
const (
	OpProposerSlashing      = "proposer slashing"
	OpAttesterSlashing      = "attester slashing"
	OpAttestation           = "attestation"
	OpDeposit               = "deposit"
	OpVoluntaryExit         = "voluntary exit"
	OpBLSToExecutionChange  = "bls to execution change"
	errBatchTooLargeMessage = "number of %ss (%d) in block body exceeds allowed threshold of %d"
)

var (
	// ErrInvariantViolated is returned when an operation stage breaks one of
	// the state properties it must preserve.
	ErrInvariantViolated = errors.New("state invariant violated")
	// ErrDuplicateInBatch is returned when two operations of one batch target the same validator.
	ErrDuplicateInBatch = errors.New("duplicate validator index in batch")
	// ErrBatchTooLarge is returned when a block carries more operations than allowed.
	ErrBatchTooLarge = errors.New("too many operations in batch")
)

// OperationError identifies the operation of a batch that failed its
// preconditions. The state returned with it reflects every operation
// before Index.
type OperationError struct {
	Operation string
	Index     int
	Err       error
}

// Error implements error.
func (e *OperationError) Error() string {
	return fmt.Sprintf("invalid %s at index %d: %v", e.Operation, e.Index, e.Err)
}

// Unwrap returns the cause.
func (e *OperationError) Unwrap() error {
	return e.Err
}
