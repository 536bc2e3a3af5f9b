package gasper

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownRoot is returned when a query names a root the store has not seen.
	ErrUnknownRoot = errors.New("unknown block root")
	// ErrMissingParent is returned when a non-genesis block's parent is not in the store.
	ErrMissingParent = errors.New("parent block not in store")
	// ErrSlotNotDecreasing is returned when a block's slot is not greater than its parent's.
	ErrSlotNotDecreasing = errors.New("block slot not greater than parent slot")
	// ErrDuplicateGenesis is returned for a second slot 0 block.
	ErrDuplicateGenesis = errors.New("genesis block already in store")
	// ErrEpochOutOfRange is returned for queries naming an epoch past MaxEpochHorizon.
	ErrEpochOutOfRange = errors.New("epoch beyond horizon")
	// ErrInvalidAttestation is wrapped by every attestation well-formedness failure.
	ErrInvalidAttestation = errors.New("invalid attestation")

	errNilBlock       = errors.New("nil block")
	errNilAttestation = errors.New("nil attestation")
	errNilCheckpoint  = errors.New("nil checkpoint")
)

// StructuralError reports a store whose ancestry invariants do not hold
// for Root, or a query that cannot be answered because Root is not in it.
// Queries that hit one abort.
type StructuralError struct {
	Root [32]byte
	Err  error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed store at root %#x: %v", e.Root, e.Err)
}

// Unwrap returns the sentinel describing the violation.
func (e *StructuralError) Unwrap() error {
	return e.Err
}

func structural(root [32]byte, err error) error {
	return &StructuralError{Root: root, Err: err}
}
