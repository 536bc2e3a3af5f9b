package blockchain

import "github.com/pkg/errors"

var (
	// ErrUnknownParent is returned for a block whose parent has no stored post-state.
	ErrUnknownParent = invalidBlock{error: errors.New("parent block not processed")}
	// errNotInitialized is returned when a block or attestation arrives before genesis.
	errNotInitialized = errors.New("blockchain service has no genesis block")
	// errAlreadyInitialized is returned when a second genesis is offered.
	errAlreadyInitialized = errors.New("genesis already initialized")
	// errNilState is returned for a nil genesis state.
	errNilState = errors.New("nil state")
)

// An invalid block is one that fails the state transition or cannot be
// placed in the store.
type invalidBlock struct {
	error
	root [32]byte
}

type invalidBlockError interface {
	Error() string
	BlockRoot() [32]byte
}

// BlockRoot returns the invalid block root.
func (e invalidBlock) BlockRoot() [32]byte {
	return e.root
}

func (e invalidBlock) Unwrap() error {
	return e.error
}

// IsInvalidBlock returns true if the error has `invalidBlock`.
func IsInvalidBlock(e error) bool {
	if e == nil {
		return false
	}
	var d invalidBlockError
	return errors.As(e, &d)
}

// InvalidBlockRoot returns the invalid block root. If the error doesn't
// have an invalid block root, then an empty root is returned.
func InvalidBlockRoot(e error) [32]byte {
	if e == nil {
		return [32]byte{}
	}
	var d invalidBlockError
	if !errors.As(e, &d) {
		return [32]byte{}
	}
	return d.BlockRoot()
}
