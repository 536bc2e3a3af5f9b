package blockchain

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	"github.com/prysmaticlabs/gasper/crypto/bls"
)

// Option for the blockchain service.
type Option func(s *Service) error

// WithStore sets the store the service writes to.
func WithStore(store *gasper.Store) Option {
	return func(s *Service) error {
		if store == nil {
			return errors.New("nil store")
		}
		s.cfg.store = store
		return nil
	}
}

// WithSignatureVerifier sets the verifier used for block and operation
// signatures.
func WithSignatureVerifier(v bls.SignatureVerifier) Option {
	return func(s *Service) error {
		if v == nil {
			return errors.New("nil signature verifier")
		}
		s.cfg.verifier = v
		return nil
	}
}
