package blockchain_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/blockchain"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/transition"
	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	"github.com/prysmaticlabs/gasper/beacon-chain/slasher"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
	"github.com/prysmaticlabs/go-bitfield"
	logTest "github.com/sirupsen/logrus/hooks/test"
)

const numValidators = 64

// setupService returns a service holding a genesis block for a small
// validator set. The reference committee is shrunk to the validator count so
// that the set can form supermajorities.
func setupService(t *testing.T, opts ...blockchain.Option) (*blockchain.Service, [32]byte) {
	params.SetupTestConfigCleanup(t)
	cfg := params.MinimalSpecConfig()
	cfg.MaxValidatorsPerCommittee = numValidators
	params.OverrideBeaconConfig(cfg)

	ctx := context.Background()
	st := util.DeterministicGenesisState(t, numValidators)
	stateRoot, err := st.HashTreeRoot(ctx)
	require.NoError(t, err)
	genesis := util.GenesisBlock(stateRoot)
	svc, err := blockchain.NewService(ctx, opts...)
	require.NoError(t, err)
	require.NoError(t, svc.InitializeGenesis(ctx, st, genesis))
	root, err := genesis.Block.HashTreeRoot()
	require.NoError(t, err)
	return svc, root
}

// blockAt builds a valid block at slot on top of parent's stored state.
func blockAt(t *testing.T, svc *blockchain.Service, parent [32]byte, slot types.Slot, atts ...*ethpb.Attestation) *ethpb.SignedBeaconBlock {
	ctx := context.Background()
	pre, ok := svc.State(parent)
	require.Equal(t, true, ok, "no state for parent")
	advanced, err := transition.ProcessSlots(ctx, pre.Copy(), slot)
	require.NoError(t, err)
	blk := util.BlockForState(t, advanced, &ethpb.BeaconBlockBody{Attestations: atts})
	stateRoot, err := transition.CalculateStateRoot(ctx, pre, blk, bls.AlwaysValid{})
	require.NoError(t, err)
	blk.Block.StateRoot = stateRoot
	return blk
}

func receive(t *testing.T, svc *blockchain.Service, parent [32]byte, slot types.Slot, atts ...*ethpb.Attestation) [32]byte {
	root, err := svc.ReceiveBlock(context.Background(), blockAt(t, svc, parent, slot, atts...))
	require.NoError(t, err)
	return root
}

func committeeAttestation(st state.ReadOnlyBeaconState, slot types.Slot, head [32]byte, target *ethpb.Checkpoint, voters uint64) *ethpb.Attestation {
	bits := bitfield.NewBitlist(numValidators)
	for i := uint64(0); i < voters; i++ {
		bits.SetBitAt(i, true)
	}
	return &ethpb.Attestation{
		AggregationBits: bits,
		Data: &ethpb.AttestationData{
			Slot:            slot,
			BeaconBlockRoot: head,
			Source:          st.CurrentJustifiedCheckpoint(),
			Target:          target,
		},
	}
}

func TestService_InitializeGenesis(t *testing.T) {
	svc, root := setupService(t)
	require.NoError(t, svc.Status())
	assert.Equal(t, root, svc.GenesisRoot())
	snap := svc.Snapshot()
	assert.Equal(t, 1, snap.BlockCount())
	genesisRoot, err := snap.GenesisRoot()
	require.NoError(t, err)
	assert.Equal(t, root, genesisRoot)

	st, ok := svc.State(root)
	require.Equal(t, true, ok)
	err = svc.InitializeGenesis(context.Background(), st, util.GenesisBlock([32]byte{}))
	assert.ErrorContains(t, "does not match state root", err)
	stateRoot, err := st.HashTreeRoot(context.Background())
	require.NoError(t, err)
	err = svc.InitializeGenesis(context.Background(), st, util.GenesisBlock(stateRoot))
	assert.ErrorContains(t, "genesis already initialized", err)
}

func TestService_NotInitialized(t *testing.T) {
	svc, err := blockchain.NewService(context.Background())
	require.NoError(t, err)
	assert.ErrorContains(t, "no genesis block", svc.Status())
	_, err = svc.ReceiveBlock(context.Background(), util.NewBeaconBlock())
	assert.ErrorContains(t, "no genesis block", err)

	_, err = blockchain.NewService(context.Background(), blockchain.WithStore(nil))
	assert.ErrorContains(t, "nil store", err)
	_, err = blockchain.NewService(context.Background(), blockchain.WithSignatureVerifier(nil))
	assert.ErrorContains(t, "nil signature verifier", err)
}

func TestService_ReceiveBlock(t *testing.T) {
	svc, genesis := setupService(t)
	ctx := context.Background()
	r1 := receive(t, svc, genesis, 1)
	r2 := receive(t, svc, r1, 4)

	snap := svc.Snapshot()
	assert.Equal(t, 3, snap.BlockCount())
	chain, err := snap.ChainRoots(r2)
	require.NoError(t, err)
	assert.DeepEqual(t, [][32]byte{r2, r1, genesis}, chain)
	st, ok := svc.State(r2)
	require.Equal(t, true, ok)
	assert.Equal(t, types.Slot(4), st.Slot())

	// Receiving the same block again changes nothing.
	again := blockAt(t, svc, r1, 4)
	root, err := svc.ReceiveBlock(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, r2, root)
	assert.Equal(t, 3, svc.Snapshot().BlockCount())
}

func TestService_ReceiveBlock_Rejected(t *testing.T) {
	hook := logTest.NewGlobal()
	svc, genesis := setupService(t)
	ctx := context.Background()

	orphan := blockAt(t, svc, genesis, 2)
	orphan.Block.ParentRoot = [32]byte{'p'}
	root, err := svc.ReceiveBlock(ctx, orphan)
	require.ErrorIs(t, err, blockchain.ErrUnknownParent)
	assert.Equal(t, true, blockchain.IsInvalidBlock(err))
	assert.Equal(t, root, blockchain.InvalidBlockRoot(err))

	bad := blockAt(t, svc, genesis, 2)
	bad.Block.StateRoot = [32]byte{'s'}
	_, err = svc.ReceiveBlock(ctx, bad)
	assert.ErrorContains(t, "could not validate state root", err)
	assert.Equal(t, true, blockchain.IsInvalidBlock(err))

	assert.Equal(t, 1, svc.Snapshot().BlockCount())
	assert.LogsContain(t, hook, "Rejected block")
	assert.Equal(t, false, blockchain.IsInvalidBlock(nil))
}

func TestService_BlockAttestationsJustify(t *testing.T) {
	svc, genesis := setupService(t)
	spe := params.BeaconConfig().SlotsPerEpoch
	r8 := receive(t, svc, genesis, spe)
	st, ok := svc.State(r8)
	require.Equal(t, true, ok)

	target := &ethpb.Checkpoint{Epoch: 1, Root: r8}
	att := committeeAttestation(st, spe, r8, target, gasper.SupermajoritySize())
	r9 := receive(t, svc, r8, spe+1, att)

	snap := svc.Snapshot()
	require.Equal(t, 1, snap.VoteCount())
	vote := snap.Votes()[0]
	assert.DeepEqual(t, &ethpb.Checkpoint{Root: genesis}, vote.Data.Source, "genesis checkpoint uses the genesis block root")
	assert.Equal(t, types.Slot(1), vote.InclusionDelay)
	header, ok := snap.Block(r9)
	require.Equal(t, true, ok)
	assert.Equal(t, header.ProposerIndex, vote.ProposerIndex)

	justified, err := snap.IsJustified(target)
	require.NoError(t, err)
	assert.Equal(t, true, justified)
	status, err := snap.Status(context.Background(), &ethpb.Checkpoint{Root: genesis})
	require.NoError(t, err)
	assert.Equal(t, gasper.OneFinalized, status)
}

func TestService_ReceiveAttestation(t *testing.T) {
	hook := logTest.NewGlobal()
	svc, genesis := setupService(t)
	ctx := context.Background()
	spe := params.BeaconConfig().SlotsPerEpoch
	r8 := receive(t, svc, genesis, spe)
	r9 := receive(t, svc, r8, spe+1)
	st, ok := svc.State(r9)
	require.Equal(t, true, ok)

	att := committeeAttestation(st, spe+1, r9, &ethpb.Checkpoint{Epoch: 1, Root: r8}, 10)
	require.NoError(t, svc.ReceiveAttestation(ctx, att))
	assert.Equal(t, 1, svc.Snapshot().VoteCount())

	bad := committeeAttestation(st, spe+1, r9, &ethpb.Checkpoint{Epoch: 1, Root: r9}, 10)
	err := svc.ReceiveAttestation(ctx, bad)
	require.ErrorIs(t, err, gasper.ErrInvalidAttestation)
	assert.Equal(t, 1, svc.Snapshot().VoteCount())
	assert.LogsContain(t, hook, "Rejected attestation")

	assert.ErrorContains(t, "nil", svc.ReceiveAttestation(ctx, nil))
}

func TestService_ReceiveAttestation_PastEpochHorizon(t *testing.T) {
	svc, genesis := setupService(t)
	ctx := context.Background()
	st, ok := svc.State(genesis)
	require.Equal(t, true, ok)

	last := ^types.Slot(0)
	target := &ethpb.Checkpoint{Epoch: types.Epoch(uint64(last) / uint64(params.BeaconConfig().SlotsPerEpoch)), Root: genesis}
	att := committeeAttestation(st, last, genesis, target, 10)
	err := svc.ReceiveAttestation(ctx, att)
	require.ErrorIs(t, err, gasper.ErrInvalidAttestation)
	assert.Equal(t, 0, svc.Snapshot().VoteCount())
}

func TestService_SlashableVotes(t *testing.T) {
	params.SetupMinimalConfig(t)
	b := util.NewStoreBuilder(t)
	svc, err := blockchain.NewService(context.Background(), blockchain.WithStore(b.Store))
	require.NoError(t, err)
	cp0 := util.Checkpoint(0, b.Genesis)
	b.Link(cp0, util.Checkpoint(1, [32]byte{'a'}), []uint64{3})
	b.Link(cp0, util.Checkpoint(1, [32]byte{'b'}), []uint64{3, 4})

	violations := svc.SlashableVotes()
	require.Equal(t, 1, len(violations))
	assert.Equal(t, uint64(3), violations[0].Validator)
	assert.Equal(t, slasher.RuleI, violations[0].Rule)
}

func TestService_Stop(t *testing.T) {
	svc, genesis := setupService(t)
	svc.Start()
	blk := blockAt(t, svc, genesis, 1)
	require.NoError(t, svc.Stop())
	_, err := svc.ReceiveBlock(context.Background(), blk)
	require.ErrorIs(t, err, context.Canceled)
}
