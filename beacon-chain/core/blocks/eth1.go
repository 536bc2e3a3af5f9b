package blocks

import (
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// ProcessEth1DataInBlock records the block's eth1 vote and adopts it as the
// state's eth1 data once it holds a majority of the voting period.
func ProcessEth1DataInBlock(beaconState state.BeaconState, data *ethpb.Eth1Data) (state.BeaconState, error) {
	if beaconState == nil {
		return nil, ErrNilBlock
	}
	if data == nil {
		return nil, ErrNilBlock
	}
	if err := beaconState.AppendEth1DataVotes(ethpb.CopyEth1Data(data)); err != nil {
		return nil, err
	}
	if Eth1DataHasEnoughSupport(beaconState, data) {
		if err := beaconState.SetEth1Data(ethpb.CopyEth1Data(data)); err != nil {
			return nil, err
		}
	}
	return beaconState, nil
}

// Eth1DataHasEnoughSupport returns true when more than half of the voting
// period's slots voted for data.
func Eth1DataHasEnoughSupport(beaconState state.ReadOnlyBeaconState, data *ethpb.Eth1Data) bool {
	count := uint64(0)
	for _, vote := range beaconState.Eth1DataVotes() {
		if *vote == *data {
			count++
		}
	}
	cfg := params.BeaconConfig()
	votingPeriodSlots := uint64(cfg.EpochsPerEth1VotingPeriod) * uint64(cfg.SlotsPerEpoch)
	return count*2 > votingPeriodSlots
}
