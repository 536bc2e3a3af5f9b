package blockchain

import (
	"fmt"

	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "blockchain")

// logs state transition related data every slot.
func logStateTransitionData(b *ethpb.BeaconBlock, r [32]byte) {
	log.WithFields(logrus.Fields{
		"slot":              b.Slot,
		"root":              fmt.Sprintf("%#x", bytesutil.Trunc(r[:])),
		"attestations":      len(b.Body.Attestations),
		"deposits":          len(b.Body.Deposits),
		"proposerSlashings": len(b.Body.ProposerSlashings),
		"attesterSlashings": len(b.Body.AttesterSlashings),
		"voluntaryExits":    len(b.Body.VoluntaryExits),
	}).Info("Finished applying state transition and inserted block")
}
