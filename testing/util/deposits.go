package util

import (
	"encoding/binary"
	"testing"

	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/container/trie"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/require"
)

// PubkeyForIndex returns a deterministic, unique public key for a validator index.
func PubkeyForIndex(i uint64) [48]byte {
	var pk [48]byte
	pk[0] = 0xaa
	binary.LittleEndian.PutUint64(pk[8:], i+1)
	return pk
}

// BLSWithdrawalCredentials returns 0x00 credentials committing to pubkey.
func BLSWithdrawalCredentials(pubkey [48]byte) [32]byte {
	creds := hash.Hash(pubkey[:])
	creds[0] = params.BeaconConfig().BLSWithdrawalPrefixByte
	return creds
}

// DeterministicDepositData returns n deposits of the maximum effective
// balance for keys [start, start+n).
func DeterministicDepositData(start, n uint64) []*ethpb.DepositData {
	data := make([]*ethpb.DepositData, n)
	for i := uint64(0); i < n; i++ {
		pk := PubkeyForIndex(start + i)
		data[i] = &ethpb.DepositData{
			PublicKey:             pk,
			WithdrawalCredentials: BLSWithdrawalCredentials(pk),
			Amount:                params.BeaconConfig().MaxEffectiveBalance,
		}
	}
	return data
}

// DepositTrie builds the deposit contract trie over data.
func DepositTrie(t testing.TB, data []*ethpb.DepositData) *trie.SparseMerkleTrie {
	leaves := make([][32]byte, len(data))
	for i, d := range data {
		root, err := d.HashTreeRoot()
		require.NoError(t, err)
		leaves[i] = root
	}
	tr, err := trie.GenerateTrieFromItems(leaves, params.BeaconConfig().DepositContractTreeDepth)
	require.NoError(t, err)
	return tr
}

// DepositsFromTrie returns the deposits [from, to) of data with their
// proofs against tr.
func DepositsFromTrie(t testing.TB, tr *trie.SparseMerkleTrie, data []*ethpb.DepositData, from, to uint64) []*ethpb.Deposit {
	deposits := make([]*ethpb.Deposit, 0, to-from)
	for i := from; i < to; i++ {
		proof, err := tr.MerkleProof(i)
		require.NoError(t, err)
		deposits = append(deposits, &ethpb.Deposit{Proof: proof, Data: data[i]})
	}
	return deposits
}

// Eth1DataForTrie returns eth1 data committing to every deposit of tr.
func Eth1DataForTrie(tr *trie.SparseMerkleTrie) *ethpb.Eth1Data {
	return &ethpb.Eth1Data{
		DepositRoot:  tr.HashTreeRoot(),
		DepositCount: tr.NumOfItems(),
	}
}
