// Package trie implements the incremental deposit merkle trie and the
// branch verification used when processing deposits.
package trie

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
)

// SparseMerkleTrie is a fixed depth merkle trie whose unused leaves are zero.
// The root mixes in the number of inserted leaves, as the deposit contract does.
type SparseMerkleTrie struct {
	depth  uint64
	layers [][][32]byte
	count  uint64
}

// NewTrie returns an empty trie of the given depth.
func NewTrie(depth uint64) (*SparseMerkleTrie, error) {
	if depth >= 64 {
		return nil, errors.Errorf("depth %d exceeds 63", depth)
	}
	return &SparseMerkleTrie{
		depth:  depth,
		layers: make([][][32]byte, depth+1),
	}, nil
}

// GenerateTrieFromItems constructs a trie holding the given leaves in order.
func GenerateTrieFromItems(items [][32]byte, depth uint64) (*SparseMerkleTrie, error) {
	t, err := NewTrie(depth)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := t.Append(item); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Append inserts a leaf after the last inserted one.
func (m *SparseMerkleTrie) Append(leaf [32]byte) error {
	return m.Insert(leaf, m.count)
}

// Insert sets the leaf at index and updates every ancestor of it.
func (m *SparseMerkleTrie) Insert(leaf [32]byte, index uint64) error {
	if index >= uint64(1)<<m.depth {
		return errors.Errorf("index %d does not fit a trie of depth %d", index, m.depth)
	}
	for uint64(len(m.layers[0])) <= index {
		m.layers[0] = append(m.layers[0], ssz.ZeroHashes[0])
	}
	m.layers[0][index] = leaf
	if index >= m.count {
		m.count = index + 1
	}
	node := leaf
	idx := index
	for i := uint64(0); i < m.depth; i++ {
		sibling := m.nodeAt(i, idx^1)
		if idx%2 == 0 {
			node = hash.Hash(append(node[:], sibling[:]...))
		} else {
			node = hash.Hash(append(sibling[:], node[:]...))
		}
		idx /= 2
		for uint64(len(m.layers[i+1])) <= idx {
			m.layers[i+1] = append(m.layers[i+1], ssz.ZeroHashes[i+1])
		}
		m.layers[i+1][idx] = node
	}
	return nil
}

func (m *SparseMerkleTrie) nodeAt(layer, idx uint64) [32]byte {
	if idx < uint64(len(m.layers[layer])) {
		return m.layers[layer][idx]
	}
	return ssz.ZeroHashes[layer]
}

// NumOfItems returns the number of inserted leaves.
func (m *SparseMerkleTrie) NumOfItems() uint64 {
	return m.count
}

// HashTreeRoot of the trie with the leaf count mixed in.
func (m *SparseMerkleTrie) HashTreeRoot() [32]byte {
	var enc [32]byte
	binary.LittleEndian.PutUint64(enc[:], m.count)
	root := m.nodeAt(m.depth, 0)
	return hash.Hash(append(root[:], enc[:]...))
}

// MerkleProof returns the branch of the leaf at index followed by the
// mixed in leaf count, depth+1 nodes in total.
func (m *SparseMerkleTrie) MerkleProof(index uint64) ([][32]byte, error) {
	if index >= m.count {
		return nil, errors.Errorf("merkle index out of range in trie, max range: %d, received: %d", m.count, index)
	}
	proof := make([][32]byte, m.depth+1)
	idx := index
	for i := uint64(0); i < m.depth; i++ {
		proof[i] = m.nodeAt(i, idx^1)
		idx /= 2
	}
	binary.LittleEndian.PutUint64(proof[m.depth][:], m.count)
	return proof, nil
}

// Copy performs a deep copy of the trie.
func (m *SparseMerkleTrie) Copy() *SparseMerkleTrie {
	layers := make([][][32]byte, len(m.layers))
	for i, l := range m.layers {
		layers[i] = make([][32]byte, len(l))
		copy(layers[i], l)
	}
	return &SparseMerkleTrie{depth: m.depth, layers: layers, count: m.count}
}

// VerifyMerkleProofWithDepth verifies a merkle branch of depth nodes against a root.
func VerifyMerkleProofWithDepth(root, item [32]byte, merkleIndex uint64, proof [][32]byte, depth uint64) bool {
	if uint64(len(proof)) != depth {
		return false
	}
	if depth >= 64 {
		return false
	}
	node := item
	for i := uint64(0); i < depth; i++ {
		if (merkleIndex>>i)&1 == 1 {
			node = hash.Hash(append(proof[i][:], node[:]...))
		} else {
			node = hash.Hash(append(node[:], proof[i][:]...))
		}
	}
	return node == root
}
