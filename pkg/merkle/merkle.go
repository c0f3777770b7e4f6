package merkle

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// BuildMerkleTree creates a binary merkle tree over leaves without reordering
// them; a leaf's index is its outbox position. If a level has an odd number of
// nodes, the last node is paired with itself.
func BuildMerkleTree(leaves [][32]byte) (*MerkleTree, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("cannot build merkle tree from empty leaf list")
	}

	base := make([][32]byte, len(leaves))
	copy(base, leaves)

	levels := [][][32]byte{base}
	currentLevel := base
	for len(currentLevel) > 1 {
		nextLevel := make([][32]byte, 0, (len(currentLevel)+1)/2)

		for i := 0; i < len(currentLevel); i += 2 {
			left := currentLevel[i]
			right := left
			if i+1 < len(currentLevel) {
				right = currentLevel[i+1]
			}
			nextLevel = append(nextLevel, hashPair(left, right))
		}

		levels = append(levels, nextLevel)
		currentLevel = nextLevel
	}

	return &MerkleTree{
		Leaves: base,
		Root:   currentLevel[0],
		levels: levels,
	}, nil
}

// GenerateProof creates a merkle proof for the leaf at the given index.
func (mt *MerkleTree) GenerateProof(leafIndex int) (*MerkleProof, error) {
	if leafIndex < 0 || leafIndex >= len(mt.Leaves) {
		return nil, fmt.Errorf("leaf index %d out of bounds (tree has %d leaves)", leafIndex, len(mt.Leaves))
	}

	proof := make([][32]byte, 0, len(mt.levels)-1)
	index := leafIndex

	for level := 0; level < len(mt.levels)-1; level++ {
		currentLevel := mt.levels[level]

		siblingIndex := index ^ 1
		if siblingIndex >= len(currentLevel) {
			siblingIndex = index
		}
		proof = append(proof, currentLevel[siblingIndex])
		index /= 2
	}

	return &MerkleProof{
		LeafIndex: leafIndex,
		Leaf:      mt.Leaves[leafIndex],
		Proof:     proof,
	}, nil
}

// VerifyProof recomputes the root from proof and compares it to root.
func VerifyProof(proof *MerkleProof, root [32]byte) bool {
	if proof == nil {
		return false
	}

	currentHash := proof.Leaf
	index := proof.LeafIndex

	for _, siblingHash := range proof.Proof {
		if index%2 == 0 {
			currentHash = hashPair(currentHash, siblingHash)
		} else {
			currentHash = hashPair(siblingHash, currentHash)
		}
		index /= 2
	}

	return currentHash == root
}

// HashSend computes the outbox leaf for an L2→L1 send:
// keccak256(uint256(value) ‖ destination ‖ calldata)
func HashSend(value *big.Int, destination common.Address, calldata []byte) [32]byte {
	if value == nil {
		value = new(big.Int)
	}
	return [32]byte(crypto.Keccak256Hash(common.BigToHash(value).Bytes(), destination.Bytes(), calldata))
}

func hashPair(left, right [32]byte) [32]byte {
	data := make([]byte, 64)
	copy(data[0:32], left[:])
	copy(data[32:64], right[:])

	return [32]byte(crypto.Keccak256Hash(data))
}
