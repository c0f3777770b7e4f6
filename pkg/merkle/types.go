package merkle

// MerkleTree is a binary keccak256 tree over outbox send hashes, in the order
// the sends were accepted.
type MerkleTree struct {
	// Leaves contains the send hashes
	Leaves [][32]byte

	// Root is the merkle root hash
	Root [32]byte

	// levels[0] = leaves, levels[len-1] = root
	levels [][][32]byte
}

// MerkleProof proves that a send hash is included in an outbox root
type MerkleProof struct {
	// LeafIndex is the position of the send in the outbox
	LeafIndex int

	// Leaf is the send hash being proven
	Leaf [32]byte

	// Proof contains the sibling hashes from leaf to root
	Proof [][32]byte
}
