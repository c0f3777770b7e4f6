// Package aliasing implements the L1→L2 sender address transform applied by
// the Arbitrum bridge to any L1 contract that calls into L2.
//
// When an L1 address X sends a retryable ticket, the resulting L2 transaction
// reports msg.sender as (X + AliasOffset) mod 2^160. Contracts on L2 compare the
// caller against the alias of their registered counterpart rather than the
// counterpart itself.
package aliasing

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// AliasOffset is the protocol constant shared by both layers. Any other value
// makes every authorization check fail.
var AliasOffset = common.HexToAddress("0x1111000000000000000000000000000000001111")

var (
	offsetWord  = new(uint256.Int).SetBytes20(AliasOffset.Bytes())
	addressMask = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 160), uint256.NewInt(1))
)

// AliasOf returns the address the bridge presents as sender when addr calls
// across the layer boundary. Overflow wraps modulo 2^160.
func AliasOf(addr common.Address) common.Address {
	word := new(uint256.Int).SetBytes20(addr.Bytes())
	word.Add(word, offsetWord)
	word.And(word, addressMask)
	return common.Address(word.Bytes20())
}

// UndoAliasOf recovers the L1 address from an aliased L2 sender.
func UndoAliasOf(alias common.Address) common.Address {
	word := new(uint256.Int).SetBytes20(alias.Bytes())
	word.Sub(word, offsetWord)
	word.And(word, addressMask)
	return common.Address(word.Bytes20())
}

// IsAliasOf reports whether caller is exactly the alias of l1Address.
func IsAliasOf(caller common.Address, l1Address common.Address) bool {
	return caller == AliasOf(l1Address)
}
