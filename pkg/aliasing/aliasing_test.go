package aliasing

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasOf_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "zero address maps to offset",
			input:    "0x0000000000000000000000000000000000000000",
			expected: "0x1111000000000000000000000000000000001111",
		},
		{
			name:     "one",
			input:    "0x0000000000000000000000000000000000000001",
			expected: "0x1111000000000000000000000000000000001112",
		},
		{
			name:     "anvil deployer contract",
			input:    "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			expected: "0x70ceb2315678afecb367f032d93f642f64181bb4",
		},
		{
			name:     "max address wraps around",
			input:    "0xffffffffffffffffffffffffffffffffffffffff",
			expected: "0x1111000000000000000000000000000000001110",
		},
		{
			name:     "carry out of the top byte is dropped",
			input:    "0xeeef000000000000000000000000000000000000",
			expected: "0x0000000000000000000000000000000000001111",
		},
		{
			name:     "wraps exactly to zero",
			input:    "0xeeeeffffffffffffffffffffffffffffffffeeef",
			expected: "0x0000000000000000000000000000000000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AliasOf(common.HexToAddress(tt.input))
			assert.Equal(t, common.HexToAddress(tt.expected), got)
		})
	}
}

func TestAliasOf_MatchesModularArithmetic(t *testing.T) {
	modulus := new(big.Int).Lsh(big.NewInt(1), 160)
	offset := new(big.Int).SetBytes(AliasOffset.Bytes())

	inputs := []common.Address{
		common.HexToAddress("0x0000000000000000000000000000000000000000"),
		common.HexToAddress("0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"),
		common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff"),
		common.HexToAddress("0xEEEEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEEF0"),
	}

	for _, in := range inputs {
		sum := new(big.Int).Add(new(big.Int).SetBytes(in.Bytes()), offset)
		wrapped := sum.Cmp(modulus) >= 0
		sum.Mod(sum, modulus)

		expected := common.BigToAddress(sum)
		require.Equal(t, expected, AliasOf(in), "input %s (wraps=%v)", in.Hex(), wrapped)
	}
}

func TestAliasOf_IsNotAnInvolution(t *testing.T) {
	a := common.HexToAddress("0x0000000000000000000000000000000000000001")

	once := AliasOf(a)
	twice := AliasOf(once)

	assert.NotEqual(t, a, once)
	assert.NotEqual(t, a, twice)
	assert.Equal(t, common.HexToAddress("0x2222000000000000000000000000000000002223"), twice)
}

func TestUndoAliasOf(t *testing.T) {
	t.Run("inverts AliasOf", func(t *testing.T) {
		for _, hex := range []string{
			"0x0000000000000000000000000000000000000000",
			"0x5FbDB2315678afecb367f032d93F642f64180aa3",
			"0xffffffffffffffffffffffffffffffffffffffff",
			"0xeeef000000000000000000000000000000000000",
		} {
			addr := common.HexToAddress(hex)
			require.Equal(t, addr, UndoAliasOf(AliasOf(addr)), hex)
		}
	})

	t.Run("borrows below zero", func(t *testing.T) {
		got := UndoAliasOf(common.HexToAddress("0x0000000000000000000000000000000000000001"))
		assert.Equal(t, common.HexToAddress("0xeeeeffffffffffffffffffffffffffffffffeef0"), got)
	})
}

func TestIsAliasOf(t *testing.T) {
	l1 := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

	assert.True(t, IsAliasOf(AliasOf(l1), l1))
	assert.False(t, IsAliasOf(l1, l1), "raw L1 address must not pass as its own alias")
	assert.False(t, IsAliasOf(AliasOf(AliasOf(l1)), l1))
}

func FuzzAliasRoundTrip(f *testing.F) {
	f.Add(make([]byte, 20))
	f.Add(common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff").Bytes())

	f.Fuzz(func(t *testing.T, b []byte) {
		if len(b) < 20 {
			return
		}
		addr := common.BytesToAddress(b[:20])

		alias := AliasOf(addr)
		require.Equal(t, addr, UndoAliasOf(alias))
		require.Equal(t, alias, AliasOf(addr), "AliasOf must be deterministic")
	})
}
