package util

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func FuzzSignerKeyDerivesSenderAddress(f *testing.F) {
	f.Add(make([]byte, 32))
	f.Add([]byte("greeter signer"))

	f.Fuzz(func(t *testing.T, seed []byte) {
		h := crypto.Keccak256(seed)
		keyStr := hex.EncodeToString(h)
		if len(seed)%2 == 0 {
			keyStr = "0x" + keyStr
		}

		pk, err := StringToECDSAPrivateKey(keyStr)
		if err != nil {
			// not every 32-byte value is a valid secp256k1 scalar
			return
		}

		addr, err := DeriveAddressFromECDSAPrivateKey(pk)
		require.NoError(t, err)
		require.Equal(t, crypto.PubkeyToAddress(pk.PublicKey), addr)

		parsed, err := ParseHexAddress(addr.Hex())
		require.NoError(t, err)
		require.Equal(t, addr, parsed)
	})
}

func FuzzParseHexAddress(f *testing.F) {
	f.Add("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	f.Add("0x1234")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		addr, err := ParseHexAddress(s)
		if err != nil {
			require.False(t, common.IsHexAddress(s))
			return
		}
		require.Equal(t, strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")), hex.EncodeToString(addr.Bytes()))
	})
}
