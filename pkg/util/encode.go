package util

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var stringArguments = func() abi.Arguments {
	stringType, _ := abi.NewType("string", "", nil)
	return abi.Arguments{{Type: stringType}}
}()

// EncodeString ABI-encodes a single dynamic string argument
func EncodeString(str string) ([]byte, error) {
	encoded, err := stringArguments.Pack(str)
	if err != nil {
		return nil, err
	}

	return encoded, nil
}

// DecodeString reverses EncodeString
func DecodeString(data []byte) (string, error) {
	out, err := stringArguments.Unpack(data)
	if err != nil {
		return "", fmt.Errorf("failed to unpack string argument: %w", err)
	}
	if len(out) != 1 {
		return "", fmt.Errorf("expected 1 value, got %d", len(out))
	}
	str, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected type %T for string argument", out[0])
	}
	return str, nil
}
