package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *GreeterNodeConfig {
	return &GreeterNodeConfig{
		Port:            8080,
		ChainID:         ChainId_NitroDevnode,
		ContractAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
	}
}

func TestGreeterNodeConfig_Validate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate())

		assert.Equal(t, ChainName_NitroDevnode, cfg.ChainName)
		assert.Equal(t, CounterpartPolicyOpen, cfg.CounterpartPolicy)
		assert.Equal(t, TransportTypeSimulated, cfg.Transport.Type)
		assert.Equal(t, PersistenceTypeMemory, cfg.Persistence.Type)
	})

	tests := []struct {
		name   string
		mutate func(c *GreeterNodeConfig)
		errMsg string
	}{
		{
			name:   "bad port",
			mutate: func(c *GreeterNodeConfig) { c.Port = 0 },
			errMsg: "port",
		},
		{
			name:   "unsupported chain",
			mutate: func(c *GreeterNodeConfig) { c.ChainID = 1 },
			errMsg: "chainId",
		},
		{
			name:   "bad contract address",
			mutate: func(c *GreeterNodeConfig) { c.ContractAddress = "nope" },
			errMsg: "contractAddress",
		},
		{
			name:   "bad initial target",
			mutate: func(c *GreeterNodeConfig) { c.InitialL1Target = "0x1234" },
			errMsg: "initialL1Target",
		},
		{
			name:   "admin policy without admin",
			mutate: func(c *GreeterNodeConfig) { c.CounterpartPolicy = CounterpartPolicyAdmin },
			errMsg: "adminAddress",
		},
		{
			name:   "unknown policy",
			mutate: func(c *GreeterNodeConfig) { c.CounterpartPolicy = "owner" },
			errMsg: "counterpartPolicy",
		},
		{
			name:   "arbsys without rpc",
			mutate: func(c *GreeterNodeConfig) { c.Transport.Type = TransportTypeArbSys },
			errMsg: "transport.rpcUrl",
		},
		{
			name: "arbsys with short key",
			mutate: func(c *GreeterNodeConfig) {
				c.Transport.Type = TransportTypeArbSys
				c.Transport.RpcUrl = "http://localhost:8547"
				c.Transport.SignerPrivateKey = "0x1234"
			},
			errMsg: "transport.signerPrivateKey",
		},
		{
			name:   "badger without data dir",
			mutate: func(c *GreeterNodeConfig) { c.Persistence.Type = PersistenceTypeBadger },
			errMsg: "persistence.dataDir",
		},
		{
			name:   "redis without address",
			mutate: func(c *GreeterNodeConfig) { c.Persistence.Type = PersistenceTypeRedis },
			errMsg: "persistence.redisAddress",
		},
		{
			name:   "unknown persistence",
			mutate: func(c *GreeterNodeConfig) { c.Persistence.Type = "postgres" },
			errMsg: "persistence.type",
		},
		{
			name:   "event channel without redis",
			mutate: func(c *GreeterNodeConfig) { c.EventChannel = "greeter-events" },
			errMsg: "persistence.redisAddress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("admin policy with admin", func(t *testing.T) {
		cfg := validConfig()
		cfg.CounterpartPolicy = CounterpartPolicyAdmin
		cfg.AdminAddress = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
		require.NoError(t, cfg.Validate())
	})

	t.Run("arbsys complete", func(t *testing.T) {
		cfg := validConfig()
		cfg.Transport.Type = TransportTypeArbSys
		cfg.Transport.RpcUrl = "http://localhost:8547"
		cfg.Transport.SignerPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
		require.NoError(t, cfg.Validate())
	})
}

func TestChainMaps(t *testing.T) {
	for id, name := range ChainIdToName {
		assert.Equal(t, id, ChainNameToId[name])
	}
	assert.Len(t, GetSupportedChainIDsStrings(), 3)
}
