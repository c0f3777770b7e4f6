package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for Greeter node configuration
const (
	EnvGreeterPort               = "GREETER_PORT"
	EnvGreeterChainID            = "GREETER_CHAIN_ID"
	EnvGreeterRPCURL             = "GREETER_RPC_URL"
	EnvGreeterContractAddress    = "GREETER_CONTRACT_ADDRESS"
	EnvGreeterInitialL1Target    = "GREETER_INITIAL_L1_TARGET"
	EnvGreeterCounterpartPolicy  = "GREETER_COUNTERPART_POLICY"
	EnvGreeterAdminAddress       = "GREETER_ADMIN_ADDRESS"
	EnvGreeterTransportType      = "GREETER_TRANSPORT_TYPE"
	EnvGreeterSignerPrivateKey   = "GREETER_SIGNER_PRIVATE_KEY"
	EnvGreeterOutboxMaxPayload   = "GREETER_OUTBOX_MAX_PAYLOAD_BYTES"
	EnvGreeterOutboxRate         = "GREETER_OUTBOX_RATE_PER_SECOND"
	EnvGreeterOutboxBurst        = "GREETER_OUTBOX_BURST"
	EnvGreeterPersistenceType    = "GREETER_PERSISTENCE_TYPE"
	EnvGreeterPersistenceDataDir = "GREETER_PERSISTENCE_DATA_DIR"
	EnvGreeterRedisAddress       = "GREETER_REDIS_ADDRESS"
	EnvGreeterRedisPassword      = "GREETER_REDIS_PASSWORD"
	EnvGreeterRedisDB            = "GREETER_REDIS_DB"
	EnvGreeterRedisKeyPrefix     = "GREETER_REDIS_KEY_PREFIX"
	EnvGreeterEventChannel       = "GREETER_EVENT_CHANNEL"
	EnvGreeterDebug              = "GREETER_DEBUG"
)

type ChainId uint

const (
	ChainId_ArbitrumOne     ChainId = 42161
	ChainId_ArbitrumSepolia ChainId = 421614
	ChainId_NitroDevnode    ChainId = 412346
)

type ChainName string

const (
	ChainName_ArbitrumOne     ChainName = "arbitrum-one"
	ChainName_ArbitrumSepolia ChainName = "arbitrum-sepolia"
	ChainName_NitroDevnode    ChainName = "nitro-devnode"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_ArbitrumOne:     ChainName_ArbitrumOne,
	ChainId_ArbitrumSepolia: ChainName_ArbitrumSepolia,
	ChainId_NitroDevnode:    ChainName_NitroDevnode,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_ArbitrumOne:     ChainId_ArbitrumOne,
	ChainName_ArbitrumSepolia: ChainId_ArbitrumSepolia,
	ChainName_NitroDevnode:    ChainId_NitroDevnode,
}

// ArbSysAddress is the nitro system precompile that accepts L2→L1 messages.
// It lives at the same address on every Arbitrum chain.
var ArbSysAddress = common.HexToAddress("0x0000000000000000000000000000000000000064")

type CounterpartPolicy string

const (
	// CounterpartPolicyOpen lets any caller update the L1 target.
	CounterpartPolicyOpen CounterpartPolicy = "open"
	// CounterpartPolicyAdmin restricts updates to AdminAddress.
	CounterpartPolicyAdmin CounterpartPolicy = "admin"
)

type TransportType string

const (
	TransportTypeSimulated TransportType = "simulated"
	TransportTypeArbSys    TransportType = "arbsys"
)

type PersistenceType string

const (
	PersistenceTypeMemory PersistenceType = "memory"
	PersistenceTypeBadger PersistenceType = "badger"
	PersistenceTypeRedis  PersistenceType = "redis"
)

type PersistenceConfig struct {
	Type    PersistenceType `json:"type"`
	DataDir string          `json:"data_dir,omitempty"`

	RedisAddress   string `json:"redis_address,omitempty"`
	RedisPassword  string `json:"-"`
	RedisDB        int    `json:"redis_db,omitempty"`
	RedisKeyPrefix string `json:"redis_key_prefix,omitempty"`
}

type TransportConfig struct {
	Type TransportType `json:"type"`

	// Simulated outbox limits
	MaxPayloadBytes int     `json:"max_payload_bytes,omitempty"`
	RatePerSecond   float64 `json:"rate_per_second,omitempty"`
	Burst           int     `json:"burst,omitempty"`

	// ArbSys transport
	RpcUrl           string `json:"rpc_url,omitempty"`
	SignerPrivateKey string `json:"-"`
}

// GreeterNodeConfig represents the complete configuration for a greeter node
type GreeterNodeConfig struct {
	Port int `json:"port"`

	ChainID   ChainId   `json:"chain_id"`
	ChainName ChainName `json:"chain_name"`

	// ContractAddress is the address this greeter instance is deployed at. It
	// is the emitter of CrossLayerMessageCreated logs.
	ContractAddress string `json:"contract_address"`

	// InitialL1Target seeds the counterpart on first start. Empty means the
	// zero address.
	InitialL1Target string `json:"initial_l1_target,omitempty"`

	CounterpartPolicy CounterpartPolicy `json:"counterpart_policy"`
	AdminAddress      string            `json:"admin_address,omitempty"`

	// EventChannel is the redis pub/sub channel for emitted events. Empty
	// disables publishing.
	EventChannel string `json:"event_channel,omitempty"`

	Transport   TransportConfig   `json:"transport"`
	Persistence PersistenceConfig `json:"persistence"`

	Debug bool `json:"debug"`
}

// Validate validates the greeter node configuration and fills derived fields
func (c *GreeterNodeConfig) Validate() error {
	var allErrors field.ErrorList

	if c.Port < 1 || c.Port > 65535 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("port"), c.Port, "must be between 1-65535"))
	}

	chainName, exists := ChainIdToName[c.ChainID]
	if !exists {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("chainId"), c.ChainID, GetSupportedChainIDsStrings()))
	} else {
		c.ChainName = chainName
	}

	if !common.IsHexAddress(c.ContractAddress) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("contractAddress"), c.ContractAddress, "must be a hex address"))
	}
	if c.InitialL1Target != "" && !common.IsHexAddress(c.InitialL1Target) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("initialL1Target"), c.InitialL1Target, "must be a hex address"))
	}

	switch c.CounterpartPolicy {
	case "":
		c.CounterpartPolicy = CounterpartPolicyOpen
	case CounterpartPolicyOpen:
	case CounterpartPolicyAdmin:
		if !common.IsHexAddress(c.AdminAddress) {
			allErrors = append(allErrors, field.Required(field.NewPath("adminAddress"), "adminAddress is required for the admin counterpart policy"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(field.NewPath("counterpartPolicy"), c.CounterpartPolicy, []string{
			string(CounterpartPolicyOpen), string(CounterpartPolicyAdmin),
		}))
	}

	if c.EventChannel != "" && c.Persistence.RedisAddress == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("persistence", "redisAddress"), "redisAddress is required to publish events"))
	}

	allErrors = append(allErrors, c.Transport.validate(field.NewPath("transport"))...)
	allErrors = append(allErrors, c.Persistence.validate(field.NewPath("persistence"))...)

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

func (tc *TransportConfig) validate(path *field.Path) field.ErrorList {
	var allErrors field.ErrorList

	switch tc.Type {
	case "":
		tc.Type = TransportTypeSimulated
	case TransportTypeSimulated:
	case TransportTypeArbSys:
		if tc.RpcUrl == "" {
			allErrors = append(allErrors, field.Required(path.Child("rpcUrl"), "rpcUrl is required for the arbsys transport"))
		}
		if tc.SignerPrivateKey == "" {
			allErrors = append(allErrors, field.Required(path.Child("signerPrivateKey"), "signerPrivateKey is required for the arbsys transport"))
		} else if len(strings.TrimPrefix(tc.SignerPrivateKey, "0x")) != 64 {
			allErrors = append(allErrors, field.Invalid(path.Child("signerPrivateKey"), "<redacted>", "must be 32 bytes (64 hex chars)"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(path.Child("type"), tc.Type, []string{
			string(TransportTypeSimulated), string(TransportTypeArbSys),
		}))
	}

	if tc.MaxPayloadBytes < 0 {
		allErrors = append(allErrors, field.Invalid(path.Child("maxPayloadBytes"), tc.MaxPayloadBytes, "must not be negative"))
	}
	if tc.RatePerSecond < 0 {
		allErrors = append(allErrors, field.Invalid(path.Child("ratePerSecond"), tc.RatePerSecond, "must not be negative"))
	}
	return allErrors
}

func (pc *PersistenceConfig) validate(path *field.Path) field.ErrorList {
	var allErrors field.ErrorList

	switch pc.Type {
	case "":
		pc.Type = PersistenceTypeMemory
	case PersistenceTypeMemory:
	case PersistenceTypeBadger:
		if pc.DataDir == "" {
			allErrors = append(allErrors, field.Required(path.Child("dataDir"), "dataDir is required for badger persistence"))
		}
	case PersistenceTypeRedis:
		if pc.RedisAddress == "" {
			allErrors = append(allErrors, field.Required(path.Child("redisAddress"), "redisAddress is required for redis persistence"))
		}
		if pc.RedisDB < 0 {
			allErrors = append(allErrors, field.Invalid(path.Child("redisDb"), pc.RedisDB, "must not be negative"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(path.Child("type"), pc.Type, []string{
			string(PersistenceTypeMemory), string(PersistenceTypeBadger), string(PersistenceTypeRedis),
		}))
	}
	return allErrors
}

// GetSupportedChainIDs returns all supported chain IDs
func GetSupportedChainIDs() []ChainId {
	return []ChainId{
		ChainId_ArbitrumOne,
		ChainId_ArbitrumSepolia,
		ChainId_NitroDevnode,
	}
}

func GetSupportedChainIDsStrings() []string {
	ids := GetSupportedChainIDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprintf("%d", id))
	}
	return out
}

// GetSupportedChainIDsString returns supported chain IDs as strings for CLI help
func GetSupportedChainIDsString() string {
	return fmt.Sprintf("%d (arbitrum one), %d (arbitrum sepolia), %d (nitro devnode)",
		ChainId_ArbitrumOne, ChainId_ArbitrumSepolia, ChainId_NitroDevnode)
}
