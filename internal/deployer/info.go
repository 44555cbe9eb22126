package deployer

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

type (
	// ContractInfo is what gets persisted after a successful deployment.
	ContractInfo struct {
		Address string          `json:"address"`
		ABI     json.RawMessage `json:"abi"`
	}

	deployment struct {
		address     common.Address
		txHash      common.Hash
		blockNumber uint64
		gasUsed     uint64
	}
)
