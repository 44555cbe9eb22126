package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrNotFound      = errors.New("artifact not found")
	ErrEmptyBytecode = errors.New("artifact has no deployable bytecode")
)

// Artifact is a compiled contract: its interface description and creation code.
type Artifact struct {
	Name     string
	ABI      abi.ABI
	RawABI   json.RawMessage
	Bytecode []byte
}

// rawArtifact covers both Hardhat artifacts, where bytecode is a hex string,
// and Foundry artifacts, where it is an object with the hex under "object".
type rawArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

func parseArtifact(name string, data []byte) (Artifact, error) {
	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return Artifact{}, fmt.Errorf("failed to parse artifact %s: %w", name, err)
	}

	if raw.ContractName != "" && raw.ContractName != name {
		return Artifact{}, fmt.Errorf("artifact declares contract '%s', expected '%s'", raw.ContractName, name)
	}

	if len(raw.ABI) == 0 {
		return Artifact{}, fmt.Errorf("artifact %s has no abi", name)
	}

	parsedABI, err := abi.JSON(strings.NewReader(string(raw.ABI)))
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to parse ABI for %s: %w", name, err)
	}

	bytecodeHex, err := decodeBytecodeField(raw.Bytecode)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read bytecode for %s: %w", name, err)
	}

	bytecode := common.FromHex(bytecodeHex)
	if len(bytecode) == 0 {
		return Artifact{}, fmt.Errorf("%s: %w", name, ErrEmptyBytecode)
	}

	return Artifact{
		Name:     name,
		ABI:      parsedABI,
		RawABI:   raw.ABI,
		Bytecode: bytecode,
	}, nil
}

func decodeBytecodeField(field json.RawMessage) (string, error) {
	if len(field) == 0 || string(field) == "null" {
		return "", nil
	}

	var hex string
	if err := json.Unmarshal(field, &hex); err == nil {
		return hex, nil
	}

	var object struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(field, &object); err != nil {
		return "", err
	}

	return object.Object, nil
}
