package client

import (
	"fmt"

	"holo_vault_analyzer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"
)

// DecodeLog decodes a HoloVaultAnalyzer event log. Indexed and non-indexed
// arguments are merged into Fields by argument name.
func DecodeLog(lg types.Log) (entity.ContractEvent, error) {
	parsed := ParsedABI()

	if len(lg.Topics) == 0 {
		return entity.ContractEvent{}, entity.ErrUnknownEvent
	}
	ev, err := parsed.EventByID(lg.Topics[0])
	if err != nil {
		return entity.ContractEvent{}, fmt.Errorf("%w: topic %s", entity.ErrUnknownEvent, lg.Topics[0].Hex())
	}

	fields := make(map[string]interface{}, len(ev.Inputs))
	if len(lg.Data) > 0 {
		if err := parsed.UnpackIntoMap(fields, ev.Name, lg.Data); err != nil {
			return entity.ContractEvent{}, fmt.Errorf("failed to unpack %s data: %w", ev.Name, err)
		}
	}

	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, lg.Topics[1:]); err != nil {
		return entity.ContractEvent{}, fmt.Errorf("failed to parse %s topics: %w", ev.Name, err)
	}

	return entity.ContractEvent{
		Name:        ev.Name,
		Address:     lg.Address,
		TxHash:      lg.TxHash,
		BlockNumber: lg.BlockNumber,
		LogIndex:    lg.Index,
		Fields:      fields,
	}, nil
}
