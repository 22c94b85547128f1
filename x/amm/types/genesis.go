package types

// GenesisState is the exported state of the AMM module.
type GenesisState struct {
	// Config is nil until the protocol roles are assigned.
	Config     *GlobalConfig `json:"config,omitempty"`
	Pools      []Pool        `json:"pools"`
	NextPoolId uint64        `json:"next_pool_id"`
}

// DefaultGenesis returns an uninitialised genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Pools:      []Pool{},
		NextPoolId: 1,
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if gs.Config != nil {
		if err := gs.Config.Validate(); err != nil {
			return ErrInvalidGenesis.Wrap(err.Error())
		}
	}
	if gs.NextPoolId == 0 {
		return ErrInvalidGenesis.Wrap("next pool id must be positive")
	}

	pairs := make(map[Pair]struct{}, len(gs.Pools))
	ids := make(map[uint64]struct{}, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return ErrInvalidGenesis.Wrapf("pool %d: %v", pool.Id, err)
		}
		if pool.Id == 0 || pool.Id >= gs.NextPoolId {
			return ErrInvalidGenesis.Wrapf("pool id %d outside [1, %d)", pool.Id, gs.NextPoolId)
		}
		if _, dup := pairs[pool.Pair]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pool for pair %s", pool.Pair)
		}
		if _, dup := ids[pool.Id]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pool id %d", pool.Id)
		}
		pairs[pool.Pair] = struct{}{}
		ids[pool.Id] = struct{}{}
	}
	return nil
}
