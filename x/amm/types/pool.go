package types

import (
	"fmt"
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Reserves is the last settled snapshot of a pool's balances.
type Reserves struct {
	ReserveX     uint64    `json:"reserve_x"`
	ReserveY     uint64    `json:"reserve_y"`
	LastSyncTime time.Time `json:"last_sync_time"`
}

// Get returns the reserve on one side.
func (r Reserves) Get(side Side) uint64 {
	if side == SideX {
		return r.ReserveX
	}
	return r.ReserveY
}

// IsEmpty reports whether the pool has never received liquidity.
func (r Reserves) IsEmpty() bool {
	return r.ReserveX == 0 && r.ReserveY == 0
}

// Balances are the tradable assets a pool custodies, net of skimmed fees.
type Balances struct {
	X uint64 `json:"x"`
	Y uint64 `json:"y"`
}

// Get returns the balance on one side.
func (b Balances) Get(side Side) uint64 {
	if side == SideX {
		return b.X
	}
	return b.Y
}

func (b *Balances) set(side Side, amount uint64) {
	if side == SideX {
		b.X = amount
	} else {
		b.Y = amount
	}
}

// Pool is the state of one canonical asset pair.
type Pool struct {
	Id          uint64      `json:"id"`
	Pair        Pair        `json:"pair"`
	Creator     string      `json:"creator"`
	Reserves    Reserves    `json:"reserves"`
	Balances    Balances    `json:"balances"`
	Fees        FeeParams   `json:"fees"`
	FeeBalances FeeBalances `json:"fee_balances"`
	KLast       math.Int    `json:"k_last"`
	LPSupply    uint64      `json:"lp_supply"`
}

// NewPool returns a zero-initialised pool with default fees.
func NewPool(id uint64, pair Pair, creator sdk.AccAddress) Pool {
	return Pool{
		Id:      id,
		Pair:    pair,
		Creator: creator.String(),
		Fees:    DefaultFeeParams(),
		KLast:   math.ZeroInt(),
	}
}

// LPDenom returns the denom of the pool's LP token.
func (p Pool) LPDenom() string {
	return LPDenom(p.Id)
}

// LPDenom returns the LP token denom of a pool id.
func LPDenom(poolID uint64) string {
	return LPDenomPrefix + strconv.FormatUint(poolID, 10)
}

// Deposit adds amount to the tradable balance of side.
func (p *Pool) Deposit(side Side, amount uint64) error {
	bal, err := SafeAdd(p.Balances.Get(side), amount)
	if err != nil {
		return err
	}
	p.Balances.set(side, bal)
	return nil
}

// Extract removes amount from the tradable balance of side. The side must
// stay non-empty, so amount has to be strictly below the balance.
func (p *Pool) Extract(side Side, amount uint64) error {
	bal := p.Balances.Get(side)
	if amount >= bal {
		return ErrInsufficientAmount.Wrapf("extract %d of %s from balance %d", amount, p.Pair.Denom(side), bal)
	}
	p.Balances.set(side, bal-amount)
	return nil
}

// Settle snapshots the balances into the reserves.
func (p *Pool) Settle(now time.Time) {
	p.Reserves.ReserveX = p.Balances.X
	p.Reserves.ReserveY = p.Balances.Y
	p.Reserves.LastSyncTime = now
}

// Custody returns everything held for the pool on one side: tradable
// balance plus accrued fees.
func (p Pool) Custody(side Side) (uint64, error) {
	fees, err := p.FeeBalances.Side(side)
	if err != nil {
		return 0, err
	}
	return SafeAdd(p.Balances.Get(side), fees)
}

// IsCreator reports whether addr created the pool.
func (p Pool) IsCreator(addr sdk.AccAddress) bool {
	return p.Creator == addr.String()
}

// Validate checks the stored invariants of a pool.
func (p Pool) Validate() error {
	if err := p.Pair.Validate(); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(p.Creator); err != nil {
		return fmt.Errorf("invalid creator %q: %w", p.Creator, err)
	}
	if err := p.Fees.Validate(); err != nil {
		return err
	}
	if p.Reserves.ReserveX > p.Balances.X || p.Reserves.ReserveY > p.Balances.Y {
		return fmt.Errorf("reserves %d/%d exceed balances %d/%d",
			p.Reserves.ReserveX, p.Reserves.ReserveY, p.Balances.X, p.Balances.Y)
	}
	if p.KLast.IsNil() || p.KLast.IsNegative() {
		return fmt.Errorf("k_last must be non-negative")
	}
	if p.LPSupply == 0 {
		if !p.Reserves.IsEmpty() {
			return fmt.Errorf("pool has reserves but no LP supply")
		}
	} else if p.LPSupply < MinimumLiquidity {
		return fmt.Errorf("LP supply %d below locked minimum %d", p.LPSupply, MinimumLiquidity)
	}
	if _, err := p.Custody(SideX); err != nil {
		return err
	}
	if _, err := p.Custody(SideY); err != nil {
		return err
	}
	return nil
}
