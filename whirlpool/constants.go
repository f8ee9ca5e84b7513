package whirlpool

import (
	"github.com/krazyTry/whirlpool-go/whirlpool/shared"
)

// Re-exported rounding enum.
type Rounding = shared.Rounding

const (
	RoundingUp   = shared.RoundingUp
	RoundingDown = shared.RoundingDown
)

const (
	// SplashPoolTickSpacing marks full-range-only pools.
	SplashPoolTickSpacing uint16 = shared.SplashPoolTickSpacing

	// DefaultSlippageBps is applied when a config leaves slippage unset.
	DefaultSlippageBps uint16 = 100
)

// Account type names used for program account filters.
const (
	AccountKeyWhirlpool = "Whirlpool"
	AccountKeyPosition  = "Position"
	AccountKeyFeeTier   = "FeeTier"
	AccountKeyTickArray = "TickArray"
)
