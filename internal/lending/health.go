package lending

import (
	"fmt"

	"lending/core"
	"lending/pkg/number"

	"github.com/holiman/uint256"
)

var (
	// PrecisionDecimals scale of health factors
	PrecisionDecimals uint8 = 18
	// Precision 1e18
	Precision = number.Pow10(PrecisionDecimals)
	// MinHealthFactor 1.0, positions below are unsafe
	MinHealthFactor = number.Pow10(PrecisionDecimals)
	// MaxHealthFactor sentinel of accounts without debt
	MaxHealthFactor = new(uint256.Int).SetAllOne()
	// DefaultLiquidationThreshold only 30% of collateral value counts toward borrowing power
	DefaultLiquidationThreshold uint64 = 30

	hundred = uint256.NewInt(100)
)

// ValidateThreshold liquidation threshold must be in (0, 100]
func ValidateThreshold(threshold uint64) error {
	if threshold == 0 || threshold > 100 {
		return fmt.Errorf("liquidation threshold %d out of range (0, 100]: %w", threshold, core.ErrInvalidArgument)
	}

	return nil
}

// Value value of a quantity at the given price
// value = quantity * answer / 10^decimals
func Value(quantity *uint256.Int, price *core.Price) (*uint256.Int, error) {
	v, ok := number.MulDiv(quantity, price.Answer, number.Pow10(price.Decimals))
	if !ok {
		return nil, core.ErrArithmeticOverflow
	}

	return v, nil
}

// HealthFactor health factor scaled by Precision
// health_factor = (collateral * threshold / 100) * 1e18 / borrowed
func HealthFactor(collateral, borrowed *uint256.Int, threshold uint64) (*uint256.Int, error) {
	if borrowed.IsZero() {
		return new(uint256.Int).Set(MaxHealthFactor), nil
	}

	adjusted, ok := number.MulDiv(collateral, uint256.NewInt(threshold), hundred)
	if !ok {
		return nil, core.ErrArithmeticOverflow
	}

	hf, ok := number.MulDiv(adjusted, Precision, borrowed)
	if !ok {
		return nil, core.ErrArithmeticOverflow
	}

	return hf, nil
}

// IsHealthy health factor >= 1.0
func IsHealthy(healthFactor *uint256.Int) bool {
	return !healthFactor.Lt(MinHealthFactor)
}

// IsMax health factor is the no-debt sentinel
func IsMax(healthFactor *uint256.Int) bool {
	return healthFactor.Eq(MaxHealthFactor)
}
