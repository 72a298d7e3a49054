package views

import (
	"time"

	"lending/core"
	"lending/internal/lending"
	"lending/pkg/number"

	"github.com/holiman/uint256"
)

// MaxHealthFactor display value of accounts without debt
const MaxHealthFactor = "max"

// Balance position amounts in the asset's native scale
type Balance struct {
	UserID    string `json:"user_id"`
	AssetID   string `json:"asset_id"`
	Deposited string `json:"deposited,omitempty"`
	Borrowed  string `json:"borrowed,omitempty"`
}

// Account valued account
type Account struct {
	UserID          string `json:"user_id"`
	CollateralValue string `json:"collateral_value"`
	BorrowedValue   string `json:"borrowed_value"`
	HealthFactor    string `json:"health_factor"`
	// Ratio health factor as a plain ratio, 1.5 for 1500000000000000000
	Ratio string `json:"ratio"`
	Safe  bool   `json:"safe"`
}

// Value single value
type Value struct {
	UserID string `json:"user_id"`
	Value  string `json:"value"`
}

// Health health factor view
type Health struct {
	UserID       string `json:"user_id"`
	HealthFactor string `json:"health_factor"`
	Ratio        string `json:"ratio"`
	Safe         bool   `json:"safe"`
}

// Snapshot health snapshot view
type Snapshot struct {
	UserID       string    `json:"user_id"`
	HealthFactor string    `json:"health_factor"`
	Unsafe       bool      `json:"unsafe"`
	CheckedAt    time.Time `json:"checked_at"`
}

func AccountView(info *core.AccountInfo) Account {
	return Account{
		UserID:          info.UserID,
		CollateralValue: info.CollateralValue.Dec(),
		BorrowedValue:   info.BorrowedValue.Dec(),
		HealthFactor:    info.HealthFactor.Dec(),
		Ratio:           Ratio(info.HealthFactor),
		Safe:            lending.IsHealthy(info.HealthFactor),
	}
}

func HealthView(userID string, hf *uint256.Int) Health {
	return Health{
		UserID:       userID,
		HealthFactor: hf.Dec(),
		Ratio:        Ratio(hf),
		Safe:         lending.IsHealthy(hf),
	}
}

func SnapshotView(snapshot *core.HealthSnapshot) Snapshot {
	return Snapshot{
		UserID:       snapshot.UserID,
		HealthFactor: snapshot.HealthFactor,
		Unsafe:       snapshot.Unsafe,
		CheckedAt:    snapshot.CheckedAt,
	}
}

// Ratio format a health factor as a decimal ratio
func Ratio(hf *uint256.Int) string {
	if lending.IsMax(hf) {
		return MaxHealthFactor
	}

	return number.ToDecimal(hf, lending.PrecisionDecimals).String()
}
