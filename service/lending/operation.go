package lending

import (
	"errors"

	"lending/core"

	"github.com/holiman/uint256"
)

type operation struct {
	name   core.EventName
	mutate func(p *core.Position, amount *uint256.Int) error
	// needsCash amount leaves the pool
	needsCash bool
	// recheck health factor must stay >= 1.0 after the change
	recheck bool
}

var (
	depositOp = operation{
		name:   core.EventDeposit,
		mutate: (*core.Position).CreditDeposit,
	}

	withdrawOp = operation{
		name:      core.EventWithdraw,
		mutate:    (*core.Position).DebitDeposit,
		needsCash: true,
		recheck:   true,
	}

	borrowOp = operation{
		name:      core.EventBorrow,
		mutate:    (*core.Position).CreditBorrow,
		needsCash: true,
		recheck:   true,
	}

	repayOp = operation{
		name:   core.EventRepay,
		mutate: repay,
	}
)

func repay(p *core.Position, amount *uint256.Int) error {
	if err := p.DebitBorrow(amount); err != nil {
		if errors.Is(err, core.ErrInsufficientBalance) {
			return core.ErrRepayExceedsDebt
		}

		return err
	}

	return nil
}
