package housing

import (
	"time"

	"github.com/google/uuid"

	"hostel-booking-backend/internal/funds"
	"hostel-booking-backend/internal/model"
)

// depositFrom brings value in from outside for a student top-up.
func depositFrom(address string, amount int64, ref string, at time.Time) (funds.Coin, *model.ExternalTransfer, error) {
	c, err := funds.Mint(amount)
	if err != nil {
		return funds.Coin{}, nil, ErrInvalidAmount
	}
	return c, &model.ExternalTransfer{
		ID:        uuid.NewString(),
		Direction: model.TransferDeposit,
		Address:   address,
		Amount:    amount,
		Reason:    "top_up",
		Ref:       ref,
		CreatedAt: at,
	}, nil
}

// payTo is the only way value leaves the system: it destroys c and returns
// the transfer record crediting address.
func payTo(c *funds.Coin, address, reason, ref string, at time.Time) *model.ExternalTransfer {
	return &model.ExternalTransfer{
		ID:        uuid.NewString(),
		Direction: model.TransferPayout,
		Address:   address,
		Amount:    funds.Settle(c),
		Reason:    reason,
		Ref:       ref,
		CreatedAt: at,
	}
}
