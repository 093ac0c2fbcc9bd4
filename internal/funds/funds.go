package funds

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInsufficientValue = errors.New("insufficient value")
	ErrNegativeAmount    = errors.New("negative amount")
	ErrOverflow          = errors.New("amount overflows int64")
)

// Coin is a quantity of transferable value in minor units.
//
// A Coin is never copied into two places: Split, Join, Deposit and Settle all
// drain their source, so a spent coin always reads as zero.
type Coin struct {
	value int64
}

// Mint creates a coin for value arriving from outside the system.
func Mint(amount int64) (Coin, error) {
	if amount < 0 {
		return Coin{}, fmt.Errorf("mint %d: %w", amount, ErrNegativeAmount)
	}
	return Coin{value: amount}, nil
}

// Value returns the amount held by the coin.
func (c *Coin) Value() int64 { return c.value }

// IsZero reports whether the coin holds nothing.
func (c *Coin) IsZero() bool { return c.value == 0 }

// Split takes amount out of c into a new coin.
func (c *Coin) Split(amount int64) (Coin, error) {
	if amount < 0 {
		return Coin{}, fmt.Errorf("split %d: %w", amount, ErrNegativeAmount)
	}
	if amount > c.value {
		return Coin{}, fmt.Errorf("split %d of %d: %w", amount, c.value, ErrInsufficientValue)
	}
	c.value -= amount
	return Coin{value: amount}, nil
}

// Join moves all of other into c. If the sum does not fit, both coins are
// left as they were.
func (c *Coin) Join(other *Coin) error {
	if c.value > math.MaxInt64-other.value {
		return fmt.Errorf("join %d into %d: %w", other.value, c.value, ErrOverflow)
	}
	c.value += other.value
	other.value = 0
	return nil
}

// Settle destroys the coin and returns the amount it carried, for recording
// a payout to an external party.
func Settle(c *Coin) int64 {
	v := c.value
	c.value = 0
	return v
}

// Balance is a pool of value owned by an account.
type Balance struct {
	coin Coin
}

// NewBalance restores a balance from its persisted amount.
func NewBalance(amount int64) (Balance, error) {
	c, err := Mint(amount)
	if err != nil {
		return Balance{}, err
	}
	return Balance{coin: c}, nil
}

// Value returns the pooled amount.
func (b *Balance) Value() int64 { return b.coin.Value() }

// Withdraw takes amount out of the pool as a coin.
func (b *Balance) Withdraw(amount int64) (Coin, error) {
	return b.coin.Split(amount)
}

// Deposit joins c into the pool, leaving c empty.
func (b *Balance) Deposit(c *Coin) error {
	return b.coin.Join(c)
}
