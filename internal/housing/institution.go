package housing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/funds"
	"hostel-booking-backend/internal/model"
	"hostel-booking-backend/internal/store"
)

// CreateInstitution registers an institution owned by the caller, with a zero
// balance and empty fee table and memo store.
func (s *Service) CreateInstitution(ctx context.Context, caller Caller, name string) (*model.Institution, error) {
	now := s.clock.Now()
	inst := &model.Institution{
		ID:           uuid.NewString(),
		Name:         name,
		OwnerAddress: string(caller),
		Balance:      0,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		return tx.CreateInstitution(inst)
	})
	if err != nil {
		s.logAbort("create institution", err, zap.String("owner", string(caller)))
		return nil, err
	}

	s.log.Info("institution created",
		zap.String("institution_id", inst.ID),
		zap.String("owner", inst.OwnerAddress),
	)
	return inst, nil
}

// GetBalance returns the institution's collected balance. Anyone may read it.
func (s *Service) GetBalance(ctx context.Context, institutionID string) (int64, error) {
	inst, err := s.store.Institution(ctx, institutionID)
	if err != nil {
		return 0, err
	}
	return inst.Balance, nil
}

// WithdrawFunds pays amount out of the institution's balance to its owner.
func (s *Service) WithdrawFunds(ctx context.Context, caller Caller, institutionID string, amount int64) (*model.ExternalTransfer, error) {
	var payout *model.ExternalTransfer
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		inst, err := tx.LockInstitution(institutionID)
		if err != nil {
			return wrapLoad("institution", err)
		}
		if err := requireOwner(caller, inst.OwnerAddress, ErrNotInstitutionOwner); err != nil {
			return err
		}
		if amount < 0 {
			return ErrInvalidAmount
		}
		if amount > inst.Balance {
			return ErrInsufficientFunds
		}

		balance, err := funds.NewBalance(inst.Balance)
		if err != nil {
			return err
		}
		c, err := balance.Withdraw(amount)
		if err != nil {
			return ErrInsufficientFunds
		}

		now := s.clock.Now()
		payout = payTo(&c, inst.OwnerAddress, "withdrawal", inst.ID, now)
		if err := tx.AppendTransfer(payout); err != nil {
			return err
		}

		inst.Balance = balance.Value()
		inst.UpdatedAt = now
		return tx.SaveInstitution(inst)
	})
	if err != nil {
		s.logAbort("withdraw funds", err,
			zap.String("institution_id", institutionID),
			zap.Int64("amount", amount),
		)
		return nil, err
	}

	externalTransfersTotal.WithLabelValues(string(model.TransferPayout)).Inc()
	s.log.Info("funds withdrawn",
		zap.String("institution_id", institutionID),
		zap.String("transfer_id", payout.ID),
		zap.Int64("amount", payout.Amount),
	)
	return payout, nil
}
