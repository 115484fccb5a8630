package service

import (
	"context"
	"errors"

	"rentledger/internal/domain"
	"rentledger/internal/repository"
	"rentledger/internal/utils"
)

type ledgerService struct {
	store repository.Store
}

func NewLedgerService(store repository.Store) LedgerService {
	return &ledgerService{store: store}
}

func (s *ledgerService) Deposit(ctx context.Context, partyID, amountCents int64) (*domain.Account, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	var account *domain.Account
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		acct, err := st.Ledger().GetAccountForUpdate(ctx, partyID)
		if errors.Is(err, domain.ErrAccountNotFound) {
			acct = &domain.Account{PartyID: partyID}
			if err := st.Ledger().CreateAccount(ctx, acct); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		if !acct.CanReceive() {
			return domain.ErrAccountFrozen
		}

		balance, err := utils.CheckedAdd(acct.BalanceCents, amountCents)
		if err != nil {
			return err
		}
		acct.BalanceCents = balance
		if err := st.Ledger().UpdateAccount(ctx, acct); err != nil {
			return err
		}
		account = acct

		return st.Ledger().CreateEntry(ctx, &domain.LedgerEntry{
			PartyID:     partyID,
			AmountCents: amountCents,
			Type:        domain.EntryTypeDeposit,
			Description: "account deposit",
		})
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *ledgerService) GetAccount(ctx context.Context, partyID int64) (*domain.Account, error) {
	return s.store.Ledger().GetAccount(ctx, partyID)
}

func (s *ledgerService) ListEntries(ctx context.Context, partyID int64, page, pageSize int64) ([]domain.LedgerEntry, int64, error) {
	return s.store.Ledger().ListEntries(ctx, partyID, page, pageSize)
}
