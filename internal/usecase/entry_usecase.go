package usecase

import (
	"context"

	"github.com/iho/fundledger/internal/domain"
)

// EntryUseCase handles entry queries.
type EntryUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// GetEntriesByAccountInput represents input for listing entries.
type GetEntriesByAccountInput struct {
	AccountID string
	Page      int
	Limit     int
}

// EntryPage is one page of entries.
type EntryPage struct {
	Items []*domain.TransactionEntry
	Page  domain.PageInfo
}

// GetEntriesByAccount lists entries for an account, newest first.
func (uc *EntryUseCase) GetEntriesByAccount(ctx context.Context, input GetEntriesByAccountInput) (*EntryPage, error) {
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	page, limit, offset := domain.NormalizePage(input.Page, input.Limit)

	items, total, err := uc.entryRepo.GetByAccount(ctx, input.AccountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &EntryPage{Items: items, Page: domain.NewPageInfo(total, page, limit)}, nil
}
