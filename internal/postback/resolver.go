package postback

import (
	"context"

	"earn_webapp/internal/domain"
)

// AccountFinder looks accounts up by exact identifier. Both methods return
// (nil, nil) when nothing matches.
type AccountFinder interface {
	FindByMobile(ctx context.Context, mobile string) (*domain.Account, error)
	FindByUPI(ctx context.Context, upiID string) (*domain.Account, error)
}

// ResolveAccount finds the account a network echoed back. Networks return
// either part of the original click id, so the mobile number is tried
// first and the UPI id second.
func ResolveAccount(ctx context.Context, f AccountFinder, id string) (*domain.Account, error) {
	a, err := f.FindByMobile(ctx, id)
	if err != nil || a != nil {
		return a, err
	}
	return f.FindByUPI(ctx, id)
}
