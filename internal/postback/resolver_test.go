package postback

import (
	"context"
	"testing"

	"earn_webapp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAccount(t *testing.T) {
	accts := newMemAccounts(
		domain.Account{ID: 1, UPIID: "9876543210@ybl", MobileNumber: strPtr("9876543210")},
		domain.Account{ID: 2, UPIID: "priya@okaxis"},
		// a UPI id that looks like someone else's mobile number
		domain.Account{ID: 3, UPIID: "9123456789"},
		domain.Account{ID: 4, UPIID: "x@upi", MobileNumber: strPtr("9123456789")},
	)
	ctx := context.Background()

	tests := []struct {
		id   string
		want int64
	}{
		{"9876543210", 1},
		{"9876543210@ybl", 1},
		{"priya@okaxis", 2},
		{"9123456789", 4},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			a, err := ResolveAccount(ctx, accts, tt.id)
			require.NoError(t, err)
			require.NotNil(t, a)
			assert.Equal(t, tt.want, a.ID)
		})
	}

	a, err := ResolveAccount(ctx, accts, "PRIYA@OKAXIS")
	require.NoError(t, err)
	assert.Nil(t, a, "lookups are exact")
}
