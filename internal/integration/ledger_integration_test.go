package integration

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"earn_webapp/internal/campaign"
	"earn_webapp/internal/db"
	"earn_webapp/internal/domain"
	"earn_webapp/internal/logger"
	"earn_webapp/internal/postback"
	"earn_webapp/internal/repository"
	"earn_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	logger.Discard()

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := db.Migrate(context.Background(), pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

// uniqueMobile returns a fresh 10-digit mobile so reruns never collide.
func uniqueMobile() string {
	return fmt.Sprintf("9%09d", time.Now().UnixNano()%1_000_000_000)
}

func createAccount(t *testing.T, pool *pgxpool.Pool) *domain.Account {
	t.Helper()
	a := &domain.Account{UPIID: uniqueMobile() + "@ybl"}
	require.NoError(t, repository.NewAccountRepository(pool).Create(context.Background(), a))
	require.NotNil(t, a.MobileNumber, "mobile derived from upi")
	return a
}

func TestConcurrentPostbacksIncrementAtomically(t *testing.T) {
	pool := connect(t)
	ctx := context.Background()
	acct := createAccount(t, pool)

	reg, err := campaign.NewRegistry(campaign.Builtin(), repository.NewCampaignStatusRepository(pool))
	require.NoError(t, err)
	_, err = reg.SetActive(ctx, "story-tv", true)
	require.NoError(t, err)

	ledger := service.NewLedgerService(pool)
	svc := postback.NewService(reg, repository.NewAccountRepository(pool), ledger, nil, "it-secret")

	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q := url.Values{}
			q.Set("cid", "story-tv")
			q.Set("secret", "it-secret")
			q.Set("aff_click_id", *acct.MobileNumber)
			q.Set("event_name", "registration")
			_, err := svc.Process(ctx, postback.Request{Query: q})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repository.NewAccountRepository(pool).GetByID(ctx, acct.ID)
	require.NoError(t, err)
	want := decimal.NewFromInt(25 * n)
	assert.True(t, got.TotalEarnings.Equal(want), got.TotalEarnings.String())
	assert.True(t, got.AvailableBalance.Equal(want), got.AvailableBalance.String())

	sum, recorded, err := ledger.Reconcile(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(recorded))

	rows, err := repository.NewEarningRepository(pool).GetByAccountID(ctx, acct.ID, 100)
	require.NoError(t, err)
	assert.Len(t, rows, n)
	assert.Equal(t, "Trail Purchase", rows[0].EventType)
	assert.Equal(t, "story-tv", rows[0].CampaignSlug)
}

func TestLedgerWriteRollsBackForMissingAccount(t *testing.T) {
	pool := connect(t)
	ctx := context.Background()

	before, err := repository.NewEarningRepository(pool).GetRecent(ctx, 1)
	require.NoError(t, err)

	_, err = service.NewLedgerService(pool).RecordEarning(ctx, &domain.Earning{
		AccountID:      -1,
		MobileNumber:   "0000000000",
		EventType:      "App Install",
		Payment:        decimal.NewFromInt(10),
		ConversionTime: time.Now(),
		CampaignSlug:   "story-tv",
		CampaignName:   "Story TV",
	})
	require.Error(t, err)

	after, err := repository.NewEarningRepository(pool).GetRecent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after))
	if len(before) > 0 {
		assert.Equal(t, before[0].ID, after[0].ID, "no earning row left behind")
	}
}

func TestRejectWithdrawalRestoresBalance(t *testing.T) {
	pool := connect(t)
	ctx := context.Background()
	acct := createAccount(t, pool)

	// the wallet frontend debits available_balance when the request is made
	var wid int64
	err := pool.QueryRow(ctx, `
		INSERT INTO withdrawals (account_id, upi_id, amount) VALUES ($1, $2, 30) RETURNING id
	`, acct.ID, acct.UPIID).Scan(&wid)
	require.NoError(t, err)

	reg, err := campaign.NewRegistry(campaign.Builtin(), repository.NewCampaignStatusRepository(pool))
	require.NoError(t, err)
	admin := service.NewAdminService(pool, reg)

	w, err := admin.RejectWithdrawal(ctx, "it-admin", "127.0.0.1", wid, "upi id invalid")
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalStatusRejected, w.Status)
	require.NotNil(t, w.ProcessedAt)

	got, err := repository.NewAccountRepository(pool).GetByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, got.AvailableBalance.Equal(decimal.NewFromInt(30)))
	assert.True(t, got.TotalEarnings.IsZero())

	_, err = admin.ApproveWithdrawal(ctx, "it-admin", "127.0.0.1", wid, "")
	assert.ErrorIs(t, err, service.ErrWithdrawalNotPending)

	logs, err := admin.AuditLogs(ctx, domain.AuditCategoryWithdrawal, 10)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	assert.Equal(t, domain.AuditActionWithdrawReject, logs[0].Action)
	assert.Equal(t, fmt.Sprint(wid), logs[0].Subject)
}

func TestCampaignStatusOverridePersists(t *testing.T) {
	pool := connect(t)
	ctx := context.Background()
	store := repository.NewCampaignStatusRepository(pool)

	reg, err := campaign.NewRegistry(campaign.Builtin(), store)
	require.NoError(t, err)

	_, err = reg.SetActive(ctx, "story-tv", false)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = store.Set(context.Background(), "story-tv", true) })

	// a second registry over the same table sees the override
	reg2, err := campaign.NewRegistry(campaign.Builtin(), store)
	require.NoError(t, err)
	suspended, err := reg2.IsSuspended(ctx, "story-tv")
	require.NoError(t, err)
	assert.True(t, suspended)
}
