// Package postback turns inbound affiliate network callbacks into ledger
// entries: campaign resolution, secret check, parameter mapping, event
// classification, account lookup, ledger write and notification.
package postback

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"earn_webapp/internal/campaign"
	"earn_webapp/internal/domain"
	"earn_webapp/internal/logger"
)

// LedgerWriter persists an earning and increments the owner's totals as
// one unit. It fills e.ID and e.CreatedAt.
type LedgerWriter interface {
	RecordEarning(ctx context.Context, e *domain.Earning) (*domain.BalanceUpdate, error)
}

// Request is one inbound postback.
type Request struct {
	Query     url.Values
	RequestID string
	ClientIP  string
}

// Result describes an accepted postback.
type Result struct {
	Campaign       *domain.Campaign
	Account        *domain.Account
	Earning        *domain.Earning
	Classification Classification
	Balance        domain.BalanceUpdate
}

type Service struct {
	registry      *campaign.Registry
	accounts      AccountFinder
	ledger        LedgerWriter
	notifier      Notifier
	secret        []byte
	now           func() time.Time
	notifyTimeout time.Duration
	log           *slog.Logger
	wg            sync.WaitGroup
}

type Option func(*Service)

// WithClock overrides the processing clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifyTimeout bounds each notification attempt.
func WithNotifyTimeout(d time.Duration) Option {
	return func(s *Service) { s.notifyTimeout = d }
}

func NewService(registry *campaign.Registry, accounts AccountFinder, ledger LedgerWriter, notifier Notifier, secret string, opts ...Option) *Service {
	s := &Service{
		registry:      registry,
		accounts:      accounts,
		ledger:        ledger,
		notifier:      notifier,
		secret:        []byte(secret),
		now:           time.Now,
		notifyTimeout: 10 * time.Second,
		log:           logger.With("component", "postback"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process runs the pipeline for one postback. Any returned error is an
// *Error and guarantees that no ledger row or balance change was made.
func (s *Service) Process(ctx context.Context, req Request) (*Result, error) {
	res, err := s.process(ctx, req)
	if err != nil {
		postbackRequests.WithLabelValues(string(KindOf(err))).Inc()
		return nil, err
	}
	postbackRequests.WithLabelValues("accepted").Inc()
	return res, nil
}

func (s *Service) process(ctx context.Context, req Request) (*Result, error) {
	q := req.Query
	log := s.log.With("request_id", req.RequestID, "client_ip", req.ClientIP)

	offerID, cid := q.Get("offer_id"), q.Get("cid")
	c := s.registry.Resolve(offerID, cid)
	if c == nil {
		log.Warn("postback rejected: campaign not found", "offer_id", offerID, "cid", cid)
		return nil, newError(KindCampaignNotFound, "campaign not found", nil)
	}
	log = log.With("campaign", c.Slug)

	// the secret is global, but campaign errors take precedence
	got := q.Get("secret")
	if got == "" || subtle.ConstantTimeCompare([]byte(got), s.secret) != 1 {
		log.Warn("postback rejected: invalid secret", "secret", got)
		return nil, newError(KindUnauthorized, "invalid secret", nil)
	}

	active, err := s.registry.IsActive(ctx, c)
	if err != nil {
		log.Error("postback failed: campaign status lookup", "error", err)
		return nil, newError(KindInternal, "campaign status unavailable", err)
	}
	if !active {
		log.Warn("postback rejected: campaign suspended")
		return nil, newError(KindCampaignInactive, "campaign is not active", nil)
	}

	p := MapParams(c.Mapping, q)
	userID := strings.TrimSpace(p.UserID)
	if userID == "" || strings.TrimSpace(p.EventName) == "" {
		log.Warn("postback rejected: missing required parameters",
			"user_id_key", c.Mapping.UserID, "event_key", c.Mapping.EventName)
		return nil, newError(KindMalformed, "missing required parameters: "+c.Mapping.UserID+", "+c.Mapping.EventName, nil)
	}

	step := log.Debug
	if c.Settings.VerboseLogging {
		step = log.Info
	}
	step("postback mapped", "user_id", userID, "event_name", p.EventName, "payment", p.Payment, "sub_id", p.SubID)

	cls := Classify(p.EventName, c.Events)
	if !cls.Known {
		unknownEvents.WithLabelValues(c.Slug).Inc()
		log.Warn("unmapped event recorded with zero payout", "event_name", p.EventName)
	}

	acct, err := ResolveAccount(ctx, s.accounts, userID)
	if err != nil {
		log.Error("postback failed: account lookup", "error", err)
		return nil, newError(KindInternal, "account lookup failed", err)
	}
	if acct == nil {
		log.Warn("postback rejected: user not found", "user_id", userID)
		return nil, newError(KindUserNotFound, "user not found", nil)
	}
	if acct.IsSuspended {
		log.Warn("crediting suspended account", "account_id", acct.ID)
	}

	e := s.buildEarning(c, acct, p, cls, offerID)
	bal, err := s.ledger.RecordEarning(ctx, e)
	if err != nil {
		log.Error("postback failed: ledger write", "account_id", acct.ID, "error", err)
		return nil, newError(KindLedgerWriteFailure, "failed to record earning", err)
	}

	postbackPayout.WithLabelValues(c.Slug).Add(cls.Amount.InexactFloat64())
	log.Info("postback accepted",
		"account_id", acct.ID, "earning_id", e.ID, "event_type", e.EventType,
		"payment", e.Payment.StringFixed(2), "new_balance", bal.AvailableBalance.StringFixed(2))

	s.notifyAsync(log, s.buildNotification(c, acct, e))

	return &Result{
		Campaign:       c,
		Account:        acct,
		Earning:        e,
		Classification: cls,
		Balance:        *bal,
	}, nil
}

func (s *Service) buildEarning(c *domain.Campaign, a *domain.Account, p Canonical, cls Classification, offerID string) *domain.Earning {
	mobile := a.Mobile()
	if mobile == "" {
		mobile = strings.TrimSpace(p.UserID)
	}
	if p.OfferID != "" {
		offerID = p.OfferID
	}
	return &domain.Earning{
		AccountID:      a.ID,
		MobileNumber:   mobile,
		EventType:      cls.DisplayName,
		Payment:        cls.Amount.Round(2),
		ReportedPayout: p.Payment,
		OfferID:        offerID,
		SubID:          p.SubID,
		IPAddress:      p.IPAddress,
		ClickTime:      parseClickTime(p.Timestamp),
		ConversionTime: s.now(),
		CampaignSlug:   c.Slug,
		CampaignName:   c.Name,
	}
}

func (s *Service) buildNotification(c *domain.Campaign, a *domain.Account, e *domain.Earning) EarningNotification {
	date, clock := localize(e.ConversionTime, c.Settings.Timezone, c.Settings.DateLocale)
	return EarningNotification{
		Recipient:    a.UPIID,
		MobileNumber: e.MobileNumber,
		ChatID:       a.TelegramChatID,
		Amount:       e.Payment,
		Currency:     c.Settings.Currency,
		EventName:    e.EventType,
		CampaignName: c.Name,
		Date:         date,
		Time:         clock,
	}
}

// notifyAsync sends n without holding up the response. The ledger write
// has already committed by the time this runs.
func (s *Service) notifyAsync(log *slog.Logger, n EarningNotification) {
	if s.notifier == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				notifierFailures.Inc()
				log.Error("notifier panicked", "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyEarning(ctx, n); err != nil {
			notifierFailures.Inc()
			log.Warn("earning notification failed", "recipient", n.Recipient, "error", err)
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (s *Service) Wait() {
	s.wg.Wait()
}

// parseClickTime accepts positive epoch seconds only.
func parseClickTime(v string) *time.Time {
	if v == "" {
		return nil
	}
	secs, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || secs <= 0 {
		return nil
	}
	t := time.Unix(secs, 0).UTC()
	return &t
}
