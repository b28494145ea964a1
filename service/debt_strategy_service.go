package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"debt-planner/domain"
	"debt-planner/payoff"
	"debt-planner/repository"

	"github.com/cespare/xxhash/v2"
	log "github.com/sirupsen/logrus"
)

const compareCacheVersion = "compare:v1:"

type DebtStrategyService struct {
	normalizer *payoff.Normalizer
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	narrator   Narrator
	fallback   Narrator
	opts       payoff.Options
}

// NewDebtStrategyService wires the payoff core to its collaborators. cache
// and narrator may be nil.
func NewDebtStrategyService(
	normalizer *payoff.Normalizer,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	narrator Narrator,
	opts payoff.Options,
) *DebtStrategyService {
	if normalizer == nil {
		normalizer = payoff.NewNormalizer(nil)
	}
	fallback := FallbackNarrator{CurrencySymbol: opts.CurrencySymbol}
	if narrator == nil {
		narrator = fallback
	}
	return &DebtStrategyService{
		normalizer: normalizer,
		cache:      cache,
		cacheTTL:   cacheTTL,
		narrator:   narrator,
		fallback:   fallback,
		opts:       opts,
	}
}

// Synthesize expands terse loans into fully specified loan details.
func (s *DebtStrategyService) Synthesize(loans []domain.LoanInput) ([]domain.LoanDetail, error) {
	if len(loans) > MaxDebtsPerRequest {
		return nil, domain.NewValidationError("loans", "at most %d loans per request", MaxDebtsPerRequest)
	}
	return s.normalizer.Synthesize(loans)
}

// Plan simulates a single strategy. A cancelled ctx stops it before the
// simulation starts.
func (s *DebtStrategyService) Plan(
	ctx context.Context,
	input domain.MultiLoanInput,
	strategy string,
) (domain.StrategyResult, error) {
	parsed, err := payoff.ParseStrategy(strategy)
	if err != nil {
		return domain.StrategyResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.StrategyResult{}, err
	}
	records, err := s.prepare(input)
	if err != nil {
		return domain.StrategyResult{}, err
	}

	result, err := payoff.Run(records, input.ExtraPayment, parsed, s.opts)
	if err != nil {
		log.WithContext(ctx).WithFields(log.Fields{
			"strategy": parsed,
			"loans":    len(records),
		}).WithError(err).Warn("payoff plan failed")
		return domain.StrategyResult{}, err
	}
	return result, nil
}

// Compare runs both strategies, recommends one and explains the outcome.
// Successful results are cached by a hash of the request.
func (s *DebtStrategyService) Compare(
	ctx context.Context,
	input domain.MultiLoanInput,
) (domain.DebtPlanResult, error) {
	records, err := s.prepare(input)
	if err != nil {
		return domain.DebtPlanResult{}, err
	}

	key, keyErr := cacheKey(input)
	if keyErr != nil {
		log.WithError(keyErr).Warn("could not build cache key")
	}
	if cached, ok := s.lookup(ctx, key); ok {
		return cached, nil
	}

	comparison, err := payoff.Compare(records, input.ExtraPayment, s.opts)
	if err != nil {
		log.WithContext(ctx).WithFields(log.Fields{
			"loans":         len(records),
			"extra_payment": input.ExtraPayment.String(),
		}).WithError(err).Warn("strategy comparison failed")
		return domain.DebtPlanResult{}, err
	}

	result := domain.DebtPlanResult{
		Comparison:  comparison,
		Explanation: s.explain(ctx, comparison),
	}
	s.store(ctx, key, result)

	return result, nil
}

func (s *DebtStrategyService) prepare(input domain.MultiLoanInput) ([]domain.LoanRecord, error) {
	if len(input.Loans) > MaxDebtsPerRequest {
		return nil, domain.NewValidationError("loans", "at most %d loans per request", MaxDebtsPerRequest)
	}
	if input.ExtraPayment.IsNegative() {
		return nil, domain.NewValidationError("extra_payment", "must not be negative")
	}
	if input.ExtraPayment.GreaterThan(MaxExtraPayment) {
		return nil, domain.NewValidationError("extra_payment", "exceeds the maximum of %s", MaxExtraPayment)
	}
	for i, loan := range input.Loans {
		if loan.CurrentBalance.GreaterThan(MaxDebtAmount) {
			return nil, domain.NewValidationError(fmt.Sprintf("loans[%d].current_balance", i), "exceeds the maximum of %s", MaxDebtAmount)
		}
	}
	return s.normalizer.Normalize(input.Loans)
}

func (s *DebtStrategyService) explain(ctx context.Context, comparison domain.ComparisonResult) string {
	text, err := s.narrator.NarrateComparison(ctx, comparison)
	if err == nil && text != "" {
		return text
	}
	if err != nil {
		log.WithError(err).Warn("narration failed, using fallback")
	}
	text, _ = s.fallback.NarrateComparison(ctx, comparison)
	return text
}

func (s *DebtStrategyService) lookup(ctx context.Context, key string) (domain.DebtPlanResult, bool) {
	if s.cache == nil || key == "" {
		return domain.DebtPlanResult{}, false
	}

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("cache lookup failed")
		return domain.DebtPlanResult{}, false
	}
	if !ok {
		return domain.DebtPlanResult{}, false
	}

	var result domain.DebtPlanResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.WithError(err).WithField("key", key).Warn("discarding unreadable cache entry")
		return domain.DebtPlanResult{}, false
	}
	log.WithField("key", key).Debug("comparison served from cache")
	return result, true
}

func (s *DebtStrategyService) store(ctx context.Context, key string, result domain.DebtPlanResult) {
	if s.cache == nil || key == "" {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		log.WithError(err).Warn("could not encode comparison for cache")
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache store failed")
	}
}

func cacheKey(input domain.MultiLoanInput) (string, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return compareCacheVersion + strconv.FormatUint(xxhash.Sum64(raw), 16), nil
}
