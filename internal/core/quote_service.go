package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type quoteService struct {
	validator *Validator
	risk      *RiskCalculator
	assembler *PremiumAssembler
	quotes    QuoteRepo
	lookup    *quoteCache
	clock     func() time.Time
	log       *slog.Logger
}

// NewQuoteService wires the full pipeline: validation, premium assembly
// (memoized through calcCache), quote building and persistence. calcCache
// may be nil to disable memoization.
func NewQuoteService(quotes QuoteRepo, cfg RatingConfig, calcCache *CalcCache, log *slog.Logger) QuoteService {
	risk := NewRiskCalculator(cfg)
	return &quoteService{
		validator: NewValidator(cfg),
		risk:      risk,
		assembler: NewPremiumAssembler(risk, NewDiscountCalculator(risk), calcCache),
		quotes:    quotes,
		lookup:    newQuoteCache(),
		clock:     time.Now,
		log:       log,
	}
}

func (s *quoteService) GenerateQuote(ctx context.Context, req *QuoteRequest) (QuoteResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		s.log.WarnContext(ctx, "quote request rejected", "err", err)
		return QuoteResponse{}, err
	}

	calc := s.assembler.Assemble(req)
	quote := BuildQuote(req, calc, s.clock())

	saved, err := s.quotes.Save(ctx, quote)
	if err != nil {
		s.log.ErrorContext(ctx, "quote save failed", "quote_id", quote.ID, "err", err)
		return QuoteResponse{}, err
	}

	s.log.InfoContext(ctx, "quote generated",
		"quote_id", saved.ID,
		"final_premium", saved.FinalPremium,
		"discounts", len(saved.AppliedDiscounts))
	return toResponse(saved), nil
}

func (s *quoteService) GetQuoteByID(ctx context.Context, id string) (QuoteResponse, error) {
	if strings.TrimSpace(id) == "" {
		return QuoteResponse{}, fmt.Errorf("%w: quote id is required", ErrInvalidArgument)
	}

	if q, ok := s.lookup.get(id); ok {
		return toResponse(q), nil
	}

	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		s.log.WarnContext(ctx, "quote lookup failed", "quote_id", id, "err", err)
		return QuoteResponse{}, err
	}

	s.lookup.put(q)
	return toResponse(q), nil
}

func (s *quoteService) CalculatePremium(ctx context.Context, req *QuoteRequest) (decimal.Decimal, error) {
	if req == nil {
		return decimal.Zero, fmt.Errorf("%w: quote request is required", ErrInvalidArgument)
	}
	if err := s.validator.Validate(req); err != nil {
		s.log.WarnContext(ctx, "premium estimate rejected", "err", err)
		return decimal.Zero, err
	}
	// Estimate-only path: base premium without discounts or persistence.
	return s.risk.CalculateBasePremium(req), nil
}
