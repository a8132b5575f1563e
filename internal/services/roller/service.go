// Package roller exposes dice rolling with tracing, metrics and coded errors.
package roller

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/MavethGH/dice-irae/internal/core/dice"
	apperrors "github.com/MavethGH/dice-irae/internal/platform/errors"
)

const instrumentationName = "github.com/MavethGH/dice-irae/internal/services/roller"

// OutcomeOK labels successful rolls in the rolls counter.
const OutcomeOK = "ok"

// Roll is one evaluated expression.
type Roll struct {
	Expr dice.Expr
	dice.Result
}

// Options configures a Service. Zero values fall back to the global
// OpenTelemetry providers and the process-wide dice source.
type Options struct {
	Tracer trace.Tracer
	Meter  metric.Meter
	Source dice.Source
	// MaxDraws bounds the dice drawn per expression. Zero selects
	// dice.DefaultMaxDraws; a negative value removes the limit.
	MaxDraws int
}

// Service rolls dice expressions against a single Source. It is safe for
// concurrent use only when its Source is.
type Service struct {
	tracer   trace.Tracer
	src      dice.Source
	maxDraws int

	rolls metric.Int64Counter
	draws metric.Int64Counter
}

// New creates a Service.
func New(opts Options) (*Service, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	meter := opts.Meter
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	src := opts.Source
	if src == nil {
		src = dice.DefaultSource()
	}
	maxDraws := opts.MaxDraws
	if maxDraws == 0 {
		maxDraws = dice.DefaultMaxDraws
	}

	rolls, err := meter.Int64Counter(
		"dice_irae.rolls",
		metric.WithDescription("Number of evaluated dice expressions"),
	)
	if err != nil {
		return nil, err
	}
	draws, err := meter.Int64Counter(
		"dice_irae.draws",
		metric.WithDescription("Number of individual dice drawn"),
	)
	if err != nil {
		return nil, err
	}

	return &Service{
		tracer:   tracer,
		src:      src,
		maxDraws: maxDraws,
		rolls:    rolls,
		draws:    draws,
	}, nil
}

// Roll parses and evaluates expression. Failures are returned as
// *apperrors.Error wrapping the underlying dice error.
func (s *Service) Roll(ctx context.Context, expression string) (Roll, error) {
	ctx, span := s.tracer.Start(ctx, "dice.roll", trace.WithAttributes(
		attribute.String("dice.expression", expression),
	))
	defer span.End()

	if strings.TrimSpace(expression) == "" {
		err := apperrors.New(apperrors.CodeExpressionEmpty, "dice expression is empty")
		s.fail(ctx, span, err)
		return Roll{}, err
	}

	tree, err := dice.Parse(expression)
	if err != nil {
		domainErr := classify(expression, err)
		s.fail(ctx, span, domainErr)
		return Roll{}, domainErr
	}
	result, err := dice.EvaluateDetailed(tree, s.src, dice.WithMaxDraws(s.maxDraws))
	if err != nil {
		domainErr := classify(expression, err)
		s.fail(ctx, span, domainErr)
		return Roll{}, domainErr
	}

	var drawn int64
	for _, roll := range result.Rolls {
		drawn += int64(len(roll.Results))
	}
	s.draws.Add(ctx, drawn)
	s.rolls.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", OutcomeOK)))
	span.SetAttributes(
		attribute.Int64("dice.total", int64(result.Total)),
		attribute.Int64("dice.draws", drawn),
	)
	return Roll{Expr: tree, Result: result}, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err *apperrors.Error) {
	s.rolls.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(err.Code))))
	span.RecordError(err)
	span.SetStatus(codes.Error, string(err.Code))
}

// classify maps a dice failure to its coded domain error.
func classify(expression string, err error) *apperrors.Error {
	metadata := map[string]string{"expression": expression}

	var parseErr *dice.ParseError
	if errors.As(err, &parseErr) {
		if len(parseErr.Diagnostics) > 0 {
			metadata["position"] = parseErr.Diagnostics[0].Pos.String()
		}
		return apperrors.WrapWithMetadata(apperrors.CodeDiceSyntax, err.Error(), metadata, err)
	}

	code := apperrors.CodeUnknown
	switch {
	case errors.Is(err, dice.ErrDivisionByZero):
		code = apperrors.CodeDiceDivisionByZero
	case errors.Is(err, dice.ErrNegativeExponent):
		code = apperrors.CodeDiceNegativeExponent
	case errors.Is(err, dice.ErrInvalidDie):
		code = apperrors.CodeDiceInvalidDie
	case errors.Is(err, dice.ErrOverflow):
		code = apperrors.CodeDiceOverflow
	case errors.Is(err, dice.ErrTooManyDice):
		code = apperrors.CodeDiceTooMany
	case errors.Is(err, dice.ErrMalformedExpression):
		code = apperrors.CodeDiceMalformed
	}
	return apperrors.WrapWithMetadata(code, err.Error(), metadata, err)
}
