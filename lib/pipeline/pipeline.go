package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"cfcli/lib/identifier"
	"cfcli/lib/scrapers/codeforces/contest"
	"cfcli/lib/scrapers/codeforces/samples"
	"cfcli/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = telemetry.Tracer("cfcli.lib.pipeline")
var meter = telemetry.Meter("cfcli.lib.pipeline")

var problemsParsed, _ = meter.Int64Counter("cfcli.problems.parsed")
var samplesExtracted, _ = meter.Int64Counter("cfcli.samples.extracted")

type Fetcher interface {
	FetchContest(ctx context.Context, c identifier.Contest) (string, error)
	FetchProblem(ctx context.Context, p identifier.Problem) (string, error)
}

type Writer interface {
	Write(ctx context.Context, p identifier.Problem, tests samples.TestCases) error
}

type Runner struct {
	Fetcher Fetcher
	Writer  Writer
}

func NewRunner(fetcher Fetcher, writer Writer) Runner {
	return Runner{Fetcher: fetcher, Writer: writer}
}

// Result is the outcome of one problem's pipeline.
type Result struct {
	Problem identifier.Problem
	Tests   uint
	Err     error
}

// ParseProblem fetches a problem page, extracts its samples and stages them.
func (r Runner) ParseProblem(ctx context.Context, p identifier.Problem) Result {
	ctx, span := tracer.Start(ctx, "ParseProblem")
	defer span.End()
	span.SetAttributes(attribute.String("problem", p.Key()))

	result := Result{Problem: p}

	markup, err := r.Fetcher.FetchProblem(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch problem")
		result.Err = err
		return result
	}

	tests := samples.Extract(markup)
	result.Tests = tests.Count
	samplesExtracted.Add(ctx, int64(tests.Count))

	err = r.Writer.Write(ctx, p, tests)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write problem")
		result.Err = err
		return result
	}

	problemsParsed.Add(ctx, 1, metric.WithAttributes(attribute.Int64("contest", int64(p.ContestID))))
	slog.InfoContext(ctx, "parsed problem", "problem", p.Key(), "tests", tests.Count)
	return result
}

// ParseContest runs one pipeline per problem listed on the contest page,
// all at once. A failing problem never stops its siblings; results come
// back in table order. The error is only set if the contest page itself
// could not be fetched.
func (r Runner) ParseContest(ctx context.Context, c identifier.Contest) ([]Result, error) {
	ctx, span := tracer.Start(ctx, "ParseContest")
	defer span.End()
	span.SetAttributes(attribute.Int64("contest", int64(c.ContestID)))

	markup, err := r.Fetcher.FetchContest(ctx, c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch contest")
		return nil, err
	}

	problems := contest.Problems(ctx, markup, c)
	slog.DebugContext(ctx, "expanded contest", "contest", c.ContestID, "problems", len(problems))

	results := make([]Result, len(problems))
	wg := sync.WaitGroup{}
	for i, p := range problems {
		wg.Add(1)
		go func(i int, p identifier.Problem) {
			defer wg.Done()
			results[i] = r.ParseProblem(ctx, p)
		}(i, p)
	}
	wg.Wait()

	return results, nil
}

// Parse dispatches on the kind of identifier. Per-problem failures are
// joined into the returned error, the results are always complete.
func (r Runner) Parse(ctx context.Context, cp identifier.ContestOrProblem) ([]Result, error) {
	if cp.Contest != nil {
		results, err := r.ParseContest(ctx, *cp.Contest)
		if err != nil {
			return nil, err
		}
		return results, Errors(results)
	}
	if cp.Problem != nil {
		result := r.ParseProblem(ctx, *cp.Problem)
		return []Result{result}, result.Err
	}
	return nil, fmt.Errorf("empty identifier")
}

func Errors(results []Result) error {
	var errList []error
	for _, res := range results {
		if res.Err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", res.Problem.Key(), res.Err))
		}
	}
	return errors.Join(errList...)
}
