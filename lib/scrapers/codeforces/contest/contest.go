package contest

import (
	"context"
	"log/slog"
	"strings"

	"cfcli/lib/htmlutil"
	"cfcli/lib/identifier"
	"cfcli/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = telemetry.Tracer("cfcli.lib.scrapers.codeforces.contest")

const problemLinkSelector = "td.id a"

// Problems lists the problems of a contest index page in table order.
// The problem id is the last path segment of each link in the id column.
func Problems(ctx context.Context, markup string, c identifier.Contest) []identifier.Problem {
	ctx, span := tracer.Start(ctx, "Problems")
	defer span.End()

	problems := []identifier.Problem{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		slog.DebugContext(ctx, "failed to parse contest page", "contest", c.ContestID, "err", err)
		return problems
	}

	for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find(problemLinkSelector)) {
		id := anchor.LastSegment()
		if id == "" {
			slog.DebugContext(ctx, "skipping problem link without id", "href", anchor.Href)
			continue
		}
		problems = append(problems, identifier.Problem{
			ContestID: c.ContestID,
			ProblemID: id,
		})
	}

	span.SetAttributes(attribute.Int("problems", len(problems)))
	return problems
}
