// Package core is the http side of the judge scrapers.
//
// read-only scrapers are stateless, the output depends solely on the input markup,
// except for the login state which is an implied input of every request made by core.Client.
//
// each scraper follows the same structure:
// 1. core fetches the page and asserts the response is usable (status, content type).
// 2. a goquery selector walks the document.
// 3. the selection is transformed into output structs, a missing element
//    degrades to an empty result instead of an error.
package core

import (
	"context"
	"fmt"
	"mime"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"cfcli/lib/identifier"
	"cfcli/lib/restyutil"
	"cfcli/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("cfcli.lib.scrapers.codeforces.core")

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
	// 0 means no timeout
	Timeout time.Duration
	// if set, every http message is dumped here
	InstrumentOutput restyutil.InstrumentOutput
	// wraps the transport with browser-like TLS settings and headers
	CloudflareBypass bool
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("invalid judge url %q", opts.BaseUrl)
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseUrl.String(), "/"))
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

func ContestPath(c identifier.Contest) string {
	return fmt.Sprintf("/contest/%d", c.ContestID)
}

func ProblemPath(p identifier.Problem) string {
	return fmt.Sprintf("/contest/%d/problem/%s", p.ContestID, url.PathEscape(p.ProblemID))
}

// FetchError covers every way getting a page can fail: the request
// itself, a non-2xx status, or a body that isn't text.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.Status, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Err.Error())
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func isTextContent(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") ||
		strings.HasSuffix(mediaType, "+xml") ||
		mediaType == "application/xhtml+xml" ||
		mediaType == "application/json"
}

// Fetch GETs `path` relative to the base url and returns the body.
func (c *Client) Fetch(ctx context.Context, path string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	link := c.Http.BaseURL + path
	span.SetAttributes(attribute.String("url", link))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", &FetchError{URL: link, Err: err}
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		err = fmt.Errorf("unexpected status %s", res.Status())
		span.SetStatus(codes.Error, err.Error())
		return "", &FetchError{URL: link, Status: res.StatusCode(), Err: err}
	}
	contentType := res.Header().Get("Content-Type")
	if !isTextContent(contentType) {
		err = fmt.Errorf("non-text content type %q", contentType)
		span.SetStatus(codes.Error, err.Error())
		return "", &FetchError{URL: link, Status: res.StatusCode(), Err: err}
	}

	return res.String(), nil
}

func (c *Client) FetchContest(ctx context.Context, contest identifier.Contest) (string, error) {
	return c.Fetch(ctx, ContestPath(contest))
}

func (c *Client) FetchProblem(ctx context.Context, problem identifier.Problem) (string, error) {
	return c.Fetch(ctx, ProblemPath(problem))
}
