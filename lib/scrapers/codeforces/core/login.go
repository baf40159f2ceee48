package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/codes"
)

var LoginFailed = errors.New("failed to login, check your handle and password")

// bfaa is a browser fingerprint the judge expects in the login form,
// any fixed value is accepted.
const bfaa = "f1b3f18c715565b589b7823cda7448ce"

var handleRegex = regexp.MustCompile(`handle = "([\s\S]+?)"`)

func getCsrf(doc *goquery.Document) (string, error) {
	token := doc.Find("span.csrf-token").First().AttrOr("data-csrf", "")
	if token == "" {
		return "", fmt.Errorf("could not find csrf token")
	}
	return token, nil
}

func getHandle(body string) (string, bool) {
	groups := handleRegex.FindStringSubmatch(body)
	if len(groups) < 2 {
		return "", false
	}
	return groups[1], true
}

func newFtaa() (string, error) {
	value, err := random.String(18)
	if err != nil {
		return "", err
	}
	return strings.ToLower(value), nil
}

// Login signs in with a handle (or email) and password, the session is kept
// in the client's cookie jar. It returns the handle reported by the judge.
func (c *Client) Login(ctx context.Context, handleOrEmail, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	body, err := c.Fetch(ctx, "/enter")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse login page")
		return "", err
	}
	csrf, err := getCsrf(doc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	ftaa, err := newFtaa()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to generate ftaa")
		return "", err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"action":        "enter",
			"ftaa":          ftaa,
			"bfaa":          bfaa,
			"handleOrEmail": handleOrEmail,
			"password":      password,
			"csrf_token":    csrf,
			"_tta":          "182",
			"remember":      "on",
		}).
		Post("/enter?back=%2F")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return "", &FetchError{URL: c.Http.BaseURL + "/enter", Err: err}
	}

	handle, ok := getHandle(res.String())
	if !ok {
		span.SetStatus(codes.Error, LoginFailed.Error())
		return "", LoginFailed
	}
	return handle, nil
}
