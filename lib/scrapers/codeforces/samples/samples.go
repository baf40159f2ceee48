package samples

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cfcli/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

type SingleTest struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// TestCases are the sample tests of one problem in page order.
// Count always equals len(Tests).
type TestCases struct {
	Count uint         `json:"count"`
	Tests []SingleTest `json:"tests"`
}

func New() TestCases {
	return TestCases{Tests: []SingleTest{}}
}

func (tc *TestCases) Add(test SingleTest) {
	tc.Tests = append(tc.Tests, test)
	tc.Count++
}

func (tc TestCases) Marshal() ([]byte, error) {
	if tc.Tests == nil {
		tc.Tests = []SingleTest{}
	}
	return json.Marshal(tc)
}

func Unmarshal(data []byte) (TestCases, error) {
	var tc TestCases
	err := json.Unmarshal(data, &tc)
	if err != nil {
		return TestCases{}, err
	}
	if tc.Tests == nil {
		tc.Tests = []SingleTest{}
	}
	if int(tc.Count) != len(tc.Tests) {
		return TestCases{}, fmt.Errorf("count %d does not match %d tests", tc.Count, len(tc.Tests))
	}
	return tc, nil
}

// Load reads a tests file written by the workspace writer.
func Load(path string) (TestCases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TestCases{}, err
	}
	tc, err := Unmarshal(data)
	if err != nil {
		return TestCases{}, fmt.Errorf("%s: %w", path, err)
	}
	return tc, nil
}

const (
	sampleTestSelector = ".sample-tests > .sample-test"
	inputSelector      = ".input > pre"
	outputSelector     = ".output > pre"
)

// Extract pulls every sample test out of a problem page. Inputs and
// outputs inside a block are paired by position, unpaired extras are
// dropped. A page without samples gives an empty result, never an error.
func Extract(markup string) TestCases {
	result := New()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		slog.Debug("failed to parse problem page", "err", err)
		return result
	}

	doc.Find(sampleTestSelector).Each(func(_ int, block *goquery.Selection) {
		inputs := block.Find(inputSelector)
		outputs := block.Find(outputSelector)

		n := min(inputs.Length(), outputs.Length())
		for i := 0; i < n; i++ {
			result.Add(SingleTest{
				Input:    htmlutil.JoinedText(inputs.Eq(i)),
				Expected: htmlutil.JoinedText(outputs.Eq(i)),
			})
		}
	})

	return result
}
