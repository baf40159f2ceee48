package samples

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func samplePage(blocks ...string) string {
	return fmt.Sprintf(
		`<html><body><div class="problem-statement"><div class="sample-tests">%s</div></div></body></html>`,
		strings.Join(blocks, ""),
	)
}

func sampleBlock(inputs, outputs []string) string {
	var b strings.Builder
	b.WriteString(`<div class="sample-test">`)
	for _, in := range inputs {
		fmt.Fprintf(&b, `<div class="input"><div class="title">Input</div><pre>%s</pre></div>`, in)
	}
	for _, out := range outputs {
		fmt.Fprintf(&b, `<div class="output"><div class="title">Output</div><pre>%s</pre></div>`, out)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func requireInvariant(t testing.TB, tc TestCases) {
	require.Equal(t, int(tc.Count), len(tc.Tests))
	require.NotNil(t, tc.Tests)
}

func TestExtractRealPage(t *testing.T) {
	page, err := os.ReadFile(filepath.Join("testdata", "problem.html"))
	require.NoError(t, err)

	tc := Extract(string(page))
	requireInvariant(t, tc)

	expected := TestCases{
		Count: 1,
		Tests: []SingleTest{{
			Input:    "3\n2 1\n7 5",
			// the html parser drops a newline directly after <pre>
			Expected: "7\n-1\n",
		}},
	}
	if diff := cmp.Diff(expected, tc); diff != "" {
		t.Fatalf("unexpected tests (-want +got):\n%s", diff)
	}
}

func TestExtractOrder(t *testing.T) {
	page := samplePage(
		sampleBlock([]string{"in1", "in2", "in3"}, []string{"out1", "out2", "out3"}),
	)
	tc := Extract(page)
	requireInvariant(t, tc)
	require.Equal(t, []SingleTest{
		{Input: "in1", Expected: "out1"},
		{Input: "in2", Expected: "out2"},
		{Input: "in3", Expected: "out3"},
	}, tc.Tests)
}

func TestExtractAcrossBlocks(t *testing.T) {
	page := samplePage(
		sampleBlock([]string{"a"}, []string{"A"}),
		sampleBlock([]string{"b"}, []string{"B"}),
	)
	tc := Extract(page)
	requireInvariant(t, tc)
	require.Equal(t, []SingleTest{
		{Input: "a", Expected: "A"},
		{Input: "b", Expected: "B"},
	}, tc.Tests)
}

func TestExtractMismatchedCounts(t *testing.T) {
	testCases := []struct {
		name     string
		inputs   []string
		outputs  []string
		expected []SingleTest
	}{
		{
			name:    "extra output",
			inputs:  []string{"i1", "i2"},
			outputs: []string{"o1", "o2", "o3"},
			expected: []SingleTest{
				{Input: "i1", Expected: "o1"},
				{Input: "i2", Expected: "o2"},
			},
		},
		{
			name:    "extra input",
			inputs:  []string{"i1", "i2", "i3"},
			outputs: []string{"o1", "o2"},
			expected: []SingleTest{
				{Input: "i1", Expected: "o1"},
				{Input: "i2", Expected: "o2"},
			},
		},
		{
			name:     "input only",
			inputs:   []string{"i1"},
			outputs:  nil,
			expected: []SingleTest{},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			tc := Extract(samplePage(sampleBlock(test.inputs, test.outputs)))
			requireInvariant(t, tc)
			require.Equal(t, test.expected, tc.Tests)
		})
	}
}

func TestExtractPreservesWhitespace(t *testing.T) {
	page := samplePage(sampleBlock(
		[]string{"  1 2  <br/>3\t4\n"},
		[]string{"<span>x</span> <span>y</span>"},
	))
	tc := Extract(page)
	requireInvariant(t, tc)
	require.Equal(t, "  1 2  \n3\t4\n", tc.Tests[0].Input)
	require.Equal(t, "x\n \ny", tc.Tests[0].Expected)
}

func TestExtractEmpty(t *testing.T) {
	for _, page := range []string{
		"",
		"<html><body><p>statement only</p></body></html>",
		// sample-test outside the container is ignored
		`<div class="sample-test"><div class="input"><pre>1</pre></div><div class="output"><pre>1</pre></div></div>`,
		samplePage(),
	} {
		tc := Extract(page)
		requireInvariant(t, tc)
		require.Zero(t, tc.Count)

		serialized, err := tc.Marshal()
		require.NoError(t, err)
		require.JSONEq(t, `{"count":0,"tests":[]}`, string(serialized))
	}
}

func TestExtractIdempotent(t *testing.T) {
	page, err := os.ReadFile(filepath.Join("testdata", "problem.html"))
	require.NoError(t, err)

	first, err := Extract(string(page)).Marshal()
	require.NoError(t, err)
	second, err := Extract(string(page)).Marshal()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRoundTrip(t *testing.T) {
	original := New()
	original.Add(SingleTest{Input: "1\n2 3\n", Expected: "5\n"})
	original.Add(SingleTest{Input: "\"quoted\" <tag>", Expected: ""})

	serialized, err := original.Marshal()
	require.NoError(t, err)
	require.Contains(t, string(serialized), `"count":2`)
	require.Contains(t, string(serialized), `"expected":"5\n"`)

	parsed, err := Unmarshal(serialized)
	require.NoError(t, err)
	require.Equal(t, original, parsed)

	path := filepath.Join(t.TempDir(), "tests.json")
	require.NoError(t, os.WriteFile(path, serialized, 0644))
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, original, loaded)
}

func TestUnmarshalRejectsBadCount(t *testing.T) {
	_, err := Unmarshal([]byte(`{"count":3,"tests":[{"input":"1","expected":"1"}]}`))
	require.Error(t, err)

	_, err = Unmarshal([]byte(`not json`))
	require.Error(t, err)
}
