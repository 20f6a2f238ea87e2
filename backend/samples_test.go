package backend

import (
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/seekchart/chart"
	"github.com/google/go-cmp/cmp"
)

func TestReadSamples(t *testing.T) {
	type testcase struct {
		name     string
		input    string
		expected []chart.Sample
		skipped  int
	}
	for _, tc := range []testcase{
		{
			name:     "header",
			input:    "distance (km), speed (km/h)\n0, 10\n0.5, 12.25\n",
			expected: []chart.Sample{{X: 0, Y: 10}, {X: 0.5, Y: 12.25}},
		},
		{
			name:     "no header",
			input:    "1,2\n3,4\n",
			expected: []chart.Sample{{X: 1, Y: 2}, {X: 3, Y: 4}},
		},
		{
			name:     "extra columns and padding",
			input:    "1,  2 , ignored\n  3,4,5,6\n",
			expected: []chart.Sample{{X: 1, Y: 2}, {X: 3, Y: 4}},
		},
		{
			name:     "malformed rows",
			input:    "x,y\n1,2\nfoo,3\n4\n5,NaN\n6,7\n",
			expected: []chart.Sample{{X: 1, Y: 2}, {X: 6, Y: 7}},
			skipped:  3,
		},
		{
			name:     "comments and blank lines",
			input:    "# recorded trace\n\n1,2\n\n3,4",
			expected: []chart.Sample{{X: 1, Y: 2}, {X: 3, Y: 4}},
		},
		{
			name:  "empty",
			input: "",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			samples, skipped, err := ReadSamples(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.expected, samples); diff != "" {
				t.Errorf("samples mismatch (-want +got):\n%s", diff)
			}
			if skipped != tc.skipped {
				t.Errorf("expected %d skipped rows, got %d", tc.skipped, skipped)
			}
		})
	}
}
