package domain

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{name: "trims and drops empties", in: "a, b ,, c ", want: []string{"a", "b", "c"}},
		{name: "empty input", in: "", want: []string{}},
		{name: "only separators", in: ",,,", want: []string{}},
		{name: "single token", in: "Tacos", want: []string{"Tacos"}},
		{name: "preserves order", in: "z, a, m", want: []string{"z", "a", "m"}},
		{name: "inner spaces kept", in: "arroz con pollo, pan", want: []string{"arroz con pollo", "pan"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitList(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitList(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
