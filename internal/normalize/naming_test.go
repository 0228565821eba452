package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erjac77/f5-reconciler/internal/normalize"
)

func TestSnakeToCamel(t *testing.T) {
	cases := map[string]string{
		"sub_path":            "subPath",
		"load_balancing_mode": "loadBalancingMode",
		"name":                "name",
		"allow_nat":           "allowNat",
		"":                    "",
		"already_Camelish":    "already_Camelish",
		"trailing_":           "trailing_",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.SnakeToCamel(in), "input %q", in)
	}
}

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"subPath":           "sub_path",
		"loadBalancingMode": "load_balancing_mode",
		"name":              "name",
		"":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.CamelToSnake(in), "input %q", in)
	}
}

func TestNamingRoundTrip(t *testing.T) {
	for _, name := range []string{"sub_path", "load_balancing_mode", "name", "members"} {
		assert.Equal(t, name, normalize.CamelToSnake(normalize.SnakeToCamel(name)))
	}
}

func TestToRemoteNaming(t *testing.T) {
	in := map[string]any{"load_balancing_mode": "round-robin", "description": "x"}
	out := normalize.ToRemoteNaming(in)
	assert.Equal(t, map[string]any{"loadBalancingMode": "round-robin", "description": "x"}, out)
	assert.Equal(t, map[string]any{"load_balancing_mode": "round-robin", "description": "x"}, in, "input must not be mutated")
}

func TestToCallerNaming(t *testing.T) {
	in := map[string]any{"loadBalancingMode": "round-robin", "subPath": "app1"}
	out := normalize.ToCallerNaming(in)
	assert.Equal(t, map[string]any{"load_balancing_mode": "round-robin", "sub_path": "app1"}, out)
	assert.Equal(t, in, normalize.ToRemoteNaming(out), "conversions must be mutually inverse")
}
