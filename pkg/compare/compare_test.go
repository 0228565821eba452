package compare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erjac77/f5-reconciler/pkg/compare"
)

func TestLooseEqual(t *testing.T) {
	t.Run("numbers compare across representations", func(t *testing.T) {
		assert.True(t, compare.LooseEqual(443, "443"))
		assert.True(t, compare.LooseEqual("1.5", 1.5))
		assert.True(t, compare.LooseEqual(int64(10), uint(10)))
		assert.False(t, compare.LooseEqual(443, "8443"))
	})

	t.Run("bools compare across representations", func(t *testing.T) {
		assert.True(t, compare.LooseEqual(true, "true"))
		assert.True(t, compare.LooseEqual("false", false))
		assert.False(t, compare.LooseEqual(true, "false"))
	})

	t.Run("strings compare directly", func(t *testing.T) {
		assert.True(t, compare.LooseEqual("round-robin", "round-robin"))
		assert.False(t, compare.LooseEqual("round-robin", "ratio-member"))
	})

	t.Run("nil handling", func(t *testing.T) {
		assert.True(t, compare.LooseEqual(nil, nil))
		assert.False(t, compare.LooseEqual(nil, "x"))
		assert.False(t, compare.LooseEqual(0, nil))
	})

	t.Run("pointers compare by the value they point at", func(t *testing.T) {
		port := 443
		name := "web_pool"
		assert.True(t, compare.LooseEqual(&port, "443"))
		assert.True(t, compare.LooseEqual(&name, "web_pool"))
		assert.False(t, compare.LooseEqual(&port, "8443"))
	})

	t.Run("structured values tolerate nil vs empty", func(t *testing.T) {
		assert.True(t, compare.LooseEqual(map[string]any{}, map[string]any(nil)))
		assert.True(t, compare.LooseEqual(map[string]any{"a": 1}, map[string]any{"a": 1}))
		assert.False(t, compare.LooseEqual(map[string]any{"a": 1}, map[string]any{"a": 2}))
	})
}

func TestUnionDifference(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, compare.Union([]string{"b", "a"}, []string{"c", "a"}))
	assert.Equal(t, []string{}, compare.Union(nil, nil))

	assert.Equal(t, []string{"a"}, compare.Difference([]string{"a", "b"}, []string{"b", "z"}))
	assert.Equal(t, []string{}, compare.Difference([]string{"a"}, []string{"a"}))
}
