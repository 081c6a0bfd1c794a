package utils

import (
	"testing"

	"github.com/go-home-io/device-monitor/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type withPrivate struct {
	a int
}

// Tests property comparison.
func TestPropertyEqual(t *testing.T) {
	assert.True(t, PropertyEqual(1, 1.0))
	assert.True(t, PropertyEqual("a", "a"))
	assert.True(t, PropertyEqual(map[string]interface{}{"a": 1}, map[string]interface{}{"a": 1}))
	assert.False(t, PropertyEqual(1, "1"))
	assert.False(t, PropertyEqual(nil, false))
	assert.True(t, PropertyEqual(withPrivate{a: 1}, withPrivate{a: 1}))
	assert.False(t, PropertyEqual(withPrivate{a: 1}, withPrivate{a: 2}))
}

// Tests generic conversions.
func TestConversions(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool(0.0))
	assert.False(t, ToBool(nil))
	assert.False(t, ToBool("nope"))

	f, ok := ToFloat("1.5")
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
	_, ok = ToFloat(true)
	assert.False(t, ok)

	assert.Equal(t, 4352, ToInt(4352.0))
	assert.Equal(t, 0, ToInt("x"))
	assert.Equal(t, "10", ToString(10))
	assert.Equal(t, "", ToString(nil))
}

// Tests map conversion into structures.
func TestConvertProperty(t *testing.T) {
	e := &providers.ClusterError{}
	require.NoError(t, ConvertProperty(map[string]interface{}{"type": "Error", "text": "disk"}, e))
	assert.Equal(t, "Error", e.Type)
	assert.Equal(t, "disk", e.Text)

	info := &providers.PJLinkInfo{}
	require.NoError(t, ConvertProperty(map[string]interface{}{"lampCount": 2, "lampHours": []int{10, 20, 0, 0}}, info))
	assert.Equal(t, 2, info.LampCount)
	assert.Equal(t, [4]int{10, 20, 0, 0}, info.LampHours)
}
