package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarsDeclareOnce(t *testing.T) {
	v := NewVars()

	assert.False(t, v.Has("x"))

	v.Declare("x", 5)
	assert.True(t, v.Has("x"))
	assert.Equal(t, 5, v.Value("x"))

	// Redeclaring does not overwrite the first initial value.
	v.Declare("x", 99)
	assert.Equal(t, 5, v.Value("x"))
}

func TestVarsOrderIsInsertionOrder(t *testing.T) {
	v := NewVars()
	v.Declare("b", 0)
	v.Declare("a", 0)
	v.Declare("c", 0)

	assert.Equal(t, []string{"b", "a", "c"}, v.Names())
}

func TestConstsSeededWithZero(t *testing.T) {
	c := NewConsts()
	assert.Equal(t, []int{0}, c.Values())
}

func TestConstsDedup(t *testing.T) {
	c := NewConsts()
	c.Add(3)
	c.Add(4)
	c.Add(3)

	assert.Equal(t, []int{0, 3, 4}, c.Values())
}
