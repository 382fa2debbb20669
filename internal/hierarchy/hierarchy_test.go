package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaves_NestedChain(t *testing.T) {
	got := Leaves([]string{"1", "11", "111", "112"})

	assert.False(t, got["1"])
	assert.False(t, got["11"])
	assert.True(t, got["111"])
	assert.True(t, got["112"])
}

func TestLeaves_GapBetweenParentAndChild(t *testing.T) {
	// "12" sorts between "111" and "131"; "1" is still a parent because
	// "111" extends it, and "13" is a parent because "131" does.
	got := Leaves([]string{"1", "111", "12", "13", "131"})

	assert.False(t, got["1"])
	assert.True(t, got["111"])
	assert.True(t, got["12"])
	assert.False(t, got["13"])
	assert.True(t, got["131"])
}

func TestLeaves_NoRelations(t *testing.T) {
	got := Leaves([]string{"211", "331", "511"})

	for code, leaf := range got {
		assert.True(t, leaf, "code %s", code)
	}
}

func TestLeaves_SingleCode(t *testing.T) {
	got := Leaves([]string{"1111"})
	assert.True(t, got["1111"])
}

func TestLeaves_Empty(t *testing.T) {
	assert.Empty(t, Leaves(nil))
}

func TestLeaves_SharedDigitsNotPrefix(t *testing.T) {
	// "1311" extends "131" but "132" does not.
	got := Leaves([]string{"131", "1311", "132"})

	assert.False(t, got["131"])
	assert.True(t, got["1311"])
	assert.True(t, got["132"])
}

func TestLeafCodes_PreservesInputOrder(t *testing.T) {
	got := LeafCodes([]string{"511", "131", "1311", "111"})
	assert.Equal(t, []string{"511", "1311", "111"}, got)
}
