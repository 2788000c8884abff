package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowList(t *testing.T) {
	list := NewAllowList(" khma ", "jihee2518", "", "khma")

	assert.Equal(t, 2, list.Len())
	assert.True(t, list.Contains("khma"))
	assert.True(t, list.Contains("jihee2518"))
	assert.False(t, list.Contains(""))
	assert.False(t, list.Contains("Khma"))
	assert.False(t, list.Contains("khma2"))
	assert.Equal(t, []string{"jihee2518", "khma"}, list.Identifiers())
}

func TestAllowList_ZeroValue(t *testing.T) {
	var list AllowList
	assert.False(t, list.Contains("anyone"))
	assert.Zero(t, list.Len())
}
