package log

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unkn0wn-root/jsonmapper"
)

func TestSortedKeys(t *testing.T) {
	assert.Nil(t, SortedKeys(nil))
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(jsonmapper.Fields{"c": 1, "a": 2, "b": 3}))
}
