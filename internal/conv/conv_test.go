package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	assert.Equal(t, uint32(0), IntToUint32(0))
	assert.Equal(t, uint32(math.MaxInt32), IntToUint32(math.MaxInt32))
	assert.Panics(t, func() { IntToUint32(-1) })
}
