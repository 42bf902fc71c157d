package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	p := To("x")
	assert.Equal(t, "x", *p)

	q := To("x")
	assert.NotSame(t, p, q)
}
