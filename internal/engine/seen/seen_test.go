package seen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnounceOnce(t *testing.T) {
	r := New()
	assert.True(t, r.Announce(7))
	assert.False(t, r.Announce(7))
	assert.False(t, r.Announce(7))
	assert.True(t, r.Announce(8))
	assert.Equal(t, 2, r.Len())
}

func TestForget(t *testing.T) {
	r := New()
	r.Announce(1)
	r.Forget(1)
	assert.False(t, r.Seen(1))
	assert.True(t, r.Announce(1))
}
