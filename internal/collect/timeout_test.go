package collect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sohia/remote-work-tracker/internal/fetch"
)

func TestNewRemotive_Timeout(t *testing.T) {
	c := NewRemotive(DefaultRemotiveBaseURL, 0, 0, 5*time.Second)
	assert.Equal(t, 5*time.Second, c.client.GetClient().Timeout)
}

func TestNewRemotive_DefaultTimeout(t *testing.T) {
	c := NewRemotive(DefaultRemotiveBaseURL, 0, 0, 0)
	assert.Equal(t, fetch.DefaultTimeout, c.client.GetClient().Timeout)
}

func TestNewWeWorkRemotely_Timeout(t *testing.T) {
	c := NewWeWorkRemotely(DefaultWeWorkRemotelyBaseURL, 1, 0, 5*time.Second, false)
	assert.Equal(t, 5*time.Second, c.opts.Timeout)
}

func TestNewWeWorkRemotely_DefaultTimeout(t *testing.T) {
	c := NewWeWorkRemotely(DefaultWeWorkRemotelyBaseURL, 1, 0, 0, false)
	assert.Equal(t, fetch.DefaultTimeout, c.opts.Timeout)
}
