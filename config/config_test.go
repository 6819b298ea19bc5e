package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travis-repos/amq-client/amqp"
)

func TestDefaultDialMatchesSpecDefaults(t *testing.T) {
	d := DefaultDial()
	assert.Equal(t, "/", d.VirtualHost)
	assert.Equal(t, uint16(0), d.ChannelMax)
	assert.Equal(t, uint32(131072), d.FrameMax)
	assert.Equal(t, amqp.DefaultPrefetchCount, d.DefaultPrefetchCount)
}

func TestLoadWithEmptyPathAppliesDefaults(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDial(), d)
}

func TestNegotiateChannelMaxFallsBackWhenBrokerProposesZero(t *testing.T) {
	assert.Equal(t, amqp.DefaultChannelMax, NegotiateChannelMax(0))
	assert.Equal(t, uint16(10), NegotiateChannelMax(10))
}
