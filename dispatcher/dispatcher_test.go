package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/travis-repos/amq-client/amqp"
)

func TestDispatchInvokesRegisteredHandler(t *testing.T) {
	Register(amqp.ClassChannel, amqp.MethodChannelFlow, func(target interface{}, method amqp.Method) *amqp.Error {
		s := target.(*string)
		*s = method.Name()
		return nil
	})

	var got string
	err := Dispatch(&got, &amqp.ChannelFlow{Active: true})
	assert.Nil(t, err)
	assert.Equal(t, "channel.flow", got)
	assert.True(t, Registered(amqp.ClassChannel, amqp.MethodChannelFlow))
}

func TestDispatchUnknownMethodReturnsProtocolError(t *testing.T) {
	err := Dispatch(nil, &amqp.ChannelFlowOk{Active: true})
	assert.NotNil(t, err)
	assert.Equal(t, amqp.ReplyNotImplemented, err.ReplyCode)
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	Register(9002, 1, func(target interface{}, method amqp.Method) *amqp.Error { return nil })
	assert.Panics(t, func() {
		Register(9002, 1, func(target interface{}, method amqp.Method) *amqp.Error { return nil })
	})
}
