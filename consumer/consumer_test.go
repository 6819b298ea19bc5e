package consumer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travis-repos/amq-client/amqp"
)

type fakeChannel struct {
	sequence string
	pushed   interface{}
	sent     amqp.Method
	err      error
}

func (f *fakeChannel) PushAndSend(sequence string, e interface{}, method amqp.Method) error {
	f.sequence = sequence
	f.pushed = e
	f.sent = method
	return f.err
}

func TestConsumePushesSelfAndSendsBasicConsume(t *testing.T) {
	ch := &fakeChannel{}
	c := New(ch, "orders", "", false, false, false, amqp.Table{"x-priority": int32(1)})

	var completed interface{}
	err := c.Consume(func(arg interface{}) { completed = arg })
	require.NoError(t, err)

	assert.Equal(t, "queue.consume-ok", ch.sequence)
	assert.Same(t, c, ch.pushed)

	declare := ch.sent.(*amqp.BasicConsume)
	assert.Equal(t, "orders", declare.Queue)

	c.ApplyConsumeOk("amq.ctag-1")
	c.ExecCallbackOnce("consume", &amqp.BasicConsumeOk{ConsumerTag: "amq.ctag-1"})

	assert.Equal(t, "amq.ctag-1", c.Tag())
	require.NotNil(t, completed)
}

func TestCancelPushesSelfAndSendsBasicCancel(t *testing.T) {
	ch := &fakeChannel{}
	c := New(ch, "orders", "amq.ctag-1", false, false, false, nil)

	err := c.Cancel(func(arg interface{}) {})
	require.NoError(t, err)

	assert.Equal(t, "queue.cancel-ok", ch.sequence)
	cancel := ch.sent.(*amqp.BasicCancel)
	assert.Equal(t, "amq.ctag-1", cancel.ConsumerTag)
}

func TestDeliverFiresDeliveryCallback(t *testing.T) {
	c := New(&fakeChannel{}, "orders", "amq.ctag-1", false, false, false, nil)

	var got Delivery
	c.DefineCallback("delivery", func(arg interface{}) { got = arg.(Delivery) })

	c.Deliver(Delivery{DeliveryTag: 7, Body: []byte("hello world")})
	assert.Equal(t, uint64(7), got.DeliveryTag)
	assert.Equal(t, []byte("hello world"), got.Body)
}

func TestCancelledFiresOnBrokerInitiatedCancel(t *testing.T) {
	c := New(&fakeChannel{}, "orders", "amq.ctag-1", false, false, false, nil)

	var reason string
	c.DefineCallback("cancelled", func(arg interface{}) { reason = arg.(string) })

	c.Cancelled("queue deleted")
	assert.Equal(t, "queue deleted", reason)
}
