package queue

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
}

func (f *fakeChannel) PushAndSend(sequence string, e interface{}, method amqp.Method) error {
	f.sequence = sequence
	f.pushed = e
	f.sent = method
	return nil
}

func TestDeclarePushesSelfAndSendsQueueDeclare(t *testing.T) {
	ch := &fakeChannel{}
	q := New(ch, "", true, false, false, nil)

	var completed interface{}
	err := q.Declare(false, false, func(arg interface{}) { completed = arg })
	require.NoError(t, err)

	assert.Equal(t, "queue.declare-ok", ch.sequence)
	assert.Same(t, q, ch.pushed)
	assert.True(t, ch.sent.(*amqp.QueueDeclare).Durable)

	q.ApplyDeclareOk("amq.gen-1", 0, 0)
	q.ExecCallbackOnce("declare", &amqp.QueueDeclareOk{Queue: "amq.gen-1"})

	assert.Equal(t, "amq.gen-1", q.Name)
	require.NotNil(t, completed)
}

func TestTwoDeclaresCorrelateIndependently(t *testing.T) {
	ch1 := &fakeChannel{}
	ch2 := &fakeChannel{}
	q1 := New(ch1, "", false, false, true, nil)
	q2 := New(ch2, "", false, false, true, nil)

	require.NoError(t, q1.Declare(false, false, nil))
	require.NoError(t, q2.Declare(false, false, nil))

	q1.ApplyDeclareOk("amq.gen-1", 0, 0)
	q2.ApplyDeclareOk("amq.gen-2", 0, 0)

	assert.Equal(t, "amq.gen-1", q1.Name)
	assert.Equal(t, "amq.gen-2", q2.Name)
}

func TestBindUnbindPurgeDeleteSendExpectedMethods(t *testing.T) {
	ch := &fakeChannel{}
	q := New(ch, "orders", true, false, false, nil)

	require.NoError(t, q.Bind("orders.topic", "order.*", false, nil, nil))
	assert.Equal(t, "queue.bind-ok", ch.sequence)
	assert.Equal(t, "orders.topic", ch.sent.(*amqp.QueueBind).Exchange)

	require.NoError(t, q.Unbind("orders.topic", "order.*", nil, nil))
	assert.Equal(t, "queue.unbind-ok", ch.sequence)

	require.NoError(t, q.Purge(false, nil))
	assert.Equal(t, "queue.purge-ok", ch.sequence)
	q.ApplyPurgeOk(42)
	assert.Equal(t, uint32(0), q.MessageCount)

	require.NoError(t, q.Delete(true, true, false, nil))
	assert.Equal(t, "queue.delete-ok", ch.sequence)
	assert.True(t, ch.sent.(*amqp.QueueDelete).IfUnused)
}

func TestGetPushesOntoGetResponseSequence(t *testing.T) {
	ch := &fakeChannel{}
	q := New(ch, "orders", true, false, false, nil)

	var result GetResult
	require.NoError(t, q.Get(true, func(arg interface{}) { result = arg.(GetResult) }))

	assert.Equal(t, "queue.get-response", ch.sequence)
	assert.True(t, ch.sent.(*amqp.BasicGet).NoAck)

	q.ExecCallbackOnce("get", GetResult{Empty: true})
	assert.True(t, result.Empty)
}

func TestConsumeConstructsConsumerBoundToSameChannel(t *testing.T) {
	ch := &fakeChannel{}
	q := New(ch, "orders", true, false, false, nil)

	c, err := q.Consume("", false, false, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "queue.consume-ok", ch.sequence)
	assert.Same(t, c, ch.pushed)
}
