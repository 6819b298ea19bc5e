package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travis-repos/amq-client/amqp"
	"github.com/travis-repos/amq-client/consumer"
)

type fakeConn struct {
	methods []amqp.Method
	removed []uint16
	frameMax uint32
}

func (f *fakeConn) SendMethod(channelID uint16, method amqp.Method) error {
	f.methods = append(f.methods, method)
	return nil
}

func (f *fakeConn) SendContent(channelID uint16, header *amqp.ContentHeader, body []byte) error {
	return nil
}

func (f *fakeConn) FrameMax() uint32 { return f.frameMax }

func (f *fakeConn) RemoveChannel(id uint16) { f.removed = append(f.removed, id) }

func newTestChannel(t *testing.T) (*Channel, *fakeConn) {
	t.Helper()
	conn := &fakeConn{frameMax: 131072}
	ch, err := New(1, 2047, conn, nil)
	require.NoError(t, err)
	return ch, conn
}

func TestNewRejectsChannelIDBeyondMax(t *testing.T) {
	conn := &fakeConn{}
	_, err := New(3000, 2047, conn, nil)
	require.Error(t, err)
	_, ok := err.(*amqp.ChannelOutOfBounds)
	assert.True(t, ok)
}

func TestOpenTransitionsToOpenedOnChannelOpenOk(t *testing.T) {
	ch, conn := newTestChannel(t)

	var opened bool
	require.NoError(t, ch.Open(func(arg interface{}) { opened = true }))
	require.Len(t, conn.methods, 1)
	assert.IsType(t, &amqp.ChannelOpen{}, conn.methods[0])

	protoErr := ch.HandleFrame(&amqp.ChannelOpenOk{})
	assert.Nil(t, protoErr)
	assert.Equal(t, StatusOpened, ch.Status())
	assert.True(t, opened)
}

func TestTwoQueueDeclaresCorrelateInFIFOOrder(t *testing.T) {
	ch, _ := newTestChannel(t)

	q1 := ch.NewQueue("", false, false, true, nil)
	q2 := ch.NewQueue("", false, false, true, nil)
	require.NoError(t, q1.Declare(false, false, nil))
	require.NoError(t, q2.Declare(false, false, nil))

	require.Nil(t, ch.HandleFrame(&amqp.QueueDeclareOk{Queue: "amq.gen-1"}))
	require.Nil(t, ch.HandleFrame(&amqp.QueueDeclareOk{Queue: "amq.gen-2"}))

	assert.Equal(t, "amq.gen-1", q1.Name)
	assert.Equal(t, "amq.gen-2", q2.Name)
}

func TestBrokerInitiatedCloseFiresErrorAndResets(t *testing.T) {
	ch, conn := newTestChannel(t)

	var gotErr interface{}
	ch.DefineCallback("error", func(arg interface{}) { gotErr = arg })

	protoErr := ch.HandleFrame(&amqp.ChannelClose{
		ReplyCode: 406,
		ReplyText: "PRECONDITION_FAILED",
		ClassID_:  amqp.ClassQueue,
		MethodID_: 10,
	})
	require.Nil(t, protoErr)

	require.NotNil(t, gotErr)
	amqpErr := gotErr.(*amqp.Error)
	assert.Equal(t, uint16(406), amqpErr.ReplyCode)
	assert.Equal(t, "PRECONDITION_FAILED", amqpErr.ReplyText)

	require.Len(t, conn.methods, 1)
	assert.IsType(t, &amqp.ChannelCloseOk{}, conn.methods[0])
	assert.Equal(t, []uint16{1}, conn.removed)
	assert.Equal(t, StatusClosed, ch.Status())
}

func TestFlowControlUpdatesFlowIsActiveAndReplies(t *testing.T) {
	ch, conn := newTestChannel(t)
	assert.True(t, ch.FlowIsActive())

	var flowArg interface{}
	ch.DefineCallback("flow", func(arg interface{}) { flowArg = arg })

	require.Nil(t, ch.HandleFrame(&amqp.ChannelFlow{Active: false}))
	assert.False(t, ch.FlowIsActive())
	require.NotNil(t, flowArg)

	require.Len(t, conn.methods, 1)
	reply := conn.methods[0].(*amqp.ChannelFlowOk)
	assert.False(t, reply.Active)
}

func TestTxSelectThenCommitFireCallbacksInOrder(t *testing.T) {
	ch, _ := newTestChannel(t)

	var selected, committed bool
	require.NoError(t, ch.TxSelect(func(arg interface{}) { selected = true }))
	require.Nil(t, ch.HandleFrame(&amqp.TxSelectOk{}))
	assert.True(t, selected)

	require.NoError(t, ch.TxCommit(func(arg interface{}) { committed = true }))
	require.Nil(t, ch.HandleFrame(&amqp.TxCommitOk{}))
	assert.True(t, committed)
}

func TestContentReassemblyDeliversFullBody(t *testing.T) {
	ch, _ := newTestChannel(t)

	q := ch.NewQueue("orders", true, false, false, nil)
	require.NoError(t, q.Declare(false, false, nil))
	require.Nil(t, ch.HandleFrame(&amqp.QueueDeclareOk{Queue: "orders"}))

	c, err := q.Consume("", false, false, false, nil, nil)
	require.NoError(t, err)
	require.Nil(t, ch.HandleFrame(&amqp.BasicConsumeOk{ConsumerTag: "amq.ctag-1"}))

	var delivered interface{}
	c.DefineCallback("delivery", func(arg interface{}) { delivered = arg })

	require.Nil(t, ch.HandleFrame(&amqp.BasicDeliver{
		ConsumerTag: "amq.ctag-1",
		DeliveryTag: 1,
		Exchange:    "orders.topic",
		RoutingKey:  "order.created",
	}))
	require.Nil(t, ch.HandleContentHeader(&amqp.ContentHeader{ClassID: amqp.ClassBasic, BodySize: 11}))
	require.Nil(t, ch.HandleContentBody([]byte("hello ")))
	require.Nil(t, ch.HandleContentBody([]byte("world")))

	require.NotNil(t, delivered)
	d := delivered.(consumer.Delivery)
	assert.Equal(t, []byte("hello world"), d.Body)
	assert.Equal(t, "order.created", d.RoutingKey)
}
