package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travis-repos/amq-client/amqp"
)

// TestBasicReturnDeliversReassembledContent exercises SPEC_FULL §4.7's
// supplemented Basic.Return path: the channel's "return" callback, not any
// awaiting-sequence, receives the bounced message once its content frames
// are reassembled.
func TestBasicReturnDeliversReassembledContent(t *testing.T) {
	ch, _ := newTestChannel(t)

	var returned ReturnedMessage
	ch.DefineCallback("return", func(arg interface{}) { returned = arg.(ReturnedMessage) })

	require.Nil(t, ch.HandleFrame(&amqp.BasicReturn{
		ReplyCode:  312,
		ReplyText:  "NO_ROUTE",
		Exchange:   "orders.topic",
		RoutingKey: "order.unmatched",
	}))
	require.Nil(t, ch.HandleContentHeader(&amqp.ContentHeader{ClassID: amqp.ClassBasic, BodySize: 5}))
	require.Nil(t, ch.HandleContentBody([]byte("hello")))

	assert.Equal(t, uint16(312), returned.ReplyCode)
	assert.Equal(t, "NO_ROUTE", returned.ReplyText)
	assert.Equal(t, []byte("hello"), returned.Body)
}

// TestBasicAckAndNackFireChannelCallbacks exercises the publisher-confirm
// acknowledgement callbacks SPEC_FULL §4.7 adds on top of the teacher's
// server-side ack/nack handling.
func TestBasicAckAndNackFireChannelCallbacks(t *testing.T) {
	ch, _ := newTestChannel(t)

	var acked, nacked interface{}
	ch.DefineCallback("ack", func(arg interface{}) { acked = arg })
	ch.DefineCallback("nack", func(arg interface{}) { nacked = arg })

	require.Nil(t, ch.HandleFrame(&amqp.BasicAck{DeliveryTag: 1}))
	require.NotNil(t, acked)
	assert.Equal(t, uint64(1), acked.(*amqp.BasicAck).DeliveryTag)

	require.Nil(t, ch.HandleFrame(&amqp.BasicNack{DeliveryTag: 2}))
	require.NotNil(t, nacked)
	assert.Equal(t, uint64(2), nacked.(*amqp.BasicNack).DeliveryTag)
}

// TestConfirmModePublishAssignsMonotonicDeliveryTags is SPEC_FULL §8's
// testable property 8: once Confirm.SelectOk has been applied, successive
// Publish calls assign monotonically increasing confirm sequence numbers,
// mirroring the order in which the broker would later Basic.Ack them.
func TestConfirmModePublishAssignsMonotonicDeliveryTags(t *testing.T) {
	ch, _ := newTestChannel(t)

	require.NoError(t, ch.ConfirmSelect(false, nil))
	require.Nil(t, ch.HandleFrame(&amqp.ConfirmSelectOk{}))

	require.NoError(t, ch.Publish("orders.topic", "order.created", false, false, nil, []byte("one")))
	assert.Equal(t, uint64(1), ch.confirmSeq)

	require.NoError(t, ch.Publish("orders.topic", "order.created", false, false, nil, []byte("two")))
	assert.Equal(t, uint64(2), ch.confirmSeq)

	require.NoError(t, ch.Publish("orders.topic", "order.created", false, false, nil, []byte("three")))
	assert.Equal(t, uint64(3), ch.confirmSeq)
}

// TestConfirmModeOffLeavesSequenceAtZero confirms Publish only assigns
// confirm sequence numbers once the channel has actually entered
// publisher-confirm mode.
func TestConfirmModeOffLeavesSequenceAtZero(t *testing.T) {
	ch, _ := newTestChannel(t)

	require.NoError(t, ch.Publish("orders.topic", "order.created", false, false, nil, []byte("one")))
	assert.Equal(t, uint64(0), ch.confirmSeq)
}
