package amqp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodRoundTrip(t *testing.T) {
	cases := []Method{
		&ConnectionStart{VersionMajor: 0, VersionMinor: 9, ServerProperties: Table{"product": "amq-client"}, Mechanisms: "PLAIN", Locales: "en_US"},
		&ConnectionTune{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 60},
		&ConnectionOpen{VirtualHost: "/"},
		&ConnectionClose{ReplyCode: 200, ReplyText: DefaultCloseReplyText, ClassID_: 0, MethodID_: 0},
		&ChannelOpen{},
		&ChannelOpenOk{},
		&ChannelFlow{Active: false},
		&ChannelClose{ReplyCode: 406, ReplyText: "PRECONDITION_FAILED", ClassID_: 50, MethodID_: 10},
		&ExchangeDeclare{Exchange: "ex", Type: "topic", Durable: true, Arguments: Table{"x-foo": int32(1)}},
		&QueueDeclare{Queue: "", AutoDelete: true, Arguments: Table{}},
		&QueueDeclareOk{Queue: "amq.gen-1", MessageCount: 0, ConsumerCount: 0},
		&QueueBind{Queue: "q", Exchange: "ex", RoutingKey: "rk", Arguments: Table{}},
		&BasicConsume{Queue: "q", ConsumerTag: "ct", NoAck: true, Arguments: Table{}},
		&BasicDeliver{ConsumerTag: "ct", DeliveryTag: 7, Redelivered: false, Exchange: "e", RoutingKey: "rk"},
		&BasicAck{DeliveryTag: 5, Multiple: true},
		&BasicNack{DeliveryTag: 9, Multiple: false, Requeue: true},
		&TxSelect{},
		&TxCommitOk{},
	}

	for _, m := range cases {
		t.Run(m.Name(), func(t *testing.T) {
			raw, err := EncodeMethodFrame(3, m)
			require.NoError(t, err)

			d := NewDecoder(0)
			d.Feed(raw)
			frame, err, ok := d.Next()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, uint16(3), frame.ChannelID)
			assert.Equal(t, FrameMethod, frame.Type)
			assert.Equal(t, m, frame.Method)
		})
	}
}

func TestDecoderShortReadYieldsNoFrame(t *testing.T) {
	raw, err := EncodeMethodFrame(1, &ChannelOpen{})
	require.NoError(t, err)

	d := NewDecoder(0)
	d.Feed(raw[:len(raw)-3])
	frame, err, ok := d.Next()
	assert.Nil(t, frame)
	assert.NoError(t, err)
	assert.False(t, ok)

	d.Feed(raw[len(raw)-3:])
	frame, err, ok = d.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, &ChannelOpen{}, frame.Method)
}

func TestDecoderMalformedSentinel(t *testing.T) {
	raw, err := EncodeMethodFrame(1, &ChannelOpen{})
	require.NoError(t, err)
	raw[len(raw)-1] = 0x00

	d := NewDecoder(0)
	d.Feed(raw)
	_, err, ok := d.Next()
	require.False(t, ok)
	require.Error(t, err)
	protoErr, isProtoErr := err.(*Error)
	require.True(t, isProtoErr)
	assert.Equal(t, ErrorOnConnection, protoErr.ErrorType)
}

func TestDecoderPayloadExceedsFrameMax(t *testing.T) {
	raw, err := EncodeMethodFrame(1, &ExchangeDeclare{Exchange: "x", Type: "direct", Arguments: Table{}})
	require.NoError(t, err)

	d := NewDecoder(4) // smaller than the encoded payload
	d.Feed(raw)
	_, err, ok := d.Next()
	require.False(t, ok)
	require.Error(t, err)
}

func TestDecoderUnknownMethod(t *testing.T) {
	raw, err := EncodeMethodFrame(1, &ChannelOpen{})
	require.NoError(t, err)
	// corrupt the method-id field (frame bytes 9-10: the payload starts after the 7-byte frame header with class(2) then method(2))
	raw[9] = 0xFF
	raw[10] = 0xFF

	d := NewDecoder(0)
	d.Feed(raw)
	_, err, ok := d.Next()
	require.False(t, ok)
	require.Error(t, err)
}

func TestHeartbeatFrame(t *testing.T) {
	raw := EncodeHeartbeat()
	d := NewDecoder(0)
	d.Feed(raw)
	frame, err, ok := d.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, FrameHeartbeat, frame.Type)
	assert.Equal(t, uint16(0), frame.ChannelID)
}

func TestBodyFrameSplitting(t *testing.T) {
	body := make([]byte, 25)
	for i := range body {
		body[i] = byte(i)
	}
	frames := EncodeBodyFrames(1, body, 10)
	require.Len(t, frames, 3)

	var reassembled []byte
	for _, raw := range frames {
		d := NewDecoder(0)
		d.Feed(raw)
		frame, err, ok := d.Next()
		require.NoError(t, err)
		require.True(t, ok)
		reassembled = append(reassembled, frame.Body...)
	}
	assert.Equal(t, body, reassembled)
}

func TestContentHeaderRoundTrip(t *testing.T) {
	header := &ContentHeader{
		ClassID:  ClassBasic,
		BodySize: 11,
		Properties: Table{
			PropContentType:   "text/plain",
			PropDeliveryMode:  uint8(2),
			PropCorrelationID: "abc-123",
		},
	}
	raw, err := EncodeHeaderFrame(2, header)
	require.NoError(t, err)

	d := NewDecoder(0)
	d.Feed(raw)
	frame, err, ok := d.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, frame.ContentHeader)
	assert.Equal(t, header.BodySize, frame.ContentHeader.BodySize)
	assert.Equal(t, "text/plain", frame.ContentHeader.Properties[PropContentType])
	assert.Equal(t, uint8(2), frame.ContentHeader.Properties[PropDeliveryMode])
}
