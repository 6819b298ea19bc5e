package channel

import (
	"github.com/travis-repos/amq-client/amqp"
	"github.com/travis-repos/amq-client/consumer"
	"github.com/travis-repos/amq-client/queue"
)

// contentState tracks the in-progress inbound content described by
// spec.md §4.4: idle (method == nil) -> awaiting-header (method set,
// header nil) -> awaiting-body (header set, accumulating body) -> idle
// again once body-size bytes have arrived.
type contentState struct {
	method amqp.Method
	header *amqp.ContentHeader
	body   []byte
}

// inProgress reports whether the channel currently holds a partially
// reassembled content — any method frame arriving while true is a
// protocol violation (spec.md §4.4).
func (c *contentState) inProgress() bool {
	return c.method != nil
}

// begin transitions idle -> awaiting-header for a content-bearing method
// (Basic.Deliver, Basic.GetOk, Basic.Return).
func (c *contentState) begin(m amqp.Method) *amqp.Error {
	if c.method != nil {
		return amqp.UnexpectedContentFrame(m.ClassID(), m.MethodID())
	}
	c.method = m
	c.header = nil
	c.body = nil
	return nil
}

// onHeader transitions awaiting-header -> awaiting-body.
func (c *contentState) onHeader(h *amqp.ContentHeader) *amqp.Error {
	if c.method == nil || c.header != nil {
		return amqp.UnexpectedContentFrame(amqp.ClassBasic, 0)
	}
	c.header = h
	c.body = make([]byte, 0, h.BodySize)
	return nil
}

// onBody appends one body frame's payload, reporting whether body-size has
// now been reached.
func (c *contentState) onBody(b []byte) (done bool, err *amqp.Error) {
	if c.method == nil || c.header == nil {
		return false, amqp.UnexpectedContentFrame(amqp.ClassBasic, 0)
	}
	c.body = append(c.body, b...)
	return uint64(len(c.body)) >= c.header.BodySize, nil
}

// reset returns the completed content and restores idle.
func (c *contentState) reset() (amqp.Method, *amqp.ContentHeader, []byte) {
	m, h, b := c.method, c.header, c.body
	c.method, c.header, c.body = nil, nil, nil
	return m, h, b
}

// ReturnedMessage is delivered to a channel's "return" callback when the
// broker bounces an unroutable mandatory/immediate publish (SPEC_FULL §4.7).
type ReturnedMessage struct {
	ReplyCode  uint16
	ReplyText  string
	Exchange   string
	RoutingKey string
	Properties amqp.Table
	Body       []byte
}

// deliverContent routes a fully reassembled content to its target —
// the consumer named by Basic.Deliver, the head of queue.get-response for
// Basic.GetOk, or the channel's own "return" callback for Basic.Return.
func (ch *Channel) deliverContent() *amqp.Error {
	method, header, body := ch.content.reset()

	switch m := method.(type) {
	case *amqp.BasicDeliver:
		ch.mu.Lock()
		c, ok := ch.consumers[m.ConsumerTag]
		ch.mu.Unlock()
		if !ok {
			ch.logger.WithField("consumerTag", m.ConsumerTag).Warn("delivery for unknown consumer")
			return nil
		}
		ch.metrics.Delivered.Inc()
		c.Deliver(consumer.Delivery{
			DeliveryTag: m.DeliveryTag,
			Redelivered: m.Redelivered,
			Exchange:    m.Exchange,
			RoutingKey:  m.RoutingKey,
			Properties:  header.Properties,
			Body:        body,
		})

	case *amqp.BasicGetOk:
		head, ok := ch.dequeue("queue.get-response")
		if !ok {
			return nil
		}
		q := head.(*queue.Queue)
		q.ExecCallbackOnce("get", queue.GetResult{
			DeliveryTag:  m.DeliveryTag,
			Redelivered:  m.Redelivered,
			Exchange:     m.Exchange,
			RoutingKey:   m.RoutingKey,
			MessageCount: m.MessageCount,
			Properties:   header.Properties,
			Body:         body,
		})

	case *amqp.BasicReturn:
		ch.ExecCallback("return", ReturnedMessage{
			ReplyCode:  m.ReplyCode,
			ReplyText:  m.ReplyText,
			Exchange:   m.Exchange,
			RoutingKey: m.RoutingKey,
			Properties: header.Properties,
			Body:       body,
		})
	}

	return nil
}
