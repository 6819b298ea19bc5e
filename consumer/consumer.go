// Package consumer implements the client-side Consumer entity spec.md §3
// and §4.5 describe: a subscription on a queue identified by a consumer
// tag, created on Basic.ConsumeOk and torn down by caller- or
// broker-initiated Basic.Cancel. It is grounded on the teacher's
// consumer.Consumer (referenced by server/channel.go's addConsumer /
// removeConsumer) but reworked into the client-side role: this package
// issues Basic.Consume/Basic.Cancel rather than serving them.
package consumer

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/travis-repos/amq-client/amqp"
	"github.com/travis-repos/amq-client/entity"
	"github.com/travis-repos/amq-client/log"
)

// Delivery is the reassembled payload handed to a consumer's "delivery"
// callback (spec.md §4.4's content-assembly tuple).
type Delivery struct {
	DeliveryTag uint64
	Redelivered bool
	Exchange    string
	RoutingKey  string
	Properties  amqp.Table
	Body        []byte
}

// ChannelHandle is the slice of Channel behavior a Consumer needs, kept
// narrow so this package never imports the channel package (spec.md §9:
// back-references are relations, resolved structurally, not by ownership).
type ChannelHandle interface {
	PushAndSend(sequence string, entity interface{}, method amqp.Method) error
}

// Consumer is the client-side half of an AMQP subscription.
type Consumer struct {
	entity.Base

	ch        ChannelHandle
	queue     string
	tag       string
	noLocal   bool
	noAck     bool
	exclusive bool
	arguments amqp.Table
	logger    *logrus.Entry
}

// New constructs a Consumer bound to ch for queue, ready to have Consume
// called on it. An empty tag is replaced with a client-generated one
// (SPEC_FULL §1.NEW's "IDs" ambient concern) so Tag() is meaningful even
// before ConsumeOk arrives; the broker's reply still wins if it differs.
func New(ch ChannelHandle, queue, tag string, noLocal, noAck, exclusive bool, arguments amqp.Table) *Consumer {
	if tag == "" {
		tag = "ctag-" + uuid.NewString()
	}
	c := &Consumer{
		ch:        ch,
		queue:     queue,
		tag:       tag,
		noLocal:   noLocal,
		noAck:     noAck,
		exclusive: exclusive,
		arguments: arguments,
	}
	c.Init(c)
	c.logger = log.ForName("consumer", tag)
	return c
}

// Tag returns the consumer tag — the caller's or client-generated one until
// ConsumeOk applies the broker's.
func (c *Consumer) Tag() string { return c.tag }

// Queue returns the name of the queue this consumer subscribes to.
func (c *Consumer) Queue() string { return c.queue }

// NoAck reports whether deliveries on this consumer require acknowledgement.
func (c *Consumer) NoAck() bool { return c.noAck }

// Consume pushes this consumer onto the channel's consume-ok awaiting
// sequence and transmits Basic.Consume (spec.md §4.5 steps 1-3). cb fires
// once ConsumeOk arrives, with the assigned tag already applied.
func (c *Consumer) Consume(cb entity.Callback) error {
	c.RedefineCallback("consume", cb)
	return c.ch.PushAndSend("queue.consume-ok", c, &amqp.BasicConsume{
		Queue:       c.queue,
		ConsumerTag: c.tag,
		NoLocal:     c.noLocal,
		NoAck:       c.noAck,
		Exclusive:   c.exclusive,
		Arguments:   c.arguments,
	})
}

// Cancel pushes this consumer onto the channel's cancel-ok awaiting
// sequence and transmits Basic.Cancel.
func (c *Consumer) Cancel(cb entity.Callback) error {
	c.RedefineCallback("cancel", cb)
	return c.ch.PushAndSend("queue.cancel-ok", c, &amqp.BasicCancel{ConsumerTag: c.tag})
}

// ApplyConsumeOk assigns the (possibly broker-generated) consumer tag
// carried by Basic.ConsumeOk.
func (c *Consumer) ApplyConsumeOk(tag string) {
	c.tag = tag
	c.logger = log.ForName("consumer", tag)
}

// Deliver fires the "delivery" callback with a reassembled message — called
// by Channel once a Basic.Deliver's content is fully reassembled (spec.md
// §4.4's content-assembly path).
func (c *Consumer) Deliver(d Delivery) {
	c.ExecCallback("delivery", d)
}

// Cancelled fires the "cancelled" callback for a broker-initiated
// Basic.Cancel, distinct from the caller-initiated Cancel's one-shot
// "cancel" completion.
func (c *Consumer) Cancelled(reason string) {
	c.ExecCallback("cancelled", reason)
}
