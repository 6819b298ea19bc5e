// Package queue implements the client-side Queue entity (spec.md §3,
// §4.5): declare/delete/bind/unbind/purge/get, each following the
// push-self-onto-awaiting-sequence-then-send pattern before the head of
// that sequence is popped by the channel's reply handler. Grounded on the
// teacher's queue.Queue (vhost/vhost.go's NewQueue/AppendQueue/DeleteQueue)
// but reworked client-side.
package queue

import (
	"github.com/google/uuid"

	"github.com/travis-repos/amq-client/amqp"
	"github.com/travis-repos/amq-client/consumer"
	"github.com/travis-repos/amq-client/entity"
	"github.com/travis-repos/amq-client/log"
)

// GenerateName returns a client-assigned queue name in the broker's own
// "amq.gen-*" style (SPEC_FULL §1.NEW's "IDs" ambient concern), for a
// caller that wants a name up front rather than waiting on Declare's
// broker-assigned one (spec.md §8 scenario 2's "amq.gen-1"/"amq.gen-2").
func GenerateName() string {
	return "amq.gen-" + uuid.NewString()
}

// ChannelHandle is the slice of Channel behavior a Queue needs.
type ChannelHandle interface {
	PushAndSend(sequence string, entity interface{}, method amqp.Method) error
}

// GetResult is delivered to a Get's completion callback. Empty is true
// when Basic.GetEmpty was returned (the queue had nothing ready).
type GetResult struct {
	Empty        bool
	DeliveryTag  uint64
	Redelivered  bool
	Exchange     string
	RoutingKey   string
	MessageCount uint32
	Properties   amqp.Table
	Body         []byte
}

// Queue is the client-side handle for a declared (or about-to-be-declared)
// AMQP queue. Name starts empty and is assigned from DeclareOk when the
// caller requests a broker-generated name (spec.md §3).
type Queue struct {
	entity.Base

	ch ChannelHandle

	Name       string
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	Arguments  amqp.Table

	MessageCount  uint32
	ConsumerCount uint32
}

// New constructs a Queue bound to ch. name == "" requests a broker-
// assigned name on Declare.
func New(ch ChannelHandle, name string, durable, exclusive, autoDelete bool, arguments amqp.Table) *Queue {
	q := &Queue{
		ch:         ch,
		Name:       name,
		Durable:    durable,
		Exclusive:  exclusive,
		AutoDelete: autoDelete,
		Arguments:  arguments,
	}
	q.Init(q)
	return q
}

// Declare pushes this queue onto the channel's declare-ok awaiting
// sequence and transmits Queue.Declare.
func (q *Queue) Declare(passive, noWait bool, cb entity.Callback) error {
	q.RedefineCallback("declare", cb)
	return q.ch.PushAndSend("queue.declare-ok", q, &amqp.QueueDeclare{
		Queue:      q.Name,
		Passive:    passive,
		Durable:    q.Durable,
		Exclusive:  q.Exclusive,
		AutoDelete: q.AutoDelete,
		NoWait:     noWait,
		Arguments:  q.Arguments,
	})
}

// Bind pushes this queue onto the channel's bind-ok awaiting sequence and
// transmits Queue.Bind.
func (q *Queue) Bind(exchange, routingKey string, noWait bool, arguments amqp.Table, cb entity.Callback) error {
	q.RedefineCallback("bind", cb)
	return q.ch.PushAndSend("queue.bind-ok", q, &amqp.QueueBind{
		Queue:      q.Name,
		Exchange:   exchange,
		RoutingKey: routingKey,
		NoWait:     noWait,
		Arguments:  arguments,
	})
}

// Unbind pushes this queue onto the channel's unbind-ok awaiting sequence
// and transmits Queue.Unbind.
func (q *Queue) Unbind(exchange, routingKey string, arguments amqp.Table, cb entity.Callback) error {
	q.RedefineCallback("unbind", cb)
	return q.ch.PushAndSend("queue.unbind-ok", q, &amqp.QueueUnbind{
		Queue:      q.Name,
		Exchange:   exchange,
		RoutingKey: routingKey,
		Arguments:  arguments,
	})
}

// Purge pushes this queue onto the channel's purge-ok awaiting sequence
// and transmits Queue.Purge.
func (q *Queue) Purge(noWait bool, cb entity.Callback) error {
	q.RedefineCallback("purge", cb)
	return q.ch.PushAndSend("queue.purge-ok", q, &amqp.QueuePurge{Queue: q.Name, NoWait: noWait})
}

// Delete pushes this queue onto the channel's delete-ok awaiting sequence
// and transmits Queue.Delete.
func (q *Queue) Delete(ifUnused, ifEmpty, noWait bool, cb entity.Callback) error {
	q.RedefineCallback("delete", cb)
	return q.ch.PushAndSend("queue.delete-ok", q, &amqp.QueueDelete{
		Queue:    q.Name,
		IfUnused: ifUnused,
		IfEmpty:  ifEmpty,
		NoWait:   noWait,
	})
}

// Get pushes this queue onto the channel's get-response awaiting sequence
// and transmits Basic.Get. Unlike the other operations, the reply may be
// content-bearing (Basic.GetOk followed by Header+Body) or terminal
// (Basic.GetEmpty) — the channel's content-assembly path resolves either
// case down to a single GetResult passed to cb.
func (q *Queue) Get(noAck bool, cb entity.Callback) error {
	q.RedefineCallback("get", cb)
	return q.ch.PushAndSend("queue.get-response", q, &amqp.BasicGet{Queue: q.Name, NoAck: noAck})
}

// Consume constructs a Consumer for this queue and pushes it onto the
// channel's consume-ok awaiting sequence (spec.md §4.5; the Consumer, not
// the Queue, is the entity correlated by ConsumeOk since multiple
// concurrent consumes may target the same queue).
func (q *Queue) Consume(tag string, noLocal, noAck, exclusive bool, arguments amqp.Table, cb entity.Callback) (*consumer.Consumer, error) {
	c := consumer.New(q.ch, q.Name, tag, noLocal, noAck, exclusive, arguments)
	if err := c.Consume(cb); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyDeclareOk assigns the broker-confirmed name and counts.
func (q *Queue) ApplyDeclareOk(name string, messageCount, consumerCount uint32) {
	q.Name = name
	q.MessageCount = messageCount
	q.ConsumerCount = consumerCount
	log.For("queue", name).Debug("queue.declare-ok")
}

// ApplyPurgeOk resets MessageCount to zero; ApplyDeleteOk changes nothing.
// Neither keeps the message count the broker reports as purged/deleted.
func (q *Queue) ApplyPurgeOk(messageCount uint32)  { q.MessageCount = 0; _ = messageCount }
func (q *Queue) ApplyDeleteOk(messageCount uint32) { _ = messageCount }
