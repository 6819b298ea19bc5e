// Package exchange implements the client-side Exchange entity (spec.md
// §3, §4.5): declare/delete with the usual push-self-onto-awaiting-
// sequence-then-send pattern. Grounded on the teacher's exchange.Exchange
// (vhost/vhost.go's initSystemExchanges/AppendExchange/GetExchange) but
// reworked client-side — this package issues Exchange.Declare/Delete
// rather than serving them.
package exchange

import (
	"github.com/travis-repos/amq-client/amqp"
	"github.com/travis-repos/amq-client/entity"
	"github.com/travis-repos/amq-client/log"
)

// ChannelHandle is the slice of Channel behavior an Exchange needs.
type ChannelHandle interface {
	PushAndSend(sequence string, entity interface{}, method amqp.Method) error
}

// Exchange is the client-side handle for a declared (or about-to-be-
// declared) AMQP exchange.
type Exchange struct {
	entity.Base

	ch ChannelHandle

	Name       string
	Type       string
	Durable    bool
	AutoDelete bool
	Internal   bool
	Arguments  amqp.Table

	declared bool
}

// New constructs an Exchange bound to ch. name == "" addresses the default
// exchange (spec.md §3).
func New(ch ChannelHandle, name, kind string, durable, autoDelete, internal bool, arguments amqp.Table) *Exchange {
	e := &Exchange{
		ch:         ch,
		Name:       name,
		Type:       kind,
		Durable:    durable,
		AutoDelete: autoDelete,
		Internal:   internal,
		Arguments:  arguments,
	}
	e.Init(e)
	return e
}

// Declare pushes this exchange onto the channel's declare-ok awaiting
// sequence and transmits Exchange.Declare. passive requests a
// declare-without-create existence check.
func (e *Exchange) Declare(passive, noWait bool, cb entity.Callback) error {
	e.RedefineCallback("declare", cb)
	return e.ch.PushAndSend("exchange.declare-ok", e, &amqp.ExchangeDeclare{
		Exchange:   e.Name,
		Type:       e.Type,
		Passive:    passive,
		Durable:    e.Durable,
		AutoDelete: e.AutoDelete,
		Internal:   e.Internal,
		NoWait:     noWait,
		Arguments:  e.Arguments,
	})
}

// Delete pushes this exchange onto the channel's delete-ok awaiting
// sequence and transmits Exchange.Delete.
func (e *Exchange) Delete(ifUnused, noWait bool, cb entity.Callback) error {
	e.RedefineCallback("delete", cb)
	return e.ch.PushAndSend("exchange.delete-ok", e, &amqp.ExchangeDelete{
		Exchange: e.Name,
		IfUnused: ifUnused,
		NoWait:   noWait,
	})
}

// ApplyDeclareOk marks the exchange as confirmed by the broker.
func (e *Exchange) ApplyDeclareOk() {
	e.declared = true
	log.For("exchange", e.Name).Debug("exchange.declare-ok")
}

// Declared reports whether DeclareOk has been received.
func (e *Exchange) Declared() bool { return e.declared }
