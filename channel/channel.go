// Package channel implements Channel, the hardest piece of the core
// (spec.md §4.4): per-channel lifecycle, flow control, transactions, QoS,
// content assembly, and the FIFO awaiting-sequences that correlate broker
// replies to caller continuations. Grounded on the teacher's
// server/channel.go — the status constants, the sendError/handleMethod
// cascade and the mutex-guarded confirmQueue/ackStore pattern are all
// reworked client-side here, generalized from a server receiving client
// requests to a client issuing them.
package channel

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/travis-repos/amq-client/amqp"
	"github.com/travis-repos/amq-client/consumer"
	"github.com/travis-repos/amq-client/dispatcher"
	"github.com/travis-repos/amq-client/entity"
	"github.com/travis-repos/amq-client/exchange"
	"github.com/travis-repos/amq-client/log"
	"github.com/travis-repos/amq-client/metrics"
	"github.com/travis-repos/amq-client/queue"
)

// Status values for Channel.Status() (spec.md §3, §4.4's state diagram).
const (
	StatusNew entity.Status = iota
	StatusOpening
	StatusOpened
	StatusClosing
	StatusClosed
)

// Connection is the slice of connection behavior a Channel needs —
// spec.md §4.6 treats the connection as "an injected collaborator" of the
// channel, not an owner, so this interface (not a concrete *connection.
// Connection field) is what Channel depends on. This also breaks what
// would otherwise be an import cycle between this package and connection.
type Connection interface {
	SendMethod(channelID uint16, method amqp.Method) error
	SendContent(channelID uint16, header *amqp.ContentHeader, body []byte) error
	FrameMax() uint32
	RemoveChannel(id uint16)
}

// Channel is the client-side handle for one AMQP channel multiplexed over
// a Connection.
type Channel struct {
	entity.Base

	id   uint16
	conn Connection

	mu           sync.Mutex
	flowIsActive bool
	confirmMode  bool
	deliveryTag  uint64
	confirmSeq   uint64

	awaiting map[string][]interface{}

	exchanges map[string]*exchange.Exchange
	queues    map[string]*queue.Queue
	consumers map[string]*consumer.Consumer

	content *contentState

	logger  *logrus.Entry
	metrics *metrics.Registry
}

// New constructs a Channel bound to conn with the given id, validating it
// against channelMax (spec.md §3's ChannelOutOfBounds invariant). metrics
// may be metrics.Noop() when the caller does not want prometheus wiring.
func New(id uint16, channelMax uint16, conn Connection, reg *metrics.Registry) (*Channel, error) {
	if channelMax > 0 && id > channelMax {
		return nil, &amqp.ChannelOutOfBounds{ID: id, ChannelMax: channelMax}
	}
	if conn == nil {
		return nil, &amqp.NilArgument{What: "channel.Connection"}
	}
	if reg == nil {
		reg = metrics.Noop()
	}

	ch := &Channel{
		id:           id,
		conn:         conn,
		flowIsActive: true,
		awaiting:     make(map[string][]interface{}),
		exchanges:    make(map[string]*exchange.Exchange),
		queues:       make(map[string]*queue.Queue),
		consumers:    make(map[string]*consumer.Consumer),
		content:      &contentState{},
		metrics:      reg,
	}
	ch.Init(ch)
	ch.SetStatus(StatusNew)
	ch.logger = log.For("channel", id)
	return ch, nil
}

// ID returns the channel's id.
func (ch *Channel) ID() uint16 { return ch.id }

// FlowIsActive reports whether the broker currently permits delivery on
// this channel (spec.md §3's flow_is_active attribute).
func (ch *Channel) FlowIsActive() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.flowIsActive
}

// PushAndSend appends entity to the named awaiting-sequence and transmits
// method, both under the channel's mutex so the pair is atomic with
// respect to a concurrently-running dispatcher (spec.md §4.4's
// push-then-send invariant; grounded on the teacher's confirmLock/ackLock
// critical sections in server/channel.go).
func (ch *Channel) PushAndSend(sequence string, e interface{}, method amqp.Method) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.awaiting[sequence] = append(ch.awaiting[sequence], e)
	ch.metrics.AwaitingDepth.WithLabelValues(sequence).Set(float64(len(ch.awaiting[sequence])))
	return ch.sendMethodLocked(method)
}

func (ch *Channel) dequeue(sequence string) (interface{}, bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	q := ch.awaiting[sequence]
	if len(q) == 0 {
		return nil, false
	}
	head := q[0]
	ch.awaiting[sequence] = q[1:]
	ch.metrics.AwaitingDepth.WithLabelValues(sequence).Set(float64(len(q) - 1))
	return head, true
}

// SendMethod transmits method on this channel.
func (ch *Channel) SendMethod(method amqp.Method) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.sendMethodLocked(method)
}

func (ch *Channel) sendMethodLocked(method amqp.Method) error {
	ch.logger.Debug("-> " + method.Name())
	ch.metrics.FramesSent.Inc()
	return ch.conn.SendMethod(ch.id, method)
}

// SendContent transmits a content-bearing method followed by its header
// and body frames — the outbound half of spec.md §3's content invariant.
func (ch *Channel) SendContent(method amqp.Method, header *amqp.ContentHeader, body []byte) error {
	if err := ch.SendMethod(method); err != nil {
		return err
	}
	ch.metrics.FramesSent.Inc()
	if err := ch.conn.SendContent(ch.id, header, body); err != nil {
		return err
	}
	if _, ok := method.(*amqp.BasicPublish); ok {
		ch.metrics.Published.Inc()
	}
	return nil
}

// Open sends Channel.Open and records cb under "open" (spec.md §4.4's
// operation table).
func (ch *Channel) Open(cb entity.Callback) error {
	ch.SetStatus(StatusOpening)
	ch.RedefineCallback("open", cb)
	return ch.SendMethod(&amqp.ChannelOpen{})
}

// Close sends Channel.Close and records cb under "close".
func (ch *Channel) Close(code uint16, text string, classID, methodID uint16, cb entity.Callback) error {
	if text == "" {
		text = amqp.DefaultCloseReplyText
	}
	if code == 0 {
		code = amqp.ReplySuccess
	}
	ch.SetStatus(StatusClosing)
	ch.RedefineCallback("close", cb)
	return ch.SendMethod(&amqp.ChannelClose{ReplyCode: code, ReplyText: text, ClassID_: classID, MethodID_: methodID})
}

// Flow sends Channel.Flow and records cb under "flow".
func (ch *Channel) Flow(active bool, cb entity.Callback) error {
	ch.RedefineCallback("flow", cb)
	return ch.SendMethod(&amqp.ChannelFlow{Active: active})
}

// Qos sends Basic.Qos and records cb under "qos".
func (ch *Channel) Qos(prefetchSize uint32, prefetchCount uint16, global bool, cb entity.Callback) error {
	ch.RedefineCallback("qos", cb)
	return ch.SendMethod(&amqp.BasicQos{PrefetchSize: prefetchSize, PrefetchCount: prefetchCount, Global: global})
}

// Recover sends Basic.Recover and records cb under "recover".
func (ch *Channel) Recover(requeue bool, cb entity.Callback) error {
	ch.RedefineCallback("recover", cb)
	return ch.SendMethod(&amqp.BasicRecover{Requeue: requeue})
}

// TxSelect sends Tx.Select and records cb under "tx_select".
func (ch *Channel) TxSelect(cb entity.Callback) error {
	ch.RedefineCallback("tx_select", cb)
	return ch.SendMethod(&amqp.TxSelect{})
}

// TxCommit sends Tx.Commit and records cb under "tx_commit".
func (ch *Channel) TxCommit(cb entity.Callback) error {
	ch.RedefineCallback("tx_commit", cb)
	return ch.SendMethod(&amqp.TxCommit{})
}

// TxRollback sends Tx.Rollback and records cb under "tx_rollback".
func (ch *Channel) TxRollback(cb entity.Callback) error {
	ch.RedefineCallback("tx_rollback", cb)
	return ch.SendMethod(&amqp.TxRollback{})
}

// ConfirmSelect puts the channel into publisher-confirm mode (SPEC_FULL
// §4.7, grounded on the teacher's channel.confirmMode/addConfirm).
func (ch *Channel) ConfirmSelect(noWait bool, cb entity.Callback) error {
	ch.RedefineCallback("confirm_select", cb)
	return ch.SendMethod(&amqp.ConfirmSelect{NoWait: noWait})
}

// Acknowledge sends Basic.Ack. There is no awaiting-sequence entry: the
// protocol defines no reply (spec.md §4.4's operation table).
func (ch *Channel) Acknowledge(deliveryTag uint64, multiple bool) error {
	ch.metrics.Acknowledged.Inc()
	return ch.SendMethod(&amqp.BasicAck{DeliveryTag: deliveryTag, Multiple: multiple})
}

// Reject sends Basic.Reject.
func (ch *Channel) Reject(deliveryTag uint64, requeue bool) error {
	return ch.SendMethod(&amqp.BasicReject{DeliveryTag: deliveryTag, Requeue: requeue})
}

// Publish assembles and sends Basic.Publish plus its content frames,
// assigning the next confirm-mode delivery tag when applicable.
func (ch *Channel) Publish(exchangeName, routingKey string, mandatory, immediate bool, props amqp.Table, body []byte) error {
	ch.mu.Lock()
	if ch.confirmMode {
		ch.confirmSeq++
	}
	ch.mu.Unlock()

	header := &amqp.ContentHeader{ClassID: amqp.ClassBasic, BodySize: uint64(len(body)), Properties: props}
	return ch.SendContent(&amqp.BasicPublish{
		Exchange:   exchangeName,
		RoutingKey: routingKey,
		Mandatory:  mandatory,
		Immediate:  immediate,
	}, header, body)
}

// NewQueue constructs a Queue bound to this channel.
func (ch *Channel) NewQueue(name string, durable, exclusive, autoDelete bool, arguments amqp.Table) *queue.Queue {
	q := queue.New(ch, name, durable, exclusive, autoDelete, arguments)
	return q
}

// NewExchange constructs an Exchange bound to this channel.
func (ch *Channel) NewExchange(name, kind string, durable, autoDelete, internal bool, arguments amqp.Table) *exchange.Exchange {
	return exchange.New(ch, name, kind, durable, autoDelete, internal, arguments)
}

// HandleFrame dispatches a decoded method arriving on this channel to the
// class-specific registry in this package's handlers.go (spec.md §4.3).
// Returns a protocol error, if any, for the caller (Connection) to act on.
func (ch *Channel) HandleFrame(method amqp.Method) *amqp.Error {
	ch.logger.Debug("<- " + method.Name())
	ch.metrics.FramesReceived.Inc()
	if ch.content.inProgress() {
		return amqp.UnexpectedContentFrame(method.ClassID(), method.MethodID())
	}
	return dispatcher.Dispatch(ch, method)
}

// HandleContentHeader advances content assembly on the Header frame
// following a content-bearing method (spec.md §4.4). A header declaring a
// zero body-size completes the content at once.
func (ch *Channel) HandleContentHeader(header *amqp.ContentHeader) *amqp.Error {
	ch.metrics.FramesReceived.Inc()
	if err := ch.content.onHeader(header); err != nil {
		return err
	}
	if header.BodySize == 0 {
		return ch.deliverContent()
	}
	return nil
}

// HandleContentBody advances content assembly with one Body frame,
// dispatching the fully reassembled delivery once body-size is reached.
func (ch *Channel) HandleContentBody(body []byte) *amqp.Error {
	ch.metrics.FramesReceived.Inc()
	done, err := ch.content.onBody(body)
	if err != nil || !done {
		return err
	}
	ch.metrics.ContentBytes.Add(float64(len(ch.content.body)))
	return ch.deliverContent()
}

// handleConnectionInterruption implements spec.md §4.4's three-step reset,
// invoked on caller CloseOk, broker-initiated Close, and connection loss
// alike.
func (ch *Channel) handleConnectionInterruption() {
	ch.mu.Lock()
	ch.flowIsActive = true
	ch.awaiting = make(map[string][]interface{})
	ch.mu.Unlock()
	ch.ClearCallbacks()
}

// HandleConnectionInterruption is the exported entry point the Connection
// calls on every registered channel when the transport is lost or the
// connection closes (spec.md §7 items 4-5).
func (ch *Channel) HandleConnectionInterruption() {
	ch.handleConnectionInterruption()
	ch.SetStatus(StatusClosed)
}
