// Package connection implements Connection (spec.md §3, §4.6): the
// opening handshake, the channel table, channel-id bounds enforcement and
// outbound frame transmission. Grounded on the teacher's Connection type
// referenced throughout server/channel.go (conn.channels, conn.status,
// conn.qos, conn.GetVirtualHost()) — reworked client-side: this package
// dials and negotiates rather than accepting an inbound socket.
package connection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/travis-repos/amq-client/amqp"
	"github.com/travis-repos/amq-client/channel"
	"github.com/travis-repos/amq-client/config"
	"github.com/travis-repos/amq-client/driver"
	"github.com/travis-repos/amq-client/entity"
	"github.com/travis-repos/amq-client/log"
	"github.com/travis-repos/amq-client/metrics"
)

// Status values for Connection.Status().
const (
	StatusNew entity.Status = iota
	StatusOpening
	StatusOpen
	StatusClosing
	StatusClosed
)

// Connection owns the channel table multiplexed over one transport
// (spec.md §3). Channel-id 0 is reserved for connection-scoped methods and
// is never present in the channel table.
type Connection struct {
	entity.Base

	transport driver.Transport
	scheduler driver.Scheduler
	decoder   *amqp.Decoder
	cfg       config.Dial
	metrics   *metrics.Registry
	logger    *logrus.Entry

	mu               sync.Mutex
	channels         map[uint16]*channel.Channel
	channelMax       uint16
	frameMax         uint32
	heartbeat        uint16
	serverProperties amqp.Table

	handshake chan handshakeEvent

	heartbeatCancel func()
}

type handshakeEvent struct {
	method amqp.Method
	err    error
}

// Dial performs the opening handshake over transport (spec.md §4.4's
// "protocol header -> Start/StartOk -> Tune/TuneOk -> Open/OpenOk",
// restated as SPEC_FULL §4.6). It blocks until the handshake completes or
// ctx is cancelled; afterward, inbound frames are routed asynchronously
// through transport's OnBytes callback for the lifetime of the connection.
func Dial(ctx context.Context, t driver.Transport, s driver.Scheduler, cfg config.Dial, reg *metrics.Registry) (*Connection, error) {
	if t == nil {
		return nil, &amqp.NilArgument{What: "connection.Transport"}
	}
	if reg == nil {
		reg = metrics.Noop()
	}

	c := &Connection{
		transport: t,
		scheduler: s,
		decoder:   amqp.NewDecoder(cfg.FrameMax),
		cfg:       cfg,
		metrics:   reg,
		channels:  make(map[uint16]*channel.Channel),
		frameMax:  cfg.FrameMax,
		handshake: make(chan handshakeEvent, 1),
	}
	c.Init(c)
	c.SetStatus(StatusNew)
	c.logger = log.For("connection", fmt.Sprintf("%p", c))

	t.OnBytes(c.onBytes)
	t.OnDisconnect(c.onDisconnect)

	c.SetStatus(StatusOpening)
	if err := t.Write(amqp.ProtocolHeader); err != nil {
		return nil, err
	}

	if err := c.awaitHandshake(ctx, func(m amqp.Method) (bool, error) {
		start, ok := m.(*amqp.ConnectionStart)
		if !ok {
			return false, fmt.Errorf("connection: expected connection.start, got %s", m.Name())
		}
		c.serverProperties = start.ServerProperties
		return true, c.SendMethod(0, &amqp.ConnectionStartOk{
			ClientProperties: amqp.Table{"product": "amq-client"},
			Mechanism:        "PLAIN",
			Response:         "\x00\x00",
			Locale:           "en_US",
		})
	}); err != nil {
		return nil, err
	}

	if err := c.awaitHandshake(ctx, func(m amqp.Method) (bool, error) {
		tune, ok := m.(*amqp.ConnectionTune)
		if !ok {
			return false, fmt.Errorf("connection: expected connection.tune, got %s", m.Name())
		}
		c.mu.Lock()
		c.channelMax = negotiateChannelMax(cfg.ChannelMax, tune.ChannelMax)
		c.frameMax = negotiateFrameMax(cfg.FrameMax, tune.FrameMax)
		c.heartbeat = negotiateHeartbeat(uint16(cfg.Heartbeat/time.Second), tune.Heartbeat)
		c.mu.Unlock()
		return true, c.SendMethod(0, &amqp.ConnectionTuneOk{
			ChannelMax: c.channelMax,
			FrameMax:   c.frameMax,
			Heartbeat:  c.heartbeat,
		})
	}); err != nil {
		return nil, err
	}

	if err := c.SendMethod(0, &amqp.ConnectionOpen{VirtualHost: cfg.VirtualHost}); err != nil {
		return nil, err
	}
	if err := c.awaitHandshake(ctx, func(m amqp.Method) (bool, error) {
		if _, ok := m.(*amqp.ConnectionOpenOk); !ok {
			return false, fmt.Errorf("connection: expected connection.open-ok, got %s", m.Name())
		}
		return true, nil
	}); err != nil {
		return nil, err
	}

	c.SetStatus(StatusOpen)
	c.logger.Info("connection open")

	if s != nil && c.heartbeat > 0 {
		intervalMillis := int64(c.heartbeat) * 1000 / 2
		c.heartbeatCancel = s.AddPeriodic(intervalMillis, c.sendHeartbeat)
	}

	return c, nil
}

// negotiateChannelMax applies spec.md §6: the minimum of the two proposals,
// falling back to amqp.DefaultChannelMax when the broker proposes 0.
func negotiateChannelMax(requested, brokerProposed uint16) uint16 {
	fallback := config.NegotiateChannelMax(brokerProposed)
	if requested != 0 && requested < fallback {
		return requested
	}
	return fallback
}

// negotiateHeartbeat takes the smaller of the two non-zero proposals; zero
// on either side (meaning "disabled") wins outright, matching the broker's
// own tune negotiation.
func negotiateHeartbeat(requested, brokerProposed uint16) uint16 {
	if requested == 0 || brokerProposed == 0 {
		return 0
	}
	if requested < brokerProposed {
		return requested
	}
	return brokerProposed
}

func negotiateFrameMax(requested, brokerProposed uint32) uint32 {
	if brokerProposed == 0 {
		return requested
	}
	if requested != 0 && requested < brokerProposed {
		return requested
	}
	return brokerProposed
}

// awaitHandshake blocks for exactly one handshake method, applying step to
// it. Only used during Dial; after Dial returns, onBytes drives everything.
func (c *Connection) awaitHandshake(ctx context.Context, step func(amqp.Method) (bool, error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.handshake:
			if ev.err != nil {
				return ev.err
			}
			done, err := step(ev.method)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// onBytes feeds newly-arrived bytes to the decoder and processes every
// complete frame — the sole entry point for inbound data once Dial has
// wired it via transport.OnBytes.
func (c *Connection) onBytes(b []byte) {
	c.decoder.Feed(b)
	for {
		frame, err, ok := c.decoder.Next()
		if err != nil {
			c.fatal(err.(*amqp.Error))
			return
		}
		if !ok {
			return
		}
		c.handleFrame(frame)
	}
}

func (c *Connection) handleFrame(frame *amqp.Frame) {
	c.metrics.FramesReceived.Inc()

	if frame.ChannelID == 0 {
		c.handleConnectionFrame(frame)
		return
	}

	c.mu.Lock()
	ch, ok := c.channels[frame.ChannelID]
	c.mu.Unlock()
	if !ok {
		c.fatal(amqp.MalformedFrame(fmt.Sprintf("frame on unregistered channel %d", frame.ChannelID)))
		return
	}

	var protoErr *amqp.Error
	switch frame.Type {
	case amqp.FrameMethod:
		protoErr = ch.HandleFrame(frame.Method)
	case amqp.FrameHeader:
		protoErr = ch.HandleContentHeader(frame.ContentHeader)
	case amqp.FrameBody:
		protoErr = ch.HandleContentBody(frame.Body)
	}
	if protoErr != nil {
		c.raise(protoErr)
	}
}

func (c *Connection) handleConnectionFrame(frame *amqp.Frame) {
	if frame.Type == amqp.FrameHeartbeat {
		return
	}
	if frame.Type != amqp.FrameMethod {
		c.fatal(amqp.MalformedFrame("non-method frame on channel 0"))
		return
	}

	switch m := frame.Method.(type) {
	case *amqp.ConnectionClose:
		c.ExecCallback("error", amqp.NewConnectionError(m.ReplyCode, m.ReplyText, m.ClassID_, m.MethodID_))
		_ = c.SendMethod(0, &amqp.ConnectionCloseOk{})
		c.teardown()
	case *amqp.ConnectionCloseOk:
		c.ExecCallbackOnce("close", m)
		c.teardown()
	default:
		select {
		case c.handshake <- handshakeEvent{method: frame.Method}:
		default:
			c.fatal(amqp.UnknownMethod(frame.Method.ClassID(), frame.Method.MethodID()))
		}
	}
}

func (c *Connection) onDisconnect(err error) {
	c.ExecCallback("error", err)
	c.teardown()
}

// raise handles a protocol error surfaced by a channel. A connection-scoped
// error (e.g. UnknownMethod from the dispatcher) tears down the whole
// connection (spec.md §7 item 2). A channel-scoped error such as
// UnexpectedContentFrame is only logged: no Channel.Close is sent for it
// and the channel keeps its current state.
func (c *Connection) raise(err *amqp.Error) {
	if err.ErrorType == amqp.ErrorOnConnection {
		c.fatal(err)
		return
	}
	c.logger.WithError(err).Warn("channel-level protocol error")
}

func (c *Connection) fatal(err *amqp.Error) {
	c.logger.WithError(err).Error("fatal protocol error")
	_ = c.SendMethod(0, &amqp.ConnectionClose{ReplyCode: err.ReplyCode, ReplyText: err.ReplyText, ClassID_: err.ClassID, MethodID_: err.MethodID})
	c.ExecCallback("error", err)
	c.teardown()
}

// teardown invokes handle_connection_interruption on every registered
// channel (spec.md §7 items 4-5) and empties the channel table.
func (c *Connection) teardown() {
	if c.heartbeatCancel != nil {
		c.heartbeatCancel()
		c.heartbeatCancel = nil
	}

	c.mu.Lock()
	channels := make([]*channel.Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		channels = append(channels, ch)
	}
	c.channels = make(map[uint16]*channel.Channel)
	c.mu.Unlock()

	for _, ch := range channels {
		ch.HandleConnectionInterruption()
	}
	c.SetStatus(StatusClosed)
}

// OpenChannel constructs and opens a new Channel with the given id.
func (c *Connection) OpenChannel(id uint16, cb entity.Callback) (*channel.Channel, error) {
	if id == 0 {
		return nil, fmt.Errorf("connection: channel 0 is reserved for connection-scoped methods")
	}
	c.mu.Lock()
	channelMax := c.channelMax
	_, exists := c.channels[id]
	c.mu.Unlock()
	if exists {
		return nil, fmt.Errorf("connection: channel %d already open", id)
	}

	ch, err := channel.New(id, channelMax, c, c.metrics)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.channels[id] = ch
	c.mu.Unlock()
	c.metrics.ChannelsOpen.Inc()

	if err := ch.Open(cb); err != nil {
		return nil, err
	}
	return ch, nil
}

// SendMethod implements channel.Connection: encodes and transmits method
// on channelID.
func (c *Connection) SendMethod(channelID uint16, method amqp.Method) error {
	frame, err := amqp.EncodeMethodFrame(channelID, method)
	if err != nil {
		return err
	}
	c.metrics.FramesSent.Inc()
	return c.transport.Write(frame)
}

// SendContent implements channel.Connection: transmits a header frame
// followed by the body frames header.BodySize requires.
func (c *Connection) SendContent(channelID uint16, header *amqp.ContentHeader, body []byte) error {
	headerFrame, err := amqp.EncodeHeaderFrame(channelID, header)
	if err != nil {
		return err
	}
	if err := c.transport.Write(headerFrame); err != nil {
		return err
	}
	for _, bodyFrame := range amqp.EncodeBodyFrames(channelID, body, c.FrameMax()) {
		if err := c.transport.Write(bodyFrame); err != nil {
			return err
		}
	}
	return nil
}

// FrameMax implements channel.Connection.
func (c *Connection) FrameMax() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameMax
}

// ChannelMax returns the negotiated channel_max.
func (c *Connection) ChannelMax() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channelMax
}

// RemoveChannel implements channel.Connection: unregisters id from the
// channel table (spec.md §3's "on Close or CloseOk it is unregistered").
func (c *Connection) RemoveChannel(id uint16) {
	c.mu.Lock()
	delete(c.channels, id)
	c.mu.Unlock()
	c.metrics.ChannelsOpen.Dec()
}

// Channel returns the channel registered under id, if any.
func (c *Connection) Channel(id uint16) (*channel.Channel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.channels[id]
	return ch, ok
}

// sendHeartbeat emits the zero-payload heartbeat frame. Dial registers it
// with the scheduler once the negotiated heartbeat interval is known;
// choosing whether/when a real clock actually fires it is the scheduler's
// responsibility (spec.md §1 non-goals).
func (c *Connection) sendHeartbeat() {
	if err := c.transport.Write(amqp.EncodeHeartbeat()); err != nil {
		c.logger.WithError(err).Warn("heartbeat write failed")
	}
}

// Disconnect closes the connection from the caller's side, sending
// Connection.Close and tearing down every channel once CloseOk arrives. A
// failed write is returned to the caller and triggers no teardown.
func (c *Connection) Disconnect(cb entity.Callback) error {
	c.SetStatus(StatusClosing)
	c.RedefineCallback("close", cb)
	return c.SendMethod(0, &amqp.ConnectionClose{
		ReplyCode: amqp.ReplySuccess,
		ReplyText: amqp.DefaultCloseReplyText,
	})
}
