package connection

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travis-repos/amq-client/amqp"
	"github.com/travis-repos/amq-client/config"
)

// fakeTransport is a loopback driver.Transport: Write encodes straight into
// a buffer a test can inspect, and the test drives onBytes itself by
// calling deliver.
type fakeTransport struct {
	mu      sync.Mutex
	written [][]byte
	onBytes func([]byte)
	onDisc  func(error)
}

func (f *fakeTransport) Write(b []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]byte, len(b))
	copy(cp, b)
	f.written = append(f.written, cp)
	return nil
}

func (f *fakeTransport) OnBytes(fn func([]byte))     { f.onBytes = fn }
func (f *fakeTransport) OnDisconnect(fn func(error)) { f.onDisc = fn }
func (f *fakeTransport) deliver(b []byte)            { f.onBytes(b) }
func (f *fakeTransport) lastWritten() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written[len(f.written)-1]
}
func (f *fakeTransport) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.written)
}

// fakeScheduler records AddPeriodic registrations without ever firing them;
// tests that care about heartbeat cadence invoke the captured fn directly.
type fakeScheduler struct {
	periodics []struct {
		interval int64
		fn       func()
	}
}

func (s *fakeScheduler) Defer(fn func()) { fn() }

func (s *fakeScheduler) AddPeriodic(intervalMillis int64, fn func()) func() {
	s.periodics = append(s.periodics, struct {
		interval int64
		fn       func()
	}{intervalMillis, fn})
	cancelled := false
	return func() { cancelled = true; _ = cancelled }
}

// dialInBackground starts Dial on a goroutine (since it blocks on the
// handshake) and returns a function the test uses to feed server replies.
func dialInBackground(t *testing.T, cfg config.Dial) (*fakeTransport, *fakeScheduler, chan *Connection, chan error) {
	t.Helper()
	tr := &fakeTransport{}
	sched := &fakeScheduler{}
	connCh := make(chan *Connection, 1)
	errCh := make(chan error, 1)

	go func() {
		c, err := Dial(context.Background(), tr, sched, cfg, nil)
		if err != nil {
			errCh <- err
			return
		}
		connCh <- c
	}()

	// Wait for the protocol header write before the test starts feeding
	// handshake replies.
	require.Eventually(t, func() bool { return tr.writeCount() >= 1 }, time.Second, time.Millisecond)
	return tr, sched, connCh, errCh
}

func encode(t *testing.T, channelID uint16, m amqp.Method) []byte {
	t.Helper()
	b, err := amqp.EncodeMethodFrame(channelID, m)
	require.NoError(t, err)
	return b
}

func TestDialPerformsFullHandshake(t *testing.T) {
	cfg := config.DefaultDial()
	tr, sched, connCh, errCh := dialInBackground(t, cfg)

	assert.Equal(t, amqp.ProtocolHeader, tr.lastWritten())

	tr.deliver(encode(t, 0, &amqp.ConnectionStart{ServerProperties: amqp.Table{"product": "broker"}}))
	require.Eventually(t, func() bool { return tr.writeCount() >= 2 }, time.Second, time.Millisecond)

	tr.deliver(encode(t, 0, &amqp.ConnectionTune{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 60}))
	require.Eventually(t, func() bool { return tr.writeCount() >= 4 }, time.Second, time.Millisecond)

	tr.deliver(encode(t, 0, &amqp.ConnectionOpenOk{}))

	select {
	case c := <-connCh:
		assert.Equal(t, StatusOpen, c.Status())
		assert.Equal(t, uint16(2047), c.ChannelMax())
		assert.Len(t, sched.periodics, 1)
	case err := <-errCh:
		t.Fatalf("Dial failed: %v", err)
	case <-time.After(time.Second):
		t.Fatal("Dial did not complete")
	}
}

func TestDialNegotiatesChannelMaxDown(t *testing.T) {
	cfg := config.DefaultDial()
	cfg.ChannelMax = 10
	tr, _, connCh, errCh := dialInBackground(t, cfg)

	tr.deliver(encode(t, 0, &amqp.ConnectionStart{ServerProperties: amqp.Table{}}))
	require.Eventually(t, func() bool { return tr.writeCount() >= 2 }, time.Second, time.Millisecond)
	tr.deliver(encode(t, 0, &amqp.ConnectionTune{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 0}))
	require.Eventually(t, func() bool { return tr.writeCount() >= 4 }, time.Second, time.Millisecond)
	tr.deliver(encode(t, 0, &amqp.ConnectionOpenOk{}))

	select {
	case c := <-connCh:
		assert.Equal(t, uint16(10), c.ChannelMax())
	case err := <-errCh:
		t.Fatalf("Dial failed: %v", err)
	case <-time.After(time.Second):
		t.Fatal("Dial did not complete")
	}
}

func openedConnection(t *testing.T) (*Connection, *fakeTransport) {
	t.Helper()
	cfg := config.DefaultDial()
	tr, _, connCh, errCh := dialInBackground(t, cfg)

	tr.deliver(encode(t, 0, &amqp.ConnectionStart{ServerProperties: amqp.Table{}}))
	require.Eventually(t, func() bool { return tr.writeCount() >= 2 }, time.Second, time.Millisecond)
	tr.deliver(encode(t, 0, &amqp.ConnectionTune{ChannelMax: 2047, FrameMax: 131072, Heartbeat: 0}))
	require.Eventually(t, func() bool { return tr.writeCount() >= 4 }, time.Second, time.Millisecond)
	tr.deliver(encode(t, 0, &amqp.ConnectionOpenOk{}))

	select {
	case c := <-connCh:
		return c, tr
	case err := <-errCh:
		t.Fatalf("Dial failed: %v", err)
	case <-time.After(time.Second):
		t.Fatal("Dial did not complete")
	}
	return nil, nil
}

func TestOpenChannelRegistersInTable(t *testing.T) {
	c, _ := openedConnection(t)

	opened := false
	ch, err := c.OpenChannel(1, func(arg interface{}) { opened = true })
	require.NoError(t, err)

	c.handleFrame(&amqp.Frame{Type: amqp.FrameMethod, ChannelID: 1, Method: &amqp.ChannelOpenOk{}})

	assert.True(t, opened)
	got, ok := c.Channel(1)
	assert.True(t, ok)
	assert.Same(t, ch, got)
}

func TestBrokerInitiatedCloseTearsDownAllChannels(t *testing.T) {
	c, tr := openedConnection(t)

	_, err := c.OpenChannel(1, func(arg interface{}) {})
	require.NoError(t, err)
	c.handleFrame(&amqp.Frame{Type: amqp.FrameMethod, ChannelID: 1, Method: &amqp.ChannelOpenOk{}})

	var gotErr interface{}
	c.DefineCallback("error", func(arg interface{}) { gotErr = arg })

	writesBefore := tr.writeCount()
	tr.deliver(encode(t, 0, &amqp.ConnectionClose{ReplyCode: 320, ReplyText: "CONNECTION_FORCED", ClassID_: 0, MethodID_: 0}))

	require.Eventually(t, func() bool { return tr.writeCount() > writesBefore }, time.Second, time.Millisecond)
	assert.Equal(t, StatusClosed, c.Status())
	_, stillThere := c.Channel(1)
	assert.False(t, stillThere)
	require.NotNil(t, gotErr)
	assert.Equal(t, uint16(320), gotErr.(*amqp.Error).ReplyCode)
}

func TestTransportDisconnectTearsDownConnection(t *testing.T) {
	c, tr := openedConnection(t)
	_, err := c.OpenChannel(1, func(arg interface{}) {})
	require.NoError(t, err)

	tr.onDisc(assertErr{"socket reset"})
	assert.Equal(t, StatusClosed, c.Status())
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }

func TestSendContentSplitsBodyAcrossFrameMax(t *testing.T) {
	c, tr := openedConnection(t)
	body := bytes.Repeat([]byte{'a'}, 10)
	c.mu.Lock()
	c.frameMax = 4
	c.mu.Unlock()

	writesBefore := tr.writeCount()
	err := c.SendContent(1, &amqp.ContentHeader{ClassID: amqp.ClassBasic, BodySize: uint64(len(body))}, body)
	require.NoError(t, err)
	assert.Equal(t, writesBefore+4, tr.writeCount()) // header + three body frames (4+4+2 bytes)
}
