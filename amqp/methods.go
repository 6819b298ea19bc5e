package amqp

import (
	"bytes"
)

// Method is any AMQP 0.9.1 method payload. ClassID/MethodID identify it on
// the wire (spec.md §3's "Method frame" glossary entry); Name is the
// dotted protocol name used in logs; Write serializes the arguments.
type Method interface {
	ClassID() uint16
	MethodID() uint16
	Name() string
	Write(buf *bytes.Buffer) error
}

type decodeFunc func(r *bytes.Reader) (Method, error)

var methodRegistry = map[[2]uint16]decodeFunc{}

func register(classID, methodID uint16, fn decodeFunc) {
	methodRegistry[[2]uint16{classID, methodID}] = fn
}

// DecodeMethod reads the (class-id, method-id) prefix and dispatches to
// the registered decoder. Returns UnknownMethod if no method is
// registered for the pair (spec.md §4.1).
func DecodeMethod(payload []byte) (Method, error) {
	r := bytes.NewReader(payload)
	classID, err := readUint16(r)
	if err != nil {
		return nil, MalformedFrame("method class-id")
	}
	methodID, err := readUint16(r)
	if err != nil {
		return nil, MalformedFrame("method method-id")
	}
	fn, ok := methodRegistry[[2]uint16{classID, methodID}]
	if !ok {
		return nil, UnknownMethod(classID, methodID)
	}
	return fn(r)
}

// ---- connection ----

type ConnectionStart struct {
	VersionMajor     uint8
	VersionMinor     uint8
	ServerProperties Table
	Mechanisms       string
	Locales          string
}

func (m *ConnectionStart) ClassID() uint16  { return ClassConnection }
func (m *ConnectionStart) MethodID() uint16 { return MethodConnectionStart }
func (m *ConnectionStart) Name() string     { return "connection.start" }
func (m *ConnectionStart) Write(buf *bytes.Buffer) error {
	buf.WriteByte(m.VersionMajor)
	buf.WriteByte(m.VersionMinor)
	if err := WriteTable(buf, m.ServerProperties); err != nil {
		return err
	}
	writeLongString(buf, m.Mechanisms)
	writeLongString(buf, m.Locales)
	return nil
}

func init() {
	register(ClassConnection, MethodConnectionStart, func(r *bytes.Reader) (Method, error) {
		m := &ConnectionStart{}
		var err error
		if m.VersionMajor, err = r.ReadByte(); err != nil {
			return nil, err
		}
		if m.VersionMinor, err = r.ReadByte(); err != nil {
			return nil, err
		}
		if m.ServerProperties, err = ReadTable(r); err != nil {
			return nil, err
		}
		if m.Mechanisms, err = readLongString(r); err != nil {
			return nil, err
		}
		if m.Locales, err = readLongString(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type ConnectionStartOk struct {
	ClientProperties Table
	Mechanism        string
	Response         string
	Locale           string
}

func (m *ConnectionStartOk) ClassID() uint16  { return ClassConnection }
func (m *ConnectionStartOk) MethodID() uint16 { return MethodConnectionStartOk }
func (m *ConnectionStartOk) Name() string     { return "connection.start-ok" }
func (m *ConnectionStartOk) Write(buf *bytes.Buffer) error {
	if err := WriteTable(buf, m.ClientProperties); err != nil {
		return err
	}
	if err := writeShortString(buf, m.Mechanism); err != nil {
		return err
	}
	writeLongString(buf, m.Response)
	return writeShortString(buf, m.Locale)
}

func init() {
	register(ClassConnection, MethodConnectionStartOk, func(r *bytes.Reader) (Method, error) {
		m := &ConnectionStartOk{}
		var err error
		if m.ClientProperties, err = ReadTable(r); err != nil {
			return nil, err
		}
		if m.Mechanism, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.Response, err = readLongString(r); err != nil {
			return nil, err
		}
		if m.Locale, err = readShortString(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type ConnectionTune struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (m *ConnectionTune) ClassID() uint16  { return ClassConnection }
func (m *ConnectionTune) MethodID() uint16 { return MethodConnectionTune }
func (m *ConnectionTune) Name() string     { return "connection.tune" }
func (m *ConnectionTune) Write(buf *bytes.Buffer) error {
	writeUint16(buf, m.ChannelMax)
	writeUint32(buf, m.FrameMax)
	writeUint16(buf, m.Heartbeat)
	return nil
}

func init() {
	register(ClassConnection, MethodConnectionTune, func(r *bytes.Reader) (Method, error) {
		m := &ConnectionTune{}
		var err error
		if m.ChannelMax, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.FrameMax, err = readUint32(r); err != nil {
			return nil, err
		}
		if m.Heartbeat, err = readUint16(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type ConnectionTuneOk struct {
	ChannelMax uint16
	FrameMax   uint32
	Heartbeat  uint16
}

func (m *ConnectionTuneOk) ClassID() uint16  { return ClassConnection }
func (m *ConnectionTuneOk) MethodID() uint16 { return MethodConnectionTuneOk }
func (m *ConnectionTuneOk) Name() string     { return "connection.tune-ok" }
func (m *ConnectionTuneOk) Write(buf *bytes.Buffer) error {
	writeUint16(buf, m.ChannelMax)
	writeUint32(buf, m.FrameMax)
	writeUint16(buf, m.Heartbeat)
	return nil
}

func init() {
	register(ClassConnection, MethodConnectionTuneOk, func(r *bytes.Reader) (Method, error) {
		m := &ConnectionTuneOk{}
		var err error
		if m.ChannelMax, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.FrameMax, err = readUint32(r); err != nil {
			return nil, err
		}
		if m.Heartbeat, err = readUint16(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type ConnectionOpen struct {
	VirtualHost string
}

func (m *ConnectionOpen) ClassID() uint16  { return ClassConnection }
func (m *ConnectionOpen) MethodID() uint16 { return MethodConnectionOpen }
func (m *ConnectionOpen) Name() string     { return "connection.open" }
func (m *ConnectionOpen) Write(buf *bytes.Buffer) error {
	if err := writeShortString(buf, m.VirtualHost); err != nil {
		return err
	}
	if err := writeShortString(buf, ""); err != nil { // reserved capabilities
		return err
	}
	buf.WriteByte(0) // reserved insist
	return nil
}

func init() {
	register(ClassConnection, MethodConnectionOpen, func(r *bytes.Reader) (Method, error) {
		m := &ConnectionOpen{}
		var err error
		if m.VirtualHost, err = readShortString(r); err != nil {
			return nil, err
		}
		if _, err = readShortString(r); err != nil {
			return nil, err
		}
		if _, err = r.ReadByte(); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type ConnectionOpenOk struct{}

func (m *ConnectionOpenOk) ClassID() uint16                  { return ClassConnection }
func (m *ConnectionOpenOk) MethodID() uint16                 { return MethodConnectionOpenOk }
func (m *ConnectionOpenOk) Name() string                     { return "connection.open-ok" }
func (m *ConnectionOpenOk) Write(buf *bytes.Buffer) error {
	return writeShortString(buf, "") // reserved
}

func init() {
	register(ClassConnection, MethodConnectionOpenOk, func(r *bytes.Reader) (Method, error) {
		if _, err := readShortString(r); err != nil {
			return nil, err
		}
		return &ConnectionOpenOk{}, nil
	})
}

type ConnectionClose struct {
	ReplyCode uint16
	ReplyText string
	ClassID_  uint16
	MethodID_ uint16
}

func (m *ConnectionClose) ClassID() uint16  { return ClassConnection }
func (m *ConnectionClose) MethodID() uint16 { return MethodConnectionClose }
func (m *ConnectionClose) Name() string     { return "connection.close" }
func (m *ConnectionClose) Write(buf *bytes.Buffer) error {
	writeUint16(buf, m.ReplyCode)
	if err := writeShortString(buf, m.ReplyText); err != nil {
		return err
	}
	writeUint16(buf, m.ClassID_)
	writeUint16(buf, m.MethodID_)
	return nil
}

func init() {
	register(ClassConnection, MethodConnectionClose, func(r *bytes.Reader) (Method, error) {
		m := &ConnectionClose{}
		var err error
		if m.ReplyCode, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.ReplyText, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.ClassID_, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.MethodID_, err = readUint16(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type ConnectionCloseOk struct{}

func (m *ConnectionCloseOk) ClassID() uint16         { return ClassConnection }
func (m *ConnectionCloseOk) MethodID() uint16        { return MethodConnectionCloseOk }
func (m *ConnectionCloseOk) Name() string            { return "connection.close-ok" }
func (m *ConnectionCloseOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassConnection, MethodConnectionCloseOk, func(r *bytes.Reader) (Method, error) {
		return &ConnectionCloseOk{}, nil
	})
}

// ---- channel ----

type ChannelOpen struct{}

func (m *ChannelOpen) ClassID() uint16  { return ClassChannel }
func (m *ChannelOpen) MethodID() uint16 { return MethodChannelOpen }
func (m *ChannelOpen) Name() string     { return "channel.open" }
func (m *ChannelOpen) Write(buf *bytes.Buffer) error {
	return writeShortString(buf, "") // reserved
}

func init() {
	register(ClassChannel, MethodChannelOpen, func(r *bytes.Reader) (Method, error) {
		if _, err := readShortString(r); err != nil {
			return nil, err
		}
		return &ChannelOpen{}, nil
	})
}

type ChannelOpenOk struct{}

func (m *ChannelOpenOk) ClassID() uint16  { return ClassChannel }
func (m *ChannelOpenOk) MethodID() uint16 { return MethodChannelOpenOk }
func (m *ChannelOpenOk) Name() string     { return "channel.open-ok" }
func (m *ChannelOpenOk) Write(buf *bytes.Buffer) error {
	writeLongString(buf, "") // reserved
	return nil
}

func init() {
	register(ClassChannel, MethodChannelOpenOk, func(r *bytes.Reader) (Method, error) {
		if _, err := readLongString(r); err != nil {
			return nil, err
		}
		return &ChannelOpenOk{}, nil
	})
}

type ChannelFlow struct {
	Active bool
}

func (m *ChannelFlow) ClassID() uint16  { return ClassChannel }
func (m *ChannelFlow) MethodID() uint16 { return MethodChannelFlow }
func (m *ChannelFlow) Name() string     { return "channel.flow" }
func (m *ChannelFlow) Write(buf *bytes.Buffer) error {
	writeBits(buf, m.Active)
	return nil
}

func init() {
	register(ClassChannel, MethodChannelFlow, func(r *bytes.Reader) (Method, error) {
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		return &ChannelFlow{Active: bits[0]}, nil
	})
}

type ChannelFlowOk struct {
	Active bool
}

func (m *ChannelFlowOk) ClassID() uint16  { return ClassChannel }
func (m *ChannelFlowOk) MethodID() uint16 { return MethodChannelFlowOk }
func (m *ChannelFlowOk) Name() string     { return "channel.flow-ok" }
func (m *ChannelFlowOk) Write(buf *bytes.Buffer) error {
	writeBits(buf, m.Active)
	return nil
}

func init() {
	register(ClassChannel, MethodChannelFlowOk, func(r *bytes.Reader) (Method, error) {
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		return &ChannelFlowOk{Active: bits[0]}, nil
	})
}

type ChannelClose struct {
	ReplyCode uint16
	ReplyText string
	ClassID_  uint16
	MethodID_ uint16
}

func (m *ChannelClose) ClassID() uint16  { return ClassChannel }
func (m *ChannelClose) MethodID() uint16 { return MethodChannelClose }
func (m *ChannelClose) Name() string     { return "channel.close" }
func (m *ChannelClose) Write(buf *bytes.Buffer) error {
	writeUint16(buf, m.ReplyCode)
	if err := writeShortString(buf, m.ReplyText); err != nil {
		return err
	}
	writeUint16(buf, m.ClassID_)
	writeUint16(buf, m.MethodID_)
	return nil
}

func init() {
	register(ClassChannel, MethodChannelClose, func(r *bytes.Reader) (Method, error) {
		m := &ChannelClose{}
		var err error
		if m.ReplyCode, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.ReplyText, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.ClassID_, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.MethodID_, err = readUint16(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type ChannelCloseOk struct{}

func (m *ChannelCloseOk) ClassID() uint16         { return ClassChannel }
func (m *ChannelCloseOk) MethodID() uint16        { return MethodChannelCloseOk }
func (m *ChannelCloseOk) Name() string            { return "channel.close-ok" }
func (m *ChannelCloseOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassChannel, MethodChannelCloseOk, func(r *bytes.Reader) (Method, error) {
		return &ChannelCloseOk{}, nil
	})
}
