package amqp

import "bytes"

// Basic-class property flag bits (AMQP 0.9.1 standard order, high bit of
// the flags word first). Only basic.content-header properties are modeled;
// this is the only content class the spec (and any of its consumers)
// exercises.
const (
	flagContentType     = uint16(1 << 15)
	flagContentEncoding = uint16(1 << 14)
	flagHeaders         = uint16(1 << 13)
	flagDeliveryMode    = uint16(1 << 12)
	flagPriority        = uint16(1 << 11)
	flagCorrelationID   = uint16(1 << 10)
	flagReplyTo         = uint16(1 << 9)
	flagExpiration      = uint16(1 << 8)
	flagMessageID       = uint16(1 << 7)
	flagTimestamp       = uint16(1 << 6)
	flagType            = uint16(1 << 5)
	flagUserID          = uint16(1 << 4)
	flagAppID           = uint16(1 << 3)
	flagClusterID       = uint16(1 << 2)
)

// Canonical property keys as stored in a decoded ContentHeader.Properties
// table — the wire format encodes these positionally, not by name, but the
// rest of this codebase (content assembly, user callbacks) addresses them
// by name for convenience.
const (
	PropContentType     = "content-type"
	PropContentEncoding = "content-encoding"
	PropHeaders         = "headers"
	PropDeliveryMode    = "delivery-mode"
	PropPriority        = "priority"
	PropCorrelationID   = "correlation-id"
	PropReplyTo         = "reply-to"
	PropExpiration      = "expiration"
	PropMessageID       = "message-id"
	PropTimestamp       = "timestamp"
	PropType            = "type"
	PropUserID          = "user-id"
	PropAppID           = "app-id"
	PropClusterID       = "cluster-id"
)

func writeProperties(buf *bytes.Buffer, props Table) error {
	var flags uint16
	have := func(key string) (interface{}, bool) {
		v, ok := props[key]
		return v, ok
	}
	if v, ok := have(PropContentType); ok {
		_ = v
		flags |= flagContentType
	}
	if _, ok := have(PropContentEncoding); ok {
		flags |= flagContentEncoding
	}
	if _, ok := have(PropHeaders); ok {
		flags |= flagHeaders
	}
	if _, ok := have(PropDeliveryMode); ok {
		flags |= flagDeliveryMode
	}
	if _, ok := have(PropPriority); ok {
		flags |= flagPriority
	}
	if _, ok := have(PropCorrelationID); ok {
		flags |= flagCorrelationID
	}
	if _, ok := have(PropReplyTo); ok {
		flags |= flagReplyTo
	}
	if _, ok := have(PropExpiration); ok {
		flags |= flagExpiration
	}
	if _, ok := have(PropMessageID); ok {
		flags |= flagMessageID
	}
	if _, ok := have(PropTimestamp); ok {
		flags |= flagTimestamp
	}
	if _, ok := have(PropType); ok {
		flags |= flagType
	}
	if _, ok := have(PropUserID); ok {
		flags |= flagUserID
	}
	if _, ok := have(PropAppID); ok {
		flags |= flagAppID
	}
	if _, ok := have(PropClusterID); ok {
		flags |= flagClusterID
	}

	writeUint16(buf, flags)

	if flags&flagContentType != 0 {
		if err := writeShortString(buf, props[PropContentType].(string)); err != nil {
			return err
		}
	}
	if flags&flagContentEncoding != 0 {
		if err := writeShortString(buf, props[PropContentEncoding].(string)); err != nil {
			return err
		}
	}
	if flags&flagHeaders != 0 {
		if err := WriteTable(buf, toTable(props[PropHeaders])); err != nil {
			return err
		}
	}
	if flags&flagDeliveryMode != 0 {
		buf.WriteByte(props[PropDeliveryMode].(uint8))
	}
	if flags&flagPriority != 0 {
		buf.WriteByte(props[PropPriority].(uint8))
	}
	if flags&flagCorrelationID != 0 {
		if err := writeShortString(buf, props[PropCorrelationID].(string)); err != nil {
			return err
		}
	}
	if flags&flagReplyTo != 0 {
		if err := writeShortString(buf, props[PropReplyTo].(string)); err != nil {
			return err
		}
	}
	if flags&flagExpiration != 0 {
		if err := writeShortString(buf, props[PropExpiration].(string)); err != nil {
			return err
		}
	}
	if flags&flagMessageID != 0 {
		if err := writeShortString(buf, props[PropMessageID].(string)); err != nil {
			return err
		}
	}
	if flags&flagTimestamp != 0 {
		writeUint64(buf, props[PropTimestamp].(uint64))
	}
	if flags&flagType != 0 {
		if err := writeShortString(buf, props[PropType].(string)); err != nil {
			return err
		}
	}
	if flags&flagUserID != 0 {
		if err := writeShortString(buf, props[PropUserID].(string)); err != nil {
			return err
		}
	}
	if flags&flagAppID != 0 {
		if err := writeShortString(buf, props[PropAppID].(string)); err != nil {
			return err
		}
	}
	if flags&flagClusterID != 0 {
		if err := writeShortString(buf, props[PropClusterID].(string)); err != nil {
			return err
		}
	}
	return nil
}

func toTable(v interface{}) Table {
	if t, ok := v.(Table); ok {
		return t
	}
	return Table{}
}

func readProperties(r *bytes.Reader) (Table, error) {
	flags, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	props := Table{}

	if flags&flagContentType != 0 {
		s, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		props[PropContentType] = s
	}
	if flags&flagContentEncoding != 0 {
		s, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		props[PropContentEncoding] = s
	}
	if flags&flagHeaders != 0 {
		t, err := ReadTable(r)
		if err != nil {
			return nil, err
		}
		props[PropHeaders] = t
	}
	if flags&flagDeliveryMode != 0 {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		props[PropDeliveryMode] = b
	}
	if flags&flagPriority != 0 {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		props[PropPriority] = b
	}
	if flags&flagCorrelationID != 0 {
		s, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		props[PropCorrelationID] = s
	}
	if flags&flagReplyTo != 0 {
		s, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		props[PropReplyTo] = s
	}
	if flags&flagExpiration != 0 {
		s, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		props[PropExpiration] = s
	}
	if flags&flagMessageID != 0 {
		s, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		props[PropMessageID] = s
	}
	if flags&flagTimestamp != 0 {
		u, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		props[PropTimestamp] = u
	}
	if flags&flagType != 0 {
		s, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		props[PropType] = s
	}
	if flags&flagUserID != 0 {
		s, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		props[PropUserID] = s
	}
	if flags&flagAppID != 0 {
		s, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		props[PropAppID] = s
	}
	if flags&flagClusterID != 0 {
		s, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		props[PropClusterID] = s
	}
	return props, nil
}

func writeBits(buf *bytes.Buffer, bits ...bool) {
	var b byte
	for i, v := range bits {
		if v {
			b |= 1 << uint(i)
		}
	}
	buf.WriteByte(b)
}

func readBits(r *bytes.Reader, n int) ([]bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = b&(1<<uint(i)) != 0
	}
	return bits, nil
}
