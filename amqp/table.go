package amqp

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/pkg/errors"
)

// Table is an AMQP 0.9.1 field table: a string-keyed map of typed values.
// Every declare/bind/consume operation in spec.md §3 carries one as its
// "arguments" attribute.
type Table map[string]interface{}

// Decimal is the AMQP 'D' field type: a scaled integer.
type Decimal struct {
	Scale uint8
	Value int32
}

// Field type tags, standard AMQP 0.9.1 set.
const (
	tagBoolean   = 't'
	tagShortShortInt  = 'b'
	tagShortShortUint = 'B'
	tagShortInt  = 'U'
	tagShortUint = 'u'
	tagLongInt   = 'I'
	tagLongUint  = 'i'
	tagLongLongInt  = 'L'
	tagLongLongUint = 'l'
	tagFloat     = 'f'
	tagDouble    = 'd'
	tagDecimal   = 'D'
	tagShortStr  = 's'
	tagLongStr   = 'S'
	tagArray     = 'A'
	tagTimestamp = 'T'
	tagTable     = 'F'
	tagVoid      = 'V'
)

func writeShortString(buf *bytes.Buffer, s string) error {
	if len(s) > 255 {
		return errors.New("amqp: short string exceeds 255 bytes")
	}
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
	return nil
}

func readShortString(r *bytes.Reader) (string, error) {
	n, err := r.ReadByte()
	if err != nil {
		return "", errors.Wrap(err, "amqp: short string length")
	}
	b := make([]byte, n)
	if _, err := readFull(r, b); err != nil {
		return "", errors.Wrap(err, "amqp: short string body")
	}
	return string(b), nil
}

func writeLongString(buf *bytes.Buffer, s string) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
	buf.Write(lenBuf[:])
	buf.WriteString(s)
}

func readLongString(r *bytes.Reader) (string, error) {
	var lenBuf [4]byte
	if _, err := readFull(r, lenBuf[:]); err != nil {
		return "", errors.Wrap(err, "amqp: long string length")
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	b := make([]byte, n)
	if _, err := readFull(r, b); err != nil {
		return "", errors.Wrap(err, "amqp: long string body")
	}
	return string(b), nil
}

func readFull(r *bytes.Reader, b []byte) (int, error) {
	n := 0
	for n < len(b) {
		m, err := r.Read(b[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// WriteTable serializes a field table as a long-string-prefixed blob.
func WriteTable(buf *bytes.Buffer, table Table) error {
	inner := &bytes.Buffer{}
	for key, val := range table {
		if err := writeShortString(inner, key); err != nil {
			return err
		}
		if err := writeFieldValue(inner, val); err != nil {
			return errors.Wrapf(err, "amqp: table field %q", key)
		}
	}
	writeUint32(buf, uint32(inner.Len()))
	buf.Write(inner.Bytes())
	return nil
}

// ReadTable decodes a length-prefixed field table.
func ReadTable(r *bytes.Reader) (Table, error) {
	var lenBuf [4]byte
	if _, err := readFull(r, lenBuf[:]); err != nil {
		return nil, errors.Wrap(err, "amqp: table length")
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	body := make([]byte, n)
	if _, err := readFull(r, body); err != nil {
		return nil, errors.Wrap(err, "amqp: table body")
	}
	inner := bytes.NewReader(body)
	table := Table{}
	for inner.Len() > 0 {
		key, err := readShortString(inner)
		if err != nil {
			return nil, err
		}
		val, err := readFieldValue(inner)
		if err != nil {
			return nil, errors.Wrapf(err, "amqp: table field %q", key)
		}
		table[key] = val
	}
	return table, nil
}

func writeFieldValue(buf *bytes.Buffer, val interface{}) error {
	switch v := val.(type) {
	case nil:
		buf.WriteByte(tagVoid)
	case bool:
		buf.WriteByte(tagBoolean)
		if v {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case int8:
		buf.WriteByte(tagShortShortInt)
		buf.WriteByte(byte(v))
	case uint8:
		buf.WriteByte(tagShortShortUint)
		buf.WriteByte(v)
	case int16:
		buf.WriteByte(tagShortInt)
		writeUint16(buf, uint16(v))
	case uint16:
		buf.WriteByte(tagShortUint)
		writeUint16(buf, v)
	case int32:
		buf.WriteByte(tagLongInt)
		writeUint32(buf, uint32(v))
	case uint32:
		buf.WriteByte(tagLongUint)
		writeUint32(buf, v)
	case int:
		buf.WriteByte(tagLongInt)
		writeUint32(buf, uint32(v))
	case int64:
		buf.WriteByte(tagLongLongInt)
		writeUint64(buf, uint64(v))
	case uint64:
		buf.WriteByte(tagLongLongUint)
		writeUint64(buf, v)
	case float32:
		buf.WriteByte(tagFloat)
		writeUint32(buf, math.Float32bits(v))
	case float64:
		buf.WriteByte(tagDouble)
		writeUint64(buf, math.Float64bits(v))
	case Decimal:
		buf.WriteByte(tagDecimal)
		buf.WriteByte(v.Scale)
		writeUint32(buf, uint32(v.Value))
	case string:
		buf.WriteByte(tagLongStr)
		writeLongString(buf, v)
	case time.Time:
		buf.WriteByte(tagTimestamp)
		writeUint64(buf, uint64(v.Unix()))
	case Table:
		buf.WriteByte(tagTable)
		return WriteTable(buf, v)
	case []interface{}:
		buf.WriteByte(tagArray)
		inner := &bytes.Buffer{}
		for _, item := range v {
			if err := writeFieldValue(inner, item); err != nil {
				return err
			}
		}
		writeUint32(buf, uint32(inner.Len()))
		buf.Write(inner.Bytes())
	default:
		return errors.Errorf("amqp: unsupported field value type %T", val)
	}
	return nil
}

func readFieldValue(r *bytes.Reader) (interface{}, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "amqp: field tag")
	}
	switch tag {
	case tagVoid:
		return nil, nil
	case tagBoolean:
		b, err := r.ReadByte()
		return b != 0, err
	case tagShortShortInt:
		b, err := r.ReadByte()
		return int8(b), err
	case tagShortShortUint:
		return r.ReadByte()
	case tagShortInt:
		u, err := readUint16(r)
		return int16(u), err
	case tagShortUint:
		return readUint16(r)
	case tagLongInt:
		u, err := readUint32(r)
		return int32(u), err
	case tagLongUint:
		return readUint32(r)
	case tagLongLongInt:
		u, err := readUint64(r)
		return int64(u), err
	case tagLongLongUint:
		return readUint64(r)
	case tagFloat:
		u, err := readUint32(r)
		return math.Float32frombits(u), err
	case tagDouble:
		u, err := readUint64(r)
		return math.Float64frombits(u), err
	case tagDecimal:
		scale, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		u, err := readUint32(r)
		return Decimal{Scale: scale, Value: int32(u)}, err
	case tagShortStr:
		return readShortString(r)
	case tagLongStr:
		return readLongString(r)
	case tagTimestamp:
		u, err := readUint64(r)
		return time.Unix(int64(u), 0).UTC(), err
	case tagTable:
		return ReadTable(r)
	case tagArray:
		n, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		body := make([]byte, n)
		if _, err := readFull(r, body); err != nil {
			return nil, err
		}
		inner := bytes.NewReader(body)
		arr := make([]interface{}, 0)
		for inner.Len() > 0 {
			item, err := readFieldValue(inner)
			if err != nil {
				return nil, err
			}
			arr = append(arr, item)
		}
		return arr, nil
	default:
		return nil, errors.Errorf("amqp: unknown field tag %q", tag)
	}
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func readUint16(r *bytes.Reader) (uint16, error) {
	var b [2]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}
