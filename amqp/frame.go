package amqp

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Frame is the decoded shape of one wire frame (spec.md §3, §6): a
// 1-byte type, 2-byte channel, 4-byte payload length, the payload itself
// and a trailing 0xCE sentinel. Method, Header and Body frames carry their
// payload pre-parsed; Heartbeat carries none.
type Frame struct {
	Type      byte
	ChannelID uint16

	// Populated when Type == FrameMethod.
	Method Method

	// Populated when Type == FrameHeader.
	ContentHeader *ContentHeader

	// Populated when Type == FrameBody.
	Body []byte
}

// ContentHeader is the Header frame payload: the declared body size and
// basic properties of the content that follows (spec.md §3, §4.4).
type ContentHeader struct {
	ClassID  uint16
	BodySize uint64
	// Properties holds the fourteen basic-class properties keyed by the
	// Prop* names in properties.go. Property-flag bits outside those
	// fourteen are ignored on decode.
	Properties Table
}

// defaultMaxPayload is the payload bound used when no frame_max has been
// given; frames larger than the decoder's bound are malformed (spec.md
// §4.1).
const defaultMaxPayload = 131072

// Decoder incrementally decodes frames out of a byte stream. It never
// blocks and never errors on a short read (spec.md §4.1): Next returns
// (nil, nil, false) until enough bytes have accumulated.
type Decoder struct {
	buf        bytes.Buffer
	maxPayload uint32
}

// NewDecoder constructs a Decoder bounded by the given negotiated
// frame_max. A maxPayload of 0 means "use the implementation default"
// (mirrors Connection.frame_max before Tune-Ok, spec.md §3).
func NewDecoder(maxPayload uint32) *Decoder {
	if maxPayload == 0 {
		maxPayload = defaultMaxPayload
	}
	return &Decoder{maxPayload: maxPayload}
}

// Feed appends newly-received bytes to the decoder's internal buffer.
func (d *Decoder) Feed(b []byte) {
	d.buf.Write(b)
}

const frameHeaderLen = 1 + 2 + 4 // type + channel + length

// Next attempts to decode one frame from the buffered bytes. ok is false
// when more bytes are needed; err is non-nil only for a genuine protocol
// violation (bad sentinel, oversized payload, unregistered method,
// undecodable method arguments or content header), and is always an *Error.
func (d *Decoder) Next() (frame *Frame, err error, ok bool) {
	raw := d.buf.Bytes()
	if len(raw) < frameHeaderLen {
		return nil, nil, false
	}

	typ := raw[0]
	channel := binary.BigEndian.Uint16(raw[1:3])
	length := binary.BigEndian.Uint32(raw[3:7])

	if length > d.maxPayload {
		return nil, MalformedFrame("payload exceeds frame_max"), false
	}

	total := frameHeaderLen + int(length) + 1
	if len(raw) < total {
		return nil, nil, false
	}

	payload := raw[frameHeaderLen : frameHeaderLen+int(length)]
	if raw[total-1] != FrameEnd {
		return nil, MalformedFrame("missing frame-end sentinel"), false
	}

	f := &Frame{Type: typ, ChannelID: channel}
	switch typ {
	case FrameMethod:
		method, err := DecodeMethod(payload)
		if err != nil {
			if _, isProto := err.(*Error); !isProto {
				err = MalformedFrame(err.Error())
			}
			return nil, err, false
		}
		f.Method = method
	case FrameHeader:
		header, err := decodeContentHeader(payload)
		if err != nil {
			return nil, MalformedFrame(err.Error()), false
		}
		f.ContentHeader = header
	case FrameBody:
		body := make([]byte, len(payload))
		copy(body, payload)
		f.Body = body
	case FrameHeartbeat:
		// no payload
	default:
		return nil, MalformedFrame("unknown frame type"), false
	}

	d.buf.Next(total)
	return f, nil, true
}

// EncodeMethodFrame serializes a method frame for the given channel.
func EncodeMethodFrame(channelID uint16, method Method) ([]byte, error) {
	payload := &bytes.Buffer{}
	writeUint16(payload, method.ClassID())
	writeUint16(payload, method.MethodID())
	if err := method.Write(payload); err != nil {
		return nil, errors.Wrap(err, "amqp: encode method")
	}
	return encodeFrame(FrameMethod, channelID, payload.Bytes()), nil
}

// EncodeHeaderFrame serializes a Header frame.
func EncodeHeaderFrame(channelID uint16, header *ContentHeader) ([]byte, error) {
	payload := &bytes.Buffer{}
	writeUint16(payload, header.ClassID)
	writeUint16(payload, 0) // weight, always 0
	writeUint64(payload, header.BodySize)
	if err := writeProperties(payload, header.Properties); err != nil {
		return nil, err
	}
	return encodeFrame(FrameHeader, channelID, payload.Bytes()), nil
}

// EncodeBodyFrames splits body into frames no larger than maxPayload and
// serializes each as a Body frame (spec.md §3's "⌈body-size/max-payload⌉"
// invariant).
func EncodeBodyFrames(channelID uint16, body []byte, maxPayload uint32) [][]byte {
	if maxPayload == 0 {
		maxPayload = defaultMaxPayload
	}
	if len(body) == 0 {
		return nil
	}
	var frames [][]byte
	for offset := 0; offset < len(body); offset += int(maxPayload) {
		end := offset + int(maxPayload)
		if end > len(body) {
			end = len(body)
		}
		frames = append(frames, encodeFrame(FrameBody, channelID, body[offset:end]))
	}
	return frames
}

// EncodeHeartbeat serializes the zero-payload heartbeat frame on channel 0.
func EncodeHeartbeat() []byte {
	return encodeFrame(FrameHeartbeat, 0, nil)
}

func encodeFrame(typ byte, channelID uint16, payload []byte) []byte {
	out := make([]byte, 0, frameHeaderLen+len(payload)+1)
	out = append(out, typ)
	var chanBuf [2]byte
	binary.BigEndian.PutUint16(chanBuf[:], channelID)
	out = append(out, chanBuf[:]...)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	out = append(out, lenBuf[:]...)
	out = append(out, payload...)
	out = append(out, FrameEnd)
	return out
}

func decodeContentHeader(payload []byte) (*ContentHeader, error) {
	r := bytes.NewReader(payload)
	classID, err := readUint16(r)
	if err != nil {
		return nil, errors.Wrap(err, "amqp: content header class-id")
	}
	if _, err := readUint16(r); err != nil { // weight, ignored
		return nil, errors.Wrap(err, "amqp: content header weight")
	}
	bodySize, err := readUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "amqp: content header body-size")
	}
	props, err := readProperties(r)
	if err != nil {
		return nil, errors.Wrap(err, "amqp: content header properties")
	}
	return &ContentHeader{ClassID: classID, BodySize: bodySize, Properties: props}, nil
}
