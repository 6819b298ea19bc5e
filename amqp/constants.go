// Package amqp implements the AMQP 0.9.1 wire format: frame encoding and
// decoding, class/method identifiers, field tables and the protocol error
// type. It has no knowledge of channels, connections or entities; those
// live in the sibling packages that import it.
package amqp

// Frame types (spec.md §6).
const (
	FrameMethod    = byte(1)
	FrameHeader    = byte(2)
	FrameBody      = byte(3)
	FrameHeartbeat = byte(8)
)

// FrameEnd is the sentinel byte terminating every frame on the wire.
const FrameEnd = byte(0xCE)

// ProtocolHeader is sent verbatim as the first 8 bytes of a connection.
var ProtocolHeader = []byte{'A', 'M', 'Q', 'P', 0x00, 0x00, 0x09, 0x01}

// Class identifiers.
const (
	ClassConnection = uint16(10)
	ClassChannel    = uint16(20)
	ClassExchange   = uint16(40)
	ClassQueue      = uint16(50)
	ClassBasic      = uint16(60)
	ClassTx         = uint16(90)
	ClassConfirm    = uint16(85)
)

// Connection method identifiers.
const (
	MethodConnectionStart   = uint16(10)
	MethodConnectionStartOk = uint16(11)
	MethodConnectionSecure  = uint16(20)
	MethodConnectionSecureOk = uint16(21)
	MethodConnectionTune    = uint16(30)
	MethodConnectionTuneOk  = uint16(31)
	MethodConnectionOpen    = uint16(40)
	MethodConnectionOpenOk  = uint16(41)
	MethodConnectionClose   = uint16(50)
	MethodConnectionCloseOk = uint16(51)
)

// Channel method identifiers.
const (
	MethodChannelOpen    = uint16(10)
	MethodChannelOpenOk  = uint16(11)
	MethodChannelFlow    = uint16(20)
	MethodChannelFlowOk  = uint16(21)
	MethodChannelClose   = uint16(40)
	MethodChannelCloseOk = uint16(41)
)

// Exchange method identifiers.
const (
	MethodExchangeDeclare   = uint16(10)
	MethodExchangeDeclareOk = uint16(11)
	MethodExchangeDelete    = uint16(20)
	MethodExchangeDeleteOk  = uint16(21)
)

// Queue method identifiers.
const (
	MethodQueueDeclare   = uint16(10)
	MethodQueueDeclareOk = uint16(11)
	MethodQueueBind      = uint16(20)
	MethodQueueBindOk    = uint16(21)
	MethodQueuePurge     = uint16(30)
	MethodQueuePurgeOk   = uint16(31)
	MethodQueueDelete    = uint16(40)
	MethodQueueDeleteOk  = uint16(41)
	MethodQueueUnbind    = uint16(50)
	MethodQueueUnbindOk  = uint16(51)
)

// Basic method identifiers.
const (
	MethodBasicQos          = uint16(10)
	MethodBasicQosOk        = uint16(11)
	MethodBasicConsume      = uint16(20)
	MethodBasicConsumeOk    = uint16(21)
	MethodBasicCancel       = uint16(30)
	MethodBasicCancelOk     = uint16(31)
	MethodBasicPublish      = uint16(40)
	MethodBasicReturn       = uint16(50)
	MethodBasicDeliver      = uint16(60)
	MethodBasicGet          = uint16(70)
	MethodBasicGetOk        = uint16(71)
	MethodBasicGetEmpty     = uint16(72)
	MethodBasicAck          = uint16(80)
	MethodBasicReject       = uint16(90)
	MethodBasicRecoverAsync = uint16(100)
	MethodBasicRecover      = uint16(110)
	MethodBasicRecoverOk    = uint16(111)
	MethodBasicNack         = uint16(120)
)

// Tx method identifiers.
const (
	MethodTxSelect      = uint16(10)
	MethodTxSelectOk    = uint16(11)
	MethodTxCommit      = uint16(20)
	MethodTxCommitOk    = uint16(21)
	MethodTxRollback    = uint16(30)
	MethodTxRollbackOk  = uint16(31)
)

// Confirm method identifiers.
const (
	MethodConfirmSelect   = uint16(10)
	MethodConfirmSelectOk = uint16(11)
)

// Reply codes used by the core itself (spec.md §6, §7).
const (
	ReplySuccess       = uint16(200)
	ReplyContentTooLarge = uint16(311)
	ReplyNoRoute       = uint16(312)
	ReplyNoConsumers   = uint16(313)
	ReplyAccessRefused = uint16(403)
	ReplyNotFound      = uint16(404)
	ReplyResourceLocked = uint16(405)
	ReplyPreconditionFailed = uint16(406)
	ReplyFrameError       = uint16(501)
	ReplySyntaxError      = uint16(502)
	ReplyCommandInvalid   = uint16(503)
	ReplyChannelError     = uint16(504)
	ReplyUnexpectedFrame  = uint16(505)
	ReplyNotAllowed       = uint16(530)
	ReplyNotImplemented   = uint16(540)
	ReplyInternalError    = uint16(541)
)

// DefaultCloseReplyText is sent by a caller-initiated channel/connection
// close when no explicit reason is given.
const DefaultCloseReplyText = "Goodbye"

// DefaultChannelMax is used when the broker advertises channel_max == 0
// (meaning "no limit") or before Tune-Ok has been sent. 65535 is the
// largest channel id representable in the 16-bit channel-max field.
const DefaultChannelMax = uint16(65535)

// Default QoS (spec.md §6).
const (
	DefaultPrefetchSize  = uint32(0)
	DefaultPrefetchCount = uint16(32)
	DefaultGlobalQos     = false
)
