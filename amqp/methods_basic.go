package amqp

import "bytes"

type BasicQos struct {
	PrefetchSize  uint32
	PrefetchCount uint16
	Global        bool
}

func (m *BasicQos) ClassID() uint16  { return ClassBasic }
func (m *BasicQos) MethodID() uint16 { return MethodBasicQos }
func (m *BasicQos) Name() string     { return "basic.qos" }
func (m *BasicQos) Write(buf *bytes.Buffer) error {
	writeUint32(buf, m.PrefetchSize)
	writeUint16(buf, m.PrefetchCount)
	writeBits(buf, m.Global)
	return nil
}

func init() {
	register(ClassBasic, MethodBasicQos, func(r *bytes.Reader) (Method, error) {
		m := &BasicQos{}
		var err error
		if m.PrefetchSize, err = readUint32(r); err != nil {
			return nil, err
		}
		if m.PrefetchCount, err = readUint16(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		m.Global = bits[0]
		return m, nil
	})
}

type BasicQosOk struct{}

func (m *BasicQosOk) ClassID() uint16         { return ClassBasic }
func (m *BasicQosOk) MethodID() uint16        { return MethodBasicQosOk }
func (m *BasicQosOk) Name() string            { return "basic.qos-ok" }
func (m *BasicQosOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassBasic, MethodBasicQosOk, func(r *bytes.Reader) (Method, error) {
		return &BasicQosOk{}, nil
	})
}

type BasicConsume struct {
	Queue       string
	ConsumerTag string
	NoLocal     bool
	NoAck       bool
	Exclusive   bool
	NoWait      bool
	Arguments   Table
}

func (m *BasicConsume) ClassID() uint16  { return ClassBasic }
func (m *BasicConsume) MethodID() uint16 { return MethodBasicConsume }
func (m *BasicConsume) Name() string     { return "basic.consume" }
func (m *BasicConsume) Write(buf *bytes.Buffer) error {
	writeUint16(buf, 0)
	if err := writeShortString(buf, m.Queue); err != nil {
		return err
	}
	if err := writeShortString(buf, m.ConsumerTag); err != nil {
		return err
	}
	writeBits(buf, m.NoLocal, m.NoAck, m.Exclusive, m.NoWait)
	return WriteTable(buf, m.Arguments)
}

func init() {
	register(ClassBasic, MethodBasicConsume, func(r *bytes.Reader) (Method, error) {
		m := &BasicConsume{}
		var err error
		if _, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.Queue, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.ConsumerTag, err = readShortString(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 4)
		if err != nil {
			return nil, err
		}
		m.NoLocal, m.NoAck, m.Exclusive, m.NoWait = bits[0], bits[1], bits[2], bits[3]
		if m.Arguments, err = ReadTable(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type BasicConsumeOk struct {
	ConsumerTag string
}

func (m *BasicConsumeOk) ClassID() uint16  { return ClassBasic }
func (m *BasicConsumeOk) MethodID() uint16 { return MethodBasicConsumeOk }
func (m *BasicConsumeOk) Name() string     { return "basic.consume-ok" }
func (m *BasicConsumeOk) Write(buf *bytes.Buffer) error {
	return writeShortString(buf, m.ConsumerTag)
}

func init() {
	register(ClassBasic, MethodBasicConsumeOk, func(r *bytes.Reader) (Method, error) {
		tag, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		return &BasicConsumeOk{ConsumerTag: tag}, nil
	})
}

type BasicCancel struct {
	ConsumerTag string
	NoWait      bool
}

func (m *BasicCancel) ClassID() uint16  { return ClassBasic }
func (m *BasicCancel) MethodID() uint16 { return MethodBasicCancel }
func (m *BasicCancel) Name() string     { return "basic.cancel" }
func (m *BasicCancel) Write(buf *bytes.Buffer) error {
	if err := writeShortString(buf, m.ConsumerTag); err != nil {
		return err
	}
	writeBits(buf, m.NoWait)
	return nil
}

func init() {
	register(ClassBasic, MethodBasicCancel, func(r *bytes.Reader) (Method, error) {
		m := &BasicCancel{}
		var err error
		if m.ConsumerTag, err = readShortString(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		m.NoWait = bits[0]
		return m, nil
	})
}

type BasicCancelOk struct {
	ConsumerTag string
}

func (m *BasicCancelOk) ClassID() uint16  { return ClassBasic }
func (m *BasicCancelOk) MethodID() uint16 { return MethodBasicCancelOk }
func (m *BasicCancelOk) Name() string     { return "basic.cancel-ok" }
func (m *BasicCancelOk) Write(buf *bytes.Buffer) error {
	return writeShortString(buf, m.ConsumerTag)
}

func init() {
	register(ClassBasic, MethodBasicCancelOk, func(r *bytes.Reader) (Method, error) {
		tag, err := readShortString(r)
		if err != nil {
			return nil, err
		}
		return &BasicCancelOk{ConsumerTag: tag}, nil
	})
}

type BasicPublish struct {
	Exchange   string
	RoutingKey string
	Mandatory  bool
	Immediate  bool
}

func (m *BasicPublish) ClassID() uint16  { return ClassBasic }
func (m *BasicPublish) MethodID() uint16 { return MethodBasicPublish }
func (m *BasicPublish) Name() string     { return "basic.publish" }
func (m *BasicPublish) Write(buf *bytes.Buffer) error {
	writeUint16(buf, 0)
	if err := writeShortString(buf, m.Exchange); err != nil {
		return err
	}
	if err := writeShortString(buf, m.RoutingKey); err != nil {
		return err
	}
	writeBits(buf, m.Mandatory, m.Immediate)
	return nil
}

func init() {
	register(ClassBasic, MethodBasicPublish, func(r *bytes.Reader) (Method, error) {
		m := &BasicPublish{}
		var err error
		if _, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.Exchange, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.RoutingKey, err = readShortString(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 2)
		if err != nil {
			return nil, err
		}
		m.Mandatory, m.Immediate = bits[0], bits[1]
		return m, nil
	})
}

type BasicReturn struct {
	ReplyCode  uint16
	ReplyText  string
	Exchange   string
	RoutingKey string
}

func (m *BasicReturn) ClassID() uint16  { return ClassBasic }
func (m *BasicReturn) MethodID() uint16 { return MethodBasicReturn }
func (m *BasicReturn) Name() string     { return "basic.return" }
func (m *BasicReturn) Write(buf *bytes.Buffer) error {
	writeUint16(buf, m.ReplyCode)
	if err := writeShortString(buf, m.ReplyText); err != nil {
		return err
	}
	if err := writeShortString(buf, m.Exchange); err != nil {
		return err
	}
	return writeShortString(buf, m.RoutingKey)
}

func init() {
	register(ClassBasic, MethodBasicReturn, func(r *bytes.Reader) (Method, error) {
		m := &BasicReturn{}
		var err error
		if m.ReplyCode, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.ReplyText, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.Exchange, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.RoutingKey, err = readShortString(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type BasicDeliver struct {
	ConsumerTag string
	DeliveryTag uint64
	Redelivered bool
	Exchange    string
	RoutingKey  string
}

func (m *BasicDeliver) ClassID() uint16  { return ClassBasic }
func (m *BasicDeliver) MethodID() uint16 { return MethodBasicDeliver }
func (m *BasicDeliver) Name() string     { return "basic.deliver" }
func (m *BasicDeliver) Write(buf *bytes.Buffer) error {
	if err := writeShortString(buf, m.ConsumerTag); err != nil {
		return err
	}
	writeUint64(buf, m.DeliveryTag)
	writeBits(buf, m.Redelivered)
	if err := writeShortString(buf, m.Exchange); err != nil {
		return err
	}
	return writeShortString(buf, m.RoutingKey)
}

func init() {
	register(ClassBasic, MethodBasicDeliver, func(r *bytes.Reader) (Method, error) {
		m := &BasicDeliver{}
		var err error
		if m.ConsumerTag, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.DeliveryTag, err = readUint64(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		m.Redelivered = bits[0]
		if m.Exchange, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.RoutingKey, err = readShortString(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type BasicGet struct {
	Queue  string
	NoAck  bool
}

func (m *BasicGet) ClassID() uint16  { return ClassBasic }
func (m *BasicGet) MethodID() uint16 { return MethodBasicGet }
func (m *BasicGet) Name() string     { return "basic.get" }
func (m *BasicGet) Write(buf *bytes.Buffer) error {
	writeUint16(buf, 0)
	if err := writeShortString(buf, m.Queue); err != nil {
		return err
	}
	writeBits(buf, m.NoAck)
	return nil
}

func init() {
	register(ClassBasic, MethodBasicGet, func(r *bytes.Reader) (Method, error) {
		m := &BasicGet{}
		var err error
		if _, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.Queue, err = readShortString(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		m.NoAck = bits[0]
		return m, nil
	})
}

type BasicGetOk struct {
	DeliveryTag  uint64
	Redelivered  bool
	Exchange     string
	RoutingKey   string
	MessageCount uint32
}

func (m *BasicGetOk) ClassID() uint16  { return ClassBasic }
func (m *BasicGetOk) MethodID() uint16 { return MethodBasicGetOk }
func (m *BasicGetOk) Name() string     { return "basic.get-ok" }
func (m *BasicGetOk) Write(buf *bytes.Buffer) error {
	writeUint64(buf, m.DeliveryTag)
	writeBits(buf, m.Redelivered)
	if err := writeShortString(buf, m.Exchange); err != nil {
		return err
	}
	if err := writeShortString(buf, m.RoutingKey); err != nil {
		return err
	}
	writeUint32(buf, m.MessageCount)
	return nil
}

func init() {
	register(ClassBasic, MethodBasicGetOk, func(r *bytes.Reader) (Method, error) {
		m := &BasicGetOk{}
		var err error
		if m.DeliveryTag, err = readUint64(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		m.Redelivered = bits[0]
		if m.Exchange, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.RoutingKey, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.MessageCount, err = readUint32(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type BasicGetEmpty struct{}

func (m *BasicGetEmpty) ClassID() uint16  { return ClassBasic }
func (m *BasicGetEmpty) MethodID() uint16 { return MethodBasicGetEmpty }
func (m *BasicGetEmpty) Name() string     { return "basic.get-empty" }
func (m *BasicGetEmpty) Write(buf *bytes.Buffer) error {
	return writeShortString(buf, "")
}

func init() {
	register(ClassBasic, MethodBasicGetEmpty, func(r *bytes.Reader) (Method, error) {
		if _, err := readShortString(r); err != nil {
			return nil, err
		}
		return &BasicGetEmpty{}, nil
	})
}

type BasicAck struct {
	DeliveryTag uint64
	Multiple    bool
}

func (m *BasicAck) ClassID() uint16  { return ClassBasic }
func (m *BasicAck) MethodID() uint16 { return MethodBasicAck }
func (m *BasicAck) Name() string     { return "basic.ack" }
func (m *BasicAck) Write(buf *bytes.Buffer) error {
	writeUint64(buf, m.DeliveryTag)
	writeBits(buf, m.Multiple)
	return nil
}

func init() {
	register(ClassBasic, MethodBasicAck, func(r *bytes.Reader) (Method, error) {
		m := &BasicAck{}
		var err error
		if m.DeliveryTag, err = readUint64(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		m.Multiple = bits[0]
		return m, nil
	})
}

type BasicReject struct {
	DeliveryTag uint64
	Requeue     bool
}

func (m *BasicReject) ClassID() uint16  { return ClassBasic }
func (m *BasicReject) MethodID() uint16 { return MethodBasicReject }
func (m *BasicReject) Name() string     { return "basic.reject" }
func (m *BasicReject) Write(buf *bytes.Buffer) error {
	writeUint64(buf, m.DeliveryTag)
	writeBits(buf, m.Requeue)
	return nil
}

func init() {
	register(ClassBasic, MethodBasicReject, func(r *bytes.Reader) (Method, error) {
		m := &BasicReject{}
		var err error
		if m.DeliveryTag, err = readUint64(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		m.Requeue = bits[0]
		return m, nil
	})
}

type BasicNack struct {
	DeliveryTag uint64
	Multiple    bool
	Requeue     bool
}

func (m *BasicNack) ClassID() uint16  { return ClassBasic }
func (m *BasicNack) MethodID() uint16 { return MethodBasicNack }
func (m *BasicNack) Name() string     { return "basic.nack" }
func (m *BasicNack) Write(buf *bytes.Buffer) error {
	writeUint64(buf, m.DeliveryTag)
	writeBits(buf, m.Multiple, m.Requeue)
	return nil
}

func init() {
	register(ClassBasic, MethodBasicNack, func(r *bytes.Reader) (Method, error) {
		m := &BasicNack{}
		var err error
		if m.DeliveryTag, err = readUint64(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 2)
		if err != nil {
			return nil, err
		}
		m.Multiple, m.Requeue = bits[0], bits[1]
		return m, nil
	})
}

type BasicRecover struct {
	Requeue bool
}

func (m *BasicRecover) ClassID() uint16  { return ClassBasic }
func (m *BasicRecover) MethodID() uint16 { return MethodBasicRecover }
func (m *BasicRecover) Name() string     { return "basic.recover" }
func (m *BasicRecover) Write(buf *bytes.Buffer) error {
	writeBits(buf, m.Requeue)
	return nil
}

func init() {
	register(ClassBasic, MethodBasicRecover, func(r *bytes.Reader) (Method, error) {
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		return &BasicRecover{Requeue: bits[0]}, nil
	})
}

type BasicRecoverOk struct{}

func (m *BasicRecoverOk) ClassID() uint16         { return ClassBasic }
func (m *BasicRecoverOk) MethodID() uint16        { return MethodBasicRecoverOk }
func (m *BasicRecoverOk) Name() string            { return "basic.recover-ok" }
func (m *BasicRecoverOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassBasic, MethodBasicRecoverOk, func(r *bytes.Reader) (Method, error) {
		return &BasicRecoverOk{}, nil
	})
}

// ---- tx ----

type TxSelect struct{}

func (m *TxSelect) ClassID() uint16         { return ClassTx }
func (m *TxSelect) MethodID() uint16        { return MethodTxSelect }
func (m *TxSelect) Name() string            { return "tx.select" }
func (m *TxSelect) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassTx, MethodTxSelect, func(r *bytes.Reader) (Method, error) { return &TxSelect{}, nil })
}

type TxSelectOk struct{}

func (m *TxSelectOk) ClassID() uint16         { return ClassTx }
func (m *TxSelectOk) MethodID() uint16        { return MethodTxSelectOk }
func (m *TxSelectOk) Name() string            { return "tx.select-ok" }
func (m *TxSelectOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassTx, MethodTxSelectOk, func(r *bytes.Reader) (Method, error) { return &TxSelectOk{}, nil })
}

type TxCommit struct{}

func (m *TxCommit) ClassID() uint16         { return ClassTx }
func (m *TxCommit) MethodID() uint16        { return MethodTxCommit }
func (m *TxCommit) Name() string            { return "tx.commit" }
func (m *TxCommit) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassTx, MethodTxCommit, func(r *bytes.Reader) (Method, error) { return &TxCommit{}, nil })
}

type TxCommitOk struct{}

func (m *TxCommitOk) ClassID() uint16         { return ClassTx }
func (m *TxCommitOk) MethodID() uint16        { return MethodTxCommitOk }
func (m *TxCommitOk) Name() string            { return "tx.commit-ok" }
func (m *TxCommitOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassTx, MethodTxCommitOk, func(r *bytes.Reader) (Method, error) { return &TxCommitOk{}, nil })
}

type TxRollback struct{}

func (m *TxRollback) ClassID() uint16         { return ClassTx }
func (m *TxRollback) MethodID() uint16        { return MethodTxRollback }
func (m *TxRollback) Name() string            { return "tx.rollback" }
func (m *TxRollback) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassTx, MethodTxRollback, func(r *bytes.Reader) (Method, error) { return &TxRollback{}, nil })
}

type TxRollbackOk struct{}

func (m *TxRollbackOk) ClassID() uint16         { return ClassTx }
func (m *TxRollbackOk) MethodID() uint16        { return MethodTxRollbackOk }
func (m *TxRollbackOk) Name() string            { return "tx.rollback-ok" }
func (m *TxRollbackOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassTx, MethodTxRollbackOk, func(r *bytes.Reader) (Method, error) { return &TxRollbackOk{}, nil })
}

// ---- confirm (RabbitMQ publisher-confirms extension, SPEC_FULL §4.7) ----

type ConfirmSelect struct {
	NoWait bool
}

func (m *ConfirmSelect) ClassID() uint16  { return ClassConfirm }
func (m *ConfirmSelect) MethodID() uint16 { return MethodConfirmSelect }
func (m *ConfirmSelect) Name() string     { return "confirm.select" }
func (m *ConfirmSelect) Write(buf *bytes.Buffer) error {
	writeBits(buf, m.NoWait)
	return nil
}

func init() {
	register(ClassConfirm, MethodConfirmSelect, func(r *bytes.Reader) (Method, error) {
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		return &ConfirmSelect{NoWait: bits[0]}, nil
	})
}

type ConfirmSelectOk struct{}

func (m *ConfirmSelectOk) ClassID() uint16         { return ClassConfirm }
func (m *ConfirmSelectOk) MethodID() uint16        { return MethodConfirmSelectOk }
func (m *ConfirmSelectOk) Name() string            { return "confirm.select-ok" }
func (m *ConfirmSelectOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassConfirm, MethodConfirmSelectOk, func(r *bytes.Reader) (Method, error) {
		return &ConfirmSelectOk{}, nil
	})
}
