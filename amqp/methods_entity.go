package amqp

import "bytes"

// ---- exchange ----

type ExchangeDeclare struct {
	Exchange   string
	Type       string
	Passive    bool
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
	Arguments  Table
}

func (m *ExchangeDeclare) ClassID() uint16  { return ClassExchange }
func (m *ExchangeDeclare) MethodID() uint16 { return MethodExchangeDeclare }
func (m *ExchangeDeclare) Name() string     { return "exchange.declare" }
func (m *ExchangeDeclare) Write(buf *bytes.Buffer) error {
	writeUint16(buf, 0) // reserved ticket
	if err := writeShortString(buf, m.Exchange); err != nil {
		return err
	}
	if err := writeShortString(buf, m.Type); err != nil {
		return err
	}
	writeBits(buf, m.Passive, m.Durable, m.AutoDelete, m.Internal, m.NoWait)
	return WriteTable(buf, m.Arguments)
}

func init() {
	register(ClassExchange, MethodExchangeDeclare, func(r *bytes.Reader) (Method, error) {
		m := &ExchangeDeclare{}
		var err error
		if _, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.Exchange, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.Type, err = readShortString(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 5)
		if err != nil {
			return nil, err
		}
		m.Passive, m.Durable, m.AutoDelete, m.Internal, m.NoWait = bits[0], bits[1], bits[2], bits[3], bits[4]
		if m.Arguments, err = ReadTable(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type ExchangeDeclareOk struct{}

func (m *ExchangeDeclareOk) ClassID() uint16         { return ClassExchange }
func (m *ExchangeDeclareOk) MethodID() uint16        { return MethodExchangeDeclareOk }
func (m *ExchangeDeclareOk) Name() string            { return "exchange.declare-ok" }
func (m *ExchangeDeclareOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassExchange, MethodExchangeDeclareOk, func(r *bytes.Reader) (Method, error) {
		return &ExchangeDeclareOk{}, nil
	})
}

type ExchangeDelete struct {
	Exchange string
	IfUnused bool
	NoWait   bool
}

func (m *ExchangeDelete) ClassID() uint16  { return ClassExchange }
func (m *ExchangeDelete) MethodID() uint16 { return MethodExchangeDelete }
func (m *ExchangeDelete) Name() string     { return "exchange.delete" }
func (m *ExchangeDelete) Write(buf *bytes.Buffer) error {
	writeUint16(buf, 0)
	if err := writeShortString(buf, m.Exchange); err != nil {
		return err
	}
	writeBits(buf, m.IfUnused, m.NoWait)
	return nil
}

func init() {
	register(ClassExchange, MethodExchangeDelete, func(r *bytes.Reader) (Method, error) {
		m := &ExchangeDelete{}
		var err error
		if _, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.Exchange, err = readShortString(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 2)
		if err != nil {
			return nil, err
		}
		m.IfUnused, m.NoWait = bits[0], bits[1]
		return m, nil
	})
}

type ExchangeDeleteOk struct{}

func (m *ExchangeDeleteOk) ClassID() uint16         { return ClassExchange }
func (m *ExchangeDeleteOk) MethodID() uint16        { return MethodExchangeDeleteOk }
func (m *ExchangeDeleteOk) Name() string            { return "exchange.delete-ok" }
func (m *ExchangeDeleteOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassExchange, MethodExchangeDeleteOk, func(r *bytes.Reader) (Method, error) {
		return &ExchangeDeleteOk{}, nil
	})
}

// ---- queue ----

type QueueDeclare struct {
	Queue      string
	Passive    bool
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	NoWait     bool
	Arguments  Table
}

func (m *QueueDeclare) ClassID() uint16  { return ClassQueue }
func (m *QueueDeclare) MethodID() uint16 { return MethodQueueDeclare }
func (m *QueueDeclare) Name() string     { return "queue.declare" }
func (m *QueueDeclare) Write(buf *bytes.Buffer) error {
	writeUint16(buf, 0)
	if err := writeShortString(buf, m.Queue); err != nil {
		return err
	}
	writeBits(buf, m.Passive, m.Durable, m.Exclusive, m.AutoDelete, m.NoWait)
	return WriteTable(buf, m.Arguments)
}

func init() {
	register(ClassQueue, MethodQueueDeclare, func(r *bytes.Reader) (Method, error) {
		m := &QueueDeclare{}
		var err error
		if _, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.Queue, err = readShortString(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 5)
		if err != nil {
			return nil, err
		}
		m.Passive, m.Durable, m.Exclusive, m.AutoDelete, m.NoWait = bits[0], bits[1], bits[2], bits[3], bits[4]
		if m.Arguments, err = ReadTable(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type QueueDeclareOk struct {
	Queue         string
	MessageCount  uint32
	ConsumerCount uint32
}

func (m *QueueDeclareOk) ClassID() uint16  { return ClassQueue }
func (m *QueueDeclareOk) MethodID() uint16 { return MethodQueueDeclareOk }
func (m *QueueDeclareOk) Name() string     { return "queue.declare-ok" }
func (m *QueueDeclareOk) Write(buf *bytes.Buffer) error {
	if err := writeShortString(buf, m.Queue); err != nil {
		return err
	}
	writeUint32(buf, m.MessageCount)
	writeUint32(buf, m.ConsumerCount)
	return nil
}

func init() {
	register(ClassQueue, MethodQueueDeclareOk, func(r *bytes.Reader) (Method, error) {
		m := &QueueDeclareOk{}
		var err error
		if m.Queue, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.MessageCount, err = readUint32(r); err != nil {
			return nil, err
		}
		if m.ConsumerCount, err = readUint32(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type QueueBind struct {
	Queue      string
	Exchange   string
	RoutingKey string
	NoWait     bool
	Arguments  Table
}

func (m *QueueBind) ClassID() uint16  { return ClassQueue }
func (m *QueueBind) MethodID() uint16 { return MethodQueueBind }
func (m *QueueBind) Name() string     { return "queue.bind" }
func (m *QueueBind) Write(buf *bytes.Buffer) error {
	writeUint16(buf, 0)
	if err := writeShortString(buf, m.Queue); err != nil {
		return err
	}
	if err := writeShortString(buf, m.Exchange); err != nil {
		return err
	}
	if err := writeShortString(buf, m.RoutingKey); err != nil {
		return err
	}
	writeBits(buf, m.NoWait)
	return WriteTable(buf, m.Arguments)
}

func init() {
	register(ClassQueue, MethodQueueBind, func(r *bytes.Reader) (Method, error) {
		m := &QueueBind{}
		var err error
		if _, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.Queue, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.Exchange, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.RoutingKey, err = readShortString(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 1)
		if err != nil {
			return nil, err
		}
		m.NoWait = bits[0]
		if m.Arguments, err = ReadTable(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type QueueBindOk struct{}

func (m *QueueBindOk) ClassID() uint16         { return ClassQueue }
func (m *QueueBindOk) MethodID() uint16        { return MethodQueueBindOk }
func (m *QueueBindOk) Name() string            { return "queue.bind-ok" }
func (m *QueueBindOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassQueue, MethodQueueBindOk, func(r *bytes.Reader) (Method, error) {
		return &QueueBindOk{}, nil
	})
}

type QueueUnbind struct {
	Queue      string
	Exchange   string
	RoutingKey string
	Arguments  Table
}

func (m *QueueUnbind) ClassID() uint16  { return ClassQueue }
func (m *QueueUnbind) MethodID() uint16 { return MethodQueueUnbind }
func (m *QueueUnbind) Name() string     { return "queue.unbind" }
func (m *QueueUnbind) Write(buf *bytes.Buffer) error {
	writeUint16(buf, 0)
	if err := writeShortString(buf, m.Queue); err != nil {
		return err
	}
	if err := writeShortString(buf, m.Exchange); err != nil {
		return err
	}
	if err := writeShortString(buf, m.RoutingKey); err != nil {
		return err
	}
	return WriteTable(buf, m.Arguments)
}

func init() {
	register(ClassQueue, MethodQueueUnbind, func(r *bytes.Reader) (Method, error) {
		m := &QueueUnbind{}
		var err error
		if _, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.Queue, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.Exchange, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.RoutingKey, err = readShortString(r); err != nil {
			return nil, err
		}
		if m.Arguments, err = ReadTable(r); err != nil {
			return nil, err
		}
		return m, nil
	})
}

type QueueUnbindOk struct{}

func (m *QueueUnbindOk) ClassID() uint16         { return ClassQueue }
func (m *QueueUnbindOk) MethodID() uint16        { return MethodQueueUnbindOk }
func (m *QueueUnbindOk) Name() string            { return "queue.unbind-ok" }
func (m *QueueUnbindOk) Write(buf *bytes.Buffer) error { return nil }

func init() {
	register(ClassQueue, MethodQueueUnbindOk, func(r *bytes.Reader) (Method, error) {
		return &QueueUnbindOk{}, nil
	})
}

type QueuePurge struct {
	Queue  string
	NoWait bool
}

func (m *QueuePurge) ClassID() uint16  { return ClassQueue }
func (m *QueuePurge) MethodID() uint16 { return MethodQueuePurge }
func (m *QueuePurge) Name() string     { return "queue.purge" }
func (m *QueuePurge) Write(buf *bytes.Buffer) error {
	writeUint16(buf, 0)
	if err := writeShortString(buf, m.Queue); err != nil {
		return err
	}
	writeBits(buf, m.NoWait)
	return nil
}

func init() {
	register(ClassQueue, MethodQueuePurge, func(r *bytes.Reader) (Method, error) {
		m := &QueuePurge{}
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
		m.NoWait = bits[0]
		return m, nil
	})
}

type QueuePurgeOk struct {
	MessageCount uint32
}

func (m *QueuePurgeOk) ClassID() uint16  { return ClassQueue }
func (m *QueuePurgeOk) MethodID() uint16 { return MethodQueuePurgeOk }
func (m *QueuePurgeOk) Name() string     { return "queue.purge-ok" }
func (m *QueuePurgeOk) Write(buf *bytes.Buffer) error {
	writeUint32(buf, m.MessageCount)
	return nil
}

func init() {
	register(ClassQueue, MethodQueuePurgeOk, func(r *bytes.Reader) (Method, error) {
		mc, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		return &QueuePurgeOk{MessageCount: mc}, nil
	})
}

type QueueDelete struct {
	Queue    string
	IfUnused bool
	IfEmpty  bool
	NoWait   bool
}

func (m *QueueDelete) ClassID() uint16  { return ClassQueue }
func (m *QueueDelete) MethodID() uint16 { return MethodQueueDelete }
func (m *QueueDelete) Name() string     { return "queue.delete" }
func (m *QueueDelete) Write(buf *bytes.Buffer) error {
	writeUint16(buf, 0)
	if err := writeShortString(buf, m.Queue); err != nil {
		return err
	}
	writeBits(buf, m.IfUnused, m.IfEmpty, m.NoWait)
	return nil
}

func init() {
	register(ClassQueue, MethodQueueDelete, func(r *bytes.Reader) (Method, error) {
		m := &QueueDelete{}
		var err error
		if _, err = readUint16(r); err != nil {
			return nil, err
		}
		if m.Queue, err = readShortString(r); err != nil {
			return nil, err
		}
		bits, err := readBits(r, 3)
		if err != nil {
			return nil, err
		}
		m.IfUnused, m.IfEmpty, m.NoWait = bits[0], bits[1], bits[2]
		return m, nil
	})
}

type QueueDeleteOk struct {
	MessageCount uint32
}

func (m *QueueDeleteOk) ClassID() uint16  { return ClassQueue }
func (m *QueueDeleteOk) MethodID() uint16 { return MethodQueueDeleteOk }
func (m *QueueDeleteOk) Name() string     { return "queue.delete-ok" }
func (m *QueueDeleteOk) Write(buf *bytes.Buffer) error {
	writeUint32(buf, m.MessageCount)
	return nil
}

func init() {
	register(ClassQueue, MethodQueueDeleteOk, func(r *bytes.Reader) (Method, error) {
		mc, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		return &QueueDeleteOk{MessageCount: mc}, nil
	})
}
