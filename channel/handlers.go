package channel

import (
	"github.com/travis-repos/amq-client/amqp"
	"github.com/travis-repos/amq-client/consumer"
	"github.com/travis-repos/amq-client/dispatcher"
	"github.com/travis-repos/amq-client/exchange"
	"github.com/travis-repos/amq-client/queue"
)

// init wires this package's reply handlers into the process-wide
// dispatcher table (spec.md §4.3, §9's "static table... no runtime
// mutation needed after startup"). Every handler here type-asserts target
// to *Channel — Dispatch is only ever called by Channel.HandleFrame with
// itself as target, so the assertion always succeeds.
func init() {
	dispatcher.Register(amqp.ClassChannel, amqp.MethodChannelOpenOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		ch.SetStatus(StatusOpened)
		ch.ExecCallbackOnce("open", m)
		return nil
	})

	dispatcher.Register(amqp.ClassChannel, amqp.MethodChannelFlow, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		flow := m.(*amqp.ChannelFlow)
		ch.mu.Lock()
		ch.flowIsActive = flow.Active
		ch.mu.Unlock()
		ch.ExecCallback("flow", flow)
		if err := ch.SendMethod(&amqp.ChannelFlowOk{Active: flow.Active}); err != nil {
			ch.logger.WithError(err).Error("failed to send channel.flow-ok")
		}
		return nil
	})

	dispatcher.Register(amqp.ClassChannel, amqp.MethodChannelFlowOk, func(target interface{}, m amqp.Method) *amqp.Error {
		target.(*Channel).ExecCallbackOnce("flow", m)
		return nil
	})

	dispatcher.Register(amqp.ClassChannel, amqp.MethodChannelClose, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		closeMethod := m.(*amqp.ChannelClose)
		ch.ExecCallback("error", amqp.NewChannelError(closeMethod.ReplyCode, closeMethod.ReplyText, closeMethod.ClassID_, closeMethod.MethodID_))
		if err := ch.SendMethod(&amqp.ChannelCloseOk{}); err != nil {
			ch.logger.WithError(err).Error("failed to send channel.close-ok")
		}
		ch.conn.RemoveChannel(ch.id)
		ch.handleConnectionInterruption()
		ch.SetStatus(StatusClosed)
		return nil
	})

	dispatcher.Register(amqp.ClassChannel, amqp.MethodChannelCloseOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		ch.conn.RemoveChannel(ch.id)
		ch.handleConnectionInterruption()
		ch.SetStatus(StatusClosed)
		ch.ExecCallbackOnce("close", m)
		return nil
	})

	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicQosOk, func(target interface{}, m amqp.Method) *amqp.Error {
		target.(*Channel).ExecCallbackOnce("qos", m)
		return nil
	})

	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicRecoverOk, func(target interface{}, m amqp.Method) *amqp.Error {
		target.(*Channel).ExecCallbackOnce("recover", m)
		return nil
	})

	dispatcher.Register(amqp.ClassTx, amqp.MethodTxSelectOk, func(target interface{}, m amqp.Method) *amqp.Error {
		target.(*Channel).ExecCallbackOnce("tx_select", m)
		return nil
	})
	dispatcher.Register(amqp.ClassTx, amqp.MethodTxCommitOk, func(target interface{}, m amqp.Method) *amqp.Error {
		target.(*Channel).ExecCallbackOnce("tx_commit", m)
		return nil
	})
	dispatcher.Register(amqp.ClassTx, amqp.MethodTxRollbackOk, func(target interface{}, m amqp.Method) *amqp.Error {
		target.(*Channel).ExecCallbackOnce("tx_rollback", m)
		return nil
	})

	dispatcher.Register(amqp.ClassConfirm, amqp.MethodConfirmSelectOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		ch.mu.Lock()
		ch.confirmMode = true
		ch.mu.Unlock()
		ch.ExecCallbackOnce("confirm_select", m)
		return nil
	})

	dispatcher.Register(amqp.ClassExchange, amqp.MethodExchangeDeclareOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		head, ok := ch.dequeue("exchange.declare-ok")
		if !ok {
			return nil
		}
		ex := head.(*exchange.Exchange)
		ex.ApplyDeclareOk()
		ch.mu.Lock()
		ch.exchanges[ex.Name] = ex
		ch.mu.Unlock()
		ex.ExecCallbackOnce("declare", m)
		return nil
	})

	dispatcher.Register(amqp.ClassExchange, amqp.MethodExchangeDeleteOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		head, ok := ch.dequeue("exchange.delete-ok")
		if !ok {
			return nil
		}
		ex := head.(*exchange.Exchange)
		ch.mu.Lock()
		delete(ch.exchanges, ex.Name)
		ch.mu.Unlock()
		ex.ExecCallbackOnce("delete", m)
		return nil
	})

	dispatcher.Register(amqp.ClassQueue, amqp.MethodQueueDeclareOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		head, ok := ch.dequeue("queue.declare-ok")
		if !ok {
			return nil
		}
		q := head.(*queue.Queue)
		declareOk := m.(*amqp.QueueDeclareOk)
		q.ApplyDeclareOk(declareOk.Queue, declareOk.MessageCount, declareOk.ConsumerCount)
		ch.mu.Lock()
		ch.queues[q.Name] = q
		ch.mu.Unlock()
		q.ExecCallbackOnce("declare", declareOk)
		return nil
	})

	dispatcher.Register(amqp.ClassQueue, amqp.MethodQueueBindOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		head, ok := ch.dequeue("queue.bind-ok")
		if !ok {
			return nil
		}
		head.(*queue.Queue).ExecCallbackOnce("bind", m)
		return nil
	})

	dispatcher.Register(amqp.ClassQueue, amqp.MethodQueueUnbindOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		head, ok := ch.dequeue("queue.unbind-ok")
		if !ok {
			return nil
		}
		head.(*queue.Queue).ExecCallbackOnce("unbind", m)
		return nil
	})

	dispatcher.Register(amqp.ClassQueue, amqp.MethodQueuePurgeOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		head, ok := ch.dequeue("queue.purge-ok")
		if !ok {
			return nil
		}
		q := head.(*queue.Queue)
		purgeOk := m.(*amqp.QueuePurgeOk)
		q.ApplyPurgeOk(purgeOk.MessageCount)
		q.ExecCallbackOnce("purge", purgeOk)
		return nil
	})

	dispatcher.Register(amqp.ClassQueue, amqp.MethodQueueDeleteOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		head, ok := ch.dequeue("queue.delete-ok")
		if !ok {
			return nil
		}
		q := head.(*queue.Queue)
		deleteOk := m.(*amqp.QueueDeleteOk)
		q.ApplyDeleteOk(deleteOk.MessageCount)
		ch.mu.Lock()
		delete(ch.queues, q.Name)
		ch.mu.Unlock()
		q.ExecCallbackOnce("delete", deleteOk)
		return nil
	})

	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicConsumeOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		head, ok := ch.dequeue("queue.consume-ok")
		if !ok {
			return nil
		}
		c := head.(*consumer.Consumer)
		consumeOk := m.(*amqp.BasicConsumeOk)
		c.ApplyConsumeOk(consumeOk.ConsumerTag)
		ch.mu.Lock()
		ch.consumers[c.Tag()] = c
		ch.mu.Unlock()
		c.ExecCallbackOnce("consume", consumeOk)
		return nil
	})

	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicCancelOk, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		head, ok := ch.dequeue("queue.cancel-ok")
		if !ok {
			return nil
		}
		c := head.(*consumer.Consumer)
		ch.mu.Lock()
		delete(ch.consumers, c.Tag())
		ch.mu.Unlock()
		c.ExecCallbackOnce("cancel", m)
		return nil
	})

	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicCancel, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		cancel := m.(*amqp.BasicCancel)
		ch.mu.Lock()
		c, ok := ch.consumers[cancel.ConsumerTag]
		if ok {
			delete(ch.consumers, cancel.ConsumerTag)
		}
		ch.mu.Unlock()
		if ok {
			c.Cancelled("broker-initiated basic.cancel")
		}
		if !cancel.NoWait {
			if err := ch.SendMethod(&amqp.BasicCancelOk{ConsumerTag: cancel.ConsumerTag}); err != nil {
				ch.logger.WithError(err).Error("failed to send basic.cancel-ok")
			}
		}
		return nil
	})

	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicDeliver, func(target interface{}, m amqp.Method) *amqp.Error {
		return target.(*Channel).content.begin(m)
	})
	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicGetOk, func(target interface{}, m amqp.Method) *amqp.Error {
		return target.(*Channel).content.begin(m)
	})
	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicReturn, func(target interface{}, m amqp.Method) *amqp.Error {
		return target.(*Channel).content.begin(m)
	})

	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicGetEmpty, func(target interface{}, m amqp.Method) *amqp.Error {
		ch := target.(*Channel)
		head, ok := ch.dequeue("queue.get-response")
		if !ok {
			return nil
		}
		head.(*queue.Queue).ExecCallbackOnce("get", queue.GetResult{Empty: true})
		return nil
	})

	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicAck, func(target interface{}, m amqp.Method) *amqp.Error {
		target.(*Channel).ExecCallback("ack", m)
		return nil
	})
	dispatcher.Register(amqp.ClassBasic, amqp.MethodBasicNack, func(target interface{}, m amqp.Method) *amqp.Error {
		target.(*Channel).ExecCallback("nack", m)
		return nil
	})
}
