// Package config loads the protocol tuning parameters and dial defaults
// for the client, following the naming conventions of the teacher's
// sibling config package (vhost.VirtualHost carries a *config.Config,
// server/channel.go reads qos/shard-size style tunables from it) and
// mozilla-services-heka's AMQPInputConfig/AMQPOutputConfig struct-tag
// style for the per-field doc comments.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/travis-repos/amq-client/amqp"
)

// Dial carries everything needed to perform the opening handshake
// (spec.md §4.4, §4.6) plus default QoS values.
type Dial struct {
	// VirtualHost is the AMQP vhost requested in Connection.Open.
	VirtualHost string
	// ChannelMax is the client's requested upper bound. 0 means "no
	// preference"; the negotiated value is the minimum of client and
	// broker proposals, falling back to amqp.DefaultChannelMax per
	// spec.md §6 if the broker itself proposes 0.
	ChannelMax uint16
	// FrameMax is the largest frame payload this client will accept.
	FrameMax uint32
	// Heartbeat is the requested heartbeat interval. The core only emits
	// heartbeat framing (spec.md §1 non-goals); scheduling the timer is
	// the driver's responsibility.
	Heartbeat time.Duration

	// DefaultPrefetchSize/Count/Global hold the default QoS values
	// (spec.md §6). They are not sent to channels automatically:
	// Channel.Qos sends only the values its caller passes.
	DefaultPrefetchSize  uint32
	DefaultPrefetchCount uint16
	DefaultGlobalQos     bool
}

// DefaultDial returns the spec.md §6 defaults.
func DefaultDial() Dial {
	return Dial{
		VirtualHost:          "/",
		ChannelMax:           0,
		FrameMax:             131072,
		Heartbeat:            60 * time.Second,
		DefaultPrefetchSize:  amqp.DefaultPrefetchSize,
		DefaultPrefetchCount: amqp.DefaultPrefetchCount,
		DefaultGlobalQos:     amqp.DefaultGlobalQos,
	}
}

// Load reads a Dial from a viper-compatible config file (JSON/YAML/TOML/
// env), overlaying DefaultDial for anything unset. path may be empty, in
// which case only environment variables (prefixed AMQP_) and defaults
// apply.
func Load(path string) (Dial, error) {
	d := DefaultDial()

	v := viper.New()
	v.SetEnvPrefix("AMQP")
	v.AutomaticEnv()
	v.SetDefault("virtualhost", d.VirtualHost)
	v.SetDefault("channelmax", d.ChannelMax)
	v.SetDefault("framemax", d.FrameMax)
	v.SetDefault("heartbeat", d.Heartbeat)
	v.SetDefault("defaultprefetchsize", d.DefaultPrefetchSize)
	v.SetDefault("defaultprefetchcount", d.DefaultPrefetchCount)
	v.SetDefault("defaultglobalqos", d.DefaultGlobalQos)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return d, err
		}
	}

	d.VirtualHost = v.GetString("virtualhost")
	d.ChannelMax = uint16(v.GetUint32("channelmax"))
	d.FrameMax = v.GetUint32("framemax")
	d.Heartbeat = v.GetDuration("heartbeat")
	d.DefaultPrefetchSize = v.GetUint32("defaultprefetchsize")
	d.DefaultPrefetchCount = uint16(v.GetUint32("defaultprefetchcount"))
	d.DefaultGlobalQos = v.GetBool("defaultglobalqos")
	return d, nil
}

// NegotiateChannelMax applies spec.md §6's fallback: if the broker
// advertises 0 (or the connection is not yet open), 65535 is used.
func NegotiateChannelMax(brokerProposed uint16) uint16 {
	if brokerProposed == 0 {
		return amqp.DefaultChannelMax
	}
	return brokerProposed
}
