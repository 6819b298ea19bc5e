// Package log provides the scoped logrus entries every entity in this
// module logs through, following the pattern in the teacher's
// vhost.New ("log.WithFields(log.Fields{"vhost": name})") and
// server.Channel.logger ("log.WithFields(log.Fields{"connectionId": ...,
// "channelId": id})").
package log

import "github.com/sirupsen/logrus"

// Base is the process-wide logger; callers may reconfigure its level or
// formatter before any entity is constructed.
var Base = logrus.New()

// For returns a logrus entry scoped to one named component instance, e.g.
// log.For("connection", connID) or log.For("channel", channelID).
func For(component string, id interface{}) *logrus.Entry {
	return Base.WithFields(logrus.Fields{component + "Id": id})
}

// ForName scopes by a string name instead of a numeric id, used by
// Consumer whose identity is its (possibly broker-assigned) tag.
func ForName(component string, name string) *logrus.Entry {
	return Base.WithFields(logrus.Fields{component: name})
}
