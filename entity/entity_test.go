package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecCallbackKeepsRegistration(t *testing.T) {
	var b Base
	b.Init(nil)

	calls := 0
	b.DefineCallback("open", func(arg interface{}) { calls++ })

	b.ExecCallback("open", nil)
	b.ExecCallback("open", nil)

	assert.Equal(t, 2, calls)
}

func TestExecCallbackOnceDropsRegistration(t *testing.T) {
	var b Base
	b.Init(nil)

	calls := 0
	b.DefineCallback("declare_ok", func(arg interface{}) { calls++ })

	b.ExecCallbackOnce("declare_ok", nil)
	b.ExecCallbackOnce("declare_ok", nil)

	assert.Equal(t, 1, calls)
	assert.False(t, b.HasCallback("declare_ok"))
}

func TestMissingCallbackIsNoop(t *testing.T) {
	var b Base
	b.Init(nil)
	assert.NotPanics(t, func() { b.ExecCallback("nothing", nil) })
}

func TestRedefineCallbackReplaces(t *testing.T) {
	var b Base
	b.Init(nil)

	var seen []string
	b.DefineCallback("flow", func(arg interface{}) { seen = append(seen, "first") })
	b.RedefineCallback("flow", func(arg interface{}) { seen = append(seen, "second") })

	b.ExecCallback("flow", nil)
	assert.Equal(t, []string{"second"}, seen)
}

func TestDefineCallbackSelfPassesOwner(t *testing.T) {
	type owner struct{ name string }
	o := &owner{name: "q1"}

	var b Base
	b.Init(o)

	var gotSelf interface{}
	b.DefineCallbackSelf("declare_ok", func(self interface{}, arg interface{}) {
		gotSelf = self
	})
	b.ExecCallback("declare_ok", nil)

	assert.Same(t, o, gotSelf)
}

func TestClearCallbacksEmptiesRegistry(t *testing.T) {
	var b Base
	b.Init(nil)
	b.DefineCallback("x", func(arg interface{}) {})
	b.ClearCallbacks()
	assert.False(t, b.HasCallback("x"))
}
