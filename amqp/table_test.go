package amqp

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRoundTrip(t *testing.T) {
	table := Table{
		"bool":   true,
		"int8":   int8(-5),
		"uint8":  uint8(5),
		"int16":  int16(-300),
		"uint16": uint16(300),
		"int32":  int32(-70000),
		"uint32": uint32(70000),
		"int64":  int64(-5000000000),
		"uint64": uint64(5000000000),
		"float":  float32(1.5),
		"double": float64(2.25),
		"string": "hello world",
		"nested": Table{"inner": int32(1)},
		"array":  []interface{}{int32(1), "two", true},
		"void":   nil,
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteTable(buf, table))

	r := bytes.NewReader(buf.Bytes())
	decoded, err := ReadTable(r)
	require.NoError(t, err)

	assert.Equal(t, table["bool"], decoded["bool"])
	assert.Equal(t, table["int8"], decoded["int8"])
	assert.Equal(t, table["uint8"], decoded["uint8"])
	assert.Equal(t, table["int16"], decoded["int16"])
	assert.Equal(t, table["uint16"], decoded["uint16"])
	assert.Equal(t, table["int32"], decoded["int32"])
	assert.Equal(t, table["uint32"], decoded["uint32"])
	assert.Equal(t, table["int64"], decoded["int64"])
	assert.Equal(t, table["uint64"], decoded["uint64"])
	assert.Equal(t, table["float"], decoded["float"])
	assert.Equal(t, table["double"], decoded["double"])
	assert.Equal(t, table["string"], decoded["string"])
	assert.Equal(t, table["nested"], decoded["nested"])
	assert.Equal(t, table["array"], decoded["array"])
	assert.Nil(t, decoded["void"])
}

func TestTableTimestampRoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	table := Table{"ts": now}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteTable(buf, table))
	decoded, err := ReadTable(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, now.Equal(decoded["ts"].(time.Time)))
}

func TestTableEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteTable(buf, Table{}))
	decoded, err := ReadTable(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
