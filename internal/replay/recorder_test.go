package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
)

func TestRecorderWritesFlatJSONL(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)

	require.NoError(t, r.WriteHeader(Header{RunID: "run-1", TickMs: 100}))
	require.NoError(t, r.Record([]event.Event{
		event.New("damage", 100).With("source", "hero").With("target", "orc").With("amount", 25.0),
		event.New("actor_defeated", 100).With("target", "orc"),
	}))
	require.NoError(t, r.Record(nil))
	assert.Equal(t, 2, r.Written())

	scanner := bufio.NewScanner(&buf)

	require.True(t, scanner.Scan())
	var header map[string]any
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &header))
	assert.Equal(t, "run-1", header["runId"])
	assert.Equal(t, 100.0, header["tickMs"])

	// event lines are flat: payload fields sit next to kind/logicTime
	require.True(t, scanner.Scan())
	var line map[string]any
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
	assert.Equal(t, "damage", line["kind"])
	assert.Equal(t, 100.0, line["logicTime"])
	assert.Equal(t, "hero", line["source"])
	assert.Equal(t, 25.0, line["amount"])
	_, nested := line["fields"]
	assert.False(t, nested, "payload is never nested under a fields key")

	require.True(t, scanner.Scan())
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
	assert.Equal(t, "actor_defeated", line["kind"])

	assert.False(t, scanner.Scan(), "empty flushes write nothing")
}

func TestRecordedEventsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)
	src := event.New("heal", 42).With("target", "hero").With("amount", 30.0)
	require.NoError(t, r.Record([]event.Event{src}))

	var back event.Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "heal", back.Kind)
	assert.Equal(t, int64(42), back.LogicTime)
	tgt, _ := back.Str("target")
	assert.Equal(t, "hero", tgt)
	amount, _ := back.Float("amount")
	assert.Equal(t, 30.0, amount)
}
