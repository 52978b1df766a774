package event

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Reserved top-level field names in the wire encoding. Payload fields
// with these names would collide and are rejected by With.
const (
	fieldKind      = "kind"
	fieldLogicTime = "logicTime"
)

// Event is one emitted gameplay fact. On the wire it is a flat JSON
// object {kind, logicTime, ...payload}; consumers dispatch on Kind and
// must tolerate unknown fields. Once finalized it is immutable;
// mutation happens only inside the pre-phase Mutable wrapper.
type Event struct {
	Kind      string
	LogicTime int64
	Fields    map[string]any
}

// New creates an event with an empty payload.
func New(kind string, logicTime int64) Event {
	return Event{Kind: kind, LogicTime: logicTime, Fields: make(map[string]any)}
}

// With returns a copy of the event with one payload field set.
// The receiver's field map is never shared with the copy.
func (e Event) With(field string, value any) Event {
	out := e.clone()
	if field == fieldKind || field == fieldLogicTime {
		// reserved names stay authoritative; payload cannot shadow them
		return out
	}
	out.Fields[field] = value
	return out
}

func (e Event) clone() Event {
	fields := make(map[string]any, len(e.Fields))
	for k, v := range e.Fields {
		fields[k] = v
	}
	return Event{Kind: e.Kind, LogicTime: e.LogicTime, Fields: fields}
}

// Float reads a numeric payload field, coercing the integer types the
// YAML and JSON decoders produce.
func (e Event) Float(field string) (float64, bool) {
	v, ok := e.Fields[field]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Str reads a string payload field.
func (e Event) Str(field string) (string, bool) {
	s, ok := e.Fields[field].(string)
	return s, ok
}

// MarshalJSON flattens the payload into the top-level object so the
// wire form is {kind, logicTime, ...fields}.
func (e Event) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(e.Fields)+2)
	for k, v := range e.Fields {
		flat[k] = v
	}
	flat[fieldKind] = e.Kind
	flat[fieldLogicTime] = e.LogicTime
	return json.Marshal(flat)
}

// UnmarshalJSON reverses MarshalJSON, keeping unknown fields in the
// payload map.
func (e *Event) UnmarshalJSON(data []byte) error {
	flat := make(map[string]any)
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	kind, _ := flat[fieldKind].(string)
	if kind == "" {
		return fmt.Errorf("event missing kind: %s", data)
	}
	lt, _ := flat[fieldLogicTime].(float64)
	delete(flat, fieldKind)
	delete(flat, fieldLogicTime)
	e.Kind = kind
	e.LogicTime = int64(lt)
	e.Fields = flat
	return nil
}

func (e Event) String() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := fmt.Sprintf("%s@%d", e.Kind, e.LogicTime)
	for _, k := range keys {
		s += fmt.Sprintf(" %s=%v", k, e.Fields[k])
	}
	return s
}
