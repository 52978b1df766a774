package timeline

import (
	"fmt"
	"sort"
)

// Timeline is a fixed, data-defined schedule: named tags at millisecond
// offsets within a total duration. Cast times, multi-hit sequences and
// reserve-then-commit effects are all expressed as tag layouts instead
// of scripts.
type Timeline struct {
	ID            string
	TotalDuration int64
	Tags          map[string]int64
}

// Validate rejects schedules an instance could never honor.
func (t *Timeline) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("timeline missing id")
	}
	if t.TotalDuration <= 0 {
		return fmt.Errorf("timeline %s: total duration must be positive, got %d", t.ID, t.TotalDuration)
	}
	for tag, offset := range t.Tags {
		if offset < 0 {
			return fmt.Errorf("timeline %s: tag %q has negative offset %d", t.ID, tag, offset)
		}
		if offset > t.TotalDuration {
			return fmt.Errorf("timeline %s: tag %q offset %d exceeds total duration %d",
				t.ID, tag, offset, t.TotalDuration)
		}
	}
	return nil
}

type tagOffset struct {
	tag    string
	offset int64
}

// orderedTags returns tags sorted by offset, ties broken by name, so
// firing order is deterministic across runs.
func (t *Timeline) orderedTags() []tagOffset {
	out := make([]tagOffset, 0, len(t.Tags))
	for tag, offset := range t.Tags {
		out = append(out, tagOffset{tag: tag, offset: offset})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].offset != out[j].offset {
			return out[i].offset < out[j].offset
		}
		return out[i].tag < out[j].tag
	})
	return out
}
