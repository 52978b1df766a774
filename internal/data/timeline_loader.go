package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/15195999826/LomoMarketplace-sub003/internal/timeline"
)

type timelineFile struct {
	Timelines []timelineDef `yaml:"timelines"`
}

type timelineDef struct {
	ID              string           `yaml:"id"`
	TotalDurationMs int64            `yaml:"total_duration_ms"`
	Tags            map[string]int64 `yaml:"tags"`
}

// LoadTimelines reads and validates timeline assets from a YAML file.
// Unlike ability components, an invalid timeline fails the load: a
// schedule that cannot run is a broken asset, not degradable content.
func LoadTimelines(path string) ([]*timeline.Timeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading timeline assets: %w", err)
	}
	return ParseTimelines(raw)
}

// ParseTimelines resolves timeline assets from YAML bytes.
func ParseTimelines(raw []byte) ([]*timeline.Timeline, error) {
	var file timelineFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing timeline assets: %w", err)
	}

	out := make([]*timeline.Timeline, 0, len(file.Timelines))
	for _, def := range file.Timelines {
		tl := &timeline.Timeline{
			ID:            def.ID,
			TotalDuration: def.TotalDurationMs,
			Tags:          def.Tags,
		}
		if err := tl.Validate(); err != nil {
			return nil, err
		}
		out = append(out, tl)
	}

	slog.Info("timeline assets loaded", "count", len(out))
	return out, nil
}
