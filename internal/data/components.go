package data

import (
	"fmt"
	"log/slog"

	"github.com/15195999826/LomoMarketplace-sub003/internal/ability"
	"github.com/15195999826/LomoMarketplace-sub003/internal/action"
	"github.com/15195999826/LomoMarketplace-sub003/internal/actor"
)

// ComponentBuilder parses definition params once and returns the
// per-grant component factory stored in an ability config.
type ComponentBuilder func(params map[string]any) (func() ability.Component, error)

// componentRegistry maps component type name → builder. Populated by
// init; hosts may register custom component types before loading.
var componentRegistry = map[string]ComponentBuilder{}

// RegisterComponent installs a component builder under a type name.
func RegisterComponent(name string, b ComponentBuilder) {
	componentRegistry[name] = b
}

// buildComponent resolves one component definition. Unknown types and
// bad params are content errors: they degrade to a noop component with
// a logged warning instead of failing the whole load.
func buildComponent(configID string, def componentDef) func() ability.Component {
	builder, ok := componentRegistry[def.Type]
	if !ok {
		slog.Warn("unknown component type, degrading to noop",
			"config", configID, "type", def.Type)
		reason := fmt.Sprintf("unknown component type %q", def.Type)
		return func() ability.Component { return ability.NewNoopComponent(reason) }
	}
	factory, err := builder(def.Params)
	if err != nil {
		slog.Warn("component definition invalid, degrading to noop",
			"config", configID, "type", def.Type, "err", err)
		reason := fmt.Sprintf("invalid %s component: %v", def.Type, err)
		return func() ability.Component { return ability.NewNoopComponent(reason) }
	}
	return factory
}

func init() {
	RegisterComponent("attribute_modifier", buildAttributeModifier)
	RegisterComponent("duration", buildDuration)
	RegisterComponent("stack", buildStack)
	RegisterComponent("tag", buildTag)
	RegisterComponent("trigger", buildTrigger)
	RegisterComponent("timeline", buildTimeline)
}

func buildAttributeModifier(params map[string]any) (func() ability.Component, error) {
	raw, ok := params["modifiers"].([]any)
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("attribute_modifier requires modifiers")
	}
	mods := make([]actor.Modifier, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("modifier %d is not a mapping", i)
		}
		attribute, _ := m["attribute"].(string)
		if attribute == "" {
			return nil, fmt.Errorf("modifier %d missing attribute", i)
		}
		kind, err := parseModifierKind(stringOr(m, "kind", "add_base"))
		if err != nil {
			return nil, fmt.Errorf("modifier %d: %w", i, err)
		}
		mods = append(mods, actor.Modifier{
			Attribute: attribute,
			Kind:      kind,
			Value:     floatOr(m, "value", 0),
			Priority:  intOr(m, "priority", 0),
		})
	}
	return func() ability.Component {
		return ability.NewAttributeModifierComponent(mods...)
	}, nil
}

func parseModifierKind(s string) (actor.ModifierKind, error) {
	switch s {
	case "add_base":
		return actor.ModAddBase, nil
	case "mul_base":
		return actor.ModMulBase, nil
	case "add_final":
		return actor.ModAddFinal, nil
	case "mul_final":
		return actor.ModMulFinal, nil
	default:
		return 0, fmt.Errorf("unknown modifier kind %q", s)
	}
}

func buildDuration(params map[string]any) (func() ability.Component, error) {
	duration := int64(intOr(params, "duration_ms", 0))
	if duration <= 0 {
		return nil, fmt.Errorf("duration requires positive duration_ms")
	}
	return func() ability.Component {
		return ability.NewDurationComponent(duration)
	}, nil
}

func buildStack(params map[string]any) (func() ability.Component, error) {
	initial := intOr(params, "initial", 1)
	max := intOr(params, "max", 0)
	expireAtZero := boolOr(params, "expire_at_zero", false)
	return func() ability.Component {
		return ability.NewStackComponent(initial, max, expireAtZero)
	}, nil
}

func buildTag(params map[string]any) (func() ability.Component, error) {
	tags := stringSlice(params, "tags")
	if len(tags) == 0 {
		return nil, fmt.Errorf("tag component requires tags")
	}
	return func() ability.Component {
		return ability.NewTagComponent(tags...)
	}, nil
}

func buildTrigger(params map[string]any) (func() ability.Component, error) {
	eventKind, _ := params["event"].(string)
	if eventKind == "" {
		return nil, fmt.Errorf("trigger requires event")
	}
	actions, err := buildActionList(params, "actions")
	if err != nil {
		return nil, err
	}
	conditions, err := buildConditions(params)
	if err != nil {
		return nil, err
	}
	costs, err := buildCosts(params)
	if err != nil {
		return nil, err
	}
	ownerField, _ := params["owner_field"].(string)
	cooldownTag, _ := params["cooldown_tag"].(string)
	cooldownMs := int64(intOr(params, "cooldown_ms", 0))
	maxActivations := intOr(params, "max_activations", 0)

	return func() ability.Component {
		c := ability.NewTriggerComponent(eventKind, actions...)
		c.OwnerField = ownerField
		c.Conditions = conditions
		c.Costs = costs
		c.CooldownTag = cooldownTag
		c.CooldownMs = cooldownMs
		c.MaxActivations = maxActivations
		return c
	}, nil
}

func buildTimeline(params map[string]any) (func() ability.Component, error) {
	timelineID, _ := params["timeline_id"].(string)
	if timelineID == "" {
		return nil, fmt.Errorf("timeline component requires timeline_id")
	}
	tagActions := make(map[string][]action.Action)
	if rawTags, ok := params["tag_actions"].(map[string]any); ok {
		for tag, rawList := range rawTags {
			wrapped := map[string]any{"actions": rawList}
			actions, err := buildActionList(wrapped, "actions")
			if err != nil {
				return nil, fmt.Errorf("tag %q: %w", tag, err)
			}
			tagActions[tag] = actions
		}
	}
	startOn, _ := params["start_on"].(string)
	expireOnComplete := boolOr(params, "expire_on_complete", false)

	return func() ability.Component {
		c := ability.NewTimelineComponent(timelineID, tagActions)
		c.StartOn = startOn
		c.ExpireOnComplete = expireOnComplete
		return c
	}, nil
}

// buildActionList resolves nested action definitions through the
// action registry; a failed definition degrades to a noop action.
func buildActionList(params map[string]any, key string) ([]action.Action, error) {
	raw, ok := params[key].([]any)
	if !ok {
		return nil, nil
	}
	out := make([]action.Action, 0, len(raw))
	for i, item := range raw {
		def, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("action %d is not a mapping", i)
		}
		typ, _ := def["type"].(string)
		actionParams, _ := def["params"].(map[string]any)
		a, err := action.Create(typ, actionParams)
		if err != nil {
			slog.Warn("action definition invalid, degrading to noop",
				"type", typ, "err", err)
			a = &action.NoopAction{Reason: err.Error()}
		}
		out = append(out, a)
	}
	return out, nil
}

func buildConditions(params map[string]any) ([]ability.Condition, error) {
	raw, ok := params["conditions"].([]any)
	if !ok {
		return nil, nil
	}
	out := make([]ability.Condition, 0, len(raw))
	for i, item := range raw {
		def, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("condition %d is not a mapping", i)
		}
		typ, _ := def["type"].(string)
		switch typ {
		case "has_tag":
			out = append(out, &ability.HasTagCondition{
				Tag:       stringOr(def, "tag", ""),
				MinStacks: intOr(def, "min_stacks", 0),
			})
		case "missing_tag":
			out = append(out, &ability.MissingTagCondition{
				Tag: stringOr(def, "tag", ""),
			})
		case "attribute_at_least":
			out = append(out, &ability.AttributeAtLeastCondition{
				Attribute: stringOr(def, "attribute", ""),
				Min:       floatOr(def, "min", 0),
			})
		default:
			return nil, fmt.Errorf("condition %d: unknown type %q", i, typ)
		}
	}
	return out, nil
}

func buildCosts(params map[string]any) ([]ability.Cost, error) {
	raw, ok := params["costs"].([]any)
	if !ok {
		return nil, nil
	}
	out := make([]ability.Cost, 0, len(raw))
	for i, item := range raw {
		def, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cost %d is not a mapping", i)
		}
		attribute := stringOr(def, "attribute", "")
		if attribute == "" {
			return nil, fmt.Errorf("cost %d missing attribute", i)
		}
		out = append(out, &ability.AttributeCost{
			Attribute: attribute,
			Amount:    floatOr(def, "amount", 0),
		})
	}
	return out, nil
}

// --- loosely typed param helpers ---

func stringOr(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}

func intOr(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

func floatOr(m map[string]any, key string, def float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

func boolOr(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

func stringSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
