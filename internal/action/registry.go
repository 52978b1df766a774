package action

import (
	"fmt"
)

// Factory builds an action from loosely typed definition params (the
// shape the YAML loader produces).
type Factory func(params map[string]any) (Action, error)

// registry maps action type name → factory. Populated by init below;
// hosts may register their own types before loading definitions.
var registry = map[string]Factory{}

// Register installs an action factory under a type name.
func Register(name string, f Factory) {
	registry[name] = f
}

// Create builds an action by type name. Unknown names and bad params
// are content errors: the caller decides whether to degrade to Noop.
func Create(name string, params map[string]any) (Action, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown action type: %s", name)
	}
	return f(params)
}

func init() {
	Register("damage", newDamageAction)
	Register("heal", newHealAction)
	Register("modify_attribute", newModifyAttributeAction)
	Register("grant_ability", newGrantAbilityAction)
	Register("add_tag", newAddTagAction)
	Register("remove_tag", newRemoveTagAction)
	Register("emit_event", newEmitEventAction)
	Register("noop", func(map[string]any) (Action, error) {
		return &NoopAction{Reason: "configured"}, nil
	})
}

func newDamageAction(params map[string]any) (Action, error) {
	amount, err := amountParam(params, "amount")
	if err != nil {
		return nil, err
	}
	targets, err := selectorParam(params, "targets")
	if err != nil {
		return nil, err
	}
	element, _ := params["element"].(string)
	return &DamageAction{Amount: amount, Element: element, Targets: targets}, nil
}

func newHealAction(params map[string]any) (Action, error) {
	amount, err := amountParam(params, "amount")
	if err != nil {
		return nil, err
	}
	targets, err := selectorParam(params, "targets")
	if err != nil {
		return nil, err
	}
	return &HealAction{Amount: amount, Targets: targets}, nil
}

func newModifyAttributeAction(params map[string]any) (Action, error) {
	attribute, ok := params["attribute"].(string)
	if !ok || attribute == "" {
		return nil, fmt.Errorf("modify_attribute requires attribute")
	}
	amount, err := amountParam(params, "amount")
	if err != nil {
		return nil, err
	}
	targets, err := selectorParam(params, "targets")
	if err != nil {
		return nil, err
	}
	set, _ := params["set"].(bool)
	return &ModifyAttributeAction{Attribute: attribute, Amount: amount, Set: set, Targets: targets}, nil
}

func newGrantAbilityAction(params map[string]any) (Action, error) {
	configID, ok := params["config_id"].(string)
	if !ok || configID == "" {
		return nil, fmt.Errorf("grant_ability requires config_id")
	}
	targets, err := selectorParam(params, "targets")
	if err != nil {
		return nil, err
	}
	return &GrantAbilityAction{ConfigID: configID, Targets: targets}, nil
}

func newAddTagAction(params map[string]any) (Action, error) {
	tag, ok := params["tag"].(string)
	if !ok || tag == "" {
		return nil, fmt.Errorf("add_tag requires tag")
	}
	targets, err := selectorParam(params, "targets")
	if err != nil {
		return nil, err
	}
	return &AddTagAction{
		Tag:        tag,
		Stacks:     intParam(params, "stacks", 1),
		DurationMs: int64(intParam(params, "duration_ms", 0)),
		Targets:    targets,
	}, nil
}

func newRemoveTagAction(params map[string]any) (Action, error) {
	tag, ok := params["tag"].(string)
	if !ok || tag == "" {
		return nil, fmt.Errorf("remove_tag requires tag")
	}
	targets, err := selectorParam(params, "targets")
	if err != nil {
		return nil, err
	}
	return &RemoveTagAction{
		Tag:     tag,
		Stacks:  intParam(params, "stacks", 1),
		Targets: targets,
	}, nil
}

func newEmitEventAction(params map[string]any) (Action, error) {
	kind, ok := params["kind"].(string)
	if !ok || kind == "" {
		return nil, fmt.Errorf("emit_event requires kind")
	}
	fields, _ := params["fields"].(map[string]any)
	via, _ := params["via_pipeline"].(bool)
	return &EmitEventAction{Kind: kind, Fields: fields, ViaPipeline: via}, nil
}

// amountParam accepts either a numeric literal or an attribute
// reference of the form {attribute: atk, of: owner, scale: 1.5}.
func amountParam(params map[string]any, key string) (Param[float64], error) {
	raw, ok := params[key]
	if !ok {
		return Param[float64]{}, fmt.Errorf("missing param %q", key)
	}
	switch v := raw.(type) {
	case float64:
		return Literal(v), nil
	case int:
		return Literal(float64(v)), nil
	case map[string]any:
		name, _ := v["attribute"].(string)
		if name == "" {
			return Param[float64]{}, fmt.Errorf("param %q: attribute reference requires attribute", key)
		}
		scale := 1.0
		switch s := v["scale"].(type) {
		case float64:
			scale = s
		case int:
			scale = float64(s)
		}
		of, _ := v["of"].(string)
		sel, err := parseSelector(of)
		if err != nil {
			return Param[float64]{}, fmt.Errorf("param %q: %w", key, err)
		}
		return AttributeParam(sel, name, scale), nil
	default:
		return Param[float64]{}, fmt.Errorf("param %q: unsupported value %T", key, raw)
	}
}

func selectorParam(params map[string]any, key string) (Selector, error) {
	raw, _ := params[key].(string)
	return parseSelector(raw)
}

// parseSelector maps definition strings onto selectors. Empty defaults
// to the ability owner.
func parseSelector(s string) (Selector, error) {
	switch s {
	case "", "owner", "self":
		return SelectOwner(), nil
	case "source":
		return SelectSource(), nil
	case "all_alive":
		return SelectAllAlive(), nil
	case "others":
		return SelectAllOthers(), nil
	case "event_source":
		return SelectEventActor("source"), nil
	case "event_target":
		return SelectEventActor("target"), nil
	default:
		return nil, fmt.Errorf("unknown target selector %q", s)
	}
}

func intParam(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}
