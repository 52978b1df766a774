package ability

// TagComponent contributes component-provenance tags to the owner's
// ledger. The tags exist exactly as long as the component is active;
// they are never counted into loose stacks and the manual remove
// operation cannot touch them.
type TagComponent struct {
	baseComponent
	Tags []string
}

func NewTagComponent(tags ...string) *TagComponent {
	return &TagComponent{Tags: tags}
}

func (c *TagComponent) Name() string { return "Tag" }

func (c *TagComponent) ProvidedTags() []string {
	return c.Tags
}
