package model

// NodeKind identifies an entry of the page component tree.
type NodeKind string

const (
	NodeRow      NodeKind = "row"
	NodeColumn   NodeKind = "column"
	NodeGroup    NodeKind = "group"
	NodeField    NodeKind = "field"
	NodeButton   NodeKind = "button"
	NodeMarkdown NodeKind = "markdown"
)

// IsContainer reports whether the node lays out children.
func (k NodeKind) IsContainer() bool {
	return k == NodeRow || k == NodeColumn || k == NodeGroup
}

// Button is a clickable element. Link buttons navigate instead of firing an
// event (the Interface "Clear" action reloads the page with defaults).
type Button struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Variant string `json:"variant,omitempty"`
	Link    string `json:"link,omitempty"`
	// Icon is trusted inline SVG markup rendered before the label.
	Icon string `json:"icon,omitempty"`
}

// Node is one entry of the component tree.
type Node struct {
	Kind     NodeKind `json:"kind"`
	Field    *Field   `json:"field,omitempty"`
	Button   *Button  `json:"button,omitempty"`
	Text     string   `json:"text,omitempty"`
	Children []Node   `json:"children,omitempty"`
}

// Event describes a live subscription: firing Trigger on Source invokes the
// binding with the Inputs values and writes the results to Outputs, all in
// order.
type Event struct {
	Binding string   `json:"binding"`
	Trigger Trigger  `json:"trigger"`
	Source  string   `json:"source"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// Page is the top-level representation renderers consume.
type Page struct {
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Nodes       []Node            `json:"nodes"`
	Events      []Event           `json:"events,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Walk visits every node depth-first. Returning false from fn stops the walk.
func (p Page) Walk(fn func(Node) bool) {
	walkNodes(p.Nodes, fn)
}

func walkNodes(nodes []Node, fn func(Node) bool) bool {
	for _, node := range nodes {
		if !fn(node) {
			return false
		}
		if len(node.Children) > 0 && !walkNodes(node.Children, fn) {
			return false
		}
	}
	return true
}

// Fields returns every field placed on the page in document order.
func (p Page) Fields() []*Field {
	var out []*Field
	p.Walk(func(node Node) bool {
		if node.Kind == NodeField && node.Field != nil {
			out = append(out, node.Field)
		}
		return true
	})
	return out
}

// Field looks up a placed field by ID.
func (p Page) Field(id string) (*Field, bool) {
	for _, field := range p.Fields() {
		if field.ID == id {
			return field, true
		}
	}
	return nil, false
}

// EventsFor returns the events fired by the given component.
func (p Page) EventsFor(source string, trigger Trigger) []Event {
	var out []Event
	for _, event := range p.Events {
		if event.Source == source && event.Trigger == trigger {
			out = append(out, event)
		}
	}
	return out
}

// Clone returns a deep copy so callers can decorate a page without touching
// the app definition.
func (p Page) Clone() Page {
	out := p
	out.Nodes = cloneNodes(p.Nodes)
	if p.Events != nil {
		out.Events = make([]Event, len(p.Events))
		for i, event := range p.Events {
			event.Inputs = append([]string(nil), event.Inputs...)
			event.Outputs = append([]string(nil), event.Outputs...)
			out.Events[i] = event
		}
	}
	if p.Metadata != nil {
		out.Metadata = make(map[string]string, len(p.Metadata))
		for key, value := range p.Metadata {
			out.Metadata[key] = value
		}
	}
	return out
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, node := range nodes {
		if node.Field != nil {
			field := node.Field.Clone()
			node.Field = &field
		}
		if node.Button != nil {
			button := *node.Button
			node.Button = &button
		}
		node.Children = cloneNodes(node.Children)
		out[i] = node
	}
	return out
}
