package forms

import "strings"

// Group is a named collection of fields and nested groups. Its validity
// is the conjunction of its children's. The tree shape is fixed after
// construction; concurrent access is synchronized at the Field leaves.
type Group struct {
	fields map[string]*Field
	groups map[string]*Group
}

func NewGroup() *Group {
	return &Group{
		fields: map[string]*Field{},
		groups: map[string]*Group{},
	}
}

func (g *Group) AddField(name string, f *Field) *Group {
	g.fields[name] = f
	return g
}

func (g *Group) AddGroup(name string, sub *Group) *Group {
	g.groups[name] = sub
	return g
}

// Field resolves a dotted path like "customer.email". Nil when the
// path does not exist.
func (g *Group) Field(path string) *Field {
	parts := strings.Split(path, ".")
	cur := g
	for _, p := range parts[:len(parts)-1] {
		cur = cur.groups[p]
		if cur == nil {
			return nil
		}
	}
	return cur.fields[parts[len(parts)-1]]
}

func (g *Group) Group(name string) *Group {
	return g.groups[name]
}

func (g *Group) Valid() bool {
	for _, f := range g.fields {
		if !f.Valid() {
			return false
		}
	}
	for _, sub := range g.groups {
		if !sub.Valid() {
			return false
		}
	}
	return true
}

func (g *Group) MarkAllTouched() {
	for _, f := range g.fields {
		f.Touch()
	}
	for _, sub := range g.groups {
		sub.MarkAllTouched()
	}
}

// Value snapshots the whole subtree into nested maps. Field values are
// copied as-is; struct-typed values (country/state reference objects)
// are value types, so the snapshot does not alias the form.
func (g *Group) Value() map[string]any {
	out := make(map[string]any, len(g.fields)+len(g.groups))
	for name, f := range g.fields {
		out[name] = f.Value()
	}
	for name, sub := range g.groups {
		out[name] = sub.Value()
	}
	return out
}

// SetValue writes a nested map produced by Value back into the subtree.
// Unknown keys are ignored.
func (g *Group) SetValue(values map[string]any) {
	for name, v := range values {
		if f, ok := g.fields[name]; ok {
			f.SetValue(v)
			continue
		}
		if sub, ok := g.groups[name]; ok {
			if m, ok := v.(map[string]any); ok {
				sub.SetValue(m)
			}
		}
	}
}

// Reset clears every field in the subtree.
func (g *Group) Reset() {
	for _, f := range g.fields {
		f.Reset()
	}
	for _, sub := range g.groups {
		sub.Reset()
	}
}
