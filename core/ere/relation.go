package ere

import "slices"

// Relation is a typed binary relation between two arguments, realized
// by one or more mentions.
type Relation struct {
	id       string
	typ      string
	subtype  string
	mentions []*RelationMention
}

// ID returns the generated identifier of the relation.
func (r *Relation) ID() string { return r.id }

// Type returns the relation type tag (e.g. "physical", "partwhole").
func (r *Relation) Type() string { return r.typ }

// Subtype returns the relation subtype tag.
func (r *Relation) Subtype() string { return r.subtype }

// Mentions returns the relation's mentions in document order.
func (r *Relation) Mentions() []*RelationMention { return slices.Clone(r.mentions) }

func (r *Relation) registryID() string { return r.id }

// RelationMention is one textual realization of a relation. Its two
// argument slots correspond to the rel_arg1 and rel_arg2 elements of the
// source format.
type RelationMention struct {
	id      string
	realis  string
	trigger *Span
	arg1    Argument
	arg2    Argument
}

// ID returns the generated identifier of the mention.
func (m *RelationMention) ID() string { return m.id }

// Realis returns the mention-level realis tag of the source format.
func (m *RelationMention) Realis() string { return m.realis }

// Trigger returns the trigger span, when the source annotated one.
func (m *RelationMention) Trigger() (Span, bool) {
	if m.trigger == nil {
		return Span{}, false
	}
	return *m.trigger, true
}

// Arg1 returns the first argument slot, or nil when the source omitted
// it.
func (m *RelationMention) Arg1() Argument { return m.arg1 }

// Arg2 returns the second argument slot, or nil when the source omitted
// it.
func (m *RelationMention) Arg2() Argument { return m.arg2 }

func (m *RelationMention) registryID() string { return m.id }
