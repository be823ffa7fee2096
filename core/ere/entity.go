package ere

import "slices"

// Entity is a coreference cluster: every mention it owns refers to the
// same real-world referent.
type Entity struct {
	id          string
	typ         string
	specificity string
	mentions    []*EntityMention
}

// ID returns the generated identifier of the entity.
func (e *Entity) ID() string { return e.id }

// Type returns the entity type tag (e.g. "PER", "ORG", "GPE").
func (e *Entity) Type() string { return e.typ }

// Specificity returns the specificity tag (e.g. "specific", "nonspecific").
func (e *Entity) Specificity() string { return e.specificity }

// Mentions returns the entity's mentions in document order.
func (e *Entity) Mentions() []*EntityMention { return slices.Clone(e.mentions) }

func (e *Entity) registryID() string { return e.id }

// EntityMention is a single textual mention of an entity.
type EntityMention struct {
	id       string
	nounType string
	extent   Span
	head     *Span
}

// ID returns the generated identifier of the mention.
func (m *EntityMention) ID() string { return m.id }

// NounType returns the mention's noun type tag (e.g. "NAM", "NOM", "PRO").
func (m *EntityMention) NounType() string { return m.nounType }

// Extent returns the full extent span of the mention.
func (m *EntityMention) Extent() Span { return m.extent }

// Head returns the nominal head span, when the source annotated one.
func (m *EntityMention) Head() (Span, bool) {
	if m.head == nil {
		return Span{}, false
	}
	return *m.head, true
}

func (m *EntityMention) registryID() string { return m.id }
