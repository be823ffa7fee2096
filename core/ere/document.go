package ere

import "slices"

// Document is a fully resolved Rich ERE annotation document: the typed,
// cross-linked object graph for one source document. Instances are
// created exclusively by a Loader and are immutable once returned.
type Document struct {
	docID      string
	sourceType string
	entities   []*Entity
	fillers    []*Filler
	relations  []*Relation
	events     []*Event
}

// DocID returns the source document identifier.
func (d *Document) DocID() string { return d.docID }

// SourceType returns the source genre tag (e.g. "multi_post", "newswire").
func (d *Document) SourceType() string { return d.sourceType }

// Entities returns the document's entities in document order.
func (d *Document) Entities() []*Entity { return slices.Clone(d.entities) }

// Fillers returns the document's fillers in document order.
func (d *Document) Fillers() []*Filler { return slices.Clone(d.fillers) }

// Relations returns the document's relations in document order.
func (d *Document) Relations() []*Relation { return slices.Clone(d.relations) }

// Events returns the document's events in document order.
func (d *Document) Events() []*Event { return slices.Clone(d.events) }

func (d *Document) registryID() string { return d.docID }

// documentBuilder accumulates a document during a load. freeze hands
// the collected state to an immutable Document and is called exactly
// once, after the last section has resolved.
type documentBuilder struct {
	docID      string
	sourceType string
	entities   []*Entity
	fillers    []*Filler
	relations  []*Relation
	events     []*Event
}

func newDocumentBuilder(docID, sourceType string) *documentBuilder {
	return &documentBuilder{docID: docID, sourceType: sourceType}
}

func (b *documentBuilder) addEntity(e *Entity)     { b.entities = append(b.entities, e) }
func (b *documentBuilder) addFiller(f *Filler)     { b.fillers = append(b.fillers, f) }
func (b *documentBuilder) addRelation(r *Relation) { b.relations = append(b.relations, r) }
func (b *documentBuilder) addEvent(e *Event)       { b.events = append(b.events, e) }

func (b *documentBuilder) freeze() *Document {
	return &Document{
		docID:      b.docID,
		sourceType: b.sourceType,
		entities:   b.entities,
		fillers:    b.fillers,
		relations:  b.relations,
		events:     b.events,
	}
}
