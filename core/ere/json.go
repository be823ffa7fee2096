package ere

import "encoding/json"

// DocumentJSON is the exported JSON form of a loaded document: a plain
// value tree in which arguments name their targets by id rather than by
// pointer, so the form survives encoding round-trips and downstream
// tooling.
type DocumentJSON struct {
	DocID      string          `json:"doc_id"`
	SourceType string          `json:"source_type"`
	Entities   []*EntityJSON   `json:"entities,omitempty"`
	Fillers    []*FillerJSON   `json:"fillers,omitempty"`
	Relations  []*RelationJSON `json:"relations,omitempty"`
	Events     []*EventJSON    `json:"events,omitempty"`
}

// SpanJSON is the JSON form of a Span.
type SpanJSON struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// EntityJSON is the JSON form of an Entity.
type EntityJSON struct {
	ID          string               `json:"id"`
	Type        string               `json:"type"`
	Specificity string               `json:"specificity"`
	Mentions    []*EntityMentionJSON `json:"mentions,omitempty"`
}

// EntityMentionJSON is the JSON form of an EntityMention.
type EntityMentionJSON struct {
	ID       string    `json:"id"`
	NounType string    `json:"noun_type"`
	Extent   SpanJSON  `json:"extent"`
	Head     *SpanJSON `json:"head,omitempty"`
}

// FillerJSON is the JSON form of a Filler.
type FillerJSON struct {
	ID   string   `json:"id"`
	Type string   `json:"type"`
	Span SpanJSON `json:"span"`
	Time *string  `json:"nom_time,omitempty"`
}

// RelationJSON is the JSON form of a Relation.
type RelationJSON struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`
	Subtype  string                 `json:"subtype"`
	Mentions []*RelationMentionJSON `json:"mentions,omitempty"`
}

// RelationMentionJSON is the JSON form of a RelationMention.
type RelationMentionJSON struct {
	ID      string        `json:"id"`
	Realis  string        `json:"realis"`
	Trigger *SpanJSON     `json:"trigger,omitempty"`
	Arg1    *ArgumentJSON `json:"arg1,omitempty"`
	Arg2    *ArgumentJSON `json:"arg2,omitempty"`
}

// EventJSON is the JSON form of an Event.
type EventJSON struct {
	ID       string              `json:"id"`
	Mentions []*EventMentionJSON `json:"mentions,omitempty"`
}

// EventMentionJSON is the JSON form of an EventMention.
type EventMentionJSON struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Subtype   string          `json:"subtype"`
	Realis    string          `json:"realis"`
	Trigger   SpanJSON        `json:"trigger"`
	Arguments []*ArgumentJSON `json:"arguments,omitempty"`
}

// ArgumentJSON is the id-based JSON form of an argument link. Kind is
// "entity" or "filler" and selects which id fields are populated.
type ArgumentJSON struct {
	Kind            string     `json:"kind"`
	Role            string     `json:"role"`
	Realis          LinkRealis `json:"realis,omitempty"`
	EntityID        string     `json:"entity_id,omitempty"`
	EntityMentionID string     `json:"entity_mention_id,omitempty"`
	FillerID        string     `json:"filler_id,omitempty"`
}

// Snapshot returns the document's JSON form.
func (d *Document) Snapshot() *DocumentJSON {
	out := &DocumentJSON{
		DocID:      d.docID,
		SourceType: d.sourceType,
	}
	for _, e := range d.entities {
		out.Entities = append(out.Entities, entityJSON(e))
	}
	for _, f := range d.fillers {
		out.Fillers = append(out.Fillers, fillerJSON(f))
	}
	for _, r := range d.relations {
		out.Relations = append(out.Relations, relationJSON(r))
	}
	for _, e := range d.events {
		out.Events = append(out.Events, eventJSON(e))
	}
	return out
}

// MarshalJSON encodes the document through its Snapshot.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Snapshot())
}

func spanJSON(s Span) SpanJSON {
	return SpanJSON{Start: s.Start(), End: s.End(), Text: s.Text()}
}

func optSpanJSON(s *Span) *SpanJSON {
	if s == nil {
		return nil
	}
	v := spanJSON(*s)
	return &v
}

func entityJSON(e *Entity) *EntityJSON {
	out := &EntityJSON{ID: e.id, Type: e.typ, Specificity: e.specificity}
	for _, m := range e.mentions {
		out.Mentions = append(out.Mentions, &EntityMentionJSON{
			ID:       m.id,
			NounType: m.nounType,
			Extent:   spanJSON(m.extent),
			Head:     optSpanJSON(m.head),
		})
	}
	return out
}

func fillerJSON(f *Filler) *FillerJSON {
	out := &FillerJSON{ID: f.id, Type: f.typ, Span: spanJSON(f.span)}
	if f.hasTime {
		t := f.time
		out.Time = &t
	}
	return out
}

func relationJSON(r *Relation) *RelationJSON {
	out := &RelationJSON{ID: r.id, Type: r.typ, Subtype: r.subtype}
	for _, m := range r.mentions {
		out.Mentions = append(out.Mentions, &RelationMentionJSON{
			ID:      m.id,
			Realis:  m.realis,
			Trigger: optSpanJSON(m.trigger),
			Arg1:    argumentJSON(m.arg1),
			Arg2:    argumentJSON(m.arg2),
		})
	}
	return out
}

func eventJSON(e *Event) *EventJSON {
	out := &EventJSON{ID: e.id}
	for _, m := range e.mentions {
		mj := &EventMentionJSON{
			ID:      m.id,
			Type:    m.typ,
			Subtype: m.subtype,
			Realis:  m.realis,
			Trigger: spanJSON(m.trigger),
		}
		for _, a := range m.args {
			mj.Arguments = append(mj.Arguments, argumentJSON(a))
		}
		out.Mentions = append(out.Mentions, mj)
	}
	return out
}

func argumentJSON(a Argument) *ArgumentJSON {
	switch arg := a.(type) {
	case *EntityArgument:
		return &ArgumentJSON{
			Kind:            "entity",
			Role:            arg.role,
			Realis:          arg.realis,
			EntityID:        arg.entity.id,
			EntityMentionID: arg.mention.id,
		}
	case *FillerArgument:
		return &ArgumentJSON{
			Kind:     "filler",
			Role:     arg.role,
			Realis:   arg.realis,
			FillerID: arg.filler.id,
		}
	default:
		return nil
	}
}
