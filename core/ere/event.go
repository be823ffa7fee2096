package ere

import "slices"

// Event is an event hopper: a cluster of event mentions annotators
// judged to describe the same real-world event. Hoppers carry no type
// of their own; typing lives on the mentions.
type Event struct {
	id       string
	mentions []*EventMention
}

// ID returns the generated identifier of the event.
func (e *Event) ID() string { return e.id }

// Mentions returns the event's mentions in document order.
func (e *Event) Mentions() []*EventMention { return slices.Clone(e.mentions) }

func (e *Event) registryID() string { return e.id }

// EventMention is one textual realization of an event, anchored by a
// required trigger span.
type EventMention struct {
	id      string
	typ     string
	subtype string
	realis  string
	trigger Span
	args    []Argument
}

// ID returns the generated identifier of the mention.
func (m *EventMention) ID() string { return m.id }

// Type returns the event type tag (e.g. "conflict", "justice").
func (m *EventMention) Type() string { return m.typ }

// Subtype returns the event subtype tag.
func (m *EventMention) Subtype() string { return m.subtype }

// Realis returns the mention-level realis tag (e.g. "actual", "generic").
func (m *EventMention) Realis() string { return m.realis }

// Trigger returns the trigger span anchoring the mention.
func (m *EventMention) Trigger() Span { return m.trigger }

// Arguments returns the mention's arguments in document order.
func (m *EventMention) Arguments() []Argument { return slices.Clone(m.args) }

func (m *EventMention) registryID() string { return m.id }
