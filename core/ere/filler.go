package ere

// Filler is an argument-only participant that is not a coreferential
// entity: times, monetary values, crimes, sentences and similar. A
// filler has exactly one textual occurrence, so it carries its span
// directly.
type Filler struct {
	id      string
	typ     string
	span    Span
	time    string
	hasTime bool
}

// ID returns the generated identifier of the filler.
func (f *Filler) ID() string { return f.id }

// Type returns the filler type tag (e.g. "time", "money", "crime").
func (f *Filler) Type() string { return f.typ }

// Span returns the filler's span. The text is the full text content of
// the filler element.
func (f *Filler) Span() Span { return f.span }

// Time returns the normalized time string carried by temporal fillers,
// and whether one was present.
func (f *Filler) Time() (string, bool) { return f.time, f.hasTime }

func (f *Filler) registryID() string { return f.id }
