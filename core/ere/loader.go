package ere

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/calperum/textkit/core/errors"
	"github.com/calperum/textkit/core/xml"
)

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// PrefixDocIDToIDs generates every identifier as "docid-rawid"
	// instead of the raw XML id, keeping ids unique across corpora that
	// reuse id ranges between documents.
	PrefixDocIDToIDs bool
}

// Loader loads Rich ERE annotation XML into immutable Documents. A
// Loader holds only configuration and is safe for concurrent use; all
// per-load state lives in a resolver created per call.
type Loader struct {
	opts LoaderOptions
}

// NewLoader returns a Loader with the given options.
func NewLoader(opts LoaderOptions) *Loader {
	return &Loader{opts: opts}
}

// LoadFile reads one Rich ERE XML file and loads it. Any failure comes
// back as a *LoadError naming the path.
func (l *Loader) LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: errors.NewIO("read", path, err)}
	}
	return l.load(data, path)
}

// Load loads one Rich ERE XML document from memory. Any failure comes
// back as a *LoadError.
func (l *Loader) Load(data []byte) (*Document, error) {
	return l.load(data, "")
}

func (l *Loader) load(data []byte, path string) (*Document, error) {
	// Fold carriage returns to newlines before parsing so that the
	// character offsets annotation tools computed against
	// newline-normalized text keep their meaning.
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))

	dom, err := xml.Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: &errors.ParseError{
			Format:  "XML",
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}}
	}

	res := newResolver(l.opts)
	doc, err := res.resolve(dom)
	if err != nil {
		return nil, &LoadError{DocID: res.docID, Path: path, Err: err}
	}
	return doc, nil
}

// resolver walks one parsed document and performs the single forward
// pass that builds, registers and cross-links the object graph. A
// resolver lives for exactly one load.
type resolver struct {
	opts  LoaderOptions
	reg   *registry
	docID string
}

func newResolver(opts LoaderOptions) *resolver {
	return &resolver{opts: opts, reg: newRegistry()}
}

func (r *resolver) resolve(dom *xml.Document) (*Document, error) {
	root := dom.Root()
	if root == nil {
		return nil, &SchemaError{Message: "document has no root element"}
	}
	// The root tag alone matches case-insensitively; every other tag in
	// the format is case-sensitive.
	if !strings.EqualFold(root.Name(), "deft_ere") {
		return nil, &SchemaError{Element: root.Name(), Message: "Rich ERE requires a deft_ere root element"}
	}

	docID, err := requireAttr(root, "doc_id")
	if err != nil {
		return nil, err
	}
	r.docID = docID

	sourceType, err := requireAttr(root, "source_type")
	if err != nil {
		return nil, err
	}

	b := newDocumentBuilder(docID, sourceType)

	for _, section := range root.Children() {
		switch section.Name() {
		case "entities":
			for _, child := range section.Children() {
				if child.Name() != "entity" {
					continue
				}
				ent, err := r.toEntity(child)
				if err != nil {
					return nil, err
				}
				b.addEntity(ent)
			}
		case "fillers":
			for _, child := range section.Children() {
				if child.Name() != "filler" {
					continue
				}
				f, err := r.toFiller(child)
				if err != nil {
					return nil, err
				}
				b.addFiller(f)
			}
		case "relations":
			for _, child := range section.Children() {
				if child.Name() != "relation" {
					continue
				}
				rel, err := r.toRelation(child)
				if err != nil {
					return nil, err
				}
				b.addRelation(rel)
			}
		case "hoppers":
			for _, child := range section.Children() {
				if child.Name() != "hopper" {
					continue
				}
				ev, err := r.toEvent(child)
				if err != nil {
					return nil, err
				}
				b.addEvent(ev)
			}
		default:
			return nil, &SchemaError{Element: section.Name(), Message: "unrecognized element in ERE document"}
		}
	}

	doc := b.freeze()
	// The document registers under its bare doc id, never prefixed.
	r.reg.put(doc)
	return doc, nil
}

// generatedID returns the registry key for a raw XML id.
func (r *resolver) generatedID(raw string) string {
	if r.opts.PrefixDocIDToIDs {
		return r.docID + "-" + raw
	}
	return raw
}

func (r *resolver) toEntity(n *xml.Node) (*Entity, error) {
	id, err := requireAttr(n, "id")
	if err != nil {
		return nil, err
	}
	typ, err := requireAttr(n, "type")
	if err != nil {
		return nil, err
	}
	specificity, err := requireAttr(n, "specificity")
	if err != nil {
		return nil, err
	}

	gid := r.generatedID(id)
	var mentions []*EntityMention
	for _, child := range n.Children() {
		if child.Name() != "entity_mention" {
			continue
		}
		m, err := r.toEntityMention(child)
		if err != nil {
			return nil, err
		}
		// Recorded before the entity itself registers; argument
		// resolution relies on it when an argument element carries no
		// entity_id.
		r.reg.recordOwner(m.id, gid)
		mentions = append(mentions, m)
	}

	ent := &Entity{id: gid, typ: typ, specificity: specificity, mentions: mentions}
	r.reg.put(ent)
	return ent, nil
}

func (r *resolver) toEntityMention(n *xml.Node) (*EntityMention, error) {
	id, err := requireAttr(n, "id")
	if err != nil {
		return nil, err
	}
	nounType, err := requireAttr(n, "noun_type")
	if err != nil {
		return nil, err
	}
	offset, err := requireIntAttr(n, "offset")
	if err != nil {
		return nil, err
	}
	length, err := requireIntAttr(n, "length")
	if err != nil {
		return nil, err
	}

	extent, err := lengthDerivedSpan(n, "mention_text", offset, length)
	if err != nil {
		return nil, err
	}
	head, err := selfContainedSpan(n, "nom_head")
	if err != nil {
		return nil, err
	}

	m := &EntityMention{
		id:       r.generatedID(id),
		nounType: nounType,
		extent:   extent,
		head:     head,
	}
	r.reg.put(m)
	return m, nil
}

func (r *resolver) toFiller(n *xml.Node) (*Filler, error) {
	id, err := requireAttr(n, "id")
	if err != nil {
		return nil, err
	}
	typ, err := requireAttr(n, "type")
	if err != nil {
		return nil, err
	}
	offset, err := requireIntAttr(n, "offset")
	if err != nil {
		return nil, err
	}
	length, err := requireIntAttr(n, "length")
	if err != nil {
		return nil, err
	}

	// Fillers carry their offsets on the element itself and their text
	// as the element's full text content.
	f := &Filler{
		id:   r.generatedID(id),
		typ:  typ,
		span: NewSpan(offset, offset+length-1, n.InnerText()),
	}
	if t, ok := n.LookupAttr("nom_time"); ok {
		f.time, f.hasTime = t, true
	}
	r.reg.put(f)
	return f, nil
}

func (r *resolver) toRelation(n *xml.Node) (*Relation, error) {
	id, err := requireAttr(n, "id")
	if err != nil {
		return nil, err
	}
	typ, err := requireAttr(n, "type")
	if err != nil {
		return nil, err
	}
	subtype, err := requireAttr(n, "subtype")
	if err != nil {
		return nil, err
	}

	var mentions []*RelationMention
	for _, child := range n.Children() {
		if child.Name() != "relation_mention" {
			continue
		}
		m, err := r.toRelationMention(child)
		if err != nil {
			return nil, err
		}
		mentions = append(mentions, m)
	}

	rel := &Relation{id: r.generatedID(id), typ: typ, subtype: subtype, mentions: mentions}
	r.reg.put(rel)
	return rel, nil
}

func (r *resolver) toRelationMention(n *xml.Node) (*RelationMention, error) {
	id, err := requireAttr(n, "id")
	if err != nil {
		return nil, err
	}
	realis, err := requireAttr(n, "realis")
	if err != nil {
		return nil, err
	}
	trigger, err := selfContainedSpan(n, "trigger")
	if err != nil {
		return nil, err
	}

	m := &RelationMention{id: r.generatedID(id), realis: realis, trigger: trigger}
	for _, child := range n.Children() {
		switch child.Name() {
		case "rel_arg1":
			arg, err := r.toArgument(child)
			if err != nil {
				return nil, err
			}
			m.arg1 = arg
		case "rel_arg2":
			arg, err := r.toArgument(child)
			if err != nil {
				return nil, err
			}
			m.arg2 = arg
		}
	}

	r.reg.put(m)
	return m, nil
}

func (r *resolver) toEvent(n *xml.Node) (*Event, error) {
	id, err := requireAttr(n, "id")
	if err != nil {
		return nil, err
	}

	var mentions []*EventMention
	for _, child := range n.Children() {
		if child.Name() != "event_mention" {
			continue
		}
		m, err := r.toEventMention(child)
		if err != nil {
			return nil, err
		}
		mentions = append(mentions, m)
	}

	ev := &Event{id: r.generatedID(id), mentions: mentions}
	r.reg.put(ev)
	return ev, nil
}

func (r *resolver) toEventMention(n *xml.Node) (*EventMention, error) {
	id, err := requireAttr(n, "id")
	if err != nil {
		return nil, err
	}
	typ, err := requireAttr(n, "type")
	if err != nil {
		return nil, err
	}
	subtype, err := requireAttr(n, "subtype")
	if err != nil {
		return nil, err
	}
	realis, err := requireAttr(n, "realis")
	if err != nil {
		return nil, err
	}

	trigger, err := selfContainedSpan(n, "trigger")
	if err != nil {
		return nil, err
	}
	if trigger == nil {
		return nil, &SchemaError{Element: n.Name(), Message: "missing <trigger> child"}
	}

	m := &EventMention{
		id:      r.generatedID(id),
		typ:     typ,
		subtype: subtype,
		realis:  realis,
		trigger: *trigger,
	}
	for _, child := range n.Children() {
		if child.Name() != "em_arg" {
			continue
		}
		arg, err := r.toArgument(child)
		if err != nil {
			return nil, err
		}
		m.args = append(m.args, arg)
	}

	r.reg.put(m)
	return m, nil
}

// toArgument resolves one rel_arg1/rel_arg2/em_arg element against the
// registry. Exactly one of entity_mention_id and filler_id must be
// present; entity_mention_id takes precedence when both are.
func (r *resolver) toArgument(n *xml.Node) (Argument, error) {
	role, err := requireAttr(n, "role")
	if err != nil {
		return nil, err
	}

	realis := LinkRealisUnspecified
	if v, ok := n.LookupAttr("realis"); ok {
		realis = linkRealisFromBool(v)
	}

	entityID, _ := n.LookupAttr("entity_id")
	mentionID, hasMention := n.LookupAttr("entity_mention_id")
	fillerID, hasFiller := n.LookupAttr("filler_id")

	var refID string
	switch {
	case hasMention:
		refID = mentionID
	case hasFiller:
		refID = fillerID
	default:
		return nil, &ReferenceError{Element: n.Name(), Message: "argument must carry either entity_mention_id or filler_id"}
	}

	obj, err := r.reg.fetch(r.generatedID(refID))
	if err != nil {
		return nil, err
	}

	switch ref := obj.(type) {
	case *EntityMention:
		entity, err := r.owningEntity(ref, entityID)
		if err != nil {
			return nil, err
		}
		return &EntityArgument{role: role, realis: realis, mention: ref, entity: entity}, nil
	case *Filler:
		return &FillerArgument{role: role, realis: realis, filler: ref}, nil
	default:
		return nil, &ReferenceError{
			ID:      r.generatedID(refID),
			Element: n.Name(),
			Message: fmt.Sprintf("expected an entity mention or a filler, found %T", obj),
		}
	}
}

// owningEntity resolves the entity owning a mention: through the
// explicit entity_id attribute when one is present, otherwise through
// the owner association recorded when the mention was built.
func (r *resolver) owningEntity(m *EntityMention, entityID string) (*Entity, error) {
	var gid string
	if entityID != "" {
		gid = r.generatedID(entityID)
	} else {
		owner, ok := r.reg.owner(m.id)
		if !ok {
			return nil, &ReferenceError{ID: m.id, Message: "no owning entity recorded for mention"}
		}
		gid = owner
	}

	obj, err := r.reg.fetch(gid)
	if err != nil {
		return nil, err
	}
	ent, ok := obj.(*Entity)
	if !ok {
		return nil, &ReferenceError{ID: gid, Message: fmt.Sprintf("expected an entity, found %T", obj)}
	}
	return ent, nil
}

// requireAttr returns the attribute value, or a *SchemaError naming the
// element and attribute when it is absent.
func requireAttr(n *xml.Node, name string) (string, error) {
	v, ok := n.LookupAttr(name)
	if !ok {
		return "", &SchemaError{Element: n.Name(), Attr: name, Message: "missing required attribute"}
	}
	return v, nil
}

// requireIntAttr parses a required integer attribute.
func requireIntAttr(n *xml.Node, name string) (int, error) {
	v, err := requireAttr(n, name)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, &SchemaError{Element: n.Name(), Attr: name, Message: fmt.Sprintf("not an integer: %q", v)}
	}
	return i, nil
}

// lengthDerivedSpan builds a span whose offsets come from attributes of
// the carrying element and whose text comes from the named child
// element. The child is required.
func lengthDerivedSpan(n *xml.Node, child string, offset, length int) (Span, error) {
	c := n.Child(child)
	if c == nil {
		return Span{}, &SchemaError{Element: n.Name(), Message: fmt.Sprintf("missing <%s> child", child)}
	}
	return NewSpan(offset, offset+length-1, c.InnerText()), nil
}

// selfContainedSpan builds a span entirely from the named child
// element: its own offset and length attributes and its text content.
// An absent child yields no span and no error.
func selfContainedSpan(n *xml.Node, child string) (*Span, error) {
	c := n.Child(child)
	if c == nil {
		return nil, nil
	}
	offset, err := requireIntAttr(c, "offset")
	if err != nil {
		return nil, err
	}
	length, err := requireIntAttr(c, "length")
	if err != nil {
		return nil, err
	}
	s := NewSpan(offset, offset+length-1, c.InnerText())
	return &s, nil
}

// linkRealisFromBool maps the boolean realis attribute of argument
// elements: "true" (case-insensitive) asserts REALIS, any other present
// value IRREALIS.
func linkRealisFromBool(v string) LinkRealis {
	if strings.EqualFold(v, "true") {
		return LinkRealisActual
	}
	return LinkRealisIrrealis
}
