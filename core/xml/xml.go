// Package xml wraps the xmlquery DOM behind a small Document/Node API:
// parsing, well-formedness checking, XPath queries, and pretty-printing.
//
// Parsing goes through xmlquery, which builds on encoding/xml and
// inherits its security posture: external entities are never fetched,
// and Validate disables entity expansion outright.
package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/calperum/textkit/core/encoding"
)

// Document is a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node is one node of a parsed document: an element, a text node or an
// attribute selected by an XPath query.
type Node struct {
	node *xmlquery.Node
}

// Parse parses XML data into a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// ValidationResult reports the outcome of a well-formedness check.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError locates one well-formedness failure.
type ValidationError struct {
	Line    int
	Column  int
	Message string
}

// Validate checks data for well-formedness. Entity expansion is
// disabled and Go's xml.Decoder never fetches external entities, so
// untrusted corpora cannot smuggle in XXE lookups.
func Validate(data []byte) ValidationResult {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}

	for {
		_, err := dec.Token()
		if err == io.EOF {
			return ValidationResult{Valid: true}
		}
		if err != nil {
			line, col := tokenPosition(data, dec.InputOffset())
			var syn *xml.SyntaxError
			if errors.As(err, &syn) && syn.Line > 0 {
				line = syn.Line
			}
			return ValidationResult{Errors: []ValidationError{{
				Line:    line,
				Column:  col,
				Message: err.Error(),
			}}}
		}
	}
}

// tokenPosition converts a decoder byte offset into 1-based line and
// column numbers. The column points just past the offending token.
func tokenPosition(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	head := data[:offset]
	line = 1 + bytes.Count(head, []byte{'\n'})
	col = len(head) - bytes.LastIndexByte(head, '\n')
	return line, col
}

// FormatOptions controls pretty-printing.
type FormatOptions struct {
	Indent string // indentation unit, two spaces when empty
}

// Format re-indents XML data: one element per line, text-only elements
// kept inline, childless elements collapsed to self-closing tags.
func Format(data []byte, opts FormatOptions) ([]byte, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}

	p := printer{indent: opts.Indent}
	if p.indent == "" {
		p.indent = "  "
	}
	for n := doc.root.FirstChild; n != nil; n = n.NextSibling {
		p.node(n, 0)
	}
	return p.buf.Bytes(), nil
}

// printer walks a DOM subtree and emits indented XML.
type printer struct {
	buf    bytes.Buffer
	indent string
}

func (p *printer) node(n *xmlquery.Node, depth int) {
	switch n.Type {
	case xmlquery.DeclarationNode:
		p.buf.WriteString("<?xml")
		p.attrs(n)
		p.buf.WriteString("?>\n")
	case xmlquery.ElementNode:
		p.element(n, depth)
	case xmlquery.TextNode:
		if strings.TrimSpace(n.Data) != "" {
			p.buf.WriteString(encoding.EscapeXMLText(strings.TrimSpace(n.Data)))
		}
	case xmlquery.CommentNode:
		p.pad(depth)
		p.buf.WriteString("<!--")
		p.buf.WriteString(n.Data)
		p.buf.WriteString("-->\n")
	}
}

func (p *printer) element(n *xmlquery.Node, depth int) {
	p.pad(depth)
	p.buf.WriteByte('<')
	p.name(n)
	p.attrs(n)

	if n.FirstChild == nil {
		p.buf.WriteString("/>\n")
		return
	}

	// Elements with element children break onto one line per child;
	// text-only elements stay inline.
	block := hasElementChild(n)
	p.buf.WriteByte('>')
	if block {
		p.buf.WriteByte('\n')
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			p.element(c, depth+1)
		case xmlquery.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			if block {
				p.pad(depth + 1)
			}
			p.buf.WriteString(encoding.EscapeXMLText(c.Data))
			if block {
				p.buf.WriteByte('\n')
			}
		case xmlquery.CharDataNode:
			p.buf.WriteString("<![CDATA[")
			p.buf.WriteString(c.Data)
			p.buf.WriteString("]]>")
		}
	}

	if block {
		p.pad(depth)
	}
	p.buf.WriteString("</")
	p.name(n)
	p.buf.WriteString(">\n")
}

func (p *printer) name(n *xmlquery.Node) {
	if n.Prefix != "" {
		p.buf.WriteString(n.Prefix)
		p.buf.WriteByte(':')
	}
	p.buf.WriteString(n.Data)
}

func (p *printer) attrs(n *xmlquery.Node) {
	for _, attr := range n.Attr {
		p.buf.WriteByte(' ')
		// encoding/xml keeps the xmlns prefix of namespace declarations
		// in Name.Space.
		if attr.Name.Space != "" {
			p.buf.WriteString("xmlns:")
		}
		p.buf.WriteString(attr.Name.Local)
		p.buf.WriteString(`="`)
		p.buf.WriteString(encoding.EscapeXMLAttr(attr.Value))
		p.buf.WriteString(`"`)
	}
}

func (p *printer) pad(depth int) {
	for i := 0; i < depth; i++ {
		p.buf.WriteString(p.indent)
	}
}

func hasElementChild(n *xmlquery.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}

// Root returns the document's root element, or nil when the document
// holds no element at all.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// XPath runs an XPath query against the whole document and returns
// every matching node. The expression is compiled up front, so a bad
// expression errors rather than silently matching nothing.
func (d *Document) XPath(expr string) ([]*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPathFirst runs an XPath query and returns the first match, or nil
// when nothing matches.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	node, err := xmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// Serialize renders the document back to XML bytes.
func (d *Document) Serialize() []byte {
	if d.root == nil {
		return nil
	}
	return []byte(d.root.OutputXML(true))
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text is an alias for InnerText.
func (n *Node) Text() string {
	return n.InnerText()
}

// InnerText returns the concatenated text content of the node and all
// of its descendants.
func (n *Node) InnerText() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// InnerXML returns the node's children rendered as XML.
func (n *Node) InnerXML() string {
	if n.node == nil {
		return ""
	}
	var buf bytes.Buffer
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		buf.WriteString(child.OutputXML(true))
	}
	return buf.String()
}

// Children returns the direct child elements, skipping text and
// comment nodes.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}
	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Child returns the first direct child element with the given name, or
// nil. The name comparison is case-sensitive.
func (n *Node) Child(name string) *Node {
	if n.node == nil {
		return nil
	}
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == name {
			return &Node{node: child}
		}
	}
	return nil
}

// Attributes returns the node's attributes as a name->value map.
func (n *Node) Attributes() map[string]string {
	if n.node == nil {
		return nil
	}
	attrs := make(map[string]string, len(n.node.Attr))
	for _, attr := range n.node.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}

// LookupAttr returns the value of the named attribute and whether it
// is present. Unlike Attr it distinguishes an absent attribute from an
// attribute with an empty value.
func (n *Node) LookupAttr(name string) (string, bool) {
	if n.node == nil {
		return "", false
	}
	for _, attr := range n.node.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}
