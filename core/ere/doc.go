// Package ere loads Rich ERE annotation XML into immutable, fully
// cross-linked document object graphs.
//
// Rich ERE (Entities, Relations, Events) is a document-level annotation
// format: each XML file annotates one source document with coreferential
// entity clusters, non-entity argument fillers, typed binary relations,
// and event "hoppers". This package turns one such file into a typed Go
// object graph in a single forward pass, resolving every argument
// reference eagerly so that callers never touch raw identifiers.
//
// # Loading
//
//	loader := ere.NewLoader(ere.LoaderOptions{})
//	doc, err := loader.LoadFile("corpus/ENG_DF_000170.rich_ere.xml")
//	if err != nil {
//	    // *ere.LoadError wrapping a SchemaError, ReferenceError,
//	    // ParseError or IOError; the document is never partially built.
//	}
//	for _, entity := range doc.Entities() {
//	    for _, mention := range entity.Mentions() {
//	        fmt.Println(mention.Extent().Text())
//	    }
//	}
//
// # Object graph
//
// A Document owns, in document order, Entities (each a cluster of
// EntityMentions), Fillers, Relations (each with RelationMentions), and
// Events (each with EventMentions). Relation and event mentions carry
// Arguments: role-labelled links that point directly at the
// EntityMention/Entity pair or the Filler they reference. All types are
// immutable once the loader returns; the concrete Argument kinds are
// narrowed with a type switch.
//
// # Identifiers
//
// Objects register under their raw XML id, or under "docid-rawid" when
// LoaderOptions.PrefixDocIDToIDs is set, which keeps ids unique across
// corpora that reuse id ranges between documents. Registration is
// last-write-wins; duplicate ids silently replace earlier objects.
//
// # Offsets
//
// Spans are inclusive character ranges. Every carriage return in the
// input folds to a newline before parsing, so offsets computed by
// annotation tools against newline-normalized text keep their meaning.
package ere
