package ere

// LinkRealis states whether an argument link is asserted as actual,
// asserted as irrealis, or carries no assertion at all. Relation
// arguments in the source format may omit the flag entirely, which is a
// distinct state from either polarity.
type LinkRealis string

// LinkRealis values.
const (
	LinkRealisUnspecified LinkRealis = ""
	LinkRealisActual      LinkRealis = "REALIS"
	LinkRealisIrrealis    LinkRealis = "IRREALIS"
)

// Specified reports whether the link carries an explicit realis assertion.
func (r LinkRealis) Specified() bool { return r != LinkRealisUnspecified }

// String returns the tag form; the unspecified state prints as
// "UNSPECIFIED".
func (r LinkRealis) String() string {
	if r == LinkRealisUnspecified {
		return "UNSPECIFIED"
	}
	return string(r)
}
