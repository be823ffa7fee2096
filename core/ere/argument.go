package ere

// Argument is a role-labelled participant link from a relation or event
// mention. The concrete type is always *EntityArgument or
// *FillerArgument; narrow with a type switch:
//
//	switch arg := a.(type) {
//	case *ere.EntityArgument:
//	    use(arg.Mention(), arg.Entity())
//	case *ere.FillerArgument:
//	    use(arg.Filler())
//	}
type Argument interface {
	// Role returns the role label of the link (e.g. "agent", "place").
	Role() string
	// Realis returns the link-level realis assertion.
	Realis() LinkRealis

	isArgument()
}

// EntityArgument links a role to an entity mention and to the entity
// that owns the mention. Both ends are always resolved; neither is nil.
type EntityArgument struct {
	role    string
	realis  LinkRealis
	mention *EntityMention
	entity  *Entity
}

// Role returns the role label of the link.
func (a *EntityArgument) Role() string { return a.role }

// Realis returns the link-level realis assertion.
func (a *EntityArgument) Realis() LinkRealis { return a.realis }

// Mention returns the entity mention the link points at.
func (a *EntityArgument) Mention() *EntityMention { return a.mention }

// Entity returns the entity owning the linked mention.
func (a *EntityArgument) Entity() *Entity { return a.entity }

func (a *EntityArgument) isArgument() {}

// FillerArgument links a role to a filler.
type FillerArgument struct {
	role   string
	realis LinkRealis
	filler *Filler
}

// Role returns the role label of the link.
func (a *FillerArgument) Role() string { return a.role }

// Realis returns the link-level realis assertion.
func (a *FillerArgument) Realis() LinkRealis { return a.realis }

// Filler returns the filler the link points at.
func (a *FillerArgument) Filler() *Filler { return a.filler }

func (a *FillerArgument) isArgument() {}
