package ere

// registrable is the closed set of object kinds the identifier registry
// stores: *Entity, *EntityMention, *Filler, *Relation,
// *RelationMention, *Event, *EventMention and *Document. Each carries
// the generated id it registers under.
type registrable interface {
	registryID() string
}

// registry maps generated identifiers to the objects constructed under
// them during a single load, plus the mention-to-owning-entity
// association needed to resolve entity arguments. A registry lives for
// exactly one load and is never shared.
type registry struct {
	objects map[string]registrable
	owners  map[string]string // entity mention id -> owning entity id
}

func newRegistry() *registry {
	return &registry{
		objects: make(map[string]registrable),
		owners:  make(map[string]string),
	}
}

// put registers obj under its generated id. Collisions silently keep
// the last object registered.
func (r *registry) put(obj registrable) {
	r.objects[obj.registryID()] = obj
}

// recordOwner associates an entity mention id with its owning entity id.
// The association is recorded while the owning entity is still being
// built, before the entity itself registers.
func (r *registry) recordOwner(mentionID, entityID string) {
	r.owners[mentionID] = entityID
}

// fetch returns the object registered under id, or a *ReferenceError.
func (r *registry) fetch(id string) (registrable, error) {
	if id == "" {
		return nil, &ReferenceError{Message: "empty identifier"}
	}
	obj, ok := r.objects[id]
	if !ok {
		return nil, &ReferenceError{ID: id, Message: "lookup failed"}
	}
	return obj, nil
}

// owner returns the owning entity id recorded for an entity mention id.
func (r *registry) owner(mentionID string) (string, bool) {
	id, ok := r.owners[mentionID]
	return id, ok
}
