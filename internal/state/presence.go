package state

// Presence is the set of other participants in the session, keyed by id.
// The local participant is never stored.
type Presence struct {
	self    string
	members map[string]Participant
	order   []string
}

func NewPresence() *Presence {
	return &Presence{members: make(map[string]Participant)}
}

// SetSelf records the local participant id and evicts it if present.
func (p *Presence) SetSelf(id string) {
	p.self = id
	if id != "" {
		p.Remove(id)
	}
}

// Add inserts p, or replaces the color of an existing entry with the same id.
// It reports whether membership changed or an entry was updated.
func (p *Presence) Add(m Participant) bool {
	if m.ID == "" || (p.self != "" && m.ID == p.self) {
		return false
	}
	if _, ok := p.members[m.ID]; !ok {
		p.order = append(p.order, m.ID)
	}
	p.members[m.ID] = m
	return true
}

// Remove deletes id; an unknown id is ignored.
func (p *Presence) Remove(id string) bool {
	if _, ok := p.members[id]; !ok {
		return false
	}
	delete(p.members, id)
	for i, v := range p.order {
		if v == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns the members in insertion order.
func (p *Presence) List() []Participant {
	out := make([]Participant, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.members[id])
	}
	return out
}

func (p *Presence) Len() int {
	return len(p.members)
}

// Reset empties the registry, keeping the local id.
func (p *Presence) Reset() {
	p.members = make(map[string]Participant)
	p.order = nil
}
