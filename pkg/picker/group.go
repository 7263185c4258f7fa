package picker

// GroupCoordinator keeps radio groups mutually exclusive. Membership is
// populated at bind and dropped at unbind, so only bound instances are ever
// cascade targets.
type GroupCoordinator struct {
	members map[string][]*Instance
}

// NewGroupCoordinator returns an empty coordinator.
func NewGroupCoordinator() *GroupCoordinator {
	return &GroupCoordinator{members: make(map[string][]*Instance)}
}

func (g *GroupCoordinator) add(inst *Instance) {
	if inst.kind != KindRadio || inst.group == "" {
		return
	}
	for _, m := range g.members[inst.group] {
		if m == inst {
			return
		}
	}
	g.members[inst.group] = append(g.members[inst.group], inst)
}

func (g *GroupCoordinator) remove(inst *Instance) {
	ms := g.members[inst.group]
	for i, m := range ms {
		if m == inst {
			ms = append(ms[:i], ms[i+1:]...)
			break
		}
	}
	if len(ms) == 0 {
		delete(g.members, inst.group)
		return
	}
	g.members[inst.group] = ms
}

// Members returns the bound instances of group in bind order.
func (g *GroupCoordinator) Members(group string) []*Instance {
	ms := g.members[group]
	out := make([]*Instance, len(ms))
	copy(out, ms)
	return out
}

// Groups returns the number of non-empty groups.
func (g *GroupCoordinator) Groups() int {
	return len(g.members)
}

// DeselectOthers calls deselect with the Internal origin for every other
// member of inst's group.
func (g *GroupCoordinator) DeselectOthers(inst *Instance, deselect func(*Instance, Origin)) {
	if inst.kind != KindRadio || inst.group == "" {
		return
	}
	for _, m := range g.Members(inst.group) {
		if m != inst {
			deselect(m, Internal)
		}
	}
}
