package components

// Snapshot is a value copy of an agent handed to external collaborators.
type Snapshot struct {
	ID        uint32
	Sex       Sex
	Age       int
	Aptitude  int
	X, Y      float32
	PartnerID uint32 // Zero when unpaired
	Children  int
	Moving    bool
}

// Paired reports whether the agent had a partner when the snapshot was taken.
func (s Snapshot) Paired() bool {
	return s.PartnerID != 0
}
