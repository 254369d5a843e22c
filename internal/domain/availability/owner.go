package availability

import "github.com/google/uuid"

// Owner identifies who holds a blockade on a resource segment, typically a
// project. The zero value is the "unowned" sentinel.
type Owner struct {
	id uuid.UUID
}

// NewOwner generates a fresh owner identifier.
func NewOwner() Owner {
	return Owner{id: uuid.New()}
}

// OwnerOf wraps an existing identifier, e.g. a project id.
func OwnerOf(id uuid.UUID) Owner {
	return Owner{id: id}
}

// NoOwner is the "unowned" sentinel.
func NoOwner() Owner {
	return Owner{}
}

// IsNone reports whether the owner is the "unowned" sentinel.
func (o Owner) IsNone() bool {
	return o.id == uuid.Nil
}

// ID exposes the raw identifier.
func (o Owner) ID() uuid.UUID {
	return o.id
}

func (o Owner) String() string {
	if o.IsNone() {
		return "none"
	}
	return o.id.String()
}
