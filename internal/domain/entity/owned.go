package entity

// Owned is implemented by entities that belong to a user.
type Owned interface {
	OwnerID() string
}
