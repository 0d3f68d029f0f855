package repository

// Factory describes access to the panel's persistence.
type Factory interface {
	Sessions() SessionRepository
}
