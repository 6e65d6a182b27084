package usecase

const (
	// DeletePrompt is the question asked before an entry is removed.
	DeletePrompt = "Delete this entry?"

	// Operation names reported to the Observer.
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
)
