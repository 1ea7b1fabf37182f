package manager

// Confirmer gates destructive actions (deletes, analytics resets, dispute
// resolution) on an explicit operator confirmation before any network call
// fires.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// AlwaysConfirm is used by non-interactive callers that passed an explicit
// --yes style flag.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })
