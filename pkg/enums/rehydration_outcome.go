package enums

// RehydrationOutcome records what happened when a cart was loaded from its slot.
type RehydrationOutcome string

const (
	RehydrationRestored    RehydrationOutcome = "restored"
	RehydrationEmpty       RehydrationOutcome = "empty"
	RehydrationMalformed   RehydrationOutcome = "malformed"
	RehydrationUnavailable RehydrationOutcome = "unavailable"
	RehydrationNoStorage   RehydrationOutcome = "no_storage"
	RehydrationPanic       RehydrationOutcome = "panic"
)

func (r RehydrationOutcome) String() string {
	return string(r)
}
