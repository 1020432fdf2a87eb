package core

// Session is the request-scoped identity plus gate state. It is an explicit
// value passed into every operation that needs it; never a global. Unlocked
// lives only as long as the session does.
type Session struct {
	EmployeeID string
	Role       string
	Unlocked   bool
}
