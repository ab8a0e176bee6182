package wisp

// Severity defines the logging severity level as an unsigned 32-bit integer.
// The set is closed: Debug, Info, and Error.
type Severity uint32

// Destination is a sink capable of delivering one formatted log message.
// Implementations report delivery failures through the returned error; the
// registry keeps such failures away from the logging caller and routes them
// to the diagnostic hook instead.
//
// Concrete destinations must be comparable by identity (pointer types), as
// identity is what Registry.Unregister matches on.
type Destination interface {
	Deliver(message string) error
}

// Handler processes a message of a given severity. The Chain is the canonical
// implementation; any type with the same behavior can stand in for it.
type Handler interface {
	Handle(level Severity, message string)
}

// MatchPolicy decides whether the chain link owning the handler severity acts
// on an incoming message of the given severity. The two provided policies are
// MatchExact and MatchAtOrAbove.
type MatchPolicy func(message, handler Severity) bool

// MatchExact accepts a message only on the link with the same severity.
// This is the default policy: each level routes exclusively to its own
// subscribers.
func MatchExact(message, handler Severity) bool {
	return message == handler
}

// MatchAtOrAbove accepts a message on every link whose severity is at or
// below the message's rank, so an error message also reaches the info and
// debug subscribers. Opt-in via WithMatchPolicy.
func MatchAtOrAbove(message, handler Severity) bool {
	return message >= handler
}

// ErrorHook receives delivery failures that occurred while notifying the
// destinations of a level. The hook runs on the logging caller's goroutine.
type ErrorHook func(level Severity, err error)

// Wiring describes which destinations subscribe to each severity. Slice
// order is registration order, which is also notification order.
type Wiring map[Severity][]Destination

// Option defines a functional option for configuring a Facade during creation.
type Option func(*Facade)
