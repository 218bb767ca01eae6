package assistant

// UiState is the closed set of states the shopping-list flow moves through.
// Exactly one state is current at any time. The sealed marker method keeps
// the variant set closed to this package, so consumers can type-switch
// exhaustively over Idle, Loading, Success, and Failure.
type UiState interface {
	uiState()
}

// Idle is the state before any request has been issued.
type Idle struct{}

// Loading is the state while a request is in flight.
type Loading struct{}

// Success carries the shopping-list text returned by the backend.
type Success struct {
	Text string
}

// Failure carries a human-readable diagnostic for a settled failure.
type Failure struct {
	Message string
}

func (Idle) uiState()    {}
func (Loading) uiState() {}
func (Success) uiState() {}
func (Failure) uiState() {}
