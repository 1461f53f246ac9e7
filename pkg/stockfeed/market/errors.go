package market

import "fmt"

// ProviderError describes a failed call to an external data provider: no
// data, an explicit error marker in the payload, or a transport failure
// (timeouts included). It is scoped to one indicator group of one ticker.
type ProviderError struct {
	Provider string
	Op       string
	Ticker   string
	Message  string // provider-supplied error payload, if any
	Err      error  // transport failure, if any
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("%s %s %s: %s", e.Provider, e.Op, e.Ticker, msg)
}

func (e *ProviderError) Unwrap() error { return e.Err }
