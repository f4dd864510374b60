package ports

import "context"

// RemoteSwitch delivers a turn to a remote USSD application when a resolved
// destination is an absolute URL. The engine forwards the untouched inbound
// parameter set and relays the returned body verbatim.
//
// Calls are blocking; retries and timeouts belong to the implementation.
type RemoteSwitch interface {
	Post(ctx context.Context, params map[string]string, url string) ([]byte, error)
}
