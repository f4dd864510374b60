package runtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akwaba/ussdflow/pkg/domain"
)

// remoteErrorPrefix tells the developer a malformed body came from the
// remote side of the switch, not from this application. The wording is part
// of the wire behavior.
const remoteErrorPrefix = "ERROR OCCURED AT THE REMOTE USSD SIDE:  "

// switchToRemote hands the session over to a remote USSD application. The
// switch is persisted first so every following turn is forwarded; for the
// remote peer this turn is its first contact, so the operator code is
// rewritten to Init.
func (t *turn) switchToRemote(ctx context.Context, endpoint string) (*domain.Reply, error) {
	t.state.SwitchedEndpoint = endpoint
	t.state.Switched = true
	if err := t.persist(ctx); err != nil {
		return nil, err
	}

	params := t.req.Params()
	params[domain.ParamOp] = string(domain.OpInit)

	t.e.logger.Info("session switched to remote ussd", "endpoint", endpoint, "msisdn", t.req.MSISDN)
	return t.relay(ctx, endpoint, params)
}

// relay forwards params to the endpoint and passes the body through
// verbatim. A body that is not a JSON object is relayed behind a local
// error banner so the developer knows which side failed.
func (t *turn) relay(ctx context.Context, endpoint string, params map[string]string) (*domain.Reply, error) {
	if t.e.remote == nil {
		return nil, fmt.Errorf("destination %q is a remote endpoint but no remote switch is configured", endpoint)
	}

	body, err := t.e.remote.Post(ctx, params, endpoint)
	if err != nil {
		return nil, fmt.Errorf("remote ussd call to %s failed: %w", endpoint, err)
	}

	var probe map[string]any
	if err := json.Unmarshal(body, &probe); err != nil {
		t.e.logger.Warn("remote ussd returned a non-JSON body", "endpoint", endpoint, "size", len(body))
		return domain.NewRelay(append([]byte(remoteErrorPrefix), body...)), nil
	}
	return domain.NewRelay(body), nil
}
