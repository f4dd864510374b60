package domain

import "strings"

// Param names of the carrier POST payload. Every inbound request must carry
// all of them; ussdString alone may be empty (and only on Init).
const (
	ParamMSISDN    = "msisdn"
	ParamNetwork   = "network"
	ParamSessionID = "sessionID"
	ParamInput     = "ussdString"
	ParamOp        = "ussdServiceOp"
)

// ParamNames lists the required carrier fields in canonical order.
var ParamNames = []string{ParamMSISDN, ParamNetwork, ParamSessionID, ParamInput, ParamOp}

// Request is one inbound carrier turn.
type Request struct {
	MSISDN    string
	Network   string
	SessionID string
	Input     string
	Op        Op
}

// Params re-assembles the carrier parameter set, e.g. for forwarding the
// turn to a remote USSD endpoint.
func (r Request) Params() map[string]string {
	return map[string]string{
		ParamMSISDN:    r.MSISDN,
		ParamNetwork:   r.Network,
		ParamSessionID: r.SessionID,
		ParamInput:     r.Input,
		ParamOp:        string(r.Op),
	}
}

// Reply is the outbound envelope of one turn. Raw, when set, is a verbatim
// relay from a remote endpoint and takes precedence over the structured
// fields.
type Reply struct {
	Message   string `json:"message"`
	Op        Op     `json:"ussdServiceOp"`
	SessionID string `json:"sessionID"`
	Raw       []byte `json:"-"`
}

// NewAsk builds a continue-session envelope. The message is trimmed, per
// carrier requirements.
func NewAsk(message, sessionID string) *Reply {
	return &Reply{Message: strings.TrimSpace(message), Op: OpAsk, SessionID: sessionID}
}

// NewEnd builds a terminal envelope.
func NewEnd(message, sessionID string) *Reply {
	return &Reply{Message: strings.TrimSpace(message), Op: OpEnd, SessionID: sessionID}
}

// NewRelay wraps a remote endpoint body for verbatim passthrough.
func NewRelay(body []byte) *Reply {
	return &Reply{Raw: body}
}
