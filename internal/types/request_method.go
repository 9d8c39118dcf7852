package types

import "github.com/telvora/ucc/internal/util"

const (
	RequestMethodAck      RequestMethod = "ACK"
	RequestMethodBye      RequestMethod = "BYE"
	RequestMethodCancel   RequestMethod = "CANCEL"
	RequestMethodInfo     RequestMethod = "INFO"
	RequestMethodInvite   RequestMethod = "INVITE"
	RequestMethodMessage  RequestMethod = "MESSAGE"
	RequestMethodNotify   RequestMethod = "NOTIFY"
	RequestMethodOptions  RequestMethod = "OPTIONS"
	RequestMethodRegister RequestMethod = "REGISTER"
)

// RequestMethod represents a SIP request method.
type RequestMethod string

func (m RequestMethod) ToUpper() RequestMethod { return util.UCase(m) }

func (m RequestMethod) IsValid() bool { return len(m) > 0 }

func (m RequestMethod) Equal(val any) bool {
	var other RequestMethod
	switch v := val.(type) {
	case RequestMethod:
		other = v
	case *RequestMethod:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(m, other)
}
