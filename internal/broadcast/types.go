package broadcast

import "github.com/honeybee-human/Chatroom/internal/chat"

// who receives a delivery
type Scope int

const (
	// every live connection
	ScopeAll Scope = iota

	// every live connection except Target
	ScopeOthers

	// only Target
	ScopeOne
)

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeOthers:
		return "others"
	case ScopeOne:
		return "one"
	}

	return "unknown"
}

// one outbound event and its recipients. deliveries are dispatched in slice order.
type Delivery struct {
	Scope   Scope
	Target  chat.ConnectionID
	Type    string
	Payload any
}

// texts used for join/leave notices
type Texts struct {
	Welcome string
	Joined  string // fmt pattern with the display name
	Left    string // fmt pattern with the display name
}
