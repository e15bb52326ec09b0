package domain

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of an agent transcript.
type Message struct {
	Role      Role
	Text      string
	ToolCalls []string
}

// Transcript is the ordered message sequence produced by one agent invocation.
type Transcript []Message

// LastAssistant returns the last assistant-authored message, if any.
func (t Transcript) LastAssistant() (Message, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Role == RoleAssistant {
			return t[i], true
		}
	}
	return Message{}, false
}
