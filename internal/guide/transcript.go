package guide

// Role identifies who authored a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Greeting is the assistant message every new transcript starts with.
const Greeting = "Hey! I'm your street-food savvy guide. Ask me about tacos, ramen, vegan spots, or anything local. Try: 'cheap ramen in London' or 'late-night tacos'."

// FallbackAnswer replaces an answer the backend omitted.
const FallbackAnswer = "Here are some places you may like."

// Message is one conversation turn. Messages are never edited once appended.
type Message struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Transcript is the append-only conversation log.
type Transcript struct {
	msgs []Message
}

// NewTranscript returns a transcript holding only the greeting.
func NewTranscript() *Transcript {
	return &Transcript{msgs: []Message{{Role: RoleAssistant, Content: Greeting}}}
}

// Append adds m at the end. There is no dedup and no cap.
func (t *Transcript) Append(m Message) {
	t.msgs = append(t.msgs, m)
}

// Messages returns a copy of the log in order.
func (t *Transcript) Messages() []Message {
	return append([]Message(nil), t.msgs...)
}

func (t *Transcript) Len() int { return len(t.msgs) }
