package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscript(t *testing.T) {
	tr := NewTranscript()
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, Message{Role: RoleAssistant, Content: Greeting}, tr.Messages()[0])

	tr.Append(Message{Role: RoleUser, Content: "tacos"})
	tr.Append(Message{Role: RoleUser, Content: "tacos"})
	assert.Equal(t, 3, tr.Len(), "duplicates are kept")

	msgs := tr.Messages()
	msgs[1].Content = "mutated"
	assert.Equal(t, "tacos", tr.Messages()[1].Content, "Messages returns a copy")
}
