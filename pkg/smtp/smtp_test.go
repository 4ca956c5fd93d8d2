package smtp

import (
	"regexp"
	"testing"
	"time"

	"github.com/academic-events/eventhub/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestNewMessageHeaders(t *testing.T) {
	c := NewClient(gomail.NewDialer("localhost", 25, "", ""), "events@uni.br", "uni.br", types.Nop())
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	msg := c.newMessage("bia@uni.br", "Event reminder", "The event starts soon", now)

	assert.Equal(t, []string{"events@uni.br"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"bia@uni.br"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Event reminder"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{"Wed, 01 May 2024 10:00:00 +0000"}, msg.GetHeader("Date"))

	id := msg.GetHeader("Message-ID")
	require.Len(t, id, 1)
	assert.Regexp(t, regexp.MustCompile(`^<[0-9a-f-]{36}@uni\.br>$`), id[0])
}

func TestGenerateMessageIDIsUnique(t *testing.T) {
	assert.NotEqual(t, generateMessageID("uni.br"), generateMessageID("uni.br"))
}
