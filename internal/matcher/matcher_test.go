package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyInvites(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{
		"check out discord.gg/abc123",
		"https://discord.gg/xYz",
		"http://www.discord.gg/raid",
		"join discord.com/invite/abc-def",
		"discordapp.com/invite/q",
		"DISCORD.GG/SHOUTING",
		"discord.me/community",
	} {
		c := Classify(text)
		assert.True(c.ContainsInvite, "expected invite in %q", text)
		assert.True(c.Violation(), "expected violation for %q", text)
	}
}

func TestClassifyGenericURLs(t *testing.T) {
	assert := assert.New(t)

	c := Classify("http://example.com")
	assert.True(c.ContainsURL)
	assert.False(c.ContainsInvite)
	assert.True(c.Violation())

	c = Classify("see www.example.org/page for details")
	assert.True(c.ContainsURL)
	assert.False(c.ContainsInvite)
}

func TestClassifyCleanText(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{
		"hello world",
		"",
		"discord is fun",
		"gg everyone",
	} {
		c := Classify(text)
		assert.False(c.ContainsInvite, "unexpected invite in %q", text)
		assert.False(c.ContainsURL, "unexpected url in %q", text)
		assert.False(c.Violation())
	}
}
