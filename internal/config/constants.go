package config

import "time"

const (
	// Sentinel emotion when the classifier is unavailable
	NeutralEmotion = "NEUTRAL"

	// Reply shown when the generator is unavailable or returns nothing
	FallbackReply = "I'm having trouble connecting right now, but I saved your message."

	// Title shown for conversations without messages
	DefaultConversationTitle = "New Conversation"

	// Conversation titles are cut to this many characters
	TitleMaxLen = 20

	// Minimum gap between a user message and its bot reply
	BotReplyOffset = time.Millisecond

	// AI request timeout
	AIRequestTimeout = 30 * time.Second

	// HTTP server timeouts
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 10 * time.Second

	// Display formats
	StartTimeLayout   = "2006-01-02 15:04:05"
	MessageTimeLayout = "15:04:05"
)
