package domain

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single turn half. Seq is assigned by the store on append and
// orders messages within their conversation. Emotion is set exactly once on
// user messages after classification; bot messages never carry one.
type Message struct {
	ID             string
	ConversationID string
	Seq            int64
	Sender         Sender
	Content        string
	Emotion        *string
	Timestamp      time.Time
}
