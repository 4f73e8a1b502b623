package realtime

import (
	"encoding/json"

	"github.com/jobfinder/api/models"
)

// Event names pushed to (and accepted from) connected clients.
const (
	EventNewVacancy  = "newVacancy"
	EventNewMessage  = "newMessage"
	EventSendMessage = "sendMessage"
)

// Envelope is the wire frame for every socket message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewVacancyEvent notifies a jobseeker about a freshly created vacancy.
// Transient: it is never stored and never replayed.
type NewVacancyEvent struct {
	Vacancy          models.Vacancy `json:"vacancy"`
	Message          string         `json:"message"`
	IsRelevant       bool           `json:"isRelevant"`
	MatchedInterests []string       `json:"matchedInterests"`
}

// NewMessageEvent carries a populated conversation message to a participant.
type NewMessageEvent struct {
	models.Message
}

// SendMessagePayload is the inbound sendMessage frame from a client.
type SendMessagePayload struct {
	ConversationID int64  `json:"conversationId"`
	Content        string `json:"content"`
}
