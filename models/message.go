package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobfinder/api/data"
)

type Participant struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type VacancySummary struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

type Message struct {
	ID             int64       `json:"id"`
	ConversationID int64       `json:"conversationId"`
	Sender         Participant `json:"sender"`
	Content        string      `json:"content"`
	CreatedAt      time.Time   `json:"createdAt"`
}

func FromDataMessage(m data.Message) Message {
	return Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender: Participant{
			ID:    m.SenderID,
			Name:  m.SenderName,
			Email: m.SenderEmail,
		},
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

type Conversation struct {
	ID           int64           `json:"id"`
	Participants []Participant   `json:"participants"`
	Vacancy      *VacancySummary `json:"vacancy,omitempty"`
	LastMessage  *Message        `json:"lastMessage,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type CreateConversationRequest struct {
	ParticipantID uuid.UUID `json:"participantId"`
	VacancyID     *int64    `json:"vacancyId"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}
