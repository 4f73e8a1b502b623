package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jobfinder/api/data"
	"github.com/jobfinder/api/data/repos"
	"github.com/jobfinder/api/models"
	"github.com/jobfinder/api/realtime"
)

type MessageHandler struct {
	messageRepo *repos.MessageRepo
	vacancyRepo *repos.VacancyRepo
	pusher      realtime.Pusher
}

func NewMessageHandler(messageRepo *repos.MessageRepo, vacancyRepo *repos.VacancyRepo, pusher realtime.Pusher) *MessageHandler {
	return &MessageHandler{
		messageRepo: messageRepo,
		vacancyRepo: vacancyRepo,
		pusher:      pusher,
	}
}

func (h *MessageHandler) GetConversations(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)

	conversations, err := h.messageRepo.GetUserConversations(user.ID)
	if err != nil {
		return InternalError(err, "get conversations")
	}

	res := make([]models.Conversation, 0, len(conversations))
	for _, c := range conversations {
		dto, err := h.buildConversationDTO(c)
		if err != nil {
			return InternalError(err, "get conversations: populate")
		}
		res = append(res, dto)
	}

	return Ok(res)
}

func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)

	conversationID, err := strconv.ParseInt(r.PathValue("conversationId"), 10, 64)
	if err != nil {
		return BadRequest("Invalid conversation ID.")
	}

	isParticipant, err := h.messageRepo.IsParticipant(conversationID, user.ID)
	if err != nil {
		return InternalError(err, "get messages: check participant")
	}
	if !isParticipant {
		return NotFound("Conversation not found.")
	}

	messages, err := h.messageRepo.GetMessages(conversationID)
	if err != nil {
		return InternalError(err, "get messages")
	}

	res := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		res = append(res, models.FromDataMessage(m))
	}

	return Ok(res)
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)

	conversationID, err := strconv.ParseInt(r.PathValue("conversationId"), 10, 64)
	if err != nil {
		return BadRequest("Invalid conversation ID.")
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request.")
	}
	if req.Content == "" {
		return BadRequest("Content is required.")
	}

	isParticipant, err := h.messageRepo.IsParticipant(conversationID, user.ID)
	if err != nil {
		return InternalError(err, "send message: check participant")
	}
	if !isParticipant {
		return NotFound("Conversation not found.")
	}

	saved, err := h.messageRepo.InsertMessage(data.Message{
		ConversationID: conversationID,
		SenderID:       user.ID,
		Content:        req.Content,
	})
	if err != nil {
		return InternalError(err, "send message")
	}

	dto := models.FromDataMessage(*saved)

	// Real-time fan-out to everyone in the conversation. Offline
	// participants simply miss the event; the message itself is persisted.
	participants, err := h.messageRepo.GetParticipants(conversationID)
	if err == nil {
		event := realtime.NewMessageEvent{Message: dto}
		for _, p := range participants {
			h.pusher.Push(p.ID, realtime.EventNewMessage, event)
		}
	}

	return Created(dto)
}

func (h *MessageHandler) CreateConversation(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)

	var req models.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request.")
	}
	if req.ParticipantID == uuid.Nil {
		return BadRequest("Participant is required.")
	}
	if req.ParticipantID == user.ID {
		return BadRequest("Cannot start a conversation with yourself.")
	}

	existing, err := h.messageRepo.FindConversationBetween(user.ID, req.ParticipantID)
	if err != nil {
		return InternalError(err, "create conversation: find existing")
	}
	if existing != nil {
		dto, err := h.buildConversationDTO(*existing)
		if err != nil {
			return InternalError(err, "create conversation: populate existing")
		}
		return Ok(dto)
	}

	created, err := h.messageRepo.CreateConversation([]uuid.UUID{user.ID, req.ParticipantID}, req.VacancyID)
	if err != nil {
		return InternalError(err, "create conversation")
	}

	dto, err := h.buildConversationDTO(*created)
	if err != nil {
		return InternalError(err, "create conversation: populate")
	}

	return Created(dto)
}

func (h *MessageHandler) buildConversationDTO(c data.Conversation) (models.Conversation, error) {
	dto := models.Conversation{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	participants, err := h.messageRepo.GetParticipants(c.ID)
	if err != nil {
		return dto, err
	}
	for _, p := range participants {
		dto.Participants = append(dto.Participants, models.Participant{ID: p.ID, Name: p.Name, Email: p.Email})
	}

	if c.VacancyID != nil {
		vacancy, err := h.vacancyRepo.GetVacancyByID(*c.VacancyID)
		if err != nil {
			return dto, err
		}
		if vacancy != nil {
			dto.Vacancy = &models.VacancySummary{ID: vacancy.ID, Title: vacancy.Title, Company: vacancy.Company}
		}
	}

	if c.LastMessageID != nil {
		last, err := h.messageRepo.GetMessageByID(*c.LastMessageID)
		if err != nil {
			return dto, err
		}
		if last != nil {
			lastDTO := models.FromDataMessage(*last)
			dto.LastMessage = &lastDTO
		}
	}

	return dto, nil
}
