package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jobfinder/api/data"
)

type MessageRepo struct {
	db *sqlx.DB
}

func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db}
}

func (r *MessageRepo) GetConversationByID(id int64) (*data.Conversation, error) {
	var c data.Conversation
	query := "SELECT * FROM conversations WHERE id = $1"
	err := r.db.Get(&c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation by id: %w", err)
	}

	return &c, nil
}

func (r *MessageRepo) GetUserConversations(userID uuid.UUID) ([]data.Conversation, error) {
	query := `
		SELECT c.id, c.vacancy_id, c.last_message_id, c.created_at, c.updated_at
		FROM conversations c
		JOIN conversation_participants p ON p.conversation_id = c.id
		WHERE p.user_id = $1
		ORDER BY c.updated_at DESC`

	var conversations []data.Conversation
	err := r.db.Select(&conversations, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get user conversations: %w", err)
	}

	return conversations, nil
}

func (r *MessageRepo) GetParticipants(conversationID int64) ([]data.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.role, u.interests, u.last_vacancy_check, u.created_at, u.updated_at
		FROM conversation_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.conversation_id = $1`

	var users []data.User
	err := r.db.Select(&users, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}

	return users, nil
}

func (r *MessageRepo) IsParticipant(conversationID int64, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM conversation_participants
			WHERE conversation_id = $1 AND user_id = $2
		)`

	err := r.db.Get(&exists, query, conversationID, userID)
	if err != nil {
		return false, fmt.Errorf("is participant: %w", err)
	}

	return exists, nil
}

// FindConversationBetween returns an existing conversation with exactly these
// two participants, regardless of which vacancy started it.
func (r *MessageRepo) FindConversationBetween(a, b uuid.UUID) (*data.Conversation, error) {
	var c data.Conversation
	query := `
		SELECT c.id, c.vacancy_id, c.last_message_id, c.created_at, c.updated_at
		FROM conversations c
		WHERE EXISTS (SELECT 1 FROM conversation_participants WHERE conversation_id = c.id AND user_id = $1)
		  AND EXISTS (SELECT 1 FROM conversation_participants WHERE conversation_id = c.id AND user_id = $2)
		LIMIT 1`

	err := r.db.Get(&c, query, a, b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find conversation between users: %w", err)
	}

	return &c, nil
}

func (r *MessageRepo) CreateConversation(participants []uuid.UUID, vacancyID *int64) (*data.Conversation, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("begin create conversation: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.Get(&id, "INSERT INTO conversations (vacancy_id) VALUES ($1) RETURNING id", vacancyID)
	if err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}

	for _, p := range participants {
		_, err = tx.Exec(
			"INSERT INTO conversation_participants (conversation_id, user_id) VALUES ($1, $2)",
			id, p)
		if err != nil {
			return nil, fmt.Errorf("insert participant: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create conversation: %w", err)
	}

	return r.GetConversationByID(id)
}

func (r *MessageRepo) GetMessages(conversationID int64) ([]data.Message, error) {
	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.content, m.created_at,
		       u.name AS sender_name, u.email AS sender_email
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at`

	var messages []data.Message
	err := r.db.Select(&messages, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}

	return messages, nil
}

// InsertMessage stores the message and bumps the conversation's last message.
func (r *MessageRepo) InsertMessage(m data.Message) (*data.Message, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("begin insert message: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.Get(&id, `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id`,
		m.ConversationID, m.SenderID, m.Content)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	_, err = tx.Exec(
		"UPDATE conversations SET last_message_id = $2, updated_at = now() WHERE id = $1",
		m.ConversationID, id)
	if err != nil {
		return nil, fmt.Errorf("update conversation last message: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert message: %w", err)
	}

	return r.GetMessageByID(id)
}

func (r *MessageRepo) GetMessageByID(id int64) (*data.Message, error) {
	var m data.Message
	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.content, m.created_at,
		       u.name AS sender_name, u.email AS sender_email
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.id = $1`

	err := r.db.Get(&m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message by id: %w", err)
	}

	return &m, nil
}
