package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ridehub/pkg/logger"
	"ridehub/pkg/models"
	"ridehub/storage"
)

var ErrEmptyMessage = errors.New("chat message is empty")

type ChatService interface {
	Post(ctx context.Context, from, text string) (*models.ChatMessage, error)
	History(ctx context.Context) ([]models.ChatMessage, error)
}

type chatService struct {
	chat storage.IChatStorage
	log  logger.ILogger
}

func NewChatService(stg storage.IStorage, log logger.ILogger) ChatService {
	return &chatService{
		chat: stg.Chat(),
		log:  log,
	}
}

func (s *chatService) Post(ctx context.Context, from, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if from == "" {
		from = "Guest"
	}
	message := models.ChatMessage{
		From:      from,
		Text:      text,
		Timestamp: time.Now(),
	}
	if err := s.chat.Append(ctx, message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *chatService) History(ctx context.Context) ([]models.ChatMessage, error) {
	messages, _, err := s.chat.Load(ctx)
	return messages, err
}
