package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"ridehub/pkg/logger"
	"ridehub/pkg/models"
	"ridehub/storage"
)

var ErrMessageNotFound = errors.New("message not found")

type ContactRequest struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type MessageService interface {
	Submit(ctx context.Context, req ContactRequest) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

type messageService struct {
	messages storage.IMessageStorage
	log      logger.ILogger
}

func NewMessageService(stg storage.IStorage, log logger.ILogger) MessageService {
	return &messageService{
		messages: stg.Message(),
		log:      log,
	}
}

func (s *messageService) Submit(ctx context.Context, req ContactRequest) (*models.ContactMessage, error) {
	message := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", message.Name},
		{"email", message.Email},
		{"subject", message.Subject},
		{"message", message.Message},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	message.ID = uuid.NewString()
	message.CreatedAt = time.Now()
	if err := s.messages.Append(ctx, message); err != nil {
		return nil, err
	}

	s.log.Info("contact message received", logger.String("subject", message.Subject))
	return &message, nil
}

func (s *messageService) List(ctx context.Context) ([]models.ContactMessage, error) {
	messages, _, err := s.messages.Load(ctx)
	return messages, err
}

func (s *messageService) Delete(ctx context.Context, id string) error {
	messages, revision, err := s.messages.Load(ctx)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(messages, func(m models.ContactMessage) bool { return m.ID == id })
	if idx == -1 {
		return ErrMessageNotFound
	}
	return s.messages.Save(ctx, slices.Delete(messages, idx, idx+1), revision)
}
