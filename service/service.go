package service

import (
	"ridehub/pkg/logger"
	"ridehub/storage"
)

type IServiceManager interface {
	Booking() BookingService
	User() UserService
	Message() MessageService
	Chat() ChatService
}

type service struct {
	bookingService BookingService
	userService    UserService
	messageService MessageService
	chatService    ChatService
}

func New(stg storage.IStorage, log logger.ILogger) IServiceManager {
	return &service{
		bookingService: NewBookingService(stg, log),
		userService:    NewUserService(stg, log),
		messageService: NewMessageService(stg, log),
		chatService:    NewChatService(stg, log),
	}
}

func (s *service) Booking() BookingService {
	return s.bookingService
}

func (s *service) User() UserService {
	return s.userService
}

func (s *service) Message() MessageService {
	return s.messageService
}

func (s *service) Chat() ChatService {
	return s.chatService
}
