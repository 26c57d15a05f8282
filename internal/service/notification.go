package service

import (
	"context"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/repository"
)

type notificationService struct {
	store repository.Store
}

func NewNotificationService(store repository.Store) NotificationService {
	return &notificationService{store: store}
}

func (s *notificationService) List(ctx context.Context, userID int64, page, pageSize int) ([]domain.Notification, int64, error) {
	return s.store.Notifications().List(ctx, userID, page, pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id int64) error {
	return s.store.Notifications().MarkAsRead(ctx, id, userID)
}
