package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/jupiterclapton/plaza/internal/core/ports"
)

// Events poussés vers le front
const (
	EventNotification = "getNotification"
	// EventDiscountLegacy : ancien nom d'event encore écouté par de vieux
	// clients. Même payload que getNotification, émis UNIQUEMENT pour les
	// remises — un payload différent créerait des doublons mal formés côté UI.
	EventDiscountLegacy = "discount_notification"
)

type NotificationService struct {
	store ports.NotificationStore
	push  ports.PushChannel
}

func NewNotificationService(store ports.NotificationStore, push ports.PushChannel) *NotificationService {
	return &NotificationService{store: store, push: push}
}

// Notify construit l'enregistrement, l'écrit en tête d'historique (tronqué au
// cap), puis le pousse sur la room privée. Le push est fire-and-forget : si le
// destinataire est hors-ligne, l'historique suffit, il verra la notification
// au prochain poll.
func (s *NotificationService) Notify(ctx context.Context, recipientID int64, message, typ string) error {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      typ,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		IsRead:    false,
	}

	if err := s.store.Push(ctx, recipientID, n); err != nil {
		// l'historique est la partie "comptable" : son échec se loggue mais ne
		// casse pas la mutation d'origine (déjà committée)
		slog.Error("❌ Notification history write failed", "user_id", recipientID, "error", err)
		return err
	}

	s.push.EmitToUser(recipientID, EventNotification, n)
	if typ == domain.NotifDiscount {
		s.push.EmitToUser(recipientID, EventDiscountLegacy, n)
	}

	slog.Debug("📨 Notification sent", "user_id", recipientID, "type", typ)
	return nil
}

// Broadcast : signal UI transitoire pour tous les connectés, aucun historique.
func (s *NotificationService) Broadcast(event string, payload any) {
	s.push.BroadcastAll(event, payload)
}

func (s *NotificationService) Recent(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	return s.store.Recent(ctx, recipientID, domain.NotificationWindow)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID int64) error {
	return s.store.MarkAllRead(ctx, recipientID)
}

// Clear purge l'historique (appelé au logout)
func (s *NotificationService) Clear(ctx context.Context, recipientID int64) error {
	return s.store.Clear(ctx, recipientID)
}
