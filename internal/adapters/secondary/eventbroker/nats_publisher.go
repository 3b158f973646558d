package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// SubjectPrefix : tous les events de mutation partent sous market.*
const SubjectPrefix = "market."

type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

// Publish émet l'event de domaine APRÈS que la mutation graphe a réussi.
// Le pipeline dérivé (invalidation, recompute, notifications) est découplé :
// son échec ne remonte jamais jusqu'à la requête d'origine.
func (p *NatsPublisher) Publish(ctx context.Context, ev domain.Event) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &nats.Msg{
		Subject: SubjectPrefix + string(ev.Kind),
		Data:    data,
		Header:  nats.Header{},
	}
	// Le TraceID de la requête suit l'event à travers NATS
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	slog.Debug("📢 Publishing domain event", "subject", msg.Subject, "kind", ev.Kind)
	return p.nc.PublishMsg(msg)
}
