package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/jupiterclapton/plaza/internal/core/ports"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// applyTimeout borne le traitement d'un event (invalidation + recompute +
// fan-out) : un graphe qui pend fait échouer le traitement, pas le process.
const applyTimeout = 30 * time.Second

type EventHandler struct {
	policy ports.InvalidationPolicy
}

func NewEventHandler(policy ports.InvalidationPolicy) *EventHandler {
	return &EventHandler{policy: policy}
}

// HandleMutation consomme market.> : chaque event de mutation passe par la
// politique d'invalidation. Le traitement part en background — le publisher
// n'attend rien, la mutation d'origine est déjà committée.
func (h *EventHandler) HandleMutation(msg *nats.Msg) {
	// le TraceID de la requête d'origine arrive par les headers NATS
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), propagation.HeaderCarrier(msg.Header))

	tracer := otel.Tracer("plaza")
	ctx, span := tracer.Start(ctx, "apply_mutation_event", trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	var ev domain.Event
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		span.RecordError(err)
		slog.Error("❌ Invalid event payload", "subject", msg.Subject, "error", err)
		return
	}

	slog.Info("📨 Mutation event received", "kind", ev.Kind, "store_id", ev.StoreID)

	go func() {
		childCtx, cancel := context.WithTimeout(ctx, applyTimeout)
		defer cancel()

		if err := h.policy.Apply(childCtx, ev); err != nil {
			slog.Error("❌ Derived pipeline failed", "kind", ev.Kind, "error", err)
		} else {
			slog.Debug("✅ Derived pipeline done", "kind", ev.Kind)
		}
	}()
}
