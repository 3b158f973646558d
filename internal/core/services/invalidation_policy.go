package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jupiterclapton/plaza/internal/core/domain"
	"github.com/jupiterclapton/plaza/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// fanoutParallelism borne le nombre de notifications simultanées lors d'un
// fan-out (nouveaux produits vers les followers, remises vers les wishers)
const fanoutParallelism = 8

// Policy est la table mutation → invalidations + actions aval. L'invalidation
// se fait AVANT tout recompute/notify : un lecteur concurrent ne peut pas voir
// une entrée plus vieille que l'écriture déclencheuse ; entre le DEL et le
// recompute, le miss retombe sur le graphe (cache-aside).
type Policy struct {
	cache      ports.Cache
	popularity ports.PopularityService
	notifier   ports.NotificationService
	social     ports.SocialRepository
}

func NewPolicy(cache ports.Cache, popularity ports.PopularityService, notifier ports.NotificationService, social ports.SocialRepository) *Policy {
	return &Policy{cache: cache, popularity: popularity, notifier: notifier, social: social}
}

func (p *Policy) Apply(ctx context.Context, ev domain.Event) error {
	switch ev.Kind {

	case domain.EventRatingChanged:
		// add, update et delete passent par ici : même effet dérivé
		p.invalidate(ctx, domain.KeyRatingData(ev.StoreID))
		return p.popularity.Recompute(ctx)

	case domain.EventStoreFollowed:
		if ev.OwnerID > 0 {
			msg := fmt.Sprintf("%s is now following your store %s!", ev.Username, ev.StoreName)
			p.notify(ctx, ev.OwnerID, msg, domain.NotifNewFollower)
		}
		return p.popularity.Recompute(ctx)

	case domain.EventStoreUnfollowed:
		return p.popularity.Recompute(ctx)

	case domain.EventDiscountCreated:
		p.invalidate(ctx, domain.KeyProductPrice(ev.ProductID), domain.KeyStoreDiscounts(ev.StoreID))
		return p.notifyWishers(ctx, ev)

	case domain.EventProductCreated:
		p.invalidate(ctx, domain.KeyStoreIndex, domain.KeyProdIndex)
		return p.notifyFollowers(ctx, ev)

	case domain.EventProductUpdated, domain.EventProductDeleted:
		p.invalidate(ctx, domain.KeyStoreIndex, domain.KeyProdIndex)
		return nil

	case domain.EventWishlistAdded:
		p.invalidate(ctx, domain.KeyWishlist(ev.UserID))
		if ev.OwnerID > 0 {
			msg := fmt.Sprintf("%s added %s to their wishlist!", ev.Username, ev.ProductName)
			p.notify(ctx, ev.OwnerID, msg, domain.NotifWishlistAlert)
		}
		return nil

	case domain.EventWishlistRemoved:
		p.invalidate(ctx, domain.KeyWishlist(ev.UserID))
		return nil

	case domain.EventStoreUpdated, domain.EventStoreDeleted:
		p.invalidate(ctx, domain.KeyStoreIndex)
		return nil

	case domain.EventCategoryChanged:
		p.invalidate(ctx, domain.KeyCatIndex)
		return nil

	default:
		slog.Warn("Unknown event kind, ignoring", "kind", ev.Kind)
		return nil
	}
}

// notifyWishers : fan-out remise vers les destinataires déjà résolus par la
// mutation (embarqués dans l'event)
func (p *Policy) notifyWishers(ctx context.Context, ev domain.Event) error {
	if len(ev.Wishers) == 0 {
		return nil
	}

	msg := fmt.Sprintf("Deal alert! %s at %s is now %.2f!", ev.ProductName, ev.StoreName, ev.Price)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanoutParallelism)
	for _, w := range ev.Wishers {
		w := w
		g.Go(func() error {
			p.notify(gctx, w.UserID, msg, domain.NotifDiscount)
			return nil
		})
	}
	return g.Wait()
}

// notifyFollowers : fan-out nouveau produit vers les followers du store,
// relus depuis le graphe au moment du traitement
func (p *Policy) notifyFollowers(ctx context.Context, ev domain.Event) error {
	followers, err := p.social.FollowerIDs(ctx, ev.StoreID)
	if err != nil {
		return fmt.Errorf("resolve followers: %w", err)
	}
	if len(followers) == 0 {
		return nil
	}

	msg := fmt.Sprintf("New in %s: %s just arrived!", ev.StoreName, ev.ProductName)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanoutParallelism)
	for _, uid := range followers {
		uid := uid
		g.Go(func() error {
			p.notify(gctx, uid, msg, domain.NotifNewProduct)
			return nil
		})
	}
	return g.Wait()
}

// invalidate et notify sont best-effort : la mutation d'origine a déjà réussi,
// le dérivé se rattrape tout seul (TTL, prochain trigger, prochain poll)

func (p *Policy) invalidate(ctx context.Context, keys ...string) {
	if err := p.cache.Del(ctx, keys...); err != nil {
		slog.Warn("Cache invalidation failed", "keys", keys, "error", err)
	}
}

func (p *Policy) notify(ctx context.Context, userID int64, msg, typ string) {
	if err := p.notifier.Notify(ctx, userID, msg, typ); err != nil {
		slog.Warn("Notification failed", "user_id", userID, "type", typ, "error", err)
	}
}
