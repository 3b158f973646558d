package domain

// Capacité de l'historique par destinataire : au-delà, les plus anciennes tombent
const (
	NotificationCap    = 10
	NotificationWindow = 20 // fenêtre de lecture max côté API
)

// Types de notifications émis par le pipeline
const (
	NotifNewFollower   = "new_follower"
	NotifWishlistAlert = "wishlist_alert"
	NotifNewProduct    = "new_product"
	NotifDiscount      = "discount"
)

// Notification : enregistrement éphémère, scoped au destinataire.
// Stockée du plus récent au plus ancien, purgée au logout.
type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"` // ISO 8601
	IsRead    bool   `json:"isRead"`
}
