package domain

import "time"

type EventType string

const (
	EventAssetRegistered    EventType = "ASSET_REGISTERED"
	EventAssetUpdated       EventType = "ASSET_UPDATED"
	EventRentalRequested    EventType = "RENTAL_REQUESTED"
	EventPickupConfirmed    EventType = "PICKUP_CONFIRMED"
	EventRentalActivated    EventType = "RENTAL_ACTIVATED"
	EventReturnConfirmed    EventType = "RETURN_CONFIRMED"
	EventRentalCompleted    EventType = "RENTAL_COMPLETED"
	EventRentalCancelled    EventType = "RENTAL_CANCELLED"
	EventRentalDisputed     EventType = "RENTAL_DISPUTED"
	EventBondLocked         EventType = "BOND_LOCKED"
	EventBondReleased       EventType = "BOND_RELEASED"
	EventReputationAdjusted EventType = "REPUTATION_ADJUSTED"
	EventOverdueReminder    EventType = "OVERDUE_REMINDER"
)

// Event is an append-only lifecycle record emitted for every state
// transition. Events are consumed by external indexers and UIs through
// the read API; the core never reads them back.
type Event struct {
	ID          int64        `json:"id"`
	EventID     string       `json:"event_id"` // uuid, stable across re-reads
	Type        EventType    `json:"type"`
	AssetID     int64        `json:"asset_id,omitempty"`
	RentalID    int64        `json:"rental_id,omitempty"`
	ActorID     int64        `json:"actor_id,omitempty"`
	AmountCents int64        `json:"amount_cents,omitempty"`
	Status      RentalStatus `json:"status,omitempty"`
	CreatedOn   time.Time    `json:"created_on"`
}
