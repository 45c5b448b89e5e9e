package model

import "time"

// Saved item types.  The type decides which table ItemID points at.
const (
	SavedItemCharity  = "CHARITY"
	SavedItemCampaign = "CAMPAIGN"
)

// SavedItem is a bookmark a donor keeps on a charity or campaign.
// The (user_id, item_type, item_id) triple is unique.
type SavedItem struct {
	ID        uint64    // saved_items.id
	UserID    uint64    // saved_items.user_id
	ItemType  string    // saved_items.item_type
	ItemID    uint64    // saved_items.item_id
	CreatedAt time.Time // saved_items.created_at
}
