package model

import "time"

// Follow state values for CharityFollow.State.  Unfollowing does
// not delete the row; it transitions the state so the follow
// history survives and re-following is an update, not an insert.
const (
	FollowStateActive     = "ACTIVE"
	FollowStateUnfollowed = "UNFOLLOWED"
)

// Charity mirrors the `charities` table.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – public charity name (unique).
//  Mission    – short mission statement.
//  Category   – free-form category label (e.g. HEALTH, EDUCATION).
//  IsVerified – whether platform staff verified the organization.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Charity struct {
	ID         uint64    // charities.id
	Name       string    // charities.name
	Mission    string    // charities.mission
	Category   string    // charities.category
	IsVerified bool      // charities.is_verified
	CreatedAt  time.Time // charities.created_at
	UpdatedAt  time.Time // charities.updated_at
}

// CharityOfficer is a roster entry for a charity.  Officers are
// managed by charity administrators and shown on the public page.
//
// Fields:
//  ID        – primary key identifier.
//  CharityID – charity the officer belongs to.
//  Name      – officer full name.
//  Title     – position within the organization.
//  Email     – contact address (may be empty).
//  PhotoKey  – storage key of the profile photo (may be empty).
//  CreatedAt – creation timestamp.
type CharityOfficer struct {
	ID        uint64    // charity_officers.id
	CharityID uint64    // charity_officers.charity_id
	Name      string    // charity_officers.name
	Title     string    // charity_officers.title
	Email     string    // charity_officers.email
	PhotoKey  string    // charity_officers.photo_key
	CreatedAt time.Time // charity_officers.created_at
}

// CharityFollow links a user to a charity they follow.  State is
// an explicit enumeration rather than a boolean flag.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – following user.
//  CharityID – followed charity.
//  State     – ACTIVE or UNFOLLOWED.
//  CreatedAt – when the follow was first created.
//  UpdatedAt – when the state last changed.
type CharityFollow struct {
	ID        uint64    // charity_follows.id
	UserID    uint64    // charity_follows.user_id
	CharityID uint64    // charity_follows.charity_id
	State     string    // charity_follows.state
	CreatedAt time.Time // charity_follows.created_at
	UpdatedAt time.Time // charity_follows.updated_at
}

// Campaign is a fundraising drive run by a charity.  Campaigns can
// be saved by donors alongside charities themselves.
//
// Fields:
//  ID        – primary key identifier.
//  CharityID – owning charity.
//  Title     – campaign title.
//  GoalCents – fundraising goal in cents.
//  IsActive  – whether the campaign accepts donations.
//  CreatedAt – creation timestamp.
type Campaign struct {
	ID        uint64    // campaigns.id
	CharityID uint64    // campaigns.charity_id
	Title     string    // campaigns.title
	GoalCents uint64    // campaigns.goal_cents
	IsActive  bool      // campaigns.is_active
	CreatedAt time.Time // campaigns.created_at
}
