package model

import "github.com/shopspring/decimal"

// OccasionType classifies gift occasions.
type OccasionType string

const (
	Birthday    OccasionType = "birthday"
	Holiday     OccasionType = "holiday"
	Celebration OccasionType = "celebration"
	OtherEvent  OccasionType = "other"
)

// Valid reports whether t is a known occasion type.
func (t OccasionType) Valid() bool {
	switch t {
	case Birthday, Holiday, Celebration, OtherEvent:
		return true
	}
	return false
}

// GiftDirection tells whether gift money came in or went out.
type GiftDirection string

const (
	Received GiftDirection = "received"
	Given    GiftDirection = "given"
)

// Valid reports whether d is a known direction.
func (d GiftDirection) Valid() bool { return d == Received || d == Given }

// Occasion is an event against which gift money is tracked.
type Occasion struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	OccasionType    OccasionType    `json:"occasion_type"`
	OccasionDate    *Date           `json:"occasion_date,omitempty"`
	PersonID        *int64          `json:"person_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	IsPoolAccount   bool            `json:"is_pool_account"`
	CreatedByUserID int64           `json:"created_by_user_id"`
	CreatedAt       Timestamp       `json:"created_at"`
	Person          *BeneficiaryRef `json:"person,omitempty"`
	CreatedByUser   *UserRef        `json:"created_by_user,omitempty"`
}

// OccasionCreate is the payload for creating an occasion.
type OccasionCreate struct {
	Name            string       `json:"name" validate:"notblank,max=200"`
	OccasionType    OccasionType `json:"occasion_type" validate:"oneof=birthday holiday celebration other"`
	OccasionDate    *Date        `json:"occasion_date,omitempty"`
	PersonID        *int64       `json:"person_id,omitempty" validate:"omitnil,gt=0"`
	Notes           string       `json:"notes,omitempty"`
	IsPoolAccount   bool         `json:"is_pool_account"`
	CreatedByUserID int64        `json:"created_by_user_id"`
}

// OccasionUpdate is a partial update; nil fields are left unchanged.
type OccasionUpdate struct {
	Name          *string       `json:"name,omitempty" validate:"omitnil,notblank,max=200"`
	OccasionType  *OccasionType `json:"occasion_type,omitempty" validate:"omitnil,oneof=birthday holiday celebration other"`
	OccasionDate  *Date         `json:"occasion_date,omitempty"`
	PersonID      *int64        `json:"person_id,omitempty" validate:"omitnil,gt=0"`
	Notes         *string       `json:"notes,omitempty"`
	IsPoolAccount *bool         `json:"is_pool_account,omitempty"`
}

// GiftEntry is money received from or given to a person for an occasion.
type GiftEntry struct {
	ID              int64           `json:"id"`
	OccasionID      int64           `json:"occasion_id"`
	Direction       GiftDirection   `json:"direction"`
	PersonID        int64           `json:"person_id"`
	Amount          decimal.Decimal `json:"amount"`
	GiftDate        Date            `json:"gift_date"`
	Description     string          `json:"description,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	TransactionID   *int64          `json:"transaction_id,omitempty"`
	CreatedByUserID int64           `json:"created_by_user_id"`
	CreatedAt       Timestamp       `json:"created_at"`
	Person          *BeneficiaryRef `json:"person,omitempty"`
	Transaction     *TransactionRef `json:"transaction,omitempty"`
	CreatedByUser   *UserRef        `json:"created_by_user,omitempty"`
}

// GiftEntryCreate is the payload for recording a gift entry.
type GiftEntryCreate struct {
	Direction       GiftDirection   `json:"direction" validate:"oneof=received given"`
	PersonID        int64           `json:"person_id" validate:"gt=0"`
	Amount          decimal.Decimal `json:"amount" validate:"amount"`
	GiftDate        Date            `json:"gift_date" validate:"required"`
	Description     string          `json:"description,omitempty" validate:"max=200"`
	Notes           string          `json:"notes,omitempty"`
	TransactionID   *int64          `json:"transaction_id,omitempty" validate:"omitnil,gt=0"`
	CreatedByUserID int64           `json:"created_by_user_id"`
}

// GiftEntryUpdate is a partial update; nil fields are left unchanged.
type GiftEntryUpdate struct {
	Direction     *GiftDirection   `json:"direction,omitempty" validate:"omitnil,oneof=received given"`
	PersonID      *int64           `json:"person_id,omitempty" validate:"omitnil,gt=0"`
	Amount        *decimal.Decimal `json:"amount,omitempty" validate:"omitnil,amount"`
	GiftDate      *Date            `json:"gift_date,omitempty" validate:"omitnil,required"`
	Description   *string          `json:"description,omitempty" validate:"omitnil,max=200"`
	Notes         *string          `json:"notes,omitempty"`
	TransactionID *int64           `json:"transaction_id,omitempty" validate:"omitnil,gt=0"`
}

// GiftPurchase is money spent buying a gift for an occasion.
type GiftPurchase struct {
	ID              int64           `json:"id"`
	OccasionID      int64           `json:"occasion_id"`
	Amount          decimal.Decimal `json:"amount"`
	PurchaseDate    Date            `json:"purchase_date"`
	Description     string          `json:"description"`
	Notes           string          `json:"notes,omitempty"`
	TransactionID   *int64          `json:"transaction_id,omitempty"`
	CreatedByUserID int64           `json:"created_by_user_id"`
	CreatedAt       Timestamp       `json:"created_at"`
	Transaction     *TransactionRef `json:"transaction,omitempty"`
	CreatedByUser   *UserRef        `json:"created_by_user,omitempty"`
}

// GiftPurchaseCreate is the payload for recording a purchase.
type GiftPurchaseCreate struct {
	Amount          decimal.Decimal `json:"amount" validate:"amount"`
	PurchaseDate    Date            `json:"purchase_date" validate:"required"`
	Description     string          `json:"description" validate:"notblank,max=200"`
	Notes           string          `json:"notes,omitempty"`
	TransactionID   *int64          `json:"transaction_id,omitempty" validate:"omitnil,gt=0"`
	CreatedByUserID int64           `json:"created_by_user_id"`
}

// GiftPurchaseUpdate is a partial update; nil fields are left unchanged.
type GiftPurchaseUpdate struct {
	Amount        *decimal.Decimal `json:"amount,omitempty" validate:"omitnil,amount"`
	PurchaseDate  *Date            `json:"purchase_date,omitempty" validate:"omitnil,required"`
	Description   *string          `json:"description,omitempty" validate:"omitnil,notblank,max=200"`
	Notes         *string          `json:"notes,omitempty"`
	TransactionID *int64           `json:"transaction_id,omitempty" validate:"omitnil,gt=0"`
}

// GiftOccasionSummary holds the derived totals of one occasion.
// Balance is received minus purchases; money given does not offset it.
type GiftOccasionSummary struct {
	OccasionID     int64           `json:"occasion_id"`
	TotalReceived  decimal.Decimal `json:"total_received"`
	TotalGiven     decimal.Decimal `json:"total_given"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	Balance        decimal.Decimal `json:"balance"`
	EntryCount     int             `json:"entry_count"`
	PurchaseCount  int             `json:"purchase_count"`
}

// OccasionWithSummary is a list row of GET /gift-occasions.
type OccasionWithSummary struct {
	Occasion
	Summary GiftOccasionSummary `json:"summary"`
}

// OccasionWithEntries is the detail view of GET /gift-occasions/:id.
type OccasionWithEntries struct {
	Occasion
	GiftEntries   []GiftEntry    `json:"gift_entries"`
	GiftPurchases []GiftPurchase `json:"gift_purchases"`
}
