// Package model defines domain entities exchanged with the budget backend.
package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType is the direction of money for a transaction.
type TransactionType string

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool { return t == Expense || t == Income }

// CategoryType restricts which transactions a category may be used for.
type CategoryType string

const (
	CategoryExpense CategoryType = "expense"
	CategoryIncome  CategoryType = "income"
	CategoryBoth    CategoryType = "both"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	return t == CategoryExpense || t == CategoryIncome || t == CategoryBoth
}

// User is a household member known to the backend.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
}

// UserRef is the minimal user projection embedded in other resources.
type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category groups transactions for reporting.
type Category struct {
	ID   int64        `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// Beneficiary is the counterparty of a transaction (also the person of a gift).
type Beneficiary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BeneficiaryRef is the minimal beneficiary projection embedded in gift resources.
type BeneficiaryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Transaction is a single income or expense record.
type Transaction struct {
	ID              int64           `json:"id"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate Timestamp       `json:"transaction_date"`
	ImagePath       string          `json:"image_path,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
	CategoryID      int64           `json:"category_id"`
	BeneficiaryID   int64           `json:"beneficiary_id"`
	CreatedByUserID int64           `json:"created_by_user_id"`
	CreatedAt       Timestamp       `json:"created_at"`
	Category        *Category       `json:"category,omitempty"`
	Beneficiary     *Beneficiary    `json:"beneficiary,omitempty"`
	CreatedByUser   *UserRef        `json:"created_by_user,omitempty"`
}

// TransactionCreate is the payload for creating a transaction.
type TransactionCreate struct {
	Type            TransactionType `json:"type" validate:"oneof=expense income"`
	Amount          decimal.Decimal `json:"amount" validate:"amount"`
	Description     string          `json:"description" validate:"notblank,max=200"`
	TransactionDate Timestamp       `json:"transaction_date"`
	CategoryID      int64           `json:"category_id" validate:"gt=0"`
	BeneficiaryID   int64           `json:"beneficiary_id" validate:"gt=0"`
	CreatedByUserID int64           `json:"created_by_user_id"`
	ImagePath       string          `json:"image_path,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
}

// TransactionUpdate is a partial update; nil fields are left unchanged.
type TransactionUpdate struct {
	Type            *TransactionType `json:"type,omitempty" validate:"omitnil,oneof=expense income"`
	Amount          *decimal.Decimal `json:"amount,omitempty" validate:"omitnil,amount"`
	Description     *string          `json:"description,omitempty" validate:"omitnil,notblank,max=200"`
	TransactionDate *Timestamp       `json:"transaction_date,omitempty"`
	CategoryID      *int64           `json:"category_id,omitempty" validate:"omitnil,gt=0"`
	BeneficiaryID   *int64           `json:"beneficiary_id,omitempty" validate:"omitnil,gt=0"`
	ImagePath       *string          `json:"image_path,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
}

// TransactionRef is the minimal transaction projection linked from gift records.
type TransactionRef struct {
	ID              int64           `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate Timestamp       `json:"transaction_date"`
}

// AggregationSummary is the backend's report over a filtered set of transactions.
type AggregationSummary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	TransactionCount int             `json:"transaction_count"`
}

// LoginRequest carries credentials for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
}

// ForgotPasswordResponse may carry the reset token when the backend runs without mail delivery.
type ForgotPasswordResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"reset_token,omitempty"`
}

// ImageUpload describes a stored receipt image.
type ImageUpload struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes a password reset with the token from ForgotPassword.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"notblank"`
	NewPassword string `json:"new_password" validate:"required,min=8,password"`
}

// MessageResponse is a plain acknowledgement from the backend.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserInput is the create/update payload of /users.
type UserInput struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

// CategoryInput is the create/update payload of /categories.
type CategoryInput struct {
	Name string       `json:"name" validate:"notblank,max=100"`
	Type CategoryType `json:"type" validate:"oneof=expense income both"`
}

// BeneficiaryInput is the create/update payload of /beneficiaries.
type BeneficiaryInput struct {
	Name string `json:"name" validate:"notblank,max=100"`
}
