package service

import (
	"context"
	"sync"

	"github.com/and161185/budget-keeper/internal/model"
)

// fakeAPI records calls and returns canned results for every API interface.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	occasion  *model.OccasionWithEntries
	entries   []model.GiftEntry
	purchases []model.GiftPurchase
	txs       []model.Transaction
	err       error
	deleteErr error

	gotTxSkip, gotTxLimit int
	gotEntry              model.GiftEntryCreate
	gotTx                 model.TransactionCreate
	gotRegister           model.RegisterRequest
	token                 string
}

var (
	_ GiftAPI        = (*fakeAPI)(nil)
	_ TransactionAPI = (*fakeAPI)(nil)
	_ AccountAPI     = (*fakeAPI)(nil)
	_ CatalogAPI     = (*fakeAPI)(nil)
)

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Occasions(context.Context, int, int) ([]model.OccasionWithSummary, error) {
	f.record("Occasions")
	return []model.OccasionWithSummary{}, f.err
}
func (f *fakeAPI) Occasion(context.Context, int64) (*model.OccasionWithEntries, error) {
	f.record("Occasion")
	return f.occasion, f.err
}
func (f *fakeAPI) OccasionSummary(_ context.Context, id int64) (*model.GiftOccasionSummary, error) {
	f.record("OccasionSummary")
	if f.err != nil {
		return nil, f.err
	}
	return &model.GiftOccasionSummary{OccasionID: id}, nil
}
func (f *fakeAPI) CreateOccasion(_ context.Context, in model.OccasionCreate) (*model.Occasion, error) {
	f.record("CreateOccasion")
	return &model.Occasion{ID: 1, Name: in.Name, OccasionType: in.OccasionType, CreatedByUserID: in.CreatedByUserID}, f.err
}
func (f *fakeAPI) UpdateOccasion(_ context.Context, id int64, _ model.OccasionUpdate) (*model.Occasion, error) {
	f.record("UpdateOccasion")
	return &model.Occasion{ID: id}, f.err
}
func (f *fakeAPI) DeleteOccasion(context.Context, int64) error {
	f.record("DeleteOccasion")
	return f.deleteErr
}
func (f *fakeAPI) Entries(context.Context, int64) ([]model.GiftEntry, error) {
	f.record("Entries")
	return f.entries, f.err
}
func (f *fakeAPI) CreateEntry(_ context.Context, occasionID int64, in model.GiftEntryCreate) (*model.GiftEntry, error) {
	f.record("CreateEntry")
	f.gotEntry = in
	if f.err != nil {
		return nil, f.err
	}
	return &model.GiftEntry{ID: 100, OccasionID: occasionID, Direction: in.Direction, PersonID: in.PersonID, Amount: in.Amount, GiftDate: in.GiftDate}, nil
}
func (f *fakeAPI) UpdateEntry(_ context.Context, id int64, in model.GiftEntryUpdate) (*model.GiftEntry, error) {
	f.record("UpdateEntry")
	if f.err != nil {
		return nil, f.err
	}
	e := model.GiftEntry{ID: id, Direction: model.Received}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.Direction != nil {
		e.Direction = *in.Direction
	}
	return &e, nil
}
func (f *fakeAPI) DeleteEntry(context.Context, int64) error {
	f.record("DeleteEntry")
	return f.deleteErr
}
func (f *fakeAPI) Purchases(context.Context, int64) ([]model.GiftPurchase, error) {
	f.record("Purchases")
	return f.purchases, f.err
}
func (f *fakeAPI) CreatePurchase(_ context.Context, occasionID int64, in model.GiftPurchaseCreate) (*model.GiftPurchase, error) {
	f.record("CreatePurchase")
	if f.err != nil {
		return nil, f.err
	}
	return &model.GiftPurchase{ID: 200, OccasionID: occasionID, Amount: in.Amount, Description: in.Description, PurchaseDate: in.PurchaseDate}, nil
}
func (f *fakeAPI) UpdatePurchase(_ context.Context, id int64, in model.GiftPurchaseUpdate) (*model.GiftPurchase, error) {
	f.record("UpdatePurchase")
	if f.err != nil {
		return nil, f.err
	}
	p := model.GiftPurchase{ID: id}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	return &p, nil
}
func (f *fakeAPI) DeletePurchase(context.Context, int64) error {
	f.record("DeletePurchase")
	return f.deleteErr
}

func (f *fakeAPI) Transactions(_ context.Context, _ model.TransactionFilter, skip, limit int) ([]model.Transaction, error) {
	f.record("Transactions")
	f.gotTxSkip, f.gotTxLimit = skip, limit
	return f.txs, f.err
}
func (f *fakeAPI) Transaction(_ context.Context, id int64) (*model.Transaction, error) {
	f.record("Transaction")
	return &model.Transaction{ID: id}, f.err
}
func (f *fakeAPI) CreateTransaction(_ context.Context, in model.TransactionCreate) (*model.Transaction, error) {
	f.record("CreateTransaction")
	f.gotTx = in
	return &model.Transaction{ID: 9, Amount: in.Amount}, f.err
}
func (f *fakeAPI) UpdateTransaction(_ context.Context, id int64, _ model.TransactionUpdate) (*model.Transaction, error) {
	f.record("UpdateTransaction")
	return &model.Transaction{ID: id}, f.err
}
func (f *fakeAPI) DeleteTransaction(context.Context, int64) error {
	f.record("DeleteTransaction")
	return f.deleteErr
}
func (f *fakeAPI) Summary(context.Context, model.SummaryFilter) (*model.AggregationSummary, error) {
	f.record("Summary")
	return &model.AggregationSummary{}, f.err
}

func (f *fakeAPI) Login(context.Context, string, string) (*model.TokenResponse, error) {
	f.record("Login")
	if f.err != nil {
		return nil, f.err
	}
	return &model.TokenResponse{AccessToken: f.token, TokenType: "bearer"}, nil
}
func (f *fakeAPI) Register(_ context.Context, in model.RegisterRequest) (*model.User, error) {
	f.record("Register")
	f.gotRegister = in
	return &model.User{ID: 1, Name: in.Name, Email: in.Email}, f.err
}
func (f *fakeAPI) ForgotPassword(context.Context, string) (*model.ForgotPasswordResponse, error) {
	f.record("ForgotPassword")
	return &model.ForgotPasswordResponse{Message: "ok"}, f.err
}
func (f *fakeAPI) ResetPassword(context.Context, string, string) (*model.MessageResponse, error) {
	f.record("ResetPassword")
	return &model.MessageResponse{Message: "Password has been reset"}, f.err
}

func (f *fakeAPI) Categories(context.Context) ([]model.Category, error) {
	f.record("Categories")
	return []model.Category{}, f.err
}
func (f *fakeAPI) CreateCategory(_ context.Context, in model.CategoryInput) (*model.Category, error) {
	f.record("CreateCategory")
	return &model.Category{ID: 1, Name: in.Name, Type: in.Type}, f.err
}
func (f *fakeAPI) UpdateCategory(_ context.Context, id int64, in model.CategoryInput) (*model.Category, error) {
	f.record("UpdateCategory")
	return &model.Category{ID: id, Name: in.Name, Type: in.Type}, f.err
}
func (f *fakeAPI) DeleteCategory(context.Context, int64) error {
	f.record("DeleteCategory")
	return f.deleteErr
}
func (f *fakeAPI) Beneficiaries(context.Context) ([]model.Beneficiary, error) {
	f.record("Beneficiaries")
	return []model.Beneficiary{}, f.err
}
func (f *fakeAPI) CreateBeneficiary(_ context.Context, in model.BeneficiaryInput) (*model.Beneficiary, error) {
	f.record("CreateBeneficiary")
	return &model.Beneficiary{ID: 1, Name: in.Name}, f.err
}
func (f *fakeAPI) UpdateBeneficiary(_ context.Context, id int64, in model.BeneficiaryInput) (*model.Beneficiary, error) {
	f.record("UpdateBeneficiary")
	return &model.Beneficiary{ID: id, Name: in.Name}, f.err
}
func (f *fakeAPI) DeleteBeneficiary(context.Context, int64) error {
	f.record("DeleteBeneficiary")
	return f.deleteErr
}
func (f *fakeAPI) Users(context.Context) ([]model.User, error) {
	f.record("Users")
	return []model.User{}, f.err
}
func (f *fakeAPI) CreateUser(_ context.Context, in model.UserInput) (*model.User, error) {
	f.record("CreateUser")
	return &model.User{ID: 1, Name: in.Name}, f.err
}
func (f *fakeAPI) UpdateUser(_ context.Context, id int64, in model.UserInput) (*model.User, error) {
	f.record("UpdateUser")
	return &model.User{ID: id, Name: in.Name}, f.err
}
func (f *fakeAPI) DeleteUser(context.Context, int64) error {
	f.record("DeleteUser")
	return f.deleteErr
}

// fakeSession implements Session.
type fakeSession struct {
	user     *model.User
	token    string
	loginErr error
}

func (s *fakeSession) CurrentUser() (*model.User, bool) {
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}
func (s *fakeSession) Login(_ context.Context, token string) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	s.token = token
	s.user = &model.User{ID: 42, Name: "Me"}
	return nil
}
func (s *fakeSession) Logout(context.Context) error {
	s.token, s.user = "", nil
	return nil
}
