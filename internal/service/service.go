// Package service holds the validated use cases of the budget client. Every
// rule that can be checked locally is checked before a request is sent.
package service

import (
	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/model"
)

// UserSource exposes the signed-in user; *session.Manager implements it.
type UserSource interface {
	CurrentUser() (*model.User, bool)
}

// creator resolves the created_by_user_id of a new record.
func creator(users UserSource, given int64) (int64, error) {
	if given > 0 {
		return given, nil
	}
	if users != nil {
		if u, ok := users.CurrentUser(); ok && u.ID > 0 {
			return u.ID, nil
		}
	}
	return 0, errs.Validationf("no current user; log in first")
}

func positiveID(field string, id int64) error {
	if id <= 0 {
		return errs.Validationf("%s is required", field)
	}
	return nil
}
