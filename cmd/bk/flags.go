package main

import (
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/model"
)

func newFlagSet(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parse parses args and returns the names of flags given explicitly.
func parse(fs *flag.FlagSet, args []string) (map[string]bool, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set, nil
}

// subcommand splits "list", "add" and so on off args.
func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return def, args
	}
	return args[0], args[1:]
}

func parseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Validationf("%s must be a positive integer, got %q", field, s)
	}
	return id, nil
}

func optionalID(field, s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	id, err := parseID(field, s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.Validationf("amount %q is not a number", s)
	}
	return d, nil
}

func parseDate(field, s string) (model.Date, error) {
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, errs.Validationf("%s %q: want YYYY-MM-DD", field, s)
	}
	return d, nil
}

func optionalDate(field, s string) (*model.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseWhen accepts a date or an RFC 3339 timestamp.
func parseWhen(field, s string) (model.Timestamp, error) {
	ts, err := model.ParseTimestamp(s)
	if err != nil {
		return model.Timestamp{}, errs.Validationf("%s %q: want YYYY-MM-DD or RFC 3339", field, s)
	}
	return ts, nil
}

func parseDay(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(field, s)
	if err != nil {
		return nil, err
	}
	t := d.Time
	return &t, nil
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
