package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/and161185/budget-keeper/internal/ledger"
	"github.com/and161185/budget-keeper/internal/model"
	"github.com/and161185/budget-keeper/internal/service"
)

type occasionDetail struct {
	Occasion       model.Occasion                          `json:"occasion"`
	Summary        model.GiftOccasionSummary               `json:"summary"`
	Entries        ledger.Split                            `json:"entries"`
	Purchases      []model.GiftPurchase                    `json:"purchases"`
	EntryMonths    []ledger.MonthGroup[model.GiftEntry]    `json:"entry_months"`
	PurchaseMonths []ledger.MonthGroup[model.GiftPurchase] `json:"purchase_months"`
	ServerSummary  *model.GiftOccasionSummary              `json:"server_summary,omitempty"`
}

func detail(v *service.OccasionView, now time.Time) occasionDetail {
	return occasionDetail{
		Occasion:       v.Occasion,
		Summary:        v.Summary(),
		Entries:        v.Split(),
		Purchases:      v.SortedPurchases(),
		EntryMonths:    ledger.GroupByMonth(v.Entries, ledger.EntryDates, now),
		PurchaseMonths: ledger.GroupByMonth(v.Purchases, ledger.PurchaseDates, now),
	}
}

func cmdGifts(ctx context.Context, a *app, args []string) error {
	sub, rest := subcommand(args, "list")
	target := "/gifts"
	if sub == "show" && len(rest) > 0 {
		target = "/gifts/" + rest[0]
	}
	if err := a.guard(ctx, target); err != nil {
		return err
	}
	switch sub {
	case "list":
		fs := newFlagSet(a, "gifts list")
		page := fs.Int("page", 0, "page index, 0-based")
		size := fs.Int("size", a.cfg.PageSize, "page size")
		if _, err := parse(fs, rest); err != nil {
			return err
		}
		p := ledger.NewPager(*size)
		p.Index = max(*page, 0)
		fetched, err := a.gifts.ListOccasions(ctx, p.Skip(), p.Limit())
		if err != nil {
			return err
		}
		items, more := ledger.Paginate(fetched, p.Size)
		return a.printJSON(map[string]any{"page": p.Index, "has_more": more, "items": items})
	case "show":
		return occasionShow(ctx, a, rest)
	case "add":
		return occasionAdd(ctx, a, rest)
	case "edit":
		return occasionEdit(ctx, a, rest)
	case "rm":
		id, _, err := idArg("gifts rm <id>", rest)
		if err != nil {
			return err
		}
		if err := a.gifts.DeleteOccasion(ctx, id); err != nil {
			return err
		}
		return a.printJSON(map[string]any{"status": msg(a.lang, msgDeleted), "id": id})
	default:
		return usagef("gifts list|show|add|edit|rm")
	}
}

// occasionShow prints the locally derived view; with -server-summary the
// backend's own totals are fetched alongside for comparison.
func occasionShow(ctx context.Context, a *app, args []string) error {
	id, rest, err := idArg("gifts show <id> [-server-summary]", args)
	if err != nil {
		return err
	}
	fs := newFlagSet(a, "gifts show")
	server := fs.Bool("server-summary", false, "also fetch the backend summary")
	if _, err := parse(fs, rest); err != nil {
		return err
	}
	var (
		v   *service.OccasionView
		sum *model.GiftOccasionSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		v, err = a.gifts.LoadOccasion(gctx, id)
		return err
	})
	if *server {
		g.Go(func() (err error) {
			sum, err = a.gifts.ServerSummary(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	d := detail(v, time.Now())
	d.ServerSummary = sum
	return a.printJSON(d)
}

type occasionFlags struct {
	name, typ, date, person, notes *string
	pool                           *bool
}

func bindOccasion(fs *flag.FlagSet, defType string) occasionFlags {
	return occasionFlags{
		name:   fs.String("name", "", "occasion name"),
		typ:    fs.String("type", defType, "birthday, holiday, celebration or other"),
		date:   fs.String("date", "", "occasion date YYYY-MM-DD"),
		person: fs.String("person", "", "beneficiary id of the person"),
		notes:  fs.String("notes", "", "notes"),
		pool:   fs.Bool("pool", false, "pool account"),
	}
}

func occasionAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "gifts add")
	f := bindOccasion(fs, string(model.OtherEvent))
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if *f.name == "" {
		return need("-name")
	}
	in := model.OccasionCreate{
		Name:          *f.name,
		OccasionType:  model.OccasionType(*f.typ),
		Notes:         *f.notes,
		IsPoolAccount: *f.pool,
	}
	var err error
	if in.OccasionDate, err = optionalDate("date", *f.date); err != nil {
		return err
	}
	if in.PersonID, err = optionalID("person", *f.person); err != nil {
		return err
	}
	if err := a.ensureUser(ctx); err != nil {
		return err
	}
	o, err := a.gifts.CreateOccasion(ctx, in)
	if err != nil {
		return err
	}
	return a.printJSON(o)
}

func occasionEdit(ctx context.Context, a *app, args []string) error {
	id, rest, err := idArg("gifts edit <id> [flags]", args)
	if err != nil {
		return err
	}
	fs := newFlagSet(a, "gifts edit")
	f := bindOccasion(fs, "")
	set, err := parse(fs, rest)
	if err != nil {
		return err
	}
	if len(set) == 0 {
		return usagef("gifts edit: nothing to change")
	}
	var in model.OccasionUpdate
	if set["name"] {
		in.Name = f.name
	}
	if set["type"] {
		t := model.OccasionType(*f.typ)
		in.OccasionType = &t
	}
	if set["date"] {
		if in.OccasionDate, err = optionalDate("date", *f.date); err != nil {
			return err
		}
	}
	if set["person"] {
		if in.PersonID, err = optionalID("person", *f.person); err != nil {
			return err
		}
	}
	if set["notes"] {
		in.Notes = f.notes
	}
	if set["pool"] {
		in.IsPoolAccount = f.pool
	}
	o, err := a.gifts.UpdateOccasion(ctx, id, in)
	if err != nil {
		return err
	}
	return a.printJSON(o)
}

// openOccasion parses -occasion and loads the view the change applies to.
func (a *app) openOccasion(ctx context.Context, raw string) (*service.OccasionView, error) {
	if raw == "" {
		return nil, need("-occasion")
	}
	id, err := parseID("occasion", raw)
	if err != nil {
		return nil, err
	}
	if err := a.guard(ctx, fmt.Sprintf("/gifts/%d", id)); err != nil {
		return nil, err
	}
	return a.gifts.LoadOccasion(ctx, id)
}

type changeResult struct {
	Changed any                       `json:"changed,omitempty"`
	Deleted int64                     `json:"deleted,omitempty"`
	Summary model.GiftOccasionSummary `json:"summary"`
}

func cmdGiftEntry(ctx context.Context, a *app, args []string) error {
	sub, rest := subcommand(args, "")
	var id int64
	var err error
	switch sub {
	case "add":
	case "edit", "rm":
		if id, rest, err = idArg("gift-entry "+sub+" <id> -occasion <id>", rest); err != nil {
			return err
		}
	default:
		return usagef("gift-entry add|edit|rm")
	}

	fs := newFlagSet(a, "gift-entry "+sub)
	occ := fs.String("occasion", "", "occasion id")
	dir := fs.String("direction", string(model.Received), "received or given")
	person := fs.String("person", "", "beneficiary id")
	amount := fs.String("amount", "", "amount")
	date := fs.String("date", "", "gift date YYYY-MM-DD")
	desc := fs.String("desc", "", "description")
	notes := fs.String("notes", "", "notes")
	tx := fs.String("tx", "", "linked transaction id")
	set, err := parse(fs, rest)
	if err != nil {
		return err
	}
	v, err := a.openOccasion(ctx, *occ)
	if err != nil {
		return err
	}

	switch sub {
	case "add":
		if *person == "" || *amount == "" || *date == "" {
			return need("-person", "-amount", "-date")
		}
		in := model.GiftEntryCreate{Direction: model.GiftDirection(*dir), Description: *desc, Notes: *notes}
		if in.PersonID, err = parseID("person", *person); err != nil {
			return err
		}
		if in.Amount, err = parseAmount(*amount); err != nil {
			return err
		}
		if in.GiftDate, err = parseDate("date", *date); err != nil {
			return err
		}
		if in.TransactionID, err = optionalID("tx", *tx); err != nil {
			return err
		}
		if err := a.ensureUser(ctx); err != nil {
			return err
		}
		e, err := a.gifts.AddEntry(ctx, v, in)
		if err != nil {
			return err
		}
		return a.printJSON(changeResult{Changed: e, Summary: v.Summary()})
	case "edit":
		var in model.GiftEntryUpdate
		if set["direction"] {
			d := model.GiftDirection(*dir)
			in.Direction = &d
		}
		if set["person"] {
			if in.PersonID, err = optionalID("person", *person); err != nil {
				return err
			}
		}
		if set["amount"] {
			d, err := parseAmount(*amount)
			if err != nil {
				return err
			}
			in.Amount = &d
		}
		if set["date"] {
			if in.GiftDate, err = optionalDate("date", *date); err != nil {
				return err
			}
		}
		if set["desc"] {
			in.Description = desc
		}
		if set["notes"] {
			in.Notes = notes
		}
		if set["tx"] {
			if in.TransactionID, err = optionalID("tx", *tx); err != nil {
				return err
			}
		}
		e, err := a.gifts.UpdateEntry(ctx, v, id, in)
		if err != nil {
			return err
		}
		return a.printJSON(changeResult{Changed: e, Summary: v.Summary()})
	default:
		if err := a.gifts.DeleteEntry(ctx, v, id); err != nil {
			return err
		}
		return a.printJSON(changeResult{Deleted: id, Summary: v.Summary()})
	}
}

func cmdGiftPurchase(ctx context.Context, a *app, args []string) error {
	sub, rest := subcommand(args, "")
	var id int64
	var err error
	switch sub {
	case "add":
	case "edit", "rm":
		if id, rest, err = idArg("gift-purchase "+sub+" <id> -occasion <id>", rest); err != nil {
			return err
		}
	default:
		return usagef("gift-purchase add|edit|rm")
	}

	fs := newFlagSet(a, "gift-purchase "+sub)
	occ := fs.String("occasion", "", "occasion id")
	amount := fs.String("amount", "", "amount")
	date := fs.String("date", "", "purchase date YYYY-MM-DD")
	desc := fs.String("desc", "", "what was bought")
	notes := fs.String("notes", "", "notes")
	tx := fs.String("tx", "", "linked transaction id")
	set, err := parse(fs, rest)
	if err != nil {
		return err
	}
	v, err := a.openOccasion(ctx, *occ)
	if err != nil {
		return err
	}

	switch sub {
	case "add":
		if *amount == "" || *date == "" || *desc == "" {
			return need("-amount", "-date", "-desc")
		}
		in := model.GiftPurchaseCreate{Description: *desc, Notes: *notes}
		if in.Amount, err = parseAmount(*amount); err != nil {
			return err
		}
		if in.PurchaseDate, err = parseDate("date", *date); err != nil {
			return err
		}
		if in.TransactionID, err = optionalID("tx", *tx); err != nil {
			return err
		}
		if err := a.ensureUser(ctx); err != nil {
			return err
		}
		p, err := a.gifts.AddPurchase(ctx, v, in)
		if err != nil {
			return err
		}
		return a.printJSON(changeResult{Changed: p, Summary: v.Summary()})
	case "edit":
		var in model.GiftPurchaseUpdate
		if set["amount"] {
			d, err := parseAmount(*amount)
			if err != nil {
				return err
			}
			in.Amount = &d
		}
		if set["date"] {
			if in.PurchaseDate, err = optionalDate("date", *date); err != nil {
				return err
			}
		}
		if set["desc"] {
			in.Description = desc
		}
		if set["notes"] {
			in.Notes = notes
		}
		if set["tx"] {
			if in.TransactionID, err = optionalID("tx", *tx); err != nil {
				return err
			}
		}
		p, err := a.gifts.UpdatePurchase(ctx, v, id, in)
		if err != nil {
			return err
		}
		return a.printJSON(changeResult{Changed: p, Summary: v.Summary()})
	default:
		if err := a.gifts.DeletePurchase(ctx, v, id); err != nil {
			return err
		}
		return a.printJSON(changeResult{Deleted: id, Summary: v.Summary()})
	}
}
