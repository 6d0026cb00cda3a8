package main

import (
	"context"
	"flag"

	"github.com/and161185/budget-keeper/internal/model"
)

// crud wires list/add/edit/rm for a reference-data resource.
type crud struct {
	name   string
	target string
	list   func(ctx context.Context) (any, error)
	flags  func(fs *flag.FlagSet) func() error
	save   func(ctx context.Context, id int64) (any, error)
	remove func(ctx context.Context, id int64) error
}

func (c crud) run(ctx context.Context, a *app, args []string) error {
	if err := a.guard(ctx, c.target); err != nil {
		return err
	}
	sub, rest := subcommand(args, "list")
	switch sub {
	case "list":
		v, err := c.list(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(v)
	case "add", "edit":
		var id int64
		if sub == "edit" {
			var err error
			if id, rest, err = idArg(c.name+" edit <id> [flags]", rest); err != nil {
				return err
			}
		}
		fs := newFlagSet(a, c.name+" "+sub)
		check := c.flags(fs)
		if _, err := parse(fs, rest); err != nil {
			return err
		}
		if err := check(); err != nil {
			return err
		}
		v, err := c.save(ctx, id)
		if err != nil {
			return err
		}
		return a.printJSON(v)
	case "rm":
		id, _, err := idArg(c.name+" rm <id>", rest)
		if err != nil {
			return err
		}
		if err := c.remove(ctx, id); err != nil {
			return err
		}
		return a.printJSON(map[string]any{"status": msg(a.lang, msgDeleted), "id": id})
	default:
		return usagef("%s list|add|edit|rm", c.name)
	}
}

func nameFlag(fs *flag.FlagSet, name *string) func() error {
	fs.StringVar(name, "name", "", "name")
	return func() error {
		if *name == "" {
			return need("-name")
		}
		return nil
	}
}

func cmdCategories(ctx context.Context, a *app, args []string) error {
	var in model.CategoryInput
	var typ string
	return crud{
		name:   "categories",
		target: "/categories",
		list:   func(ctx context.Context) (any, error) { return a.catalog.Categories(ctx) },
		flags: func(fs *flag.FlagSet) func() error {
			fs.StringVar(&typ, "type", string(model.CategoryExpense), "expense, income or both")
			return nameFlag(fs, &in.Name)
		},
		save: func(ctx context.Context, id int64) (any, error) {
			in.Type = model.CategoryType(typ)
			return a.catalog.SaveCategory(ctx, id, in)
		},
		remove: a.catalog.DeleteCategory,
	}.run(ctx, a, args)
}

func cmdBeneficiaries(ctx context.Context, a *app, args []string) error {
	var in model.BeneficiaryInput
	return crud{
		name:   "beneficiaries",
		target: "/beneficiaries",
		list:   func(ctx context.Context) (any, error) { return a.catalog.Beneficiaries(ctx) },
		flags:  func(fs *flag.FlagSet) func() error { return nameFlag(fs, &in.Name) },
		save: func(ctx context.Context, id int64) (any, error) {
			return a.catalog.SaveBeneficiary(ctx, id, in)
		},
		remove: a.catalog.DeleteBeneficiary,
	}.run(ctx, a, args)
}

func cmdUsers(ctx context.Context, a *app, args []string) error {
	var in model.UserInput
	return crud{
		name:   "users",
		target: "/users",
		list:   func(ctx context.Context) (any, error) { return a.catalog.Users(ctx) },
		flags:  func(fs *flag.FlagSet) func() error { return nameFlag(fs, &in.Name) },
		save: func(ctx context.Context, id int64) (any, error) {
			return a.catalog.SaveUser(ctx, id, in)
		},
		remove: a.catalog.DeleteUser,
	}.run(ctx, a, args)
}
