package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list categories" }
func (*categoriesCmd) Usage() string {
	return `hsb categories

  Lists expense and income categories in display order.
`
}
func (*categoriesCmd) SetFlags(*flag.FlagSet) {}

func (*categoriesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.CategoriesMarkdown(ledger.Categories()))
	return subcommands.ExitSuccess
}

type addCategoryCmd struct {
	name string
	typ  string
}

func (*addCategoryCmd) Name() string     { return "add-category" }
func (*addCategoryCmd) Synopsis() string { return "create a category" }
func (*addCategoryCmd) Usage() string {
	return `hsb add-category -n <name> [-t <income|expense>]

  Creates a user category at the end of its type's display order.
`
}
func (c *addCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "The category name.")
	f.StringVar(&c.typ, "t", "expense", "The category type.")
}

func (c *addCategoryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	typ, err := hesabna.ParseTransactionType(c.typ)
	if err != nil {
		return fail(err)
	}
	cat, err := ledger.AddCategory(c.name, typ)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Created %s category %q (%s)\n", cat.Type, cat.Name, cat.ID)
	return subcommands.ExitSuccess
}

type renameCategoryCmd struct {
	id   string
	name string
}

func (*renameCategoryCmd) Name() string     { return "rename-category" }
func (*renameCategoryCmd) Synopsis() string { return "rename a category" }
func (*renameCategoryCmd) Usage() string {
	return `hsb rename-category -id <id> -n <new-name>

  Renames a user category and moves its transactions with it. Default
  categories cannot be renamed.
`
}
func (c *renameCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The category id (see categories).")
	f.StringVar(&c.name, "n", "", "The new name.")
}

func (c *renameCategoryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	if err := ledger.RenameCategory(c.id, c.name); err != nil {
		return fail(err)
	}
	fmt.Println("Renamed.")
	return subcommands.ExitSuccess
}

type rmCategoryCmd struct {
	id string
}

func (*rmCategoryCmd) Name() string     { return "rm-category" }
func (*rmCategoryCmd) Synopsis() string { return "delete a category" }
func (*rmCategoryCmd) Usage() string {
	return `hsb rm-category -id <id>

  Deletes a user category; its transactions move to "Other". Default
  categories cannot be deleted.
`
}
func (c *rmCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The category id (see categories).")
}

func (c *rmCategoryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	if err := ledger.DeleteCategory(c.id); err != nil {
		return fail(err)
	}
	fmt.Println("Deleted.")
	return subcommands.ExitSuccess
}

type reorderCategoriesCmd struct {
	typ string
	ids string
}

func (*reorderCategoriesCmd) Name() string     { return "reorder-categories" }
func (*reorderCategoriesCmd) Synopsis() string { return "set the display order of categories" }
func (*reorderCategoriesCmd) Usage() string {
	return `hsb reorder-categories -t <income|expense> -ids <id,id,...>

  Applies a new display order. The list must contain every category id of
  the given type exactly once.
`
}
func (c *reorderCategoriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", "expense", "The category type.")
	f.StringVar(&c.ids, "ids", "", "Comma-separated category ids in the new order.")
}

func (c *reorderCategoriesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	typ, err := hesabna.ParseTransactionType(c.typ)
	if err != nil {
		return fail(err)
	}
	var ids []string
	for _, id := range strings.Split(c.ids, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if err := ledger.ReorderCategories(typ, ids); err != nil {
		return fail(err)
	}
	fmt.Println("Reordered.")
	return subcommands.ExitSuccess
}
