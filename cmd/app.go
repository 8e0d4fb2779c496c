// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/advisor"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "auth")
	c.Register(&unlockCmd{}, "auth")
	c.Register(&passwdCmd{}, "auth")

	c.Register(&addCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")
	c.Register(&dueCmd{}, "transactions")
	c.Register(&confirmCmd{}, "transactions")
	c.Register(&archiveCmd{}, "transactions")
	c.Register(&exportCmd{}, "transactions")

	c.Register(&categoriesCmd{}, "categories")
	c.Register(&addCategoryCmd{}, "categories")
	c.Register(&renameCategoryCmd{}, "categories")
	c.Register(&rmCategoryCmd{}, "categories")
	c.Register(&reorderCategoriesCmd{}, "categories")

	c.Register(&goalsCmd{}, "goals")
	c.Register(&addGoalCmd{}, "goals")
	c.Register(&editGoalCmd{}, "goals")
	c.Register(&fundGoalCmd{}, "goals")
	c.Register(&rmGoalCmd{}, "goals")

	c.Register(&budgetsCmd{}, "budgets")
	c.Register(&setBudgetCmd{}, "budgets")

	c.Register(&debtsCmd{}, "debts")
	c.Register(&addDebtCmd{}, "debts")
	c.Register(&editDebtCmd{}, "debts")
	c.Register(&payDebtCmd{}, "debts")
	c.Register(&rmDebtCmd{}, "debts")

	c.Register(&subsCmd{}, "subscriptions")
	c.Register(&addSubCmd{}, "subscriptions")
	c.Register(&editSubCmd{}, "subscriptions")
	c.Register(&paySubCmd{}, "subscriptions")
	c.Register(&rmSubCmd{}, "subscriptions")

	c.Register(&healthCmd{}, "insights")
	c.Register(&suggestCmd{}, "insights")
	c.Register(&analyzeCmd{}, "insights")
	c.Register(&planCmd{}, "insights")
	c.Register(&estimateCmd{}, "insights")
	c.Register(&detectSubsCmd{}, "insights")
	c.Register(&scanCmd{}, "insights")

	c.Register(&settingsCmd{}, "settings")
	c.Register(&wipeCmd{}, "settings")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", ".hesabna", "Path to the ledger data folder")

// openLedger is the central function to open the ledger over the data folder.
func openLedger() (*hesabna.Ledger, error) {
	store, err := hesabna.OpenDirStore(*dataDir)
	if err != nil {
		return nil, err
	}
	return hesabna.Open(store)
}

// openAuth opens the auth gate over the same data folder.
func openAuth() (*hesabna.Auth, error) {
	store, err := hesabna.OpenDirStore(*dataDir)
	if err != nil {
		return nil, err
	}
	return hesabna.NewAuth(store), nil
}

// newAdvisor returns the Gemini advisor when an API key is configured, and
// the offline one otherwise. Advice is optional everywhere, so a broken
// client degrades instead of failing the command.
func newAdvisor(ctx context.Context) advisor.Advisor {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return advisor.Offline{}
	}
	g, err := advisor.NewGemini(ctx)
	if err != nil {
		log.Printf("advisor unavailable: %v", err)
		return advisor.Offline{}
	}
	return g
}

// printMarkdown renders a markdown document to the terminal.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
