package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type settingsCmd struct {
	name     string
	email    string
	income   string
	theme    string
	autoLock int
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change user settings" }
func (*settingsCmd) Usage() string {
	return `hsb settings [-n <name>] [-email <email>] [-income <amount>] [-theme <light|dark>] [-lock <minutes>]

  Without flags, shows the current settings. Flags change the given fields.
`
}
func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "The display name.")
	f.StringVar(&c.email, "email", "", "The contact email.")
	f.StringVar(&c.income, "income", "", "The declared monthly income.")
	f.StringVar(&c.theme, "theme", "", "The UI theme (light or dark).")
	f.IntVar(&c.autoLock, "lock", 0, "Auto-lock delay in minutes.")
}

func (c *settingsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	s := ledger.Settings()
	changed := false
	if c.name != "" {
		s.Name, changed = c.name, true
	}
	if c.email != "" {
		s.Email, changed = c.email, true
	}
	if c.income != "" {
		income, err := hesabna.ParseAmount(c.income)
		if err != nil {
			return fail(err)
		}
		s.MonthlyIncome, changed = income, true
	}
	if c.theme != "" {
		s.Theme, changed = c.theme, true
	}
	if c.autoLock > 0 {
		s.AutoLockMinutes, changed = c.autoLock, true
	}
	if changed {
		if err := ledger.SaveSettings(s); err != nil {
			return fail(err)
		}
	}
	printMarkdown(renderer.SettingsMarkdown(s))
	return subcommands.ExitSuccess
}

type wipeCmd struct {
	force bool
}

func (*wipeCmd) Name() string     { return "wipe" }
func (*wipeCmd) Synopsis() string { return "erase all data" }
func (*wipeCmd) Usage() string {
	return `hsb wipe -force

  Erases every transaction, category, goal, budget, debt, subscription,
  the settings and the password. There is no undo.
`
}
func (c *wipeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Required confirmation.")
}

func (c *wipeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.force {
		return fail(fmt.Errorf("wipe erases everything, pass -force to confirm"))
	}
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	if err := ledger.Wipe(); err != nil {
		return fail(err)
	}
	fmt.Println("All data erased.")
	return subcommands.ExitSuccess
}
