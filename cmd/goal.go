package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/renderer"
)

type goalsCmd struct{}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "list savings goals" }
func (*goalsCmd) Usage() string {
	return `hsb goals

  Lists savings goals with their progress.
`
}
func (*goalsCmd) SetFlags(*flag.FlagSet) {}

func (*goalsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.GoalsMarkdown(ledger.Goals()))
	return subcommands.ExitSuccess
}

type addGoalCmd struct {
	name      string
	target    string
	emergency bool
}

func (*addGoalCmd) Name() string     { return "add-goal" }
func (*addGoalCmd) Synopsis() string { return "create a savings goal" }
func (*addGoalCmd) Usage() string {
	return `hsb add-goal -n <name> -a <target> [-emergency]

  Creates a goal starting at zero. At most one goal is the emergency fund;
  flagging a new one clears the flag elsewhere.
`
}
func (c *addGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "The goal name.")
	f.StringVar(&c.target, "a", "", "The target amount.")
	f.BoolVar(&c.emergency, "emergency", false, "Mark as the emergency fund.")
}

func (c *addGoalCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	target, err := hesabna.ParseAmount(c.target)
	if err != nil {
		return fail(err)
	}
	g, err := ledger.AddGoal(c.name, target, c.emergency)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Created goal %q (%s)\n", g.Name, g.ID)
	return subcommands.ExitSuccess
}

type editGoalCmd struct {
	id        string
	name      string
	target    string
	emergency string
}

func (*editGoalCmd) Name() string     { return "edit-goal" }
func (*editGoalCmd) Synopsis() string { return "edit a goal" }
func (*editGoalCmd) Usage() string {
	return `hsb edit-goal -id <id> [-n <name>] [-a <target>] [-emergency <true|false>]

  Edits the given fields of a goal. The saved amount only moves through
  fund-goal.
`
}
func (c *editGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The goal id (see goals).")
	f.StringVar(&c.name, "n", "", "The new name.")
	f.StringVar(&c.target, "a", "", "The new target amount.")
	f.StringVar(&c.emergency, "emergency", "", "Set or clear the emergency fund flag (true or false).")
}

func (c *editGoalCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	g, ok := ledger.Goal(c.id)
	if !ok {
		return fail(fmt.Errorf("no goal with id %q", c.id))
	}
	if c.name != "" {
		g.Name = c.name
	}
	if c.target != "" {
		if g.TargetAmount, err = hesabna.ParseAmount(c.target); err != nil {
			return fail(err)
		}
	}
	if c.emergency != "" {
		if g.IsEmergencyFund, err = strconv.ParseBool(c.emergency); err != nil {
			return fail(err)
		}
	}
	if err := ledger.UpdateGoal(g); err != nil {
		return fail(err)
	}
	fmt.Println("Updated.")
	return subcommands.ExitSuccess
}

type fundGoalCmd struct {
	id     string
	amount string
}

func (*fundGoalCmd) Name() string     { return "fund-goal" }
func (*fundGoalCmd) Synopsis() string { return "move money into a goal" }
func (*fundGoalCmd) Usage() string {
	return `hsb fund-goal -id <id> -a <amount>

  Grows the goal and records a linked expense in the savings category, as
  one atomic step.
`
}
func (c *fundGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The goal id (see goals).")
	f.StringVar(&c.amount, "a", "", "The amount to add.")
}

func (c *fundGoalCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	amount, err := hesabna.ParseAmount(c.amount)
	if err != nil {
		return fail(err)
	}
	t, err := ledger.AddFundsToGoal(c.id, amount)
	if err != nil {
		return fail(err)
	}
	fmt.Println(renderer.TransactionLine(t))
	return subcommands.ExitSuccess
}

type rmGoalCmd struct {
	id string
}

func (*rmGoalCmd) Name() string     { return "rm-goal" }
func (*rmGoalCmd) Synopsis() string { return "delete a goal" }
func (*rmGoalCmd) Usage() string {
	return `hsb rm-goal -id <id>

  Deletes a goal. Its funding transactions stay in the history.
`
}
func (c *rmGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "The goal id (see goals).")
}

func (c *rmGoalCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		return fail(err)
	}
	if err := ledger.DeleteGoal(c.id); err != nil {
		return fail(err)
	}
	fmt.Println("Deleted.")
	return subcommands.ExitSuccess
}
