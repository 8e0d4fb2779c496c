package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type initCmd struct {
	password string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "set the ledger password" }
func (*initCmd) Usage() string {
	return `hsb init -p <password>

  Protects the ledger with a password. Fails if one is already set; use
  passwd to change it.
`
}
func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "p", "", "The password to set.")
}

func (c *initCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	auth, err := openAuth()
	if err != nil {
		return fail(err)
	}
	if has, err := auth.HasSecret(); err != nil {
		return fail(err)
	} else if has {
		return fail(fmt.Errorf("a password is already set, use passwd to change it"))
	}
	if err := auth.SetSecret(c.password); err != nil {
		return fail(err)
	}
	fmt.Println("Password set.")
	return subcommands.ExitSuccess
}

type unlockCmd struct {
	password string
}

func (*unlockCmd) Name() string     { return "unlock" }
func (*unlockCmd) Synopsis() string { return "verify the ledger password" }
func (*unlockCmd) Usage() string {
	return `hsb unlock -p <password>

  Verifies the password against the stored digest. Exits non-zero on a
  mismatch, so scripts can gate on it.
`
}
func (c *unlockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "p", "", "The password to verify.")
}

func (c *unlockCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	auth, err := openAuth()
	if err != nil {
		return fail(err)
	}
	ok, err := auth.Verify(c.password)
	if err != nil {
		return fail(err)
	}
	if !ok {
		return fail(fmt.Errorf("wrong password"))
	}
	fmt.Println("Unlocked.")
	return subcommands.ExitSuccess
}

type passwdCmd struct {
	current string
	next    string
}

func (*passwdCmd) Name() string     { return "passwd" }
func (*passwdCmd) Synopsis() string { return "change the ledger password" }
func (*passwdCmd) Usage() string {
	return `hsb passwd -old <current> -new <next>

  Changes the password. The current one must verify first.
`
}
func (c *passwdCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.current, "old", "", "The current password.")
	f.StringVar(&c.next, "new", "", "The new password.")
}

func (c *passwdCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	auth, err := openAuth()
	if err != nil {
		return fail(err)
	}
	if err := auth.ChangeSecret(c.current, c.next); err != nil {
		return fail(err)
	}
	fmt.Println("Password changed.")
	return subcommands.ExitSuccess
}
