package profiles

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/validation"
)

type ProfileCreateCmd struct {
	Username string `arg:"" help:"Profile username (case-insensitive)."`
}

func (c *ProfileCreateCmd) Run(ctx *cli.Context) error {
	if err := validation.ValidateUsername(c.Username); err != nil {
		return err
	}

	p, err := ctx.Profiles().Create(c.Username)
	if err != nil {
		return err
	}

	fmt.Printf("Created profile: %s\n", p.Username)
	fmt.Printf("Switch to it with: ritual profile switch %s\n", p.Username)
	return nil
}

type ProfileListCmd struct{}

func (c *ProfileListCmd) Run(ctx *cli.Context) error {
	reg := ctx.Profiles()

	profiles, err := reg.List()
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles found. Create one with: ritual profile create <username>")
		return nil
	}

	active, ok, err := reg.Active()
	if err != nil {
		return err
	}

	for _, p := range profiles {
		marker := " "
		if ok && p.ID == active.ID {
			marker = "*"
		}
		fmt.Printf("%s %s  (created %s)\n", marker, p.Username, p.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

type ProfileSwitchCmd struct {
	Username string `arg:"" help:"Profile to switch to."`
}

func (c *ProfileSwitchCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profiles().Switch(c.Username)
	if err != nil {
		return err
	}

	fmt.Printf("Switched to profile: %s\n", p.Username)
	return nil
}

type ProfileCurrentCmd struct{}

func (c *ProfileCurrentCmd) Run(ctx *cli.Context) error {
	active, ok, err := ctx.Profiles().Active()
	if err != nil {
		return err
	}

	if !ok {
		fmt.Println("No active profile. Switch to one with: ritual profile switch <username>")
		return nil
	}

	fmt.Printf("Active profile: %s\n", active.Username)
	return nil
}

type ProfileDeleteCmd struct {
	Username string `arg:"" help:"Profile to delete."`
	Yes      bool   `short:"y" help:"Skip confirmation prompt."`
}

func (c *ProfileDeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete profile %q?", c.Username)).
			Description("All habits, completions, and XP for this profile will be removed.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Profiles().Delete(c.Username); err != nil {
		return err
	}

	fmt.Printf("Deleted profile: %s\n", c.Username)
	return nil
}
