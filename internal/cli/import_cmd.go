package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/pulse/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var errImportCancelled = errors.New("import cancelled")

func newImportCmd(app *App) *cobra.Command {
	var replace, yes bool

	cmd := &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Validate and store a JSON snapshot of raw records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if replace && !yes && app.interactive() {
				ok, err := app.confirm(
					"Replace stored snapshot?",
					fmt.Sprintf("Every stored record is deleted before %s is imported.", path),
				)
				if err != nil {
					return err
				}
				if !ok {
					return errImportCancelled
				}
			}

			res, err := app.Import.ImportFile(cmd.Context(), path, replace)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), res, func() string { return formatter.FormatImportResult(path, res) })
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Delete all stored records before importing")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the replace confirmation")
	return cmd
}

func (a *App) confirm(title, description string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title, description)
	}
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Replace").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(pulseHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
