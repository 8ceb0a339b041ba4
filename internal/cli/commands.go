package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/compras/internal/model"
	"github.com/idilsaglam/compras/internal/shopping"
	"github.com/idilsaglam/compras/internal/ui"
)

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

type notFoundError struct{ id int64 }

func (e *notFoundError) Error() string { return fmt.Sprintf("no item with id %d", e.id) }

// usageArgs turns cobra's argument errors into usage errors (exit code 2).
func usageArgs(check cobra.PositionalArgs, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{msg: usage}
		}
		return nil
	}
}

func parseID(cmdName, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, &usageError{msg: cmdName + ": not an id: " + s}
	}
	return id, nil
}

func newUICommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list (default)",
		Args:  usageArgs(cobra.NoArgs, "usage: compras ui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), e)
		},
	}
}

func newListCommand(e *env, opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List items, pending first",
		Args:  usageArgs(cobra.NoArgs, "usage: compras ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := e.svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			printLists(cmd.OutOrStdout(), lists, opts.Group)
			return nil
		},
	}
}

func newAddCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a pending item (description can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1), "usage: compras add <description...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.svc.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				if shopping.IsValidationError(err) {
					return &usageError{msg: "add: " + err.Error()}
				}
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d", res.ID))
			return nil
		},
	}
}

func newDoneCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle done for the item with id",
		Args:  usageArgs(cobra.ExactArgs(1), "usage: compras done <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("done", args[0])
			if err != nil {
				return err
			}
			it, ok, err := e.svc.Find(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return &notFoundError{id: id}
			}
			res, err := e.svc.Toggle(cmd.Context(), it)
			if err != nil {
				return err
			}
			if !res.Found {
				return &notFoundError{id: id}
			}
			state := "pending"
			if !it.Done {
				state = "done"
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("#%d %s", id, state))
			return nil
		},
	}
}

func newRemoveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove the item with id",
		Args:  usageArgs(cobra.ExactArgs(1), "usage: compras rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			res, err := e.svc.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !res.Found {
				return &notFoundError{id: id}
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed #%d", id))
			return nil
		},
	}
}

// -------------- rendering helpers --------------

func printLists(w io.Writer, lists shopping.Lists, group bool) {
	t := ui.Current()
	done, pending := len(lists.Done), len(lists.Pending)

	lines := []string{
		ui.Header("Compras", done, pending),
		t.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
	}
	if group {
		lines = append(lines, t.Accent.Render("Pendientes"))
		lines = append(lines, itemLines(lists.Pending)...)
		lines = append(lines, "", t.Accent.Render("Comprados"))
		lines = append(lines, itemLines(lists.Done)...)
	} else {
		lines = append(lines, itemLines(lists.All())...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `compras add \"Leche\"`"))
	ui.Panel(w, lines)
}

func itemLines(items []model.PurchaseItem) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("(none)")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		text := it.Description
		if r := []rune(text); len(r) > 80 {
			text = string(r[:77]) + "..."
		}
		icon := t.Pending.Render(t.Cart)
		if it.Done {
			icon = t.Success.Render(t.BoxChecked)
			text = t.Done.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%3d.", it.ID)), icon, text))
	}
	return out
}
