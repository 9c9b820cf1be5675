package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NicabarNimble/go-gitcat/internal/config"
	"github.com/NicabarNimble/go-gitcat/internal/git"
	"github.com/NicabarNimble/go-gitcat/internal/syncer"
)

// toggles set gitcat behaviour instead of becoming git arguments
type toggles struct {
	local bool
}

// newRepositoryCmd builds the cobra command for one entry of the option table
func newRepositoryCmd(def config.Command, g *globalOptions, stdout io.Writer) *cobra.Command {
	use := def.Name + " [repositories]"
	if def.Directory {
		use = def.Name + " [directory]"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: def.Short,
		Long:  def.Long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, tog, err := requestFor(def, cmd, args, g.file)
			if err != nil {
				return err
			}

			settings, cat, err := g.load(def.Name == "add")
			if err != nil {
				return err
			}
			settings.Local = tog.local

			exec := git.NewCommandExecutor(g.log)
			return syncer.New(settings, cat, exec, stdout, g.log).Run(cmd.Context(), def.Name, req)
		},
	}

	for _, o := range def.Options {
		switch o.Kind {
		case config.Flag:
			cmd.Flags().BoolP(o.Name, o.Short, o.Default == "true", o.Usage)
		case config.Choice:
			cmd.Flags().StringP(o.Name, o.Short, o.Default, fmt.Sprintf("%s (%s)", o.Usage, strings.Join(o.Choices, ", ")))
		default:
			cmd.Flags().StringP(o.Name, o.Short, o.Default, o.Usage)
		}
	}

	return cmd
}

// requestFor turns the parsed flags and arguments of cmd into a request.
// Flags not given on the command line take their value from the
// configuration file when it has one.
func requestFor(def config.Command, cmd *cobra.Command, args []string, file *config.FileConfig) (syncer.Request, toggles, error) {
	var (
		req syncer.Request
		tog toggles
	)

	if len(args) > 0 {
		if def.Directory {
			req.Directory = args[0]
		} else {
			req.Filter = args[0]
		}
	}

	for _, o := range def.Options {
		flag := cmd.Flags().Lookup(o.Name)
		value := flag.Value.String()
		if !flag.Changed && file != nil {
			if v, ok := file.Default(def.Name, o.Name); ok {
				value = v
			}
		}
		if value != "" {
			if err := o.Check(value); err != nil {
				return req, tog, err
			}
		}

		if o.Toggle {
			on, _ := strconv.ParseBool(value)
			switch o.Name {
			case "local":
				tog.local = on
			case "table":
				req.Table = on
			case "everything":
				req.Everything = on
			}
			continue
		}
		req.GitArgs = append(req.GitArgs, o.Fragments(value)...)
	}

	return req, tog, nil
}
