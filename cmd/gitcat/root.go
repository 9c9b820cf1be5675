package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/NicabarNimble/go-gitcat/internal/catalogue"
	"github.com/NicabarNimble/go-gitcat/internal/config"
)

// globalOptions are the flags shared by every command
type globalOptions struct {
	catalogue string
	prefix    string
	quiet     bool
	dryRun    bool
	debug     bool
	logLevel  string

	home string
	file *config.FileConfig
	log  *logrus.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{logLevel: "warn"}

	cmd := &cobra.Command{
		Use:   "gitcat",
		Short: "Keep a catalogue of git repositories in sync",
		Long: `gitcat runs the same git command over every repository in a catalogue of
local directories and their remotes: install the missing ones, pull, commit
and push the rest, or summarise their status.

The catalogue defaults to ~/.dotfiles/config/gitcatrc when ~/.dotfiles/config
exists, and ~/.gitcatrc otherwise. Defaults for the global flags and for
command options can be set in ~/.config/gitcat/config.yaml, or the file named
by GITCAT_CONFIG.`,
		Example: `  gitcat install
  gitcat status Code
  gitcat --dry-run push
  gitcat pull --ff-only 'Prog[12]'`,
		Version:           version,
		PersistentPreRunE: opts.setup(stderr),
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.catalogue, "catalogue", "c", "", "catalogue of git repositories (default ~/.gitcatrc)")
	flags.StringVarP(&opts.prefix, "prefix", "p", "", "prefix directory containing the repositories (default $HOME)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only print messages when a repository changes")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "report what would happen without changing anything")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.debug, "debug", false, "log every git invocation")
	flags.MarkHidden("debug")

	for _, def := range config.Commands {
		cmd.AddCommand(newRepositoryCmd(def, opts, stdout))
	}

	return cmd
}

// setup configures logging and reads the configuration file
func (o *globalOptions) setup(stderr io.Writer) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		level, err := logrus.ParseLevel(strings.ToLower(o.logLevel))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
		}
		if o.debug {
			level = logrus.DebugLevel
		}

		o.log = logrus.New()
		o.log.SetLevel(level)
		o.log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
			PadLevelText:    true,
		})
		o.log.SetOutput(stderr)

		o.home, err = os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}

		path := config.ConfigPath(o.home)
		o.file, err = config.LoadConfig(path)
		if err != nil {
			return err
		}
		o.log.WithField("path", path).Debug("configuration loaded")
		return nil
	}
}

// load reads the catalogue and builds the settings of this run. A missing
// catalogue is empty when allowMissing is set.
func (o *globalOptions) load(allowMissing bool) (config.Settings, *catalogue.Catalogue, error) {
	path := o.catalogue
	if path == "" {
		path = o.file.Catalogue
	}
	if path == "" {
		path = config.DefaultCataloguePath(o.home)
	}
	path = config.ExpandHome(path, o.home)

	cat, err := catalogue.Load(path)
	if err != nil {
		if !allowMissing || !stderrors.Is(err, fs.ErrNotExist) {
			return config.Settings{}, nil, err
		}
		o.log.WithField("path", path).Debug("starting a new catalogue")
		cat = catalogue.New()
	}

	prefix := o.home
	for _, p := range []string{o.prefix, cat.Prefix, o.file.Prefix} {
		if p != "" {
			prefix = p
			break
		}
	}

	settings := config.NewSettings(config.ExpandHome(prefix, o.home), path)
	settings.Quiet = o.quiet || o.file.Quiet
	settings.DryRun = o.dryRun || o.file.DryRun
	settings.Debug = o.debug

	o.log.WithFields(logrus.Fields{
		"catalogue":    settings.CataloguePath,
		"prefix":       settings.Prefix,
		"repositories": cat.Len(),
		"dry_run":      settings.DryRun,
	}).Debug("catalogue loaded")
	return settings, cat, nil
}
