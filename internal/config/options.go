package config

import (
	"fmt"
	"slices"
	"strconv"
)

// Kind says how an option is written on the git command line
type Kind int

const (
	// Flag is a boolean option rendered as --name
	Flag Kind = iota
	// Value is a free-form option rendered as --name=value
	Value
	// Choice is a Value restricted to Choices
	Choice
)

// Option is one command line option of a gitcat command
type Option struct {
	Name    string
	Short   string
	Kind    Kind
	Default string
	Usage   string
	Choices []string
	// Toggle options change gitcat's own behaviour and are never passed to git
	Toggle bool
}

// Fragments renders value as git arguments
func (o Option) Fragments(value string) []string {
	if o.Toggle {
		return nil
	}
	switch o.Kind {
	case Flag:
		if on, _ := strconv.ParseBool(value); on {
			return []string{"--" + o.Name}
		}
	case Value, Choice:
		if value != "" {
			return []string{"--" + o.Name + "=" + value}
		}
	}
	return nil
}

// Check reports whether value is acceptable for o
func (o Option) Check(value string) error {
	switch o.Kind {
	case Flag:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("option %s expects true or false, got %q", o.Name, value)
		}
	case Choice:
		if !slices.Contains(o.Choices, value) {
			return fmt.Errorf("option %s must be one of %v, got %q", o.Name, o.Choices, value)
		}
	}
	return nil
}

// Command describes a gitcat subcommand
type Command struct {
	Name  string
	Short string
	Long  string
	// Directory commands take an optional directory instead of a filter
	Directory bool
	Options   []Option
}

// Option returns the option called name
func (c Command) Option(name string) (Option, bool) {
	for _, o := range c.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// ReservedShorts are the short flags taken by global options and cobra
var ReservedShorts = []string{"c", "p", "q", "n", "h", "v"}

// Commands is the full command vocabulary, in help order
var Commands = []Command{
	{
		Name:  "add",
		Short: "Add a repository to the catalogue",
		Long: `Add the repository in the given directory, or the current directory, to
the catalogue. The directory must be a git working copy with an origin
remote, and must not be catalogued already.`,
		Directory: true,
	},
	{
		Name:  "branch",
		Short: "List branches of the catalogued repositories",
		Long:  "Run git branch --verbose in the selected repositories.",
		Options: []Option{
			{Name: "all", Short: "a", Kind: Flag, Usage: "list both remote-tracking and local branches"},
			{Name: "remotes", Short: "r", Kind: Flag, Usage: "list the remote-tracking branches"},
		},
	},
	{
		Name:  "commit",
		Short: "Commit changed repositories",
		Long: `Commit every selected repository with local changes. The commit message
lists the files that changed.`,
	},
	{
		Name:  "diff",
		Short: "Show uncommitted changes",
		Long:  "Run git diff against HEAD in the selected repositories.",
		Options: []Option{
			{Name: "stat", Kind: Flag, Usage: "generate a diffstat"},
			{Name: "shortstat", Kind: Flag, Usage: "output only the last line of the diffstat"},
			{Name: "numstat", Kind: Flag, Usage: "show numbers of added and deleted lines"},
			{Name: "name-only", Kind: Flag, Usage: "show only names of changed files"},
		},
	},
	{
		Name:  "fetch",
		Short: "Fetch the catalogued repositories",
		Long:  "Download objects and refs for every installed repository.",
		Options: []Option{
			{Name: "all", Kind: Flag, Usage: "fetch all remotes"},
			{Name: "prune", Kind: Flag, Usage: "remove remote-tracking references that no longer exist"},
			{Name: "tags", Kind: Flag, Usage: "fetch all tags"},
		},
	},
	{
		Name:  "install",
		Short: "Install missing repositories",
		Long: `Clone every selected repository that is not on this computer. A directory
that exists but is not a git repository is initialised and fetched.`,
	},
	{
		Name:  "list",
		Short: "List the catalogue",
		Long: `List the catalogued repositories with their remotes. Installed repositories
are marked with = and missing ones with !.`,
		Options: []Option{
			{Name: "table", Short: "t", Kind: Flag, Toggle: true, Usage: "print a table"},
		},
	},
	{
		Name:  "pull",
		Short: "Pull the installed repositories",
		Long:  "Update every installed repository from its remote.",
		Options: []Option{
			{Name: "ff-only", Short: "f", Kind: Flag, Usage: "only fast-forward"},
			{Name: "rebase", Short: "r", Kind: Flag, Usage: "rebase instead of merging"},
			{Name: "stat", Kind: Flag, Usage: "show a diffstat at the end of the merge"},
			{Name: "strategy", Short: "s", Kind: Value, Usage: "merge strategy to use"},
		},
	},
	{
		Name:  "push",
		Short: "Commit and push the installed repositories",
		Long: `Commit any repository with local changes and push it to its remote.
Repositories that are up to date are left alone.`,
		Options: []Option{
			{Name: "tags", Short: "t", Kind: Flag, Usage: "push all tags"},
			{Name: "force-with-lease", Kind: Flag, Usage: "force the push unless the remote changed"},
		},
	},
	{
		Name:      "remove",
		Short:     "Remove a repository from the catalogue",
		Long:      "Remove the repository in the given directory, or the current directory, from the catalogue.",
		Directory: true,
		Options: []Option{
			{Name: "everything", Short: "e", Kind: Flag, Toggle: true, Usage: "also delete the working directory"},
		},
	},
	{
		Name:  "status",
		Short: "Summarise the state of the repositories",
		Long: `Summarise each installed repository: uncommitted changes and whether it is
ahead of or behind its remote.`,
		Options: []Option{
			{Name: "local", Short: "l", Kind: Flag, Toggle: true, Usage: "do not query the remotes"},
			{Name: "untracked-files", Short: "u", Kind: Choice, Default: "no", Choices: []string{"no", "normal", "all"}, Usage: "show untracked files"},
		},
	},
}

// Lookup returns the command called name
func Lookup(name string) (Command, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// ValidateTable checks the option table: unique command names, unique option
// names and shorts per command, no clash with the reserved shorts, and
// defaults acceptable to their option.
func ValidateTable() error {
	commands := make(map[string]bool)
	for _, c := range Commands {
		if c.Name == "" {
			return fmt.Errorf("command without a name")
		}
		if commands[c.Name] {
			return fmt.Errorf("command %s defined twice", c.Name)
		}
		commands[c.Name] = true

		names := make(map[string]bool)
		shorts := make(map[string]bool)
		for _, s := range ReservedShorts {
			shorts[s] = true
		}
		for _, o := range c.Options {
			if names[o.Name] {
				return fmt.Errorf("%s: option %s defined twice", c.Name, o.Name)
			}
			names[o.Name] = true
			if o.Short != "" {
				if len(o.Short) != 1 {
					return fmt.Errorf("%s: short option %q for %s must be one letter", c.Name, o.Short, o.Name)
				}
				if shorts[o.Short] {
					return fmt.Errorf("%s: short option -%s for %s is already taken", c.Name, o.Short, o.Name)
				}
				shorts[o.Short] = true
			}
			if o.Kind == Choice && len(o.Choices) == 0 {
				return fmt.Errorf("%s: option %s has no choices", c.Name, o.Name)
			}
			if o.Default != "" {
				if err := o.Check(o.Default); err != nil {
					return fmt.Errorf("%s: default: %w", c.Name, err)
				}
			}
		}
	}
	return nil
}
