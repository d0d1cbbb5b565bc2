package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.pdf")
	Subcommands []string
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"format": {Values: []string{"md", "txt"}},
	"math":   {Values: []string{"mathjax", "mathml", "off"}},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},
	"style":  {FileGlob: "*.css"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// buildConvertFlagSet creates a FlagSet with all convert command flags.
// This reuses the same flag registration as parseConvertFlags.
func buildConvertFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addOCRFlags(fs, &f.ocr)
	addRenderFlags(fs, &f.render)
	addOutputFlags(fs, &f.out)

	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	convertFlags := extractFlagsFromFlagSet(buildConvertFlagSet())

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert PDF documents to Markdown",
			Flags:       convertFlags,
			TakesFiles:  true,
			FilePattern: "*.pdf",
		},
		{
			Name:        "auth",
			Desc:        "Manage the stored API key",
			Subcommands: []string{"set", "show", "path"},
		},
		{
			Name: "doctor",
			Desc: "Check environment readiness",
			Flags: []flagDef{
				{Long: "json", Type: flagBool, Desc: "output JSON"},
			},
		},
		{
			Name:        "completion",
			Desc:        "Generate shell completion script",
			Subcommands: []string{"bash", "zsh", "fish", "powershell"},
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdf2md completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(pdf2md completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(pdf2md completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    pdf2md completion fish > ~/.config/fish/completions/pdf2md.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    pdf2md completion powershell | Out-String | Invoke-Expression")
}

// longFlagNames renders "--flag" tokens for a command's flags.
func longFlagNames(flags []flagDef) []string {
	names := make([]string, 0, len(flags))
	for _, f := range flags {
		names = append(names, "--"+f.Long)
	}
	return names
}

// generateBash writes a bash completion function.
func generateBash(w io.Writer) error {
	commands := getCommands()

	var names []string
	for _, c := range commands {
		names = append(names, c.Name)
	}

	fmt.Fprintln(w, "# bash completion for pdf2md")
	fmt.Fprintln(w, "_pdf2md() {")
	fmt.Fprintln(w, "    local cur prev words cword")
	fmt.Fprintln(w, "    _get_comp_words_by_ref -n : cur prev words cword 2>/dev/null || {")
	fmt.Fprintln(w, "        cur=${COMP_WORDS[COMP_CWORD]}")
	fmt.Fprintln(w, "        prev=${COMP_WORDS[COMP_CWORD-1]}")
	fmt.Fprintln(w, "        words=(\"${COMP_WORDS[@]}\")")
	fmt.Fprintln(w, "        cword=$COMP_CWORD")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ $cword -eq 1 ]]; then")
	fmt.Fprintf(w, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    local cmd=${words[1]}")
	fmt.Fprintln(w, "    case $cmd in")

	for _, c := range commands {
		fmt.Fprintf(w, "    %s)\n", c.Name)

		// Value completion for the preceding flag
		var enumCases []string
		for _, f := range c.Flags {
			if f.Type == flagEnum {
				enumCases = append(enumCases,
					fmt.Sprintf("        --%s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;",
						f.Long, strings.Join(f.Values, " ")))
			}
		}
		if len(enumCases) > 0 {
			fmt.Fprintln(w, "        case $prev in")
			for _, line := range enumCases {
				fmt.Fprintln(w, line)
			}
			fmt.Fprintln(w, "        esac")
		}

		if len(c.Subcommands) > 0 {
			fmt.Fprintf(w, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(c.Subcommands, " "))
			fmt.Fprintln(w, "        return ;;")
			continue
		}

		flagWords := strings.Join(longFlagNames(c.Flags), " ")
		fmt.Fprintln(w, "        if [[ $cur == -* ]]; then")
		fmt.Fprintf(w, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", flagWords)
		if c.TakesFiles {
			fmt.Fprintln(w, "        else")
			fmt.Fprintf(w, "            COMPREPLY=($(compgen -f -X '!%s' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", c.FilePattern)
		}
		fmt.Fprintln(w, "        fi")
		fmt.Fprintln(w, "        return ;;")
	}

	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _pdf2md pdf2md")
	return nil
}

// generateZsh writes a zsh completion function.
func generateZsh(w io.Writer) error {
	commands := getCommands()

	fmt.Fprintln(w, "#compdef pdf2md")
	fmt.Fprintln(w, "# zsh completion for pdf2md")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_pdf2md() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range commands {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, strings.ReplaceAll(c.Desc, "'", ""))
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case $words[2] in")

	for _, c := range commands {
		fmt.Fprintf(w, "    %s)\n", c.Name)

		if len(c.Subcommands) > 0 {
			fmt.Fprintf(w, "        _values 'subcommand' %s\n", strings.Join(c.Subcommands, " "))
			fmt.Fprintln(w, "        ;;")
			continue
		}

		fmt.Fprintln(w, "        _arguments \\")
		for _, f := range c.Flags {
			spec := zshFlagSpec(f)
			fmt.Fprintf(w, "            %s \\\n", spec)
		}
		if c.TakesFiles {
			fmt.Fprintf(w, "            '*:file:_files -g %q'\n", c.FilePattern)
		} else {
			fmt.Fprintln(w, "            ;")
		}
		fmt.Fprintln(w, "        ;;")
	}

	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "compdef _pdf2md pdf2md")
	return nil
}

// zshFlagSpec renders one _arguments spec for a flag.
func zshFlagSpec(f flagDef) string {
	desc := strings.ReplaceAll(f.Desc, "'", "")
	name := "--" + f.Long
	if f.Short != "" {
		name = fmt.Sprintf("(-%s --%s)'{-%s,--%s}'", f.Short, f.Long, f.Short, f.Long)
	}

	switch f.Type {
	case flagBool:
		return fmt.Sprintf("'%s[%s]'", name, desc)
	case flagEnum:
		return fmt.Sprintf("'%s[%s]:value:(%s)'", name, desc, strings.Join(f.Values, " "))
	case flagFile:
		return fmt.Sprintf("'%s[%s]:file:_files -g %q'", name, desc, f.FileGlob)
	case flagDir:
		return fmt.Sprintf("'%s[%s]:directory:_directories'", name, desc)
	default:
		return fmt.Sprintf("'%s[%s]:value:'", name, desc)
	}
}

// generateFish writes fish completion commands.
func generateFish(w io.Writer) error {
	commands := getCommands()

	fmt.Fprintln(w, "# fish completion for pdf2md")
	fmt.Fprintln(w, "complete -c pdf2md -f")
	fmt.Fprintln(w)

	for _, c := range commands {
		fmt.Fprintf(w, "complete -c pdf2md -n '__fish_use_subcommand' -a %s -d %q\n", c.Name, c.Desc)
	}
	fmt.Fprintln(w)

	for _, c := range commands {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", c.Name)

		for _, sub := range c.Subcommands {
			fmt.Fprintf(w, "complete -c pdf2md -n '%s' -a %s\n", cond, sub)
		}

		for _, f := range c.Flags {
			var b strings.Builder
			fmt.Fprintf(&b, "complete -c pdf2md -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagBool:
				// no argument
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, " -r")
			case flagDir:
				fmt.Fprintf(&b, " -x -a '(__fish_complete_directories)'")
			default:
				fmt.Fprintf(&b, " -r")
			}
			fmt.Fprintf(&b, " -d %q", f.Desc)
			fmt.Fprintln(w, b.String())
		}

		if c.TakesFiles {
			fmt.Fprintf(w, "complete -c pdf2md -n '%s' -k -a '(__fish_complete_suffix .pdf)'\n", cond)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// generatePowerShell writes a PowerShell argument completer.
func generatePowerShell(w io.Writer) error {
	commands := getCommands()

	var names []string
	for _, c := range commands {
		names = append(names, "'"+c.Name+"'")
	}

	fmt.Fprintln(w, "# PowerShell completion for pdf2md")
	fmt.Fprintln(w, "Register-ArgumentCompleter -Native -CommandName pdf2md -ScriptBlock {")
	fmt.Fprintln(w, "    param($wordToComplete, $commandAst, $cursorPosition)")
	fmt.Fprintln(w, "    $tokens = $commandAst.CommandElements | ForEach-Object { $_.ToString() }")
	fmt.Fprintln(w, "    if ($tokens.Count -le 1 -or ($tokens.Count -eq 2 -and $wordToComplete)) {")
	fmt.Fprintf(w, "        @(%s) | Where-Object { $_ -like \"$wordToComplete*\" } |\n", strings.Join(names, ", "))
	fmt.Fprintln(w, "            ForEach-Object { [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_) }")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "    switch ($tokens[1]) {")

	for _, c := range commands {
		var items []string
		for _, sub := range c.Subcommands {
			items = append(items, "'"+sub+"'")
		}
		items = append(items, quoteAll(longFlagNames(c.Flags))...)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(w, "        '%s' {\n", c.Name)
		fmt.Fprintf(w, "            @(%s) | Where-Object { $_ -like \"$wordToComplete*\" } |\n", strings.Join(items, ", "))
		fmt.Fprintln(w, "                ForEach-Object { [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_) }")
		fmt.Fprintln(w, "        }")
	}

	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "}")
	return nil
}

// quoteAll wraps each string in single quotes.
func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "'" + s + "'"
	}
	return out
}
