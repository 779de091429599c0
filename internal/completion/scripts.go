// Package completion generates shell completion scripts for lazycommit.
// All three shells are rendered from the flag table in metadata.go, so a
// new flag only needs one edit there.
package completion

import (
	"fmt"
	"strings"
)

// subcommands lists the completable subcommand names.
var subcommands = []string{"completion"}

// Bash returns a bash completion script for the given program name.
// Installed with: source <(prog completion bash)
func Bash(prog string) string {
	fn := "_" + strings.ReplaceAll(prog, "-", "_")

	var b strings.Builder
	fmt.Fprintf(&b, "# bash completion for %s\n", prog)
	fmt.Fprintf(&b, "# Install: source <(%s completion bash)\n\n", prog)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")

	b.WriteString("    case \"${prev}\" in\n")
	for _, f := range GetFlags() {
		if !f.HasValue {
			continue
		}
		pattern := "--" + f.Name
		if f.Alias != "" {
			pattern += "|-" + f.Alias
		}
		fmt.Fprintf(&b, "        %s)\n", pattern)
		switch {
		case len(f.Values) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(f.Values, " "))
		case f.ValueHint == "FILE":
			b.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
		case f.ValueHint == "DIR":
			b.WriteString("            COMPREPLY=( $(compgen -d -- \"${cur}\") )\n")
		default:
			// Free-form value, nothing sensible to suggest.
			b.WriteString("            COMPREPLY=()\n")
		}
		b.WriteString("            return 0\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n\n")

	fmt.Fprintf(&b, "    if [[ ${COMP_CWORD} -eq 1 && ${cur} != -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(subcommands, " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")

	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(flagWords(), " "))
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, prog)
	return b.String()
}

// Zsh returns a zsh completion script for the given program name.
// Installed by writing it to a file named _prog somewhere on $fpath.
func Zsh(prog string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n", prog)
	fmt.Fprintf(&b, "# zsh completion for %s\n", prog)
	fmt.Fprintf(&b, "# Install: %s completion zsh > \"${fpath[1]}/_%s\"\n\n", prog, prog)
	fmt.Fprintf(&b, "_%s() {\n", strings.ReplaceAll(prog, "-", "_"))
	b.WriteString("    _arguments -s \\\n")
	for _, f := range GetFlags() {
		fmt.Fprintf(&b, "        %s \\\n", zshSpec(f))
	}
	fmt.Fprintf(&b, "        '1:command:(%s)'\n", strings.Join(subcommands, " "))
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "_%s \"$@\"\n", strings.ReplaceAll(prog, "-", "_"))
	return b.String()
}

// Fish returns a fish completion script for the given program name.
// Installed by writing it to ~/.config/fish/completions/prog.fish.
func Fish(prog string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# fish completion for %s\n", prog)
	fmt.Fprintf(&b, "# Install: %s completion fish > ~/.config/fish/completions/%s.fish\n\n", prog, prog)
	fmt.Fprintf(&b, "complete -c %s -f\n", prog)
	for _, sub := range subcommands {
		fmt.Fprintf(&b, "complete -c %s -n __fish_use_subcommand -a %s -d 'Generate shell completion scripts'\n", prog, sub)
	}
	for _, f := range GetFlags() {
		b.WriteString(fishSpec(prog, f))
		b.WriteByte('\n')
	}
	return b.String()
}

// flagWords returns every flag spelling, long and short, for the bash
// fallback word list.
func flagWords() []string {
	var words []string
	for _, f := range GetFlags() {
		words = append(words, "--"+f.Name)
		if f.Alias != "" {
			words = append(words, "-"+f.Alias)
		}
	}
	return words
}

// zshSpec renders one _arguments spec line for a flag.
func zshSpec(f FlagInfo) string {
	long := "--" + f.Name
	var spec string
	if f.Alias != "" {
		spec = fmt.Sprintf("'(-%s %s)'{-%s,%s}'[%s]", f.Alias, long, f.Alias, long, f.Description)
	} else {
		spec = fmt.Sprintf("'%s[%s]", long, f.Description)
	}
	if f.HasValue {
		switch {
		case len(f.Values) > 0:
			spec += fmt.Sprintf(":%s:(%s)", f.ValueHint, strings.Join(f.Values, " "))
		case f.ValueHint == "FILE":
			spec += fmt.Sprintf(":%s:_files", f.ValueHint)
		case f.ValueHint == "DIR":
			spec += fmt.Sprintf(":%s:_files -/", f.ValueHint)
		default:
			spec += fmt.Sprintf(":%s:", f.ValueHint)
		}
	}
	return spec + "'"
}

// fishSpec renders one complete(1) invocation for a flag.
func fishSpec(prog string, f FlagInfo) string {
	parts := []string{"complete", "-c", prog}
	if f.Alias != "" {
		parts = append(parts, "-s", f.Alias)
	}
	parts = append(parts, "-l", f.Name)
	if f.HasValue {
		switch {
		case len(f.Values) > 0:
			parts = append(parts, "-x", "-a", "'"+strings.Join(f.Values, " ")+"'")
		case f.ValueHint == "FILE":
			parts = append(parts, "-r", "-F")
		case f.ValueHint == "DIR":
			parts = append(parts, "-x", "-a", "\"(__fish_complete_directories)\"")
		default:
			parts = append(parts, "-r")
		}
	}
	parts = append(parts, "-d", "'"+f.Description+"'")
	return strings.Join(parts, " ")
}
