package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/wizzomafizzo/flatlint/internal/plugin"
	"github.com/wizzomafizzo/flatlint/internal/resolver"
	"github.com/wizzomafizzo/flatlint/internal/severity"
)

// FormatResults renders one entry per result for terminal output.
func FormatResults(results []resolver.Result, colorize bool) string {
	var output strings.Builder

	for i := range results {
		result := &results[i]
		switch {
		case result.Excluded:
			_, _ = fmt.Fprintf(&output, "%s: %s (%s)\n", result.Path, paint(colorize, color.FgHiBlack, "excluded"), result.IgnoredBy)
		case !result.Matched:
			_, _ = fmt.Fprintf(&output, "%s: no matching block\n", result.Path)
		default:
			_, _ = fmt.Fprintf(&output, "%s [%s]\n", result.Path, result.Block)
			if result.Parser != nil {
				_, _ = fmt.Fprintf(&output, "  parser: %s\n", handleLabel(result.Parser))
			}
			if len(result.Plugins) > 0 {
				_, _ = fmt.Fprintf(&output, "  plugins: %s\n", pluginList(result.Plugins))
			}
			for _, name := range result.RuleNames() {
				_, _ = fmt.Fprintf(&output, "  %s: %s\n", name, paintSeverity(colorize, result.Rules[name]))
			}
		}
	}

	return output.String()
}

// EnabledOnly drops rules that resolved to off.
func EnabledOnly(results []resolver.Result) []resolver.Result {
	filtered := make([]resolver.Result, len(results))
	for i := range results {
		filtered[i] = results[i]
		filtered[i].Rules = results[i].EnabledRules()
	}
	return filtered
}

func pluginList(plugins map[string]plugin.Handle) string {
	names := make([]string, 0, len(plugins))
	for name := range plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]string, len(names))
	for i, name := range names {
		entries[i] = name + "=" + handleLabel(plugins[name])
	}
	return strings.Join(entries, ", ")
}

func handleLabel(h plugin.Handle) string {
	if plugin.IsResolved(h) {
		return h.Name()
	}
	return h.Name() + " (unresolved)"
}

// FormatResultsJSON renders results as indented JSON.
func FormatResultsJSON(results []resolver.Result) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}
	return string(data) + "\n", nil
}

// FormatBlocks renders the ignore set followed by each block's rules.
func FormatBlocks(ignores []string, blocks []resolver.BlockSummary, colorize bool) string {
	var output strings.Builder

	if len(ignores) > 0 {
		_, _ = fmt.Fprintf(&output, "Ignored: %s\n\n", strings.Join(ignores, ", "))
	}

	if len(blocks) == 0 {
		_, _ = fmt.Fprintln(&output, "No file blocks found in config")
		return output.String()
	}

	// Calculate padding width based on total number of blocks
	indexWidth := len(fmt.Sprintf("%d", len(blocks)))
	indent := strings.Repeat(" ", indexWidth+3)

	for i := range blocks {
		block := &blocks[i]
		_, _ = fmt.Fprintf(&output, "[%0*d] %s\n", indexWidth, i+1, block.Label)
		_, _ = fmt.Fprintf(&output, "%sFiles: %s\n", indent, strings.Join(block.Files, ", "))
		if len(block.Ignores) > 0 {
			_, _ = fmt.Fprintf(&output, "%sIgnores: %s\n", indent, strings.Join(block.Ignores, ", "))
		}
		conditional := make(map[string]bool, len(block.Conditional))
		for _, name := range block.Conditional {
			conditional[name] = true
		}
		writeRules(&output, indent, block.Rules, conditional, colorize)
		_, _ = fmt.Fprintln(&output)
	}

	return output.String()
}

func writeRules(
	output *strings.Builder, indent string, rules map[string]severity.Severity, conditional map[string]bool, colorize bool,
) {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		suffix := ""
		if conditional[name] {
			suffix = " (environment)"
		}
		_, _ = fmt.Fprintf(output, "%s%s: %s%s\n", indent, name, paintSeverity(colorize, rules[name]), suffix)
	}
}

func paintSeverity(colorize bool, sev severity.Severity) string {
	switch sev {
	case severity.Error:
		return paint(colorize, color.FgRed, sev.String())
	case severity.Warn:
		return paint(colorize, color.FgYellow, sev.String())
	default:
		return paint(colorize, color.FgHiBlack, sev.String())
	}
}

func paint(colorize bool, attr color.Attribute, text string) string {
	if !colorize {
		return text
	}
	return color.New(attr).Sprint(text)
}
