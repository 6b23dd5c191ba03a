package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/vendorjs/pkg/dependency"
	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/installer"
)

// stdout and stderr receive status output and the spinner.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// =============================================================================
// Palette & Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders the resolved descriptor heading.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleVersion renders resolved versions.
	StyleVersion = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink renders archive URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StylePath renders placed files and bundles.
	StylePath = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleCount renders dependency and file counts.
	StyleCount = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning renders skipped dependencies.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleBundle      = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconBundle  = "bundle"
)

// =============================================================================
// Status Lines
// =============================================================================

func printLine(icon lipgloss.Style, mark, msg string) {
	fmt.Fprintln(stdout, icon.Render(mark)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printLine(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printLine(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printLine(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a placed file relative to the working directory.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StylePath.Render(path))
}

// printBundle prints a written bundle.
func printBundle(path string) {
	fmt.Fprintln(stdout, "  "+styleBundle.Render(iconBundle)+" "+StylePath.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+value)
}

// printNextStep prints a hint followed by a command or path.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Command Output
// =============================================================================

// printResolved prints what resolve found for d.
func printResolved(d *dependency.Dependency) {
	fmt.Fprintln(stdout, StyleTitle.Render(d.String()))
	if d.Local {
		printKeyValue("path", d.Location)
		printKeyValue("resources", strings.Join(d.Resources, ", "))
		return
	}
	printKeyValue("id", d.ID)
	printKeyValue("repository", d.Name)
	printKeyValue("version", StyleVersion.Render(d.Version))
	printKeyValue("archive", StyleLink.Render(d.URL))
}

// printResult prints the failures, placed files and bundles of a batch.
func printResult(res *installer.Result) {
	for _, f := range res.Failures {
		printWarning("%s: %s", f.Source, errors.UserMessage(f.Err))
	}
	if len(res.Installed) == 0 && len(res.Failures) > 0 {
		printError("Nothing installed")
		return
	}

	printSuccess("Installed %s", StyleCount.Render(plural(len(res.Installed), "dependency", "dependencies")))
	bundles := make(map[string]bool, len(res.Bundles))
	for _, b := range res.Bundles {
		bundles[b] = true
	}
	for _, f := range res.Files {
		if !bundles[f] {
			printFile(f)
		}
	}
	for _, b := range res.Bundles {
		printBundle(b)
	}
	if len(res.Failures) > 0 {
		printWarning("%s skipped", plural(len(res.Failures), "dependency", "dependencies"))
	}
}

// plural formats n with the singular or plural noun.
func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
