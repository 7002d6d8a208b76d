package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen = lipgloss.Color("35")  // success
	colorRed   = lipgloss.Color("167") // errors
	colorGray  = lipgloss.Color("245") // secondary text
	colorDim   = lipgloss.Color("240") // muted text
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Printf("%s %s\n", styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Printf("%s %s\n", styleIconError.Render(iconError), fmt.Sprintf(format, args...))
}

// printInfo prints an informational message.
func printInfo(format string, args ...any) {
	fmt.Printf("%s %s\n", styleIconInfo.Render(iconInfo), fmt.Sprintf(format, args...))
}

// printDetail prints muted secondary output, indented under the previous message.
func printDetail(format string, args ...any) {
	fmt.Printf("  %s\n", styleDim.Render(fmt.Sprintf(format, args...)))
}
