package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// DisplayInfoMessage prints an informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	ErrorStyleBG.Print("internal compiler error")
	ErrorColorFG.Println(" " + message)
	fmt.Print("This error was not supposed to happen: please open an issue.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	ErrorStyleBG.Print("fatal error")
	ErrorColorFG.Printf(" %s\n\n", message)
}

// displaySemanticMessage displays a semantic error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func displaySemanticMessage(label, subject, message string) {
	if label == "error" {
		ErrorStyleBG.Print(label)
	} else {
		WarnStyleBG.Print(label)
	}

	fmt.Printf(" %s: %s\n", subject, message)
}

// displayStdError displays a standard Go error.
func displayStdError(subject string, err error) {
	ErrorStyleBG.Print("error")
	ErrorColorFG.Printf(" %s: %s\n", subject, err)
}
