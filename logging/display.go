package logging

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

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

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------
// This section contains all the display functions for the different kinds of
// errors that can be logged -- these functions are called to print the error
// to the screen.

func (ce *ConfigError) display() {
	PrintErrorMessage(ce.Kind+" Error", errors.New(ce.Message))
}

var compileMsgStrings = map[int]string{
	LMKSyntax:  "Syntax",
	LMKFeature: "Feature",
	LMKUsage:   "Usage",
}

func (cm *CompileMessage) display() {
	cm.displayBanner()

	if cm.Position != nil {
		fmt.Printf("%s (line %d, column %d)\n", cm.Message, cm.Position.Line, cm.Position.Col)
		cm.displayCodeSelection()
	} else {
		fmt.Println(cm.Message)
	}
}

// displayBanner displays the banner on top of all compile messages
func (cm *CompileMessage) displayBanner() {
	fmt.Print("\n\n-- ")
	kindStr := compileMsgStrings[cm.Kind]
	kindLen := len(kindStr)
	if cm.isError() {
		ErrorStyleBG.Print(kindStr + " Error")
		kindLen += 7
	} else {
		WarnStyleBG.Print(kindStr + " Warning")
		kindLen += 9
	}

	fmt.Print(" ")

	fileName := filepath.Base(cm.Context.FilePath)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}
	dashCount := bannerLen - len(fileName) - kindLen - 1
	if dashCount < 1 {
		dashCount = 1
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displayCodeSelection displays the offending source line (with its line
// number) and places a caret under the reported column.  The source file may
// be synthetic (eg. an HTTP upload) in which case there is nothing to show.
func (cm *CompileMessage) displayCodeSelection() {
	f, err := os.Open(cm.Context.FilePath)
	if err != nil {
		return
	}
	defer f.Close()

	var line string
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanLines)
	for lineNumber := 1; sc.Scan(); lineNumber++ {
		if lineNumber == cm.Position.Line {
			line = sc.Text()
			break
		}
	}

	if line == "" {
		return
	}

	lineNumberStr := strconv.Itoa(cm.Position.Line)
	fmt.Println()
	InfoColorFG.Print(lineNumberStr)
	fmt.Print(" |  ")
	fmt.Println(strings.ReplaceAll(line, "\t", "    "))

	fmt.Print(strings.Repeat(" ", len(lineNumberStr)), " |  ")
	caretCol := cm.Position.Col - 1
	if caretCol < 0 {
		caretCol = 0
	} else if caretCol > len(line) {
		caretCol = len(line)
	}
	fmt.Print(strings.Repeat(" ", caretCol))
	ErrorColorFG.Println("^")
	fmt.Println()
}

// -----------------------------------------------------------------------------

// displayHeader displays the tool information before starting a translation
func displayHeader(version, target string) {
	fmt.Print("scratchc ")
	InfoColorFG.Print("v" + version)
	fmt.Print(" -- output: ")
	InfoColorFG.Println(target)
}

// phaseSpinner stores the current phase spinner
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Preprocessing")

// displayBeginPhase displays the beginning of a translation phase
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a translation phase
func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(
				currentPhase+strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(currentPhase + strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2))
		}

		phaseSpinner = nil
	}
}

// displayFinished displays a translation finished message
func displayFinished(success bool, errorCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	switch errorCount {
	case 0:
		fmt.Print("(")
		SuccessColorFG.Print(0)
		fmt.Println(" errors)")
	case 1:
		fmt.Print("(")
		ErrorColorFG.Print(1)
		fmt.Println(" error)")
	default:
		fmt.Print("(")
		ErrorColorFG.Print(errorCount)
		fmt.Println(" errors)")
	}
}
