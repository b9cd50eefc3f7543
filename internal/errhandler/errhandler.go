package errhandler

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/validation"
	"github.com/pterm/pterm"
)

// HandleError prints err for the terminal and returns the process exit code.
func HandleError(err error) int {
	if err == nil {
		return 0
	}

	if IsInterrupt(err) {
		pterm.Warning.Println("Operation Cancelled")
		return 0
	}

	if errors.Is(err, errs.ErrCancelled) {
		pterm.Info.Println("Cancelled, nothing was changed")
		return 0
	}

	if errs.IsValidation(err) {
		for _, line := range FieldMessages(err) {
			pterm.Error.Println(line)
		}
		return 1
	}

	pterm.Error.Println(Capitalize(err.Error()))
	return 1
}

// fieldOrder follows the create form.
var fieldOrder = []string{validation.FieldRecipient, validation.FieldAmount, validation.FieldDescription}

// FieldMessages renders validation failures as "Field: message" lines in
// form order; unknown fields follow alphabetically.
func FieldMessages(err error) []string {
	fields := validation.FieldErrors(err)

	lines := make([]string, 0, len(fields))
	for _, field := range fieldOrder {
		if msg, ok := fields[field]; ok {
			lines = append(lines, Capitalize(field)+": "+msg)
			delete(fields, field)
		}
	}

	rest := make([]string, 0, len(fields))
	for field := range fields {
		rest = append(rest, field)
	}
	sort.Strings(rest)
	for _, field := range rest {
		lines = append(lines, Capitalize(field)+": "+fields[field])
	}
	return lines
}

func IsInterrupt(err error) bool {
	return errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, huh.ErrUserAborted) ||
		strings.Contains(err.Error(), "interrupt")
}

func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
