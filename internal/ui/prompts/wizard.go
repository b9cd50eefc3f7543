package prompts

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/findash/internal/constants"
)

// PromptInitAuth asks how findash should sign in on first run. The token is
// empty for device sign-in.
func PromptInitAuth(modeDefault string) (string, string, error) {
	selection := modeDefault
	if selection == "" {
		selection = constants.AuthModeDevice
	}

	err := huh.NewSelect[string]().
		Title("Welcome to findash! This is the first run, please choose how to sign in:").
		Description("Device sign-in opens a browser code flow; a token is any pre-issued bearer credential.").
		Options(
			huh.NewOption("Device sign-in (recommended)", constants.AuthModeDevice),
			huh.NewOption("Paste an access token", constants.AuthModeStatic),
		).
		Value(&selection).
		Run()

	if err != nil {
		return "", "", err
	}

	if selection != constants.AuthModeStatic {
		return selection, "", nil
	}

	var token string
	err = huh.NewInput().
		Title("Please enter the access token:").
		EchoMode(huh.EchoModePassword).
		Value(&token).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("token is required")
			}
			return nil
		}).
		Run()

	if err != nil {
		return "", "", err
	}

	return selection, strings.TrimSpace(token), nil
}
