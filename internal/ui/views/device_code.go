package views

import (
	"github.com/pterm/pterm"
	"golang.org/x/oauth2"
)

// RenderDeviceCode tells the user where to enter the sign-in code.
func RenderDeviceCode(resp *oauth2.DeviceAuthResponse) {
	pterm.DefaultSection.Println("Sign in")

	uri := resp.VerificationURI
	if resp.VerificationURIComplete != "" {
		uri = resp.VerificationURIComplete
	}

	pterm.Info.Printf("Open %s and enter the code %s\n", pterm.Cyan(uri), pterm.Bold.Sprint(resp.UserCode))
	if !resp.Expiry.IsZero() {
		pterm.Println(pterm.Gray("The code expires at " + resp.Expiry.Format("15:04:05")))
	}
	pterm.Println(pterm.Gray("Waiting for sign-in to complete..."))
}
