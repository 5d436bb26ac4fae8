package browse

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
)

const (
	browserLaunchErrorTemplateConstant = "unable to open browser: %w"
)

// BrowserLauncher opens an absolute URL in the user's default web browser.
type BrowserLauncher interface {
	OpenURL(url string) error
}

// SystemBrowserLauncher launches the platform default browser.
type SystemBrowserLauncher struct{}

// OpenURL opens the URL in the default browser, discarding any launcher output.
func (SystemBrowserLauncher) OpenURL(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	if launchError := browser.OpenURL(url); launchError != nil {
		return fmt.Errorf(browserLaunchErrorTemplateConstant, launchError)
	}
	return nil
}
