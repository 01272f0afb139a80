package kindle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"github.com/codeabiswas/quotescape/internal/cli/colours"
)

// Authentication errors, distinguishable with errors.Is.
var (
	ErrLoginFormNotFound = errors.New("login form did not appear")
	ErrLoginTimeout      = errors.New("login timed out")
)

const (
	notebookURL     = "https://read.amazon.com/kp/notebook"
	librarySelector = "#kp-notebook-library"
	formWait        = 30 * time.Second
)

// login drives the Amazon sign-in form and waits for the notebook
// library to appear. When the first wait times out on a sign-in or MFA
// page, the operator is prompted and the full timeout is waited once
// more so a human can complete the challenge.
func login(page *rod.Page, creds Credentials, loginTimeout time.Duration) error {
	logrus.Info("navigating to Kindle notebook")
	if err := page.Navigate(notebookURL); err != nil {
		return fmt.Errorf("navigating to %s: %w", notebookURL, err)
	}

	email, err := page.Timeout(formWait).Element(`input[name="email"]`)
	if err != nil {
		return fmt.Errorf("%w: email field: %v", ErrLoginFormNotFound, err)
	}
	if err := email.Input(creds.Username); err != nil {
		return fmt.Errorf("entering username: %w", err)
	}
	if err := clickIfPresent(page, "#continue"); err != nil {
		return fmt.Errorf("submitting username: %w", err)
	}

	password, err := page.Timeout(formWait).Element(`input[name="password"]`)
	if err != nil {
		return fmt.Errorf("%w: password field: %v", ErrLoginFormNotFound, err)
	}
	if err := password.Input(creds.Password); err != nil {
		return fmt.Errorf("entering password: %w", err)
	}
	if err := clickIfPresent(page, "#signInSubmit"); err != nil {
		return fmt.Errorf("submitting password: %w", err)
	}

	logrus.Info("logging in, complete any 2FA prompt in the browser")
	if _, err := page.Timeout(loginTimeout).Element(librarySelector); err == nil {
		logrus.Info("logged in to Kindle notebook")
		return nil
	}

	info, err := page.Info()
	if err != nil || !isChallengeURL(info.URL) {
		return fmt.Errorf("%w: unable to log in to Kindle notebook", ErrLoginTimeout)
	}

	// Still on a sign-in or MFA page: give the operator one more full
	// timeout window to finish the challenge by hand.
	colours.Warning.Println(strings.Repeat("=", 60))
	colours.Warning.Println("ACTION REQUIRED: complete the login in the browser.")
	colours.Warning.Println("This may include 2FA verification or a CAPTCHA.")
	colours.Warning.Printf("You have %s to complete the login.\n", loginTimeout)
	colours.Warning.Println(strings.Repeat("=", 60))

	if _, err := page.Timeout(loginTimeout).Element(librarySelector); err != nil {
		return fmt.Errorf(
			"%w after %s, try again or increase --login-timeout",
			ErrLoginTimeout, loginTimeout)
	}

	logrus.Info("login completed")
	return nil
}

// isChallengeURL reports whether the page is still in Amazon's sign-in
// or multi-factor flow.
func isChallengeURL(url string) bool {
	return strings.Contains(url, "signin") || strings.Contains(url, "ap/mfa")
}

// clickIfPresent clicks the selector if it is already on the page.
// Amazon occasionally merges the continue/submit steps, so a missing
// button is not an error.
func clickIfPresent(page *rod.Page, selector string) error {
	has, el, err := page.Has(selector)
	if err != nil {
		return err
	}
	if !has {
		logrus.WithField("selector", selector).Debug("button not present, skipping")
		return nil
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}
