package cli

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/SusanLiu63/PRNeko/internal/auth"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in to GitHub via the device flow",
		Long: `Log in to GitHub using the OAuth device flow.

A one-time code is shown here; enter it at the verification URL in your
browser to authorize prneko. The resulting token is stored locally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context())
		},
	}
}

func runLogin(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flow := auth.NewFlow(cfg.ClientID, nil)
	code, err := flow.RequestCode(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("First, copy your one-time code: %s\n", code.UserCode)
	fmt.Printf("Then authorize prneko at: %s\n", code.VerificationURI)
	openBrowser(code.VerificationURI)
	fmt.Println("Waiting for authorization (ctrl+c to cancel)...")

	token, err := flow.WaitForToken(ctx, code)
	if err != nil {
		return err
	}

	user, err := flow.FetchUser(ctx, token)
	if err != nil {
		return err
	}

	creds := auth.Credentials{Token: token, Username: user.Login}
	if err := credentialStore(cfg).Save(creds); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", user.Login)
	return nil
}

// openBrowser makes a best-effort attempt to open url in the default
// browser. Failure is fine, the URL was already printed.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
