package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sendTestMailCommand = cobra.Command{
	Use:   "send-test-email",
	Short: "sends a test email to verify email settings",
	Long:  `sends a test email to the given address to verify the current smtp setup`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a receiver email address")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		registry := mustResolveTranslationRegistry()
		mailer := mustResolveMailer(registry)
		if err := mailer.SendTestEmail(args[0]); err != nil {
			fmt.Printf("Email NOT sent to %s because %s\r\n", args[0], err)
			return
		}
		fmt.Printf("Email sent to %s\r\n", args[0])
	},
}
