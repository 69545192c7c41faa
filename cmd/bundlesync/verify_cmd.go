package main

import (
	"fmt"

	"github.com/packworks/bundlesync/internal/depotsdk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the depot access token without publishing",
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := depotsdk.New(viper.GetString("server_url"), viper.GetString("access_token"))
		if err != nil {
			return err
		}
		defer sdk.Close()

		cmd.SilenceUsage = true
		info, err := sdk.Account.Verify(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Connected to depot as %s (%s)\n", cyan(info.Email), info.AccountID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
