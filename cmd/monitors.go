package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/hackcheck/hackcheck"
)

var (
	assetType         string
	assetValue        string
	domainValue       string
	notificationEmail string
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List and update breach monitors",
}

var monitorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List asset and domain monitors",
	Args:  cobra.NoArgs,
	RunE:  runMonitorsList,
}

var updateAssetCmd = &cobra.Command{
	Use:   "update-asset <id>",
	Short: "Change what an asset monitor watches",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdateAsset,
}

var updateDomainCmd = &cobra.Command{
	Use:   "update-domain <id>",
	Short: "Change what a domain monitor watches",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdateDomain,
}

func init() {
	updateAssetCmd.Flags().StringVar(&assetType, "type", "", "asset type (email, username, ...)")
	updateAssetCmd.Flags().StringVar(&assetValue, "asset", "", "asset value to monitor")
	updateAssetCmd.Flags().StringVar(&notificationEmail, "email", "", "address to notify on new breaches")
	_ = updateAssetCmd.MarkFlagRequired("type")
	_ = updateAssetCmd.MarkFlagRequired("asset")

	updateDomainCmd.Flags().StringVar(&domainValue, "domain", "", "domain to monitor")
	updateDomainCmd.Flags().StringVar(&notificationEmail, "email", "", "address to notify on new breaches")
	_ = updateDomainCmd.MarkFlagRequired("domain")

	monitorsCmd.AddCommand(monitorsListCmd)
	monitorsCmd.AddCommand(updateAssetCmd)
	monitorsCmd.AddCommand(updateDomainCmd)
}

func runMonitorsList(cmd *cobra.Command, args []string) error {
	resp, err := client.GetMonitors(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), resp)
	}
	printMonitors(cmd.OutOrStdout(), resp)
	return nil
}

func runUpdateAsset(cmd *cobra.Command, args []string) error {
	field, err := hackcheck.ParseSearchField(assetType)
	if err != nil {
		return err
	}

	monitor, err := client.UpdateAssetMonitor(cmd.Context(), args[0], hackcheck.UpdateAssetMonitorParams{
		AssetType:         field,
		Asset:             assetValue,
		NotificationEmail: notificationEmail,
	})
	if err != nil {
		return err
	}

	logger.Info().Str("id", monitor.ID).Msg("Asset monitor updated")

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), monitor)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Asset monitor updated")
	printAssetMonitor(cmd.OutOrStdout(), *monitor)
	return nil
}

func runUpdateDomain(cmd *cobra.Command, args []string) error {
	monitor, err := client.UpdateDomainMonitor(cmd.Context(), args[0], hackcheck.UpdateDomainMonitorParams{
		Domain:            domainValue,
		NotificationEmail: notificationEmail,
	})
	if err != nil {
		return err
	}

	logger.Info().Str("id", monitor.ID).Msg("Domain monitor updated")

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), monitor)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Domain monitor updated")
	printDomainMonitor(cmd.OutOrStdout(), *monitor)
	return nil
}
