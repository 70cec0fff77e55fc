package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"basegraph.app/hubsync/internal/signature"
)

func backfillCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Pull every entity for one owner from the tracker, in this process",
		Long: `Runs a full reconciliation for one owner without going through the
worker queue. Types are fetched parents first; re-running is safe.

Examples:
  hubctl backfill --owner org_123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			result, runErr := rt.services.Backfill().Run(ctx, owner)
			if result != nil {
				for _, b := range result.Batches {
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s ok=%-6d failed=%d\n", b.EntityType, b.Succeeded, b.Failed)
				}
			}
			if runErr != nil {
				return fmt.Errorf("backfill %s: %w", owner, runErr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "done in %s, %d failed\n", result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond), result.Failed())
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner id of the integration to backfill")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func visibilityCmd() *cobra.Command {
	var tenant string

	cmd := &cobra.Command{
		Use:   "visibility",
		Short: "Print the merged visibility filters of a hub tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			vis, err := rt.services.Hub().Visibility(ctx, tenant)
			if err != nil {
				return fmt.Errorf("visibility %s: %w", tenant, err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(vis)
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "hub tenant id")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func signCmd() *cobra.Command {
	var secret, file string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Compute the webhook signature of a payload",
		Long: `Prints the hex HMAC-SHA256 the tracker would send for a body, for
replaying deliveries by hand. Reads stdin when --file is "-".

Examples:
  hubctl sign --secret whsec_123 --file payload.json
  cat payload.json | hubctl sign --secret whsec_123 --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signature.Sign(body, secret))
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "webhook signing secret")
	cmd.Flags().StringVar(&file, "file", "-", "payload file, or - for stdin")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			ctx := cmd.Context()
			rt, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			return rt.db.Migrate(ctx, command)
		},
	}
}

func readPayload(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	body, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return body, nil
}
