package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haukened/hdns"
	"github.com/haukened/hdns/internal/manifest"
)

var (
	recordCmd = &cobra.Command{
		Use:   "record",
		Short: "Inspect and manage DNS records",
	}

	recordListCmd = &cobra.Command{
		Use:   "list <zone-id-or-name>",
		Short: "List all records of a zone",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecordList,
	}

	recordCreateTTL int
	recordCreateCmd = &cobra.Command{
		Use:   "create <zone-id-or-name> <type> <name> <value>",
		Short: "Create a record",
		Args:  cobra.ExactArgs(4),
		RunE:  runRecordCreate,
	}

	recordUpdateTTL int
	recordUpdateCmd = &cobra.Command{
		Use:   "update <record-id> <type> <name> <value>",
		Short: "Replace a record",
		Args:  cobra.ExactArgs(4),
		RunE:  runRecordUpdate,
	}

	recordDeleteCmd = &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecordDelete,
	}

	recordBulkCreateFile string
	recordBulkCreateCmd  = &cobra.Command{
		Use:   "bulk-create",
		Short: "Create records in bulk from a manifest file",
		Long: `Bulk-create reads a YAML, JSON, or TOML manifest declaring records and creates
them in one bulk call. A zone_id in the manifest may be a zone name; names
are resolved through the API before the batch is sent.

Partial failure is reported per record: entries the API rejected are listed
with their reason while the rest are created.`,
		RunE: runRecordBulkCreate,
	}
)

func init() {
	recordCreateCmd.Flags().IntVar(&recordCreateTTL, "ttl", 0, "TTL in seconds (0 uses the zone default)")
	recordUpdateCmd.Flags().IntVar(&recordUpdateTTL, "ttl", 0, "TTL in seconds (0 uses the zone default)")
	recordBulkCreateCmd.Flags().StringVarP(&recordBulkCreateFile, "file", "f", "", "Manifest file of records to create (required)")
	// Panic is appropriate in init() since we cannot return errors and this indicates a programming error
	if err := recordBulkCreateCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}

	recordCmd.AddCommand(recordListCmd, recordCreateCmd, recordUpdateCmd, recordDeleteCmd, recordBulkCreateCmd)
}

func runRecordList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	zoneID, err := resolveZone(ctx, args[0])
	if err != nil {
		return err
	}

	records, err := client.Records.All(ctx, zoneID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tNAME\tVALUE\tTTL")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", r.ID, r.Type, r.Name, r.Value, r.TTL)
	}
	return w.Flush()
}

func runRecordCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	zoneID, err := resolveZone(ctx, args[0])
	if err != nil {
		return err
	}

	record, err := client.Records.Create(ctx, hdns.RecordCreateOpts{
		ZoneID: zoneID,
		Type:   hdns.RecordType(strings.ToUpper(args[1])),
		Name:   args[2],
		Value:  args[3],
		TTL:    recordCreateTTL,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created %s record %s (id %s)\n", record.Type, record.Name, record.ID)
	return nil
}

func runRecordUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// The update endpoint wants the full record including its zone, so fetch
	// the current one first.
	current, err := client.Records.Get(ctx, args[0])
	if err != nil {
		return err
	}

	record, err := client.Records.Update(ctx, current.ID, hdns.RecordUpdateOpts{
		ZoneID: current.ZoneID,
		Type:   hdns.RecordType(strings.ToUpper(args[1])),
		Name:   args[2],
		Value:  args[3],
		TTL:    recordUpdateTTL,
	})
	if err != nil {
		return err
	}
	fmt.Printf("updated %s record %s (id %s)\n", record.Type, record.Name, record.ID)
	return nil
}

func runRecordDelete(cmd *cobra.Command, args []string) error {
	if err := client.Records.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted record %s\n", args[0])
	return nil
}

func runRecordBulkCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	opts, err := manifest.Load(recordBulkCreateFile)
	if err != nil {
		return err
	}

	// Manifests may name zones instead of using raw IDs. The memoized lookup
	// keeps this to one listing per distinct name.
	for i := range opts {
		if strings.Contains(opts[i].ZoneID, ".") {
			id, err := client.Zones.IDByName(ctx, opts[i].ZoneID)
			if err != nil {
				return err
			}
			opts[i].ZoneID = id
		}
	}

	result, err := client.Records.BulkCreate(ctx, opts)
	if err != nil {
		return err
	}

	for i, item := range result.Items {
		if item.OK() {
			fmt.Printf("created %s %s (id %s)\n", item.Value.Type, item.Value.Name, item.Value.ID)
		} else {
			fmt.Printf("failed %s %s: %v\n", opts[i].Type, opts[i].Name, item.Err)
		}
	}
	if !result.OK() {
		return fmt.Errorf("%d of %d records failed", result.FailureCount(), len(result.Items))
	}
	fmt.Printf("created %d records\n", len(result.Items))
	return nil
}
