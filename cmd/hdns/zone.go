package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/haukened/hdns"
)

var (
	zoneCmd = &cobra.Command{
		Use:   "zone",
		Short: "Inspect and manage DNS zones",
	}

	zoneListCmd = &cobra.Command{
		Use:   "list",
		Short: "List all zones",
		RunE:  runZoneList,
	}

	zoneGetCmd = &cobra.Command{
		Use:   "get <zone-id-or-name>",
		Short: "Show one zone in detail",
		Args:  cobra.ExactArgs(1),
		RunE:  runZoneGet,
	}

	zoneCreateTTL int
	zoneCreateCmd = &cobra.Command{
		Use:   "create <name>",
		Short: "Create a zone",
		Args:  cobra.ExactArgs(1),
		RunE:  runZoneCreate,
	}

	zoneDeleteCmd = &cobra.Command{
		Use:   "delete <zone-id-or-name>",
		Short: "Delete a zone and all its records",
		Args:  cobra.ExactArgs(1),
		RunE:  runZoneDelete,
	}

	zoneImportFile string
	zoneImportCmd  = &cobra.Command{
		Use:   "import <zone-id-or-name>",
		Short: "Replace the records of a zone with a zone file",
		Args:  cobra.ExactArgs(1),
		RunE:  runZoneImport,
	}

	zoneExportOut string
	zoneExportCmd = &cobra.Command{
		Use:   "export <zone-id-or-name>",
		Short: "Export a zone as a zone file",
		Args:  cobra.ExactArgs(1),
		RunE:  runZoneExport,
	}

	zoneValidateCmd = &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a zone file without applying it",
		Args:  cobra.ExactArgs(1),
		RunE:  runZoneValidate,
	}
)

func init() {
	zoneCreateCmd.Flags().IntVar(&zoneCreateTTL, "ttl", 0, "Default TTL for records in the zone (0 keeps the API default)")
	zoneImportCmd.Flags().StringVarP(&zoneImportFile, "file", "f", "", "Zone file to import (required)")
	// Panic is appropriate in init() since we cannot return errors and this indicates a programming error
	if err := zoneImportCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
	zoneExportCmd.Flags().StringVarP(&zoneExportOut, "out", "o", "", "Write the zone file here instead of stdout")

	zoneCmd.AddCommand(zoneListCmd, zoneGetCmd, zoneCreateCmd, zoneDeleteCmd, zoneImportCmd, zoneExportCmd, zoneValidateCmd)
}

// resolveZone accepts either a zone ID or a zone name. Names contain dots,
// IDs never do, so anything with a dot goes through the name lookup.
func resolveZone(ctx context.Context, arg string) (string, error) {
	if !strings.Contains(arg, ".") {
		return arg, nil
	}
	return client.Zones.IDByName(ctx, arg)
}

func runZoneList(cmd *cobra.Command, args []string) error {
	zones, err := client.Zones.All(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tRECORDS\tTTL")
	for _, z := range zones {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", z.ID, z.Name, z.Status, z.RecordsCount, z.TTL)
	}
	return w.Flush()
}

func runZoneGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := resolveZone(ctx, args[0])
	if err != nil {
		return err
	}
	zone, err := client.Zones.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("ID:        %s\n", zone.ID)
	fmt.Printf("Name:      %s\n", zone.Name)
	fmt.Printf("Status:    %s\n", zone.Status)
	fmt.Printf("TTL:       %d\n", zone.TTL)
	fmt.Printf("Records:   %d\n", zone.RecordsCount)
	if !zone.Created.IsZero() {
		fmt.Printf("Created:   %s\n", zone.Created.Time)
	}
	if !zone.Modified.IsZero() {
		fmt.Printf("Modified:  %s\n", zone.Modified.Time)
	}
	if len(zone.NS) > 0 {
		fmt.Printf("NS:        %s\n", strings.Join(zone.NS, ", "))
	}
	if zone.IsSecondaryDNS {
		fmt.Println("Secondary: yes")
	}
	return nil
}

func runZoneCreate(cmd *cobra.Command, args []string) error {
	zone, err := client.Zones.Create(cmd.Context(), hdns.ZoneCreateOpts{
		Name: args[0],
		TTL:  zoneCreateTTL,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created zone %s (%s)\n", zone.Name, zone.ID)
	if zone.TxtVerification.Name != "" {
		fmt.Printf("verification TXT record: %s = %s\n", zone.TxtVerification.Name, zone.TxtVerification.Token)
	}
	return nil
}

func runZoneDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := resolveZone(ctx, args[0])
	if err != nil {
		return err
	}
	if err := client.Zones.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("deleted zone %s\n", args[0])
	return nil
}

func runZoneImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := resolveZone(ctx, args[0])
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(fs, zoneImportFile)
	if err != nil {
		return err
	}

	zone, err := client.Zones.Import(ctx, id, bytes.NewReader(data))
	if err != nil {
		return err
	}
	fmt.Printf("imported %s into %s (%d records)\n", zoneImportFile, zone.Name, zone.RecordsCount)
	return nil
}

func runZoneExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := resolveZone(ctx, args[0])
	if err != nil {
		return err
	}

	zonefile, err := client.Zones.Export(ctx, id)
	if err != nil {
		return err
	}

	if zoneExportOut == "" {
		fmt.Print(zonefile)
		return nil
	}
	if err := afero.WriteFile(fs, zoneExportOut, []byte(zonefile), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", zoneExportOut)
	return nil
}

func runZoneValidate(cmd *cobra.Command, args []string) error {
	data, err := afero.ReadFile(fs, args[0])
	if err != nil {
		return err
	}

	result, err := client.Zones.ValidateFile(cmd.Context(), bytes.NewReader(data))
	if err != nil {
		return err
	}

	fmt.Printf("parsed %d records, %d valid\n", result.ParsedRecords, len(result.ValidRecords))
	if len(result.ValidRecords) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tVALUE\tTTL")
	for _, r := range result.ValidRecords {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.Type, r.Name, r.Value, r.TTL)
	}
	return w.Flush()
}
