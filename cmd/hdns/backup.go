package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/haukened/hdns"
	"github.com/haukened/hdns/internal/snapshot"
)

var (
	backupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Snapshot zone files to a local database",
		Long: `Backup exports zones as zone files and keeps them in a local bolt
database (HDNS_BACKUP_PATH) so a zone can be rolled back later with
"backup restore".`,
	}

	backupRunCmd = &cobra.Command{
		Use:   "run [zone-id-or-name...]",
		Short: "Export zones and store them as snapshots",
		RunE:  runBackupRun,
	}

	backupListCmd = &cobra.Command{
		Use:   "list",
		Short: "Show the latest stored snapshot of every zone",
		RunE:  runBackupList,
	}

	backupRestoreApply bool
	backupRestoreCmd   = &cobra.Command{
		Use:   "restore <zone-id-or-name>",
		Short: "Print or re-import the latest snapshot of a zone",
		Args:  cobra.ExactArgs(1),
		RunE:  runBackupRestore,
	}
)

func init() {
	backupRestoreCmd.Flags().BoolVar(&backupRestoreApply, "apply", false, "Import the snapshot back into the zone instead of printing it")
	backupCmd.AddCommand(backupRunCmd, backupListCmd, backupRestoreCmd)
}

func runBackupRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var zones []hdns.Zone
	if len(args) == 0 {
		var err error
		zones, err = client.Zones.All(ctx)
		if err != nil {
			return err
		}
	} else {
		for _, arg := range args {
			id, err := resolveZone(ctx, arg)
			if err != nil {
				return err
			}
			zone, err := client.Zones.Get(ctx, id)
			if err != nil {
				return err
			}
			zones = append(zones, *zone)
		}
	}

	store, err := snapshot.Open(cfg.BackupPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, zone := range zones {
		zonefile, err := client.Zones.Export(ctx, zone.ID)
		if err != nil {
			return err
		}
		if err := store.Put(zone.ID, time.Now(), zonefile); err != nil {
			return err
		}
		fmt.Printf("backed up %s (%s)\n", zone.Name, zone.ID)
	}

	stats := store.Stats()
	fmt.Printf("%d zones, %d snapshots in %s\n", stats.Zones, stats.Snapshots, cfg.BackupPath)
	return nil
}

func runBackupList(cmd *cobra.Command, args []string) error {
	store, err := snapshot.Open(cfg.BackupPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ZONE\tTAKEN\tBYTES")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\n", e.ZoneID, e.TakenAt.Format(time.RFC3339), len(e.Zonefile))
	}
	return w.Flush()
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := resolveZone(ctx, args[0])
	if err != nil {
		return err
	}

	store, err := snapshot.Open(cfg.BackupPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, ok, err := store.Latest(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no snapshot stored for zone %s", args[0])
	}

	if !backupRestoreApply {
		fmt.Print(entry.Zonefile)
		return nil
	}

	zone, err := client.Zones.Import(ctx, id, strings.NewReader(entry.Zonefile))
	if err != nil {
		return err
	}
	fmt.Printf("restored %s from snapshot taken %s (%d records)\n",
		zone.Name, entry.TakenAt.Format(time.RFC3339), zone.RecordsCount)
	return nil
}
