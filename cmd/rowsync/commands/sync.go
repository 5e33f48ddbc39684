package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ruslano69/rowsync/pkg/core/dataset"
	"github.com/ruslano69/rowsync/pkg/gateway"
	"github.com/ruslano69/rowsync/pkg/resultlog"
	"github.com/ruslano69/rowsync/pkg/snapshot"
	rowsync "github.com/ruslano69/rowsync/pkg/sync"
	"github.com/ruslano69/rowsync/pkg/xlsx"
)

// SyncOptions holds options for the sync and restore commands
type SyncOptions struct {
	FilePath     string
	SheetName    string
	TableName    string
	Policy       rowsync.ConflictPolicy
	Sync         rowsync.Options
	SnapshotPath string            // Pre-sync snapshot destination ("" = disabled)
	ResultLog    *resultlog.Config // Redis result publishing (nil = disabled)
	Log          zerolog.Logger
}

// SyncFile loads an XLSX file and syncs it into a database table
func SyncFile(ctx context.Context, config gateway.Config, opts SyncOptions) error {
	fmt.Printf("Syncing XLSX file '%s' into table '%s'...\n", opts.FilePath, opts.TableName)
	fmt.Printf("Policy: %s\n", opts.Policy)

	ds, err := xlsx.FromXLSX(opts.FilePath, opts.SheetName)
	if err != nil {
		return fmt.Errorf("failed to parse XLSX: %w", err)
	}

	fmt.Printf("✓ Parsed XLSX sheet '%s'\n", opts.SheetName)
	fmt.Printf("✓ Columns: %d, rows: %d\n", len(ds.Columns), ds.NumRows())

	return syncDataset(ctx, config, ds, opts)
}

// RestoreSnapshot loads a snapshot file and syncs it into its table
func RestoreSnapshot(ctx context.Context, config gateway.Config, opts SyncOptions) error {
	fmt.Printf("Restoring snapshot '%s'...\n", opts.FilePath)

	tableName, ds, err := snapshot.LoadFile(opts.FilePath)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	// --table overrides the table recorded in the snapshot
	if opts.TableName != "" {
		tableName = opts.TableName
	}
	opts.TableName = tableName

	fmt.Printf("✓ Loaded snapshot for table '%s' (%d rows, checksum verified)\n", tableName, ds.NumRows())

	return syncDataset(ctx, config, ds, opts)
}

// syncDataset runs the synchronizer against a connected gateway and
// reports the outcome
func syncDataset(ctx context.Context, config gateway.Config, ds *dataset.Dataset, opts SyncOptions) error {
	gw, err := gateway.New(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect gateway: %w", err)
	}
	defer gw.Close(ctx)

	exists, err := gw.TableExists(ctx, opts.TableName)
	if err != nil {
		return fmt.Errorf("failed to check table: %w", err)
	}
	if !exists {
		return fmt.Errorf("table %s does not exist in target database", opts.TableName)
	}

	if opts.SnapshotPath != "" {
		if dir := filepath.Dir(opts.SnapshotPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create snapshot directory: %w", err)
			}
		}
		if err := snapshot.Capture(ctx, gw, opts.TableName, opts.SnapshotPath); err != nil {
			return fmt.Errorf("pre-sync snapshot failed: %w", err)
		}
		fmt.Printf("✓ Snapshot saved: %s\n", opts.SnapshotPath)
	}

	s, err := rowsync.NewSynchronizer(gw, opts.Log, opts.Sync)
	if err != nil {
		return fmt.Errorf("failed to create synchronizer: %w", err)
	}

	startedAt := time.Now()
	outcomes, syncErr := s.Sync(ctx, ds, opts.TableName, opts.Policy)
	finishedAt := time.Now()

	summary := rowsync.Summarize(outcomes)
	printSummary(summary)

	if opts.ResultLog != nil {
		result := resultlog.NewSyncResult(opts.TableName, opts.Policy, summary, startedAt, finishedAt, syncErr)
		publisher := resultlog.NewRedisPublisher(*opts.ResultLog)
		defer publisher.Close()

		if err := publisher.Publish(ctx, result); err != nil {
			// Publishing is auxiliary: the sync itself already finished
			fmt.Printf("⚠ Failed to publish result to Redis: %v\n", err)
		} else {
			fmt.Printf("✓ Result published to Redis\n")
		}
	}

	if syncErr != nil {
		return fmt.Errorf("sync failed: %w", syncErr)
	}

	fmt.Printf("✓ Sync complete!\n")
	return nil
}

func printSummary(s rowsync.Summary) {
	fmt.Printf("✓ Processed %d row(s): %d inserted, %d replaced, %d updated, %d skipped, %d failed\n",
		s.Total(), s.Inserted, s.Replaced, s.Updated, s.Skipped, s.Failed)
}
