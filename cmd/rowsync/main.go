package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ruslano69/rowsync/cmd/rowsync/commands"
	rowsync "github.com/ruslano69/rowsync/pkg/sync"

	// Register database gateways in the factory
	_ "github.com/ruslano69/rowsync/pkg/gateway/mariadb"
	_ "github.com/ruslano69/rowsync/pkg/gateway/postgres"
	_ "github.com/ruslano69/rowsync/pkg/gateway/sqlite"
)

func main() {
	ctx := context.Background()

	// Parse flags
	flags := ParseFlags()

	// Handle version
	if *flags.Version {
		PrintVersion()
		os.Exit(0)
	}

	// Handle help
	if *flags.Help {
		PrintHelp()
		os.Exit(0)
	}

	// Handle config creation
	if *flags.CreateConfigMariaDB {
		createConfigTemplate("mariadb")
		return
	}
	if *flags.CreateConfigPG {
		createConfigTemplate("postgres")
		return
	}
	if *flags.CreateConfigSQLite {
		createConfigTemplate("sqlite")
		return
	}

	// If no command was specified, show help
	if !commandWasSpecified(flags) {
		PrintHelp()
		os.Exit(1)
	}

	// Load configuration
	config, err := LoadConfig(*flags.Config)
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	log := newLogger(*flags.Verbose)
	gwConfig := config.GatewayConfig()

	// Route commands
	var cmdErr error

	switch {
	case *flags.Sync != "":
		if *flags.Table == "" {
			fatal("--sync requires --table")
		}
		opts, err := buildSyncOptions(flags, config, log)
		if err != nil {
			fatal("Invalid sync options: %v", err)
		}
		opts.FilePath = *flags.Sync
		opts.TableName = *flags.Table
		cmdErr = commands.SyncFile(ctx, gwConfig, opts)

	case *flags.Restore != "":
		opts, err := buildSyncOptions(flags, config, log)
		if err != nil {
			fatal("Invalid sync options: %v", err)
		}
		opts.FilePath = *flags.Restore
		opts.TableName = *flags.Table // optional override

		// Restores never snapshot: the snapshot being restored is the backup
		opts.SnapshotPath = ""
		cmdErr = commands.RestoreSnapshot(ctx, gwConfig, opts)

	case *flags.Export != "":
		cmdErr = commands.ExportTable(ctx, gwConfig, commands.ExportOptions{
			TableName:  *flags.Export,
			OutputFile: *flags.Output,
			SheetName:  *flags.Sheet,
		})

	case *flags.Snapshot != "":
		cmdErr = commands.SnapshotTable(ctx, gwConfig, commands.ExportOptions{
			TableName:  *flags.Snapshot,
			OutputFile: *flags.Output,
		})
	}

	// Handle errors
	if cmdErr != nil {
		fatal("Command failed: %v", cmdErr)
	}
}

// buildSyncOptions combines flags and config into synchronizer options
func buildSyncOptions(flags *Flags, config *Config, log zerolog.Logger) (commands.SyncOptions, error) {
	policy, err := rowsync.ParsePolicy(*flags.Policy)
	if err != nil {
		return commands.SyncOptions{}, err
	}

	var encoding rowsync.EncodeMode
	switch *flags.Encoding {
	case "typed", "":
		encoding = rowsync.EncodeTyped
	case "compat":
		encoding = rowsync.EncodeCompat
	default:
		return commands.SyncOptions{}, fmt.Errorf("unknown encoding: %q (supported: typed, compat)", *flags.Encoding)
	}

	opts := commands.SyncOptions{
		SheetName: *flags.Sheet,
		Policy:    policy,
		Sync: rowsync.Options{
			Encoding:        encoding,
			ProbePolicy:     rowsync.ProbePolicy(*flags.Probe),
			ContinueOnError: *flags.Continue,
			Retry:           config.RetryConfig(),
		},
		Log: log,
	}

	if config.Snapshot.Enabled {
		opts.SnapshotPath = snapshotPath(config.Snapshot.Dir, *flags.Table)
	}
	if config.ResultLog.Enabled {
		redisCfg := config.ResultLog.Redis
		opts.ResultLog = &redisCfg
	}

	return opts, nil
}

// snapshotPath generates a timestamped snapshot file name
func snapshotPath(dir, tableName string) string {
	name := fmt.Sprintf("%s-%s.snap.zst", tableName, time.Now().Format("20060102-150405"))
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// newLogger builds a console logger for CLI usage
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// createConfigTemplate creates a sample configuration file
func createConfigTemplate(dbType string) {
	config := CreateSampleConfig(dbType)

	if err := SaveConfig("config.yaml", config); err != nil {
		fatal("Failed to save config: %v", err)
	}

	fmt.Printf("✓ Created sample %s config: config.yaml\n", dbType)
	fmt.Println("Edit the file with your database credentials and run:")
	fmt.Printf("  rowsync --export mytable --config config.yaml\n")
}

// commandWasSpecified checks if any command was specified
func commandWasSpecified(flags *Flags) bool {
	return *flags.Sync != "" ||
		*flags.Export != "" ||
		*flags.Snapshot != "" ||
		*flags.Restore != ""
}

// fatal prints error and exits
func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
