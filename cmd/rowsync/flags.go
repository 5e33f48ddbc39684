package main

import "flag"

// Flags holds all command-line flags
type Flags struct {
	// Commands
	Sync     *string // XLSX file to sync into a table
	Export   *string // Table to export to XLSX
	Snapshot *string // Table to snapshot to a compressed file
	Restore  *string // Snapshot file to restore into a table

	// Sync options
	Table    *string
	Policy   *string
	Encoding *string
	Probe    *string
	Continue *bool

	// XLSX options
	Sheet  *string
	Output *string

	// Options
	Config  *string
	Verbose *bool

	// Config Creation
	CreateConfigMariaDB *bool
	CreateConfigPG      *bool
	CreateConfigSQLite  *bool

	// Misc
	Version *bool
	Help    *bool
}

// ParseFlags defines and parses all command-line flags
func ParseFlags() *Flags {
	f := &Flags{}

	// Commands
	f.Sync = flag.String("sync", "", "Sync XLSX file into a database table (file path, requires --table)")
	f.Export = flag.String("export", "", "Export table to XLSX file (table name)")
	f.Snapshot = flag.String("snapshot", "", "Snapshot table to a compressed file (table name)")
	f.Restore = flag.String("restore", "", "Restore snapshot file into its table (file path)")

	// Sync options
	f.Table = flag.String("table", "", "Target table name (required for --sync, overrides snapshot table for --restore)")
	f.Policy = flag.String("policy", "fail", "Conflict policy: fail, replace, update")
	f.Encoding = flag.String("encoding", "typed", "Value encoding: typed, compat")
	f.Probe = flag.String("probe", "fail", "Probe failure policy: fail, retry, assume-absent")
	f.Continue = flag.Bool("continue-on-error", false, "Keep processing rows after a row fails")

	// XLSX options
	f.Sheet = flag.String("sheet", "Sheet1", "Excel sheet name for XLSX operations")
	f.Output = flag.String("output", "", "Output file path (default: auto-generated)")

	// Options
	f.Config = flag.String("config", "config.yaml", "Configuration file path")
	f.Verbose = flag.Bool("verbose", false, "Enable debug logging")

	// Config Creation
	f.CreateConfigMariaDB = flag.Bool("create-config-mariadb", false, "Create sample MariaDB config file")
	f.CreateConfigPG = flag.Bool("create-config-pg", false, "Create sample PostgreSQL config file")
	f.CreateConfigSQLite = flag.Bool("create-config-sqlite", false, "Create sample SQLite config file")

	// Misc
	f.Version = flag.Bool("version", false, "Show version information")
	f.Help = flag.Bool("help", false, "Show detailed help with examples")

	flag.Parse()

	return f
}
