package main

import "fmt"

const version = "1.2.0"

// PrintVersion prints version information
func PrintVersion() {
	fmt.Printf("rowsync version %s\n", version)
	fmt.Println("RowSync - Row-level dataset to table synchronization")
	fmt.Println("https://github.com/ruslano69/rowsync")
}

// PrintHelp prints comprehensive help information
func PrintHelp() {
	fmt.Println("RowSync - Row-level dataset to table synchronization")
	fmt.Printf("Version: %s\n\n", version)

	fmt.Println("USAGE:")
	fmt.Println("  rowsync [command] [options]")
	fmt.Println()

	fmt.Println("COMMANDS:")
	fmt.Println()

	fmt.Println("  Synchronization:")
	fmt.Println("    --sync <xlsx-file>         Sync XLSX file into a table (requires --table)")
	fmt.Println("    --restore <snap-file>      Restore snapshot file into its table")
	fmt.Println()

	fmt.Println("  Export:")
	fmt.Println("    --export <table>           Export table to XLSX file")
	fmt.Println("    --snapshot <table>         Snapshot table to a compressed file")
	fmt.Println()

	fmt.Println("OPTIONS:")
	fmt.Println()

	fmt.Println("  Sync:")
	fmt.Println("    --table <name>             Target table name")
	fmt.Println("    --policy <name>            Conflict policy: fail, replace, update (default: fail)")
	fmt.Println("    --encoding <mode>          Value encoding: typed, compat (default: typed)")
	fmt.Println("    --probe <name>             Probe failure policy: fail, retry, assume-absent")
	fmt.Println("    --continue-on-error        Keep processing rows after a row fails")
	fmt.Println()

	fmt.Println("  General:")
	fmt.Println("    --config <file>            Configuration file (default: config.yaml)")
	fmt.Println("    --output <file>            Output file path")
	fmt.Println("    --sheet <name>             Excel sheet name (default: Sheet1)")
	fmt.Println("    --verbose                  Enable debug logging")
	fmt.Println()

	fmt.Println("  Config Creation:")
	fmt.Println("    --create-config-mariadb    Create sample MariaDB config file")
	fmt.Println("    --create-config-pg         Create sample PostgreSQL config file")
	fmt.Println("    --create-config-sqlite     Create sample SQLite config file")
	fmt.Println()

	fmt.Println("EXAMPLES:")
	fmt.Println()
	fmt.Println("  # Sync a spreadsheet into the accounts table, updating existing rows")
	fmt.Println("  rowsync --sync accounts.xlsx --table accounts --policy update")
	fmt.Println()
	fmt.Println("  # Full overwrite with a safety snapshot (snapshot.enabled: true in config)")
	fmt.Println("  rowsync --sync accounts.xlsx --table accounts --policy replace")
	fmt.Println()
	fmt.Println("  # Export a table to Excel")
	fmt.Println("  rowsync --export accounts --output accounts.xlsx")
	fmt.Println()
	fmt.Println("  # Snapshot and later restore a table")
	fmt.Println("  rowsync --snapshot accounts")
	fmt.Println("  rowsync --restore accounts.snap.zst --policy replace")
	fmt.Println()

	fmt.Println("CONFLICT POLICIES:")
	fmt.Println("  fail      Existing rows are skipped, only new rows are inserted")
	fmt.Println("  replace   Existing rows are fully overwritten, missing values become NULL")
	fmt.Println("  update    Non-key columns of existing rows are updated in place")
}
