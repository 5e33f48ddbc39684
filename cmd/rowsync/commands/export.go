package commands

import (
	"context"
	"fmt"

	"github.com/ruslano69/rowsync/pkg/gateway"
	"github.com/ruslano69/rowsync/pkg/snapshot"
	"github.com/ruslano69/rowsync/pkg/xlsx"
)

// ExportOptions holds options for the export and snapshot commands
type ExportOptions struct {
	TableName  string
	OutputFile string
	SheetName  string
}

// ExportTable exports a database table to an XLSX file
func ExportTable(ctx context.Context, config gateway.Config, opts ExportOptions) error {
	gw, err := gateway.New(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect gateway: %w", err)
	}
	defer gw.Close(ctx)

	fmt.Printf("Exporting table '%s' to XLSX...\n", opts.TableName)

	ds, err := gw.FetchTable(ctx, opts.TableName)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if ds.NumRows() == 0 {
		fmt.Println("⚠ Table is empty, writing header only")
	}

	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = fmt.Sprintf("%s.xlsx", opts.TableName)
	}

	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = opts.TableName
	}

	if err := xlsx.ToXLSX(ds, outputFile, sheetName); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	fmt.Printf("✓ Export complete!\n")
	fmt.Printf("✓ XLSX file: %s\n", outputFile)
	fmt.Printf("✓ Sheet: %s\n", sheetName)
	fmt.Printf("✓ Rows: %d\n", ds.NumRows())

	return nil
}

// SnapshotTable saves a table to a compressed snapshot file
func SnapshotTable(ctx context.Context, config gateway.Config, opts ExportOptions) error {
	gw, err := gateway.New(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect gateway: %w", err)
	}
	defer gw.Close(ctx)

	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = fmt.Sprintf("%s.snap.zst", opts.TableName)
	}

	fmt.Printf("Snapshotting table '%s'...\n", opts.TableName)

	if err := snapshot.Capture(ctx, gw, opts.TableName, outputFile); err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}

	fmt.Printf("✓ Snapshot complete!\n")
	fmt.Printf("✓ File: %s\n", outputFile)

	return nil
}
