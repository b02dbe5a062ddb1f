// =============================================================================
// DATANORM-AZ Processor - Main Entry Point
// =============================================================================
//
// This is the main entry point for the DATANORM-AZ Processor CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   datanorm lookup [article-no]    - Raw article data as JSON
//   datanorm prices [article-no]    - Calculated prices as JSON
//   datanorm export                 - Export calculated prices to CSV/XLSX
//   datanorm version                - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Decoder, catalog store, ingestor, price resolver, export
//   - pkg/       : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/akress/datanorm-az/cmd"
)

func main() {
	cmd.Execute()
}
