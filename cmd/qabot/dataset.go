package main

import (
	"fmt"
	"io"

	golightqa "github.com/MegaGrindStone/go-light-qa"
	"github.com/spf13/cobra"
)

var (
	datasetList bool
	datasetJSON bool
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Show the loaded dataset",
	Long: `Load the configured dataset the same way chat does and print the number of records
and the table fingerprint. Two processes with the same fingerprint answer from the same table.
Sources that fail to open are skipped with a warning and the rest still load.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records := loadRecords(cmd.Context(), cfg.Dataset, logger)

		if datasetJSON {
			return writeJSON(cmd.OutOrStdout(), struct {
				Count       int                  `json:"count"`
				Fingerprint string               `json:"fingerprint"`
				Records     []golightqa.QARecord `json:"records,omitempty"`
			}{
				Count:       len(records),
				Fingerprint: fmt.Sprintf("%016x", golightqa.Fingerprint(records)),
				Records:     listed(records),
			})
		}

		printDataset(cmd.OutOrStdout(), records, datasetList)
		return nil
	},
}

func listed(records []golightqa.QARecord) []golightqa.QARecord {
	if !datasetList {
		return nil
	}
	return records
}

func printDataset(w io.Writer, records []golightqa.QARecord, list bool) {
	fmt.Fprintf(w, "records:     %d\n", len(records))
	fmt.Fprintf(w, "fingerprint: %016x\n", golightqa.Fingerprint(records))

	if !list {
		return
	}
	for i, r := range records {
		fmt.Fprintf(w, "\n%d. Q: %s\n   A: %s\n", i+1, r.Question, r.Answer)
	}
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.Flags().BoolVarP(&datasetList, "list", "l", false, "Print every record")
	datasetCmd.Flags().BoolVar(&datasetJSON, "json", false, "Output in JSON format")
}
