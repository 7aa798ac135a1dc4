package main

import (
	"fmt"
	"os"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/feature/yaml"
	"github.com/spf13/cobra"
)

type datasetCmdConfig struct {
	*rootCmdConfig
	input         dataLocation
	output        dataLocation
	metadataInput string
}

func datasetCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &datasetCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Copy datasets between sources",
		Long:  `Read a dataset from a CSV file or a DB and dump it to another, keeping only the columns named on the metadata if given`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := config.Context()
			defer config.ContextCancelFunc()()
			var md *feature.Metadata
			if config.metadataInput != "" {
				config.Logf("Reading metadata from %s...", config.metadataInput)
				md, err = yaml.ReadMetadataFromFile(config.metadataInput)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
			}
			md, s, err := config.readDataset(ctx, &config.input, md)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading input dataset: %v\n", err)
				os.Exit(4)
			}
			err = config.writeDataset(ctx, &config.output, md, s)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing output dataset: %v\n", err)
				os.Exit(8)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.input.location), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the data to copy (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.input.table), "table", "T", defaultTable, "table or collection holding the data on DB inputs")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file naming the feature columns and the label column to copy (required for MongoDB inputs or outputs)")
	cmd.PersistentFlags().StringVarP(&(config.output.location), "output", "o", "", "path to an output CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the data to (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().StringVar(&(config.output.table), "output-table", defaultTable, "table or collection to dump the data to on DB outputs")
	cmd.PersistentFlags().IntVar(&(config.input.maxConns), "max-db-conns", 0, "limit to DB connections opened at a time on SQLite3 inputs (defaults to 0: no limit)")
	return cmd
}

func (dcc *datasetCmdConfig) Validate() error {
	if (dcc.input.kind() == mongoDBLocation || dcc.output.kind() == mongoDBLocation) && dcc.metadataInput == "" {
		return fmt.Errorf("metadata flag is required for MongoDB inputs and outputs")
	}
	return nil
}
