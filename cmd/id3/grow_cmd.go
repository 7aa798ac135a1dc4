package main

import (
	"fmt"
	"os"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/feature/yaml"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	input         dataLocation
	metadataInput string
	output        string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a dataset",
		Long:  `Grow a decision tree from a labeled dataset with the ID3 algorithm and save it as a model.`,
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
			md, trainingSet, err := config.readDataset(ctx, &config.input, md)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading training set: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Growing tree from a dataset with %d rows and %d features to predict %s...", len(trainingSet), len(md.Features), md.Label)
			m, err := id3.New(config.Logger()).BuildModel(ctx, trainingSet, md.Features, md.Label)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(8)
			}
			config.Logf("Done")
			err = config.saveModel(ctx, m, config.output)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(9)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.input.location), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.input.table), "table", "T", defaultTable, "table or collection holding the data on DB inputs")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file naming the feature columns and the label column of the input (required for MongoDB inputs, defaults to taking the last column as label and the rest as features)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "location where the model will be saved: a file path for the file store (defaults to STDOUT) or a key for the redis store")
	cmd.PersistentFlags().IntVar(&(config.input.maxConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.input.kind() == mongoDBLocation && gcc.metadataInput == "" {
		return fmt.Errorf("metadata flag is required for MongoDB inputs")
	}
	if gcc.storeKind != fileStore && gcc.output == "" {
		return fmt.Errorf("required output flag was not set")
	}
	return nil
}
