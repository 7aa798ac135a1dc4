package main

import (
	"fmt"
	"os"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeInput string
	input     dataLocation
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a labeled test dataset`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := config.Context()
			defer config.ContextCancelFunc()()
			m, err := config.loadModel(ctx, config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			md := modelMetadata(m)
			if md == nil && config.input.kind() == mongoDBLocation {
				fmt.Fprintln(os.Stderr, "the model does not name its label column, which is needed to read a MongoDB collection")
				os.Exit(4)
			}
			_, testingSet, err := config.readDataset(ctx, &config.input, md)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading testing set: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Testing tree against dataset with %d rows...", len(testingSet))
			successRate, unseenCount, err := tree.Test(ctx, m.Root, m.Features, testingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing tree: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Done")
			fmt.Fprintf(cmd.OutOrStdout(), "%f success rate, failed to make a prediction for %d samples\n", successRate, unseenCount)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.input.location), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to test the tree against (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.input.table), "table", "T", defaultTable, "table or collection holding the data on DB inputs")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "location of the model to test (required)")
	cmd.PersistentFlags().IntVar(&(config.input.maxConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

/*
modelMetadata returns the metadata to select the columns of a dataset
for the model, or nil if the model does not name its label, in which
case datasets must lay out the model's features in order followed by
the label.
*/
func modelMetadata(m *tree.Model) *feature.Metadata {
	if m.Label == "" {
		return nil
	}
	return &feature.Metadata{Features: m.Features, Label: m.Label}
}
