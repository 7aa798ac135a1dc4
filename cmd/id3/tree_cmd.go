package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput string
	rules     bool
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a tree",
		Long:  `Show the decision tree of a model, either drawn or as a list of rules`,
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
			out := cmd.OutOrStdout()
			if !config.rules {
				fmt.Fprintln(out, strings.TrimSuffix(m.String(), "\n"))
				return
			}
			err = tree.Walk(ctx, m.Root, false, func(ctx context.Context, p tree.Path, n tree.Node) error {
				l, ok := n.(*tree.Leaf)
				if !ok {
					return nil
				}
				label := m.Label
				if label == "" {
					label = "label"
				}
				if len(p) == 0 {
					_, err := fmt.Fprintf(out, "%s is %s\n", label, l.Label)
					return err
				}
				_, err := fmt.Fprintf(out, "if %s then %s is %s\n", p, label, l.Label)
				return err
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "location of the model whose tree to show (required)")
	cmd.Flags().BoolVarP(&(config.rules), "rules", "r", false, "show the tree as a list of rules, one per leaf")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}
