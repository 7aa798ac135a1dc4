package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/id3/dataset/csv"
	"github.com/pbanos/id3/dataset/inputsample"
	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
)

type classifyCmdConfig struct {
	*rootCmdConfig
	treeInput    string
	sampleInput  string
	output       string
	unseenOutput string
	ask          bool
}

type promptRequester struct {
	w io.Writer
}

func classifyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &classifyCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify samples with a tree",
		Long:  `Use a model to predict the label of every sample on a CSV input whose header names the model's features`,
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
			if config.ask {
				label, err := config.askAndClassify(m, cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(5)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Predicted label is %s\n", label)
				return
			}
			config.Logf("Reading samples from %s...", &dataLocation{location: config.sampleInput})
			samples, err := csv.ReadSamplesFromFilePath(config.sampleInput, m.Features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			labels, err := config.classify(m, samples)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			if config.output == "" {
				out := cmd.OutOrStdout()
				for _, l := range labels {
					fmt.Fprintln(out, l)
				}
				return
			}
			err = config.writeClassified(m, samples, labels)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "location of the model to classify the samples with (required)")
	cmd.PersistentFlags().StringVarP(&(config.sampleInput), "input", "i", "", "path to a CSV file with the samples to classify (defaults to STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV file to write the samples to along with their predicted label (defaults to printing only the labels on STDOUT)")
	cmd.PersistentFlags().BoolVarP(&(config.ask), "ask", "a", false, "classify a single sample answering questions about the attributes the tree needs instead of reading samples from the input")
	cmd.PersistentFlags().StringVarP(&(config.unseenOutput), "unseen-value", "u", "?", "label to output for samples taking values the tree has not seen")
	return cmd
}

func (ccc *classifyCmdConfig) Validate() error {
	if ccc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

/*
classify returns the label predicted for every sample. Samples with
values the tree has not seen are logged and get the unseen-value label.
*/
func (ccc *classifyCmdConfig) classify(m *tree.Model, samples [][]string) ([]string, error) {
	labels := make([]string, 0, len(samples))
	for i, sample := range samples {
		label, err := m.Classify(sample)
		if err != nil {
			var uve *tree.UnseenValueError
			if !errors.As(err, &uve) {
				return nil, fmt.Errorf("classifying sample %d: %w", i+1, err)
			}
			ccc.Logger().Warn("cannot classify sample", "sample", i+1, "attribute", uve.Attribute, "value", uve.Value)
			label = ccc.unseenOutput
		}
		labels = append(labels, label)
	}
	return labels, nil
}

func (ccc *classifyCmdConfig) askAndClassify(m *tree.Model, r io.Reader, w io.Writer) (string, error) {
	sample := inputsample.New(r, promptRequester{w})
	label, err := tree.ClassifyBy(m.Root, sample.ValueFor)
	if err != nil {
		return "", err
	}
	ccc.Logf("Classified sample with %v", sample.Answers())
	return label, nil
}

func (pr promptRequester) RequestValueFor(attribute string, values []string) error {
	_, err := fmt.Fprintf(pr.w, "Please provide the sample's %s:\n(valid values are %v)\n", attribute, values)
	return err
}

func (pr promptRequester) RejectValueFor(attribute, value string, values []string) error {
	_, err := fmt.Fprintf(pr.w, "%s is not a valid value for the sample's %s. Please provide one of %v.\n", value, attribute, values)
	return err
}

func (ccc *classifyCmdConfig) writeClassified(m *tree.Model, samples [][]string, labels []string) error {
	f, err := os.Create(ccc.output)
	if err != nil {
		return err
	}
	label := m.Label
	if label == "" {
		label = "label"
	}
	err = csv.WriteSamples(f, m.Features, label, samples, labels)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
