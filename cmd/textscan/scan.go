package main

import (
	"github.com/gomlx/go-textscan/batch"
	"github.com/gomlx/go-textscan/internal/config"
	"github.com/gomlx/go-textscan/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSentencesCmd(cfg func() config.Config) *cobra.Command {
	var (
		split bool
		size  int
	)
	cmd := &cobra.Command{
		Use:   "sentences [text...]",
		Short: "Count (or split) the sentences of each element",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			src, err := readInput(args, cmd.InOrStdin(), c.Input.Missing)
			if err != nil {
				return err
			}
			sc, err := c.SentenceConfig()
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), c.Input.Missing)
			if split {
				sc.Size = size
				lists, err := batch.SplitSentences(src, sc)
				if err != nil {
					return scanError(err)
				}
				return p.chunks(lists)
			}
			counts, err := batch.CountSentences(src, sc)
			if err != nil {
				return scanError(err)
			}
			return p.counts(counts)
		},
	}
	cmd.Flags().BoolVar(&split, "split", false, "Print the sentences instead of counting them")
	cmd.Flags().IntVar(&size, "size", 1, "Sentences per chunk with --split")
	return cmd
}

func newSplitTokensCmd(cfg func() config.Config) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "split-tokens [text...]",
		Short: "Split each element into chunks of up to --size retained tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			src, err := readInput(args, cmd.InOrStdin(), c.Input.Missing)
			if err != nil {
				return err
			}
			wf, err := c.WordFilter()
			if err != nil {
				return err
			}
			lists, err := batch.SplitTokens(src, wf, size)
			if err != nil {
				return scanError(err)
			}
			return newPrinter(cmd.OutOrStdout(), c.Input.Missing).chunks(lists)
		},
	}
	cmd.Flags().IntVar(&size, "size", 1, "Retained tokens per chunk")
	return cmd
}

func newCountTokensCmd(cfg func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "count-tokens [text...]",
		Short: "Count the retained tokens of each element",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			src, err := readInput(args, cmd.InOrStdin(), c.Input.Missing)
			if err != nil {
				return err
			}
			wf, err := c.WordFilter()
			if err != nil {
				return err
			}
			counts, err := batch.CountTokens(src, wf)
			if err != nil {
				return scanError(err)
			}
			return newPrinter(cmd.OutOrStdout(), c.Input.Missing).counts(counts)
		},
	}
}

func newTokensCmd(cfg func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [text...]",
		Short: "Print the normalized tokens of each element, _ for dropped ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			src, err := readInput(args, cmd.InOrStdin(), c.Input.Missing)
			if err != nil {
				return err
			}
			wf, err := c.WordFilter()
			if err != nil {
				return err
			}
			lists, err := batch.Tokens(src, wf, c.BatchOptions())
			if err != nil {
				return scanError(err)
			}
			return newPrinter(cmd.OutOrStdout(), c.Input.Missing).tokens(lists)
		},
	}
}

// scanError annotates a batch failure with its kind.
func scanError(err error) error {
	return errors.WithMessagef(err, "%s failure", text.KindOf(err))
}
