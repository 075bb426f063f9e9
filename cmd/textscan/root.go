package main

import (
	"bufio"
	"bytes"
	goflag "flag"
	"io"

	"github.com/gomlx/go-textscan/internal/config"
	"github.com/gomlx/go-textscan/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// maxLineSize is the longest input line read from stdin.
const maxLineSize = 64 << 20

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()
	var (
		cfgFile string
		active  config.Config
	)

	cmd := &cobra.Command{
		Use:           "textscan",
		Short:         "Count and extract sentences and tokens from text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			active = loaded
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cfg := func() config.Config { return active }
	cmd.AddCommand(newSentencesCmd(cfg))
	cmd.AddCommand(newCountTokensCmd(cfg))
	cmd.AddCommand(newTokensCmd(cfg))
	cmd.AddCommand(newSplitTokensCmd(cfg))
	return cmd
}

// readInput returns the elements to scan: args if given, otherwise the lines of r. Elements
// equal to missing are missing, and each element must be valid UTF-8.
func readInput(args []string, r io.Reader, missing string) (text.Spans, error) {
	if len(args) > 0 {
		spans := make(text.Spans, len(args))
		for i, arg := range args {
			s, err := parseElement([]byte(arg), missing)
			if err != nil {
				return nil, errors.WithMessagef(err, "argument %d", i+1)
			}
			spans[i] = s
		}
		return spans, nil
	}

	var spans text.Spans
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSuffix(scanner.Bytes(), []byte("\r"))
		s, err := parseElement(bytes.Clone(line), missing)
		if err != nil {
			return nil, errors.WithMessagef(err, "input line %d", len(spans)+1)
		}
		spans = append(spans, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	return spans, nil
}

func parseElement(b []byte, missing string) (text.Span, error) {
	if missing != "" && string(b) == missing {
		return text.Missing(), nil
	}
	return text.Validated(b)
}
