package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yishn/tikzcd-editor/diagram"
	"github.com/yishn/tikzcd-editor/tikzcd"
)

var rootCmd = &cobra.Command{
	Use:   "tikzcd",
	Short: "tikzcd diagram converter",
	Long: `tikzcd converts commutative diagrams between tikzcd source text and the
JSON, base64 and compressed encodings used to share them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug output")
	rootCmd.PersistentFlags().Bool("strict", false, "Stop lexing at the first unrecognized character")
	rootCmd.PersistentFlags().String("ids", "counter", "Node id scheme: counter or uuid")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("strict", rootCmd.PersistentFlags().Lookup("strict"))
	_ = viper.BindPFlag("ids", rootCmd.PersistentFlags().Lookup("ids"))
}

func initConfig() {
	viper.SetEnvPrefix("TIKZCD")
	viper.AutomaticEnv()

	level := slog.LevelWarn
	switch {
	case viper.GetBool("debug"):
		level = slog.LevelDebug
	case viper.GetBool("verbose"):
		level = slog.LevelInfo
	}
	tikzcd.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// allocator returns a fresh node id allocator for the configured scheme.
func allocator() (diagram.IDAllocator, error) {
	switch scheme := viper.GetString("ids"); scheme {
	case "counter":
		return diagram.NewCounterAllocator(0), nil
	case "uuid":
		return diagram.UUIDAllocator{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q (want counter or uuid)", scheme)
	}
}

// parseTeX parses tikzcd source with the configured options.
func parseTeX(src []byte) (*diagram.Diagram, error) {
	ids, err := allocator()
	if err != nil {
		return nil, err
	}
	d, err := tikzcd.Parse(src,
		tikzcd.WithAllocator(ids),
		tikzcd.WithStrictLexing(viper.GetBool("strict")),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing diagram: %w", err)
	}
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Diagram: %d nodes, %d edges\n", len(d.Nodes), len(d.Edges))
	}
	return d, nil
}

// readInput reads the file named by the first argument, or standard input
// when there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return src, nil
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading diagram file: %w", err)
	}
	return src, nil
}
