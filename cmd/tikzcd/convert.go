package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yishn/tikzcd-editor/diagram"
	"github.com/yishn/tikzcd-editor/tikzcd"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file.tex]",
	Short: "Convert tikzcd source to a wire encoding",
	Long:  "Parse tikzcd source (from a file or stdin) and print it as json, base64 or compressed.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Convert a wire encoding to tikzcd source",
	Long:  "Decode a json, base64 or compressed diagram (from a file or stdin) and print it as tikzcd source.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	parseCmd.Flags().StringP("format", "f", "json", "Output encoding: json, base64 or compressed")
	renderCmd.Flags().StringP("format", "f", "json", "Input encoding: json, base64 or compressed")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(renderCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	src, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	d, err := parseTeX(src)
	if err != nil {
		return err
	}

	out, err := encode(d, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	src, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	ids, err := allocator()
	if err != nil {
		return err
	}
	d, err := decode(src, format, ids)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tikzcd.ToTeX(d))
	return nil
}

func encode(d *diagram.Diagram, format string) (string, error) {
	switch format {
	case "json":
		data, err := diagram.ToJSON(d)
		return string(data), err
	case "base64":
		return diagram.ToBase64(d)
	case "compressed":
		return diagram.ToCompressed(d)
	default:
		return "", fmt.Errorf("unknown format %q (want json, base64 or compressed)", format)
	}
}

func decode(src []byte, format string, ids diagram.IDAllocator) (*diagram.Diagram, error) {
	switch format {
	case "json":
		return diagram.FromJSON(src, ids)
	case "base64":
		return diagram.FromBase64(strings.TrimSpace(string(src)), ids)
	case "compressed":
		return diagram.FromCompressed(strings.TrimSpace(string(src)), ids)
	default:
		return nil, fmt.Errorf("unknown format %q (want json, base64 or compressed)", format)
	}
}
