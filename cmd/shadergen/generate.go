package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"aiupstart.com/shadergen/internal/model"
	"aiupstart.com/shadergen/internal/shader"
	"aiupstart.com/shadergen/internal/utils"
	"github.com/spf13/cobra"
)

func newGenerateCommand(a *app) *cobra.Command {
	var asJSON bool
	var outDir string
	cmd := &cobra.Command{
		Use:   "generate <description...>",
		Short: "Generate one shader pair and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			shaderAgent, err := a.newAgent(cmd.Context())
			if err != nil {
				return err
			}
			res, err := shaderAgent.Generate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return reportFailure(cmd, asJSON, err)
			}

			if outDir != "" {
				paths, err := utils.WriteFiles(outDir, map[string]string{
					"vertex.glsl":   res.Pair.Vertex + "\n",
					"fragment.glsl": res.Pair.Fragment + "\n",
				})
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", p)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeIndentedJSON(cmd, model.NewGenerateResponse(res))
			}
			fmt.Fprintln(out, res.Display)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the API response body instead of display code")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Also write vertex.glsl and fragment.glsl into this directory")
	return cmd
}

func reportFailure(cmd *cobra.Command, asJSON bool, err error) error {
	ee, ok := shader.AsExtractionError(err)
	if !ok {
		return err
	}
	if asJSON {
		if werr := writeIndentedJSON(cmd, model.NewErrorResponse(ee)); werr != nil {
			return werr
		}
	} else if ee.Diagnostic != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "--- model output ---\n%s\n--------------------\n", ee.Diagnostic)
	}
	return fmt.Errorf("generate: %s", ee.Message)
}

func writeIndentedJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
