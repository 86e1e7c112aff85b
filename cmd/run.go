package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/scholarly-group/screening-cli/internal/model"
	"github.com/scholarly-group/screening-cli/internal/report"
	"github.com/scholarly-group/screening-cli/internal/store"
)

var (
	runInput   string
	runXLSX    string
	runNoStore bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Screen a batch of papers",
	Long:  "Reads a batch of papers from a JSON or YAML file and runs the full screening pipeline. The result envelope is printed to stdout as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		papers, err := loadPapers(runInput)
		if err != nil {
			return err
		}

		var st store.Store
		if !runNoStore {
			st, err = initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
		}

		exec, err := initExecutor(st)
		if err != nil {
			return err
		}

		result, runErr := exec.Run(ctx, papers)

		if runXLSX != "" && result != nil && result.Success {
			if err := report.WriteXLSX(result, runXLSX); err != nil {
				zap.L().Warn("failed to write xlsx report", zap.Error(err))
			} else {
				zap.L().Info("xlsx report written", zap.String("path", runXLSX))
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return eris.Wrap(err, "encode result")
		}

		return runErr
	},
}

// loadPapers reads the input batch. The file may be JSON or YAML, holding
// either a bare array of papers or an object with a "papers" key.
func loadPapers(path string) ([]model.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read input %s", path)
	}

	var wrapped struct {
		Papers []model.Paper `json:"papers" yaml:"papers"`
	}
	var papers []model.Paper

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Papers) > 0 {
			return wrapped.Papers, nil
		}
		if err := yaml.Unmarshal(data, &papers); err != nil {
			return nil, eris.Wrapf(err, "parse yaml input %s", path)
		}
	default:
		if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Papers) > 0 {
			return wrapped.Papers, nil
		}
		if err := json.Unmarshal(data, &papers); err != nil {
			return nil, eris.Wrapf(err, "parse json input %s", path)
		}
	}

	return papers, nil
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "path to a JSON or YAML file with the paper batch (required)")
	runCmd.Flags().StringVar(&runXLSX, "xlsx", "", "write an XLSX report to this path on success")
	runCmd.Flags().BoolVar(&runNoStore, "no-store", false, "skip run persistence")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}
