package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rangecard/backend/internal/solutions"
)

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file]",
		Short: "Solve a JSON list of requests read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) > 0 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(a.in)
			}
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			reqs, err := decodeRequests(data)
			if err != nil {
				return err
			}

			items, err := solutions.NewService(a.cfg, a.catalog).SolveBatch(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{"results": items})
		},
	}
}

// decodeRequests accepts either a bare array or {"requests": [...]}.
func decodeRequests(data []byte) ([]solutions.Request, error) {
	data = bytes.TrimSpace(data)
	var reqs []solutions.Request
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &reqs); err != nil {
			return nil, fmt.Errorf("decoding requests: %w", err)
		}
		return reqs, nil
	}

	var body struct {
		Requests []solutions.Request `json:"requests"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decoding requests: %w", err)
	}
	return body.Requests, nil
}
