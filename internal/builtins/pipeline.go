// ABOUTME: Pipeline pack: process, validate and transform string payloads.
// ABOUTME: These are the stage commands used by the demo chains.

package builtins

import (
	"fmt"
	"strings"

	"github.com/2389/chainmgr/internal/chain"
)

// PipelinePack creates the pack with the data pipeline stage commands.
func PipelinePack() *Pack {
	return &Pack{
		ID: "builtin:pipeline",
		Commands: []*Command{
			{
				Name:        "process",
				Description: `Prefix the payload with "Processed: "`,
				Handler:     chain.StringFunc(Process),
			},
			{
				Name:        "validate",
				Description: "Report whether the payload is non-empty",
				Handler:     chain.Unary(validate),
			},
			{
				Name:        "transform",
				Description: "Upper-case the payload",
				Handler:     chain.StringFunc(strings.ToUpper),
			},
		},
	}
}

// Process marks data as processed.
func Process(data string) string {
	return "Processed: " + data
}

func validate(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: want string, got %T", chain.ErrInvalidArguments, v)
	}
	return len(s) > 0, nil
}
