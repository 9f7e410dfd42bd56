// ABOUTME: Utility pack: echo, double and add, plus the status report command.
// ABOUTME: Numeric commands accept ints, floats and numeric strings from the console.

package builtins

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/2389/chainmgr/internal/agent"
	"github.com/2389/chainmgr/internal/chain"
)

// UtilityPack creates the pack with general-purpose commands.
func UtilityPack() *Pack {
	return &Pack{
		ID: "builtin:utility",
		Commands: []*Command{
			{
				Name:        "echo",
				Description: "Return the arguments unchanged",
				Handler:     echo,
			},
			{
				Name:        "double",
				Description: "Multiply a number by two",
				Handler:     chain.Unary(double),
			},
			{
				Name:        "add",
				Description: "Sum two or more numbers",
				Handler:     add,
			},
		},
	}
}

// StatsSource is the read side of agent.Manager the status command needs.
type StatsSource interface {
	Stats() agent.Stats
}

// StatusPack creates the pack whose status command reports manager counts.
func StatusPack(src StatsSource) *Pack {
	return &Pack{
		ID: "builtin:status",
		Commands: []*Command{
			{
				Name:        "status",
				Description: "Summarize agents, chains and attachments",
				Handler: func(context.Context, ...any) (any, error) {
					return Summary(src.Stats()), nil
				},
			},
		},
	}
}

// Summary formats stats as a single line.
func Summary(st agent.Stats) string {
	return fmt.Sprintf("%d agents (%d active, %d idle), %d chains, %d interfaces, %d attached",
		st.TotalAgents, st.ActiveAgents, st.IdleAgents,
		st.TotalChains, st.TotalInterfaces, st.AttachedAgents)
}

func echo(_ context.Context, args ...any) (any, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	default:
		return append([]any(nil), args...), nil
	}
}

func double(v any) (any, error) {
	n, err := number(v)
	if err != nil {
		return nil, err
	}
	if i, ok := n.(int); ok {
		return i * 2, nil
	}
	return n.(float64) * 2, nil
}

func add(_ context.Context, args ...any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: add wants at least 2 arguments, got %d", chain.ErrInvalidArguments, len(args))
	}

	var (
		isum    int
		fsum    float64
		isFloat bool
	)
	for _, arg := range args {
		n, err := number(arg)
		if err != nil {
			return nil, err
		}
		switch n := n.(type) {
		case int:
			isum += n
			fsum += float64(n)
		case float64:
			isFloat = true
			fsum += n
		}
	}
	if isFloat {
		return fsum, nil
	}
	return isum, nil
}

// number normalizes v to int or float64.
func number(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %v is not a number", chain.ErrInvalidArguments, v)
}

// RegisterAll registers the pipeline, utility and status packs.
func RegisterAll(registry *Registry, src StatsSource) error {
	for _, pack := range standardPacks(src) {
		if err := registry.RegisterPack(pack); err != nil {
			return err
		}
	}
	return nil
}

// StandardNames returns the names of every command RegisterAll provides,
// sorted.
func StandardNames() []string {
	var names []string
	for _, pack := range standardPacks(nil) {
		for _, cmd := range pack.Commands {
			names = append(names, cmd.Name)
		}
	}
	sort.Strings(names)
	return names
}

func standardPacks(src StatsSource) []*Pack {
	return []*Pack{PipelinePack(), UtilityPack(), StatusPack(src)}
}
