package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"twstyle/config"
	"twstyle/state"
	"twstyle/style"
)

func prepareEngine(ctx context.Context, cmd *cli.Command) (*state.LocalEnv, error) {
	env := state.EnvFromContext(ctx)
	if err := env.PrepareEngine(); err != nil {
		return nil, err
	}
	if err := applyDeviceFlags(env, cmd); err != nil {
		return nil, err
	}
	return env, nil
}

func resolveUtilities(ctx context.Context, cmd *cli.Command) error {
	env, err := prepareEngine(ctx, cmd)
	if err != nil {
		return err
	}
	if cmd.NArg() == 0 {
		return fmt.Errorf("no utilities to resolve")
	}

	inputs := []any{cmd.Args().Slice()}
	if raw := cmd.String("raw"); raw != "" {
		var m map[string]any
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return fmt.Errorf("unable to parse raw style: %w", err)
		}
		inputs = append(inputs, m)
	}
	s := env.Engine.Style(inputs...)

	var data []byte
	switch format := strings.ToLower(cmd.String("format")); format {
	case "json":
		data, err = json.MarshalIndent(s, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(s)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("unable to encode style: %w", err)
	}
	env.Rpt.StoreData("resolve/input.txt", []byte(strings.Join(cmd.Args().Slice(), " ")))
	env.Rpt.StoreData("resolve/output."+cmd.String("format"), data)

	stats := env.Engine.Stats()
	env.Log.Debug("Resolved", zap.String("partition", env.Engine.PartitionKey()),
		zap.Int("ir hits", stats.IRHits), zap.Int("ir misses", stats.IRMisses))

	_, err = os.Stdout.Write(data)
	return err
}

func matchPrefixes(ctx context.Context, cmd *cli.Command) error {
	env, err := prepareEngine(ctx, cmd)
	if err != nil {
		return err
	}
	var prefixes []string
	for _, arg := range cmd.Args().Slice() {
		for p := range strings.SplitSeq(arg, ":") {
			if p = strings.TrimSpace(p); p != "" {
				prefixes = append(prefixes, p)
			}
		}
	}
	if len(prefixes) == 0 {
		return fmt.Errorf("no prefixes to match")
	}
	fmt.Fprintln(os.Stdout, env.Engine.MatchesPrefixes(prefixes...))
	return nil
}

func sortedUtilities(env *state.LocalEnv) []string {
	names := env.Engine.Utilities()
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return names
}

func listUtilities(ctx context.Context, cmd *cli.Command) error {
	env, err := prepareEngine(ctx, cmd)
	if err != nil {
		return err
	}
	for _, name := range sortedUtilities(env) {
		fmt.Fprintln(os.Stdout, name)
	}
	return nil
}

func generateUtilities(ctx context.Context, cmd *cli.Command) error {
	env, err := prepareEngine(ctx, cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var out io.Writer = os.Stdout
	fname := cmd.Args().Get(0)
	if len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}

	names := sortedUtilities(env)
	data, err := encodeUtilities(names, func(name string) *style.Style {
		return env.Engine.Resolve([]string{name}, nil)
	})
	if err != nil {
		return err
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Writing utilities", zap.Int("count", len(names)), zap.String("file", fname))

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write utilities: %w", err)
	}
	return nil
}

// encodeUtilities writes a JSON object of resolved styles keeping the order
// of names.
func encodeUtilities(names []string, resolve func(string) *style.Style) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(resolve(name))
		if err != nil {
			return nil, fmt.Errorf("unable to encode utility %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	pretty.WriteByte('\n')
	return pretty.Bytes(), nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
