package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doITmagic/phpgen/internal/logger"
	"github.com/doITmagic/phpgen/internal/tools"
	"github.com/doITmagic/phpgen/internal/watch"
)

func watchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <blueprint.yaml> [dir]",
		Short: "Render a blueprint again whenever files under dir change",
		Long:  "Render a blueprint once, then again each time files under dir (default: the blueprint's directory) change.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			dir := filepath.Dir(args[0])
			if len(args) == 2 {
				dir = args[1]
			}

			tool := tools.NewRenderBlueprintTool(a.source, a.cfg.Generator)
			render := func(ctx context.Context) error {
				result, err := tool.Execute(ctx, map[string]interface{}{"file_path": args[0]})
				if err != nil {
					return err
				}
				return a.emit(cmd, out, result)
			}
			if err := render(cmd.Context()); err != nil {
				return err
			}

			w, err := watch.New(dir, render, watch.Options{
				Debounce:   a.cfg.Watch.Debounce,
				Extensions: a.cfg.Watch.Extensions,
				Ignore:     []string{out},
				Logger:     logger.GetDefault(),
			})
			if err != nil {
				return err
			}
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().StringP("out", "o", "", "file the rendered source is written to")
	return cmd
}
