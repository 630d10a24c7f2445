package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/doITmagic/phpgen/internal/logger"
	"github.com/doITmagic/phpgen/internal/tools"
)

func renderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <blueprint.yaml>",
		Short: "Render a YAML blueprint into PHP source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			tool := tools.NewRenderBlueprintTool(a.source, a.cfg.Generator)
			result, err := tool.Execute(cmd.Context(), map[string]interface{}{"file_path": args[0]})
			if err != nil {
				return err
			}
			return a.emit(cmd, out, result)
		},
	}
	cmd.Flags().StringP("out", "o", "", "write to this file instead of stdout")
	return cmd
}

func bodyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "body <path> <Class::method|function>",
		Short: "Print the body of a method or function",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := tools.NewExtractBodyTool(a.source)
			result, err := tool.Execute(cmd.Context(), targetArgs(args[0], args[1]))
			if err != nil {
				return err
			}
			return a.emit(cmd, "", result+"\n")
		},
	}
}

func typesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types <path> <Class::method|Class::$property|function>",
		Short: "List the types a docblock declares",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := targetArgs(args[0], args[1])
			if tag, _ := cmd.Flags().GetString("tag"); tag != "" {
				toolArgs["tag"] = tag
			}
			if param, _ := cmd.Flags().GetString("param"); param != "" {
				toolArgs["parameter"] = param
			}
			tool := tools.NewDocblockTypesTool(a.source)
			result, err := tool.Execute(cmd.Context(), toolArgs)
			if err != nil {
				return err
			}
			return a.emit(cmd, "", result+"\n")
		},
	}
	cmd.Flags().String("tag", "", "docblock tag to read (default return, or var for properties)")
	cmd.Flags().String("param", "", "read the @param types of this parameter")
	return cmd
}

func proxyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxy <path> <Class>",
		Short: "Generate a class forwarding every public method to a wrapped instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := map[string]interface{}{"file_path": args[0], "class": args[1]}
			if name, _ := cmd.Flags().GetString("name"); name != "" {
				toolArgs["name"] = name
			}
			if ns, _ := cmd.Flags().GetString("namespace"); ns != "" {
				toolArgs["namespace"] = ns
			}
			if write, _ := cmd.Flags().GetBool("write"); write {
				toolArgs["write"] = true
			}
			tool := tools.NewGenerateProxyTool(a.source, a.cfg.Generator)
			result, err := tool.Execute(cmd.Context(), toolArgs)
			if err != nil {
				return err
			}
			if _, ok := toolArgs["write"]; ok {
				logger.Info(result)
				return nil
			}
			out, _ := cmd.Flags().GetString("out")
			return a.emit(cmd, out, result)
		},
	}
	cmd.Flags().String("name", "", "proxy class name (default <Class><suffix>)")
	cmd.Flags().Bool("write", false, "save the proxy where composer.json PSR-4 autoload expects it")
	cmd.Flags().String("namespace", "", "proxy namespace (default from config)")
	cmd.Flags().StringP("out", "o", "", "write to this file instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("write", "out")
	return cmd
}

// targetArgs turns "Class::method", "Class::$prop" or "function" into tool
// arguments.
func targetArgs(path, target string) map[string]interface{} {
	args := map[string]interface{}{"file_path": path}
	class, member, ok := strings.Cut(target, "::")
	switch {
	case !ok:
		args["function"] = target
	case strings.HasPrefix(member, "$"):
		args["class"], args["property"] = class, member
	default:
		args["class"], args["method"] = class, strings.TrimSuffix(member, "()")
	}
	return args
}
