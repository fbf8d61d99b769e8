package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoeyai/zoeyuia/pkg/uia"
	"github.com/zoeyai/zoeyuia/pkg/uia/memtree"
)

func newDumpCmd(a *app) *cobra.Command {
	var t target
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "打印元素的整棵子树",
		Long:  "打印元素的整棵子树。--json 输出快照，可作为 --backend memtree --snapshot 的输入离线回放。",
		Args:  cobra.NoArgs,
	}
	t.bindElement(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 快照输出（包含根元素）")

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		el, err := t.element(cmd.Context(), a)
		if err != nil {
			return err
		}

		if asJSON {
			snap, err := memtree.Capture(el)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		out, err := uia.DumpDescendants(el)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	})
	return cmd
}
