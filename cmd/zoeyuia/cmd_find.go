package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

func newFindCmd(a *app) *cobra.Command {
	var t target
	var all bool

	cmd := &cobra.Command{
		Use:   "find",
		Short: "在窗口中查找元素",
		Long: `在窗口中查找元素，未指定窗口条件时从桌面根节点开始。

  zoeyuia find --pid 1234 --type Button --name 确定
  zoeyuia find --process notepad.exe --type Edit --subtree --timeout 3s
  zoeyuia find --pid 1234 --type ListItem --subtree --all`,
		Args: cobra.NoArgs,
	}
	t.bindElement(cmd.Flags())
	cmd.Flags().BoolVar(&all, "all", false, "列出所有匹配项（不等待）")
	_ = cmd.MarkFlagRequired("type")

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !all {
			el, err := t.element(cmd.Context(), a)
			if err != nil {
				return err
			}
			p, err := el.Properties()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, uia.DumpLine{Properties: p})
			return nil
		}

		w, err := t.window(cmd.Context(), a)
		if err != nil {
			return err
		}
		c, err := t.criteria()
		if err != nil {
			return err
		}
		nodes, err := uia.FindAll(w, c, t.scope())
		if err != nil {
			return err
		}
		for _, n := range nodes {
			p, err := n.Properties()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, uia.DumpLine{Properties: p})
		}
		if len(nodes) == 0 {
			return &uia.NotFoundError{Criteria: c, Scope: t.scope()}
		}
		return nil
	})
	return cmd
}
