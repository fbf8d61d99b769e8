package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

func newSetTextCmd(a *app) *cobra.Command {
	var t target
	var text string

	cmd := &cobra.Command{
		Use:   "set-text",
		Short: "向元素写入文本（不支持 ValuePattern 时模拟键盘输入）",
		Args:  cobra.NoArgs,
	}
	t.bindElement(cmd.Flags())
	cmd.Flags().StringVar(&text, "text", "", "要写入的文本")
	_ = cmd.MarkFlagRequired("text")

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		el, err := t.element(cmd.Context(), a)
		if err != nil {
			return err
		}
		return uia.SetText(el, text)
	})
	return cmd
}

func newSelectionCmd(a *app) *cobra.Command {
	var t target

	cmd := &cobra.Command{
		Use:   "selection",
		Short: "打印元素当前选中项的文本",
		Args:  cobra.NoArgs,
	}
	t.bindElement(cmd.Flags())

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		el, err := t.element(cmd.Context(), a)
		if err != nil {
			return err
		}
		text, err := uia.GetSelectionText(el)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	})
	return cmd
}

func newClickCmd(a *app) *cobra.Command {
	var t target

	cmd := &cobra.Command{
		Use:   "click",
		Short: "调用元素的 InvokePattern",
		Args:  cobra.NoArgs,
	}
	t.bindElement(cmd.Flags())

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		el, err := t.element(cmd.Context(), a)
		if err != nil {
			return err
		}
		return uia.Invoke(el)
	})
	return cmd
}
