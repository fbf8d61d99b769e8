package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoeyai/zoeyuia/pkg/process"
	"github.com/zoeyai/zoeyuia/pkg/uia"
)

func newWindowsCmd(a *app) *cobra.Command {
	var pid int
	var processName string
	var showProcess bool

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "列出桌面顶层窗口",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().IntVar(&pid, "pid", 0, "只显示该进程的窗口")
	cmd.Flags().StringVar(&processName, "process", "", "只显示该进程名的窗口")
	cmd.Flags().BoolVar(&showProcess, "show-process", false, "同时显示窗口所属的进程名")

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		pids := map[int]bool{}
		if pid != 0 {
			if !process.IsProcessRunning(pid) {
				return fmt.Errorf("进程 %d 未运行", pid)
			}
			pids[pid] = true
		}
		if processName != "" {
			procs, err := process.FindProcess(processName)
			if err != nil {
				return err
			}
			for _, p := range procs {
				pids[p.PID] = true
			}
		}

		root, err := uia.RootElement()
		if err != nil {
			return err
		}
		names := map[int]string{}
		return uia.Walk(root, uia.ScopeChildren, func(_ uia.Node, p uia.Properties, _ int) bool {
			if len(pids) > 0 && !pids[p.ProcessID] {
				return true
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s,\tpid=%d,\thwnd=0x%X", uia.DumpLine{Properties: p}, p.ProcessID, p.NativeWindowHandle)
			if showProcess {
				fmt.Fprintf(out, ",\tprocess=%s", processNameOf(names, p.ProcessID))
			}
			fmt.Fprintln(out)
			return true
		})
	})
	return cmd
}

// processNameOf 查不到的进程显示为 "?"
func processNameOf(cache map[int]string, pid int) string {
	if name, ok := cache[pid]; ok {
		return name
	}
	name := "?"
	if info, err := process.GetProcessByPID(pid); err == nil && info.Name != "" {
		name = info.Name
	}
	cache[pid] = name
	return name
}
