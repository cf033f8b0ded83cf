// cmd/clipsyncctl is the CLI entry-point built with Cobra, the same
// shape the reference distributed-kvstore codebase's cmd/client/main.go
// uses for its subcommands -- except start/stop/restart manage the
// clipsyncd process directly (spec §6) and every other subcommand speaks
// the Unix-socket line protocol (spec §4.4) instead of HTTP, since the
// local command surface is a socket here, not a REST API.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"clipsync/internal/daemonctl"
	"clipsync/internal/localsock"
)

var (
	socketPath  string
	pidFile     string
	daemonBin   string
	daemonFlags []string
)

func main() {
	root := &cobra.Command{
		Use:   "clipsyncctl",
		Short: "control and talk to the clipsync daemon",
	}

	root.PersistentFlags().StringVar(&socketPath, "socket-path", "/tmp/clipsyncd.sock", "unix socket the daemon listens on")
	root.PersistentFlags().StringVar(&pidFile, "pid-file", "/tmp/clipsyncd.pid", "daemon pid file")
	root.PersistentFlags().StringVar(&daemonBin, "daemon-bin", "clipsyncd", "path to the clipsyncd binary")
	root.PersistentFlags().StringArrayVar(&daemonFlags, "daemon-flag", nil, "extra flag passed through to clipsyncd on start (repeatable)")

	root.AddCommand(
		startCmd(),
		stopCmd(),
		restartCmd(),
		copyCmd(),
		pasteCmd(),
		historyCmd(),
		filesCmd(),
		uploadCmd(),
		downloadCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "start the clipsync daemon in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			return start()
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "stop the clipsync daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return daemonctl.Stop(pidFile)
		},
	}
}

func restartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "stop then start the clipsync daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := daemonctl.Stop(pidFile); err != nil && err != daemonctl.ErrNotRunning {
				return err
			}
			return start()
		},
	}
}

func start() error {
	args := append([]string{"-pid-file", pidFile, "-socket-path", socketPath}, daemonFlags...)
	if err := daemonctl.Spawn(pidFile, daemonBin, args); err != nil {
		return err
	}
	fmt.Println("clipsyncd started")
	return nil
}

func copyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "read the OS clipboard and replicate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAndPrint("copy")
		},
	}
}

func pasteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paste [N]",
		Short: "write the N-th most recent entry (0 = newest) to the OS clipboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return sendAndPrint("paste")
			}
			return sendAndPrint("paste " + args[0])
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "show the 20 most recent clipboard summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAndPrint("history")
		},
	}
}

func filesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "list uploaded files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAndPrint("files")
		},
	}
}

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload NAME PATH",
		Short: "upload a file under NAME from the local PATH",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAndPrint("upload " + strings.Join(args, " "))
		},
	}
}

func downloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download NAME [PATH]",
		Short: "download an uploaded file to PATH (defaults to NAME)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			path := name
			if len(args) == 2 {
				path = args[1]
			}
			return sendAndPrint(fmt.Sprintf("download %s %s", name, path))
		},
	}
}

func sendAndPrint(command string) error {
	reply, err := localsock.SendCommand(socketPath, command)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}
