package cmd

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/nibzard/taskline/internal/config"
	"github.com/nibzard/taskline/internal/logging"
)

// tailCommand tails the latest session transcript for the task file.
func tailCommand(ctx context.Context, cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("taskline tail", flag.ContinueOnError)
	fs.SetOutput(s.err)
	follow := fs.Bool("f", false, "Follow the transcript (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the transcript (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List transcripts instead of tailing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := taskPath(cfg, fs.Args())
	if err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, path)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	if *list {
		return listRuns(logDir, s)
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(s.out, "No transcripts found.")
		return nil
	}

	fmt.Fprintf(s.out, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(s.out, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(s.out)

	return logging.TailLog(ctx, s.out, logPath, *n, *follow)
}

func listRuns(logDir string, s streams) error {
	runs, err := logging.FindLogRuns(logDir)
	if err != nil || len(runs) == 0 {
		fmt.Fprintln(s.out, "No transcripts found.")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tMODIFIED\tSIZE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", r.RunID, r.ModTime.Format("2006-01-02 15:04:05"), r.Size)
	}
	return tw.Flush()
}
