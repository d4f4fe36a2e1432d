package cmd

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/nibzard/taskline/internal/config"
)

// configCommand prints the effective configuration and where each value
// came from.
func configCommand(cws *config.ConfigWithSources, args []string, s streams) error {
	fs := flag.NewFlagSet("taskline config", flag.ContinueOnError)
	fs.SetOutput(s.err)
	example := fs.Bool("example", false, "Print an example config file")
	schema := fs.Bool("schema", false, "Print the JSON Schema config files must satisfy")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(s.out, config.ExampleConfig())
		return nil
	}
	if *schema {
		fmt.Fprint(s.out, config.SchemaJSON())
		return nil
	}

	fmt.Fprintln(s.out, "Config files:")
	if len(cws.Files) == 0 {
		fmt.Fprintf(s.out, "  (none; user file would be %s)\n", config.UserConfigPath())
	}
	for _, f := range cws.Files {
		fmt.Fprintf(s.out, "  %s\n", f)
	}
	fmt.Fprintln(s.out)

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, field := range config.Fields() {
		fmt.Fprintf(tw, "%s\t%q\t(%s)\n", field, cws.Config.Value(field), cws.Sources[field])
	}
	return tw.Flush()
}
