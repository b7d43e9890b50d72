package xlog

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds the CLI flag names used for log configuration, so a caller
// embedding Config inside a larger flag set can rename them to avoid
// collisions.
type Flags struct {
	Level  string
	Format string
}

func (f Flags) newConfig() *Config {
	return &Config{Flags: f}
}

// Config holds CLI flag values for log configuration. Build one with
// NewConfig, wire it into a command with RegisterFlags and (optionally)
// RegisterCompletions, then call NewHandler once flags have been parsed.
type Config struct {
	Level  string
	Format string
	Flags  Flags
}

// NewConfig returns a Config with default flag names ("log-level",
// "log-format") and default values ("info", "text").
func NewConfig() *Config {
	c := Flags{Level: "log-level", Format: "log-format"}.newConfig()
	c.Level = "info"
	c.Format = string(FormatText)
	return c
}

// RegisterFlags adds the logging flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level,
		fmt.Sprintf("log level, one of: %v", AllLevelStrings()))
	flags.StringVar(&c.Format, c.Flags.Format, c.Format,
		fmt.Sprintf("log format, one of: %v", AllFormatStrings()))
}

// RegisterCompletions registers shell completion for the logging flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(AllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Level, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(AllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// NewHandler builds the slog.Handler described by the parsed flag values.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	return NewHandlerFromStrings(w, c.Level, c.Format)
}
