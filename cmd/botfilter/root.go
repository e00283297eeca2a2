package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/botfilter"
	"github.com/dmitrymomot/botfilter/pkg/config"
	"github.com/dmitrymomot/botfilter/pkg/logger"
	"github.com/dmitrymomot/botfilter/pkg/requestid"
)

// globalFlags override configuration loaded from the environment.
type globalFlags struct {
	envFile       string
	ipFile        string
	excludeFile   string
	includeFile   string
	customInclude []string
	customExclude []string
	listsFile     string
	timezone      string
	logLevel      string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "botfilter",
		Short:         "Classify requests as browsers or spiders and robots",
		Long:          "botfilter evaluates user agents and IP addresses against the IAB/ABC International Spiders and Bots lists.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "load environment variables from this file")
	pf.StringVar(&flags.ipFile, "ip-file", "", "IP ranges list (BOTFILTER_IP_FILE)")
	pf.StringVar(&flags.excludeFile, "exclude-file", "", "exclude list (BOTFILTER_EXCLUDE_FILE)")
	pf.StringVar(&flags.includeFile, "include-file", "", "include list (BOTFILTER_INCLUDE_FILE)")
	pf.StringSliceVar(&flags.customInclude, "custom-include", nil, "extra user agent substrings treated as browsers")
	pf.StringSliceVar(&flags.customExclude, "custom-exclude", nil, "extra user agent substrings treated as spiders")
	pf.StringVar(&flags.listsFile, "custom-lists", "", "YAML file with include/exclude custom lists")
	pf.StringVar(&flags.timezone, "timezone", "", "time zone of inactive dates (BOTFILTER_TIMEZONE)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newCheckCmd(flags), newBatchCmd(flags), newServeCmd(flags))
	return root
}

// resolveConfig reads the environment and applies flag overrides.
func (f *globalFlags) resolveConfig() (config.Config, error) {
	if f.envFile != "" {
		if err := config.LoadEnv(f.envFile); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.IPFile, f.ipFile)
	override(&cfg.ExcludeFile, f.excludeFile)
	override(&cfg.IncludeFile, f.includeFile)
	override(&cfg.CustomListsFile, f.listsFile)
	override(&cfg.Timezone, f.timezone)
	override(&cfg.LogLevel, f.logLevel)
	cfg.CustomInclude = append(cfg.CustomInclude, f.customInclude...)
	cfg.CustomExclude = append(cfg.CustomExclude, f.customExclude...)
	return cfg, nil
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithEnvironment(cfg.Env, "botfilter"),
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(w),
		logger.WithAttr(logger.Component("cli")),
		logger.WithContextExtractors(requestid.LogExtractor, botfilter.LogExtractor),
	), nil
}

// loadClassifier builds the classifier for a command. Every failure is a loadError.
func (f *globalFlags) loadClassifier(cmd *cobra.Command) (*botfilter.Classifier, *slog.Logger, error) {
	cfg, err := f.resolveConfig()
	if err != nil {
		return nil, nil, loadError{err}
	}
	log, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, loadError{err}
	}
	c, err := botfilter.FromConfig(cfg, botfilter.WithLogger(log))
	if err != nil {
		log.Error("failed to load reference lists", logger.Error(err))
		return nil, nil, loadError{err}
	}
	return c, log, nil
}
