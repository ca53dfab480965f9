package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dougneves/doug-minigames/internal/config"
	"github.com/dougneves/doug-minigames/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cobra.CheckErr(newCmd().Execute())
}

// cmdFlags holds command-line overrides. Anything left at its zero value
// defers to the config file (or its defaults).
type cmdFlags struct {
	configPath      string
	apiKey          string
	videoID         string
	joinCommand     string
	throwCommand    string
	breakCommand    string
	minPollInterval time.Duration
}

func newCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("EGGPARTY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var flags cmdFlags

	cmd := &cobra.Command{
		Use:           "eggparty",
		Short:         "Host the Very Eggs minigame on a YouTube live stream.",
		Args:          cobra.ExactArgs(0),
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(&flags)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&flags.configPath, "config", "", "path to the config file (env: EGGPARTY_CONFIG)")
	fs.StringVar(&flags.apiKey, "api-key", "", "YouTube Data API key (env: EGGPARTY_API_KEY)")
	fs.StringVar(&flags.videoID, "video-id", "", "live video id to connect to (env: EGGPARTY_VIDEO_ID)")
	fs.StringVar(&flags.joinCommand, "join-command", "", "chat command that joins the lobby (env: EGGPARTY_JOIN_COMMAND)")
	fs.StringVar(&flags.throwCommand, "throw-command", "", "chat command that throws an egg (env: EGGPARTY_THROW_COMMAND)")
	fs.StringVar(&flags.breakCommand, "break-command", "", "chat command that breaks an egg on yourself (env: EGGPARTY_BREAK_COMMAND)")
	fs.DurationVar(&flags.minPollInterval, "min-poll-interval", 0, "floor for the chat poll interval (env: EGGPARTY_MIN_POLL_INTERVAL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("eggparty v{{.Version}}\n")

	return cmd
}

func run(flags *cmdFlags) error {
	cfgPath := flags.configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v — settings will not be saved\n", err)
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Command-line overrides win over the file.
	if flags.apiKey != "" {
		cfg.APIKey = flags.apiKey
	}
	if flags.videoID != "" {
		cfg.VideoID = flags.videoID
	}
	if flags.joinCommand != "" {
		cfg.JoinCommand = flags.joinCommand
	}
	if flags.throwCommand != "" {
		cfg.ThrowCommand = flags.throwCommand
	}
	if flags.breakCommand != "" {
		cfg.BreakCommand = flags.breakCommand
	}
	if flags.minPollInterval > 0 {
		cfg.MinPollInterval = flags.minPollInterval
	}

	app := tui.NewApp(cfg, cfgPath, version)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
