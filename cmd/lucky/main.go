// Package main provides the lucky CLI entry point.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"luckythirteen/internal/audio"
	"luckythirteen/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	mute       bool
	seed       int64

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lucky",
	Short: "Lucky Thirteen - an audio puzzle game",
	Long: `Lucky Thirteen is an audio-first puzzle game.

Walk a grid of number stacks with the arrow keys and select cells whose
visible numbers sum to exactly 13. Hitting the target clears the selected
stacks by one; overshooting grows them. Empty cells are wildcards. Clear
every stack to win the round.

Run without arguments to start playing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// Keep structured logs off the terminal the game is drawing on.
		cfg.OutputPaths = []string{"stderr"}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame()
	},
}

// configCmd prints the active settings
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active settings and where they come from",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("config file:   %s\n", path)
		fmt.Printf("board size:    %d\n", cfg.Game.BoardSize)
		fmt.Printf("target:        %d\n", cfg.Game.Target)
		fmt.Printf("sounds dir:    %s\n", cfg.Audio.SoundsDir)
		fmt.Printf("voice:         %s\n", orNone(cfg.Audio.Voice))
		fmt.Printf("music volume:  %.2f\n", cfg.Audio.MusicVolume)
		fmt.Printf("theme:         %s\n", cfg.UI.Theme)
		return nil
	},
}

// configSetCmd updates one setting and writes the file back
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one setting (e.g. game.board_size 5)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := setConfigKey(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return cfg.Save(path)
	},
}

// setConfigKey applies one dotted-key assignment to the settings.
func setConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "game.board_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s needs an integer, got %q", key, value)
		}
		cfg.Game.BoardSize = n
	case "game.target":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s needs an integer, got %q", key, value)
		}
		cfg.Game.Target = n
	case "audio.sounds_dir":
		cfg.Audio.SoundsDir = value
	case "audio.voice":
		cfg.Audio.Voice = value
	case "audio.music_volume":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s needs a number, got %q", key, value)
		}
		cfg.Audio.MusicVolume = f
	case "ui.theme":
		cfg.UI.Theme = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// voicesCmd lists the installed voice packs
var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List installed voice packs",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		packs, err := audio.Voices(cfg.Audio.SoundsDir)
		if err != nil {
			return err
		}
		if len(packs) == 0 {
			fmt.Println("no voice packs installed")
			return nil
		}
		for _, p := range packs {
			marker := " "
			if p == cfg.Audio.Voice {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, p)
		}
		return nil
	},
}

// soundsCmd verifies the sound library
var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "Verify the sound library is complete",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := audio.NewLibrary(cfg.Audio.SoundsDir, cfg.Audio.Voice)
		if err != nil {
			return err
		}
		missing := lib.Missing(cfg.Game.Target)
		if len(missing) == 0 {
			fmt.Println("sound library complete")
			return nil
		}
		fmt.Printf("%d missing files:\n", len(missing))
		fmt.Println(strings.Join(missing, "\n"))
		return fmt.Errorf("sound library incomplete")
	},
}

// loadConfig resolves the config path (flag or user default) and loads it.
func loadConfig() (string, *config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return "", nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, cfg, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&mute, "mute", false, "disable sound playback")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(voicesCmd)
	rootCmd.AddCommand(soundsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
