package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"storyprogress/shared"

	"github.com/spf13/cobra"
)

var (
	configPath string
	segments   int
	duration   time.Duration
	noLock     bool
)

var rootCmd = &cobra.Command{
	Use:     "storyview",
	Short:   "Story progress bar demo",
	Long:    `Plays a row of story progress bars one after another, the way a story viewer does.`,
	Version: shared.GetVersion(),
	RunE: func(cmd *cobra.Command, args []string) error {
		shared.SetupLogging(os.Stderr)

		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		if !noLock {
			lock, err := shared.AcquireInstanceLock(lockDir(), "storyview")
			if err != nil {
				return err
			}
			defer lock.Release()
		}

		log.Printf("Showing %d stories of %v each", settings.Segments, settings.Duration)
		runWindow(settings)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "story.properties", "Settings file, created with defaults when missing")
	rootCmd.Flags().IntVar(&segments, "segments", 0, "Number of stories (overrides STORY_SEGMENTS)")
	rootCmd.Flags().DurationVar(&duration, "duration", 0, "Length of each story, e.g. 4s (overrides STORY_DURATION)")
	rootCmd.Flags().BoolVar(&noLock, "no-lock", false, "Allow several windows to run at once")
}

// loadSettings reads the settings file and applies the flags given on the command line.
func loadSettings(cmd *cobra.Command) (*shared.Settings, error) {
	settings, err := shared.LoadSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if cmd.Flags().Changed("segments") {
		if segments < 1 {
			return nil, fmt.Errorf("--segments must be at least 1, got %d", segments)
		}
		settings.Segments = segments
	}
	if cmd.Flags().Changed("duration") {
		if duration <= 0 {
			return nil, fmt.Errorf("--duration must be positive, got %v", duration)
		}
		settings.Duration = duration
	}
	return settings, nil
}

func lockDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(dir, "storyprogress")
}
