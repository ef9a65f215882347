package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/promovid/adgen-api/internal/bootstrap"
	"github.com/promovid/adgen-api/internal/config"
	"github.com/promovid/adgen-api/internal/job"
)

var (
	flagName        string
	flagDescription string
	flagBrief       string
	flagDuration    int
	flagAspectRatio string
	flagSamples     int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an advertisement video for a product",
	Long: `Collects the product details (interactively when flags are omitted),
synthesizes a video prompt, submits it to the backend, and polls until the
result is available or the timeout elapses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger := cfg.NewLogger()

		name, description, brief, err := collectProductDetails(cmd)
		if err != nil {
			return err
		}

		// Run the pipeline inline: the CLI is the one caller that wants to
		// block until the job is done.
		deps, err := bootstrap.NewDependencies(cfg, logger, job.WithAsyncPipeline(false))
		if err != nil {
			return fmt.Errorf("initialize dependencies: %w", err)
		}

		ctx := cmd.Context()
		jobID, err := deps.JobService.StartJob(ctx, job.StartJobInput{
			ProductName:        name,
			ProductDescription: description,
			AdBrief:            brief,
			DurationSeconds:    flagDuration,
			AspectRatio:        flagAspectRatio,
			SampleCount:        flagSamples,
		})
		if err != nil {
			return fmt.Errorf("start job: %w", err)
		}

		result, err := deps.JobService.GetJob(ctx, jobID)
		if err != nil {
			return fmt.Errorf("read job result: %w", err)
		}

		fmt.Println()
		fmt.Println("--- Generated Video Prompt ---")
		fmt.Println(result.Prompt)
		fmt.Println("------------------------------")
		fmt.Println()

		if result.Status == job.StatusCompleted && len(result.Samples) > 0 {
			fmt.Println("--- Video Generation Complete! ---")
			fmt.Printf("Your advertisement video is available at: %s\n", result.Samples[0].URI)
			return nil
		}

		return errors.New("video generation failed: " + result.ErrorMessage)
	},
}

// collectProductDetails reads the product fields from flags, prompting on
// stdin for any that are missing. All three fields are required.
func collectProductDetails(cmd *cobra.Command) (name, description, brief string, err error) {
	reader := bufio.NewReader(cmd.InOrStdin())

	name = strings.TrimSpace(flagName)
	if name == "" {
		name, err = promptLine(cmd, reader, "Enter your product's name (e.g., 'EcoGlow Smart Garden'): ")
		if err != nil {
			return "", "", "", err
		}
	}

	description = strings.TrimSpace(flagDescription)
	if description == "" {
		description, err = promptLine(cmd, reader, "Provide a detailed description of your product and its main benefits: ")
		if err != nil {
			return "", "", "", err
		}
	}

	brief = strings.TrimSpace(flagBrief)
	if brief == "" {
		brief, err = promptLine(cmd, reader, "Describe what you want to include in the ad (tone, theme, format): ")
		if err != nil {
			return "", "", "", err
		}
	}

	if name == "" || description == "" || brief == "" {
		return "", "", "", errors.New("product name, description, and ad brief are all required")
	}
	return name, description, brief, nil
}

// promptLine prints a prompt and reads one trimmed line from the reader.
func promptLine(cmd *cobra.Command, reader *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	generateCmd.Flags().StringVar(&flagName, "name", "", "Product name")
	generateCmd.Flags().StringVar(&flagDescription, "description", "", "Product description and main benefits")
	generateCmd.Flags().StringVar(&flagBrief, "brief", "", "Advertisement brief (tone, theme, format)")
	generateCmd.Flags().IntVar(&flagDuration, "duration", 8, "Video duration in seconds (5-8)")
	generateCmd.Flags().StringVar(&flagAspectRatio, "aspect-ratio", "16:9", "Video aspect ratio (16:9 or 9:16)")
	generateCmd.Flags().IntVar(&flagSamples, "samples", 1, "Number of video samples to generate (1-4)")

	rootCmd.AddCommand(generateCmd)
}
