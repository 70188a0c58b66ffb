// Package main contains the ecosort CLI commands.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/Veraticus/ecosort/internal/cli"
	"github.com/Veraticus/ecosort/internal/common"
	"github.com/Veraticus/ecosort/internal/config"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/Veraticus/ecosort/internal/preview"
	"github.com/Veraticus/ecosort/internal/service"
	"github.com/Veraticus/ecosort/internal/session"
	"github.com/Veraticus/ecosort/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// classifyOutcome is what one classification produced.
type classifyOutcome struct {
	Result *model.Result `json:"result,omitempty"`
	Input  string        `json:"input"`
	Error  string        `json:"error,omitempty"`
}

func (o classifyOutcome) failed() bool {
	return o.Result == nil
}

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a waste item",
		Long: `Classify a waste item from a photo or a short description.

The service answers with a category, a confidence, a sustainability score and
disposal tips.

Examples:
  ecosort classify image ./bottle.jpg          # Classify a photo
  ecosort classify text "used AA batteries"    # Classify a description
  ecosort classify text --batch "banana peel" "pizza box" "paint thinner"
  ecosort classify text                        # Interactive mode`,
	}

	cmd.PersistentFlags().Bool("json", false, "Print results as JSON")
	cmd.PersistentFlags().Int("retries", 0, "Retry network failures this many times")
	_ = viper.BindPFlag(config.KeyRetries, cmd.PersistentFlags().Lookup("retries"))

	cmd.AddCommand(classifyImageCmd())
	cmd.AddCommand(classifyTextCmd())
	return cmd
}

func classifyImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <path>",
		Short: "Classify a photo (jpeg, png, gif or bmp, up to 10MB)",
		Args:  cobra.ExactArgs(1),
		RunE:  runClassifyImage,
	}

	cmd.Flags().String("preview-dir", "", "Directory for temporary preview copies (default: system temp dir)")
	_ = viper.BindPFlag(config.KeyPreviewDir, cmd.Flags().Lookup("preview-dir"))

	return cmd
}

func classifyTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text [description...]",
		Short: "Classify a description (up to 1000 characters)",
		Long: `Classify a description of a waste item.

All arguments are joined into a single description. With --batch every
argument is classified on its own, several at a time. Without arguments an
interactive classifier opens.`,
		RunE: runClassifyText,
	}

	cmd.Flags().Bool("batch", false, "Classify each argument as a separate item")
	cmd.Flags().IntP("concurrency", "c", 0, "Maximum concurrent requests in batch mode (default: 4)")
	cmd.Flags().BoolP("interactive", "i", false, "Open the interactive classifier")
	cmd.Flags().String("theme", "", "Interactive theme (default, mono)")
	_ = viper.BindPFlag(config.KeyConcurrency, cmd.Flags().Lookup("concurrency"))

	return cmd
}

func runClassifyImage(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	path := config.ExpandPath(args[0])

	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		err = common.NewUserError("Could not read image "+path, err)
		if writeErr := writeFailure(cmd.OutOrStdout(), asJSON, common.DisplayMessage(err, session.FallbackMessage)); writeErr != nil {
			return writeErr
		}
		return err
	}
	in, err := model.NewImageInput(path, data)
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context())
	handler.Track(1)

	manager := preview.NewManager(cfg.PreviewDir)
	sess := session.New(client, session.WithPreviewFactory(manager.Factory()))
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			slog.Warn("Failed to close session", "error", closeErr)
		}
	}()

	stop := startSpinner(cmd.ErrOrStderr(), asJSON, "Classifying "+in.Image.Filename+"...")
	outcome := classifyInput(ctx, sess, in, cfg.Retries)
	stop()
	handler.Track(0)

	return report(cmd.OutOrStdout(), asJSON, []classifyOutcome{outcome})
}

func runClassifyText(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	batch, _ := cmd.Flags().GetBool("batch")
	interactive, _ := cmd.Flags().GetBool("interactive")

	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	if interactive || len(args) == 0 {
		sess := session.New(client)
		defer func() { _ = sess.Close() }()
		return tui.RunClassifier(cmd.Context(), sess,
			tui.WithTheme(selectedTheme(cmd)))
	}

	texts := []string{strings.Join(args, " ")}
	if batch {
		texts = args
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context())

	description := "Classifying..."
	if len(texts) > 1 {
		description = fmt.Sprintf("Classifying %d items...", len(texts))
	}
	stop := startSpinner(cmd.ErrOrStderr(), asJSON, description)
	outcomes := classifyTexts(ctx, client, texts, cfg.Concurrency, cfg.Retries, handler.Track)
	stop()

	return report(cmd.OutOrStdout(), asJSON, outcomes)
}

// classifyInput stages in on sess and classifies it. Retryable failures are
// retried up to retries times with backoff.
func classifyInput(ctx context.Context, sess *session.Session, in model.Input, retries int) classifyOutcome {
	outcome := classifyOutcome{Input: in.Describe()}

	if err := sess.SetInput(in); err != nil {
		outcome.Error = common.DisplayMessage(err, session.FallbackMessage)
		return outcome
	}
	if loc := sess.PreviewLocation(); loc != "" {
		slog.Debug("Preview written", "location", loc)
	}

	err := sess.Classify(ctx)
	if err != nil && retries > 0 && sess.State().CanRetry() && common.IsRetryable(err) {
		slog.Info("Classification failed, retrying", "error", err, "retries", retries)
		err = common.WithRetry(ctx, func() error {
			return sess.Retry(ctx)
		}, common.RetryOptions{MaxAttempts: retries})
	}

	state := sess.State()
	if state.Status == session.StatusSucceeded && state.Result != nil {
		result := state.Result.Clone()
		outcome.Result = &result
		return outcome
	}

	slog.Debug("Classification failed", "input", outcome.Input, "error", err)
	outcome.Error = state.Message
	if outcome.Error == "" {
		outcome.Error = common.DisplayMessage(err, session.FallbackMessage)
	}
	return outcome
}

// classifyTexts classifies every text with its own session, at most
// concurrency at a time. Outcomes keep the order of texts. track is told how
// many requests are still outstanding.
func classifyTexts(ctx context.Context, classifier service.Classifier, texts []string, concurrency, retries int, track func(int)) []classifyOutcome {
	if concurrency <= 0 {
		concurrency = 1
	}

	outcomes := make([]classifyOutcome, len(texts))
	var remaining atomic.Int64
	remaining.Store(int64(len(texts)))
	if track != nil {
		track(len(texts))
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, text := range texts {
		g.Go(func() error {
			defer func() {
				left := remaining.Add(-1)
				if track != nil {
					track(int(left))
				}
			}()

			in, err := model.NewTextInput(text)
			if err != nil {
				outcomes[i] = classifyOutcome{
					Input: fmt.Sprintf("%q", text),
					Error: common.DisplayMessage(err, session.FallbackMessage),
				}
				return nil
			}

			sess := session.New(classifier)
			defer func() { _ = sess.Close() }()
			outcomes[i] = classifyInput(ctx, sess, in, retries)
			return nil
		})
	}

	// Failures are recorded per outcome.
	_ = g.Wait()
	return outcomes
}

// report prints outcomes and returns an error when any of them failed.
func report(w io.Writer, asJSON bool, outcomes []classifyOutcome) error {
	failed := 0
	for _, o := range outcomes {
		if o.failed() {
			failed++
		}
	}

	if asJSON {
		var err error
		if len(outcomes) == 1 {
			err = cli.WriteJSON(w, outcomes[0])
		} else {
			err = cli.WriteJSON(w, outcomes)
		}
		if err != nil {
			return err
		}
	} else {
		for i, o := range outcomes {
			if len(outcomes) > 1 {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, cli.FormatTitle(o.Input))
			}
			if o.failed() {
				fmt.Fprintln(w, cli.FormatError(o.Error))
				continue
			}
			fmt.Fprintln(w, cli.RenderResult(*o.Result))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d classification(s) failed", failed, len(outcomes))
	}
	return nil
}
