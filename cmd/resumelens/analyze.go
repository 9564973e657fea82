package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resumelens/internal/analyses"
	"resumelens/internal/bootstrap"
	"resumelens/internal/report"
	"resumelens/internal/shared/config"
)

type analyzeOptions struct {
	resumePath string
	jdPath     string
	outPath    string
	provider   string
	asJSON     bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a resume locally and write the PDF report",
		Long:  "Extract text from a PDF or plain-text resume, score it against an optional job description, and write the report to disk.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.resumePath, "resume", "", "Path to resume file (pdf or txt)")
	cmd.Flags().StringVar(&opts.jdPath, "jd", "", "Path to job description file (optional)")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", report.FileName, "Path to write the PDF report")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Feedback provider override: none, openai, ollama or gemini")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the analysis as JSON")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts analyzeOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if p := strings.TrimSpace(opts.provider); p != "" {
		cfg.Feedback.Provider = strings.ToLower(p)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	resumeBytes, err := os.ReadFile(opts.resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	jobDescription := ""
	if strings.TrimSpace(opts.jdPath) != "" {
		jdBytes, err := os.ReadFile(opts.jdPath)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jobDescription = string(jdBytes)
	}

	ctx := cmd.Context()
	fb, err := bootstrap.BuildFeedbackClient(ctx, cfg.Feedback)
	if err != nil {
		return err
	}
	svc := &analyses.Service{
		Feedback:          fb,
		Renderer:          bootstrap.BuildRenderer(cfg.Report),
		FeedbackTimeout:   cfg.Feedback.Timeout,
		SystemInstruction: cfg.Feedback.SystemInstruction,
	}

	analysis, err := svc.Analyze(ctx, analyses.Input{
		FileName:       filepath.Base(opts.resumePath),
		Data:           resumeBytes,
		JobDescription: jobDescription,
	})
	if err != nil {
		return fmt.Errorf("analyze %s: %w", opts.resumePath, err)
	}

	if err := os.WriteFile(opts.outPath, analysis.Report, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if analysis.FeedbackWarning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", analysis.FeedbackWarning)
	}
	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}
	printSummary(cmd.OutOrStdout(), analysis, opts.outPath)
	return nil
}

func printSummary(w io.Writer, a analyses.Analysis, outPath string) {
	fmt.Fprintf(w, "ATS Score: %d/100\n", a.Scores.ATSScore)
	if a.Scores.SkillMatchPercent != nil {
		fmt.Fprintf(w, "Skill Match: %.1f%%\n", *a.Scores.SkillMatchPercent)
	} else {
		fmt.Fprintln(w, "Skill Match: N/A")
	}
	fmt.Fprintf(w, "Readability: %d/100\n", a.Scores.ReadabilityScore)
	if len(a.Scores.MatchedKeywords) > 0 {
		fmt.Fprintf(w, "Matched Keywords: %s\n", strings.Join(a.Scores.MatchedKeywords, ", "))
	}
	if a.Feedback != "" {
		fmt.Fprintf(w, "\nAI Feedback:\n%s\n", a.Feedback)
	}
	fmt.Fprintf(w, "\nReport written to %s\n", outPath)
}
