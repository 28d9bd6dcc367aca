package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pakdocs/pakdocs/backend/go-services/internal/audit"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/config"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/database"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/drafting"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/export"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/validation"
	"github.com/spf13/cobra"
)

// providerFactory and historyFactory are swapped in tests.
var (
	providerFactory = func(cfg config.ProviderConfig) drafting.Provider {
		return drafting.NewOpenAIProvider(cfg)
	}
	historyFactory = openMongoHistory
)

// openMongoHistory connects to the generation audit collection.
func openMongoHistory(ctx context.Context, cfg config.MongoDBConfig) (audit.History, func(), error) {
	if cfg.URI == "" {
		return nil, nil, fmt.Errorf("MONGODB_URI is not set")
	}
	client, err := database.ConnectMongo(ctx, cfg.URI, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }
	return audit.NewMongoRecorder(client.Database(cfg.Database).Collection("generations")), closeFn, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "draft",
		Short:        "Generate Pakistani legal document drafts from the command line",
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd(), newTypesCmd(), newHistoryCmd())
	return root
}

type generateOptions struct {
	docType    string
	language   string
	department string
	issue      string
	pdfPath    string
	timeout    time.Duration
}

func newGenerateCmd() *cobra.Command {
	var o generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a draft with the configured provider and print it",
		Example: `  draft generate --type "RTI Request" --language English --issue "water supply cut"
  draft generate --type Affidavit --language Urdu --issue "lost CNIC" --pdf affidavit.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.docType, "type", "", "document type, e.g. \"RTI Request\"")
	f.StringVar(&o.language, "language", document.LanguageEnglish, "Urdu or English")
	f.StringVar(&o.department, "department", "", "addressee department (optional)")
	f.StringVar(&o.issue, "issue", "", "description of the issue; \"-\" reads stdin")
	f.StringVar(&o.pdfPath, "pdf", "", "also render the draft to this PDF file")
	f.DurationVar(&o.timeout, "timeout", 0, "overall timeout (defaults to PROVIDER_TIMEOUT)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("issue")
	return cmd
}

func runGenerate(cmd *cobra.Command, o generateOptions) error {
	if o.issue == "-" {
		b, err := readAll(cmd)
		if err != nil {
			return err
		}
		o.issue = strings.TrimSpace(b)
	}
	req := drafting.Request{Type: o.docType, Language: o.language, Issue: o.issue}
	if o.department != "" {
		req.Department = &o.department
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	timeout := o.timeout
	if timeout <= 0 {
		timeout = cfg.Provider.Timeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	svc := drafting.NewService(providerFactory(cfg.Provider), cfg.Provider.MaxTokens, nil)
	content, err := svc.Generate(ctx, 0, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), content)

	if o.pdfPath == "" {
		return nil
	}
	d := &document.Document{
		Title:      o.docType,
		Type:       o.docType,
		Content:    content,
		Language:   o.language,
		Department: req.Department,
		CreatedAt:  time.Now(),
	}
	pdf, err := export.NewRenderer(cfg.PDF.FontPath).Render(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.pdfPath, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", o.pdfPath)
	return nil
}

func readAll(cmd *cobra.Command) (string, error) {
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the document types offered by the drafting form",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, t := range document.Types {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var (
		userID uint
		limit  int64
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a user's recent draft generations from the audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			h, closeFn, err := historyFactory(cmd.Context(), cfg.MongoDB)
			if err != nil {
				return fmt.Errorf("open audit log: %w", err)
			}
			defer closeFn()

			entries, err := h.RecentByUser(cmd.Context(), userID, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no generations recorded")
				return nil
			}
			for _, e := range entries {
				line := fmt.Sprintf("%s  %-7s  %-16s  %-7s  %5dms", e.CreatedAt.Format(time.RFC3339), e.Status, e.Type, e.Language, e.DurationMs)
				if e.Error != "" {
					line += "  " + e.Error
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "user", 0, "user id")
	cmd.Flags().Int64Var(&limit, "limit", 20, "maximum number of entries")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
