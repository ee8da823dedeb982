package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driven/payload"
	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/workspace"
)

var documentCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"document", "docs"},
	Short:   "Manage uploaded documents",
	Long:    `List, inspect, upload, or download documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document and its analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload files for analysis",
	Long: `Upload one or more files. Files are sent one after another; the first
failure stops the batch and files already uploaded are kept.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocumentUpload,
}

var documentDownloadCmd = &cobra.Command{
	Use:   "download [doc-id]",
	Short: "Download a document's original file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDownload,
}

// downloadOutput is a flag for the download command.
var downloadOutput string

func init() {
	documentDownloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "",
		"Output file, or - for stdout (default <doc-id> plus extension)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentDownloadCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Documents == nil {
		return errNotConfigured
	}

	docs, err := services.Documents.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", explain(err))
	}

	if len(docs) == 0 {
		cmd.Println("No documents yet. Upload one with 'mineguard documents upload <file>'.")
		return nil
	}

	for i := range docs {
		printDocumentLine(cmd, &docs[i])
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func printDocumentLine(cmd *cobra.Command, doc *domain.Document) {
	cmd.Printf("  %s\n", doc.ID)
	cmd.Printf("    Title: %s\n", doc.DisplayTitle())
	cmd.Printf("    Size: %s\n", doc.SizeLabel())
	if !doc.CreatedAt.IsZero() {
		cmd.Printf("    Uploaded: %s\n", doc.CreatedAt.Format("2006-01-02 15:04"))
	}
	cmd.Println()
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if services == nil || services.Documents == nil {
		return errNotConfigured
	}

	doc, err := services.Documents.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", explain(err))
	}

	printDocument(cmd, doc, true)
	return nil
}

// printDocument writes a document with its summary and every key point.
func printDocument(cmd *cobra.Command, doc *domain.Document, fullSummary bool) {
	cmd.Printf("ID:       %s\n", doc.ID)
	cmd.Printf("Title:    %s\n", doc.DisplayTitle())
	if doc.Filename != "" {
		cmd.Printf("Filename: %s\n", doc.Filename)
	}
	cmd.Printf("Size:     %s\n", doc.SizeLabel())
	if !doc.CreatedAt.IsZero() {
		cmd.Printf("Uploaded: %s\n", doc.CreatedAt.Format("2006-01-02 15:04"))
	}

	summary, _ := domain.SummaryPreview(doc.Summary(), fullSummary)
	cmd.Printf("\nSummary:\n  %s\n", summary)

	points := doc.KeyPoints()
	cmd.Println("\nKey Insights:")
	if len(points) == 0 {
		cmd.Println("  No key points available.")
		return
	}
	for _, page := range domain.PaginateKeyPoints(points) {
		for i, p := range page.Items {
			cmd.Printf("  Insight %d: %s\n", page.FirstIndex+i+1, p)
		}
	}
}

func runDocumentUpload(cmd *cobra.Command, args []string) error {
	if services == nil || services.Documents == nil {
		return errNotConfigured
	}

	files, err := payload.ReadFiles(args)
	if err != nil {
		return err
	}

	lib := workspace.NewLibrary(services.Documents)
	eff, err := lib.Upload(files)
	if err != nil {
		return err
	}
	if err := workspace.Run(cmd.Context(), lib, eff); err != nil {
		return err
	}

	uploaded := lib.Documents()
	for i := len(uploaded) - 1; i >= 0; i-- {
		cmd.Printf("Uploaded %s (%s) as %s\n", uploaded[i].DisplayTitle(), uploaded[i].SizeLabel(), uploaded[i].ID)
	}

	var failed bool
	for _, n := range lib.TakeNotices() {
		cmd.Println(n.Text)
		failed = failed || n.Kind == workspace.NoticeError
	}
	if lib.TakeAuthRequired() {
		return explain(domain.ErrUnauthorized)
	}
	if failed {
		return fmt.Errorf("uploaded %d of %d files", len(uploaded), len(files))
	}
	return nil
}

func runDocumentDownload(cmd *cobra.Command, args []string) error {
	if services == nil || services.Documents == nil {
		return errNotConfigured
	}

	rc, mediaType, err := services.Documents.DownloadBinary(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to download document: %w", explain(err))
	}
	defer rc.Close()

	if downloadOutput == "-" {
		_, err := io.Copy(cmd.OutOrStdout(), rc)
		return err
	}

	path := downloadOutput
	if path == "" {
		path = args[0] + payload.Extension(mediaType)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	n, err := io.Copy(f, rc)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	cmd.Printf("Saved %s (%s)\n", path, domain.Document{Size: n}.SizeLabel())
	return nil
}
