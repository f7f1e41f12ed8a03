package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/export"
	"github.com/SscSPs/invoice_wizard/internal/render"
	"github.com/SscSPs/invoice_wizard/internal/utils"
	"github.com/SscSPs/invoice_wizard/internal/utils/accounting"
	"github.com/urfave/cli/v2"
)

var (
	draftFlag = &cli.StringFlag{
		Name:     "draft",
		Aliases:  []string{"d"},
		Usage:    "path to a draft JSON file",
		Required: true,
	}
	settingsFlag = &cli.StringFlag{
		Name:  "settings",
		Usage: "path to a settings JSON file; defaults apply when omitted",
	}
	templateFlag = &cli.StringFlag{
		Name:    "template",
		Aliases: []string{"t"},
		Usage:   "template id; defaults to the draft's template",
	}
	outFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "output file; stdout when omitted",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "invoicectl",
		Usage: "compute, render and export invoice drafts offline",
		Commands: []*cli.Command{
			{
				Name:   "totals",
				Usage:  "print the totals of a draft",
				Flags:  []cli.Flag{draftFlag},
				Action: totalsAction,
			},
			{
				Name:  "render",
				Usage: "render a draft as a document tree or HTML",
				Flags: []cli.Flag{draftFlag, settingsFlag, templateFlag, outFlag,
					&cli.StringFlag{Name: "format", Value: "html", Usage: "html or json"},
				},
				Action: renderAction,
			},
			{
				Name:  "export",
				Usage: "export a draft as PDF",
				Flags: []cli.Flag{draftFlag, settingsFlag, templateFlag, outFlag,
					&cli.IntFlag{Name: "width", Value: export.DefaultCaptureWidth, Usage: "capture width in pixels"},
				},
				Action: exportAction,
			},
		},
	}
}

func totalsAction(c *cli.Context) error {
	d, err := readDraft(c.String("draft"))
	if err != nil {
		return err
	}

	t := accounting.DraftTotals(d)
	w := c.App.Writer
	fmt.Fprintf(w, "Subtotal:  %s\n", utils.FormatMoney(t.Subtotal, d.Currency))
	if t.ShowDiscount() {
		fmt.Fprintf(w, "Discount:  -%s\n", utils.FormatMoney(t.Discount, d.Currency))
	}
	if t.ShowTax() {
		fmt.Fprintf(w, "Tax (%s%%): %s\n", utils.FormatPercent(t.TaxRate), utils.FormatMoney(t.Tax, d.Currency))
	}
	fmt.Fprintf(w, "Total:     %s\n", utils.FormatMoney(t.Total, d.Currency))
	fmt.Fprintf(w, "In words:  %s\n", utils.NumberToWords(t.Total))
	return nil
}

func renderAction(c *cli.Context) error {
	doc, err := loadDocument(c)
	if err != nil {
		return err
	}

	var out []byte
	switch strings.ToLower(c.String("format")) {
	case "json":
		out, err = json.MarshalIndent(doc, "", "  ")
	case "html":
		var page string
		page, err = render.NewHTMLEncoder().Encode(doc)
		out = []byte(page)
	default:
		return fmt.Errorf("%w: unknown format %q", apperrors.ErrValidation, c.String("format"))
	}
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return writeOutput(c, out)
}

func exportAction(c *cli.Context) error {
	doc, err := loadDocument(c)
	if err != nil {
		return err
	}

	pipeline := export.NewPipeline(export.NewCapturer(c.Int("width")), export.NewPDFPackager())
	result, err := pipeline.Run(c.Context, doc)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrExportFailed, err)
	}

	if c.String("out") == "" {
		if err := c.Set("out", result.Filename); err != nil {
			return err
		}
	}
	if err := writeOutput(c, result.PDF); err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "wrote %s (%d pages)\n", c.String("out"), result.Pages)
	return nil
}

func loadDocument(c *cli.Context) (render.Document, error) {
	d, err := readDraft(c.String("draft"))
	if err != nil {
		return render.Document{}, err
	}
	settings, err := readSettings(c.String("settings"))
	if err != nil {
		return render.Document{}, err
	}

	templateID := d.Design.TemplateID
	if t := c.String("template"); t != "" {
		templateID = domain.TemplateID(strings.ToLower(t))
	}
	if templateID == "" {
		templateID = settings.DefaultTemplate
	}
	return render.NewRegistry().Render(templateID, render.BuildInvoiceData(d, settings))
}

func readDraft(path string) (domain.Draft, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Draft{}, fmt.Errorf("failed to read draft: %w", err)
	}
	var d domain.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.Draft{}, fmt.Errorf("%w: draft %s is not valid JSON: %w", apperrors.ErrValidation, path, err)
	}
	d.LineItems = d.LineItems.Normalize()
	if d.Currency == "" {
		d.Currency = domain.DefaultSettings().DefaultCurrency
	}
	return d, nil
}

func readSettings(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if path == "" {
		return settings, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return settings, fmt.Errorf("%w: settings %s are not valid JSON: %w", apperrors.ErrValidation, path, err)
	}
	return settings, nil
}

func writeOutput(c *cli.Context, data []byte) error {
	path := c.String("out")
	if path == "" || path == "-" {
		_, err := c.App.Writer.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
