// certgen renders certificates from a CSV roster to a local directory,
// without a server or database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/bulk"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/certid"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/qrgen"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/render"
)

func main() {
	csvPath := flag.String("csv", "", "roster CSV (Full Name,College Name,Activity,Activity Date (YYYY-MM-DD),Certificate Text (Optional))")
	outDir := flag.String("out", ".", "output directory for rendered PDFs")
	language := flag.String("language", "english", "certificate language: english, bengali or hindi")
	templateName := flag.String("template", "classic", "visual template: classic, modern, elegant or professional")
	baseURL := flag.String("base-url", "https://certigen.example.com", "public origin for verification URLs")
	fontPath := flag.String("font", "", "optional UTF-8 TTF for bengali and hindi headlines")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if err := logger.Init(*logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Log.Sync()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		logger.Fatal("Failed to open roster", logger.Field("error", err))
	}
	defer file.Close()

	rows, rowErrs, err := bulk.ParseCSV(file, time.Now)
	if err != nil {
		logger.Fatal("Failed to parse roster", logger.Field("error", err))
	}
	for _, re := range rowErrs {
		logger.Warn("Skipping roster row",
			logger.Field("line", re.Line),
			logger.Field("reason", re.Err),
		)
	}
	if len(rows) == 0 {
		logger.Fatal("Roster contains no usable rows")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal("Failed to create output directory", logger.Field("error", err))
	}

	var opts []render.Option
	if *fontPath != "" {
		opts = append(opts, render.WithUnicodeFont(*fontPath))
	}
	engine := render.NewEngine(qrgen.NewPNGEncoder(), render.DefaultIssuer(), *baseURL, opts...)

	ctx := context.Background()
	failed := 0
	for _, row := range rows {
		id, err := certid.New()
		if err != nil {
			logger.Fatal("Failed to mint certificate id", logger.Field("error", err))
		}

		pdf, err := engine.RenderPDF(ctx, render.Request{
			RecipientName: row.FullName,
			Institution:   row.CollegeName,
			Activity:      row.Activity,
			ActivityDate:  row.ActivityDate,
			Body:          row.CertificateText,
			Language:      render.Language(*language),
			Template:      render.Template(*templateName),
			CertificateID: id,
		})
		if err != nil {
			logger.Error("Render failed",
				logger.Field("recipient", row.FullName),
				logger.Field("error", err),
			)
			failed++
			continue
		}

		path := filepath.Join(*outDir, render.ExportFilename(row.FullName))
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			logger.Error("Write failed",
				logger.Field("path", path),
				logger.Field("error", err),
			)
			failed++
			continue
		}
		fmt.Printf("%s  %s\n", id, path)
	}

	logger.Info("Done",
		logger.Field("rendered", len(rows)-failed),
		logger.Field("failed", failed),
	)
	if failed > 0 {
		os.Exit(1)
	}
}
