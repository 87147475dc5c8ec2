// Command parsefile extracts one resume offline and prints the extraction
// record and field recommendations as JSON.
//
//	go run ./cmd/parsefile --file resume.pdf [--taxonomy taxonomy.yaml] [--raw]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"resume-parser/internal/match"
	"resume-parser/internal/parser"
	"resume-parser/internal/resumes"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/taxonomy"
)

func main() {
	file := pflag.StringP("file", "f", "", "path to a pdf, docx, doc or txt resume")
	taxonomyFile := pflag.StringP("taxonomy", "t", "", "optional taxonomy YAML overriding the built-in one")
	withText := pflag.Bool("raw", false, "include the truncated raw text")
	pflag.Parse()

	telemetry.Init(os.Getenv("LOG_LEVEL"), "pretty")
	if err := run(context.Background(), os.Stdout, *file, *taxonomyFile, *withText); err != nil {
		fmt.Fprintln(os.Stderr, "parsefile:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, file, taxonomyFile string, withText bool) error {
	if file == "" {
		return fmt.Errorf("--file is required")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	tax, err := taxonomy.Default()
	if taxonomyFile != "" {
		tax, err = taxonomy.Load(taxonomyFile)
	}
	if err != nil {
		return err
	}

	svc := &resumes.Service{Parser: parser.New(tax), Matcher: match.New(tax)}
	analysis, err := svc.Analyze(ctx, filepath.Base(file), "", data)
	if err != nil {
		return err
	}
	if !withText {
		analysis.Record.RawText = ""
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(analysis)
}
