package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/docuchain/docuchain_app/internal/bankparser"
	"github.com/docuchain/docuchain_app/internal/core/domain"
	portssvc "github.com/docuchain/docuchain_app/internal/core/ports/services"
	"github.com/docuchain/docuchain_app/internal/core/services"
	"github.com/docuchain/docuchain_app/internal/dto"
	"github.com/docuchain/docuchain_app/internal/repositories/database/pgsql"
	"github.com/docuchain/docuchain_app/pkg/config"
	"github.com/docuchain/docuchain_app/pkg/database"
)

const usage = `Usage: docuchain <command> [flags]

Commands:
  match-all        extract all unprocessed documents and resolve chains
  match            resolve the chain anchored at one document
  list-chains      list resolved chains
  export-chains    write every chain to a JSON file
  parse-statement  decode a bank statement file and print it as JSON
  import-statement parse a statement file and register payment candidates
`

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command, args := os.Args[1], os.Args[2:]

	// parse-statement needs no database at all.
	if command == "parse-statement" {
		os.Exit(runParseStatement(args))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	svcs := services.NewServiceContainer(pgsql.NewRepositoryProvider(dbPool))

	var code int
	switch command {
	case "match-all":
		code = runMatchAll(args, cfg, svcs)
	case "match":
		code = runMatch(args, svcs)
	case "list-chains":
		code = runListChains(args, svcs)
	case "export-chains":
		code = runExportChains(args, svcs)
	case "import-statement":
		code = runImportStatement(args, svcs)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s", command, usage)
		code = 2
	}
	os.Exit(code)
}

func runMatchAll(args []string, cfg *config.Config, svcs *portssvc.ServiceContainer) int {
	fs := flag.NewFlagSet("match-all", flag.ExitOnError)
	limit := fs.Int("limit", cfg.MatchBatchLimit, "max documents to extract, 0 = no limit")
	fs.Parse(args)

	stats, err := svcs.Matcher.MatchAll(context.Background(), *limit)
	if err != nil {
		slog.Error("Batch matching run failed", slog.String("error", err.Error()))
		return 1
	}
	printJSON(stats)
	return 0
}

func runMatch(args []string, svcs *portssvc.ServiceContainer) int {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	docID := fs.String("doc", "", "anchor document id (required)")
	fs.Parse(args)
	if *docID == "" {
		fmt.Fprintln(os.Stderr, "match: -doc is required")
		return 2
	}

	chainID, err := svcs.Matcher.ResolveDocument(context.Background(), *docID)
	if err != nil {
		slog.Error("Chain resolution failed", slog.String("document_id", *docID), slog.String("error", err.Error()))
		return 1
	}
	if chainID == "" {
		fmt.Println("no related documents found")
		return 0
	}
	fmt.Println(chainID)
	return 0
}

func runListChains(args []string, svcs *portssvc.ServiceContainer) int {
	fs := flag.NewFlagSet("list-chains", flag.ExitOnError)
	statusStr := fs.String("status", "", "filter by chain status")
	limit := fs.Int("limit", 100, "max chains to list")
	fs.Parse(args)

	var status *domain.ChainStatus
	if *statusStr != "" {
		if !domain.IsValidChainStatus(*statusStr) {
			fmt.Fprintf(os.Stderr, "list-chains: unknown status %q\n", *statusStr)
			return 2
		}
		s := domain.ChainStatus(*statusStr)
		status = &s
	}

	chains, err := svcs.Chain.ListChains(context.Background(), status, *limit, 0)
	if err != nil {
		slog.Error("Failed to list chains", slog.String("error", err.Error()))
		return 1
	}
	for _, c := range chains {
		printJSON(dto.ToChainResponse(c))
	}
	return 0
}

func runExportChains(args []string, svcs *portssvc.ServiceContainer) int {
	fs := flag.NewFlagSet("export-chains", flag.ExitOnError)
	out := fs.String("out", "chains.json", "output file path")
	fs.Parse(args)

	chains, err := svcs.Chain.ExportChains(context.Background())
	if err != nil {
		slog.Error("Failed to export chains", slog.String("error", err.Error()))
		return 1
	}
	resp := make([]dto.ChainResponse, 0, len(chains))
	for _, c := range chains {
		resp = append(resp, dto.ToChainResponse(c))
	}
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		slog.Error("Failed to encode chains", slog.String("error", err.Error()))
		return 1
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		slog.Error("Failed to write export file", slog.String("path", *out), slog.String("error", err.Error()))
		return 1
	}
	fmt.Printf("wrote %d chains to %s\n", len(resp), *out)
	return 0
}

func runParseStatement(args []string) int {
	fs := flag.NewFlagSet("parse-statement", flag.ExitOnError)
	file := fs.String("file", "", "statement file path (required)")
	format := fs.String("format", "", "statement format (MT940, CAMT053, ABO, CSV); auto-detect when empty")
	fs.Parse(args)
	if *file == "" {
		fmt.Fprintln(os.Stderr, "parse-statement: -file is required")
		return 2
	}

	var stmt *domain.Statement
	var err error
	if *format != "" {
		var parser bankparser.Parser
		parser, err = bankparser.New(domain.StatementFormat(*format))
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse-statement: %v\n", err)
			return 2
		}
		var content []byte
		content, err = os.ReadFile(*file)
		if err == nil {
			stmt, err = parser.Parse(content)
		}
	} else {
		stmt, err = bankparser.ParseFile(*file)
	}
	if err != nil {
		slog.Error("Failed to parse statement", slog.String("path", *file), slog.String("error", err.Error()))
		return 1
	}
	printJSON(stmt)
	return 0
}

func runImportStatement(args []string, svcs *portssvc.ServiceContainer) int {
	fs := flag.NewFlagSet("import-statement", flag.ExitOnError)
	file := fs.String("file", "", "statement file path (required)")
	format := fs.String("format", "", "statement format (MT940, CAMT053, ABO, CSV); auto-detect when empty")
	fs.Parse(args)
	if *file == "" {
		fmt.Fprintln(os.Stderr, "import-statement: -file is required")
		return 2
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		slog.Error("Failed to read statement file", slog.String("path", *file), slog.String("error", err.Error()))
		return 1
	}
	stmt, paymentDocs, err := svcs.Statement.ImportStatement(context.Background(), content, domain.StatementFormat(*format))
	if err != nil {
		slog.Error("Failed to import statement", slog.String("path", *file), slog.String("error", err.Error()))
		return 1
	}
	printJSON(dto.ToStatementResponse(*stmt, paymentDocs))
	return 0
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
