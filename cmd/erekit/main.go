// Command erekit is the CLI tool for the textkit annotation toolkit.
// It provides commands for loading, validating, indexing, and scoring
// Rich ERE annotation corpora.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/calperum/textkit/core/catalog"
	"github.com/calperum/textkit/core/coref"
	"github.com/calperum/textkit/core/ere"
	"github.com/calperum/textkit/core/offsets"
	"github.com/calperum/textkit/core/serialization"
	"github.com/calperum/textkit/core/sqlite"
	"github.com/calperum/textkit/core/xml"
	"github.com/calperum/textkit/internal/logging"
)

const version = "0.1.0"

// documentTypeName is the envelope type tag for serialized documents.
const documentTypeName = "ere.document"

// CLI defines the command-line interface for erekit.
var CLI struct {
	// Global flags
	LogLevel  string `help:"Log level (debug, info, warn, error)" default:"info"`
	LogFormat string `help:"Log format (json, text)" default:"json"`

	Load     LoadCmd      `cmd:"" help:"Load a Rich ERE document and emit type-tagged JSON"`
	Validate ValidateCmd  `cmd:"" help:"Validate Rich ERE files"`
	Index    IndexCmd     `cmd:"" help:"Load documents and record them in a catalog"`
	Inspect  InspectCmd   `cmd:"" help:"Query a document's raw XML with XPath"`
	Snip     SnipCmd      `cmd:"" help:"Print the text covered by a character range"`
	Score    ScoreCmd     `cmd:"" help:"Score a response clustering against a key"`
	Catalog  CatalogGroup `cmd:"" help:"Catalog queries (list, info)"`
	Version  VersionCmd   `cmd:"" help:"Print version information"`
}

// LoadCmd loads one Rich ERE document and emits it as JSON.
type LoadCmd struct {
	Path         string `arg:"" help:"Path to Rich ERE XML file" type:"existingfile"`
	Out          string `help:"Output path (default: stdout)" type:"path"`
	Pretty       bool   `help:"Indent the JSON output"`
	PrefixDocIDs bool   `name:"prefix-doc-ids" help:"Prefix every annotation id with the document id"`
}

func (c *LoadCmd) Run() error {
	loader := ere.NewLoader(ere.LoaderOptions{PrefixDocIDToIDs: c.PrefixDocIDs})
	doc, err := loader.LoadFile(c.Path)
	if err != nil {
		logging.DocumentFailed(c.Path, err)
		return err
	}
	logging.DocumentLoaded(doc.DocID(), doc.SourceType(), c.Path,
		len(doc.Entities()), len(doc.Fillers()), len(doc.Relations()), len(doc.Events()))

	ser := serialization.New(serialization.Options{Pretty: c.Pretty})
	if err := ser.Register(documentTypeName, &ere.DocumentJSON{}); err != nil {
		return err
	}
	data, err := ser.Serialize(doc.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if c.Out != "" {
		if err := os.WriteFile(c.Out, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("Wrote: %s\n", c.Out)
		return nil
	}
	fmt.Println(string(data))
	return nil
}

// ValidateCmd validates Rich ERE files and reports per-file results.
type ValidateCmd struct {
	Paths        []string `arg:"" help:"Rich ERE XML files to validate"`
	PrefixDocIDs bool     `name:"prefix-doc-ids" help:"Prefix every annotation id with the document id"`
}

func (c *ValidateCmd) Run() error {
	loader := ere.NewLoader(ere.LoaderOptions{PrefixDocIDToIDs: c.PrefixDocIDs})

	failed := 0
	for _, path := range c.Paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("  [FAIL] %s: %v\n", path, err)
			logging.DocumentFailed(path, err)
			failed++
			continue
		}

		// Report well-formedness problems before schema problems.
		if result := xml.Validate(data); !result.Valid {
			for _, e := range result.Errors {
				fmt.Printf("  [FAIL] %s: %s\n", path, e.Message)
			}
			logging.DocumentFailed(path, fmt.Errorf("%s", result.Errors[0].Message))
			failed++
			continue
		}

		doc, err := loader.Load(data)
		if err != nil {
			fmt.Printf("  [FAIL] %s: %v\n", path, err)
			logging.DocumentFailed(path, err)
			failed++
			continue
		}

		fmt.Printf("  [OK]   %s (%s: %d entities, %d fillers, %d relations, %d events)\n",
			path, doc.DocID(),
			len(doc.Entities()), len(doc.Fillers()), len(doc.Relations()), len(doc.Events()))
	}

	fmt.Println()
	fmt.Printf("Results: %d passed, %d failed\n", len(c.Paths)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

// indexManifest is the YAML manifest accepted by IndexCmd. Relative
// document paths resolve against the manifest's directory.
type indexManifest struct {
	PrefixDocIDs bool     `yaml:"prefix_doc_ids"`
	Documents    []string `yaml:"documents"`
}

// IndexCmd loads documents and records them in a catalog database.
type IndexCmd struct {
	DB           string   `required:"" help:"Path to catalog database" type:"path"`
	Manifest     string   `help:"YAML manifest listing documents to index" type:"existingfile"`
	Paths        []string `arg:"" optional:"" help:"Rich ERE XML files to index"`
	PrefixDocIDs bool     `name:"prefix-doc-ids" help:"Prefix every annotation id with the document id"`
}

func (c *IndexCmd) Run() error {
	paths := c.Paths
	prefix := c.PrefixDocIDs
	if c.Manifest != "" {
		manifest, err := readManifest(c.Manifest)
		if err != nil {
			return err
		}
		prefix = prefix || manifest.PrefixDocIDs
		base := filepath.Dir(c.Manifest)
		for _, p := range manifest.Documents {
			if !filepath.IsAbs(p) {
				p = filepath.Join(base, p)
			}
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents to index (give file arguments or --manifest)")
	}

	cat, err := catalog.Open(c.DB)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	runID, err := cat.BeginRun()
	if err != nil {
		return fmt.Errorf("failed to begin run: %w", err)
	}
	ctx := logging.WithRunID(context.Background(), runID)

	fmt.Printf("Indexing %d document(s) into %s\n", len(paths), c.DB)
	fmt.Printf("  Run: %s\n", runID)
	fmt.Println()

	start := time.Now()
	loader := ere.NewLoader(ere.LoaderOptions{PrefixDocIDToIDs: prefix})
	indexed := 0
	failed := 0
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("  [FAIL] %s: %v\n", path, err)
			logging.DocumentFailedContext(ctx, path, err)
			failed++
			continue
		}
		doc, err := loader.Load(raw)
		if err != nil {
			fmt.Printf("  [FAIL] %s: %v\n", path, err)
			logging.DocumentFailedContext(ctx, path, err)
			failed++
			continue
		}
		if err := cat.IndexDocument(runID, doc, raw, path); err != nil {
			fmt.Printf("  [FAIL] %s: %v\n", path, err)
			logging.DocumentFailedContext(ctx, path, err)
			failed++
			continue
		}
		fmt.Printf("  [OK]   %s (%s)\n", path, doc.DocID())
		logging.InfoContext(ctx, "document_indexed", "doc_id", doc.DocID(), "path", path)
		indexed++
	}

	if err := cat.FinishRun(runID); err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	logging.IngestRunFinished(runID, indexed, time.Since(start))

	fmt.Println()
	fmt.Printf("Run %s: %d indexed, %d failed\n", runID, indexed, failed)
	if failed > 0 {
		return fmt.Errorf("%d document(s) failed", failed)
	}
	return nil
}

func readManifest(path string) (*indexManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var manifest indexManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &manifest, nil
}

// InspectCmd queries a document's raw XML with an XPath expression.
type InspectCmd struct {
	Path  string `arg:"" help:"Path to XML file" type:"existingfile"`
	XPath string `required:"" help:"XPath expression to evaluate"`
}

func (c *InspectCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	doc, err := xml.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse XML: %w", err)
	}

	nodes, err := doc.XPath(c.XPath)
	if err != nil {
		return fmt.Errorf("XPath query failed: %w", err)
	}

	fmt.Printf("Matches for %s in %s:\n\n", c.XPath, c.Path)
	if len(nodes) == 0 {
		fmt.Println("  (none)")
		return nil
	}
	for i, node := range nodes {
		text := strings.TrimSpace(node.InnerText())
		if name := node.Name(); name != "" {
			fmt.Printf("  %d. %s: %s\n", i+1, name, text)
		} else {
			fmt.Printf("  %d. %s\n", i+1, text)
		}
	}
	fmt.Printf("\nTotal: %d match(es)\n", len(nodes))
	return nil
}

// SnipCmd prints the text covered by an inclusive character range.
type SnipCmd struct {
	Path  string `arg:"" help:"Path to source text file" type:"existingfile"`
	Range string `required:"" help:"Inclusive character range (12-34, 12:34, or 12)"`
}

func (c *SnipCmd) Run() error {
	r, err := offsets.ParseRange(c.Range)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Offsets count characters over newline-normalized text, matching
	// the loader's treatment of carriage returns.
	runes := []rune(string(bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))))
	if r.End().Int() >= len(runes) {
		return fmt.Errorf("range %s exceeds document length %d", r, len(runes))
	}

	fmt.Println(string(runes[r.Start().Int() : r.End().Int()+1]))
	return nil
}

// scoreReport is the JSON output form of ScoreCmd.
type scoreReport struct {
	Score             float64 `json:"score"`
	CorefPrecision    float64 `json:"coref_precision"`
	CorefRecall       float64 `json:"coref_recall"`
	CorefF1           float64 `json:"coref_f1"`
	NonCorefPrecision float64 `json:"non_coref_precision"`
	NonCorefRecall    float64 `json:"non_coref_recall"`
	NonCorefF1        float64 `json:"non_coref_f1"`
	ItemSetsMatch     bool    `json:"item_sets_match"`
}

// ScoreCmd computes the BLANC score of a response clustering against a
// key clustering.
type ScoreCmd struct {
	Key       string `required:"" help:"Key (gold) clustering JSON file" type:"existingfile"`
	Response  string `required:"" help:"Response (predicted) clustering JSON file" type:"existingfile"`
	SelfEdges bool   `name:"self-edges" help:"Count each item as linked to itself"`
	JSON      bool   `help:"Output as JSON"`
}

func (c *ScoreCmd) Run() error {
	key, err := readClusters(c.Key)
	if err != nil {
		return err
	}
	response, err := readClusters(c.Response)
	if err != nil {
		return err
	}

	result := coref.ScoreMulti(response, key, coref.ScoreOptions{SelfEdges: c.SelfEdges})
	logging.ScoreComputed(c.Key, c.Response, result.Score())

	cs := result.CorefScores()
	ns := result.NonCorefScores()

	if c.JSON {
		report := scoreReport{
			Score:             result.Score(),
			CorefPrecision:    cs.Precision(),
			CorefRecall:       cs.Recall(),
			CorefF1:           cs.F1(),
			NonCorefPrecision: ns.Precision(),
			NonCorefRecall:    ns.Recall(),
			NonCorefF1:        ns.F1(),
			ItemSetsMatch:     result.ItemSetsMatch(),
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("BLANC score: %.4f\n", result.Score())
	fmt.Println()
	fmt.Printf("  Coref links:     P=%.4f R=%.4f F=%.4f\n", cs.Precision(), cs.Recall(), cs.F1())
	fmt.Printf("  Non-coref links: P=%.4f R=%.4f F=%.4f\n", ns.Precision(), ns.Recall(), ns.F1())
	if !result.ItemSetsMatch() {
		fmt.Println()
		fmt.Println("  Note: key and response cover different item sets.")
	}
	return nil
}

func readClusters(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clustering: %w", err)
	}
	var clusters [][]string
	if err := json.Unmarshal(data, &clusters); err != nil {
		return nil, fmt.Errorf("failed to parse clustering %s: %w", path, err)
	}
	return clusters, nil
}

// CatalogGroup contains catalog query operations.
type CatalogGroup struct {
	List CatalogListCmd `cmd:"" help:"List indexed documents or ingest runs"`
	Info CatalogInfoCmd `cmd:"" help:"Show catalog summary and driver information"`
}

// CatalogListCmd lists indexed documents or ingest runs.
type CatalogListCmd struct {
	DB   string `required:"" help:"Path to catalog database" type:"existingfile"`
	Runs bool   `help:"List ingest runs instead of documents"`
}

func (c *CatalogListCmd) Run() error {
	cat, err := catalog.Open(c.DB)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	if c.Runs {
		runs, err := cat.Runs()
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}
		fmt.Printf("%-36s %-20s %-10s %s\n", "RUN", "STARTED", "STATUS", "DOCS")
		for _, run := range runs {
			status := "finished"
			if !run.Finished() {
				status = "open"
			}
			fmt.Printf("%-36s %-20s %-10s %d\n",
				run.ID, run.StartedAt.Format(time.RFC3339), status, run.Documents)
		}
		fmt.Printf("\nTotal: %d run(s)\n", len(runs))
		return nil
	}

	docs, err := cat.Documents()
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(docs) == 0 {
		fmt.Println("No documents indexed.")
		return nil
	}
	fmt.Printf("%-30s %-18s %5s %5s %5s %5s\n", "DOC ID", "SOURCE", "ENT", "FIL", "REL", "EVT")
	for _, doc := range docs {
		fmt.Printf("%-30s %-18s %5d %5d %5d %5d\n",
			doc.DocID, doc.SourceType, doc.Entities, doc.Fillers, doc.Relations, doc.Events)
	}
	fmt.Printf("\nTotal: %d document(s)\n", len(docs))
	return nil
}

// CatalogInfoCmd shows a catalog summary and the active SQLite driver.
type CatalogInfoCmd struct {
	DB  string `required:"" help:"Path to catalog database" type:"existingfile"`
	Doc string `help:"Show one document in detail"`
}

func (c *CatalogInfoCmd) Run() error {
	cat, err := catalog.Open(c.DB)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	if c.Doc != "" {
		doc, err := cat.DocumentByID(c.Doc)
		if err != nil {
			return err
		}
		fmt.Printf("Document: %s\n", doc.DocID)
		fmt.Printf("  Source type: %s\n", doc.SourceType)
		fmt.Printf("  Path: %s\n", doc.Path)
		fmt.Printf("  SHA-256: %s\n", doc.SHA256)
		fmt.Printf("  BLAKE3: %s\n", doc.BLAKE3)
		fmt.Printf("  Entities: %d\n", doc.Entities)
		fmt.Printf("  Fillers: %d\n", doc.Fillers)
		fmt.Printf("  Relations: %d\n", doc.Relations)
		fmt.Printf("  Events: %d\n", doc.Events)
		fmt.Printf("  Run: %s\n", doc.RunID)
		fmt.Printf("  Indexed: %s\n", doc.IndexedAt.Format(time.RFC3339))
		return nil
	}

	docs, err := cat.Documents()
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	runs, err := cat.Runs()
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	open := 0
	for _, run := range runs {
		if !run.Finished() {
			open++
		}
	}

	info := sqlite.GetInfo()
	fmt.Printf("Catalog: %s\n", c.DB)
	fmt.Printf("  Documents: %d\n", len(docs))
	fmt.Printf("  Runs: %d (%d open)\n", len(runs), open)
	fmt.Printf("  Driver: %s (%s, %s)\n", info.DriverName, info.DriverType, info.Package)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("erekit version %s\n", version)
	return nil
}

func parseLogLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseLogFormat(s string) logging.Format {
	if s == "text" {
		return logging.FormatText
	}
	return logging.FormatJSON
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("erekit"),
		kong.Description("Rich ERE annotation toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(parseLogLevel(CLI.LogLevel), parseLogFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
