package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calperum/textkit/core/catalog"
)

const testDocument = `<?xml version="1.0" encoding="UTF-8"?>
<deft_ere doc_id="DOC1" source_type="newswire">
  <entities>
    <entity id="ent-1" type="PER" specificity="specific">
      <entity_mention id="m-1" noun_type="NAM" offset="0" length="5">
        <mention_text>Obama</mention_text>
      </entity_mention>
    </entity>
    <entity id="ent-2" type="GPE" specificity="specific">
      <entity_mention id="m-2" noun_type="NAM" offset="18" length="6">
        <mention_text>Hawaii</mention_text>
      </entity_mention>
    </entity>
  </entities>
  <fillers>
    <filler id="f-1" type="time" offset="26" length="4">1961</filler>
  </fillers>
</deft_ere>`

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// captureStdout runs f with os.Stdout redirected to a pipe and returns
// what was printed alongside f's error.
func captureStdout(t *testing.T, f func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	outCh := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		outCh <- buf.String()
	}()

	runErr := f()

	w.Close()
	os.Stdout = old
	return <-outCh, runErr
}

func TestLoadCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	input := createTestFile(t, tempDir, "doc1.xml", testDocument)
	output := filepath.Join(tempDir, "doc1.json")

	cmd := &LoadCmd{Path: input, Out: output}
	require.NoError(t, cmd.Run())

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	require.Equal(t, "ere.document", env.Type)

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &snapshot))
	require.Equal(t, "DOC1", snapshot["doc_id"])
	require.Equal(t, "newswire", snapshot["source_type"])
	require.Len(t, snapshot["entities"], 2)
}

func TestLoadCmd_Stdout(t *testing.T) {
	tempDir := t.TempDir()
	input := createTestFile(t, tempDir, "doc1.xml", testDocument)

	cmd := &LoadCmd{Path: input}
	out, err := captureStdout(t, cmd.Run)
	require.NoError(t, err)
	require.Contains(t, out, `"type":"ere.document"`)
	require.Contains(t, out, "DOC1")
}

func TestLoadCmd_PrefixDocIDs(t *testing.T) {
	tempDir := t.TempDir()
	input := createTestFile(t, tempDir, "doc1.xml", testDocument)

	cmd := &LoadCmd{Path: input, PrefixDocIDs: true}
	out, err := captureStdout(t, cmd.Run)
	require.NoError(t, err)
	require.Contains(t, out, "DOC1-ent-1")
}

func TestLoadCmd_BadFile(t *testing.T) {
	tempDir := t.TempDir()
	input := createTestFile(t, tempDir, "bad.xml", `<deft_ere doc_id="D"/>`)

	cmd := &LoadCmd{Path: input}
	_, err := captureStdout(t, cmd.Run)
	require.Error(t, err)
}

func TestValidateCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	good := createTestFile(t, tempDir, "good.xml", testDocument)
	bad := createTestFile(t, tempDir, "bad.xml", `<deft_ere doc_id="D"/>`)
	unclosed := createTestFile(t, tempDir, "unclosed.xml", `<deft_ere doc_id="D" source_type="s">`)

	t.Run("all valid", func(t *testing.T) {
		cmd := &ValidateCmd{Paths: []string{good}}
		out, err := captureStdout(t, cmd.Run)
		require.NoError(t, err)
		require.Contains(t, out, "[OK]")
		require.Contains(t, out, "1 passed, 0 failed")
	})

	t.Run("schema failure", func(t *testing.T) {
		cmd := &ValidateCmd{Paths: []string{good, bad}}
		out, err := captureStdout(t, cmd.Run)
		require.Error(t, err)
		require.Contains(t, out, "[FAIL]")
		require.Contains(t, out, "1 passed, 1 failed")
	})

	t.Run("malformed XML", func(t *testing.T) {
		cmd := &ValidateCmd{Paths: []string{unclosed}}
		out, err := captureStdout(t, cmd.Run)
		require.Error(t, err)
		require.Contains(t, out, "[FAIL]")
	})
}

func TestIndexCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	doc1 := createTestFile(t, tempDir, "doc1.xml", testDocument)
	doc2 := createTestFile(t, tempDir, "doc2.xml",
		strings.Replace(testDocument, `doc_id="DOC1"`, `doc_id="DOC2"`, 1))
	db := filepath.Join(tempDir, "catalog.db")

	cmd := &IndexCmd{DB: db, Paths: []string{doc1, doc2}}
	out, err := captureStdout(t, cmd.Run)
	require.NoError(t, err)
	require.Contains(t, out, "2 indexed, 0 failed")

	cat, err := catalog.Open(db)
	require.NoError(t, err)
	defer cat.Close()

	docs, err := cat.Documents()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "DOC1", docs[0].DocID)
	require.Equal(t, "DOC2", docs[1].DocID)

	runs, err := cat.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.True(t, runs[0].Finished())
	require.Equal(t, 2, runs[0].Documents)
}

func TestIndexCmd_Manifest(t *testing.T) {
	tempDir := t.TempDir()
	createTestFile(t, tempDir, "doc1.xml", testDocument)
	manifest := createTestFile(t, tempDir, "manifest.yaml",
		"prefix_doc_ids: true\ndocuments:\n  - doc1.xml\n")
	db := filepath.Join(tempDir, "catalog.db")

	cmd := &IndexCmd{DB: db, Manifest: manifest}
	_, err := captureStdout(t, cmd.Run)
	require.NoError(t, err)

	cat, err := catalog.Open(db)
	require.NoError(t, err)
	defer cat.Close()

	docs, err := cat.Documents()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "DOC1", docs[0].DocID)
}

func TestIndexCmd_SkipsFailedDocuments(t *testing.T) {
	tempDir := t.TempDir()
	good := createTestFile(t, tempDir, "good.xml", testDocument)
	bad := createTestFile(t, tempDir, "bad.xml", `<not_ere/>`)
	db := filepath.Join(tempDir, "catalog.db")

	cmd := &IndexCmd{DB: db, Paths: []string{bad, good}}
	out, err := captureStdout(t, cmd.Run)
	require.Error(t, err)
	require.Contains(t, out, "1 indexed, 1 failed")

	// The good document is still indexed and the run still finishes.
	cat, err := catalog.Open(db)
	require.NoError(t, err)
	defer cat.Close()

	docs, err := cat.Documents()
	require.NoError(t, err)
	require.Len(t, docs, 1)

	runs, err := cat.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.True(t, runs[0].Finished())
}

func TestIndexCmd_NoDocuments(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")
	cmd := &IndexCmd{DB: db}
	_, err := captureStdout(t, cmd.Run)
	require.Error(t, err)
}

func TestInspectCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	input := createTestFile(t, tempDir, "doc1.xml", testDocument)

	cmd := &InspectCmd{Path: input, XPath: "//entity_mention/@id"}
	out, err := captureStdout(t, cmd.Run)
	require.NoError(t, err)
	require.Contains(t, out, "m-1")
	require.Contains(t, out, "m-2")
	require.Contains(t, out, "Total: 2 match(es)")
}

func TestInspectCmd_NoMatches(t *testing.T) {
	tempDir := t.TempDir()
	input := createTestFile(t, tempDir, "doc1.xml", testDocument)

	cmd := &InspectCmd{Path: input, XPath: "//hopper"}
	out, err := captureStdout(t, cmd.Run)
	require.NoError(t, err)
	require.Contains(t, out, "(none)")
}

func TestInspectCmd_BadXPath(t *testing.T) {
	tempDir := t.TempDir()
	input := createTestFile(t, tempDir, "doc1.xml", testDocument)

	cmd := &InspectCmd{Path: input, XPath: "[invalid"}
	_, err := captureStdout(t, cmd.Run)
	require.Error(t, err)
}

func TestSnipCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	source := createTestFile(t, tempDir, "source.txt", "Obama was born in Hawaii.")

	tests := []struct {
		name     string
		rng      string
		expected string
	}{
		{name: "word at start", rng: "0-4", expected: "Obama"},
		{name: "colon separator", rng: "18:23", expected: "Hawaii"},
		{name: "single offset", rng: "6", expected: "w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &SnipCmd{Path: source, Range: tt.rng}
			out, err := captureStdout(t, cmd.Run)
			require.NoError(t, err)
			require.Equal(t, tt.expected+"\n", out)
		})
	}
}

func TestSnipCmd_OutOfBounds(t *testing.T) {
	tempDir := t.TempDir()
	source := createTestFile(t, tempDir, "source.txt", "short")

	cmd := &SnipCmd{Path: source, Range: "0-100"}
	_, err := captureStdout(t, cmd.Run)
	require.Error(t, err)
}

func TestSnipCmd_BadRange(t *testing.T) {
	tempDir := t.TempDir()
	source := createTestFile(t, tempDir, "source.txt", "text")

	cmd := &SnipCmd{Path: source, Range: "34-12"}
	_, err := captureStdout(t, cmd.Run)
	require.Error(t, err)
}

func TestScoreCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	key := createTestFile(t, tempDir, "key.json", `[["a","b","c"],["d"]]`)
	response := createTestFile(t, tempDir, "response.json", `[["a","b"],["c","d"]]`)

	cmd := &ScoreCmd{Key: key, Response: response, JSON: true}
	out, err := captureStdout(t, cmd.Run)
	require.NoError(t, err)

	var report scoreReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.InDelta(t, 17.0/35.0, report.Score, 1e-9)
	require.InDelta(t, 0.5, report.CorefPrecision, 1e-9)
	require.True(t, report.ItemSetsMatch)
}

func TestScoreCmd_Identical(t *testing.T) {
	tempDir := t.TempDir()
	clusters := `[["a","b"],["c"]]`
	key := createTestFile(t, tempDir, "key.json", clusters)
	response := createTestFile(t, tempDir, "response.json", clusters)

	cmd := &ScoreCmd{Key: key, Response: response}
	out, err := captureStdout(t, cmd.Run)
	require.NoError(t, err)
	require.Contains(t, out, "BLANC score: 1.0000")
}

func TestScoreCmd_BadJSON(t *testing.T) {
	tempDir := t.TempDir()
	key := createTestFile(t, tempDir, "key.json", `not json`)
	response := createTestFile(t, tempDir, "response.json", `[["a"]]`)

	cmd := &ScoreCmd{Key: key, Response: response}
	_, err := captureStdout(t, cmd.Run)
	require.Error(t, err)
}

func TestCatalogCommands(t *testing.T) {
	tempDir := t.TempDir()
	doc1 := createTestFile(t, tempDir, "doc1.xml", testDocument)
	db := filepath.Join(tempDir, "catalog.db")

	indexCmd := &IndexCmd{DB: db, Paths: []string{doc1}}
	_, err := captureStdout(t, indexCmd.Run)
	require.NoError(t, err)

	t.Run("list documents", func(t *testing.T) {
		cmd := &CatalogListCmd{DB: db}
		out, err := captureStdout(t, cmd.Run)
		require.NoError(t, err)
		require.Contains(t, out, "DOC1")
		require.Contains(t, out, "Total: 1 document(s)")
	})

	t.Run("list runs", func(t *testing.T) {
		cmd := &CatalogListCmd{DB: db, Runs: true}
		out, err := captureStdout(t, cmd.Run)
		require.NoError(t, err)
		require.Contains(t, out, "finished")
		require.Contains(t, out, "Total: 1 run(s)")
	})

	t.Run("info", func(t *testing.T) {
		cmd := &CatalogInfoCmd{DB: db}
		out, err := captureStdout(t, cmd.Run)
		require.NoError(t, err)
		require.Contains(t, out, "Documents: 1")
		require.Contains(t, out, "Driver:")
	})

	t.Run("info one document", func(t *testing.T) {
		cmd := &CatalogInfoCmd{DB: db, Doc: "DOC1"}
		out, err := captureStdout(t, cmd.Run)
		require.NoError(t, err)
		require.Contains(t, out, "SHA-256:")
		require.Contains(t, out, "BLAKE3:")
	})

	t.Run("info unknown document", func(t *testing.T) {
		cmd := &CatalogInfoCmd{DB: db, Doc: "NOPE"}
		_, err := captureStdout(t, cmd.Run)
		require.Error(t, err)
	})
}

func TestVersionCmd_Run(t *testing.T) {
	cmd := &VersionCmd{}
	out, err := captureStdout(t, cmd.Run)
	require.NoError(t, err)
	require.Contains(t, out, version)
}
