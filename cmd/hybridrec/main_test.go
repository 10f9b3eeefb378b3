package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

const testMovies = `movieId,title,genres
1,A,Action
2,B,Action
3,C,Comedy
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append(args, "--log-level", "error"), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRank_Text(t *testing.T) {
	movies := writeTemp(t, "movies.csv", testMovies)
	code, out, errOut := execute(t, "rank", "1", "--movies", movies, "--color", "never")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, `Because you liked "A", here are some recommendations:`) {
		t.Errorf("missing headline:\n%s", out)
	}
	if !strings.Contains(out, "50%") {
		t.Errorf("expected B at 50%%:\n%s", out)
	}
	if strings.Index(out, "50%") > strings.Index(out, "Comedy") {
		t.Errorf("B should be listed before C:\n%s", out)
	}
}

func TestRank_Errors(t *testing.T) {
	movies := writeTemp(t, "movies.csv", testMovies)
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown seed", []string{"rank", "999", "--movies", movies}, 2},
		{"non-numeric seed", []string{"rank", "abc", "--movies", movies}, 2},
		{"no seed", []string{"rank", "--movies", movies}, 2},
		{"missing file", []string{"rank", "1", "--movies", filepath.Join(t.TempDir(), "nope.csv")}, 3},
		{"bad output format", []string{"rank", "1", "--movies", movies, "-o", "xml"}, 1},
		{"top above limit", []string{"rank", "1", "--movies", movies, "--top", "10"}, 2},
		{"negative top", []string{"rank", "1", "--movies", movies, "--top=-1"}, 2},
		{"pipeline without rank", []string{"rank", "1", "--movies", movies, "--pipeline", writeTemp(t, "p.yaml", "pipeline:\n  nodes:\n    - type: recall.catalog\n")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(t, tt.args...)
			if code != tt.code {
				t.Errorf("exit = %d, want %d (stderr: %s)", code, tt.code, errOut)
			}
			if !strings.Contains(errOut, "Error: ") {
				t.Errorf("stderr should carry the error: %q", errOut)
			}
		})
	}
}

func TestRank_Empty(t *testing.T) {
	movies := writeTemp(t, "movies.csv", "1,Only,Drama\n")
	code, out, errOut := execute(t, "rank", "1", "--movies", movies, "--color", "never")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, `No recommendations found for "Only".`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRank_JSON(t *testing.T) {
	movies := writeTemp(t, "movies.json",
		`[{"id":1,"title":"A","genres":["Action"]},{"id":2,"title":"B","genres":["Action"]},{"id":3,"title":"C","genres":["Comedy"]}]`)
	code, out, errOut := execute(t, "rank", "--seed", "1", "--seed", "3", "--movies", movies, "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var got []jsonResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].SeedID != 1 || got[1].SeedID != 3 {
		t.Fatalf("unexpected results: %+v", got)
	}
	first := got[0].Recommendations
	if len(first) != 2 || first[0].ID != 2 || first[0].Percent != 50 || first[1].Percent != 0 {
		t.Errorf("unexpected recommendations for seed 1: %+v", first)
	}
}

func TestRank_PartialFailure(t *testing.T) {
	movies := writeTemp(t, "movies.csv", testMovies)
	code, out, _ := execute(t, "rank", "1", "42", "--movies", movies, "--color", "never")
	if code != 2 {
		t.Errorf("exit = %d, want 2", code)
	}
	if !strings.Contains(out, `Because you liked "A"`) {
		t.Errorf("valid seed should still be rendered:\n%s", out)
	}
}

func TestRank_TopAndPipeline(t *testing.T) {
	movies := writeTemp(t, "movies.csv", testMovies)
	code, out, errOut := execute(t, "rank", "1", "--movies", movies, "--top", "1", "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var got []jsonResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got[0].Recommendations) != 1 {
		t.Errorf("--top 1 should keep one result, got %d", len(got[0].Recommendations))
	}

	pipelineFile := writeTemp(t, "pipeline.yaml", `
pipeline:
  name: comedy-only
  nodes:
    - type: recall.catalog
    - type: rank.hybrid
    - type: filter
      config:
        filters:
          - type: blacklist
            item_ids: [2]
    - type: rerank.topn
`)
	code, out, errOut = execute(t, "rank", "1", "--movies", movies, "--pipeline", pipelineFile, "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	got = nil
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if recs := got[0].Recommendations; len(recs) != 1 || recs[0].ID != 3 {
		t.Errorf("blacklisted item should be removed: %+v", recs)
	}
}

func TestRank_EnvConfig(t *testing.T) {
	movies := writeTemp(t, "movies.csv", testMovies)
	t.Setenv("HYBRIDREC_DATA_MOVIES", movies)
	t.Setenv("HYBRIDREC_OUTPUT_FORMAT", "json")
	code, out, errOut := execute(t, "rank", "2")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "[") {
		t.Errorf("expected json output from env config:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "version", "--short")
	if code != 0 || strings.TrimSpace(out) != version {
		t.Errorf("version --short = %d %q", code, out)
	}
	code, out, _ = execute(t, "version")
	if code != 0 || !strings.Contains(out, "go version:") {
		t.Errorf("version = %d %q", code, out)
	}
}

func TestRank_ResultLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("movieId,title,genres\n")
	for i := 1; i <= 9; i++ {
		b.WriteString(strconv.Itoa(i) + ",Movie " + strconv.Itoa(i) + ",Drama\n")
	}
	movies := writeTemp(t, "movies.csv", b.String())
	pipelineFile := writeTemp(t, "pipeline.yaml", `
pipeline:
  nodes:
    - type: recall.catalog
    - type: rank.hybrid
`)
	code, out, errOut := execute(t, "rank", "1", "--movies", movies, "--pipeline", pipelineFile, "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var got []jsonResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if n := len(got[0].Recommendations); n != 5 {
		t.Errorf("pipeline without topn returned %d results, want 5", n)
	}
}
