package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/recommend"
)

// printer 负责把排序结果渲染为文本表格或 JSON。
type printer struct {
	w        io.Writer
	format   string
	headline *color.Color
	empty    *color.Color
}

func newPrinter(w io.Writer, s OutputSettings) *printer {
	p := &printer{
		w:        w,
		format:   s.Format,
		headline: color.New(color.FgGreen, color.Bold),
		empty:    color.New(color.FgYellow),
	}
	switch s.Color {
	case "always":
		p.headline.EnableColor()
		p.empty.EnableColor()
	case "never":
		p.headline.DisableColor()
		p.empty.DisableColor()
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			p.headline.DisableColor()
			p.empty.DisableColor()
		}
	}
	return p
}

// Print 渲染全部结果；单个种子的错误不影响其他种子输出，最终合并返回。
func (p *printer) Print(ds *core.Dataset, results []recommend.BatchResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("seed %d: %w", r.SeedID, r.Err))
		}
	}

	var err error
	if p.format == "json" {
		err = p.printJSON(ds, results)
	} else {
		err = p.printText(ds, results)
	}
	if err != nil {
		return err
	}
	return errors.Join(errs...)
}

func percent(score float64) string {
	return strconv.Itoa(int(math.Round(score*100))) + "%"
}

func (p *printer) printText(ds *core.Dataset, results []recommend.BatchResult) error {
	first := true
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !first {
			fmt.Fprintln(p.w)
		}
		first = false

		seed, _ := ds.Catalog.Get(r.SeedID)
		if len(r.Candidates) == 0 {
			p.empty.Fprintf(p.w, "No recommendations found for %q.\n", seed.Title)
			continue
		}
		p.headline.Fprintf(p.w, "Because you liked %q, here are some recommendations:\n", seed.Title)

		rows := make([][]string, 0, len(r.Candidates))
		for i, c := range r.Candidates {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				c.Item.Title,
				strings.Join(c.Item.Attributes.Values(), "|"),
				percent(c.HybridScore),
				percent(c.ContentScore),
				percent(c.CollaborativeScore),
			})
		}
		if err := renderTable(p.w, []string{"#", "Title", "Genres", "Similarity", "Content", "Collaborative"}, rows); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

type jsonRecommendation struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Genres             []string `json:"genres"`
	Score              float64  `json:"score"`
	ContentScore       float64  `json:"content_score"`
	CollaborativeScore float64  `json:"collaborative_score"`
	Percent            int      `json:"percent"`
}

type jsonResult struct {
	SeedID          int64                `json:"seed_id"`
	SeedTitle       string               `json:"seed_title,omitempty"`
	Recommendations []jsonRecommendation `json:"recommendations"`
	Error           string               `json:"error,omitempty"`
}

func (p *printer) printJSON(ds *core.Dataset, results []recommend.BatchResult) error {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		jr := jsonResult{SeedID: r.SeedID, Recommendations: []jsonRecommendation{}}
		if seed, ok := ds.Catalog.Get(r.SeedID); ok {
			jr.SeedTitle = seed.Title
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		for _, c := range r.Candidates {
			genres := c.Item.Attributes.Values()
			if genres == nil {
				genres = []string{}
			}
			jr.Recommendations = append(jr.Recommendations, jsonRecommendation{
				ID:                 c.ID(),
				Title:              c.Item.Title,
				Genres:             genres,
				Score:              c.HybridScore,
				ContentScore:       c.ContentScore,
				CollaborativeScore: c.CollaborativeScore,
				Percent:            int(math.Round(c.HybridScore * 100)),
			})
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
