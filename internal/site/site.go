// Package site renders the archive into static HTML: one index page
// grouped by playlist and one transcript page per video, with segment
// timestamps linking back to the source at the spoken offset.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"scriba/internal/fileutil"
	"scriba/internal/logging"
	"scriba/internal/media"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Generator renders records into a static site directory.
type Generator struct {
	dir       string
	title     string
	templates *template.Template
	logger    *slog.Logger
}

// NewGenerator parses the embedded templates and binds the output
// directory.
func NewGenerator(dir, title string, logger *slog.Logger) (*Generator, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("site directory required")
	}
	if strings.TrimSpace(title) == "" {
		title = "Transcript Archive"
	}

	tmpl := template.New("site").Funcs(template.FuncMap{
		"formatOffset": formatOffset,
		"timedURL":     timedURL,
	})
	tmpl, err := tmpl.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse site templates: %w", err)
	}

	return &Generator{
		dir:       dir,
		title:     title,
		templates: tmpl,
		logger:    logging.NewComponentLogger(logger, "site"),
	}, nil
}

type indexVideo struct {
	ID          string
	Title       string
	PublishedAt string
}

type indexGroup struct {
	Label  string
	Videos []indexVideo
}

type indexPage struct {
	Title       string
	Groups      []indexGroup
	GeneratedAt string
}

type videoPage struct {
	SiteTitle string
	Record    media.Record
}

// Generate renders the index and every transcript page. Existing pages are
// overwritten; the generated tree is derived data.
func (g *Generator) Generate(recs []media.Record) error {
	videoDir := filepath.Join(g.dir, "v")
	if err := os.MkdirAll(videoDir, 0o755); err != nil {
		return fmt.Errorf("create site directory: %w", err)
	}

	for _, rec := range recs {
		page := videoPage{SiteTitle: g.title, Record: rec}
		path := filepath.Join(videoDir, rec.Item.ID+".html")
		if err := g.render(path, "video.html.tmpl", page); err != nil {
			return err
		}
	}

	index := g.buildIndex(recs)
	if err := g.render(filepath.Join(g.dir, "index.html"), "index.html.tmpl", index); err != nil {
		return err
	}

	g.logger.Info("site generated",
		logging.String("dir", g.dir),
		logging.Int("pages", len(recs)+1),
	)
	return nil
}

func (g *Generator) render(path, name string, data any) error {
	var buf strings.Builder
	if err := g.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(buf.String())); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// buildIndex groups records by playlist, ordering groups by collated label
// and videos by published date then title.
func (g *Generator) buildIndex(recs []media.Record) indexPage {
	byGroup := make(map[string]*indexGroup)
	for _, rec := range recs {
		label := rec.Item.GroupLabel
		if label == "" {
			label = rec.Item.GroupID
		}
		group, ok := byGroup[label]
		if !ok {
			group = &indexGroup{Label: label}
			byGroup[label] = group
		}
		group.Videos = append(group.Videos, indexVideo{
			ID:          rec.Item.ID,
			Title:       rec.Item.Title,
			PublishedAt: rec.PublishedAt,
		})
	}

	collator := collate.New(language.English, collate.IgnoreCase)
	groups := make([]indexGroup, 0, len(byGroup))
	for _, group := range byGroup {
		sort.SliceStable(group.Videos, func(i, j int) bool {
			a, b := group.Videos[i], group.Videos[j]
			if a.PublishedAt != b.PublishedAt {
				return a.PublishedAt < b.PublishedAt
			}
			return collator.CompareString(a.Title, b.Title) < 0
		})
		groups = append(groups, *group)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return collator.CompareString(groups[i].Label, groups[j].Label) < 0
	})

	return indexPage{
		Title:       g.title,
		Groups:      groups,
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 MST"),
	}
}

// formatOffset renders milliseconds as m:ss or h:mm:ss.
func formatOffset(ms int64) string {
	total := ms / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// timedURL appends a start-offset parameter to the source URL.
func timedURL(sourceURL string, ms int64) string {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return sourceURL
	}
	query := parsed.Query()
	query.Set("t", fmt.Sprintf("%ds", ms/1000))
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
