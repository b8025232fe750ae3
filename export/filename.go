package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"

	"picdoc/config"
	"picdoc/document"
)

// NameData is the context available to a user supplied output name template.
type NameData struct {
	Title      string
	Project    string
	SubProject string
	Manager    string
	Page       int
	Pages      int
	Format     string
}

// BuildFileName derives the output file name for an artifact. Page 0 means a
// single artifact covering the whole document; positive pages get a suffix so
// per-page image exports never collide.
func BuildFileName(cfg *config.Config, meta document.Metadata, page, pages int, format config.OutputFmt) (string, error) {
	title := meta.Title
	if title == "" {
		title = cfg.Document.DefaultTitle
	}

	var name string
	if tmpl := cfg.Document.OutputNameTemplate; tmpl != "" {
		t, err := template.New("name").Funcs(sprig.FuncMap()).Parse(tmpl)
		if err != nil {
			return "", fmt.Errorf("bad output name template: %w", err)
		}
		var buf bytes.Buffer
		err = t.Execute(&buf, NameData{
			Title:      title,
			Project:    meta.Project,
			SubProject: meta.SubProject,
			Manager:    meta.Manager,
			Page:       page,
			Pages:      pages,
			Format:     format.String(),
		})
		if err != nil {
			return "", fmt.Errorf("failed to expand output name template: %w", err)
		}
		name = strings.TrimSpace(buf.String())
	}
	if name == "" {
		name = title
		if meta.Project != "" {
			name += "(" + meta.Project + ")"
		}
		if meta.SubProject != "" {
			name += "_" + meta.SubProject
		}
	}
	if page > 0 {
		name += fmt.Sprintf("_page%d", page)
	}

	name = config.CleanFileName(name)
	if cfg.Document.FileNameTransliterate {
		name = slug.Make(name)
	}
	return name + format.Ext(), nil
}
