package amanti

import (
	"embed"
	"html/template"

	"github.com/NethermindEth/amanti/pkg/amanti/note"
)

//go:embed web/index.html
var webFS embed.FS

type styleOption struct {
	Value string
	Label string
}

func pageTemplate() *template.Template {
	return template.Must(template.New("").ParseFS(webFS, "web/index.html"))
}

func styleOptions() []styleOption {
	options := make([]styleOption, 0, len(note.Styles()))
	for _, style := range note.Styles() {
		options = append(options, styleOption{Value: string(style), Label: style.Label()})
	}
	return options
}
