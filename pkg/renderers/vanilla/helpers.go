package vanilla

import (
	"strings"

	"github.com/goliatone/go-orderform/pkg/render"
)

func controlID(name string, suffix ...string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	parts := append([]string{"of", trimmed}, suffix...)
	return strings.Join(parts, "-")
}

func sanitizeClassList(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

type optionData struct {
	render.OptionView
	ID string `json:"id"`
}

type fieldData struct {
	render.FieldView
	ID      string       `json:"id"`
	LabelID string       `json:"labelId"`
	ErrorID string       `json:"errorId"`
	Options []optionData `json:"options,omitempty"`
}

func fieldsData(fields []render.FieldView) []fieldData {
	out := make([]fieldData, 0, len(fields))
	for _, field := range fields {
		data := fieldData{
			FieldView: field,
			ID:        controlID(field.Name),
			LabelID:   controlID(field.Name, "label"),
			ErrorID:   controlID(field.Name, "error"),
		}
		for _, opt := range field.Options {
			data.Options = append(data.Options, optionData{
				OptionView: opt,
				ID:         controlID(field.Name, opt.Value),
			})
		}
		out = append(out, data)
	}
	return out
}
