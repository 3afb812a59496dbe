package pdf

import "time"

var dateLayouts = []string{"2006-01-02", time.RFC3339, "02-01-2006"}

// FormatDate convierte una fecha a DD-MM-YYYY; si no se puede interpretar devuelve la entrada tal cual.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02-01-2006")
		}
	}
	return s
}
