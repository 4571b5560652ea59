package api

import (
	"fmt"
	"html/template"
	"math"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/vytor/ergolog/internal/summarychart"
)

// LoadTemplates parses every layout, page and partial under dir.
func LoadTemplates(dir string, f *summarychart.Formatter) (*template.Template, error) {
	if f == nil {
		f = summarychart.DefaultFormatter
	}
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"seq": func(start, end int) []int {
			if end < start {
				return []int{}
			}
			nums := make([]int, 0, end-start+1)
			for i := start; i <= end; i++ {
				nums = append(nums, i)
			}
			return nums
		},
		"getFilter": func(values url.Values, key string) string {
			if values == nil {
				return ""
			}
			return values.Get(key)
		},
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				key, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[key] = kv[i+1]
			}
			return m, nil
		},
		"urlquery":   url.QueryEscape,
		"date":       func(t time.Time) string { return t.Format("2006-01-02") },
		"split":      splitShort,
		"clock":      clock,
		"hms":        hms,
		"humanTotal": humanTotal,
		"meters":     f.Count,
		"reps": func(v *int64) string {
			if v == nil {
				return "N/A"
			}
			return f.Count(float64(*v))
		},
		"level": func(v *float64) string {
			if v == nil {
				return "N/A"
			}
			return fmt.Sprintf("%.1f", *v)
		},
		"lower": strings.ToLower,
	}

	t := template.New("base").Funcs(funcs)
	for _, sub := range []string{"layouts", "pages", "partials"} {
		pattern := filepath.Join(dir, sub, "*.html")
		if matches, _ := filepath.Glob(pattern); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseGlob(pattern); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// splitShort formats seconds per 500m as M:SS.t, truncating to tenths.
func splitShort(sec float64) string {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec <= 0 {
		return "N/A"
	}
	tenths := int64(sec * 10)
	return fmt.Sprintf("%d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}

// clock formats a duration as H:MM:SS.
func clock(sec float64) string {
	if math.IsNaN(sec) || sec < 0 {
		return "N/A"
	}
	s := int64(sec)
	return fmt.Sprintf("%d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// hms formats a duration as "1h 02m 05s", dropping the hours when zero.
func hms(sec float64) string {
	if math.IsNaN(sec) || sec < 0 {
		return "N/A"
	}
	s := int64(sec)
	h, m, rem := s/3600, (s%3600)/60, s%60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, rem)
	}
	return fmt.Sprintf("%02dm %02ds", m, rem)
}

// humanTotal formats long totals as "2d:03h:04m:05s". Days and hours are
// omitted while zero.
func humanTotal(sec float64) string {
	if math.IsNaN(sec) || sec < 0 {
		return "N/A"
	}
	s := int64(sec)
	days, hours := s/86400, (s%86400)/3600
	minutes, seconds := (s%3600)/60, s%60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days), fmt.Sprintf("%02dh", hours))
	} else if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	parts = append(parts, fmt.Sprintf("%02dm", minutes), fmt.Sprintf("%02ds", seconds))
	return strings.Join(parts, ":")
}
