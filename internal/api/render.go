package api

import (
	"embed"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"date": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			if t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04")
		case *time.Time:
			if t == nil || t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04")
		}
		return "-"
	},
	"days": func(v *int) string {
		if v == nil {
			return "-"
		}
		return strconv.Itoa(*v)
	},
	"join": strings.Join,
}

// LoadTemplates 解析內嵌的頁面模板
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
}

// page 組出模板共用資料
func page(c *gin.Context, flash *Flasher, title string, data gin.H) gin.H {
	out := gin.H{
		"Title":    title,
		"LoggedIn": c.GetString(ownerKey) != "",
		"Owner":    c.GetString(ownerKey),
		"Flash":    flash.Pop(c),
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}
