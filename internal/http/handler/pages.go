package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"

	"filegate/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"humanSize":  humanSize,
	"formatTime": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04") },
}).ParseFS(templateFS, "templates/*.html"))

type loginPage struct {
	Lang  string
	Text  map[string]string
	Error string
}

type indexPage struct {
	Lang           string
	Text           map[string]string
	Files          []model.FileMetadata
	DefaultStorage model.StorageType
}

func render(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func renderLogin(c *fiber.Ctx, status int, errKey string) error {
	lang := langFromCtx(c)
	data := loginPage{Lang: lang, Text: messages[lang]}
	if errKey != "" {
		data.Error = msg(lang, errKey)
	}
	return render(c, status, "login.html", data)
}

func humanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
