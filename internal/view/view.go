package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

// Renderer 持有解析好的页面与片段模板
type Renderer struct {
	tmpl *template.Template
}

// New 解析内嵌的全部模板
func New() (*Renderer, error) {
	tmpl, err := template.New("base").Funcs(Funcs()).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render 先渲染到缓冲区，出错时不会向 w 写入半截内容
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderString 渲染为字符串，主要供测试与 CLI 预览使用
func (r *Renderer) RenderString(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Static 返回 /static 下的前端资源
func Static() fs.FS {
	sub, err := fs.Sub(assetsFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Template 返回底层模板，供 gin 的 HTML 渲染使用
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}
