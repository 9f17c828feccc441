// Package render turns post text into HTML for the presentation layer.
package render

import (
	"bytes"
	"html/template"
	"log"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			goldhtml.WithHardWraps(),
		),
	)
	policy = bluemonday.UGCPolicy()

	hashtag = regexp.MustCompile(`(^|[^\w&/])#(\w+)`)
)

func init() {
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// TopicPath is the in-app link for a hashtag.
func TopicPath(tag string) string {
	return "/topics/" + tag
}

func linkHashtags(text string) string {
	return hashtag.ReplaceAllString(text, "$1[#$2]("+TopicPath("$2")+")")
}

// PostHTML renders Markdown post text to sanitized HTML with hashtags linked to their topic page.
func PostHTML(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(linkHashtags(text)), &buf); err != nil {
		log.Printf("failed to render post: %v", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}
