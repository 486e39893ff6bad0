package ai

import (
	"bytes"
	_ "embed"
	"text/template"
)

// TargetSite is the site the closing call-to-action points readers to.
const TargetSite = "Jetsetz.com"

//go:embed blog_prompt.tmpl
var blogPromptTpl string

var blogPrompt = template.Must(template.New("blog_prompt").Parse(blogPromptTpl))

type promptData struct {
	Keyword string
	Site    string
}

// BlogPrompt renders the fixed blog-post prompt for keyword.
func BlogPrompt(keyword string) string {
	var buf bytes.Buffer
	// the template is static and only interpolates strings
	_ = blogPrompt.Execute(&buf, promptData{Keyword: keyword, Site: TargetSite})
	return buf.String()
}
