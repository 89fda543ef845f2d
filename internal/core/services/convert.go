package services

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
)

// Pre-compiled regular expressions for HTML-to-markdown conversion.
var (
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	preBlock      = regexp.MustCompile(`(?is)<pre[^>]*>.*?</pre>`)
	codeLangClass = regexp.MustCompile(`(?is)<code[^>]*class\s*=\s*"[^"]*language-([\w#+.-]+)[^"]*"`)
	codeInner     = regexp.MustCompile(`(?is)<code[^>]*>(.*?)</code>`)
	preInner      = regexp.MustCompile(`(?is)<pre[^>]*>(.*?)</pre>`)
	headingTag    = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	blockquoteTag = regexp.MustCompile(`(?is)<blockquote[^>]*>(.*?)</blockquote>`)
	anchorTag     = regexp.MustCompile(`(?is)<a[^>]*href\s*=\s*"([^"]*)"[^>]*>(.*?)</a>`)
	strongTag     = regexp.MustCompile(`(?is)<(?:strong|b)[^>]*>(.*?)</(?:strong|b)>`)
	emphasisTag   = regexp.MustCompile(`(?is)<(?:em|i)[^>]*>(.*?)</(?:em|i)>`)
	listItemTag   = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)
	brTags        = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags        = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	danglingImage = regexp.MustCompile(`!\[[^\]]*\]\(\s*\)`)
)

// Convert transforms rendered HTML body content into its destination
// form: a single markdown string (flat mode) or a constrained
// block-structured document (structured mode). Inline images whose
// file name resolves through the asset map are rewritten to the
// published asset URL; unresolved images are dropped entirely.
//
// Convert is a pure function of its inputs: identical inputs yield
// byte-identical output.
func Convert(content string, mode domain.ConvertMode, assets domain.AssetMap) domain.ConvertedContent {
	md := htmlToMarkdown(content, assets)
	if mode == domain.ConvertStructured {
		return domain.ConvertedContent{
			Mode:     domain.ConvertStructured,
			Document: structureMarkdown(md),
		}
	}
	return domain.ConvertedContent{
		Mode:     domain.ConvertFlat,
		Markdown: md,
	}
}

// htmlToMarkdown performs the line-oriented HTML to markdown
// conversion shared by both modes.
func htmlToMarkdown(content string, assets domain.AssetMap) string {
	content = htmlComments.ReplaceAllString(content, "")
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")

	// Carve fenced code blocks out first so later rewrites cannot
	// touch their contents; they are restored after line cleanup.
	var fences []string
	content = preBlock.ReplaceAllStringFunc(content, func(m string) string {
		fences = append(fences, fencedCodeBlock(m))
		return fmt.Sprintf("\n\x00fence%d\x00\n", len(fences)-1)
	})

	content = rewriteImages(content, assets)

	content = headingTag.ReplaceAllStringFunc(content, func(m string) string {
		sub := headingTag.FindStringSubmatch(m)
		level, err := strconv.Atoi(sub[1])
		if err != nil || level < 1 {
			level = 1
		}
		return "\n" + strings.Repeat("#", level) + " " + strings.TrimSpace(stripInlineTags(sub[2])) + "\n"
	})

	content = blockquoteTag.ReplaceAllStringFunc(content, func(m string) string {
		sub := blockquoteTag.FindStringSubmatch(m)
		return "\n" + quoteLines(stripInlineTags(sub[1])) + "\n"
	})

	content = anchorTag.ReplaceAllString(content, "[$2]($1)")
	content = strongTag.ReplaceAllString(content, "**$1**")
	content = emphasisTag.ReplaceAllString(content, "*$1*")
	content = listItemTag.ReplaceAllString(content, "\n- $1")
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n")

	// Remaining block tags become line breaks, inline tags disappear.
	content = allTags.ReplaceAllString(content, "\n")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	// Trim each line and rejoin non-empty lines as paragraphs.
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	content = strings.Join(lines, "\n\n")

	// Restore carved-out code blocks.
	for i, fence := range fences {
		content = strings.Replace(content, fmt.Sprintf("\x00fence%d\x00", i), fence, 1)
	}

	// Strip any image reference left without a target.
	content = danglingImage.ReplaceAllString(content, "")

	return strings.TrimSpace(content)
}

// rewriteImages replaces each <img> tag with a markdown image pointing
// at the published destination asset. Images whose file name has no
// entry in the asset map are dropped, never left pointing at the
// original source URL.
func rewriteImages(content string, assets domain.AssetMap) string {
	return imgTag.ReplaceAllStringFunc(content, func(tag string) string {
		src := firstSubmatch(srcAttr, tag)
		if src == "" {
			return ""
		}
		target, ok := assets.Resolve(domain.FileNameFromURL(src))
		if !ok {
			return ""
		}
		alt := firstSubmatch(altAttr, tag)
		return fmt.Sprintf("\n![%s](%s)\n", alt, target.URL)
	})
}

// fencedCodeBlock converts one <pre> block into a fenced markdown code
// block, tagged with the language from a language-xxx class on the
// inner <code> element when present.
func fencedCodeBlock(pre string) string {
	lang := firstSubmatch(codeLangClass, pre)

	inner := firstSubmatch(codeInner, pre)
	if inner == "" {
		inner = firstSubmatch(preInner, pre)
	}
	code := html.UnescapeString(allTags.ReplaceAllString(inner, ""))
	code = strings.Trim(code, "\n")

	return "```" + lang + "\n" + code + "\n```"
}

// quoteLines strips tags from blockquote content and prefixes each
// non-empty line with the markdown quote marker.
func quoteLines(inner string) string {
	var quoted []string
	for _, line := range strings.Split(inner, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			quoted = append(quoted, "> "+line)
		}
	}
	return strings.Join(quoted, "\n")
}

// stripInlineTags converts inline breaks to newlines and removes every
// remaining tag, decoding HTML entities.
func stripInlineTags(s string) string {
	s = brTags.ReplaceAllString(s, "\n")
	s = allTags.ReplaceAllString(s, "")
	return html.UnescapeString(s)
}

// structureMarkdown splits markdown into trimmed non-empty lines and
// classifies each by its leading marker. This is a deliberate
// line-oriented approximation: multi-line paragraphs, lists, and
// nested structures are not merged.
func structureMarkdown(md string) *domain.RichTextDocument {
	doc := &domain.RichTextDocument{
		NodeType: domain.NodeDocument,
		Data:     map[string]any{},
		Content:  []domain.RichTextNode{},
	}
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc.Content = append(doc.Content, classifyLine(line))
	}
	return doc
}

// classifyLine maps one markdown line to a block node: heading level
// 1-3, blockquote wrapping a paragraph, or a default paragraph.
func classifyLine(line string) domain.RichTextNode {
	switch {
	case strings.HasPrefix(line, "### "):
		return domain.BlockNode(domain.NodeHeading3, domain.TextNode(strings.TrimPrefix(line, "### ")))
	case strings.HasPrefix(line, "## "):
		return domain.BlockNode(domain.NodeHeading2, domain.TextNode(strings.TrimPrefix(line, "## ")))
	case strings.HasPrefix(line, "# "):
		return domain.BlockNode(domain.NodeHeading1, domain.TextNode(strings.TrimPrefix(line, "# ")))
	case strings.HasPrefix(line, "> "):
		return domain.BlockNode(domain.NodeBlockquote,
			domain.BlockNode(domain.NodeParagraph, domain.TextNode(strings.TrimPrefix(line, "> "))))
	default:
		return domain.BlockNode(domain.NodeParagraph, domain.TextNode(line))
	}
}
