// Package extract pulls plain text out of uploaded documents and web pages
// for the generation pipeline.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"

	errx "github.com/coursegen-poc/server/internal/core/error"
	logx "github.com/coursegen-poc/server/pkg/logger"
)

// Content types the extractor recognizes.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeDoc  = "application/msword"
)

// urlTextLimit caps how much page text a URL fetch contributes, in runes.
const urlTextLimit = 3000

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FromFile extracts plain text from an uploaded document, dispatching on the
// declared content type. Unrecognized types return a KindInput error rather
// than silently yielding empty text.
func FromFile(name, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload %q: %w", name, err)
	}

	switch contentType {
	case ContentTypePDF:
		return fromPDF(data)
	case ContentTypeDocx, ContentTypeDoc:
		return fromDocx(data)
	default:
		logx.Warn().Str("name", name).Str("content_type", contentType).Msg("rejecting upload")
		return "", errx.New(fmt.Errorf("content type %q", contentType), errx.KindInput, errx.UnsupportedFileMessage)
	}
}

func fromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	body, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

func fromDocx(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			paragraphs = append(paragraphs, p.String())
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

// FromURL fetches a page and returns its visible text, tags stripped and
// whitespace collapsed, capped at 3000 characters.
func FromURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errx.New(err, errx.KindInput, "invalid URL")
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		logx.Error().Err(err).Str("url", url).Msg("failed to fetch URL")
		return "", errx.New(err, errx.KindTransport, "failed to fetch URL")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("status %s", resp.Status)
		logx.Error().Err(err).Str("url", url).Msg("failed to fetch URL")
		return "", errx.New(err, errx.KindTransport, "failed to fetch URL")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errx.New(err, errx.KindTransport, "failed to read URL body")
	}

	text := tagPattern.ReplaceAllString(string(body), " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) > urlTextLimit {
		runes = runes[:urlTextLimit]
	}
	return string(runes), nil
}
