// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package frontmatter

import (
	"regexp"
	"strings"

	"github.com/walteh/matterject/pkg/uuidv7"
	"gitlab.com/tozd/go/errors"
)

// UUIDPlaceholder is the literal payload token that requests a generated
// identifier. It may be single- or double-quoted in the payload.
const UUIDPlaceholder = "{uuidv7}"

// uuidLineRe matches a column-zero uuid key. The anchor is the whole means of
// scoping: an indented uuid nested under a parent key must never match, in
// either the preservation or the generation path.
var uuidLineRe = regexp.MustCompile(`(?m)^uuid(?P<key_ws>\s*):(?P<post_colon_ws>\s*)(?P<value>[^\r\n]*)(?P<line_end>\r?\n|$)`)

// 📊 Result reports what the rewrite did to one document
type Result struct {
	HadFrontMatter bool   // document opened with a front matter delimiter
	PreservedUUID  bool   // existing identifier carried into the new block
	GeneratedUUID  bool   // fresh identifier substituted for the placeholder
	Malformed      bool   // unterminated block; document must not be written
	Reason         string // human-readable detail when Malformed
}

// 🔄 Rewriter composes replacement documents from a payload and a parsed
// document, generating identifiers on demand
type Rewriter struct {
	gen *uuidv7.Generator
}

// NewRewriter creates a Rewriter. A nil generator falls back to the
// crypto/rand + wall-clock default.
func NewRewriter(gen *uuidv7.Generator) *Rewriter {
	if gen == nil {
		gen = uuidv7.New()
	}
	return &Rewriter{gen: gen}
}

// Transform replaces the document's front matter with payloadText.
//
// Rules:
//   - Front matter is recognized only at document start.
//   - The existing column-zero uuid wins over anything in the payload when
//     preserveUUID is set.
//   - A payload uuid value equal to the {uuidv7} placeholder is replaced with
//     a generated identifier, but only when nothing was preserved.
//   - Payload line endings are coerced to the document's detected newline.
//
// A malformed (unterminated) block is not an error return: the original
// BOM-stripped text comes back untouched with Result.Malformed set, so the
// caller can skip the write. The error return covers payload normalization
// and identifier generation failures only.
func (r *Rewriter) Transform(text string, payloadText string, preserveUUID bool) (string, Result, error) {
	cleanText := StripBOM(text)
	newline := DetectNewline(cleanText)

	block := Parse(cleanText)
	res := Result{HadFrontMatter: block.Present}

	if block.Malformed {
		res.Malformed = true
		res.Reason = "front matter starts with '---' but has no closing marker"
		return cleanText, res, nil
	}

	payload, err := NormalizePayload(payloadText)
	if err != nil {
		return cleanText, res, errors.Errorf("normalizing payload: %w", err)
	}
	payload = coerceNewlines(payload, newline)

	var existingUUID string
	var hasExisting bool
	if block.Present {
		existingUUID, hasExisting = extractUUIDValue(block.Text)
	}

	if preserveUUID && hasExisting {
		replaced := false
		payload, replaced = replaceFirstUUIDValue(payload, existingUUID)
		if !replaced {
			payload = prependUUIDLine(payload, existingUUID, newline)
		}
		res.PreservedUUID = true
	} else if m := uuidLineRe.FindStringSubmatch(payload); m != nil && isPlaceholderToken(m[3]) {
		generated, err := r.gen.NewString()
		if err != nil {
			return cleanText, res, errors.Errorf("generating uuid: %w", err)
		}
		payload, _ = replaceFirstUUIDValue(payload, generated)
		res.GeneratedUUID = true
	}

	payloadBlock := payload
	if payloadBlock != "" && !strings.HasSuffix(payloadBlock, "\n") && !strings.HasSuffix(payloadBlock, "\r") {
		payloadBlock += newline
	}

	return openMarker + newline + payloadBlock + openMarker + newline + block.Body, res, nil
}

// extractUUIDValue returns the trimmed value of the first column-zero uuid
// line, if any
func extractUUIDValue(text string) (string, bool) {
	m := uuidLineRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[3]), true
}

// replaceFirstUUIDValue overwrites the value of the first column-zero uuid
// line in place, preserving the original key/value whitespace and terminator
func replaceFirstUUIDValue(text string, value string) (string, bool) {
	loc := uuidLineRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, false
	}

	keyWS := text[loc[2]:loc[3]]
	postColonWS := text[loc[4]:loc[5]]
	lineEnd := text[loc[8]:loc[9]]

	replacement := "uuid" + keyWS + ":" + postColonWS + value + lineEnd
	return text[:loc[0]] + replacement + text[loc[1]:], true
}

// prependUUIDLine adds a uuid line ahead of the payload
func prependUUIDLine(payload string, value string, newline string) string {
	return "uuid: " + value + newline + payload
}

// isPlaceholderToken reports whether a uuid value is the generation
// placeholder, with one optional layer of matching quotes stripped
func isPlaceholderToken(value string) bool {
	candidate := strings.TrimSpace(value)
	if len(candidate) >= 2 && candidate[0] == candidate[len(candidate)-1] &&
		(candidate[0] == '"' || candidate[0] == '\'') {
		candidate = strings.TrimSpace(candidate[1 : len(candidate)-1])
	}
	return candidate == UUIDPlaceholder
}
