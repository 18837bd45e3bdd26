// Package dictionary provides the remote definition service client and its
// response types.
package dictionary

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Definition is a single dictionary entry returned by the remote service.
// It is immutable once received.
type Definition struct {
	ID                  ResultID `json:"id,omitempty" yaml:"id,omitempty"`
	Word                string   `json:"word" yaml:"word"`
	Pronunciation       string   `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
	PartOfSpeech        string   `json:"partOfSpeech,omitempty" yaml:"part_of_speech,omitempty"`
	DefinitionPrimary   string   `json:"definition_en" yaml:"definition_en"`
	DefinitionSecondary string   `json:"definition_hi,omitempty" yaml:"definition_hi,omitempty"`
	Examples            []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	Synonyms            []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	Antonyms            []string `json:"antonyms,omitempty" yaml:"antonyms,omitempty"`
}

// ResultID is the service-assigned identifier of an entry.
type ResultID string

func (id *ResultID) UnmarshalJSON(data []byte) error {
	// the id can be either a number or a string
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		*id = ResultID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	*id = ResultID(n.String())
	return nil
}

func (id ResultID) String() string {
	return string(id)
}

// ParseLocale reports whether code looks like a BCP 47-ish language code
// such as "en" or "en-US".
func ParseLocale(code string) bool {
	parts := strings.SplitN(code, "-", 2)
	if len(parts[0]) < 2 || len(parts[0]) > 3 {
		return false
	}
	for _, r := range parts[0] {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	if len(parts) == 2 {
		if len(parts[1]) != 2 {
			return false
		}
		for _, r := range parts[1] {
			if r < 'A' || r > 'Z' {
				return false
			}
		}
	}
	return true
}

type searchResponse struct {
	Results []Definition `json:"results"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Summary returns a one-line rendering of the definition, used by one-shot
// command output.
func (d Definition) Summary(index int) string {
	var builder strings.Builder
	builder.WriteString(strconv.Itoa(index + 1))
	builder.WriteString(": ")
	builder.WriteString(d.Word)
	if d.Pronunciation != "" {
		builder.WriteString(" /" + d.Pronunciation + "/")
	}
	if d.PartOfSpeech != "" {
		builder.WriteString(" [" + d.PartOfSpeech + "]")
	}
	builder.WriteString("\t" + d.DefinitionPrimary)
	return builder.String()
}
