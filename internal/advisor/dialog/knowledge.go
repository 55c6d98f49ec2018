package dialog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
	errx "github.com/petrolito-ai/advisor/internal/core/error"
	logx "github.com/petrolito-ai/advisor/pkg/logger"
)

//go:embed knowledge.yaml
var defaultKnowledge []byte

// ParameterSpec describes one learnable parameter and its extraction pattern.
// Pattern has exactly one capture group holding the number.
type ParameterSpec struct {
	Name    model.ParamName
	Label   string
	Unit    string
	Default float64
	Pattern *regexp.Regexp
}

// Template is a non-entry response (clarification or fallback).
type Template struct {
	Title   string
	Body    string
	KeyFact string
	Footer  string
}

// KnowledgeBase is the validated, immutable configuration of the advisor.
type KnowledgeBase struct {
	order         []model.Topic
	labels        map[model.Topic]string
	keywords      map[model.Topic][]string
	continuation  []string
	entries       map[model.EntryKey]model.KnowledgeEntry
	params        []ParameterSpec
	footerMore    string
	footerMax     string
	clarification Template
	fallback      Template
}

// ---- file format ----

type knowledgeFile struct {
	Topics        []topicFile     `yaml:"topics"`
	Continuation  []string        `yaml:"continuation"`
	Parameters    []parameterFile `yaml:"parameters"`
	Footers       footersFile     `yaml:"footers"`
	Clarification templateFile    `yaml:"clarification"`
	Fallback      templateFile    `yaml:"fallback"`
}

type topicFile struct {
	ID       string      `yaml:"id"`
	Label    string      `yaml:"label"`
	Keywords []string    `yaml:"keywords"`
	Entries  []entryFile `yaml:"entries"`
}

type entryFile struct {
	Depth      *int   `yaml:"depth"`
	Title      string `yaml:"title"`
	Body       string `yaml:"body"`
	KeyFact    string `yaml:"key_fact"`
	Attachment string `yaml:"attachment"`
}

type parameterFile struct {
	Name    string   `yaml:"name"`
	Label   string   `yaml:"label"`
	Unit    string   `yaml:"unit"`
	Default *float64 `yaml:"default"`
	Pattern string   `yaml:"pattern"`
}

type footersFile struct {
	More string `yaml:"more"`
	Max  string `yaml:"max"`
}

type templateFile struct {
	Title   string `yaml:"title"`
	Body    string `yaml:"body"`
	KeyFact string `yaml:"key_fact"`
	Footer  string `yaml:"footer"`
}

// Load returns the table from cfg.File, or the embedded default when unset.
func Load(cfg model.KnowledgeConfig) (*KnowledgeBase, error) {
	if cfg.File == "" {
		return LoadDefault()
	}
	return LoadFile(cfg.File)
}

// LoadDefault parses the embedded knowledge table.
func LoadDefault() (*KnowledgeBase, error) {
	return Parse(defaultKnowledge)
}

func LoadFile(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a knowledge table. Every problem found is
// reported; the returned error matches errx.ErrInvalidKnowledge.
func Parse(data []byte) (*KnowledgeBase, error) {
	var f knowledgeFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errx.Config(fmt.Errorf("decode yaml: %w", err))
	}

	kb, problems := build(&f)
	if len(problems) > 0 {
		err := errx.Config(problems...)
		logx.Error().Str("component", "knowledge").Int("problems", len(problems)).Err(err).Msg("knowledge table rejected")
		return nil, err
	}

	logx.Debug().
		Str("component", "knowledge").
		Int("topics", len(kb.order)).
		Int("entries", len(kb.entries)).
		Int("parameters", len(kb.params)).
		Msg("knowledge table loaded")
	return kb, nil
}

func build(f *knowledgeFile) (*KnowledgeBase, []error) {
	var problems []error
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	kb := &KnowledgeBase{
		labels:   make(map[model.Topic]string),
		keywords: make(map[model.Topic][]string),
		entries:  make(map[model.EntryKey]model.KnowledgeEntry),
	}

	for i, tf := range f.Topics {
		topic, ok := model.ParseTopic(tf.ID)
		if !ok {
			addf("topics[%d]: unknown topic %q", i, tf.ID)
			continue
		}
		if _, dup := kb.labels[topic]; dup {
			addf("topics[%d]: duplicate topic %q", i, tf.ID)
			continue
		}
		label := strings.TrimSpace(tf.Label)
		if label == "" {
			label = topic.String()
		}
		kb.order = append(kb.order, topic)
		kb.labels[topic] = label

		for _, kw := range tf.Keywords {
			if kw = fold(strings.TrimSpace(kw)); kw != "" {
				kb.keywords[topic] = append(kb.keywords[topic], kw)
			}
		}
		if len(kb.keywords[topic]) == 0 {
			addf("topic %s: no keywords", topic)
		}

		for j, ef := range tf.Entries {
			if ef.Depth == nil || *ef.Depth < 0 || *ef.Depth > model.MaxDepth {
				addf("topic %s: entries[%d]: depth must be 0..%d", topic, j, model.MaxDepth)
				continue
			}
			key := model.EntryKey{Topic: topic, Depth: *ef.Depth}
			if _, dup := kb.entries[key]; dup {
				addf("entry %s: duplicate", key)
				continue
			}
			entry := model.KnowledgeEntry{
				Title:      strings.TrimSpace(ef.Title),
				Body:       strings.TrimSpace(ef.Body),
				KeyFact:    strings.TrimSpace(ef.KeyFact),
				Attachment: model.AttachmentKind(ef.Attachment),
			}
			if entry.Attachment == "" {
				entry.Attachment = model.AttachNone
			}
			if entry.Title == "" || entry.Body == "" || entry.KeyFact == "" {
				addf("entry %s: title, body and key_fact are required", key)
			}
			if !entry.Attachment.Valid() {
				addf("entry %s: unknown attachment %q", key, ef.Attachment)
			}
			kb.entries[key] = entry
		}
	}

	// every topic of the enum needs exactly the three depth entries
	for _, topic := range model.Topics() {
		if _, ok := kb.labels[topic]; !ok {
			addf("topic %s: missing", topic)
			continue
		}
		for d := 0; d <= model.MaxDepth; d++ {
			if _, ok := kb.entries[model.EntryKey{Topic: topic, Depth: d}]; !ok {
				addf("entry %s/%d: missing", topic, d)
			}
		}
	}

	for _, w := range f.Continuation {
		if w = fold(strings.TrimSpace(w)); w != "" {
			kb.continuation = append(kb.continuation, w)
		}
	}
	if len(kb.continuation) == 0 {
		addf("continuation: at least one word is required")
	}

	seen := make(map[model.ParamName]bool)
	for i, pf := range f.Parameters {
		name := model.ParamName(strings.TrimSpace(pf.Name))
		if !name.Known() {
			addf("parameters[%d]: unknown parameter %q", i, pf.Name)
			continue
		}
		if seen[name] {
			addf("parameter %s: duplicate", name)
			continue
		}
		seen[name] = true
		if pf.Default == nil {
			addf("parameter %s: default is required", name)
			continue
		}
		re, err := regexp.Compile(pf.Pattern)
		if err != nil {
			addf("parameter %s: malformed pattern: %w", name, err)
			continue
		}
		if re.NumSubexp() != 1 {
			addf("parameter %s: pattern must have exactly one capture group, has %d", name, re.NumSubexp())
			continue
		}
		kb.params = append(kb.params, ParameterSpec{
			Name:    name,
			Label:   pf.Label,
			Unit:    pf.Unit,
			Default: *pf.Default,
			Pattern: re,
		})
	}
	for _, name := range model.ParamNames() {
		if !seen[name] {
			addf("parameter %s: missing", name)
		}
	}

	kb.footerMore = strings.TrimSpace(f.Footers.More)
	kb.footerMax = strings.TrimSpace(f.Footers.Max)
	if kb.footerMore == "" || kb.footerMax == "" {
		addf("footers: more and max are required")
	}

	kb.clarification = toTemplate(f.Clarification)
	kb.fallback = toTemplate(f.Fallback)
	if kb.clarification.Title == "" || kb.clarification.Body == "" {
		addf("clarification: title and body are required")
	}
	if kb.fallback.Title == "" || kb.fallback.Body == "" {
		addf("fallback: title and body are required")
	}

	return kb, problems
}

func toTemplate(t templateFile) Template {
	return Template{
		Title:   strings.TrimSpace(t.Title),
		Body:    strings.TrimSpace(t.Body),
		KeyFact: strings.TrimSpace(t.KeyFact),
		Footer:  strings.TrimSpace(t.Footer),
	}
}

// Order returns topics in matching priority order.
func (kb *KnowledgeBase) Order() []model.Topic {
	return append([]model.Topic(nil), kb.order...)
}

func (kb *KnowledgeBase) Label(t model.Topic) string {
	if l, ok := kb.labels[t]; ok {
		return l
	}
	return t.String()
}

// Labels returns topic labels in priority order.
func (kb *KnowledgeBase) Labels() []string {
	out := make([]string, len(kb.order))
	for i, t := range kb.order {
		out[i] = kb.labels[t]
	}
	return out
}

// Entry returns the knowledge entry for (topic, depth). The table is
// validated at load, so a miss is a programming error and panics.
func (kb *KnowledgeBase) Entry(topic model.Topic, depth int) model.KnowledgeEntry {
	key := model.EntryKey{Topic: topic, Depth: depth}
	e, ok := kb.entries[key]
	if !ok {
		panic(fmt.Sprintf("dialog: knowledge entry %s missing", key))
	}
	return e
}

// Parameters returns parameter specs in extraction priority order.
func (kb *KnowledgeBase) Parameters() []ParameterSpec {
	return append([]ParameterSpec(nil), kb.params...)
}

// Defaults returns a fresh map of parameter defaults.
func (kb *KnowledgeBase) Defaults() map[model.ParamName]float64 {
	out := make(map[model.ParamName]float64, len(kb.params))
	for _, p := range kb.params {
		out[p.Name] = p.Default
	}
	return out
}
