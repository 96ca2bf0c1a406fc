package session

import (
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/openkvlab/bytetrie"
)

// diff renders a character diff of one key's document across two
// versions: equal runs verbatim, insertions as {+...+}, deletions as
// {-...-}.
func (s *Session) diff(rest string) (string, error) {
	args := strings.Fields(rest)
	if len(args) != 3 {
		return "", fmt.Errorf("%w: diff <key> @v1 @v2", ErrUsage)
	}
	key := args[0]
	from, err := parseVersion(args[1])
	if err != nil {
		return "", err
	}
	to, err := parseVersion(args[2])
	if err != nil {
		return "", err
	}
	fromDoc, err := s.docAt(key, from)
	if err != nil {
		return "", err
	}
	toDoc, err := s.docAt(key, to)
	if err != nil {
		return "", err
	}

	dmp := diffpatch.New()
	diffs := dmp.DiffMain(fromDoc, toDoc, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffpatch.DiffInsert:
			fmt.Fprintf(&sb, "{+%s+}", d.Text)
		case diffpatch.DiffDelete:
			fmt.Fprintf(&sb, "{-%s-}", d.Text)
		}
	}
	return sb.String(), nil
}

// patch applies an RFC 6902 JSON patch to the JSON document stored at
// key and stores the result as a new version.
func (s *Session) patch(rest string) (string, error) {
	key, patchSrc, ok := strings.Cut(rest, " ")
	patchSrc = strings.TrimSpace(patchSrc)
	if !ok || key == "" || patchSrc == "" {
		return "", fmt.Errorf("%w: patch <key> <rfc6902-json>", ErrUsage)
	}
	g, found := bytetrie.GetValue[string](s.store, []byte(key))
	if !found {
		return "", fmt.Errorf("%w: %q", ErrNoSuchKey, key)
	}

	p, err := jsonpatch.DecodePatch([]byte(patchSrc))
	if err != nil {
		return "", fmt.Errorf("bad patch: %w", err)
	}
	patched, err := p.Apply([]byte(*g.Value()))
	if err != nil {
		return "", fmt.Errorf("patching %q: %w", key, err)
	}
	v := bytetrie.PutValue(s.store, []byte(key), string(patched))
	return fmt.Sprintf("v%d", v), nil
}

// eval parses the document stored at key as YAML (JSON is a subset),
// binds it as "doc", and evaluates an expression against it.
func (s *Session) eval(rest string) (string, error) {
	key, src, ok := strings.Cut(rest, " ")
	src = strings.TrimSpace(src)
	if !ok || key == "" || src == "" {
		return "", fmt.Errorf("%w: eval <key> <expr>", ErrUsage)
	}
	g, found := bytetrie.GetValue[string](s.store, []byte(key))
	if !found {
		return "", fmt.Errorf("%w: %q", ErrNoSuchKey, key)
	}

	var doc any
	if err := yaml.Unmarshal([]byte(*g.Value()), &doc); err != nil {
		return "", fmt.Errorf("parsing %q: %w", key, err)
	}
	env := map[string]any{"doc": doc}
	prg, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return "", err
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return "", err
	}
	return renderResult(res)
}

func renderResult(res any) (string, error) {
	switch v := res.(type) {
	case nil:
		return "null", nil
	case string:
		return v, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprintf("%v", v), nil
	}
	d, err := yaml.Marshal(res)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(d), "\n"), nil
}
