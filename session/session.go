// Package session implements the command engine behind the bytetrie
// shell: text commands executed against a versioned store, with
// documents stored as strings.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openkvlab/bytetrie"
	"github.com/openkvlab/bytetrie/debug"
	"github.com/openkvlab/bytetrie/trie"
)

type Session struct {
	store *bytetrie.Store
}

func New(store *bytetrie.Store) *Session {
	return &Session{store: store}
}

func (s *Session) Store() *bytetrie.Store {
	return s.store
}

// Exec runs one command line and returns its rendered output. Blank
// lines and #-comments produce no output. Errors are returned, not
// rendered; the shell decides how to present them.
func (s *Session) Exec(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil
	}
	if debug.Session() {
		debug.Logf("session: exec %q\n", line)
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "put":
		return s.put(rest)
	case "get":
		return s.get(rest)
	case "del":
		return s.del(rest)
	case "log":
		return s.log()
	case "dump":
		return s.dump(rest)
	case "diff":
		return s.diff(rest)
	case "patch":
		return s.patch(rest)
	case "eval":
		return s.eval(rest)
	case "help":
		return helpText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
}

const helpText = `put <key> <document>      store a document, making a new version
get <key> [@version]      read a document
del <key>                 remove a key, making a new version
log                       list retained versions
dump [@version]           show the tree structure
diff <key> @v1 @v2        compare a document across two versions
patch <key> <rfc6902>     apply a JSON patch to a document
eval <key> <expr>         evaluate an expression against a document
help                      this text`

func (s *Session) put(rest string) (string, error) {
	key, doc, ok := strings.Cut(rest, " ")
	if !ok || key == "" {
		return "", fmt.Errorf("%w: put <key> <document>", ErrUsage)
	}
	v := bytetrie.PutValue(s.store, []byte(key), doc)
	return fmt.Sprintf("v%d", v), nil
}

func (s *Session) get(rest string) (string, error) {
	args := strings.Fields(rest)
	switch len(args) {
	case 1:
		g, ok := bytetrie.GetValue[string](s.store, []byte(args[0]))
		if !ok {
			return "(absent)", nil
		}
		return *g.Value(), nil
	case 2:
		ver, err := parseVersion(args[1])
		if err != nil {
			return "", err
		}
		if _, ok := s.store.At(ver); !ok {
			return "", fmt.Errorf("%w: v%d", ErrNoSuchVersion, ver)
		}
		g, ok := bytetrie.GetValueAt[string](s.store, ver, []byte(args[0]))
		if !ok {
			return "(absent)", nil
		}
		return *g.Value(), nil
	}
	return "", fmt.Errorf("%w: get <key> [@version]", ErrUsage)
}

func (s *Session) del(rest string) (string, error) {
	key := strings.TrimSpace(rest)
	if key == "" || strings.ContainsRune(key, ' ') {
		return "", fmt.Errorf("%w: del <key>", ErrUsage)
	}
	v := s.store.Remove([]byte(key))
	return fmt.Sprintf("v%d", v), nil
}

func (s *Session) log() (string, error) {
	_, cur := s.store.Snapshot()
	var sb strings.Builder
	for _, v := range s.store.Versions() {
		fmt.Fprintf(&sb, "v%d", v)
		if v == cur {
			sb.WriteString(" *")
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (s *Session) dump(rest string) (string, error) {
	args := strings.Fields(rest)
	var snap trie.Trie
	switch len(args) {
	case 0:
		snap, _ = s.store.Snapshot()
	case 1:
		ver, err := parseVersion(args[0])
		if err != nil {
			return "", err
		}
		var ok bool
		snap, ok = s.store.At(ver)
		if !ok {
			return "", fmt.Errorf("%w: v%d", ErrNoSuchVersion, ver)
		}
	default:
		return "", fmt.Errorf("%w: dump [@version]", ErrUsage)
	}
	return strings.TrimRight(trie.DebugString(snap), "\n"), nil
}

// parseVersion accepts "@3" and "@v3".
func parseVersion(arg string) (bytetrie.Version, error) {
	raw, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return 0, fmt.Errorf("%w: version must look like @v3", ErrUsage)
	}
	raw = strings.TrimPrefix(raw, "v")
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad version %q", ErrUsage, arg)
	}
	return bytetrie.Version(n), nil
}

func (s *Session) docAt(key string, ver bytetrie.Version) (string, error) {
	if _, ok := s.store.At(ver); !ok {
		return "", fmt.Errorf("%w: v%d", ErrNoSuchVersion, ver)
	}
	g, ok := bytetrie.GetValueAt[string](s.store, ver, []byte(key))
	if !ok {
		return "", fmt.Errorf("%w: %q at v%d", ErrNoSuchKey, key, ver)
	}
	return *g.Value(), nil
}
