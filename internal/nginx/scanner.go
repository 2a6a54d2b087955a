package nginx

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// proxyPassRe matches a proxy_pass directive and captures, in order, the
// directive prefix up to the scheme separator, the upstream host (IPv4,
// hostname, or bracketed IPv6), and an optional :port suffix. Only the host
// group is ever rewritten.
var proxyPassRe = regexp.MustCompile(
	`(proxy_pass\s+https?://)(\[[0-9A-Fa-f:.]+\]|[0-9A-Za-z._-]+)(:\d+)?`)

// backupSuffix marks pre-rewrite copies written next to the originals.
// Files carrying it are never scanned.
const backupSuffix = ".bak"

// Rule is one proxy_pass directive inside a ConfigFile. The host span
// indexes into the file content as scanned; ConfigFile keeps spans in sync
// across rewrites.
type Rule struct {
	File    string // path of the containing file
	Scheme  string // http or https
	Address string // upstream host as written, brackets stripped for IPv6
	Port    string // ":8443" or "" when the directive has no port

	hostStart int
	hostEnd   int
}

// Target returns the full target as written, e.g. "https://10.0.0.5:8443".
func (r Rule) Target() string {
	host := r.Address
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return r.Scheme + "://" + host + r.Port
}

// ConfigFile is one scanned site file with its extracted rules.
type ConfigFile struct {
	Path    string
	Mode    fs.FileMode
	Content []byte
	Rules   []Rule

	original []byte
	changed  bool
}

// Changed reports whether any rule target was rewritten since scanning.
func (f *ConfigFile) Changed() bool {
	return f.changed
}

// Scanner enumerates site files in a directory and extracts their
// proxy_pass rules.
type Scanner struct {
	dir    string
	logger *zerolog.Logger
}

// NewScanner creates a Scanner over dir.
func NewScanner(dir string, logger *zerolog.Logger) *Scanner {
	return &Scanner{dir: dir, logger: logger}
}

// Scan reads every regular file in the directory and returns the ones that
// contain at least one proxy_pass directive. Backup files are skipped.
// Unreadable files are logged and skipped; only an unreadable directory is
// an error.
func (s *Scanner) Scan() ([]*ConfigFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read conf dir %s: %w", s.dir, err)
	}

	var files []*ConfigFile
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), backupSuffix) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			s.warn(path, err, "stat site file")
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			s.warn(path, err, "read site file")
			continue
		}

		rules := extractRules(path, content)
		if len(rules) == 0 {
			continue
		}

		files = append(files, &ConfigFile{
			Path:     path,
			Mode:     info.Mode().Perm(),
			Content:  content,
			Rules:    rules,
			original: append([]byte(nil), content...),
		})
	}
	return files, nil
}

func (s *Scanner) warn(path string, err error, msg string) {
	if s.logger != nil {
		s.logger.Warn().Str("file", path).Err(err).Msg(msg)
	}
}

// extractRules finds every proxy_pass directive in content and records the
// byte span of each upstream host. Unix-socket upstreams
// (proxy_pass http://unix:/path) are not network targets and are skipped.
func extractRules(path string, content []byte) []Rule {
	matches := proxyPassRe.FindAllSubmatchIndex(content, -1)
	return lo.FilterMap(matches, func(m []int, _ int) (Rule, bool) {
		prefix := string(content[m[2]:m[3]])
		host := string(content[m[4]:m[5]])
		if host == "unix" && m[5] < len(content) && content[m[5]] == ':' {
			return Rule{}, false
		}
		port := ""
		if m[6] >= 0 {
			port = string(content[m[6]:m[7]])
		}

		scheme := "http"
		if strings.Contains(prefix, "https://") {
			scheme = "https"
		}
		return Rule{
			File:      path,
			Scheme:    scheme,
			Address:   strings.Trim(host, "[]"),
			Port:      port,
			hostStart: m[4],
			hostEnd:   m[5],
		}, true
	})
}
