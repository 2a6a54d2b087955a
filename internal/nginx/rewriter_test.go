package nginx_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/upswitch/internal/nginx"
)

func scanOne(t *testing.T, dir string) *nginx.ConfigFile {
	t.Helper()
	files, err := nginx.NewScanner(dir, nil).Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)
	return files[0]
}

func TestSetTargetRewritesOnlyMatchedSpan(t *testing.T) {
	t.Parallel()

	// The comment repeats the upstream address; a blind substring replace
	// would corrupt it.
	conf := "# primary upstream is 10.0.0.1 (router)\n" +
		"proxy_pass https://10.0.0.1:8443;\n" +
		"# fallback note: 10.0.0.1\n"

	dir := t.TempDir()
	writeSite(t, dir, "app.conf", conf)
	file := scanOne(t, dir)

	require.True(t, file.SetTarget(0, "10.0.0.5"))
	got := string(file.Content)
	assert.Contains(t, got, "proxy_pass https://10.0.0.5:8443;")
	assert.Contains(t, got, "# primary upstream is 10.0.0.1 (router)")
	assert.Contains(t, got, "# fallback note: 10.0.0.1")
	assert.True(t, file.Changed())
}

func TestSetTargetNoOpWhenAlreadyCurrent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSite(t, dir, "app.conf", siteConf)
	file := scanOne(t, dir)
	before := string(file.Content)

	assert.False(t, file.SetTarget(0, "10.0.0.1"))
	assert.Equal(t, before, string(file.Content), "no-op rewrite must leave content byte-identical")
	assert.False(t, file.Changed())
}

func TestSetTargetShiftsLaterRuleSpans(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSite(t, dir, "app.conf", siteConf)
	file := scanOne(t, dir)

	// New host is longer than the old one; the second rule's span shifts.
	require.True(t, file.SetTarget(0, "192.168.100.250"))
	require.True(t, file.SetTarget(1, "192.168.100.250"))

	got := string(file.Content)
	assert.Contains(t, got, "proxy_pass https://192.168.100.250:8443;")
	assert.Contains(t, got, "proxy_pass http://192.168.100.250;")
	assert.NotContains(t, got, "10.0.0.1")
}

func TestSetTargetWithEmbeddedPort(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSite(t, dir, "app.conf", "proxy_pass https://10.0.0.1:8443;\n")
	file := scanOne(t, dir)

	// A target carrying its own port replaces the rule's port too, and the
	// host span must never be bracketed as if it were IPv6.
	require.True(t, file.SetTarget(0, "10.0.0.5:9000"))
	assert.Equal(t, "proxy_pass https://10.0.0.5:9000;\n", string(file.Content))

	rule := file.Rules[0]
	assert.Equal(t, "10.0.0.5", rule.Address)
	assert.Equal(t, ":9000", rule.Port)

	assert.False(t, file.SetTarget(0, "10.0.0.5:9000"), "same host:port is a no-op")
}

func TestSetTargetAddsPortToPortlessRule(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSite(t, dir, "app.conf", "proxy_pass http://10.0.0.1;\nproxy_pass http://10.0.0.1;\n")
	file := scanOne(t, dir)

	require.True(t, file.SetTarget(0, "10.0.0.5:9000"))
	require.True(t, file.SetTarget(1, "10.0.0.5:9000"))
	assert.Equal(t, "proxy_pass http://10.0.0.5:9000;\nproxy_pass http://10.0.0.5:9000;\n",
		string(file.Content))
}

func TestSetTargetIPv6WithEmbeddedPort(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSite(t, dir, "app.conf", "proxy_pass http://10.0.0.1:9000;\n")
	file := scanOne(t, dir)

	require.True(t, file.SetTarget(0, "[fd00::5]:8443"))
	assert.Equal(t, "proxy_pass http://[fd00::5]:8443;\n", string(file.Content))
}

func TestSetTargetBracketsIPv6Host(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSite(t, dir, "app.conf", "proxy_pass http://10.0.0.1:9000;\n")
	file := scanOne(t, dir)

	require.True(t, file.SetTarget(0, "fd00::5"))
	assert.Contains(t, string(file.Content), "proxy_pass http://[fd00::5]:9000;")
}

func TestRewriterWriteKeepsBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSite(t, dir, "app.conf", siteConf)
	file := scanOne(t, dir)
	require.True(t, file.SetTarget(0, "10.0.0.5"))

	require.NoError(t, nginx.NewRewriter(true, nil).Write(file))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(written), "proxy_pass https://10.0.0.5:8443;")

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, siteConf, string(backup))
}

func TestRewriterWriteWithoutBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSite(t, dir, "app.conf", siteConf)
	file := scanOne(t, dir)
	require.True(t, file.SetTarget(0, "10.0.0.5"))

	require.NoError(t, nginx.NewRewriter(false, nil).Write(file))

	_, err := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestRewriterSkipsUnchangedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSite(t, dir, "app.conf", siteConf)
	info, err := os.Stat(path)
	require.NoError(t, err)
	before := info.ModTime()

	file := scanOne(t, dir)
	require.NoError(t, nginx.NewRewriter(true, nil).Write(file))

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before, info.ModTime(), "unchanged file must not be rewritten")
}

func TestRoundTripPreservesEveryByte(t *testing.T) {
	t.Parallel()

	conf := strings.ReplaceAll(siteConf, "\n", "\r\n") // odd line endings survive too
	dir := t.TempDir()
	writeSite(t, dir, "app.conf", conf)
	file := scanOne(t, dir)

	require.True(t, file.SetTarget(0, "10.0.0.5"))
	require.True(t, file.SetTarget(0, "10.0.0.1"))
	assert.Equal(t, conf, string(file.Content))
}
