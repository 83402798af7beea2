package session

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/filedeck/filedeck/internal/events"
	"github.com/filedeck/filedeck/internal/localfs"
)

// recorder collects status messages.
type recorder struct {
	messages []string
}

func (r *recorder) Status(_ events.StatusLevel, message string) {
	r.messages = append(r.messages, message)
}

func (r *recorder) last() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

type fakeOpener struct {
	opened []string
}

func (o *fakeOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return nil
}

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

// countingFS counts every filesystem call made through it.
type countingFS struct {
	localfs.Provider
	calls int
}

func (c *countingFS) List(dir string, opts localfs.ListOptions) ([]localfs.Entry, error) {
	c.calls++
	return c.Provider.List(dir, opts)
}
func (c *countingFS) Stat(path string) (localfs.Entry, error) {
	c.calls++
	return c.Provider.Stat(path)
}
func (c *countingFS) Probe(dir string) error          { c.calls++; return c.Provider.Probe(dir) }
func (c *countingFS) CreateDir(path string) error     { c.calls++; return c.Provider.CreateDir(path) }
func (c *countingFS) CreateEmptyFile(p string) error  { c.calls++; return c.Provider.CreateEmptyFile(p) }
func (c *countingFS) Rename(src, dst string) error    { c.calls++; return c.Provider.Rename(src, dst) }
func (c *countingFS) Move(src, dst string) error      { c.calls++; return c.Provider.Move(src, dst) }
func (c *countingFS) RemoveFile(path string) error    { c.calls++; return c.Provider.RemoveFile(path) }
func (c *countingFS) RemoveTree(path string) error    { c.calls++; return c.Provider.RemoveTree(path) }
func (c *countingFS) CopyFile(src, dst string) error  { c.calls++; return c.Provider.CopyFile(src, dst) }
func (c *countingFS) CopyTree(src, dst string) error  { c.calls++; return c.Provider.CopyTree(src, dst) }

type fixture struct {
	s      *Session
	dir    string
	status *recorder
	opener *fakeOpener
	clip   *fakeClipboard
	fs     *countingFS
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:    dir,
		status: &recorder{},
		opener: &fakeOpener{},
		clip:   &fakeClipboard{},
		fs:     &countingFS{Provider: localfs.NewOS()},
	}
	s, err := New(Options{
		Provider:  f.fs,
		Opener:    f.opener,
		Clipboard: f.clip,
		Reporter:  f.status,
		StartDir:  dir,
		Home:      dir,
		SortBy:    localfs.SortByName,
		Ascending: true,
		Shortcuts: []Shortcut{{Name: "Documents", Path: filepath.Join(dir, "Documents")}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.s = s
	return f
}

func (f *fixture) mkdir(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.MkdirAll(filepath.Join(f.dir, n), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func (f *fixture) write(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(f.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func (f *fixture) exists(name string) bool {
	_, err := os.Lstat(filepath.Join(f.dir, name))
	return err == nil
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

func names(entries []localfs.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewStartsWithSingleHistoryEntry(t *testing.T) {
	f := newFixture(t)
	entries, cursor := f.s.History()
	if !equal(entries, []string{f.dir}) || cursor != 0 {
		t.Errorf("History() = %v, %d", entries, cursor)
	}
	if f.s.CanGoBack() || f.s.CanGoForward() {
		t.Error("fresh session should not move in history")
	}
}

func TestNewRejectsMissingStartDir(t *testing.T) {
	_, err := New(Options{StartDir: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, localfs.ErrNotFound) {
		t.Errorf("New() error = %v, want ErrNotFound", err)
	}
}

func TestHistoryBranchTruncation(t *testing.T) {
	f := newFixture(t)
	f.mkdir(t, "B", "C", "D", "E")
	for _, d := range []string{"B", "C", "D"} {
		if err := f.s.Navigate(f.path(d), true); err != nil {
			t.Fatalf("Navigate(%s): %v", d, err)
		}
	}

	_ = f.s.GoBack()
	_ = f.s.GoBack()
	if got := f.s.CurrentPath(); got != f.path("B") {
		t.Fatalf("after two GoBack current = %s", got)
	}

	if err := f.s.Navigate(f.path("E"), true); err != nil {
		t.Fatal(err)
	}
	entries, cursor := f.s.History()
	want := []string{f.dir, f.path("B"), f.path("E")}
	if !equal(entries, want) || cursor != 0 {
		t.Errorf("History() = %v, %d; want %v, 0", entries, cursor, want)
	}
}

func TestBackThenForwardReturnsToNewest(t *testing.T) {
	f := newFixture(t)
	f.mkdir(t, "a", "a/b", "a/b/c")
	for _, d := range []string{"a", "a/b", "a/b/c"} {
		_ = f.s.Navigate(f.path(d), true)
	}
	newest := f.s.CurrentPath()

	for f.s.CanGoBack() {
		_ = f.s.GoBack()
	}
	if f.s.CurrentPath() != f.dir {
		t.Fatalf("oldest = %s, want %s", f.s.CurrentPath(), f.dir)
	}
	for f.s.CanGoForward() {
		_ = f.s.GoForward()
	}
	if f.s.CurrentPath() != newest {
		t.Errorf("newest = %s, want %s", f.s.CurrentPath(), newest)
	}
}

func TestBackForwardNoOpAtEnds(t *testing.T) {
	f := newFixture(t)
	before, _ := f.s.History()

	if err := f.s.GoBack(); err != nil {
		t.Fatal(err)
	}
	if err := f.s.GoForward(); err != nil {
		t.Fatal(err)
	}
	after, cursor := f.s.History()
	if !equal(before, after) || cursor != 0 || f.s.CurrentPath() != f.dir {
		t.Errorf("state changed: %v %d %s", after, cursor, f.s.CurrentPath())
	}
}

func TestNavigateSamePathNotRecorded(t *testing.T) {
	f := newFixture(t)
	_ = f.s.Navigate(f.dir, true)
	_ = f.s.Navigate(".", true)
	if entries, _ := f.s.History(); len(entries) != 1 {
		t.Errorf("History() = %v, want single entry", entries)
	}
}

func TestNavigateMissingPath(t *testing.T) {
	f := newFixture(t)
	err := f.s.Navigate(f.path("nope"), true)
	if !errors.Is(err, localfs.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if f.status.last() != MsgInvalidPath {
		t.Errorf("status = %q", f.status.last())
	}
	if f.s.CurrentPath() != f.dir {
		t.Error("current path changed")
	}
}

func TestNavigateFileOpensIt(t *testing.T) {
	f := newFixture(t)
	f.write(t, "notes.txt", "hi")

	if err := f.s.Navigate("notes.txt", true); err != nil {
		t.Fatal(err)
	}
	if len(f.opener.opened) != 1 || f.opener.opened[0] != f.path("notes.txt") {
		t.Errorf("opened = %v", f.opener.opened)
	}
	if entries, _ := f.s.History(); len(entries) != 1 || f.s.CurrentPath() != f.dir {
		t.Error("opening a file must not navigate")
	}
}

func TestNavigateRelativeAndHome(t *testing.T) {
	f := newFixture(t)
	f.mkdir(t, "sub/inner")

	if err := f.s.Navigate("sub", true); err != nil {
		t.Fatal(err)
	}
	if err := f.s.Navigate("~/sub/inner", true); err != nil {
		t.Fatal(err)
	}
	if f.s.CurrentPath() != f.path("sub/inner") {
		t.Errorf("current = %s", f.s.CurrentPath())
	}

	if err := f.s.GoUp(); err != nil {
		t.Fatal(err)
	}
	if f.s.CurrentPath() != f.path("sub") {
		t.Errorf("after GoUp current = %s", f.s.CurrentPath())
	}

	if err := f.s.GoHome(); err != nil {
		t.Fatal(err)
	}
	if f.s.CurrentPath() != f.dir {
		t.Errorf("after GoHome current = %s", f.s.CurrentPath())
	}
}

func TestGoShortcut(t *testing.T) {
	f := newFixture(t)
	f.mkdir(t, "Documents")

	if err := f.s.GoShortcut("documents"); err != nil {
		t.Fatal(err)
	}
	if f.s.CurrentPath() != f.path("Documents") {
		t.Errorf("current = %s", f.s.CurrentPath())
	}
	if err := f.s.GoShortcut("Music"); !errors.Is(err, ErrUnknownShortcut) {
		t.Errorf("unknown shortcut error = %v", err)
	}
}

func TestGoBackToRemovedDirectory(t *testing.T) {
	f := newFixture(t)
	f.mkdir(t, "gone", "here")
	_ = f.s.Navigate(f.path("gone"), true)
	_ = f.s.Navigate(f.path("here"), true)
	if err := os.Remove(f.path("gone")); err != nil {
		t.Fatal(err)
	}

	if err := f.s.GoBack(); err == nil {
		t.Fatal("expected error replaying removed directory")
	}
	if f.status.last() != MsgInvalidPath {
		t.Errorf("status = %q", f.status.last())
	}
	if f.s.CurrentPath() != f.path("here") {
		t.Errorf("current = %s", f.s.CurrentPath())
	}
	if _, cursor := f.s.History(); cursor != -1 {
		t.Errorf("cursor = %d, want -1", cursor)
	}
}

func TestNavigateAccessDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	f := newFixture(t)
	f.mkdir(t, "locked")
	if err := os.Chmod(f.path("locked"), 0o000); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(f.path("locked"), 0o755)

	err := f.s.Navigate("locked", true)
	if !errors.Is(err, localfs.ErrPermissionDenied) {
		t.Errorf("error = %v, want ErrPermissionDenied", err)
	}
	if f.status.last() != MsgAccessDenied {
		t.Errorf("status = %q", f.status.last())
	}
	if f.s.CurrentPath() != f.dir {
		t.Error("current path changed")
	}
}

func TestEntriesFilterHiddenAndSort(t *testing.T) {
	f := newFixture(t)
	f.write(t, "file10.txt", "")
	f.write(t, "file2.txt", "")
	f.write(t, ".secret", "")
	f.mkdir(t, "Zdir")
	f.s.Refresh()

	if got := names(f.s.Entries()); !equal(got, []string{"file2.txt", "file10.txt", "Zdir"}) {
		t.Errorf("Entries() = %v", got)
	}

	f.s.SetShowHidden(true)
	if got := len(f.s.Entries()); got != 4 {
		t.Errorf("with hidden got %d entries, want 4", got)
	}
	f.s.SetShowHidden(false)

	f.s.SetFilter("FILE")
	if got := names(f.s.Entries()); !equal(got, []string{"file2.txt", "file10.txt"}) {
		t.Errorf("filtered Entries() = %v", got)
	}
	f.s.SetFilter("")

	f.s.SetSort(localfs.SortByType, false)
	if got := f.s.Entries()[0].Name; got != "file2.txt" && got != "file10.txt" {
		t.Errorf("type-descending first entry = %s", got)
	}
	if col, asc := f.s.Sort(); col != localfs.SortByType || asc {
		t.Errorf("Sort() = %v, %v", col, asc)
	}
}

func TestFolderTree(t *testing.T) {
	f := newFixture(t)
	f.mkdir(t, "b", "a", ".git")
	f.write(t, "file.txt", "")

	dirs, err := f.s.FolderTree(f.dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := names(dirs); !equal(got, []string{"a", "b"}) {
		t.Errorf("FolderTree() = %v", got)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNothingSelected, MsgNothingSelected},
		{ErrIllegalPrefix, MsgIllegalPrefix},
		{ErrNoSuitableFiles, MsgNoSuitableFiles},
		{&CollisionError{Name: "a.txt"}, "File a.txt already exists!"},
		{localfs.ErrAlreadyExists, MsgAlreadyExists},
		{localfs.ErrSameSource, MsgSameSource},
		{errors.New("other"), MsgFailed},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
