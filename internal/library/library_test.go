package library

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := New(t.TempDir())
	assert.NilError(t, err)
	return lib
}

func mustCreateBook(t *testing.T, lib *Library, name string) string {
	t.Helper()
	clean, err := lib.CreateBook(name)
	assert.NilError(t, err)
	return clean
}

func mustOpenBook(t *testing.T, lib *Library, name string) {
	t.Helper()
	_, err := lib.OpenBook(name)
	assert.NilError(t, err)
}

func mustCreateChapter(t *testing.T, lib *Library, name string) string {
	t.Helper()
	clean, err := lib.CreateChapter(name)
	assert.NilError(t, err)
	return clean
}

func TestCreateBook(t *testing.T) {
	lib := newTestLibrary(t)
	name, err := lib.CreateBook("  My Novel! ")
	assert.NilError(t, err)
	assert.Equal(t, name, "My Novel")

	info, err := os.Stat(filepath.Join(lib.Root(), "My Novel"))
	assert.NilError(t, err)
	assert.Assert(t, info.IsDir())

	_, err = os.Stat(filepath.Join(lib.Root(), "My Novel", orderFile))
	assert.NilError(t, err)
}

func TestCreateBookDuplicate(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "draft")
	_, err := lib.CreateBook("draft")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateBookInvalidName(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.CreateBook("!!!")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestListBooksRecencyFirst(t *testing.T) {
	lib := newTestLibrary(t)
	for _, n := range []string{"zebra", "apple", "mango"} {
		mustCreateBook(t, lib, n)
	}
	mustOpenBook(t, lib, "apple")

	books, err := lib.ListBooks()
	assert.NilError(t, err)
	assert.DeepEqual(t, books, []string{"apple", "mango", "zebra"})
}

func TestListBooksUnknownAfterRecent(t *testing.T) {
	lib := newTestLibrary(t)
	// directories created outside the app have no recency entries
	for _, n := range []string{"zeta", "alpha"} {
		assert.NilError(t, os.Mkdir(filepath.Join(lib.Root(), n), 0o755))
	}
	mustCreateBook(t, lib, "opened")

	books, err := lib.ListBooks()
	assert.NilError(t, err)
	assert.DeepEqual(t, books, []string{"opened", "alpha", "zeta"})
}

func TestListBooksSkipsHidden(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "visible")
	books, err := lib.ListBooks()
	assert.NilError(t, err)
	assert.DeepEqual(t, books, []string{"visible"})
}

func TestRenameBookKeepsRecency(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "old")
	mustCreateBook(t, lib, "newer")

	name, err := lib.RenameBook("old", "fresh")
	assert.NilError(t, err)
	assert.Equal(t, name, "fresh")
	assert.DeepEqual(t, lib.readRecents(), []string{"newer", "fresh"})

	_, err = os.Stat(filepath.Join(lib.Root(), "fresh"))
	assert.NilError(t, err)
}

func TestRenameBookFollowsCurrent(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "draft")
	mustOpenBook(t, lib, "draft")

	_, err := lib.RenameBook("draft", "final")
	assert.NilError(t, err)
	assert.Equal(t, lib.Current(), "final")
}

func TestRenameBookMissing(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.RenameBook("ghost", "real")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameBookCollision(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "one")
	mustCreateBook(t, lib, "two")
	_, err := lib.RenameBook("one", "two")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestDeleteBook(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "doomed")
	mustOpenBook(t, lib, "doomed")

	assert.NilError(t, lib.DeleteBook("doomed"))
	assert.Equal(t, lib.Current(), "")
	_, err := os.Stat(filepath.Join(lib.Root(), "doomed"))
	assert.Assert(t, os.IsNotExist(err))
	assert.Equal(t, len(lib.readRecents()), 0)
}

func TestDeleteBookMissing(t *testing.T) {
	lib := newTestLibrary(t)
	assert.ErrorIs(t, lib.DeleteBook("ghost"), ErrNotFound)
}

func TestOpenBookMissing(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.OpenBook("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMostRecentSkipsDeleted(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "older")
	mustCreateBook(t, lib, "newest")
	// removed outside the app, so the history entry went stale
	assert.NilError(t, os.RemoveAll(filepath.Join(lib.Root(), "newest")))

	name, ok := lib.MostRecent()
	assert.Assert(t, ok)
	assert.Equal(t, name, "older")
}

func TestMostRecentEmpty(t *testing.T) {
	lib := newTestLibrary(t)
	_, ok := lib.MostRecent()
	assert.Assert(t, !ok)
}

func TestCreateChapter(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")

	name, err := lib.CreateChapter("chapter one")
	assert.NilError(t, err)
	assert.Equal(t, name, "chapter one.md")

	content, err := lib.ReadChapter("chapter one.md")
	assert.NilError(t, err)
	assert.Equal(t, content, "")

	chapters, err := lib.Chapters()
	assert.NilError(t, err)
	assert.DeepEqual(t, chapters, []string{"chapter one.md"})
}

func TestCreateChapterNoBookOpen(t *testing.T) {
	lib := newTestLibrary(t)
	_, err := lib.CreateChapter("intro")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateChapterDuplicate(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	mustCreateChapter(t, lib, "intro")

	_, err := lib.CreateChapter("intro")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	// the extension is normalized before the collision check
	_, err = lib.CreateChapter("intro.md")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestChaptersKeepCreationOrder(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	for _, n := range []string{"zule", "alpha", "mid"} {
		mustCreateChapter(t, lib, n)
	}

	chapters, err := lib.Chapters()
	assert.NilError(t, err)
	assert.DeepEqual(t, chapters, []string{"zule.md", "alpha.md", "mid.md"})
}

func TestChaptersMergeExternalFiles(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	mustCreateChapter(t, lib, "first")

	// dropped in by another tool, absent from the order file
	dir := filepath.Join(lib.Root(), "book")
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "zz.md"), []byte("z"), 0o644))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "aa.md"), []byte("a"), 0o644))

	chapters, err := lib.Chapters()
	assert.NilError(t, err)
	assert.DeepEqual(t, chapters, []string{"first.md", "aa.md", "zz.md"})

	// the merge rewrote the order file, so the next load agrees
	recorded, err := readOrder(dir)
	assert.NilError(t, err)
	assert.DeepEqual(t, recorded, chapters)
}

func TestChaptersDropStaleEntries(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	mustCreateChapter(t, lib, "keep")
	mustCreateChapter(t, lib, "gone")

	assert.NilError(t, os.Remove(filepath.Join(lib.Root(), "book", "gone.md")))

	chapters, err := lib.Chapters()
	assert.NilError(t, err)
	assert.DeepEqual(t, chapters, []string{"keep.md"})
}

func TestRenameChapterKeepsPosition(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	for _, n := range []string{"a", "b", "c"} {
		mustCreateChapter(t, lib, n)
	}

	name, err := lib.RenameChapter("b.md", "renamed")
	assert.NilError(t, err)
	assert.Equal(t, name, "renamed.md")

	chapters, err := lib.Chapters()
	assert.NilError(t, err)
	assert.DeepEqual(t, chapters, []string{"a.md", "renamed.md", "c.md"})
}

func TestRenameChapterCollision(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	mustCreateChapter(t, lib, "a")
	mustCreateChapter(t, lib, "b")

	_, err := lib.RenameChapter("b.md", "a")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRenameChapterMissing(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	_, err := lib.RenameChapter("ghost.md", "real")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteChapter(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	mustCreateChapter(t, lib, "a")
	mustCreateChapter(t, lib, "b")

	assert.NilError(t, lib.DeleteChapter("a.md"))

	chapters, err := lib.Chapters()
	assert.NilError(t, err)
	assert.DeepEqual(t, chapters, []string{"b.md"})

	_, err = os.Stat(filepath.Join(lib.Root(), "book", "a.md"))
	assert.Assert(t, os.IsNotExist(err))
}

func TestDeleteChapterMissing(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	assert.ErrorIs(t, lib.DeleteChapter("ghost.md"), ErrNotFound)
}

func TestReadChapterMissing(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	_, err := lib.ReadChapter("ghost.md")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteChapterRoundTrip(t *testing.T) {
	lib := newTestLibrary(t)
	mustCreateBook(t, lib, "book")
	mustOpenBook(t, lib, "book")
	mustCreateChapter(t, lib, "intro")

	assert.NilError(t, lib.WriteChapter("intro.md", "# Intro\n\nsome words\n"))
	content, err := lib.ReadChapter("intro.md")
	assert.NilError(t, err)
	assert.Equal(t, content, "# Intro\n\nsome words\n")
}
