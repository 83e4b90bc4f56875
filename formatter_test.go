package labeldoc_test

import (
	"testing"

	"github.com/fwojciec/labeldoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResultSet(t *testing.T) {
	t.Parallel()

	t.Run("sorts keys and indents by four spaces", func(t *testing.T) {
		t.Parallel()

		rs := labeldoc.ResultSet{}
		rs.Add("b.xml", "@GCX2", "Second\n")
		rs.Add("a.xml", "@GCX1", "First\n")

		got, err := labeldoc.FormatResultSet(rs)

		require.NoError(t, err)
		expected := "{\n" +
			"    \"a.xml\": {\n" +
			"        \"@GCX1\": \"First\\n\"\n" +
			"    },\n" +
			"    \"b.xml\": {\n" +
			"        \"@GCX2\": \"Second\\n\"\n" +
			"    }\n" +
			"}"
		assert.Equal(t, expected, got)
	})

	t.Run("keeps non-ASCII and HTML characters unescaped", func(t *testing.T) {
		t.Parallel()

		rs := labeldoc.ResultSet{}
		rs.Add("a.xml", "@GCX1", "Zahlungsbedingungen für <Kunden> & Lieferanten")

		got, err := labeldoc.FormatResultSet(rs)

		require.NoError(t, err)
		assert.Contains(t, got, "für <Kunden> & Lieferanten")
	})

	t.Run("renders nil set as empty object", func(t *testing.T) {
		t.Parallel()

		got, err := labeldoc.FormatResultSet(nil)

		require.NoError(t, err)
		assert.Equal(t, "{}", got)
	})
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	t.Run("renders empty collections instead of null", func(t *testing.T) {
		t.Parallel()

		got, err := labeldoc.FormatReport(&labeldoc.Report{
			Roots: []labeldoc.RootResult{{Root: labeldoc.SourceRoot{Name: "rsmGCX", Path: "/src/rsmGCX"}}},
		})

		require.NoError(t, err)
		assert.Contains(t, got, "\"documentation\": {}")
		assert.Contains(t, got, "\"failures\": []")
		assert.Contains(t, got, "\"failures\": {}")
		assert.NotContains(t, got, "null")
	})

	t.Run("includes root name and results", func(t *testing.T) {
		t.Parallel()

		rs := labeldoc.ResultSet{}
		rs.Add("/src/rsmGCX/AxTable/Foo.xml", "@GCX0010", "Example")

		got, err := labeldoc.FormatReport(&labeldoc.Report{
			Roots: []labeldoc.RootResult{{Root: labeldoc.SourceRoot{Name: "rsmGCX"}, Results: rs}},
		})

		require.NoError(t, err)
		assert.Contains(t, got, "\"name\": \"rsmGCX\"")
		assert.Contains(t, got, "\"@GCX0010\": \"Example\"")
	})
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	t.Run("omits failure breakdown when nothing failed", func(t *testing.T) {
		t.Parallel()

		got := labeldoc.FormatSummary(labeldoc.Summary{Roots: 1, Documents: 3, Labelled: 2, Resolved: 2})

		assert.Equal(t, "1 roots, 3 documents, 2 labelled, 2 resolved, 0 failed", got)
	})

	t.Run("lists failures by kind in sorted order", func(t *testing.T) {
		t.Parallel()

		got := labeldoc.FormatSummary(labeldoc.Summary{
			Roots:     2,
			Documents: 5,
			Labelled:  3,
			Resolved:  1,
			Failures: map[labeldoc.FailureKind]int{
				labeldoc.FailureParse:           1,
				labeldoc.FailureCatalogNotFound: 2,
			},
		})

		assert.Equal(t, "2 roots, 5 documents, 3 labelled, 1 resolved, 3 failed (catalog_not_found=2, parse=1)", got)
	})
}
